// Package kind defines the closed set of column value kinds the engine
// supports and the per-kind contract functions (construct, destroy,
// compare, format, parse, to-VM-value) that the schema, stores, and
// table facade dispatch through.
package kind

import (
	"encoding/hex"
	"fmt"

	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
	"github.com/FocuswithJustin/tabkit/core/tabql/blob"
)

// Kind is the closed enumeration of column value kinds. New kinds are
// never added at runtime; every dispatch over Kind is a total switch.
type Kind uint8

const (
	Int32 Kind = iota
	Double
	Bool
	NarrowString
	WideString
	Date
	DateTime
	PODBlob
	Subtable
)

func (k Kind) String() string {
	switch k {
	case Int32:
		return "int32"
	case Double:
		return "double"
	case Bool:
		return "bool"
	case NarrowString:
		return "narrow-string"
	case WideString:
		return "wide-string"
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	case PODBlob:
		return "pod-blob"
	case Subtable:
		return "subtable"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Fixed reports whether the kind occupies a fixed-size slot. Narrow and
// wide strings are the only variable-length kinds; their slot holds a
// blob handle rather than the logical value itself.
func (k Kind) Fixed() bool {
	return k != NarrowString && k != WideString
}

// POD reports whether the kind requires no destructor. Strings own a
// heap buffer (via blob.Blob) and subtables own a reference to another
// table; everything else is plain old data.
func (k Kind) POD() bool {
	switch k {
	case NarrowString, WideString, Subtable:
		return false
	default:
		return true
	}
}

// Comparable reports whether the kind may be the left operand of a VM
// comparison opcode (EQ/NE/LT/LE/GT/GE) per spec §4.7.
func (k Kind) Comparable() bool {
	switch k {
	case Int32, Double, NarrowString, WideString, Date, DateTime:
		return true
	default:
		return false
	}
}

// SubtableHandle is the minimal surface the kind package needs from a
// sub-table cell value; the table package supplies the concrete
// implementation so this package never imports table (which would be
// an import cycle, since table imports kind).
type SubtableHandle interface {
	// TableName identifies the referenced table for diagnostics and
	// cycle-detection bookkeeping performed by the table package.
	TableName() string
	// Reachable reports whether the table named target is reachable
	// (directly or transitively) through this handle's subtable
	// columns. Used by the table package to reject cycles at set time.
	Reachable(target string) bool
}

// Value is the tagged-union logical value type shared by cell access,
// string conversion, and the VM (bytecode.Value is a type alias of
// this type, so there is exactly one value representation end to end).
type Value struct {
	Kind     Kind
	I32      int32
	F64      float64
	Bool     bool
	Str      string // narrow-string and wide-string payload
	Date     Date
	DateTime DateTime
	Sub      SubtableHandle
}

// Cell is the storage slot for one (row, column) value. Fixed-size
// kinds store their value inline; narrow/wide strings hold an owning
// blob.Blob handle; pod-blob holds a caller-declared fixed byte
// payload; subtable holds a shared handle to another table.
type Cell struct {
	kind Kind
	i32  int32
	f64  float64
	b    bool
	blb  *blob.Blob
	date Date
	dt   DateTime
	pod  []byte
	sub  SubtableHandle
}

// NewCell default-constructs a cell of the given kind. podSize is only
// consulted for PODBlob columns, and gives the declared fixed size.
func NewCell(k Kind, podSize int) Cell {
	c := Cell{kind: k}
	switch k {
	case NarrowString, WideString:
		c.blb = blob.New()
	case PODBlob:
		c.pod = make([]byte, podSize)
	}
	return c
}

// Kind reports the cell's kind.
func (c *Cell) Kind() Kind { return c.kind }

// Destroy releases any heap resources the cell owns. Safe to call more
// than once. POD kinds are a no-op.
func (c *Cell) Destroy() {
	if c.blb != nil {
		c.blb.Release()
	}
}

// Clone deep-copies the cell, allocating a fresh copy of any owned blob
// buffer and pod-blob payload (per §3's "copying between slots is deep").
func (c Cell) Clone() Cell {
	out := c
	if c.blb != nil {
		out.blb = c.blb.Clone()
	}
	if c.pod != nil {
		out.pod = append([]byte(nil), c.pod...)
	}
	return out
}

// SetValue writes a logical Value into the cell, first destroying any
// prior owned resource (matches the original's "destruct before
// lexuncast" set_string contract, generalized to typed set).
func (c *Cell) SetValue(v Value) error {
	if v.Kind != c.kind {
		return tabqlerrors.NewTypeMismatch("", c.kind.String(), v.Kind.String())
	}
	switch c.kind {
	case Int32:
		c.i32 = v.I32
	case Double:
		c.f64 = v.F64
	case Bool:
		c.b = v.Bool
	case NarrowString:
		c.blb.SetNarrow(v.Str)
	case WideString:
		c.blb.SetWide(v.Str)
	case Date:
		c.date = v.Date
	case DateTime:
		c.dt = v.DateTime
	case Subtable:
		c.sub = v.Sub
	case PODBlob:
		return tabqlerrors.NewUnsupportedOp("set", "pod-blob cells are set via SetPOD, not SetValue")
	}
	return nil
}

// Value reads the cell's logical value.
func (c *Cell) Value() Value {
	v := Value{Kind: c.kind}
	switch c.kind {
	case Int32:
		v.I32 = c.i32
	case Double:
		v.F64 = c.f64
	case Bool:
		v.Bool = c.b
	case NarrowString:
		v.Str = c.blb.GetNarrow()
	case WideString:
		v.Str = c.blb.GetWide()
	case Date:
		v.Date = c.date
	case DateTime:
		v.DateTime = c.dt
	case Subtable:
		v.Sub = c.sub
	}
	return v
}

// POD returns the raw fixed-size payload of a PODBlob cell.
func (c *Cell) POD() []byte { return c.pod }

// SetPOD overwrites a PODBlob cell's payload; len(data) must equal the
// column's declared size.
func (c *Cell) SetPOD(data []byte) error {
	if c.kind != PODBlob {
		return tabqlerrors.NewTypeMismatch("", c.kind.String(), PODBlob.String())
	}
	if len(data) != len(c.pod) {
		return tabqlerrors.NewOutOfRange("SetPOD", len(data), len(c.pod)+1)
	}
	copy(c.pod, data)
	return nil
}

// Subtable returns the subtable handle held by a Subtable cell, or nil.
func (c *Cell) Subtable() SubtableHandle { return c.sub }

// SetSubtable stores a subtable handle directly, bypassing SetValue's
// kind check convenience (used by the table package after it has
// already performed cycle detection).
func (c *Cell) SetSubtable(h SubtableHandle) { c.sub = h }

// Compare deep-compares two cells of the same kind. Subtable cells
// compare equal at this layer when both are empty or both handles
// report the same TableName; recursive
// structural comparison of sub-tables is the table package's job
// (§3's table.h supplement), not the kind package's.
func Compare(a, b *Cell) (int, error) {
	if a.kind != b.kind {
		return 0, tabqlerrors.NewType("compare", a.kind.String())
	}
	switch a.kind {
	case Int32:
		return cmpInt(int64(a.i32), int64(b.i32)), nil
	case Double:
		return cmpFloat(a.f64, b.f64), nil
	case Bool:
		return cmpBool(a.b, b.b), nil
	case NarrowString:
		return cmpString(a.blb.GetNarrow(), b.blb.GetNarrow()), nil
	case WideString:
		return cmpString(a.blb.GetWide(), b.blb.GetWide()), nil
	case Date:
		return a.date.Compare(b.date), nil
	case DateTime:
		return a.dt.Compare(b.dt), nil
	case PODBlob:
		return cmpBytes(a.pod, b.pod), nil
	case Subtable:
		if a.sub == nil || b.sub == nil {
			return cmpBool(a.sub == nil, b.sub == nil), nil
		}
		if a.sub.TableName() == b.sub.TableName() {
			return 0, nil
		}
		return 1, nil
	default:
		return 0, tabqlerrors.NewType("compare", a.kind.String())
	}
}

// Format converts the cell to its string representation. Every kind
// except Subtable round-trips through Parse.
func (c *Cell) Format() (string, error) {
	switch c.kind {
	case Int32:
		return fmt.Sprintf("%d", c.i32), nil
	case Double:
		return fmt.Sprintf("%g", c.f64), nil
	case Bool:
		return fmt.Sprintf("%t", c.b), nil
	case NarrowString:
		return c.blb.GetNarrow(), nil
	case WideString:
		return c.blb.GetWide(), nil
	case Date:
		return c.date.String(), nil
	case DateTime:
		return c.dt.String(), nil
	case PODBlob:
		return fmt.Sprintf("%x", c.pod), nil
	case Subtable:
		return "", tabqlerrors.NewUnsupportedOp("format", "sub-table cells do not format to string")
	default:
		return "", tabqlerrors.NewType("format", c.kind.String())
	}
}

// Parse writes a parsed value into the cell from its string form,
// destructing any prior owned resource first. The Subtable kind always
// fails per §3/§4.5.
func (c *Cell) Parse(s string) error {
	switch c.kind {
	case Int32:
		var n int32
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return tabqlerrors.Wrapf(err, "parse int32 %q", s)
		}
		c.i32 = n
	case Double:
		var f float64
		if _, err := fmt.Sscanf(s, "%g", &f); err != nil {
			return tabqlerrors.Wrapf(err, "parse double %q", s)
		}
		c.f64 = f
	case Bool:
		var b bool
		if _, err := fmt.Sscanf(s, "%t", &b); err != nil {
			return tabqlerrors.Wrapf(err, "parse bool %q", s)
		}
		c.b = b
	case NarrowString:
		c.blb.SetNarrow(s)
	case WideString:
		c.blb.SetWide(s)
	case Date:
		d, err := ParseDate(s)
		if err != nil {
			return err
		}
		c.date = d
	case DateTime:
		dt, err := ParseDateTime(s)
		if err != nil {
			return err
		}
		c.dt = dt
	case PODBlob:
		data, err := hex.DecodeString(s)
		if err != nil {
			return tabqlerrors.Wrapf(err, "parse pod-blob %q", s)
		}
		return c.SetPOD(data)
	case Subtable:
		return tabqlerrors.NewUnsupportedOp("parse", "sub-table cells do not parse from string")
	default:
		return tabqlerrors.NewType("parse", c.kind.String())
	}
	return nil
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return cmpInt(int64(a[i]), int64(b[i]))
		}
	}
	return cmpInt(int64(len(a)), int64(len(b)))
}
