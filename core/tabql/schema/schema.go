// Package schema implements the ordered set of column definitions
// backing a table: stable ids, per-column byte offsets, and total row
// size, all reflowed on every add/remove.
//
// Grounded on core/sqlite/internal/schema/schema.go's Schema/Column
// struct shape and case-handling lookup helpers, generalized to carry
// an explicit insertion-ordered name sequence plus offset/id/row-size
// bookkeeping per original_source/stlib/schema.h's coldef.
package schema

import (
	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
)

// ColumnDef describes one column. Every field except Offset and ID is
// immutable after creation; Offset and ID are maintained by Schema.
type ColumnDef struct {
	Name    string
	ID      int
	Offset  int
	Kind    kind.Kind
	Size    int // slot size: sizeof(handle) for variable-length kinds
	PODSize int // declared payload size for PODBlob columns
}

// Fixed reports whether the column occupies a fixed-size slot.
func (c ColumnDef) Fixed() bool { return c.Kind.Fixed() }

// POD reports whether the column's kind needs no destructor.
func (c ColumnDef) POD() bool { return c.Kind.POD() }

// IsTable reports whether the column holds sub-table references.
func (c ColumnDef) IsTable() bool { return c.Kind == kind.Subtable }

// blobHandleSize is the nominal slot size used for variable-length
// columns; the engine does not byte-pack slots (see DESIGN.md), so
// this is a notional constant kept only so row_size bookkeeping
// matches the spec's invariants under an arbitrary but fixed scale.
const blobHandleSize = 16

// slotSize returns the size, in the notional byte-layout unit, of a
// cell of kind k declared with the given POD size (ignored for
// non-POD kinds).
func slotSize(k kind.Kind, podSize int) int {
	switch k {
	case kind.Int32:
		return 4
	case kind.Double:
		return 8
	case kind.Bool:
		return 1
	case kind.NarrowString, kind.WideString:
		return blobHandleSize
	case kind.Date:
		return 4
	case kind.DateTime:
		return 8
	case kind.PODBlob:
		return podSize
	case kind.Subtable:
		return blobHandleSize
	default:
		return 0
	}
}

// Schema is an ordered, name-addressable sequence of column
// definitions.
type Schema struct {
	names []string
	cols  map[string]*ColumnDef
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{cols: make(map[string]*ColumnDef)}
}

// Len reports the number of columns.
func (s *Schema) Len() int { return len(s.names) }

// RowSize returns the sum of all column slot sizes.
func (s *Schema) RowSize() int {
	total := 0
	for _, n := range s.names {
		total += s.cols[n].Size
	}
	return total
}

// Add appends a column of kind k named name. podSize is only
// meaningful when k is kind.PODBlob.
func (s *Schema) Add(name string, k kind.Kind, podSize int) (int, error) {
	if name == "" {
		return 0, tabqlerrors.NewSchema("add", name, "column name must not be empty")
	}
	if _, exists := s.cols[name]; exists {
		return 0, tabqlerrors.NewSchema("add", name, "column already exists")
	}
	id := len(s.names)
	def := &ColumnDef{
		Name:    name,
		ID:      id,
		Offset:  s.RowSize(),
		Kind:    k,
		Size:    slotSize(k, podSize),
		PODSize: podSize,
	}
	s.names = append(s.names, name)
	s.cols[name] = def
	return id, nil
}

// Remove deletes the column named name and reflows ids and offsets of
// all later columns so the schema's invariants continue to hold.
func (s *Schema) Remove(name string) error {
	idx := -1
	for i, n := range s.names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return tabqlerrors.NewSchema("remove", name, "no such column")
	}
	delete(s.cols, name)
	s.names = append(s.names[:idx], s.names[idx+1:]...)
	s.reflow(idx)
	return nil
}

// RemoveByID deletes the column with the given id.
func (s *Schema) RemoveByID(id int) error {
	if id < 0 || id >= len(s.names) {
		return tabqlerrors.NewSchema("remove", "", "no such column id")
	}
	return s.Remove(s.names[id])
}

// reflow recomputes id and offset for every column from position from
// onward (or from 0 if a column earlier than from changed size, which
// never happens here since Add/Remove only ever touch the tail of the
// ordering relative to the removed index).
func (s *Schema) reflow(from int) {
	offset := 0
	for i := 0; i < from; i++ {
		offset += s.cols[s.names[i]].Size
	}
	for i := from; i < len(s.names); i++ {
		def := s.cols[s.names[i]]
		def.ID = i
		def.Offset = offset
		offset += def.Size
	}
}

// ByName looks up a column definition by name.
func (s *Schema) ByName(name string) (*ColumnDef, error) {
	def, ok := s.cols[name]
	if !ok {
		return nil, tabqlerrors.NewSchema("lookup", name, "no such column")
	}
	return def, nil
}

// ByID looks up a column definition by id.
func (s *Schema) ByID(id int) (*ColumnDef, error) {
	if id < 0 || id >= len(s.names) {
		return nil, tabqlerrors.NewSchema("lookup", "", "no such column id")
	}
	return s.cols[s.names[id]], nil
}

// Resolve accepts either a string name or an int id and returns the
// matching column definition.
func (s *Schema) Resolve(ref any) (*ColumnDef, error) {
	switch v := ref.(type) {
	case string:
		return s.ByName(v)
	case int:
		return s.ByID(v)
	default:
		return nil, tabqlerrors.NewSchema("lookup", "", "column reference must be a name or id")
	}
}

// Names returns the columns in insertion (layout) order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Columns returns the column definitions in insertion order.
func (s *Schema) Columns() []*ColumnDef {
	out := make([]*ColumnDef, len(s.names))
	for i, n := range s.names {
		out[i] = s.cols[n]
	}
	return out
}

// Equal reports order-sensitive equality on the sequence of (name,
// external kind) pairs.
func (s *Schema) Equal(o *Schema) bool {
	if len(s.names) != len(o.names) {
		return false
	}
	for i, n := range s.names {
		on := o.names[i]
		if n != on {
			return false
		}
		if s.cols[n].Kind != o.cols[on].Kind {
			return false
		}
	}
	return true
}
