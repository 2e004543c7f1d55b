// Package table implements the public table facade of SPEC_FULL.md
// §4.4: schema-aware row and column access, typed get/set with kind
// checking, string conversion, scanning, sub-table columns with
// cycle-rejecting assignment, and deep equality.
//
// Grounded on original_source/stlib/table.h's tbl<_TLayout> facade
// (same operation list: add/remove column, typed get/set, get_string/
// set_string, find, operator==) and on the teacher's
// core/sqlite/internal/schema package for the name-or-id column
// reference convention.
package table

import (
	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
	"github.com/FocuswithJustin/tabkit/core/tabql/schema"
	"github.com/FocuswithJustin/tabkit/core/tabql/store"
	"github.com/google/uuid"
)

// Layout selects the physical cell store backing a Table.
type Layout int

const (
	RowLayout Layout = iota
	ColumnLayout
)

func newStore(layout Layout) store.Store {
	if layout == ColumnLayout {
		return store.NewColumnStore()
	}
	return store.NewRowStore()
}

// Table is the facade type: a schema plus a physical cell store,
// addressed by row index and column name-or-id. Sub-table cells hold a
// *Table directly; Go's garbage collector gives the shared ownership
// the original's reference-counted handle provided manually, so no
// refcount field is needed here (see DESIGN.md).
type Table struct {
	name   string
	layout Layout
	schema *schema.Schema
	store  store.Store
}

// New returns an empty table named name, backed by the given layout.
func New(name string, layout Layout) *Table {
	return &Table{
		name:   name,
		layout: layout,
		schema: schema.New(),
		store:  newStore(layout),
	}
}

// Name reports the table's identifier. Anonymous sub-tables are named
// with a generated UUID (see AddSubtableColumn).
func (t *Table) Name() string { return t.name }

// Schema exposes the underlying schema for introspection (used by the
// select driver to build its placeholder binding).
func (t *Table) Schema() *schema.Schema { return t.schema }

// NumRows reports the current row count.
func (t *Table) NumRows() int { return t.store.NumRows() }

// AddRow appends a new row; fails with SchemaEmptyError if the table
// has no columns.
func (t *Table) AddRow() (int, error) { return t.store.AddRow() }

// RemoveRow removes row r. Out-of-range r is a lenient no-op.
func (t *Table) RemoveRow(r int) { t.store.RemoveRow(r) }

// Clear removes every row.
func (t *Table) Clear() { t.store.Clear() }

// AddColumn appends a column of kind k (podSize only matters for
// kind.PODBlob columns).
func (t *Table) AddColumn(name string, k kind.Kind, podSize int) (int, error) {
	id, err := t.schema.Add(name, k, podSize)
	if err != nil {
		return 0, err
	}
	def, err := t.schema.ByID(id)
	if err != nil {
		return 0, err
	}
	t.store.AddColumn(def)
	return id, nil
}

// AddSubtableColumn appends a sub-table column and returns a freshly
// created, anonymously named child table of the same layout as its
// parent.
func (t *Table) AddSubtableColumn(name string) (int, *Table, error) {
	id, err := t.AddColumn(name, kind.Subtable, 0)
	if err != nil {
		return 0, nil, err
	}
	child := New(uuid.NewString(), t.layout)
	return id, child, nil
}

// RemoveColumn removes the column identified by ref (a name or an id).
func (t *Table) RemoveColumn(ref any) error {
	def, err := t.schema.Resolve(ref)
	if err != nil {
		return err
	}
	id := def.ID
	if err := t.schema.RemoveByID(id); err != nil {
		return err
	}
	t.store.RemoveColumn(id)
	return nil
}

func (t *Table) cell(r int, ref any) (*kind.Cell, *schema.ColumnDef, error) {
	def, err := t.schema.Resolve(ref)
	if err != nil {
		return nil, nil, err
	}
	c, err := t.store.Cell(r, def.ID)
	if err != nil {
		return nil, nil, err
	}
	return c, def, nil
}

// SetValue writes v into (r, ref). Fails with TypeMismatchError if v's
// kind does not match the column's declared kind.
func (t *Table) SetValue(r int, ref any, v kind.Value) error {
	c, def, err := t.cell(r, ref)
	if err != nil {
		return err
	}
	if def.Kind != v.Kind {
		return tabqlerrors.NewTypeMismatch(def.Name, def.Kind.String(), v.Kind.String())
	}
	return c.SetValue(v)
}

// Value reads the value stored at (r, ref).
func (t *Table) Value(r int, ref any) (kind.Value, error) {
	c, _, err := t.cell(r, ref)
	if err != nil {
		return kind.Value{}, err
	}
	return c.Value(), nil
}

// GetString reads (r, ref) via the column kind's format contract.
func (t *Table) GetString(r int, ref any) (string, error) {
	c, _, err := t.cell(r, ref)
	if err != nil {
		return "", err
	}
	return c.Format()
}

// SetString writes s into (r, ref) via the column kind's parse
// contract, which destructs any prior owned value first.
func (t *Table) SetString(r int, ref any, s string) error {
	c, _, err := t.cell(r, ref)
	if err != nil {
		return err
	}
	return c.Parse(s)
}

// Find scans column ref for cells equal to v, invoking sink (if
// non-nil) with each matching row index in ascending order, and
// returns the match count.
func (t *Table) Find(ref any, v kind.Value, sink func(row int)) (int, error) {
	def, err := t.schema.Resolve(ref)
	if err != nil {
		return 0, err
	}
	if def.Kind != v.Kind {
		return 0, tabqlerrors.NewTypeMismatch(def.Name, def.Kind.String(), v.Kind.String())
	}
	needle := kind.NewCell(def.Kind, def.PODSize)
	if err := needle.SetValue(v); err != nil {
		return 0, err
	}
	count := 0
	for r := 0; r < t.store.NumRows(); r++ {
		c, err := t.store.Cell(r, def.ID)
		if err != nil {
			return count, err
		}
		cmp, err := kind.Compare(c, &needle)
		if err != nil {
			return count, err
		}
		if cmp == 0 {
			count++
			if sink != nil {
				sink(r)
			}
		}
	}
	return count, nil
}

// Equal performs the deep, order-sensitive comparison of §4.4: row
// count, then schema, then every cell, recursing into sub-tables.
// Empty tables compare equal iff their schemas compare equal.
func (t *Table) Equal(o *Table) bool {
	if t.store.NumRows() != o.store.NumRows() {
		return false
	}
	if !t.schema.Equal(o.schema) {
		return false
	}
	for r := 0; r < t.store.NumRows(); r++ {
		for _, def := range t.schema.Columns() {
			odef, err := o.schema.ByName(def.Name)
			if err != nil {
				return false
			}
			c1, err := t.store.Cell(r, def.ID)
			if err != nil {
				return false
			}
			c2, err := o.store.Cell(r, odef.ID)
			if err != nil {
				return false
			}
			if def.Kind == kind.Subtable {
				if !equalSubtableCells(c1, c2) {
					return false
				}
				continue
			}
			cmp, err := kind.Compare(c1, c2)
			if err != nil || cmp != 0 {
				return false
			}
		}
	}
	return true
}

func equalSubtableCells(a, b *kind.Cell) bool {
	ha, hb := a.Subtable(), b.Subtable()
	if ha == nil || hb == nil {
		return ha == nil && hb == nil
	}
	sa, okA := ha.(*subtableHandle)
	sb, okB := hb.(*subtableHandle)
	if !okA || !okB {
		return false
	}
	return sa.t.Equal(sb.t)
}
