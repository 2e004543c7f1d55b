package table

import (
	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
)

// subtableHandle is this package's implementation of kind.SubtableHandle:
// a direct reference to the child Table. Go's garbage collector handles
// the shared lifetime the original gave a reference count, so the
// handle is just a pointer wrapper.
type subtableHandle struct {
	t *Table
}

func (h *subtableHandle) TableName() string { return h.t.name }

// Reachable walks every sub-table column of h's table, recursively,
// looking for target. Grounded on Design Notes §9's "detect cycles at
// set time by walking reachable tables".
func (h *subtableHandle) Reachable(target string) bool {
	if h.t.name == target {
		return true
	}
	for _, def := range h.t.schema.Columns() {
		if def.Kind != kind.Subtable {
			continue
		}
		for r := 0; r < h.t.store.NumRows(); r++ {
			c, err := h.t.store.Cell(r, def.ID)
			if err != nil {
				continue
			}
			if sub := c.Subtable(); sub != nil && sub.Reachable(target) {
				return true
			}
		}
	}
	return false
}

// SetSubtable points the sub-table cell at (r, ref) at child, rejecting
// the assignment with CycleError if child already reaches t (directly
// or transitively) or is t itself.
func (t *Table) SetSubtable(r int, ref any, child *Table) error {
	c, def, err := t.cell(r, ref)
	if err != nil {
		return err
	}
	if def.Kind != kind.Subtable {
		return tabqlerrors.NewTypeMismatch(def.Name, def.Kind.String(), kind.Subtable.String())
	}
	handle := &subtableHandle{t: child}
	if child.name == t.name || handle.Reachable(t.name) {
		return tabqlerrors.NewCycle(child.name)
	}
	c.SetSubtable(handle)
	return nil
}

// GetSubtable returns the child table referenced at (r, ref), or nil if
// the cell holds no sub-table.
func (t *Table) GetSubtable(r int, ref any) (*Table, error) {
	c, def, err := t.cell(r, ref)
	if err != nil {
		return nil, err
	}
	if def.Kind != kind.Subtable {
		return nil, tabqlerrors.NewTypeMismatch(def.Name, def.Kind.String(), kind.Subtable.String())
	}
	sub := c.Subtable()
	if sub == nil {
		return nil, nil
	}
	h, ok := sub.(*subtableHandle)
	if !ok {
		return nil, tabqlerrors.NewType("subtable", "unrecognized sub-table handle implementation")
	}
	return h.t, nil
}
