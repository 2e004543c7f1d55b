package store

import (
	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
	"github.com/FocuswithJustin/tabkit/core/tabql/schema"
)

// ColumnStore lays out cells column by column: one packed slice of
// cells per column. Grounded on spec §4.3. Row count is tracked
// explicitly (nrows) rather than inferred from a column's length, so
// that Clear resets it to zero even when no columns remain (Design
// Notes §9's mandated clear() behavior).
type ColumnStore struct {
	cols  []*schema.ColumnDef
	data  [][]kind.Cell // data[c] is column c's cells, length nrows
	nrows int
}

// NewColumnStore returns an empty column-major store.
func NewColumnStore() *ColumnStore {
	return &ColumnStore{}
}

func (s *ColumnStore) AddRow() (int, error) {
	if len(s.cols) == 0 {
		return 0, tabqlerrors.NewSchemaEmpty("add_row")
	}
	for i, d := range s.cols {
		s.data[i] = append(s.data[i], kind.NewCell(d.Kind, d.PODSize))
	}
	s.nrows++
	return s.nrows - 1, nil
}

func (s *ColumnStore) RemoveRow(r int) {
	if r < 0 || r >= s.nrows {
		return
	}
	for c := range s.data {
		s.data[c][r].Destroy()
		s.data[c] = append(s.data[c][:r], s.data[c][r+1:]...)
	}
	s.nrows--
}

func (s *ColumnStore) Clear() {
	for c := range s.data {
		destroyRange(s.data[c])
		s.data[c] = nil
	}
	s.nrows = 0
}

func (s *ColumnStore) AddColumn(def *schema.ColumnDef) {
	col := make([]kind.Cell, s.nrows)
	for i := range col {
		col[i] = kind.NewCell(def.Kind, def.PODSize)
	}
	s.data = append(s.data, col)
	s.cols = append(s.cols, def)
}

func (s *ColumnStore) RemoveColumn(id int) {
	if id < 0 || id >= len(s.cols) {
		return
	}
	destroyRange(s.data[id])
	s.data = append(s.data[:id], s.data[id+1:]...)
	s.cols = append(s.cols[:id], s.cols[id+1:]...)
}

func (s *ColumnStore) Cell(r, c int) (*kind.Cell, error) {
	if r < 0 || r >= s.nrows {
		return nil, tabqlerrors.NewOutOfRange("cell", r, s.nrows)
	}
	if c < 0 || c >= len(s.cols) {
		return nil, tabqlerrors.NewOutOfRange("cell", c, len(s.cols))
	}
	return &s.data[c][r], nil
}

func (s *ColumnStore) NumRows() int { return s.nrows }
