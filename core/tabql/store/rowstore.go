package store

import (
	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
	"github.com/FocuswithJustin/tabkit/core/tabql/schema"
)

// RowStore lays out cells row by row: each row is one packed slice of
// cells in column order. Grounded on spec §4.2.
type RowStore struct {
	cols []*schema.ColumnDef
	rows [][]kind.Cell
}

// NewRowStore returns an empty row-major store.
func NewRowStore() *RowStore {
	return &RowStore{}
}

func newRow(cols []*schema.ColumnDef) []kind.Cell {
	row := make([]kind.Cell, len(cols))
	for i, d := range cols {
		row[i] = kind.NewCell(d.Kind, d.PODSize)
	}
	return row
}

func (s *RowStore) AddRow() (int, error) {
	if len(s.cols) == 0 {
		return 0, tabqlerrors.NewSchemaEmpty("add_row")
	}
	s.rows = append(s.rows, newRow(s.cols))
	return len(s.rows) - 1, nil
}

func (s *RowStore) RemoveRow(r int) {
	if r < 0 || r >= len(s.rows) {
		return
	}
	destroyRange(s.rows[r])
	s.rows = append(s.rows[:r], s.rows[r+1:]...)
}

func (s *RowStore) Clear() {
	for i := len(s.rows) - 1; i >= 0; i-- {
		s.RemoveRow(i)
	}
	s.rows = nil
}

func (s *RowStore) AddColumn(def *schema.ColumnDef) {
	s.cols = append(s.cols, def)
	for i := range s.rows {
		s.rows[i] = append(s.rows[i], kind.NewCell(def.Kind, def.PODSize))
	}
}

func (s *RowStore) RemoveColumn(id int) {
	if id < 0 || id >= len(s.cols) {
		return
	}
	for i := range s.rows {
		s.rows[i][id].Destroy()
		s.rows[i] = append(s.rows[i][:id], s.rows[i][id+1:]...)
	}
	s.cols = append(s.cols[:id], s.cols[id+1:]...)
}

func (s *RowStore) Cell(r, c int) (*kind.Cell, error) {
	if r < 0 || r >= len(s.rows) {
		return nil, tabqlerrors.NewOutOfRange("cell", r, len(s.rows))
	}
	if c < 0 || c >= len(s.cols) {
		return nil, tabqlerrors.NewOutOfRange("cell", c, len(s.cols))
	}
	return &s.rows[r][c], nil
}

func (s *RowStore) NumRows() int { return len(s.rows) }
