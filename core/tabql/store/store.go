// Package store implements the two physical cell layouts behind one
// logical contract: a row-major layout (RowStore) and a column-major
// layout (ColumnStore). Both realize the spec's "packed byte region"
// as slices of kind.Cell rather than literal byte arithmetic — the
// teacher's own VDBE represents cells as a tagged Mem struct rather
// than raw bytes (core/sqlite/internal/vdbe/mem.go), and unsafe
// pointer packing is not an idiom this corpus reaches for anywhere,
// so this keeps the logical contract (offsets, row_size, reshape on
// add/remove) without unsafe code. See DESIGN.md.
package store

import (
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
	"github.com/FocuswithJustin/tabkit/core/tabql/schema"
)

// Store is the physical layout contract shared by RowStore and
// ColumnStore.
type Store interface {
	// AddRow appends a new row, default-constructing every cell.
	// Fails with SchemaEmptyError if there are no columns.
	AddRow() (int, error)
	// RemoveRow destructs and removes row r. Out-of-range r is a
	// lenient no-op.
	RemoveRow(r int)
	// Clear removes every row, releasing all owned resources.
	Clear()
	// AddColumn reshapes the store to add a new column matching def,
	// default-constructing the new cell in every existing row.
	AddColumn(def *schema.ColumnDef)
	// RemoveColumn destructs and drops the column at position id in
	// every row.
	RemoveColumn(id int)
	// Cell returns the storage slot at (r, c). Fails with
	// OutOfRangeError for an invalid index.
	Cell(r, c int) (*kind.Cell, error)
	// NumRows reports the current row count.
	NumRows() int
}

func destroyRange(cells []kind.Cell) {
	for i := range cells {
		cells[i].Destroy()
	}
}
