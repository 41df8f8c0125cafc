package table

import (
	"fmt"

	"github.com/dshills/edittable/internal/document"
)

// Position locates the table, row and cell enclosing a reference node.
// A Position is a view of one document snapshot and must not be kept across
// edits.
type Position struct {
	Table *document.Node
	Row   *document.Node
	Cell  *document.Node
}

// NewPosition derives the position of start in doc. If start is itself a
// cell it is used as the cell; otherwise the nearest cell ancestor is. The
// row and table are the nearest ancestors of start with the row and table
// types. It fails with ErrNotInTable if any of them is missing or if they
// are not directly nested.
func NewPosition(doc *document.Document, start *document.Node, opts Options) (*Position, error) {
	if start == nil {
		return nil, ErrNotInTable
	}
	key := start.Key()

	cell := start
	if !opts.IsCell(start) {
		var ok bool
		if cell, ok = doc.Closest(key, opts.IsCell); !ok {
			return nil, fmt.Errorf("%w: no cell around %s", ErrNotInTable, key)
		}
	}
	row, ok := doc.Closest(key, opts.IsRow)
	if !ok {
		return nil, fmt.Errorf("%w: no row around %s", ErrNotInTable, key)
	}
	tbl, ok := doc.Closest(key, opts.IsTable)
	if !ok {
		return nil, fmt.Errorf("%w: no table around %s", ErrNotInTable, key)
	}

	if p, _ := doc.Parent(cell.Key()); p != row {
		return nil, fmt.Errorf("%w: cell %s is not a child of row %s", ErrNotInTable, cell.Key(), row.Key())
	}
	if p, _ := doc.Parent(row.Key()); p != tbl {
		return nil, fmt.Errorf("%w: row %s is not a child of table %s", ErrNotInTable, row.Key(), tbl.Key())
	}

	return &Position{Table: tbl, Row: row, Cell: cell}, nil
}

// Width returns the number of cells in the first row.
func (p *Position) Width() int {
	first := p.Table.Child(0)
	if first == nil {
		return 0
	}
	return first.NumChildren()
}

// Height returns the number of rows.
func (p *Position) Height() int {
	return p.Table.NumChildren()
}

// RowIndex returns the index of the row within the table.
func (p *Position) RowIndex() int {
	return p.Table.IndexOf(p.Row)
}

// ColumnIndex returns the index of the cell within the row.
func (p *Position) ColumnIndex() int {
	return p.Row.IndexOf(p.Cell)
}

// IsFirstCell reports whether the cell is the top-left one.
func (p *Position) IsFirstCell() bool {
	return p.IsFirstRow() && p.IsFirstColumn()
}

// IsLastCell reports whether the cell is the bottom-right one.
func (p *Position) IsLastCell() bool {
	return p.IsLastRow() && p.IsLastColumn()
}

// IsFirstRow reports whether the row is the first one.
func (p *Position) IsFirstRow() bool {
	return p.RowIndex() == 0
}

// IsLastRow reports whether the row is the last one.
func (p *Position) IsLastRow() bool {
	return p.RowIndex() == p.Height()-1
}

// IsFirstColumn reports whether the cell is in the first column.
func (p *Position) IsFirstColumn() bool {
	return p.ColumnIndex() == 0
}

// IsLastColumn reports whether the cell is in the last column.
func (p *Position) IsLastColumn() bool {
	return p.ColumnIndex() == p.Width()-1
}

// RowAt returns the row at index y.
func (p *Position) RowAt(y int) (*document.Node, error) {
	row := p.Table.Child(y)
	if row == nil {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, y, p.Height())
	}
	return row, nil
}

// CellAt returns the cell at column x of row y.
func (p *Position) CellAt(x, y int) (*document.Node, error) {
	row, err := p.RowAt(y)
	if err != nil {
		return nil, err
	}
	cell := row.Child(x)
	if cell == nil {
		return nil, fmt.Errorf("%w: column %d of %d in row %d", ErrOutOfRange, x, row.NumChildren(), y)
	}
	return cell, nil
}
