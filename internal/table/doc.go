// Package table holds the building blocks shared by table validation and
// table editing: the Options naming the table node types, the cell factory
// and the position calculus.
//
// # Structure
//
// A table is a block of type Options.TypeTable. Its children are rows
// (Options.TypeRow), every row holds the same number of cells
// (Options.TypeCell), and every cell holds either text directly or, when
// Options.AllowBlocksInCells is set, one or more content blocks
// (Options.TypeContent). The validate package enforces this shape.
//
// # Position
//
// NewPosition resolves the cell, row and table around any node inside a
// table and answers grid questions about it:
//
//	pos, err := table.NewPosition(doc, node, opts)
//	if errors.Is(err, table.ErrNotInTable) {
//	    // not inside a table
//	}
//	pos.RowIndex()    // zero-based row
//	pos.ColumnIndex() // zero-based column
//	pos.IsLastCell()  // bottom-right cell
//
// Width reads the first row only; it assumes the table has been normalized.
package table
