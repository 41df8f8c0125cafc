package table

import "github.com/dshills/edittable/internal/document"

// CreateCell builds a cell holding text. With AllowBlocksInCells the text
// is wrapped in a content block, otherwise it sits directly in the cell.
func CreateCell(opts Options, text string) *document.Node {
	if opts.AllowBlocksInCells {
		return document.NewBlock(opts.TypeCell, CreateContentBlock(opts, text))
	}
	return document.NewBlock(opts.TypeCell, document.NewText(text))
}

// CreateContentBlock builds a content block holding text.
func CreateContentBlock(opts Options, text string) *document.Node {
	return document.NewBlock(opts.TypeContent, document.NewText(text))
}

// CreateRow builds a row of empty cells. A row always has at least one cell.
func CreateRow(opts Options, columns int) *document.Node {
	columns = max(columns, 1)
	cells := make([]*document.Node, columns)
	for i := range cells {
		cells[i] = CreateCell(opts, "")
	}
	return document.NewBlock(opts.TypeRow, cells...)
}

// CreateTable builds a table of empty cells, at least one by one.
func CreateTable(opts Options, columns, rows int) *document.Node {
	rows = max(rows, 1)
	children := make([]*document.Node, rows)
	for i := range children {
		children[i] = CreateRow(opts, columns)
	}
	return document.NewBlock(opts.TypeTable, children...)
}

// CreateTableFromText builds a table whose cells hold the given texts.
// Short rows are padded with empty cells to the longest row.
func CreateTableFromText(opts Options, texts [][]string) *document.Node {
	columns := 1
	for _, row := range texts {
		columns = max(columns, len(row))
	}
	if len(texts) == 0 {
		texts = [][]string{nil}
	}
	rows := make([]*document.Node, len(texts))
	for i, row := range texts {
		cells := make([]*document.Node, columns)
		for j := range cells {
			text := ""
			if j < len(row) {
				text = row[j]
			}
			cells[j] = CreateCell(opts, text)
		}
		rows[i] = document.NewBlock(opts.TypeRow, cells...)
	}
	return document.NewBlock(opts.TypeTable, rows...)
}
