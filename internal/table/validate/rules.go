package validate

import (
	"github.com/dshills/edittable/internal/change"
	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/table"
)

// Rule names.
const (
	NameBlockWithinCells           = "blockWithinCells"
	NameCellsWithinTable           = "cellsWithinTable"
	NameRowsWithinTable            = "rowsWithinTable"
	NameTablesContainOnlyRows      = "tablesContainOnlyRows"
	NameRowsContainRequiredColumns = "rowsContainRequiredColumns"
)

// Violation describes what a rule found wrong with a node.
type Violation interface {
	violation()
}

// Rule is one structural check. Match selects the nodes the rule applies
// to, Validate reports a violation or nil, and Repair turns a violation
// into a batch of edits. The set of rules is closed.
type Rule interface {
	Name() string
	Match(n *document.Node) bool
	Validate(n *document.Node) Violation
	Repair(n *document.Node, v Violation) *change.Batch
	rule()
}

// Rules returns the table rules in the order they are tried.
func Rules(opts table.Options) []Rule {
	return []Rule{
		BlockWithinCells(opts),
		CellsWithinTable(opts),
		RowsWithinTable(opts),
		TablesContainOnlyRows(opts),
		RowsContainRequiredColumns(opts),
	}
}

// Check runs a single rule against n and returns its repair, or nil.
func Check(r Rule, n *document.Node) *change.Batch {
	if !r.Match(n) {
		return nil
	}
	v := r.Validate(n)
	if v == nil {
		return nil
	}
	return r.Repair(n, v)
}

func isContainerBlock(n *document.Node) bool {
	return n.Kind() == document.KindDocument || n.Kind() == document.KindBlock
}

// --- blockWithinCells ---

type cellContent struct {
	inlines []*document.Node // blocks mode: inline and text children
	blocks  []*document.Node // text mode: block children
	empty   bool
}

func (cellContent) violation() {}

type blockWithinCells struct {
	opts table.Options
}

// BlockWithinCells enforces the cell content mode. With blocks allowed,
// inline and text children of a cell are moved into a new content block.
// Without, block children of a cell are unwrapped so the cell holds its
// content directly. An empty cell receives empty content.
func BlockWithinCells(opts table.Options) Rule {
	return blockWithinCells{opts: opts}
}

func (blockWithinCells) rule() {}

func (blockWithinCells) Name() string { return NameBlockWithinCells }

func (r blockWithinCells) Match(n *document.Node) bool {
	return n.IsBlock() && r.opts.IsCell(n)
}

func (r blockWithinCells) Validate(n *document.Node) Violation {
	if n.NumChildren() == 0 {
		return cellContent{empty: true}
	}
	if r.opts.AllowBlocksInCells {
		inlines := n.FilterChildren(func(c *document.Node) bool {
			return c.Kind() == document.KindInline || c.Kind() == document.KindText
		})
		if len(inlines) == 0 {
			return nil
		}
		return cellContent{inlines: inlines}
	}
	blocks := n.FilterChildren((*document.Node).IsBlock)
	if len(blocks) == 0 {
		return nil
	}
	return cellContent{blocks: blocks}
}

func (r blockWithinCells) Repair(n *document.Node, v Violation) *change.Batch {
	content := v.(cellContent)
	b := change.NewBatch(NameBlockWithinCells)

	switch {
	case content.empty && r.opts.AllowBlocksInCells:
		b.Add(change.InsertNode{Parent: n.Key(), Index: 0, Node: table.CreateContentBlock(r.opts, "")})

	case content.empty:
		b.Add(change.InsertNode{Parent: n.Key(), Index: 0, Node: document.NewText("")})

	case len(content.inlines) > 0:
		block := document.NewBlock(r.opts.TypeContent)
		b.Add(change.InsertNode{Parent: n.Key(), Index: 0, Node: block})
		for i, inline := range content.inlines {
			b.Add(change.MoveNode{Key: inline.Key(), Parent: block.Key(), Index: i})
		}

	default:
		// Lift the children of each block into the cell at the block's place.
		idx := 0
		for _, child := range n.Children() {
			if !child.IsBlock() {
				idx++
				continue
			}
			for j, grandchild := range child.Children() {
				b.Add(change.MoveNode{Key: grandchild.Key(), Parent: n.Key(), Index: idx + j})
			}
			b.Add(change.RemoveNode{Key: child.Key()})
			idx += child.NumChildren()
		}
	}
	return b
}

// --- cellsWithinTable / rowsWithinTable ---

type strayChildren struct {
	nodes []*document.Node
}

func (strayChildren) violation() {}

// wrapStray wraps children of one type that sit outside their expected
// parent type.
type wrapStray struct {
	name       string
	childType  string
	parentType string
}

func (wrapStray) rule() {}

func (r wrapStray) Name() string { return r.name }

func (r wrapStray) Match(n *document.Node) bool {
	return isContainerBlock(n) && n.Type() != r.parentType
}

func (r wrapStray) Validate(n *document.Node) Violation {
	stray := n.FilterChildren(func(c *document.Node) bool {
		return c.Type() == r.childType
	})
	if len(stray) == 0 {
		return nil
	}
	return strayChildren{nodes: stray}
}

func (r wrapStray) Repair(_ *document.Node, v Violation) *change.Batch {
	b := change.NewBatch(r.name)
	for _, child := range v.(strayChildren).nodes {
		b.Add(change.WrapNode{Key: child.Key(), Wrapper: document.NewBlock(r.parentType)})
	}
	return b
}

// CellsWithinTable wraps every cell that is not the child of a row in a row
// of its own.
func CellsWithinTable(opts table.Options) Rule {
	return wrapStray{name: NameCellsWithinTable, childType: opts.TypeCell, parentType: opts.TypeRow}
}

// RowsWithinTable wraps every row that is not the child of a table in a
// table of its own.
func RowsWithinTable(opts table.Options) Rule {
	return wrapStray{name: NameRowsWithinTable, childType: opts.TypeRow, parentType: opts.TypeTable}
}

// --- tablesContainOnlyRows ---

type tableChildren struct {
	invalids []*document.Node
	addRow   bool
}

func (tableChildren) violation() {}

type tablesContainOnlyRows struct {
	opts table.Options
}

// TablesContainOnlyRows removes every non-row child of a table. A table
// left without rows receives one empty row.
func TablesContainOnlyRows(opts table.Options) Rule {
	return tablesContainOnlyRows{opts: opts}
}

func (tablesContainOnlyRows) rule() {}

func (tablesContainOnlyRows) Name() string { return NameTablesContainOnlyRows }

func (r tablesContainOnlyRows) Match(n *document.Node) bool {
	return r.opts.IsTable(n)
}

func (r tablesContainOnlyRows) Validate(n *document.Node) Violation {
	invalids := n.FilterChildren(func(c *document.Node) bool { return !r.opts.IsRow(c) })
	addRow := len(invalids) == n.NumChildren()
	if len(invalids) == 0 && !addRow {
		return nil
	}
	return tableChildren{invalids: invalids, addRow: addRow}
}

func (r tablesContainOnlyRows) Repair(n *document.Node, v Violation) *change.Batch {
	tc := v.(tableChildren)
	b := change.NewBatch(NameTablesContainOnlyRows)
	for _, child := range tc.invalids {
		b.Add(change.RemoveNode{Key: child.Key()})
	}
	if tc.addRow {
		b.Add(change.InsertNode{Parent: n.Key(), Index: 0, Node: table.CreateRow(r.opts, 1)})
	}
	return b
}

// --- rowsContainRequiredColumns ---

type rowFix struct {
	row      *document.Node
	invalids []*document.Node
	cells    int
}

type rowColumns struct {
	columns int
	rows    []rowFix
}

func (rowColumns) violation() {}

type rowsContainRequiredColumns struct {
	opts table.Options
}

// RowsContainRequiredColumns makes every row of a table hold only cells,
// as many as the widest row and at least one. Missing cells are appended.
func RowsContainRequiredColumns(opts table.Options) Rule {
	return rowsContainRequiredColumns{opts: opts}
}

func (rowsContainRequiredColumns) rule() {}

func (rowsContainRequiredColumns) Name() string { return NameRowsContainRequiredColumns }

func (r rowsContainRequiredColumns) Match(n *document.Node) bool {
	return r.opts.IsTable(n)
}

func (r rowsContainRequiredColumns) Validate(n *document.Node) Violation {
	rows := n.FilterChildren(r.opts.IsRow)
	columns := Columns(r.opts, n)

	var fixes []rowFix
	for _, row := range rows {
		cells := row.CountChildren(r.opts.IsCell)
		invalids := row.FilterChildren(func(c *document.Node) bool { return !r.opts.IsCell(c) })
		if len(invalids) == 0 && cells == columns {
			continue
		}
		fixes = append(fixes, rowFix{row: row, invalids: invalids, cells: cells})
	}
	if len(fixes) == 0 {
		return nil
	}
	return rowColumns{columns: columns, rows: fixes}
}

func (r rowsContainRequiredColumns) Repair(_ *document.Node, v Violation) *change.Batch {
	rc := v.(rowColumns)
	b := change.NewBatch(NameRowsContainRequiredColumns)
	for _, fix := range rc.rows {
		for _, child := range fix.invalids {
			b.Add(change.RemoveNode{Key: child.Key()})
		}
		for i := fix.cells; i < rc.columns; i++ {
			b.Add(change.InsertNode{Parent: fix.row.Key(), Index: i, Node: table.CreateCell(r.opts, "")})
		}
	}
	return b
}

// Columns returns the column count a table normalizes to: the largest
// number of cells in any of its rows, and never less than one.
func Columns(opts table.Options, tbl *document.Node) int {
	columns := 1
	for _, row := range tbl.FilterChildren(opts.IsRow) {
		columns = max(columns, row.CountChildren(opts.IsCell))
	}
	return columns
}
