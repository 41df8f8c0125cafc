package changes

import (
	"fmt"
	"slices"

	"github.com/dshills/edittable/internal/change"
	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/table"
)

// Default size of a table created by InsertTable.
const (
	DefaultColumns = 2
	DefaultRows    = 2
)

// InsertTable inserts an empty table after the block holding the selection,
// or at the end of the document when there is no selection, and puts the
// caret in its first cell. Sizes below one fall back to the defaults.
func InsertTable(opts table.Options, ch *change.Change, columns, rows int) error {
	if columns < 1 {
		columns = DefaultColumns
	}
	if rows < 1 {
		rows = DefaultRows
	}
	tbl := table.CreateTable(opts, columns, rows)
	doc := ch.Document()

	parent, index := doc.Root().Key(), doc.Root().NumChildren()
	if block, ok := ch.State().StartBlock(); ok {
		if p, ok := doc.Parent(block.Key()); ok {
			i, _ := doc.IndexOf(block.Key())
			parent, index = p.Key(), i+1
		}
	}

	if err := ch.Apply(change.InsertNode{Parent: parent, Index: index, Node: tbl}); err != nil {
		return err
	}
	return ch.CollapseToStartOf(tbl)
}

// InsertRow inserts an empty row at index at, or after the current row when
// at is negative, and moves the caret to the same column in the new row.
func InsertRow(opts table.Options, ch *change.Change, at int) error {
	pos, err := position(opts, ch.State())
	if err != nil {
		return err
	}
	if at < 0 {
		at = pos.RowIndex() + 1
	}
	if at > pos.Height() {
		return fmt.Errorf("%w: insert row at %d of %d", table.ErrOutOfRange, at, pos.Height())
	}

	column := pos.ColumnIndex()
	row := table.CreateRow(opts, pos.Width())
	if err := ch.Apply(change.InsertNode{Parent: pos.Table.Key(), Index: at, Node: row}); err != nil {
		return err
	}
	return MoveSelection(opts, ch, column, at)
}

// InsertColumn inserts an empty cell at index at in every row, or after the
// current column when at is negative, and moves the caret to the new cell of
// the current row.
func InsertColumn(opts table.Options, ch *change.Change, at int) error {
	pos, err := position(opts, ch.State())
	if err != nil {
		return err
	}
	if at < 0 {
		at = pos.ColumnIndex() + 1
	}
	if at > pos.Width() {
		return fmt.Errorf("%w: insert column at %d of %d", table.ErrOutOfRange, at, pos.Width())
	}

	for _, row := range pos.Table.Children() {
		if err := ch.Apply(change.InsertNode{
			Parent: row.Key(),
			Index:  min(at, row.NumChildren()),
			Node:   table.CreateCell(opts, ""),
		}); err != nil {
			return err
		}
	}

	if aligns := pos.Table.Data().Strings(AlignKey); aligns != nil {
		aligns = padAligns(aligns, pos.Width())
		aligns = slices.Insert(aligns, at, AlignLeft)
		if err := setAligns(ch, pos.Table, aligns); err != nil {
			return err
		}
	}

	return MoveSelection(opts, ch, at, pos.RowIndex())
}

// setAligns stores the column alignments on the table as it exists in the
// current state of ch.
func setAligns(ch *change.Change, tbl *document.Node, aligns []string) error {
	current, ok := ch.Document().Get(tbl.Key())
	if !ok {
		return fmt.Errorf("set align: %w", document.ErrNodeNotFound)
	}
	return ch.Apply(change.SetData{Key: tbl.Key(), Data: current.Data().With(AlignKey, aligns)})
}
