package changes

import (
	"fmt"
	"slices"

	"github.com/dshills/edittable/internal/change"
	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/table"
)

// RemoveRow removes the row at index at, or the current row when at is
// negative. The last remaining row is emptied instead of removed. The caret
// stays in the same column, on the row that takes the removed one's place.
func RemoveRow(opts table.Options, ch *change.Change, at int) error {
	s := ch.State()
	pos, err := position(opts, s)
	if err != nil {
		return err
	}
	height, current, column := pos.Height(), pos.RowIndex(), pos.ColumnIndex()
	if at < 0 {
		at = current
	}
	if at >= height {
		return fmt.Errorf("%w: remove row %d of %d", table.ErrOutOfRange, at, height)
	}

	if height == 1 {
		row := pos.Table.Child(0)
		if err := clearCells(opts, ch, row.Children()); err != nil {
			return err
		}
		return collapseToCell(ch, pos.Table.Key(), column, 0)
	}

	offset := s.StartOffset()
	target := current
	switch {
	case at < current:
		target = current - 1
	case at == current && at == height-1:
		target = at - 1
	}

	if err := ch.Apply(change.RemoveNode{Key: pos.Table.Child(at).Key()}); err != nil {
		return err
	}
	return selectCellAt(ch, pos.Table.Key(), column, target, offset)
}

// RemoveColumn removes the column at index at, or the current column when
// at is negative. The last remaining column is emptied instead of removed.
func RemoveColumn(opts table.Options, ch *change.Change, at int) error {
	s := ch.State()
	pos, err := position(opts, s)
	if err != nil {
		return err
	}
	width, current, row := pos.Width(), pos.ColumnIndex(), pos.RowIndex()
	if at < 0 {
		at = current
	}
	if at >= width {
		return fmt.Errorf("%w: remove column %d of %d", table.ErrOutOfRange, at, width)
	}

	var cells []*document.Node
	for _, r := range pos.Table.Children() {
		if c := r.Child(at); c != nil {
			cells = append(cells, c)
		}
	}

	if width == 1 {
		if err := clearCells(opts, ch, cells); err != nil {
			return err
		}
		return collapseToCell(ch, pos.Table.Key(), 0, row)
	}

	offset := s.StartOffset()
	target := current
	switch {
	case at < current:
		target = current - 1
	case at == current && at == width-1:
		target = at - 1
	}

	for _, c := range cells {
		if err := ch.Apply(change.RemoveNode{Key: c.Key()}); err != nil {
			return err
		}
	}
	if aligns := pos.Table.Data().Strings(AlignKey); aligns != nil {
		aligns = padAligns(aligns, width)
		aligns = slices.Delete(aligns, at, at+1)
		if err := setAligns(ch, pos.Table, aligns); err != nil {
			return err
		}
	}
	return selectCellAt(ch, pos.Table.Key(), target, row, offset)
}

// RemoveTable removes the current table. The caret moves to the start of
// the next text after the table, else the end of the previous one; with
// neither, an empty exit block takes the table's place.
func RemoveTable(opts table.Options, ch *change.Change) error {
	pos, err := position(opts, ch.State())
	if err != nil {
		return err
	}
	doc := ch.Document()
	tblKey := pos.Table.Key()

	var prev, next *document.Node
	inside := false
	for _, text := range doc.Texts() {
		switch {
		case doc.IsAncestor(tblKey, text.Key()):
			inside = true
		case inside:
			next = text
		default:
			prev = text
		}
		if next != nil {
			break
		}
	}

	parent, _ := doc.Parent(tblKey)
	index, _ := doc.IndexOf(tblKey)
	if err := ch.Apply(change.RemoveNode{Key: tblKey}); err != nil {
		return err
	}

	switch {
	case next != nil:
		return ch.CollapseToStartOf(next)
	case prev != nil:
		return ch.CollapseToEndOf(prev)
	}
	block := document.NewBlock(opts.ExitBlockType, document.NewText(""))
	if err := ch.Apply(change.InsertNode{Parent: parent.Key(), Index: index, Node: block}); err != nil {
		return err
	}
	return ch.CollapseToStartOf(block)
}

// ExitTable inserts an empty exit block right after the current table and
// puts the caret in it.
func ExitTable(opts table.Options, ch *change.Change) error {
	pos, err := position(opts, ch.State())
	if err != nil {
		return err
	}
	doc := ch.Document()
	parent, _ := doc.Parent(pos.Table.Key())
	index, _ := doc.IndexOf(pos.Table.Key())

	block := document.NewBlock(opts.ExitBlockType, document.NewText(""))
	if err := ch.Apply(change.InsertNode{Parent: parent.Key(), Index: index + 1, Node: block}); err != nil {
		return err
	}
	return ch.CollapseToStartOf(block)
}

// clearCells replaces cells by empty ones carrying the same keys.
func clearCells(opts table.Options, ch *change.Change, cells []*document.Node) error {
	for _, c := range cells {
		empty := table.CreateCell(opts, "").WithKey(c.Key()).WithData(c.Data())
		if err := ch.Apply(change.ReplaceNode{Key: c.Key(), Node: empty}); err != nil {
			return err
		}
	}
	return nil
}

// cellIn looks up cell (x, y) of the table with key tblKey in the current
// state of ch.
func cellIn(ch *change.Change, tblKey document.Key, x, y int) (*document.Node, error) {
	tbl, ok := ch.Document().Get(tblKey)
	if !ok {
		return nil, fmt.Errorf("table %s: %w", tblKey, document.ErrNodeNotFound)
	}
	row := tbl.Child(y)
	if row == nil {
		return nil, fmt.Errorf("%w: row %d", table.ErrOutOfRange, y)
	}
	cell := row.Child(x)
	if cell == nil {
		return nil, fmt.Errorf("%w: column %d", table.ErrOutOfRange, x)
	}
	return cell, nil
}

func collapseToCell(ch *change.Change, tblKey document.Key, x, y int) error {
	cell, err := cellIn(ch, tblKey, x, y)
	if err != nil {
		return err
	}
	return ch.CollapseToStartOf(cell)
}

func selectCellAt(ch *change.Change, tblKey document.Key, x, y, offset int) error {
	cell, err := cellIn(ch, tblKey, x, y)
	if err != nil {
		return err
	}
	return selectCell(ch, cell, offset)
}

// selectCell puts a caret in the last text of cell at offset, clamped to
// the cell's text length.
func selectCell(ch *change.Change, cell *document.Node, offset int) error {
	if n := cell.TextLen(); offset > n {
		offset = n
	}
	if err := ch.CollapseToEndOf(cell); err != nil {
		return err
	}
	return ch.MoveOffsetsTo(offset)
}
