package changes

import (
	"github.com/dshills/edittable/internal/change"
	"github.com/dshills/edittable/internal/table"
)

// MoveSelection moves the caret to column x of row y of the current table.
// The caret keeps its text offset, clamped to the length of the target
// cell's text. It fails with table.ErrNotInTable outside a table and with
// table.ErrOutOfRange when x or y is outside the grid.
func MoveSelection(opts table.Options, ch *change.Change, x, y int) error {
	s := ch.State()
	offset := s.StartOffset()

	pos, err := position(opts, s)
	if err != nil {
		return err
	}
	cell, err := pos.CellAt(x, y)
	if err != nil {
		return err
	}
	return selectCell(ch, cell, offset)
}

// MoveSelectionBy moves the caret dx columns and dy rows from the current
// cell. Horizontal moves wrap to the previous or next row. It reports false
// and leaves the selection alone when the target falls above the first row
// or below the last one.
func MoveSelectionBy(opts table.Options, ch *change.Change, dx, dy int) (bool, error) {
	pos, err := position(opts, ch.State())
	if err != nil {
		return false, err
	}
	width, height := pos.Width(), pos.Height()
	if width == 0 {
		return false, nil
	}

	x := pos.ColumnIndex() + dx
	y := pos.RowIndex() + dy
	y += floorDiv(x, width)
	x = mod(x, width)

	if y < 0 || y >= height {
		return false, nil
	}
	if err := MoveSelection(opts, ch, x, y); err != nil {
		return false, err
	}
	return true, nil
}

// MoveToNextCell moves the caret to the next cell, row by row. From the
// last cell a new row is appended first.
func MoveToNextCell(opts table.Options, ch *change.Change) error {
	pos, err := position(opts, ch.State())
	if err != nil {
		return err
	}
	if pos.IsLastCell() {
		height := pos.Height()
		if err := ch.Apply(change.InsertNode{
			Parent: pos.Table.Key(),
			Index:  height,
			Node:   table.CreateRow(opts, pos.Width()),
		}); err != nil {
			return err
		}
		return MoveSelection(opts, ch, 0, height)
	}
	_, err = MoveSelectionBy(opts, ch, 1, 0)
	return err
}

// MoveToPreviousCell moves the caret to the previous cell, row by row. It
// does nothing in the first cell.
func MoveToPreviousCell(opts table.Options, ch *change.Change) error {
	pos, err := position(opts, ch.State())
	if err != nil {
		return err
	}
	if pos.IsFirstCell() {
		return nil
	}
	_, err = MoveSelectionBy(opts, ch, -1, 0)
	return err
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
