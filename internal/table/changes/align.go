package changes

import (
	"errors"
	"fmt"

	"github.com/dshills/edittable/internal/change"
	"github.com/dshills/edittable/internal/table"
)

// AlignKey is the table data key holding one alignment per column.
const AlignKey = "align"

// Column alignments.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// ErrInvalidAlign indicates an unknown alignment value.
var ErrInvalidAlign = errors.New("invalid column alignment")

// SetColumnAlign sets the alignment of the current column. Columns without
// an alignment default to left.
func SetColumnAlign(opts table.Options, ch *change.Change, align string) error {
	switch align {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAlign, align)
	}

	pos, err := position(opts, ch.State())
	if err != nil {
		return err
	}
	aligns := padAligns(pos.Table.Data().Strings(AlignKey), pos.Width())
	aligns[pos.ColumnIndex()] = align
	return setAligns(ch, pos.Table, aligns)
}

// ColumnAligns returns the alignment of every column of the current table.
func ColumnAligns(opts table.Options, s change.State) ([]string, error) {
	pos, err := position(opts, s)
	if err != nil {
		return nil, err
	}
	return padAligns(pos.Table.Data().Strings(AlignKey), pos.Width()), nil
}

// padAligns returns aligns resized to width, filling with AlignLeft.
func padAligns(aligns []string, width int) []string {
	out := make([]string, width)
	for i := range out {
		out[i] = AlignLeft
		if i < len(aligns) && aligns[i] != "" {
			out[i] = aligns[i]
		}
	}
	return out
}
