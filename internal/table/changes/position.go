package changes

import (
	"fmt"

	"github.com/dshills/edittable/internal/change"
	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/table"
)

// StartCell returns the cell holding the selection start: the start block
// itself if it is a cell, else its nearest cell ancestor.
func StartCell(opts table.Options, s change.State) (*document.Node, error) {
	block, ok := s.StartBlock()
	if !ok {
		return nil, fmt.Errorf("%w: no selection", table.ErrNotInTable)
	}
	return cellOf(opts, s.Document, block)
}

func cellOf(opts table.Options, doc *document.Document, block *document.Node) (*document.Node, error) {
	if opts.IsCell(block) {
		return block, nil
	}
	cell, ok := doc.Closest(block.Key(), opts.IsCell)
	if !ok {
		return nil, fmt.Errorf("%w: block %s is not in a cell", table.ErrNotInTable, block.Key())
	}
	return cell, nil
}

// GetPosition returns the table position of the selection start.
func GetPosition(opts table.Options, s change.State) (*table.Position, error) {
	block, ok := s.StartBlock()
	if !ok {
		return nil, fmt.Errorf("%w: no selection", table.ErrNotInTable)
	}
	return table.NewPosition(s.Document, block, opts)
}

// IsSelectionInTable reports whether both ends of the selection are inside
// cells of the same table.
func IsSelectionInTable(opts table.Options, s change.State) bool {
	start, ok := s.StartBlock()
	if !ok {
		return false
	}
	end, ok := s.EndBlock()
	if !ok {
		return false
	}
	startPos, err := table.NewPosition(s.Document, start, opts)
	if err != nil {
		return false
	}
	endPos, err := table.NewPosition(s.Document, end, opts)
	if err != nil {
		return false
	}
	return startPos.Table == endPos.Table
}

// IsSelectionOutOfTable reports whether neither end of the selection is
// inside a table.
func IsSelectionOutOfTable(opts table.Options, s change.State) bool {
	start, ok := s.StartBlock()
	if !ok {
		return true
	}
	end, _ := s.EndBlock()
	for _, block := range []*document.Node{start, end} {
		if block == nil {
			continue
		}
		if _, err := table.NewPosition(s.Document, block, opts); err == nil {
			return false
		}
	}
	return true
}

// position resolves the position of the selection start through its cell.
func position(opts table.Options, s change.State) (*table.Position, error) {
	cell, err := StartCell(opts, s)
	if err != nil {
		return nil, err
	}
	return table.NewPosition(s.Document, cell, opts)
}
