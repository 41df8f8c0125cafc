package table

import (
	"fmt"

	"github.com/dshills/edittable/internal/document"
)

// Default type tags.
const (
	DefaultTypeTable     = "table"
	DefaultTypeRow       = "table_row"
	DefaultTypeCell      = "table_cell"
	DefaultTypeContent   = "paragraph"
	DefaultExitBlockType = "paragraph"
)

// Options names the node types that make up a table and the cell content
// mode. Options is a plain value and is passed explicitly to every
// operation.
type Options struct {
	// TypeTable is the type of table blocks.
	TypeTable string
	// TypeRow is the type of row blocks.
	TypeRow string
	// TypeCell is the type of cell blocks.
	TypeCell string
	// TypeContent is the type of the block wrapping cell text when
	// AllowBlocksInCells is set.
	TypeContent string
	// ExitBlockType is the type of the block inserted when leaving a table.
	ExitBlockType string
	// AllowBlocksInCells makes cells hold content blocks instead of text.
	AllowBlocksInCells bool
}

// Option modifies Options.
type Option func(*Options)

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		TypeTable:     DefaultTypeTable,
		TypeRow:       DefaultTypeRow,
		TypeCell:      DefaultTypeCell,
		TypeContent:   DefaultTypeContent,
		ExitBlockType: DefaultExitBlockType,
	}
}

// NewOptions returns the defaults modified by opts.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTypeTable sets the table type.
func WithTypeTable(t string) Option {
	return func(o *Options) {
		if t != "" {
			o.TypeTable = t
		}
	}
}

// WithTypeRow sets the row type.
func WithTypeRow(t string) Option {
	return func(o *Options) {
		if t != "" {
			o.TypeRow = t
		}
	}
}

// WithTypeCell sets the cell type.
func WithTypeCell(t string) Option {
	return func(o *Options) {
		if t != "" {
			o.TypeCell = t
		}
	}
}

// WithTypeContent sets the cell content block type.
func WithTypeContent(t string) Option {
	return func(o *Options) {
		if t != "" {
			o.TypeContent = t
		}
	}
}

// WithExitBlockType sets the type of the block inserted when exiting.
func WithExitBlockType(t string) Option {
	return func(o *Options) {
		if t != "" {
			o.ExitBlockType = t
		}
	}
}

// WithBlocksInCells enables or disables content blocks inside cells.
func WithBlocksInCells(allow bool) Option {
	return func(o *Options) {
		o.AllowBlocksInCells = allow
	}
}

// Validate checks that every type tag is set and that the structural tags
// are distinct.
func (o Options) Validate() error {
	tags := map[string]string{
		"table":   o.TypeTable,
		"row":     o.TypeRow,
		"cell":    o.TypeCell,
		"content": o.TypeContent,
		"exit":    o.ExitBlockType,
	}
	for name, tag := range tags {
		if tag == "" {
			return fmt.Errorf("%w: %s type is empty", ErrInvalidOptions, name)
		}
	}
	structural := []string{o.TypeTable, o.TypeRow, o.TypeCell}
	for i := range structural {
		for j := i + 1; j < len(structural); j++ {
			if structural[i] == structural[j] {
				return fmt.Errorf("%w: type %q used twice", ErrInvalidOptions, structural[i])
			}
		}
	}
	if o.TypeContent == o.TypeTable || o.TypeContent == o.TypeRow || o.TypeContent == o.TypeCell {
		return fmt.Errorf("%w: content type %q collides with a table type", ErrInvalidOptions, o.TypeContent)
	}
	return nil
}

// IsTable reports whether n is a table.
func (o Options) IsTable(n *document.Node) bool {
	return n.Type() == o.TypeTable
}

// IsRow reports whether n is a row.
func (o Options) IsRow(n *document.Node) bool {
	return n.Type() == o.TypeRow
}

// IsCell reports whether n is a cell.
func (o Options) IsCell(n *document.Node) bool {
	return n.Type() == o.TypeCell
}
