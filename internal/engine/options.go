package engine

import (
	"log/slog"

	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/document/selection"
	"github.com/dshills/edittable/internal/normalize"
	"github.com/dshills/edittable/internal/table"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
	DefaultMaxSteps       = normalize.DefaultMaxSteps
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithTableOptions sets the table node types and cell content mode.
func WithTableOptions(opts table.Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithDocument sets the initial document. It is normalized when the engine
// is created.
func WithDocument(doc *document.Document) Option {
	return func(e *Engine) {
		if doc != nil {
			e.initDoc = doc
		}
	}
}

// WithSelection sets the initial selection.
func WithSelection(r selection.Range) Option {
	return func(e *Engine) {
		e.initSel = r
	}
}

// WithLogger sets the logger for commits and repairs.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxSteps sets the maximum number of repairs per normalization run.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
