package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dshills/edittable/internal/change"
	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/document/selection"
	"github.com/dshills/edittable/internal/engine/history"
	"github.com/dshills/edittable/internal/logging"
	"github.com/dshills/edittable/internal/normalize"
	"github.com/dshills/edittable/internal/table"
	"github.com/dshills/edittable/internal/table/changes"
	"github.com/dshills/edittable/internal/table/validate"
)

// Engine is the main facade for table editing.
// It holds the current editor state, runs table commands against it,
// normalizes what they touched and keeps undo/redo history.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	// Core components
	state   change.State
	driver  *normalize.Driver
	history *history.History
	logger  *slog.Logger

	// Configuration
	opts           table.Options
	maxSteps       int
	maxUndoEntries int
	readOnly       bool

	// Initialization
	initDoc *document.Document
	initSel selection.Range
}

// New creates an Engine with the given options. The initial document is
// fully normalized before New returns.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		opts:           table.DefaultOptions(),
		maxSteps:       DefaultMaxSteps,
		maxUndoEntries: DefaultMaxUndoEntries,
		logger:         logging.Discard(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.opts.Validate(); err != nil {
		return nil, err
	}

	e.driver = normalize.NewDriver(
		[]normalize.Validator{validate.Validator(e.opts)},
		normalize.WithMaxSteps(e.maxSteps),
		normalize.WithLogger(e.logger),
	)
	e.history = history.NewHistory(e.maxUndoEntries)

	doc := e.initDoc
	if doc == nil {
		doc = document.MustNew(document.NewDocument(
			document.NewBlock(e.opts.ExitBlockType, document.NewText("")),
		))
	}
	s := change.State{Document: doc}
	if e.initSel.IsSet() {
		ch := change.New(s)
		if err := ch.Select(e.initSel); err != nil {
			return nil, fmt.Errorf("initial selection: %w", err)
		}
		s = ch.State()
	}

	res, err := e.driver.Normalize(s)
	if err != nil {
		return nil, err
	}
	if res.Steps > 0 {
		e.logger.Info("normalized document", slog.Int("repairs", res.Steps))
	}
	e.state = res.State
	return e, nil
}

// ============================================================================
// Read Operations
// ============================================================================

// State returns the current editor state.
func (e *Engine) State() change.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Document returns the current document snapshot.
func (e *Engine) Document() *document.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Document
}

// Selection returns the current selection.
func (e *Engine) Selection() selection.Range {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Selection
}

// Options returns the table options the engine was created with.
func (e *Engine) Options() table.Options {
	return e.opts
}

// IsReadOnly returns true if the engine is read-only.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Position returns the table position of the selection start.
func (e *Engine) Position() (*table.Position, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return changes.GetPosition(e.opts, e.state)
}

// IsSelectionInTable reports whether both ends of the selection are in the
// same table.
func (e *Engine) IsSelectionInTable() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return changes.IsSelectionInTable(e.opts, e.state)
}

// IsSelectionOutOfTable reports whether neither end of the selection is in
// a table.
func (e *Engine) IsSelectionOutOfTable() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return changes.IsSelectionOutOfTable(e.opts, e.state)
}

// ColumnAligns returns the alignment of every column of the current table.
func (e *Engine) ColumnAligns() ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return changes.ColumnAligns(e.opts, e.state)
}

// ============================================================================
// Transactions
// ============================================================================

// Do runs fn against a change built on the current state. If fn succeeds
// the nodes it touched are normalized and the result becomes the current
// state. Changes that edit the document are recorded as one undo unit named
// name; selection-only changes are not. If fn fails nothing is committed.
func (e *Engine) Do(name string, fn func(ch *change.Change) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	ch := change.New(e.state)
	if err := fn(ch); err != nil {
		return err
	}
	if ch.IsEmpty() {
		return nil
	}

	res, err := e.driver.NormalizeKeys(ch.State(), ch.Dirty())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if editsDocument(ch.Operations()) {
		e.history.Push(name, e.state, res.State)
	}
	e.state = res.State

	e.logger.Debug("committed change",
		slog.String("name", name),
		slog.Int("operations", len(ch.Operations())),
		slog.Int("repairs", res.Steps),
	)
	return nil
}

func editsDocument(ops []change.Operation) bool {
	for _, op := range ops {
		if _, ok := op.(change.Select); !ok {
			return true
		}
	}
	return false
}

// SetDocument replaces the document, normalizes it and clears history.
func (e *Engine) SetDocument(doc *document.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	res, err := e.driver.Normalize(change.NewState(doc))
	if err != nil {
		return err
	}
	e.state = res.State
	e.history.Clear()
	return nil
}

// Normalize runs every rule over the whole document. It returns the number
// of repairs applied.
func (e *Engine) Normalize() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}
	res, err := e.driver.Normalize(e.state)
	if err != nil {
		return res.Steps, err
	}
	if res.Steps > 0 {
		e.history.Push("normalize", e.state, res.State)
	}
	e.state = res.State
	return res.Steps, nil
}

// ============================================================================
// Selection
// ============================================================================

// Select replaces the selection.
func (e *Engine) Select(r selection.Range) error {
	return e.Do("select", func(ch *change.Change) error {
		return ch.Select(r)
	})
}

// MoveSelection moves the caret to column x of row y of the current table.
func (e *Engine) MoveSelection(x, y int) error {
	return e.Do("move selection", func(ch *change.Change) error {
		return changes.MoveSelection(e.opts, ch, x, y)
	})
}

// MoveSelectionBy moves the caret by dx columns and dy rows. It reports
// false when the target is outside the table.
func (e *Engine) MoveSelectionBy(dx, dy int) (bool, error) {
	var moved bool
	err := e.Do("move selection", func(ch *change.Change) error {
		var err error
		moved, err = changes.MoveSelectionBy(e.opts, ch, dx, dy)
		return err
	})
	return moved, err
}

// PreviousCell moves the caret to the previous cell.
func (e *Engine) PreviousCell() error {
	return e.Do("previous cell", func(ch *change.Change) error {
		return changes.MoveToPreviousCell(e.opts, ch)
	})
}

// NextCell moves the caret to the next cell, appending a row from the last
// cell.
func (e *Engine) NextCell() error {
	return e.Do("next cell", func(ch *change.Change) error {
		return changes.MoveToNextCell(e.opts, ch)
	})
}

// ============================================================================
// Table Commands
// ============================================================================

// InsertTable inserts a columns x rows table after the current block.
func (e *Engine) InsertTable(columns, rows int) error {
	return e.Do("insert table", func(ch *change.Change) error {
		return changes.InsertTable(e.opts, ch, columns, rows)
	})
}

// InsertRow inserts a row at index at, or after the current row if at is
// negative.
func (e *Engine) InsertRow(at int) error {
	return e.Do("insert row", func(ch *change.Change) error {
		return changes.InsertRow(e.opts, ch, at)
	})
}

// InsertColumn inserts a column at index at, or after the current column if
// at is negative.
func (e *Engine) InsertColumn(at int) error {
	return e.Do("insert column", func(ch *change.Change) error {
		return changes.InsertColumn(e.opts, ch, at)
	})
}

// RemoveRow removes the row at index at, or the current row if at is
// negative.
func (e *Engine) RemoveRow(at int) error {
	return e.Do("remove row", func(ch *change.Change) error {
		return changes.RemoveRow(e.opts, ch, at)
	})
}

// RemoveColumn removes the column at index at, or the current column if at
// is negative.
func (e *Engine) RemoveColumn(at int) error {
	return e.Do("remove column", func(ch *change.Change) error {
		return changes.RemoveColumn(e.opts, ch, at)
	})
}

// RemoveTable removes the current table.
func (e *Engine) RemoveTable() error {
	return e.Do("remove table", func(ch *change.Change) error {
		return changes.RemoveTable(e.opts, ch)
	})
}

// ExitTable inserts an empty block after the current table and moves the
// caret into it.
func (e *Engine) ExitTable() error {
	return e.Do("exit table", func(ch *change.Change) error {
		return changes.ExitTable(e.opts, ch)
	})
}

// SetColumnAlign sets the alignment of the current column.
func (e *Engine) SetColumnAlign(align string) error {
	return e.Do("set column align", func(ch *change.Change) error {
		return changes.SetColumnAlign(e.opts, ch, align)
	})
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo restores the state before the last recorded change.
func (e *Engine) Undo() error {
	return e.restore(e.history.Undo)
}

// Redo restores the state after the last undone change.
func (e *Engine) Redo() error {
	return e.restore(e.history.Redo)
}

func (e *Engine) restore(pop func() (change.State, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	s, err := pop()
	if err != nil {
		return err
	}
	e.state = s
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of available undo operations.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of available redo operations.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}
