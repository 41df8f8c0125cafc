package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/dshills/edittable/internal/change"
	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/document/selection"
	"github.com/dshills/edittable/internal/normalize"
	"github.com/dshills/edittable/internal/table"
)

func newEngineWithTable(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Select(selection.At(e.Document().Texts()[0].Key(), 0)); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := e.InsertTable(3, 2); err != nil {
		t.Fatalf("InsertTable: %v", err)
	}
	return e
}

func position(t *testing.T, e *Engine) (int, int) {
	t.Helper()
	pos, err := e.Position()
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	return pos.ColumnIndex(), pos.RowIndex()
}

func TestNew(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root := e.Document().Root()
	if root.NumChildren() != 1 || root.Child(0).Type() != table.DefaultExitBlockType {
		t.Errorf("expected a single empty block, got %d children", root.NumChildren())
	}
	if e.Selection().IsSet() {
		t.Errorf("expected no selection")
	}
	if !e.IsSelectionOutOfTable() {
		t.Errorf("expected the selection to be out of any table")
	}
}

func TestNewNormalizesDocument(t *testing.T) {
	opts := table.DefaultOptions()
	cell := table.CreateCell(opts, "x")
	doc := document.MustNew(document.NewDocument(cell))

	e, err := New(WithDocument(doc), WithSelection(selection.At(cell.FirstText().Key(), 1)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	top := e.Document().Root().Child(0)
	if !opts.IsTable(top) {
		t.Fatalf("a bare cell should end up in a table, got %q", top.Type())
	}
	if !e.IsSelectionInTable() {
		t.Errorf("the selection should survive normalization")
	}
	if e.CanUndo() {
		t.Errorf("initial normalization is not undoable")
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	opts := table.DefaultOptions()
	opts.TypeRow = opts.TypeTable
	if _, err := New(WithTableOptions(opts)); !errors.Is(err, table.ErrInvalidOptions) {
		t.Errorf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestNewNotConverging(t *testing.T) {
	// A bare cell needs two repairs.
	opts := table.DefaultOptions()
	doc := document.MustNew(document.NewDocument(table.CreateCell(opts, "x")))
	if _, err := New(WithDocument(doc), WithMaxSteps(1)); !errors.Is(err, normalize.ErrNotConverging) {
		t.Errorf("expected ErrNotConverging, got %v", err)
	}
}

func TestTableCommands(t *testing.T) {
	e := newEngineWithTable(t)
	if !e.IsSelectionInTable() {
		t.Fatal("caret should be in the new table")
	}
	if x, y := position(t, e); x != 0 || y != 0 {
		t.Errorf("expected (0,0), got (%d,%d)", x, y)
	}

	if err := e.NextCell(); err != nil {
		t.Fatal(err)
	}
	if err := e.InsertRow(-1); err != nil {
		t.Fatal(err)
	}
	if x, y := position(t, e); x != 1 || y != 1 {
		t.Errorf("expected (1,1), got (%d,%d)", x, y)
	}
	if err := e.InsertColumn(-1); err != nil {
		t.Fatal(err)
	}
	pos, _ := e.Position()
	if pos.Width() != 4 || pos.Height() != 3 {
		t.Errorf("expected 4x3, got %dx%d", pos.Width(), pos.Height())
	}

	if err := e.RemoveColumn(-1); err != nil {
		t.Fatal(err)
	}
	if err := e.RemoveRow(-1); err != nil {
		t.Fatal(err)
	}
	pos, _ = e.Position()
	if pos.Width() != 3 || pos.Height() != 2 {
		t.Errorf("expected 3x2, got %dx%d", pos.Width(), pos.Height())
	}

	if err := e.SetColumnAlign("center"); err != nil {
		t.Fatal(err)
	}
	aligns, err := e.ColumnAligns()
	if err != nil {
		t.Fatal(err)
	}
	if aligns[pos.ColumnIndex()] != "center" {
		t.Errorf("expected center, got %v", aligns)
	}

	if err := e.ExitTable(); err != nil {
		t.Fatal(err)
	}
	if !e.IsSelectionOutOfTable() {
		t.Errorf("caret should have left the table")
	}
}

func TestMoveSelection(t *testing.T) {
	e := newEngineWithTable(t)

	if err := e.MoveSelection(2, 1); err != nil {
		t.Fatal(err)
	}
	if x, y := position(t, e); x != 2 || y != 1 {
		t.Errorf("expected (2,1), got (%d,%d)", x, y)
	}
	if err := e.MoveSelection(3, 0); !errors.Is(err, table.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}

	moved, err := e.MoveSelectionBy(0, 1)
	if err != nil || moved {
		t.Errorf("moving below the last row should report false, got %v, %v", moved, err)
	}
	moved, err = e.MoveSelectionBy(-1, -1)
	if err != nil || !moved {
		t.Fatalf("expected a move, got %v, %v", moved, err)
	}
	if x, y := position(t, e); x != 1 || y != 0 {
		t.Errorf("expected (1,0), got (%d,%d)", x, y)
	}
	if err := e.PreviousCell(); err != nil {
		t.Fatal(err)
	}
	if x, y := position(t, e); x != 0 || y != 0 {
		t.Errorf("expected (0,0), got (%d,%d)", x, y)
	}
}

func TestSelectionMovesAreNotUndoable(t *testing.T) {
	e := newEngineWithTable(t)
	undo := e.UndoCount()

	if err := e.MoveSelection(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := e.NextCell(); err != nil {
		t.Fatal(err)
	}
	if e.UndoCount() != undo {
		t.Errorf("selection moves should not be recorded, got %d entries", e.UndoCount())
	}

	// From the last cell NextCell appends a row, which is recorded.
	if err := e.MoveSelection(2, 1); err != nil {
		t.Fatal(err)
	}
	if err := e.NextCell(); err != nil {
		t.Fatal(err)
	}
	if e.UndoCount() != undo+1 {
		t.Errorf("appending a row should be recorded")
	}
}

func TestUndoRedo(t *testing.T) {
	e := newEngineWithTable(t)
	withTable := e.Document()

	if err := e.RemoveTable(); err != nil {
		t.Fatal(err)
	}
	if e.IsSelectionInTable() {
		t.Fatal("table should be gone")
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if e.Document() != withTable {
		t.Errorf("undo should restore the previous snapshot")
	}
	if !e.IsSelectionInTable() {
		t.Errorf("undo should restore the selection")
	}

	if err := e.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if e.IsSelectionInTable() {
		t.Errorf("redo should remove the table again")
	}
	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}

	e.ClearHistory()
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestDoNormalizesAndRollsBack(t *testing.T) {
	e := newEngineWithTable(t)
	pos, _ := e.Position()
	row := pos.Table.Child(0)
	before := e.Document()

	// A failing transaction commits nothing.
	err := e.Do("broken", func(ch *change.Change) error {
		if err := ch.Apply(change.RemoveNode{Key: row.Child(0).Key()}); err != nil {
			return err
		}
		return ch.Apply(change.RemoveNode{Key: "missing"})
	})
	if !errors.Is(err, document.ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
	if e.Document() != before {
		t.Errorf("a failed transaction must not change the document")
	}

	// Removing a cell leaves a short row that normalization refills.
	err = e.Do("drop cell", func(ch *change.Change) error {
		return ch.Apply(change.RemoveNode{Key: row.Child(0).Key()})
	})
	if err != nil {
		t.Fatal(err)
	}
	tbl, _ := e.Document().Get(pos.Table.Key())
	for i, r := range tbl.Children() {
		if r.NumChildren() != 3 {
			t.Errorf("row %d: expected 3 cells after normalization, got %d", i, r.NumChildren())
		}
	}
}

func TestReadOnly(t *testing.T) {
	e, err := New(WithReadOnly())
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsReadOnly() {
		t.Error("expected read-only engine")
	}
	if err := e.InsertTable(2, 2); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if _, err := e.Normalize(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly from Normalize, got %v", err)
	}
	if err := e.Undo(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly from Undo, got %v", err)
	}
}

func TestSetDocument(t *testing.T) {
	e := newEngineWithTable(t)
	opts := e.Options()

	doc := document.MustNew(document.NewDocument(document.NewBlock(opts.TypeTable)))
	if err := e.SetDocument(doc); err != nil {
		t.Fatal(err)
	}
	tbl := e.Document().Root().Child(0)
	if tbl.NumChildren() != 1 {
		t.Errorf("an empty table should receive a row")
	}
	if e.CanUndo() {
		t.Errorf("SetDocument should clear history")
	}
	if steps, err := e.Normalize(); err != nil || steps != 0 {
		t.Errorf("expected a clean document, got %d steps, err %v", steps, err)
	}
}

func TestConcurrentReads(t *testing.T) {
	e := newEngineWithTable(t)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 50 {
				if i%2 == 0 {
					_ = e.IsSelectionInTable()
					_, _ = e.Position()
				} else {
					_, _ = e.MoveSelectionBy(1, 0)
				}
			}
		}(i)
	}
	wg.Wait()

	if !e.IsSelectionInTable() {
		t.Errorf("caret should still be in the table")
	}
}
