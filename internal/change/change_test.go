package change

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/document/selection"
)

func newTestState(t *testing.T, texts ...string) (State, []*document.Node) {
	t.Helper()
	var blocks []*document.Node
	for _, text := range texts {
		blocks = append(blocks, document.NewBlock("paragraph", document.NewText(text)))
	}
	doc, err := document.New(document.NewDocument(blocks...))
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}
	return NewState(doc), blocks
}

func TestApplyRecordsOperationsAndDirtyKeys(t *testing.T) {
	s, blocks := newTestState(t, "one", "two")
	ch := New(s)

	added := document.NewBlock("paragraph", document.NewText("three"))
	err := ch.Apply(
		InsertNode{Parent: s.Document.Root().Key(), Index: 2, Node: added},
		SetData{Key: blocks[0].Key(), Data: document.Data{"x": 1}},
	)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(ch.Operations()) != 2 {
		t.Errorf("expected 2 operations, got %d", len(ch.Operations()))
	}
	want := []document.Key{
		s.Document.Root().Key(),
		added.Key(),
		added.FirstText().Key(),
		blocks[0].Key(),
	}
	if diff := cmp.Diff(want, ch.Dirty()); diff != "" {
		t.Errorf("unexpected dirty keys (-want +got):\n%s", diff)
	}
	if ch.Base().Document != s.Document {
		t.Errorf("Base should keep the starting state")
	}
	if ch.Document().Root().NumChildren() != 3 {
		t.Errorf("current document should hold the insertion")
	}
}

func TestApplyStopsAtFirstError(t *testing.T) {
	s, blocks := newTestState(t, "one")
	ch := New(s)

	err := ch.Apply(
		SetData{Key: blocks[0].Key(), Data: document.Data{"x": 1}},
		RemoveNode{Key: "missing"},
		SetData{Key: blocks[0].Key(), Data: document.Data{"y": 2}},
	)
	if !errors.Is(err, document.ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
	if len(ch.Operations()) != 1 {
		t.Errorf("only the first operation should be recorded, got %d", len(ch.Operations()))
	}
	n, _ := ch.Document().Get(blocks[0].Key())
	if _, ok := n.Data().Get("y"); ok {
		t.Errorf("operations after the failure must not run")
	}
}

func TestRemoveNodeClearsVanishedSelection(t *testing.T) {
	s, blocks := newTestState(t, "one", "two")
	ch := New(s)
	if err := ch.CollapseToEndOf(blocks[1]); err != nil {
		t.Fatal(err)
	}
	if err := ch.Apply(RemoveNode{Key: blocks[0].Key()}); err != nil {
		t.Fatal(err)
	}
	if !ch.Selection().IsSet() {
		t.Errorf("selection outside the removed node should survive")
	}
	if err := ch.Apply(RemoveNode{Key: blocks[1].Key()}); err != nil {
		t.Fatal(err)
	}
	if ch.Selection().IsSet() {
		t.Errorf("selection inside the removed node should be cleared")
	}
}

func TestSelectValidatesPoints(t *testing.T) {
	s, blocks := newTestState(t, "one")
	ch := New(s)
	text := blocks[0].FirstText()

	if err := ch.Select(selection.At("missing", 0)); !errors.Is(err, document.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if err := ch.Select(selection.At(text.Key(), -1)); err == nil {
		t.Errorf("expected an error for a negative offset")
	}
	if err := ch.Select(selection.At(text.Key(), 2)); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := ch.Select(selection.Range{}); err != nil || ch.Selection().IsSet() {
		t.Errorf("a zero range should clear the selection")
	}
}

func TestCollapseAndMoveOffsets(t *testing.T) {
	s, blocks := newTestState(t, "hello")
	ch := New(s)
	text := blocks[0].FirstText()

	if err := ch.MoveOffsetsTo(1); !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}

	if err := ch.CollapseToEndOf(blocks[0]); err != nil {
		t.Fatal(err)
	}
	if got := ch.State().Start(); got != (selection.Point{Key: text.Key(), Offset: 5}) {
		t.Errorf("unexpected end point %+v", got)
	}

	tests := []struct {
		offset int
		want   int
	}{
		{2, 2},
		{99, 5},
		{-3, 0},
	}
	for _, tt := range tests {
		if err := ch.MoveOffsetsTo(tt.offset); err != nil {
			t.Fatal(err)
		}
		if got := ch.State().StartOffset(); got != tt.want {
			t.Errorf("MoveOffsetsTo(%d): expected %d, got %d", tt.offset, tt.want, got)
		}
	}

	if err := ch.CollapseToStartOf(blocks[0]); err != nil {
		t.Fatal(err)
	}
	if ch.State().StartOffset() != 0 {
		t.Errorf("expected offset 0 after CollapseToStartOf")
	}
	if err := ch.CollapseToStartOf(document.NewBlock("empty")); err == nil {
		t.Errorf("expected an error collapsing into a node without text")
	}
}

func TestStateBlocks(t *testing.T) {
	s, blocks := newTestState(t, "one", "two")
	if _, ok := s.StartBlock(); ok {
		t.Errorf("no selection should mean no start block")
	}

	ch := New(s)
	r := selection.Range{
		Anchor: selection.Point{Key: blocks[1].FirstText().Key(), Offset: 1},
		Focus:  selection.Point{Key: blocks[0].FirstText().Key(), Offset: 2},
	}
	if err := ch.Select(r); err != nil {
		t.Fatal(err)
	}
	start, _ := ch.State().StartBlock()
	end, _ := ch.State().EndBlock()
	if start != blocks[0] || end != blocks[1] {
		t.Errorf("a backward selection should start at the focus")
	}
	if ch.State().StartOffset() != 2 {
		t.Errorf("expected start offset 2, got %d", ch.State().StartOffset())
	}
}

func TestBatchApplyNamesErrors(t *testing.T) {
	s, _ := newTestState(t, "one")
	b := NewBatch("fix", RemoveNode{Key: "missing"})
	b.Add(RemoveNode{Key: "other"})
	if b.Len() != 2 {
		t.Errorf("expected 2 operations, got %d", b.Len())
	}
	err := b.Apply(New(s))
	if err == nil || !errors.Is(err, document.ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}
