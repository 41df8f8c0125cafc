package change

import (
	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/document/selection"
)

// State is an immutable editor state: a document snapshot and a selection.
type State struct {
	Document  *document.Document
	Selection selection.Range
}

// NewState creates a state with an empty selection.
func NewState(doc *document.Document) State {
	return State{Document: doc}
}

// Start returns the start point of the selection.
func (s State) Start() selection.Point {
	if !s.Selection.IsSet() {
		return selection.Point{}
	}
	return s.Selection.Start(s.Document)
}

// End returns the end point of the selection.
func (s State) End() selection.Point {
	if !s.Selection.IsSet() {
		return selection.Point{}
	}
	return s.Selection.End(s.Document)
}

// StartOffset returns the offset of the selection start.
func (s State) StartOffset() int {
	return s.Start().Offset
}

// StartBlock returns the closest block holding the selection start.
func (s State) StartBlock() (*document.Node, bool) {
	p := s.Start()
	if !p.IsSet() {
		return nil, false
	}
	return s.Document.ClosestBlock(p.Key)
}

// EndBlock returns the closest block holding the selection end.
func (s State) EndBlock() (*document.Node, bool) {
	p := s.End()
	if !p.IsSet() {
		return nil, false
	}
	return s.Document.ClosestBlock(p.Key)
}
