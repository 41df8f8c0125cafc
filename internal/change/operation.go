package change

import (
	"fmt"

	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/document/selection"
)

// Operation is a primitive edit. The set of operations is closed; each one
// applies itself to a state and reports the keys that need re-validation.
type Operation interface {
	fmt.Stringer
	apply(s State) (State, []document.Key, error)
}

// InsertNode inserts Node under Parent at Index.
type InsertNode struct {
	Parent document.Key
	Index  int
	Node   *document.Node
}

func (op InsertNode) apply(s State) (State, []document.Key, error) {
	doc, err := s.Document.InsertNode(op.Parent, op.Index, op.Node)
	if err != nil {
		return s, nil, err
	}
	dirty := append([]document.Key{op.Parent}, document.Subtree(op.Node)...)
	return State{Document: doc, Selection: s.Selection}, dirty, nil
}

func (op InsertNode) String() string {
	return fmt.Sprintf("insert %s %q into %s at %d", op.Node.Kind(), op.Node.Type(), op.Parent, op.Index)
}

// RemoveNode removes the node with Key and its subtree. Selection points
// inside the removed subtree are cleared.
type RemoveNode struct {
	Key document.Key
}

func (op RemoveNode) apply(s State) (State, []document.Key, error) {
	parent, _ := s.Document.Parent(op.Key)
	doc, err := s.Document.RemoveNode(op.Key)
	if err != nil {
		return s, nil, err
	}
	var dirty []document.Key
	if parent != nil {
		dirty = append(dirty, parent.Key())
	}
	return State{Document: doc, Selection: keepSelection(doc, s.Selection)}, dirty, nil
}

func (op RemoveNode) String() string {
	return fmt.Sprintf("remove %s", op.Key)
}

// MoveNode moves the node with Key under Parent at Index.
type MoveNode struct {
	Key    document.Key
	Parent document.Key
	Index  int
}

func (op MoveNode) apply(s State) (State, []document.Key, error) {
	oldParent, _ := s.Document.Parent(op.Key)
	n, _ := s.Document.Get(op.Key)
	doc, err := s.Document.MoveNode(op.Key, op.Parent, op.Index)
	if err != nil {
		return s, nil, err
	}
	dirty := []document.Key{op.Parent}
	if oldParent != nil && oldParent.Key() != op.Parent {
		dirty = append(dirty, oldParent.Key())
	}
	dirty = append(dirty, document.Subtree(n)...)
	return State{Document: doc, Selection: s.Selection}, dirty, nil
}

func (op MoveNode) String() string {
	return fmt.Sprintf("move %s into %s at %d", op.Key, op.Parent, op.Index)
}

// WrapNode wraps the node with Key in Wrapper, which must be an empty block.
type WrapNode struct {
	Key     document.Key
	Wrapper *document.Node
}

func (op WrapNode) apply(s State) (State, []document.Key, error) {
	parent, _ := s.Document.Parent(op.Key)
	doc, err := s.Document.WrapNode(op.Key, op.Wrapper)
	if err != nil {
		return s, nil, err
	}
	dirty := []document.Key{op.Wrapper.Key(), op.Key}
	if parent != nil {
		dirty = append(dirty, parent.Key())
	}
	return State{Document: doc, Selection: s.Selection}, dirty, nil
}

func (op WrapNode) String() string {
	return fmt.Sprintf("wrap %s in %q", op.Key, op.Wrapper.Type())
}

// ReplaceNode swaps the node with Key for Node.
type ReplaceNode struct {
	Key  document.Key
	Node *document.Node
}

func (op ReplaceNode) apply(s State) (State, []document.Key, error) {
	parent, _ := s.Document.Parent(op.Key)
	doc, err := s.Document.ReplaceNode(op.Key, op.Node)
	if err != nil {
		return s, nil, err
	}
	dirty := document.Subtree(op.Node)
	if parent != nil {
		dirty = append(dirty, parent.Key())
	}
	return State{Document: doc, Selection: keepSelection(doc, s.Selection)}, dirty, nil
}

func (op ReplaceNode) String() string {
	return fmt.Sprintf("replace %s with %q", op.Key, op.Node.Type())
}

// SetData replaces the attributes of the node with Key.
type SetData struct {
	Key  document.Key
	Data document.Data
}

func (op SetData) apply(s State) (State, []document.Key, error) {
	doc, err := s.Document.SetData(op.Key, op.Data)
	if err != nil {
		return s, nil, err
	}
	return State{Document: doc, Selection: s.Selection}, []document.Key{op.Key}, nil
}

func (op SetData) String() string {
	return fmt.Sprintf("set data on %s", op.Key)
}

// Select replaces the selection. Both points must refer to existing nodes.
type Select struct {
	Range selection.Range
}

func (op Select) apply(s State) (State, []document.Key, error) {
	if op.Range == (selection.Range{}) {
		return State{Document: s.Document}, nil, nil
	}
	for _, p := range []selection.Point{op.Range.Anchor, op.Range.Focus} {
		if !s.Document.Has(p.Key) {
			return s, nil, fmt.Errorf("select %s: %w", p.Key, document.ErrNodeNotFound)
		}
		if p.Offset < 0 {
			return s, nil, fmt.Errorf("select %s: negative offset %d", p.Key, p.Offset)
		}
	}
	return State{Document: s.Document, Selection: op.Range}, nil, nil
}

func (op Select) String() string {
	return fmt.Sprintf("select %s:%d..%s:%d",
		op.Range.Anchor.Key, op.Range.Anchor.Offset, op.Range.Focus.Key, op.Range.Focus.Offset)
}

// keepSelection drops the selection if either point no longer exists.
func keepSelection(doc *document.Document, r selection.Range) selection.Range {
	if !r.IsSet() {
		return r
	}
	if !doc.Has(r.Anchor.Key) || !doc.Has(r.Focus.Key) {
		return selection.Range{}
	}
	return r
}
