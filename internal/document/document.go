package document

import (
	"fmt"
	"slices"
)

// entry locates one node inside a snapshot.
type entry struct {
	node   *Node
	parent *Node
	index  int
	path   []int
}

// Document is an immutable snapshot of a document tree together with a key
// index used for ancestor lookup. A Document is safe for concurrent reads.
type Document struct {
	root  *Node
	index map[Key]*entry
	order []Key // keys in document order
}

// New creates a snapshot from a document root.
// It fails if the root is not of kind document or if two nodes share a key.
func New(root *Node) (*Document, error) {
	if root == nil || root.kind != KindDocument {
		return nil, ErrInvalidRoot
	}
	d := &Document{
		root:  root,
		index: make(map[Key]*entry),
	}
	if err := d.indexNode(root, nil, 0, nil); err != nil {
		return nil, err
	}
	return d, nil
}

// MustNew is like New but panics on error. Intended for tests and literals.
func MustNew(root *Node) *Document {
	d, err := New(root)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Document) indexNode(n, parent *Node, index int, path []int) error {
	if _, exists := d.index[n.key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, n.key)
	}
	d.index[n.key] = &entry{node: n, parent: parent, index: index, path: path}
	d.order = append(d.order, n.key)
	for i, child := range n.children {
		childPath := make([]int, len(path)+1)
		copy(childPath, path)
		childPath[len(path)] = i
		if err := d.indexNode(child, n, i, childPath); err != nil {
			return err
		}
	}
	return nil
}

// Root returns the root node.
func (d *Document) Root() *Node {
	return d.root
}

// Len returns the number of nodes in the document, root included.
func (d *Document) Len() int {
	return len(d.order)
}

// Get returns the node with the given key.
func (d *Document) Get(key Key) (*Node, bool) {
	e, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return e.node, true
}

// Has returns true if a node with the given key exists.
func (d *Document) Has(key Key) bool {
	_, ok := d.index[key]
	return ok
}

// Parent returns the parent of the node with the given key.
// The root has no parent.
func (d *Document) Parent(key Key) (*Node, bool) {
	e, ok := d.index[key]
	if !ok || e.parent == nil {
		return nil, false
	}
	return e.parent, true
}

// IndexOf returns the index of the node within its parent.
func (d *Document) IndexOf(key Key) (int, bool) {
	e, ok := d.index[key]
	if !ok || e.parent == nil {
		return 0, false
	}
	return e.index, true
}

// Path returns the child indices leading from the root to the node.
func (d *Document) Path(key Key) ([]int, bool) {
	e, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(e.path), true
}

// Depth returns the number of ancestors of the node.
func (d *Document) Depth(key Key) int {
	e, ok := d.index[key]
	if !ok {
		return -1
	}
	return len(e.path)
}

// Ancestors returns the ancestors of the node, nearest first, root last.
func (d *Document) Ancestors(key Key) []*Node {
	var out []*Node
	e, ok := d.index[key]
	for ok && e.parent != nil {
		out = append(out, e.parent)
		e, ok = d.index[e.parent.key]
	}
	return out
}

// Closest returns the nearest strict ancestor of the node matching pred.
// The node itself is never considered.
func (d *Document) Closest(key Key, pred func(*Node) bool) (*Node, bool) {
	e, ok := d.index[key]
	for ok && e.parent != nil {
		if pred(e.parent) {
			return e.parent, true
		}
		e, ok = d.index[e.parent.key]
	}
	return nil, false
}

// ClosestBlock returns the nearest block ancestor of the node, or the node
// itself if it is a block.
func (d *Document) ClosestBlock(key Key) (*Node, bool) {
	n, ok := d.Get(key)
	if !ok {
		return nil, false
	}
	if n.kind == KindBlock {
		return n, true
	}
	return d.Closest(key, (*Node).IsBlock)
}

// IsAncestor returns true if ancestor is a strict ancestor of key.
func (d *Document) IsAncestor(ancestor, key Key) bool {
	_, ok := d.Closest(key, func(n *Node) bool { return n.key == ancestor })
	return ok
}

// Compare orders two nodes by document order. It returns -1 if a comes
// before b, 1 if after, 0 if they are the same node or either is missing.
func (d *Document) Compare(a, b Key) int {
	pa, okA := d.Path(a)
	pb, okB := d.Path(b)
	if !okA || !okB {
		return 0
	}
	return slices.Compare(pa, pb)
}

// Texts returns all text leaves of the document in document order.
func (d *Document) Texts() []*Node {
	return d.root.Texts()
}

// Nodes returns all nodes in document order, root first.
func (d *Document) Nodes() []*Node {
	out := make([]*Node, len(d.order))
	for i, key := range d.order {
		out[i] = d.index[key].node
	}
	return out
}

// Subtree returns the keys of the node and all its descendants.
func Subtree(n *Node) []Key {
	var keys []Key
	_ = Walk(n, func(node *Node, _ int) error {
		keys = append(keys, node.key)
		return nil
	})
	return keys
}
