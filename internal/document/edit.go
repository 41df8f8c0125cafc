package document

import (
	"fmt"
	"slices"
)

// InsertNode inserts n as a child of parent at index. Index may equal the
// number of children to append.
func (d *Document) InsertNode(parent Key, index int, n *Node) (*Document, error) {
	for _, key := range Subtree(n) {
		if d.Has(key) {
			return nil, fmt.Errorf("insert %s: %w", key, ErrDuplicateKey)
		}
	}
	return d.update(parent, func(p *Node) (*Node, error) {
		if !p.IsContainer() {
			return nil, ErrNotContainer
		}
		if index < 0 || index > len(p.children) {
			return nil, fmt.Errorf("%w: %d not in [0,%d]", ErrIndexOutOfRange, index, len(p.children))
		}
		out := p.clone()
		out.children = slices.Insert(out.children, index, n)
		return out, nil
	})
}

// RemoveNode removes the node with the given key and its subtree.
func (d *Document) RemoveNode(key Key) (*Document, error) {
	e, ok := d.index[key]
	if !ok {
		return nil, fmt.Errorf("remove %s: %w", key, ErrNodeNotFound)
	}
	if e.parent == nil {
		return nil, ErrRootNode
	}
	return d.update(e.parent.key, func(p *Node) (*Node, error) {
		out := p.clone()
		out.children = slices.Delete(out.children, e.index, e.index+1)
		return out, nil
	})
}

// MoveNode moves the node to newParent at index. The index refers to the
// children of newParent after the node has been detached from its old place.
func (d *Document) MoveNode(key, newParent Key, index int) (*Document, error) {
	n, ok := d.Get(key)
	if !ok {
		return nil, fmt.Errorf("move %s: %w", key, ErrNodeNotFound)
	}
	if key == newParent || d.IsAncestor(key, newParent) {
		return nil, fmt.Errorf("move %s: %w", key, ErrCycle)
	}
	if !d.Has(newParent) {
		return nil, fmt.Errorf("move into %s: %w", newParent, ErrNodeNotFound)
	}
	detached, err := d.RemoveNode(key)
	if err != nil {
		return nil, err
	}
	return detached.InsertNode(newParent, index, n)
}

// WrapNode inserts wrapper at the position of the node and moves the node
// inside it. The wrapper must be an empty block.
func (d *Document) WrapNode(key Key, wrapper *Node) (*Document, error) {
	if wrapper == nil || wrapper.kind != KindBlock || len(wrapper.children) != 0 {
		return nil, ErrInvalidWrapper
	}
	e, ok := d.index[key]
	if !ok {
		return nil, fmt.Errorf("wrap %s: %w", key, ErrNodeNotFound)
	}
	if e.parent == nil {
		return nil, ErrRootNode
	}
	if d.Has(wrapper.key) {
		return nil, fmt.Errorf("wrap with %s: %w", wrapper.key, ErrDuplicateKey)
	}
	wrapped := wrapper.clone()
	wrapped.children = []*Node{e.node}
	return d.update(e.parent.key, func(p *Node) (*Node, error) {
		out := p.clone()
		out.children[e.index] = wrapped
		return out, nil
	})
}

// ReplaceNode swaps the node with the given key for n. The replacement may
// reuse the old key; every other key in n must be new to the document.
func (d *Document) ReplaceNode(key Key, n *Node) (*Document, error) {
	e, ok := d.index[key]
	if !ok {
		return nil, fmt.Errorf("replace %s: %w", key, ErrNodeNotFound)
	}
	old := make(map[Key]bool)
	for _, k := range Subtree(e.node) {
		old[k] = true
	}
	for _, k := range Subtree(n) {
		if d.Has(k) && !old[k] {
			return nil, fmt.Errorf("replace %s: %w: %s", key, ErrDuplicateKey, k)
		}
	}
	if e.parent == nil {
		if n.kind != KindDocument {
			return nil, ErrInvalidRoot
		}
		return New(n)
	}
	return d.update(e.parent.key, func(p *Node) (*Node, error) {
		out := p.clone()
		out.children[e.index] = n
		return out, nil
	})
}

// SetData replaces the attributes of the node.
func (d *Document) SetData(key Key, data Data) (*Document, error) {
	return d.update(key, func(n *Node) (*Node, error) {
		return n.WithData(data), nil
	})
}

// SetText replaces the text of a text leaf.
func (d *Document) SetText(key Key, text string) (*Document, error) {
	return d.update(key, func(n *Node) (*Node, error) {
		if n.kind != KindText {
			return nil, fmt.Errorf("set text on %s: %w", n.kind, ErrNotContainer)
		}
		return n.WithText(text), nil
	})
}

// update rebuilds the path from the root to key, replacing the node at key
// with the result of fn. Subtrees off the path are shared.
func (d *Document) update(key Key, fn func(*Node) (*Node, error)) (*Document, error) {
	e, ok := d.index[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, key)
	}
	root, err := replaceAt(d.root, e.path, fn)
	if err != nil {
		return nil, err
	}
	return New(root)
}

func replaceAt(n *Node, path []int, fn func(*Node) (*Node, error)) (*Node, error) {
	if len(path) == 0 {
		return fn(n)
	}
	child, err := replaceAt(n.children[path[0]], path[1:], fn)
	if err != nil {
		return nil, err
	}
	out := n.clone()
	out.children[path[0]] = child
	return out, nil
}
