package document

import "errors"

// Traversal control values for Walk callbacks.
var (
	// SkipChildren tells Walk not to descend into the current node.
	SkipChildren = errors.New("skip children")

	// Halt tells Walk to stop without reporting an error.
	Halt = errors.New("halt traversal")
)

// WalkFunc is called for every node visited by Walk, parents before children.
type WalkFunc func(n *Node, depth int) error

// Walk visits the subtree rooted at n in document order.
// Returning SkipChildren skips the node's descendants; returning Halt stops
// the walk and Walk returns nil. Any other error stops the walk and is
// returned.
func Walk(n *Node, fn WalkFunc) error {
	err := walk(n, 0, fn)
	if errors.Is(err, Halt) {
		return nil
	}
	return err
}

func walk(n *Node, depth int, fn WalkFunc) error {
	if err := fn(n, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, child := range n.children {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// PostOrder returns the subtree rooted at n with children listed before
// their parents.
func PostOrder(n *Node) []*Node {
	var out []*Node
	var visit func(*Node)
	visit = func(node *Node) {
		for _, child := range node.children {
			visit(child)
		}
		out = append(out, node)
	}
	visit(n)
	return out
}
