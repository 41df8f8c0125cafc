package document

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Key is the stable identity of a node within a document.
type Key string

// NewKey returns a fresh random key.
func NewKey() Key {
	return Key(uuid.NewString())
}

// Node is an immutable element of the document tree.
// Text nodes hold text and never have children; every other kind holds an
// ordered list of children.
type Node struct {
	key      Key
	kind     Kind
	typ      string
	text     string
	data     Data
	children []*Node
}

// NewDocument creates a document root holding the given children.
func NewDocument(children ...*Node) *Node {
	return newContainer(KindDocument, "", children)
}

// NewBlock creates a block node of the given type.
func NewBlock(typ string, children ...*Node) *Node {
	return newContainer(KindBlock, typ, children)
}

// NewInline creates an inline node of the given type.
func NewInline(typ string, children ...*Node) *Node {
	return newContainer(KindInline, typ, children)
}

// NewText creates a text leaf.
func NewText(text string) *Node {
	return &Node{
		key:  NewKey(),
		kind: KindText,
		text: text,
	}
}

func newContainer(kind Kind, typ string, children []*Node) *Node {
	return &Node{
		key:      NewKey(),
		kind:     kind,
		typ:      typ,
		children: slices.Clone(children),
	}
}

// Key returns the node key.
func (n *Node) Key() Key {
	return n.key
}

// Kind returns the node kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// Type returns the type tag. Text nodes have an empty type.
func (n *Node) Type() string {
	return n.typ
}

// Data returns the attribute map. The map must not be modified.
func (n *Node) Data() Data {
	return n.data
}

// IsText returns true for text leaves.
func (n *Node) IsText() bool {
	return n.kind == KindText
}

// IsBlock returns true for block nodes.
func (n *Node) IsBlock() bool {
	return n.kind == KindBlock
}

// IsContainer returns true if the node can hold children.
func (n *Node) IsContainer() bool {
	return n.kind != KindText
}

// Text returns the text of the node. For containers this is the
// concatenation of all descendant text leaves.
func (n *Node) Text() string {
	if n.kind == KindText {
		return n.text
	}
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n *Node) appendText(sb *strings.Builder) {
	if n.kind == KindText {
		sb.WriteString(n.text)
		return
	}
	for _, child := range n.children {
		child.appendText(sb)
	}
}

// TextLen returns the byte length of Text().
func (n *Node) TextLen() int {
	if n.kind == KindText {
		return len(n.text)
	}
	total := 0
	for _, child := range n.children {
		total += child.TextLen()
	}
	return total
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child returns the child at index i, or nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// IndexOf returns the index of child by identity, or -1.
func (n *Node) IndexOf(child *Node) int {
	return slices.Index(n.children, child)
}

// CountChildren returns the number of direct children matching pred.
func (n *Node) CountChildren(pred func(*Node) bool) int {
	count := 0
	for _, child := range n.children {
		if pred(child) {
			count++
		}
	}
	return count
}

// FilterChildren returns the direct children matching pred, in order.
func (n *Node) FilterChildren(pred func(*Node) bool) []*Node {
	var out []*Node
	for _, child := range n.children {
		if pred(child) {
			out = append(out, child)
		}
	}
	return out
}

// FirstText returns the first text leaf in the subtree, or nil.
func (n *Node) FirstText() *Node {
	if n.kind == KindText {
		return n
	}
	for _, child := range n.children {
		if t := child.FirstText(); t != nil {
			return t
		}
	}
	return nil
}

// LastText returns the last text leaf in the subtree, or nil.
func (n *Node) LastText() *Node {
	if n.kind == KindText {
		return n
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if t := n.children[i].LastText(); t != nil {
			return t
		}
	}
	return nil
}

// Texts returns all text leaves in the subtree in document order.
func (n *Node) Texts() []*Node {
	var out []*Node
	_ = Walk(n, func(node *Node, _ int) error {
		if node.kind == KindText {
			out = append(out, node)
		}
		return nil
	})
	return out
}

// WithKey returns a copy of the node carrying the given key.
func (n *Node) WithKey(key Key) *Node {
	out := n.clone()
	out.key = key
	return out
}

// WithData returns a copy of the node carrying the given attributes.
func (n *Node) WithData(data Data) *Node {
	out := n.clone()
	out.data = data
	return out
}

// WithChildren returns a copy of the node with its children replaced.
// It panics on text nodes.
func (n *Node) WithChildren(children ...*Node) *Node {
	if n.kind == KindText {
		panic("document: text nodes cannot hold children")
	}
	out := n.clone()
	out.children = slices.Clone(children)
	return out
}

// WithText returns a copy of a text node with its text replaced.
// It panics on containers.
func (n *Node) WithText(text string) *Node {
	if n.kind != KindText {
		panic("document: only text nodes hold text")
	}
	out := n.clone()
	out.text = text
	return out
}

// clone creates a shallow copy of the node. The child slice is copied so
// the copy can replace children without touching the original.
func (n *Node) clone() *Node {
	out := *n
	out.children = slices.Clone(n.children)
	return &out
}
