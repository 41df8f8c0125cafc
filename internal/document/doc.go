// Package document provides the immutable rich-document tree that table
// editing operates on.
//
// A document is a tree of nodes. Every node has a stable key that is unique
// within the document, a kind (document, block, inline or text), a type tag
// such as "table" or "paragraph", an attribute map and, for non-text nodes,
// an ordered list of children. Text nodes hold a string instead of children.
//
// Nodes never point at their parent. Ancestor lookup goes through the
// Document snapshot, which builds a key index once per snapshot:
//
//	doc, err := document.New(document.NewDocument(
//	    document.NewBlock("paragraph", document.NewText("hello")),
//	))
//	parent, ok := doc.Parent(someKey)
//	cell, ok := doc.Closest(someKey, func(n *document.Node) bool {
//	    return n.Type() == "table_cell"
//	})
//
// # Persistence
//
// Nodes are immutable once built. Edits (InsertNode, RemoveNode, MoveNode,
// WrapNode, ReplaceNode, SetData) return a new Document; only the ancestors
// along the edited path are copied, every other subtree is shared with the
// previous snapshot. Values derived from one snapshot (node pointers, indices)
// must not be reused against a later one.
//
// # Identity
//
// Within a snapshot a node is identified by its pointer. Two cells holding the
// same text are different nodes; IndexOf and friends compare pointers, never
// content.
package document
