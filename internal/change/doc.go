// Package change describes edits against a document state.
//
// State pairs a document snapshot with a selection. Edits are expressed as
// Operations, a closed set of primitive tree edits:
//
//   - InsertNode: insert a node under a parent at an index
//   - RemoveNode: remove a node and its subtree
//   - MoveNode: move a node under a new parent at an index
//   - WrapNode: wrap a node in a new empty block
//   - ReplaceNode: swap a node for another
//   - SetData: replace a node's attributes
//   - Select: replace the selection
//
// A Change applies operations one at a time against an evolving State and
// records the keys each operation touched, so a normalization driver can
// re-validate them once the whole change has landed. Because states are
// immutable, discarding a Change after an error leaves the original state
// untouched:
//
//	ch := change.New(state)
//	if err := ch.Apply(change.InsertNode{Parent: k, Index: 0, Node: n}); err != nil {
//	    return state, err // state is unchanged
//	}
//	state = ch.State()
//
// A Batch is a named, precomputed list of operations. Validation rules
// return their repairs as batches.
package change
