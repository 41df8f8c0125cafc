// Package history provides undo/redo for the table engine.
//
// Editor states are immutable snapshots, so an undo entry is just the pair
// of states around a committed edit. Undo restores the state before the
// edit and Redo the state after it:
//
//	h := NewHistory(1000)
//	h.Push("insert row", before, after)
//
//	s, err := h.Undo() // s == before
//	s, err = h.Redo()  // s == after
//
// Pushing a new entry clears the redo stack. When the undo stack grows past
// its limit the oldest entries are dropped.
package history
