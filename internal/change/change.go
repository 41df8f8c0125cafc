package change

import (
	"fmt"

	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/document/selection"
)

// Batch is a named list of operations applied as one unit.
type Batch struct {
	Name       string
	Operations []Operation
}

// NewBatch creates a batch.
func NewBatch(name string, ops ...Operation) *Batch {
	return &Batch{Name: name, Operations: ops}
}

// Add appends operations to the batch.
func (b *Batch) Add(ops ...Operation) {
	b.Operations = append(b.Operations, ops...)
}

// Len returns the number of operations.
func (b *Batch) Len() int {
	return len(b.Operations)
}

// Apply applies every operation of the batch to ch.
func (b *Batch) Apply(ch *Change) error {
	if err := ch.Apply(b.Operations...); err != nil {
		return fmt.Errorf("%s: %w", b.Name, err)
	}
	return nil
}

// Change accumulates operations against an evolving state.
// A Change is not safe for concurrent use.
type Change struct {
	base  State
	state State
	ops   []Operation
	dirty []document.Key
	seen  map[document.Key]bool
}

// New starts a change from s.
func New(s State) *Change {
	return &Change{
		base:  s,
		state: s,
		seen:  make(map[document.Key]bool),
	}
}

// Apply applies operations in order. On error the state keeps the effect of
// the operations that succeeded before the failing one; callers that need
// all-or-nothing semantics discard the change.
func (c *Change) Apply(ops ...Operation) error {
	for _, op := range ops {
		next, dirty, err := op.apply(c.state)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		c.state = next
		c.ops = append(c.ops, op)
		for _, key := range dirty {
			if !c.seen[key] {
				c.seen[key] = true
				c.dirty = append(c.dirty, key)
			}
		}
	}
	return nil
}

// State returns the current state.
func (c *Change) State() State {
	return c.state
}

// Base returns the state the change started from.
func (c *Change) Base() State {
	return c.base
}

// Document returns the current document.
func (c *Change) Document() *document.Document {
	return c.state.Document
}

// Selection returns the current selection.
func (c *Change) Selection() selection.Range {
	return c.state.Selection
}

// Operations returns the operations applied so far.
func (c *Change) Operations() []Operation {
	out := make([]Operation, len(c.ops))
	copy(out, c.ops)
	return out
}

// Dirty returns the keys touched by the change, in first-touch order.
// Some keys may no longer exist in the current document.
func (c *Change) Dirty() []document.Key {
	out := make([]document.Key, len(c.dirty))
	copy(out, c.dirty)
	return out
}

// IsEmpty returns true if no operation has been applied.
func (c *Change) IsEmpty() bool {
	return len(c.ops) == 0
}

// Select replaces the selection.
func (c *Change) Select(r selection.Range) error {
	return c.Apply(Select{Range: r})
}

// CollapseToStartOf puts a caret at the start of the first text in n.
func (c *Change) CollapseToStartOf(n *document.Node) error {
	text := n.FirstText()
	if text == nil {
		return fmt.Errorf("collapse to start of %s: no text", n.Key())
	}
	return c.Select(selection.At(text.Key(), 0))
}

// CollapseToEndOf puts a caret at the end of the last text in n.
func (c *Change) CollapseToEndOf(n *document.Node) error {
	text := n.LastText()
	if text == nil {
		return fmt.Errorf("collapse to end of %s: no text", n.Key())
	}
	return c.Select(selection.At(text.Key(), text.TextLen()))
}

// MoveOffsetsTo moves both selection points to offset, keeping their keys.
// The offset is clamped to the text of each point's node.
func (c *Change) MoveOffsetsTo(offset int) error {
	r := c.state.Selection
	if !r.IsSet() {
		return fmt.Errorf("move offsets: %w", ErrNoSelection)
	}
	anchor := c.clampOffset(r.Anchor.Key, offset)
	focus := c.clampOffset(r.Focus.Key, offset)
	return c.Select(r.MoveOffsetsTo(anchor, focus))
}

func (c *Change) clampOffset(key document.Key, offset int) int {
	if offset < 0 {
		return 0
	}
	if n, ok := c.state.Document.Get(key); ok && offset > n.TextLen() {
		return n.TextLen()
	}
	return offset
}
