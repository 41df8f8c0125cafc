// Package normalize drives validators to a fixed point.
//
// A Validator inspects one node and returns a repair batch, or nil when the
// node is valid. The Driver keeps a queue of keys to check. Whenever a
// repair lands it re-queues every key the repair touched together with
// their ancestors, and keeps going until the queue drains. Intermediate
// operations of a batch are never validated on their own; only the state
// after the whole batch is checked.
package normalize

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dshills/edittable/internal/change"
	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/logging"
)

// DefaultMaxSteps bounds the number of repairs in one normalization run.
const DefaultMaxSteps = 10000

// ErrNotConverging is returned when the step limit is reached.
var ErrNotConverging = errors.New("normalization did not converge")

// Validator returns the repair for a node, or nil if the node is valid.
type Validator func(n *document.Node) *change.Batch

// Result reports the outcome of a normalization run.
type Result struct {
	State change.State
	Steps int
}

// Driver applies validators until no repair is reported.
type Driver struct {
	validators []Validator
	maxSteps   int
	logger     *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithMaxSteps sets the maximum number of repairs per run.
func WithMaxSteps(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.maxSteps = n
		}
	}
}

// WithLogger sets the logger used to report repairs.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDriver creates a driver. Validators are consulted in order; the first
// one that reports a repair wins for that node.
func NewDriver(validators []Validator, opts ...Option) *Driver {
	d := &Driver{
		validators: validators,
		maxSteps:   DefaultMaxSteps,
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Validate returns the first repair reported for n, or nil.
func (d *Driver) Validate(n *document.Node) *change.Batch {
	for _, v := range d.validators {
		if b := v(n); b != nil {
			return b
		}
	}
	return nil
}

// Normalize checks every node of the document, children before parents.
func (d *Driver) Normalize(s change.State) (Result, error) {
	nodes := document.PostOrder(s.Document.Root())
	keys := make([]document.Key, len(nodes))
	for i, n := range nodes {
		keys[i] = n.Key()
	}
	return d.run(s, keys)
}

// NormalizeKeys checks the given keys and their ancestors. It is meant to
// run after an edit, with the keys the edit touched.
func (d *Driver) NormalizeKeys(s change.State, keys []document.Key) (Result, error) {
	return d.run(s, withAncestors(s.Document, keys))
}

func (d *Driver) run(s change.State, keys []document.Key) (Result, error) {
	q := newQueue(keys)
	steps := 0

	for q.len() > 0 {
		key := q.pop()
		n, ok := s.Document.Get(key)
		if !ok {
			continue
		}
		batch := d.Validate(n)
		if batch == nil {
			continue
		}
		if steps >= d.maxSteps {
			return Result{State: s, Steps: steps}, fmt.Errorf("%w after %d steps", ErrNotConverging, steps)
		}

		ch := change.New(s)
		if err := batch.Apply(ch); err != nil {
			return Result{State: s, Steps: steps}, fmt.Errorf("repair %s: %w", key, err)
		}
		s = ch.State()
		steps++

		d.logger.Debug("applied repair",
			slog.String("rule", batch.Name),
			slog.String("key", string(key)),
			slog.Int("operations", batch.Len()),
			slog.Int("step", steps),
		)

		for _, k := range withAncestors(s.Document, ch.Dirty()) {
			q.push(k)
		}
		q.push(key)
	}

	return Result{State: s, Steps: steps}, nil
}

// withAncestors returns keys followed by the ancestors of each key that
// still exists, without duplicates.
func withAncestors(doc *document.Document, keys []document.Key) []document.Key {
	seen := make(map[document.Key]bool, len(keys))
	var out []document.Key
	add := func(k document.Key) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, k := range keys {
		add(k)
	}
	for _, k := range keys {
		for _, a := range doc.Ancestors(k) {
			add(a.Key())
		}
	}
	return out
}

// queue is a FIFO of keys without duplicates among pending entries.
type queue struct {
	items   []document.Key
	pending map[document.Key]bool
}

func newQueue(keys []document.Key) *queue {
	q := &queue{pending: make(map[document.Key]bool, len(keys))}
	for _, k := range keys {
		q.push(k)
	}
	return q
}

func (q *queue) push(k document.Key) {
	if q.pending[k] {
		return
	}
	q.pending[k] = true
	q.items = append(q.items, k)
}

func (q *queue) pop() document.Key {
	k := q.items[0]
	q.items = q.items[1:]
	delete(q.pending, k)
	return k
}

func (q *queue) len() int {
	return len(q.items)
}
