package normalize

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/edittable/internal/change"
	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/table"
	"github.com/dshills/edittable/internal/table/validate"
)

type shape struct {
	Type     string
	Text     string
	Children []shape
}

func shapeOf(n *document.Node) shape {
	s := shape{Type: n.Type()}
	if n.IsText() {
		s.Text = n.Text()
	}
	for _, c := range n.Children() {
		s.Children = append(s.Children, shapeOf(c))
	}
	return s
}

func newDriver(opts table.Options) *Driver {
	return NewDriver([]Validator{validate.Validator(opts)})
}

func stateOf(t *testing.T, children ...*document.Node) change.State {
	t.Helper()
	doc, err := document.New(document.NewDocument(children...))
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}
	return change.NewState(doc)
}

// assertValid fails if any node still reports a repair.
func assertValid(t *testing.T, opts table.Options, s change.State) {
	t.Helper()
	for _, n := range s.Document.Nodes() {
		if b := validate.ValidateNode(opts, n); b != nil {
			t.Fatalf("node %s (%s) still violates %s", n.Key(), n.Type(), b.Name)
		}
	}
}

func TestShortRowGainsCells(t *testing.T) {
	opts := table.DefaultOptions()
	tbl := document.NewBlock(opts.TypeTable,
		document.NewBlock(opts.TypeRow,
			table.CreateCell(opts, "a"),
			table.CreateCell(opts, "b"),
			table.CreateCell(opts, "c"),
		),
		document.NewBlock(opts.TypeRow, table.CreateCell(opts, "d")),
	)

	res, err := newDriver(opts).Normalize(stateOf(t, tbl))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	got, _ := res.State.Document.Get(tbl.Key())
	for i, row := range got.Children() {
		if row.NumChildren() != 3 {
			t.Errorf("row %d: expected 3 cells, got %d", i, row.NumChildren())
		}
	}
	second := got.Child(1)
	if second.Child(0).Text() != "d" || second.Child(1).Text() != "" || second.Child(2).Text() != "" {
		t.Errorf("missing cells should be appended empty after existing ones")
	}
	assertValid(t, opts, res.State)
}

func TestBareCellIsWrappedTwice(t *testing.T) {
	opts := table.DefaultOptions()
	cell := table.CreateCell(opts, "x")

	res, err := newDriver(opts).Normalize(stateOf(t, cell))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Steps != 2 {
		t.Errorf("expected 2 repairs, got %d", res.Steps)
	}
	want := shape{Children: []shape{
		{Type: opts.TypeTable, Children: []shape{
			{Type: opts.TypeRow, Children: []shape{
				{Type: opts.TypeCell, Children: []shape{{Text: "x"}}},
			}},
		}},
	}}
	if diff := cmp.Diff(want, shapeOf(res.State.Document.Root())); diff != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", diff)
	}
	if !res.State.Document.Has(cell.Key()) {
		t.Errorf("the wrapped cell should keep its key")
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	opts := table.DefaultOptions()
	d := newDriver(opts)

	res, err := d.Normalize(stateOf(t, document.NewBlock(opts.TypeTable)))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Steps == 0 {
		t.Fatalf("an empty table should need a repair")
	}
	again, err := d.Normalize(res.State)
	if err != nil {
		t.Fatalf("second Normalize: %v", err)
	}
	if again.Steps != 0 {
		t.Errorf("expected no repairs on a normalized document, got %d", again.Steps)
	}
	if again.State.Document != res.State.Document {
		t.Errorf("a clean pass must return the same snapshot")
	}
}

func TestNormalizeKeysOnlyVisitsTouchedNodes(t *testing.T) {
	opts := table.DefaultOptions()
	broken := document.NewBlock(opts.TypeTable)
	clean := table.CreateTable(opts, 2, 2)
	s := stateOf(t, broken, clean)
	d := newDriver(opts)

	res, err := d.NormalizeKeys(s, []document.Key{clean.Child(0).Child(0).Key()})
	if err != nil {
		t.Fatalf("NormalizeKeys: %v", err)
	}
	if res.Steps != 0 {
		t.Errorf("the broken table is not an ancestor of the touched key, got %d repairs", res.Steps)
	}

	res, err = d.NormalizeKeys(s, []document.Key{broken.Key()})
	if err != nil {
		t.Fatalf("NormalizeKeys: %v", err)
	}
	if res.Steps != 1 {
		t.Errorf("expected 1 repair, got %d", res.Steps)
	}
	assertValid(t, opts, res.State)
}

func TestNormalizeSkipsMissingKeys(t *testing.T) {
	d := newDriver(table.DefaultOptions())
	res, err := d.NormalizeKeys(stateOf(t), []document.Key{"gone"})
	if err != nil || res.Steps != 0 {
		t.Errorf("expected a no-op, got %d steps, err %v", res.Steps, err)
	}
}

func TestNotConverging(t *testing.T) {
	// A validator that always asks to toggle the data never settles.
	flip := func(n *document.Node) *change.Batch {
		if n.Kind() != document.KindBlock {
			return nil
		}
		v, _ := n.Data().Get("n")
		i, _ := v.(int)
		return change.NewBatch("flip", change.SetData{Key: n.Key(), Data: n.Data().With("n", i+1)})
	}
	d := NewDriver([]Validator{flip}, WithMaxSteps(5))

	res, err := d.Normalize(stateOf(t, document.NewBlock("p", document.NewText(""))))
	if !errors.Is(err, ErrNotConverging) {
		t.Fatalf("expected ErrNotConverging, got %v", err)
	}
	if res.Steps != 5 {
		t.Errorf("expected 5 steps before giving up, got %d", res.Steps)
	}
}

func TestValidateReturnsFirstRepair(t *testing.T) {
	first := func(*document.Node) *change.Batch { return change.NewBatch("first") }
	second := func(*document.Node) *change.Batch { return change.NewBatch("second") }
	none := func(*document.Node) *change.Batch { return nil }

	d := NewDriver([]Validator{none, first, second})
	if b := d.Validate(document.NewText("")); b == nil || b.Name != "first" {
		t.Errorf("expected the first repair, got %v", b)
	}
}

// randomNode builds a small tree mixing table types with other blocks,
// inlines and text in arbitrary positions.
func randomNode(r *rand.Rand, opts table.Options, depth int) *document.Node {
	if depth == 0 || r.IntN(5) == 0 {
		return document.NewText(fmt.Sprintf("t%d", r.IntN(100)))
	}
	types := []string{opts.TypeTable, opts.TypeRow, opts.TypeCell, "paragraph", "quote"}
	var children []*document.Node
	for range r.IntN(4) {
		children = append(children, randomNode(r, opts, depth-1))
	}
	if r.IntN(6) == 0 {
		return document.NewInline("link", children...)
	}
	return document.NewBlock(types[r.IntN(len(types))], children...)
}

func TestRandomDocumentsConverge(t *testing.T) {
	for _, blocks := range []bool{false, true} {
		opts := table.NewOptions(table.WithBlocksInCells(blocks))
		d := newDriver(opts)
		r := rand.New(rand.NewPCG(7, 11))

		for i := range 200 {
			t.Run(fmt.Sprintf("blocks=%v/%d", blocks, i), func(t *testing.T) {
				var children []*document.Node
				for range 1 + r.IntN(3) {
					children = append(children, randomNode(r, opts, 4))
				}
				res, err := d.Normalize(stateOf(t, children...))
				if err != nil {
					t.Fatalf("Normalize: %v", err)
				}
				assertValid(t, opts, res.State)

				again, err := d.Normalize(res.State)
				if err != nil || again.Steps != 0 {
					t.Errorf("second pass: %d steps, err %v", again.Steps, err)
				}
			})
		}
	}
}
