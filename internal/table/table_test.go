package table

import (
	"errors"
	"testing"

	"github.com/dshills/edittable/internal/document"
)

func TestOptions(t *testing.T) {
	opts := NewOptions(
		WithTypeTable("grid"),
		WithTypeRow(""),
		WithExitBlockType("heading"),
		WithBlocksInCells(true),
	)
	if opts.TypeTable != "grid" {
		t.Errorf("expected table type grid, got %q", opts.TypeTable)
	}
	if opts.TypeRow != DefaultTypeRow {
		t.Errorf("an empty value should keep the default, got %q", opts.TypeRow)
	}
	if opts.ExitBlockType != "heading" || !opts.AllowBlocksInCells {
		t.Errorf("options not applied: %+v", opts)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"empty cell type", func(o *Options) { o.TypeCell = "" }},
		{"row equals table", func(o *Options) { o.TypeRow = o.TypeTable }},
		{"content equals cell", func(o *Options) { o.TypeContent = o.TypeCell }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			if err := opts.Validate(); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestCreateCell(t *testing.T) {
	text := CreateCell(DefaultOptions(), "x")
	if text.Type() != DefaultTypeCell || !text.Child(0).IsText() || text.Text() != "x" {
		t.Errorf("text mode cell should hold its text directly")
	}

	blocks := CreateCell(NewOptions(WithBlocksInCells(true)), "x")
	content := blocks.Child(0)
	if content.Type() != DefaultTypeContent || content.Text() != "x" {
		t.Errorf("blocks mode cell should wrap its text in a content block")
	}
}

func TestCreateTable(t *testing.T) {
	opts := DefaultOptions()
	tbl := CreateTable(opts, 3, 2)
	if tbl.NumChildren() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.NumChildren())
	}
	for i, row := range tbl.Children() {
		if row.NumChildren() != 3 {
			t.Errorf("row %d: expected 3 cells, got %d", i, row.NumChildren())
		}
	}

	tiny := CreateTable(opts, 0, 0)
	if tiny.NumChildren() != 1 || tiny.Child(0).NumChildren() != 1 {
		t.Errorf("a table is at least one by one")
	}
}

func TestCreateTableFromText(t *testing.T) {
	tbl := CreateTableFromText(DefaultOptions(), [][]string{
		{"a", "b", "c"},
		{"d"},
	})
	second := tbl.Child(1)
	if second.NumChildren() != 3 {
		t.Fatalf("short rows should be padded, got %d cells", second.NumChildren())
	}
	if second.Child(0).Text() != "d" || second.Child(2).Text() != "" {
		t.Errorf("unexpected cell texts in padded row")
	}
}

func newGrid(t *testing.T, opts Options) (*document.Document, *document.Node) {
	t.Helper()
	tbl := CreateTableFromText(opts, [][]string{
		{"a", "b"},
		{"c", "d"},
		{"e", "f"},
	})
	doc, err := document.New(document.NewDocument(tbl))
	if err != nil {
		t.Fatal(err)
	}
	return doc, tbl
}

func TestNewPosition(t *testing.T) {
	for _, blocks := range []bool{false, true} {
		opts := NewOptions(WithBlocksInCells(blocks))
		doc, tbl := newGrid(t, opts)
		cell := tbl.Child(1).Child(1)

		starts := []*document.Node{cell}
		if blocks {
			starts = append(starts, cell.Child(0))
		}
		for _, start := range starts {
			pos, err := NewPosition(doc, start, opts)
			if err != nil {
				t.Fatalf("NewPosition(%s): %v", start.Type(), err)
			}
			if pos.Table != tbl || pos.Cell != cell {
				t.Errorf("wrong table or cell for start %s", start.Type())
			}
			if pos.RowIndex() != 1 || pos.ColumnIndex() != 1 {
				t.Errorf("expected (1,1), got (%d,%d)", pos.ColumnIndex(), pos.RowIndex())
			}
			if pos.Width() != 2 || pos.Height() != 3 {
				t.Errorf("expected 2x3, got %dx%d", pos.Width(), pos.Height())
			}
		}
	}
}

func TestNewPositionOutsideTable(t *testing.T) {
	opts := DefaultOptions()
	p := document.NewBlock("paragraph", document.NewText("x"))
	doc := document.MustNew(document.NewDocument(p))

	if _, err := NewPosition(doc, p, opts); !errors.Is(err, ErrNotInTable) {
		t.Errorf("expected ErrNotInTable, got %v", err)
	}
	if _, err := NewPosition(doc, nil, opts); !errors.Is(err, ErrNotInTable) {
		t.Errorf("expected ErrNotInTable for nil, got %v", err)
	}
}

func TestPositionEdges(t *testing.T) {
	opts := DefaultOptions()
	doc, tbl := newGrid(t, opts)

	tests := []struct {
		x, y                int
		firstCell, lastCell bool
		firstRow, lastRow   bool
		firstCol, lastCol   bool
	}{
		{0, 0, true, false, true, false, true, false},
		{1, 0, false, false, true, false, false, true},
		{0, 2, false, false, false, true, true, false},
		{1, 2, false, true, false, true, false, true},
	}
	for _, tt := range tests {
		pos, err := NewPosition(doc, tbl.Child(tt.y).Child(tt.x), opts)
		if err != nil {
			t.Fatal(err)
		}
		got := [6]bool{pos.IsFirstCell(), pos.IsLastCell(), pos.IsFirstRow(), pos.IsLastRow(), pos.IsFirstColumn(), pos.IsLastColumn()}
		want := [6]bool{tt.firstCell, tt.lastCell, tt.firstRow, tt.lastRow, tt.firstCol, tt.lastCol}
		if got != want {
			t.Errorf("(%d,%d): expected %v, got %v", tt.x, tt.y, want, got)
		}
	}
}

func TestCellAt(t *testing.T) {
	opts := DefaultOptions()
	doc, tbl := newGrid(t, opts)
	pos, err := NewPosition(doc, tbl.Child(0).Child(0), opts)
	if err != nil {
		t.Fatal(err)
	}

	cell, err := pos.CellAt(1, 2)
	if err != nil || cell.Text() != "f" {
		t.Errorf("expected cell f, got %v (%v)", cell, err)
	}
	for _, xy := range [][2]int{{2, 0}, {0, 3}, {-1, 0}, {0, -1}} {
		if _, err := pos.CellAt(xy[0], xy[1]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("CellAt(%d,%d): expected ErrOutOfRange, got %v", xy[0], xy[1], err)
		}
	}
}
