package main

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/table"
	"github.com/dshills/edittable/internal/table/changes"
)

func TestRenderGrid(t *testing.T) {
	opts := table.DefaultOptions()
	tbl := table.CreateTableFromText(opts, [][]string{
		{"a", "bb", "c"},
		{"ccc", "d", "日本語"},
	})
	tbl = tbl.WithData(tbl.Data().With(changes.AlignKey, []string{"left", "right", "center"}))
	doc := document.MustNew(document.NewDocument(
		document.NewBlock("paragraph", document.NewText("before")),
		tbl,
		document.NewBlock("paragraph", document.NewText("after")),
	))

	var buf bytes.Buffer
	if err := renderGrid(&buf, doc, opts); err != nil {
		t.Fatal(err)
	}
	want := "before\n" +
		"| a   |  bb |   c    |\n" +
		"| --- | --: | :----: |\n" +
		"| ccc |   d | 日本語 |\n" +
		"after\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		text  string
		width int
		align string
		want  string
	}{
		{"ab", 4, changes.AlignLeft, "ab  "},
		{"ab", 4, changes.AlignRight, "  ab"},
		{"ab", 5, changes.AlignCenter, " ab  "},
		{"日本", 4, changes.AlignLeft, "日本"},
		{"toolong", 3, changes.AlignLeft, "toolong"},
	}
	for _, tt := range tests {
		if got := pad(tt.text, tt.width, tt.align); got != tt.want {
			t.Errorf("pad(%q, %d, %s) = %q, want %q", tt.text, tt.width, tt.align, got, tt.want)
		}
	}
}

func TestCellTextEscapesPipes(t *testing.T) {
	cell := table.CreateCell(table.DefaultOptions(), "a|b")
	if got := cellText(cell); got != `a\|b` {
		t.Errorf("cellText = %q", got)
	}
}
