package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/table"
	"github.com/dshills/edittable/internal/table/changes"
)

const minColumnWidth = 3

// renderGrid writes doc as text. Tables become pipe grids whose first row
// is the header; other top-level blocks are written as one line each.
func renderGrid(w io.Writer, doc *document.Document, opts table.Options) error {
	bw := bufio.NewWriter(w)
	for _, n := range doc.Root().Children() {
		if opts.IsTable(n) {
			writeTable(bw, n)
			continue
		}
		bw.WriteString(n.Text())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func writeTable(w *bufio.Writer, tbl *document.Node) {
	var rows [][]string
	width := 0
	for _, row := range tbl.Children() {
		cells := make([]string, row.NumChildren())
		for i, cell := range row.Children() {
			cells[i] = cellText(cell)
		}
		width = max(width, len(cells))
		rows = append(rows, cells)
	}
	if width == 0 {
		return
	}

	aligns := tbl.Data().Strings(changes.AlignKey)
	widths := make([]int, width)
	for i := range widths {
		widths[i] = minColumnWidth
	}
	for _, cells := range rows {
		for i, text := range cells {
			widths[i] = max(widths[i], uniseg.StringWidth(text))
		}
	}

	for y, cells := range rows {
		writeRow(w, width, func(x int) string {
			text := ""
			if x < len(cells) {
				text = cells[x]
			}
			return pad(text, widths[x], alignAt(aligns, x))
		})
		if y == 0 {
			writeRow(w, width, func(x int) string {
				return rule(widths[x], alignAt(aligns, x))
			})
		}
	}
}

func writeRow(w *bufio.Writer, width int, column func(x int) string) {
	w.WriteByte('|')
	for x := 0; x < width; x++ {
		w.WriteByte(' ')
		w.WriteString(column(x))
		w.WriteString(" |")
	}
	w.WriteByte('\n')
}

func cellText(cell *document.Node) string {
	text := strings.ReplaceAll(cell.Text(), "\n", " ")
	return strings.ReplaceAll(text, "|", `\|`)
}

func alignAt(aligns []string, x int) string {
	if x < len(aligns) && aligns[x] != "" {
		return aligns[x]
	}
	return changes.AlignLeft
}

// pad fills text to width display columns according to align.
func pad(text string, width int, align string) string {
	gap := width - uniseg.StringWidth(text)
	if gap <= 0 {
		return text
	}
	switch align {
	case changes.AlignRight:
		return strings.Repeat(" ", gap) + text
	case changes.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	default:
		return text + strings.Repeat(" ", gap)
	}
}

// rule returns the header separator for a column.
func rule(width int, align string) string {
	switch align {
	case changes.AlignRight:
		return strings.Repeat("-", width-1) + ":"
	case changes.AlignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	default:
		return strings.Repeat("-", width)
	}
}
