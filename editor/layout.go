package editor

import (
	"strings"

	"github.com/iw2rmb/spellbound/buffer"
	"github.com/iw2rmb/spellbound/internal/grapheme"
)

// layoutCell is one grapheme cluster placed on a visual row. Cols are rune
// columns in the logical line; x and width are terminal cells.
type layoutCell struct {
	text     string
	startCol int
	endCol   int
	x        int
	width    int
	space    bool
}

type layoutRow struct {
	logicalRow int
	startCol   int
	endCol     int
	cells      []layoutCell
	width      int
	last       bool
}

type layout struct {
	rows     []layoutRow
	firstRow []int
}

// buildLayout soft-wraps every logical line to width cells, breaking after
// whitespace when possible. width <= 0 disables wrapping.
func buildLayout(b *buffer.Buffer, width, tabWidth int) layout {
	var l layout
	for row := 0; row < b.LineCount(); row++ {
		l.firstRow = append(l.firstRow, len(l.rows))
		l.rows = append(l.rows, wrapLine(row, b.Line(row), width, tabWidth)...)
	}
	return l
}

func wrapLine(logicalRow int, line string, width, tabWidth int) []layoutRow {
	var out []layoutRow
	cur := layoutRow{logicalRow: logicalRow}

	for _, c := range grapheme.Clusters(line) {
		text, w := c.Text, c.Width
		if text == "\t" {
			w = tabWidth - cur.width%tabWidth
			text = strings.Repeat(" ", w)
		}
		space := grapheme.IsSpace(c.Text)

		if width > 0 && cur.width+w > width && len(cur.cells) > 0 {
			next := layoutRow{logicalRow: logicalRow}
			if !space {
				if at := wrapPoint(cur.cells); at > 0 && at < len(cur.cells) {
					carried := cur.cells[at:]
					cur.cells = cur.cells[:at]
					for _, cc := range carried {
						cc.x = next.width
						next.cells = append(next.cells, cc)
						next.width += cc.width
					}
				}
			}
			out = append(out, finishRow(cur))
			cur = next
		}

		cur.cells = append(cur.cells, layoutCell{
			text:     text,
			startCol: c.Start,
			endCol:   c.End,
			x:        cur.width,
			width:    w,
			space:    space,
		})
		cur.width += w
	}

	last := finishRow(cur)
	last.last = true
	if len(cur.cells) == 0 && len(out) > 0 {
		prev := out[len(out)-1]
		last.startCol, last.endCol = prev.endCol, prev.endCol
	}
	return append(out, last)
}

func finishRow(r layoutRow) layoutRow {
	r.width = 0
	for _, c := range r.cells {
		r.width += c.width
	}
	if len(r.cells) > 0 {
		r.startCol = r.cells[0].startCol
		r.endCol = r.cells[len(r.cells)-1].endCol
	}
	return r
}

// wrapPoint returns the index of the first cell after the last whitespace
// cell, or 0 when the row has no whitespace.
func wrapPoint(cells []layoutCell) int {
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i].space {
			return i + 1
		}
	}
	return 0
}

// visualRowFor returns the visual row displaying p.
func (l layout) visualRowFor(p buffer.Pos) int {
	if len(l.rows) == 0 {
		return 0
	}
	row := clampInt(p.Row, 0, len(l.firstRow)-1)
	for i := l.firstRow[row]; i < len(l.rows); i++ {
		r := l.rows[i]
		if r.last || p.Col < r.endCol {
			return i
		}
	}
	return len(l.rows) - 1
}

// xForCol returns the cell offset of col within r.
func (r layoutRow) xForCol(col int) int {
	for _, c := range r.cells {
		if col < c.endCol {
			return c.x
		}
	}
	return r.width
}

// colAt maps a cell offset within r to a rune column. inCell reports whether
// x landed on a cluster rather than past the end of the row.
func (r layoutRow) colAt(x int) (col int, inCell bool) {
	if x < 0 {
		x = 0
	}
	for _, c := range r.cells {
		if x < c.x+c.width {
			return c.startCol, true
		}
	}
	return r.endCol, false
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
