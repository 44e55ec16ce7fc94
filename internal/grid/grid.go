// Package grid lays out formatted ranges as a three column grid: start labels and end labels sized to their content,
// and a flexible extent column between them.
package grid

import (
	"math"
	"strings"

	"github.com/johnstarich/rangeset"
)

const (
	// Gap is the number of spaces between columns
	Gap = 1
	// MinExtent is the narrowest width the extent column is drawn with
	MinExtent = 3

	fillRune  = '█'
	trackRune = '·'
)

// Columns contains the widths of each grid column
type Columns struct {
	Start  int
	Extent int
	End    int
}

// Measure returns column widths for model within a total width.
// Label columns fit their widest label, and the extent column takes the remaining width (at least MinExtent).
func Measure(model rangeset.DisplayModel, width int) Columns {
	var cols Columns
	for _, row := range model.Rows {
		cols.Start = max(cols.Start, len(row.Start))
		cols.End = max(cols.End, len(row.End))
	}
	cols.Extent = max(MinExtent, width-cols.Start-cols.End-2*Gap)
	return cols
}

// Line is one laid out grid row, with each cell padded to its column's width
type Line struct {
	Row   rangeset.Row
	Start string
	Bar   string
	End   string
}

func (l Line) String() string {
	gap := strings.Repeat(" ", Gap)
	return l.Start + gap + l.Bar + gap + l.End
}

// Layout returns one Line per row in model, fit within width
func Layout(model rangeset.DisplayModel, width int) []Line {
	cols := Measure(model, width)
	lines := make([]Line, len(model.Rows))
	for i, row := range model.Rows {
		lines[i] = Line{
			Row:   row,
			Start: padLeft(row.Start, cols.Start),
			Bar:   Bar(row.Range, model.Span, cols.Extent),
			End:   padRight(row.End, cols.End),
		}
	}
	return lines
}

// Render returns model laid out within width, one line per row
func Render(model rangeset.DisplayModel, width int) string {
	var sb strings.Builder
	for _, line := range Layout(model, width) {
		sb.WriteString(line.String())
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Bar draws r's position within span as a bar of the given width. Every range fills at least one cell.
func Bar(r, span rangeset.Range, width int) string {
	if width <= 0 {
		return ""
	}
	// float64 avoids overflow for spans wider than an int64
	total := float64(span.End()) - float64(span.Start()) + 1
	startOffset := float64(r.Start()) - float64(span.Start())
	endOffset := float64(r.End()) - float64(span.Start()) + 1
	from := int(startOffset * float64(width) / total)
	to := int(math.Ceil(endOffset * float64(width) / total))

	from = min(max(from, 0), width-1)
	to = min(max(to, from+1), width)
	return strings.Repeat(string(trackRune), from) +
		strings.Repeat(string(fillRune), to-from) +
		strings.Repeat(string(trackRune), width-to)
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
