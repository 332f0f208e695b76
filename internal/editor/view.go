package editor

import "strings"

// Row is one visual row of the editor: a segment of a buffer line.
type Row struct {
	Line int
	Segment
}

// Layout returns the visual rows of b for a view cols columns wide. Without
// LineWrapping (or with cols <= 0) every line is a single row.
func Layout(b *Buffer, cols int) []Row {
	if !b.opts.LineWrapping {
		cols = 0
	}
	rows := make([]Row, 0, len(b.lines))
	for i, l := range b.lines {
		for _, s := range Wrap(l, cols, b.opts.TabSize) {
			rows = append(rows, Row{Line: i, Segment: s})
		}
	}
	return rows
}

// RowOf returns the index of the row holding p, or -1. A position at a
// soft break belongs to the row that starts there.
func RowOf(rows []Row, p Pos) int {
	found := -1
	for i, r := range rows {
		if r.Line > p.Line {
			break
		}
		if r.Line == p.Line && r.Start <= p.Col {
			found = i
		}
	}
	return found
}

// ColumnAt returns the rune column of line whose cell covers display
// column x of the row seg. Columns past the end give seg.End.
func ColumnAt(line []rune, seg Segment, x, tabSize int) int {
	tabSize = max(tabSize, 1)
	w := 0
	for i := seg.Start; i < seg.End; i++ {
		cw := 1
		if line[i] == '\t' {
			cw = tabSize - w%tabSize
		}
		if x < w+cw {
			return i
		}
		w += cw
	}
	return seg.End
}

// SliceSpans returns the parts of spans covering runes [start, end) of
// their line.
func SliceSpans(spans []Span, start, end int) []Span {
	var out []Span
	pos := 0
	for _, s := range spans {
		rs := []rune(s.Text)
		from, to := max(start-pos, 0), min(end-pos, len(rs))
		if from < to {
			s.Text = string(rs[from:to])
			out = append(out, s)
		}
		pos += len(rs)
		if pos >= end {
			break
		}
	}
	return out
}

// ExpandTabs replaces tabs in rs with spaces, given that rs starts at
// display column col.
func ExpandTabs(rs []rune, col, tabSize int) string {
	tabSize = max(tabSize, 1)
	var sb strings.Builder
	for _, r := range rs {
		if r == '\t' {
			n := tabSize - col%tabSize
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col++
	}
	return sb.String()
}
