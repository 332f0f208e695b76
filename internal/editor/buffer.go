// Package editor is the text editing model behind the code editor view:
// the buffer and cursor, indentation, bracket matching, soft wrapping,
// syntax highlighting and completion. Drawing and key handling live in the
// ui package.
package editor

import (
	"strings"
	"unicode"
)

// Pos is a cursor position: zero-based line and rune column.
type Pos struct {
	Line int
	Col  int
}

// Buffer is an editable text buffer with a single cursor.
type Buffer struct {
	opts   Options
	lines  [][]rune
	cursor Pos
	// goal is the column vertical moves try to return to.
	goal    int
	changed bool
}

// NewBuffer returns a buffer holding value with the cursor at the start.
func NewBuffer(value string, opts Options) *Buffer {
	b := &Buffer{opts: opts.normalize()}
	b.SetValue(value)
	return b
}

// Options returns the buffer's configuration.
func (b *Buffer) Options() Options {
	return b.opts
}

// SetValue replaces the whole content and moves the cursor to the start.
func (b *Buffer) SetValue(value string) {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	parts := strings.Split(value, "\n")
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.cursor = Pos{}
	b.goal = 0
	b.changed = true
}

// GetValue returns the content with lines joined by newlines.
func (b *Buffer) GetValue() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Lines returns the content split into lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// LineCount returns the number of lines, at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line i as runes. The slice must not be modified.
func (b *Buffer) Line(i int) []rune {
	return b.lines[i]
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Pos {
	return b.cursor
}

// SetCursor moves the cursor, clamped to the content.
func (b *Buffer) SetCursor(p Pos) {
	b.cursor = b.clamp(p)
	b.goal = b.cursor.Col
}

// TakeChanged reports whether the content changed since the last call.
func (b *Buffer) TakeChanged() bool {
	c := b.changed
	b.changed = false
	return c
}

func (b *Buffer) clamp(p Pos) Pos {
	p.Line = min(max(p.Line, 0), len(b.lines)-1)
	p.Col = min(max(p.Col, 0), len(b.lines[p.Line]))
	return p
}

// Insert types text at the cursor. Newlines split the line.
func (b *Buffer) Insert(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			b.splitLine("")
		}
		b.insertRunes([]rune(part))
	}
}

func (b *Buffer) insertRunes(rs []rune) {
	if len(rs) == 0 {
		return
	}
	c := b.cursor
	line := b.lines[c.Line]
	next := make([]rune, 0, len(line)+len(rs))
	next = append(next, line[:c.Col]...)
	next = append(next, rs...)
	next = append(next, line[c.Col:]...)
	b.lines[c.Line] = next
	b.cursor.Col += len(rs)
	b.goal = b.cursor.Col
	b.changed = true
}

// splitLine breaks the line at the cursor and starts the new line with
// indent.
func (b *Buffer) splitLine(indent string) {
	c := b.cursor
	line := b.lines[c.Line]
	head := append([]rune(nil), line[:c.Col]...)
	tail := append([]rune(indent), line[c.Col:]...)
	b.lines = append(b.lines, nil)
	copy(b.lines[c.Line+2:], b.lines[c.Line+1:])
	b.lines[c.Line] = head
	b.lines[c.Line+1] = tail
	b.cursor = Pos{Line: c.Line + 1, Col: len([]rune(indent))}
	b.goal = b.cursor.Col
	b.changed = true
}

// Newline splits the line at the cursor, keeping the current line's
// indentation and adding one indent unit after an opening bracket.
func (b *Buffer) Newline() {
	line := b.lines[b.cursor.Line]
	indent := leadingSpace(line)
	before := strings.TrimRightFunc(string(line[:b.cursor.Col]), unicode.IsSpace)
	if strings.HasSuffix(before, "{") || strings.HasSuffix(before, "(") || strings.HasSuffix(before, "[") {
		indent += strings.Repeat(" ", b.opts.IndentUnit)
	}
	b.splitLine(indent)
}

// Tab inserts spaces up to the next multiple of the indent unit.
func (b *Buffer) Tab() {
	n := b.opts.IndentUnit - b.cursor.Col%b.opts.IndentUnit
	b.insertRunes([]rune(strings.Repeat(" ", n)))
}

// Backspace deletes the rune before the cursor, joining lines at column 0.
func (b *Buffer) Backspace() {
	c := b.cursor
	switch {
	case c.Col > 0:
		line := b.lines[c.Line]
		b.lines[c.Line] = append(line[:c.Col-1:c.Col-1], line[c.Col:]...)
		b.cursor.Col--
	case c.Line > 0:
		prev := b.lines[c.Line-1]
		col := len(prev)
		b.lines[c.Line-1] = append(prev[:col:col], b.lines[c.Line]...)
		b.lines = append(b.lines[:c.Line], b.lines[c.Line+1:]...)
		b.cursor = Pos{Line: c.Line - 1, Col: col}
	default:
		return
	}
	b.goal = b.cursor.Col
	b.changed = true
}

// Delete removes the rune under the cursor, joining the next line at the
// end of a line.
func (b *Buffer) Delete() {
	c := b.cursor
	line := b.lines[c.Line]
	switch {
	case c.Col < len(line):
		b.lines[c.Line] = append(line[:c.Col:c.Col], line[c.Col+1:]...)
	case c.Line < len(b.lines)-1:
		b.lines[c.Line] = append(line[:c.Col:c.Col], b.lines[c.Line+1]...)
		b.lines = append(b.lines[:c.Line+1], b.lines[c.Line+2:]...)
	default:
		return
	}
	b.changed = true
}

// MoveLeft moves the cursor one rune back, wrapping to the previous line.
func (b *Buffer) MoveLeft() {
	c := b.cursor
	if c.Col > 0 {
		c.Col--
	} else if c.Line > 0 {
		c.Line--
		c.Col = len(b.lines[c.Line])
	}
	b.SetCursor(c)
}

// MoveRight moves the cursor one rune forward, wrapping to the next line.
func (b *Buffer) MoveRight() {
	c := b.cursor
	if c.Col < len(b.lines[c.Line]) {
		c.Col++
	} else if c.Line < len(b.lines)-1 {
		c.Line++
		c.Col = 0
	}
	b.SetCursor(c)
}

// MoveUp moves to the previous line, keeping the goal column.
func (b *Buffer) MoveUp() { b.moveVert(-1) }

// MoveDown moves to the next line, keeping the goal column.
func (b *Buffer) MoveDown() { b.moveVert(1) }

func (b *Buffer) moveVert(d int) {
	goal := b.goal
	b.cursor = b.clamp(Pos{Line: b.cursor.Line + d, Col: goal})
	b.goal = goal
}

// Home moves to the first non-blank rune, or column 0 if already there.
func (b *Buffer) Home() {
	ind := len(leadingSpace(b.lines[b.cursor.Line]))
	col := ind
	if b.cursor.Col == ind {
		col = 0
	}
	b.SetCursor(Pos{Line: b.cursor.Line, Col: col})
}

// End moves to the end of the line.
func (b *Buffer) End() {
	b.SetCursor(Pos{Line: b.cursor.Line, Col: len(b.lines[b.cursor.Line])})
}

// WordBefore returns the identifier (letters, digits, '_' and '.') ending
// at the cursor.
func (b *Buffer) WordBefore() string {
	line := b.lines[b.cursor.Line]
	i := b.cursor.Col
	for i > 0 && isWordRune(line[i-1]) {
		i--
	}
	return string(line[i:b.cursor.Col])
}

func isWordRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func leadingSpace(line []rune) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return string(line[:i])
}
