package ui

import (
	"sort"
	"strconv"
	"unicode/utf8"

	"mesh-creator/internal/editor"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gutterPad   = 8
	cursorWidth = 2
	blinkFrames = 30
)

// EditorView draws an editor.Buffer with syntax colors, line numbers,
// soft wrapping, bracket matching and a cursor, and feeds it keyboard input
// while focused.
type EditorView struct {
	eng    *Engine
	buf    *editor.Buffer
	hl     *editor.Highlighter
	node   *Node
	chords []boundChord

	focused bool
	scroll  int // first visible row
	frame   int

	spans    [][]editor.Span
	rows     []editor.Row
	rowsCols int
	dirty    bool
}

type boundChord struct {
	name  string
	chord Chord
	line  string
}

// NewEditorView returns a view over buf. Chords that fail to parse are
// returned as errors and left unbound.
func NewEditorView(eng *Engine, buf *editor.Buffer) (*EditorView, []error) {
	opts := buf.Options()
	v := &EditorView{
		eng:   eng,
		buf:   buf,
		hl:    editor.NewHighlighter(opts.Mode, opts.Theme),
		node:  NewNode("editor", "code", ""),
		dirty: true,
	}
	names := make([]string, 0, len(opts.ExtraKeys))
	for name := range opts.ExtraKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	var errs []error
	for _, name := range names {
		c, err := ParseChord(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		v.chords = append(v.chords, boundChord{name: name, chord: c, line: opts.ExtraKeys[name]})
	}
	return v, errs
}

// Buffer returns the edited buffer.
func (v *EditorView) Buffer() *editor.Buffer {
	return v.buf
}

// SetBounds places the view.
func (v *EditorView) SetBounds(r rl.Rectangle) {
	v.node.Bounds = r
}

// Focus gives the view keyboard input.
func (v *EditorView) Focus(focused bool) {
	v.focused = focused
}

// Focused reports whether the view takes keyboard input.
func (v *EditorView) Focused() bool {
	return v.focused
}

// Update handles mouse focus, scrolling and, while focused, typing. It
// returns the command lines bound to chords pressed this frame. Call once per frame.
func (v *EditorView) Update() []string {
	v.frame++
	mouse := rl.GetMousePosition()
	inside := rl.CheckCollisionPointRec(mouse, v.node.Bounds)
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		v.focused = inside
		if inside {
			v.clickAt(mouse)
		}
	}
	if inside {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			v.scroll = max(v.scroll-int(wheel*3), 0)
		}
	}
	if !v.focused {
		return nil
	}

	var fired []string
	for _, b := range v.chords {
		if b.chord.Pressed() {
			fired = append(fired, b.line)
		}
	}
	if len(fired) > 0 || ctrlDown() {
		// Drain characters typed with the chord, e.g. the space of Ctrl-Space.
		for rl.GetCharPressed() != 0 {
		}
		if rl.IsKeyPressed(rl.KeyV) && ctrlDown() {
			if pasted := rl.GetClipboardText(); pasted != "" {
				v.buf.Insert(pasted)
			}
		}
		if rl.IsKeyPressed(rl.KeyC) && ctrlDown() {
			rl.SetClipboardText(v.buf.GetValue())
		}
		v.keepCursorVisible()
		return fired
	}

	for {
		c := rl.GetCharPressed()
		if c == 0 {
			break
		}
		if r := rune(c); utf8.ValidRune(r) {
			v.buf.Insert(string(r))
		}
	}
	switch {
	case pressedOrRepeat(rl.KeyBackspace):
		v.buf.Backspace()
	case pressedOrRepeat(rl.KeyDelete):
		v.buf.Delete()
	case pressedOrRepeat(rl.KeyEnter), pressedOrRepeat(rl.KeyKpEnter):
		v.buf.Newline()
	case pressedOrRepeat(rl.KeyTab):
		v.buf.Tab()
	case pressedOrRepeat(rl.KeyLeft):
		v.buf.MoveLeft()
	case pressedOrRepeat(rl.KeyRight):
		v.buf.MoveRight()
	case pressedOrRepeat(rl.KeyUp):
		v.buf.MoveUp()
	case pressedOrRepeat(rl.KeyDown):
		v.buf.MoveDown()
	case pressedOrRepeat(rl.KeyPageUp):
		for range v.visibleRows() {
			v.buf.MoveUp()
		}
	case pressedOrRepeat(rl.KeyPageDown):
		for range v.visibleRows() {
			v.buf.MoveDown()
		}
	case rl.IsKeyPressed(rl.KeyHome):
		v.buf.Home()
	case rl.IsKeyPressed(rl.KeyEnd):
		v.buf.End()
	case rl.IsKeyPressed(rl.KeyEscape):
		v.focused = false
	}
	v.keepCursorVisible()
	return nil
}

// Draw draws the view.
func (v *EditorView) Draw() {
	st := v.eng.Style(v.node, "")
	b := v.node.Bounds
	bg := v.hl.Background()
	rl.DrawRectangleRec(b, rl.NewColor(bg.R, bg.G, bg.B, 255))
	if st.HasBorder {
		border := st.Border
		if v.focused {
			border = v.eng.Class("primary").Background
		}
		rl.DrawRectangleLinesEx(b, 1, rl.Color(border))
	}
	v.refresh()

	size := st.FontSize
	lineH := v.lineHeight()
	charW := v.charWidth()
	gutterW := v.gutterWidth()
	textX := b.X + float32(st.Padding) + gutterW
	top := b.Y + float32(st.Padding)
	visible := v.visibleRows()

	rl.BeginScissorMode(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))
	defer rl.EndScissorMode()

	gutter := v.eng.Class("gutter")
	if gutterW > 0 && gutter.Background.A > 0 {
		rl.DrawRectangleRec(rl.NewRectangle(b.X+1, b.Y+1, float32(st.Padding)+gutterW-gutterPad/2, b.Height-2), rl.Color(gutter.Background))
	}

	at, match, hasMatch := v.buf.MatchBracket()
	hasMatch = hasMatch && v.focused && v.buf.Options().MatchBrackets
	bracketBg := rl.Color(v.eng.Class("bracket").Background)
	tab := v.buf.Options().TabSize
	fg := v.hl.Foreground()

	for i := 0; i < visible && v.scroll+i < len(v.rows); i++ {
		row := v.rows[v.scroll+i]
		y := top + float32(i)*lineH
		line := v.buf.Line(row.Line)

		if gutterW > 0 && row.Start == 0 {
			num := strconv.Itoa(row.Line + 1)
			nx := b.X + float32(st.Padding) + gutterW - gutterPad - v.eng.MeasureText(num, size)
			v.eng.DrawText(num, nx, y, size, rl.Color(gutter.Color))
		}

		if hasMatch {
			for _, p := range []editor.Pos{at, match} {
				if p.Line == row.Line && p.Col >= row.Start && p.Col < row.End {
					col := editor.DisplayWidth(line[row.Start:p.Col], tab)
					rl.DrawRectangleRec(rl.NewRectangle(textX+float32(col)*charW, y, charW, lineH), bracketBg)
				}
			}
		}

		var spans []editor.Span
		if row.Line < len(v.spans) {
			spans = editor.SliceSpans(v.spans[row.Line], row.Start, row.End)
		} else {
			spans = []editor.Span{{Text: string(line[row.Start:row.End]), Color: fg}}
		}
		col := 0
		for _, s := range spans {
			rs := []rune(s.Text)
			text := editor.ExpandTabs(rs, col, tab)
			v.eng.DrawText(text, textX+float32(col)*charW, y, size, rl.NewColor(s.Color.R, s.Color.G, s.Color.B, 255))
			col += editor.DisplayWidth(rs, tab)
		}
	}

	if v.focused && (v.frame/blinkFrames)%2 == 0 {
		cur := v.buf.Cursor()
		if r := editor.RowOf(v.rows, cur); r >= v.scroll && r < v.scroll+visible {
			row := v.rows[r]
			col := editor.DisplayWidth(v.buf.Line(cur.Line)[row.Start:cur.Col], tab)
			x := textX + float32(col)*charW
			y := top + float32(r-v.scroll)*lineH
			rl.DrawRectangleRec(rl.NewRectangle(x, y, cursorWidth, lineH), rl.Color(v.eng.Class("cursor").Color))
		}
	}
}

// refresh re-highlights and re-wraps after edits or a width change.
func (v *EditorView) refresh() {
	if v.buf.TakeChanged() {
		v.dirty = true
	}
	cols := v.columns()
	if !v.dirty && cols == v.rowsCols {
		return
	}
	if v.dirty {
		v.spans = v.hl.Lines(v.buf.GetValue())
	}
	v.rows = editor.Layout(v.buf, cols)
	v.rowsCols = cols
	v.dirty = false
}

func (v *EditorView) keepCursorVisible() {
	v.refresh()
	r := editor.RowOf(v.rows, v.buf.Cursor())
	if r < 0 {
		return
	}
	visible := v.visibleRows()
	switch {
	case r < v.scroll:
		v.scroll = r
	case r >= v.scroll+visible:
		v.scroll = r - visible + 1
	}
}

func (v *EditorView) clickAt(p rl.Vector2) {
	v.refresh()
	st := v.eng.Style(v.node, "")
	b := v.node.Bounds
	r := v.scroll + int((p.Y-b.Y-float32(st.Padding))/v.lineHeight())
	if len(v.rows) == 0 {
		return
	}
	r = min(max(r, 0), len(v.rows)-1)
	row := v.rows[r]
	x := int((p.X - b.X - float32(st.Padding) - v.gutterWidth()) / v.charWidth())
	col := editor.ColumnAt(v.buf.Line(row.Line), row.Segment, max(x, 0), v.buf.Options().TabSize)
	v.buf.SetCursor(editor.Pos{Line: row.Line, Col: col})
}

func (v *EditorView) lineHeight() float32 {
	return float32(v.eng.Style(v.node, "").FontSize) + 4
}

func (v *EditorView) charWidth() float32 {
	return max(v.eng.MeasureText("M", v.eng.Style(v.node, "").FontSize), 1)
}

func (v *EditorView) gutterWidth() float32 {
	if !v.buf.Options().LineNumbers {
		return 0
	}
	digits := max(len(strconv.Itoa(v.buf.LineCount())), 2)
	return float32(digits)*v.charWidth() + 2*gutterPad
}

func (v *EditorView) columns() int {
	st := v.eng.Style(v.node, "")
	w := v.node.Bounds.Width - 2*float32(st.Padding) - v.gutterWidth()
	return max(int(w/v.charWidth())-1, 1)
}

func (v *EditorView) visibleRows() int {
	st := v.eng.Style(v.node, "")
	return max(int((v.node.Bounds.Height-2*float32(st.Padding))/v.lineHeight()), 1)
}
