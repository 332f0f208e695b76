package editor

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Span is a run of text on one line drawn in a single color.
type Span struct {
	Text  string
	Color Color
	Bold  bool
}

// Highlighter colors source text with a chroma lexer and style.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// NewHighlighter returns a highlighter for mode and theme. Unknown names
// fall back to chroma's plain-text lexer and default style.
func NewHighlighter(mode, theme string) *Highlighter {
	lexer := lexers.Get(mode)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{lexer: chroma.Coalesce(lexer), style: style}
}

// Background returns the style's background color.
func (h *Highlighter) Background() Color {
	return toColor(h.style.Get(chroma.Background).Background, Color{0x27, 0x28, 0x22})
}

// Foreground returns the style's default text color.
func (h *Highlighter) Foreground() Color {
	return toColor(h.style.Get(chroma.Text).Colour, Color{0xf8, 0xf8, 0xf2})
}

// Lines tokenises src and returns the colored spans of each line. The
// result always has one entry per line of src. On a lexer error every line
// is returned as a single plain span.
func (h *Highlighter) Lines(src string) [][]Span {
	n := strings.Count(src, "\n") + 1
	out := make([][]Span, n)
	it, err := h.lexer.Tokenise(nil, src)
	if err != nil {
		fg := h.Foreground()
		for i, l := range strings.Split(src, "\n") {
			out[i] = []Span{{Text: l, Color: fg}}
		}
		return out
	}
	fg := h.Foreground()
	line := 0
	for _, tok := range it.Tokens() {
		entry := h.style.Get(tok.Type)
		c := toColor(entry.Colour, fg)
		bold := entry.Bold == chroma.Yes
		parts := strings.Split(tok.Value, "\n")
		for i, p := range parts {
			if i > 0 {
				line++
			}
			if p == "" || line >= n {
				continue
			}
			out[line] = append(out[line], Span{Text: p, Color: c, Bold: bold})
		}
	}
	return out
}

func toColor(c chroma.Colour, fallback Color) Color {
	if !c.IsSet() {
		return fallback
	}
	return Color{R: c.Red(), G: c.Green(), B: c.Blue()}
}
