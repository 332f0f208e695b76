package style

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#1a1a1a", color.RGBA{0x1a, 0x1a, 0x1a, 255}, true},
		{" #F44336 ", color.RGBA{0xf4, 0x43, 0x36, 255}, true},
		{"#000000b3", color.RGBA{0, 0, 0, 0xb3}, true},
		{"#12", color.RGBA{A: 255}, false},
		{"#ggg", color.RGBA{A: 255}, false},
		{"red", color.RGBA{A: 255}, false},
	}
	for _, tt := range tests {
		got, ok := ParseHexColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParsePx(t *testing.T) {
	n, ok := ParsePx("12px")
	assert.True(t, ok)
	assert.Equal(t, int32(12), n)
	n, ok = ParsePx(" 7 ")
	assert.True(t, ok)
	assert.Equal(t, int32(7), n)
	_, ok = ParsePx("1em")
	assert.False(t, ok)
}

func TestParseSkipsUnsupportedSelectors(t *testing.T) {
	sheet, err := Parse(`
.a, #b { color: #111; }
div { color: #222; }
.a .c { color: #333; }
@media screen { .d { color: #444; } }
`)
	require.NoError(t, err)
	var sels []string
	for _, r := range sheet.Rules {
		sels = append(sels, r.Selector)
	}
	assert.Equal(t, []string{".a", "#b"}, sels)
}

func TestMatchOrderAndState(t *testing.T) {
	sheet, err := Parse(`
.button { background: #111111; color: #eeeeee; }
.button:hover { background: #222222; }
.primary { background: #0000ff; }
.primary:hover { background: #3333ff; }
#go { color: #00ff00; }
`)
	require.NoError(t, err)

	plain := sheet.Match("button", "", "")
	assert.Equal(t, "#111111", plain["background"])

	hover := sheet.Match("button", "", "hover")
	assert.Equal(t, "#222222", hover["background"])
	assert.Equal(t, "#eeeeee", hover["color"])

	both := sheet.Match("button primary", "go", "hover")
	assert.Equal(t, "#3333ff", both["background"])
	assert.Equal(t, "#00ff00", both["color"])

	assert.Empty(t, sheet.Match("other", "", "hover"))
}

func TestResolve(t *testing.T) {
	c := Resolve(map[string]string{
		"background": "#102030",
		"border":     "#ffffff",
		"height":     "32px",
		"padding":    "6",
		"font-size":  "20px",
		"width":      "oops",
	})
	assert.Equal(t, color.RGBA{0x10, 0x20, 0x30, 255}, c.Background)
	assert.True(t, c.HasBorder)
	assert.Equal(t, int32(32), c.Height)
	assert.Equal(t, int32(6), c.Padding)
	assert.Equal(t, int32(20), c.FontSize)
	assert.Zero(t, c.Width)
}

func TestDefaultTheme(t *testing.T) {
	r := NewResolver(Default())
	errStyle := r.Style("error", "", "")
	assert.Equal(t, color.RGBA{0xf4, 0x43, 0x36, 255}, errStyle.Color)

	primary := r.Style("button primary", "", "")
	hovered := r.Style("button primary", "", "hover")
	assert.NotEqual(t, primary.Background, hovered.Background)
	assert.Equal(t, int32(40), primary.Height)
}

func TestResolverSetStylesheet(t *testing.T) {
	a, err := Parse(".x { color: #010101; }")
	require.NoError(t, err)
	b, err := Parse(".x { color: #020202; }")
	require.NoError(t, err)

	r := NewResolver(a)
	assert.Equal(t, uint8(1), r.Style("x", "", "").Color.R)
	r.SetStylesheet(b)
	assert.Equal(t, uint8(2), r.Style("x", "", "").Color.R)

	var nilSheet *Stylesheet
	assert.Equal(t, DefaultComputed(), NewResolver(nilSheet).Style("x", "", ""))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.css")
	require.NoError(t, os.WriteFile(path, []byte("#title { font-size: 30px; }"), 0o644))
	sheet, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(30), Resolve(sheet.Match("", "title", "")).FontSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.css"))
	assert.Error(t, err)
}
