package style

import (
	"image/color"
	"strconv"
	"strings"
)

// Computed holds resolved values used for drawing.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type Computed struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Padding    int32
	FontSize   int32
}

// DefaultComputed returns a minimal style: transparent background, white
// text, no border, zero size.
func DefaultComputed() Computed {
	return Computed{
		Background: color.RGBA{},
		Color:      color.RGBA{255, 255, 255, 255},
		Border:     color.RGBA{0, 0, 0, 255},
		Padding:    4,
		FontSize:   16,
	}
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA. Alpha defaults to 255.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return color.RGBA{A: 255}, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return color.RGBA{A: 255}, false
		}
	}
	byteAt := func(i int) uint8 {
		hi, _ := hexDigit(hex[i])
		lo, _ := hexDigit(hex[i+1])
		return hi<<4 | lo
	}
	switch len(hex) {
	case 3:
		r, _ := hexDigit(hex[0])
		g, _ := hexDigit(hex[1])
		b, _ := hexDigit(hex[2])
		return color.RGBA{r * 17, g * 17, b * 17, 255}, true
	case 6:
		return color.RGBA{byteAt(0), byteAt(2), byteAt(4), 255}, true
	case 8:
		return color.RGBA{byteAt(0), byteAt(2), byteAt(4), byteAt(6)}, true
	}
	return color.RGBA{A: 255}, false
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParsePx parses a number with an optional "px" suffix. Unitless is pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// Resolve builds a Computed from a merged property map, e.g. the result of
// Stylesheet.Match. Unknown properties and unparsable values are ignored.
func Resolve(props map[string]string) Computed {
	out := DefaultComputed()
	for k, v := range props {
		switch k {
		case "background", "background-color":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			if c, ok := ParseHexColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}

// Resolver caches resolved styles per class, id and state.
type Resolver struct {
	sheet *Stylesheet
	cache map[[3]string]Computed
}

// NewResolver returns a resolver over sheet. A nil sheet resolves every
// node to DefaultComputed.
func NewResolver(sheet *Stylesheet) *Resolver {
	return &Resolver{sheet: sheet, cache: make(map[[3]string]Computed)}
}

// SetStylesheet replaces the sheet and drops the cache.
func (r *Resolver) SetStylesheet(sheet *Stylesheet) {
	r.sheet = sheet
	clear(r.cache)
}

// Style returns the resolved style for a node.
func (r *Resolver) Style(class, id, state string) Computed {
	key := [3]string{class, id, state}
	if c, ok := r.cache[key]; ok {
		return c
	}
	c := Resolve(r.sheet.Match(class, id, state))
	r.cache[key] = c
	return c
}
