// Package ui draws the sidebar (title, code editor, buttons, mesh info),
// the status line over the viewport and the FPS overlay, and turns raylib
// input into editor edits and commands. Everything here runs on the render
// goroutine.
package ui

import (
	"os"

	"mesh-creator/internal/ui/style"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Engine resolves node styles against the stylesheet and draws nodes with raylib.
// If a font is loaded (LoadFont), text is drawn with it; otherwise raylib's default font is used.
type Engine struct {
	styles *style.Resolver
	font   rl.Font
}

// NewEngine creates an engine over sheet (nil for unstyled nodes).
func NewEngine(sheet *style.Stylesheet) *Engine {
	return &Engine{styles: style.NewResolver(sheet)}
}

// LoadCSS replaces the stylesheet with the file at path.
func (e *Engine) LoadCSS(path string) error {
	sheet, err := style.Load(path)
	if err != nil {
		return err
	}
	e.styles.SetStylesheet(sheet)
	return nil
}

// LoadFont loads a TTF font from path. If loading fails the engine keeps its current font.
// Call after the window exists.
func (e *Engine) LoadFont(path string, size int32) error {
	f := rl.LoadFontEx(path, size, nil)
	if f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	e.font = f
	return nil
}

// Unload frees the loaded font.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}

// Style returns the resolved style of n in the given state ("", "hover", "disabled").
func (e *Engine) Style(n *Node, state string) style.Computed {
	return e.styles.Style(n.Class, n.ID, state)
}

// Class returns the resolved style of a bare class.
func (e *Engine) Class(class string) style.Computed {
	return e.styles.Style(class, "", "")
}

// DrawNode draws background, border and text of n.
func (e *Engine) DrawNode(n *Node, state string) {
	st := e.Style(n, state)
	b := n.Bounds
	if st.Background.A > 0 {
		rl.DrawRectangleRec(b, rl.Color(st.Background))
	}
	if st.HasBorder && b.Width > 0 && b.Height > 0 {
		rl.DrawRectangleLinesEx(b, 1, rl.Color(st.Border))
	}
	if n.Text != "" {
		e.DrawText(n.Text, b.X+float32(st.Padding), b.Y+(b.Height-float32(st.FontSize))/2, st.FontSize, rl.Color(st.Color))
	}
}

// Button draws n as a button and reports whether it was clicked this frame.
func (e *Engine) Button(n *Node) bool {
	if n.Disabled {
		e.drawCentered(n, "disabled")
		return false
	}
	hover := rl.CheckCollisionPointRec(rl.GetMousePosition(), n.Bounds)
	state := ""
	if hover {
		state = "hover"
	}
	e.drawCentered(n, state)
	return hover && rl.IsMouseButtonReleased(rl.MouseButtonLeft)
}

func (e *Engine) drawCentered(n *Node, state string) {
	st := e.Style(n, state)
	b := n.Bounds
	if st.Background.A > 0 {
		rl.DrawRectangleRec(b, rl.Color(st.Background))
	}
	if st.HasBorder {
		rl.DrawRectangleLinesEx(b, 1, rl.Color(st.Border))
	}
	w := e.MeasureText(n.Text, st.FontSize)
	e.DrawText(n.Text, b.X+(b.Width-w)/2, b.Y+(b.Height-float32(st.FontSize))/2, st.FontSize, rl.Color(st.Color))
}

// DrawText draws text at (x, y) with the engine font.
func (e *Engine) DrawText(text string, x, y float32, size int32, c rl.Color) {
	if e.font.Texture.ID != 0 {
		rl.DrawTextEx(e.font, text, rl.NewVector2(x, y), float32(size), 1, c)
		return
	}
	rl.DrawText(text, int32(x), int32(y), size, c)
}

// MeasureText returns the width of text in pixels.
func (e *Engine) MeasureText(text string, size int32) float32 {
	if e.font.Texture.ID != 0 {
		return rl.MeasureTextEx(e.font, text, float32(size), 1).X
	}
	return float32(rl.MeasureText(text, size))
}
