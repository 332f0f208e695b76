package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Chord is a key with modifiers, parsed from names like "Ctrl-Space" or "Shift-Ctrl-G".
type Chord struct {
	Ctrl, Shift, Alt bool
	Key              int32
}

var namedKeys = map[string]int32{
	"space":     rl.KeySpace,
	"enter":     rl.KeyEnter,
	"return":    rl.KeyEnter,
	"tab":       rl.KeyTab,
	"backspace": rl.KeyBackspace,
	"delete":    rl.KeyDelete,
	"escape":    rl.KeyEscape,
	"esc":       rl.KeyEscape,
	"up":        rl.KeyUp,
	"down":      rl.KeyDown,
	"left":      rl.KeyLeft,
	"right":     rl.KeyRight,
	"home":      rl.KeyHome,
	"end":       rl.KeyEnd,
	"pageup":    rl.KeyPageUp,
	"pagedown":  rl.KeyPageDown,
}

// ParseChord parses a chord. "Cmd" and "Super" count as Ctrl so the same
// bindings work on macOS.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(s, "-")
	var c Chord
	for i, p := range parts {
		name := strings.ToLower(strings.TrimSpace(p))
		if i < len(parts)-1 {
			switch name {
			case "ctrl", "cmd", "super":
				c.Ctrl = true
			case "shift":
				c.Shift = true
			case "alt":
				c.Alt = true
			default:
				return Chord{}, fmt.Errorf("unknown modifier %q in %q", p, s)
			}
			continue
		}
		key, ok := keyByName(name)
		if !ok {
			return Chord{}, fmt.Errorf("unknown key %q in %q", p, s)
		}
		c.Key = key
	}
	return c, nil
}

func keyByName(name string) (int32, bool) {
	if k, ok := namedKeys[name]; ok {
		return k, true
	}
	if len(name) == 1 {
		switch ch := name[0]; {
		case ch >= 'a' && ch <= 'z':
			return rl.KeyA + int32(ch-'a'), true
		case ch >= '0' && ch <= '9':
			return rl.KeyZero + int32(ch-'0'), true
		}
	}
	var n int
	if _, err := fmt.Sscanf(name, "f%d", &n); err == nil && n >= 1 && n <= 12 {
		return rl.KeyF1 + int32(n-1), true
	}
	return 0, false
}

// Pressed reports whether the chord was pressed this frame with exactly its modifiers.
func (c Chord) Pressed() bool {
	return rl.IsKeyPressed(c.Key) && ctrlDown() == c.Ctrl && shiftDown() == c.Shift && altDown() == c.Alt
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

func altDown() bool {
	return rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt)
}

// pressedOrRepeat is true on the first frame of a key press and on the OS key repeats after it.
func pressedOrRepeat(key int32) bool {
	return rl.IsKeyPressed(key) || rl.IsKeyPressedRepeat(key)
}
