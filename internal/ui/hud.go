package ui

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// updateInterval: only refresh the HUD text every N frames to reduce allocations.
const updateInterval = 30

// HUD draws the optional FPS and memory counters at the top-right of the viewport.
type HUD struct {
	ShowFPS      bool
	ShowMemAlloc bool

	eng          *Engine
	node         *Node
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// NewHUD returns a HUD with all counters hidden.
func NewHUD(eng *Engine) *HUD {
	return &HUD{eng: eng, node: NewNode("hud", "", "")}
}

// Draw renders the enabled counters, right-aligned against right (the
// right edge of the viewport in screen pixels).
func (h *HUD) Draw(right float32) {
	h.frameCount++
	update := h.frameCount%updateInterval == 0
	if (h.ShowFPS && h.lastFpsText == "") || (h.ShowMemAlloc && h.lastMemText == "") {
		update = true
	}
	st := h.eng.Style(h.node, "")
	y := float32(st.Padding)
	line := func(text string) {
		w := h.eng.MeasureText(text, st.FontSize)
		h.eng.DrawText(text, right-w-float32(st.Padding), y, st.FontSize, rl.Color(st.Color))
		y += float32(st.FontSize) + 4
	}
	if h.ShowFPS {
		if update {
			h.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		line(h.lastFpsText)
	}
	if h.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&h.lastMemStats)
			h.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(h.lastMemStats.Alloc)/(1024*1024))
		}
		line(h.lastMemText)
	}
}
