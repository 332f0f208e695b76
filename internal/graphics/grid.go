package graphics

import (
	"mesh-creator/internal/viewport"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Grid colors: darker center lines like a three.js GridHelper.
const (
	gridCenterGray = 0x44
	gridLineGray   = 0x88
)

// drawGrid draws a square grid on the XZ plane (Y=0) centered at the origin,
// g.Size wide with g.Divisions cells per side.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid(g viewport.Grid) {
	if g.Divisions <= 0 || g.Size <= 0 {
		return
	}
	alpha := uint8(min(max(g.Opacity, 0), 1) * 255)
	center := rl.NewColor(gridCenterGray, gridCenterGray, gridCenterGray, alpha)
	line := rl.NewColor(gridLineGray, gridLineGray, gridLineGray, alpha)

	half := g.Size / 2
	step := g.Size / float32(g.Divisions)
	var start, end rl.Vector3
	for i := 0; i <= g.Divisions; i++ {
		k := -half + float32(i)*step
		c := line
		if 2*i == g.Divisions {
			c = center
		}
		// Line along Z at x=k, then along X at z=k.
		start.X, start.Y, start.Z = k, 0, -half
		end.X, end.Y, end.Z = k, 0, half
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -half, 0, k
		end.X, end.Y, end.Z = half, 0, k
		rl.DrawLine3D(start, end, c)
	}
}
