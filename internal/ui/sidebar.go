package ui

import (
	"mesh-creator/internal/viewport"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gap           = 8
	presetColumns = 2
	// postBuffer bounds the functions queued from other goroutines between frames.
	postBuffer = 64
)

// PresetButton is one example button.
type PresetButton struct {
	Name  string
	Label string
}

// Sidebar is the left column: title, code editor, the Generate button,
// the example buttons and the mesh info panel. It also draws the status
// line at the bottom of the viewport and the HUD.
//
// OnGenerate, OnPreset and OnCommand run on the render goroutine and must
// not block; start long work in a goroutine and hand results back with Post.
type Sidebar struct {
	OnGenerate func()
	OnPreset   func(name string)
	OnCommand  func(line string)

	eng      *Engine
	editor   *EditorView
	hud      *HUD
	snapshot func() viewport.Snapshot
	posted   chan func()

	panel      *Node
	title      *Node
	generate   *Node
	examples   *Node
	presets    []*Node
	presetName []string
	infoLabel  *Node
	info       *Node
	status     *Node
}

// NewSidebar builds the sidebar. snapshot is read every frame for the mesh info and status.
func NewSidebar(eng *Engine, title string, ed *EditorView, buttons []PresetButton, snapshot func() viewport.Snapshot) *Sidebar {
	s := &Sidebar{
		eng:       eng,
		editor:    ed,
		hud:       NewHUD(eng),
		snapshot:  snapshot,
		posted:    make(chan func(), postBuffer),
		panel:     NewNode("sidebar", "", ""),
		title:     NewNode("title", "", title),
		generate:  NewNode("button primary", "generate", "Generate Mesh"),
		examples:  NewNode("panel-label", "", "Examples:"),
		infoLabel: NewNode("panel-label", "", "Mesh Info:"),
		info:      NewNode("info", "", ""),
		status:    NewNode("status", "", ""),
	}
	s.SetPresets(buttons)
	return s
}

// SetPresets replaces the example buttons.
func (s *Sidebar) SetPresets(buttons []PresetButton) {
	s.presets = s.presets[:0]
	s.presetName = s.presetName[:0]
	for _, b := range buttons {
		s.presets = append(s.presets, NewNode("button", "preset-"+b.Name, b.Label))
		s.presetName = append(s.presetName, b.Name)
	}
}

// HUD returns the overlay counters.
func (s *Sidebar) HUD() *HUD {
	return s.hud
}

// Editor returns the code editor view.
func (s *Sidebar) Editor() *EditorView {
	return s.editor
}

// Post queues fn to run on the render goroutine at the start of the next
// frame. It drops fn and returns false if the queue is full.
func (s *Sidebar) Post(fn func()) bool {
	select {
	case s.posted <- fn:
		return true
	default:
		return false
	}
}

// Update runs posted functions, lays out the sidebar for the current
// screen and handles editor input. Call once per frame before drawing.
func (s *Sidebar) Update(width, height int) {
drain:
	for {
		select {
		case fn := <-s.posted:
			fn()
		default:
			break drain
		}
	}
	s.layout(float32(width), float32(height))
	for _, line := range s.editor.Update() {
		if s.OnCommand != nil {
			s.OnCommand(line)
		}
	}
}

// layout stacks the sidebar nodes top to bottom; the editor takes the height left over.
func (s *Sidebar) layout(width, height float32) {
	pad := float32(s.eng.Style(s.panel, "").Padding)
	inner := width - 2*pad
	s.panel.Bounds = rl.NewRectangle(0, 0, width, height)

	place := func(n *Node, y float32) float32 {
		h := float32(s.eng.Style(n, "").Height)
		n.Bounds = rl.NewRectangle(pad, y, inner, h)
		return y + h + gap
	}

	buttonH := float32(s.eng.Class("button").Height)
	rows := (len(s.presets) + presetColumns - 1) / presetColumns
	below := float32(s.eng.Style(s.generate, "").Height) + gap +
		float32(s.eng.Style(s.examples, "").Height) + gap +
		float32(rows)*(buttonH+gap) +
		float32(s.eng.Style(s.infoLabel, "").Height) + gap +
		float32(s.eng.Style(s.info, "").Height) + pad

	y := place(s.title, pad)
	editorH := max(height-y-below-gap, 3*float32(s.eng.Class("editor").FontSize))
	s.editor.SetBounds(rl.NewRectangle(pad, y, inner, editorH))
	y += editorH + gap
	y = place(s.generate, y)
	y = place(s.examples, y)

	colW := (inner - gap*(presetColumns-1)) / presetColumns
	for i, n := range s.presets {
		col, row := i%presetColumns, i/presetColumns
		n.Bounds = rl.NewRectangle(pad+float32(col)*(colW+gap), y+float32(row)*(buttonH+gap), colW, buttonH)
	}
	y += float32(rows) * (buttonH + gap)
	y = place(s.infoLabel, y)
	place(s.info, y)
}

// Draw draws the sidebar, then the status line and HUD over the viewport
// rectangle vp. Button clicks are dispatched here.
func (s *Sidebar) Draw(vp rl.Rectangle) {
	snap := s.snapshot()

	s.eng.DrawNode(s.panel, "")
	s.eng.DrawNode(s.title, "")
	s.editor.Draw()

	s.generate.Disabled = snap.Busy
	if s.eng.Button(s.generate) && s.OnGenerate != nil {
		s.OnGenerate()
	}
	s.eng.DrawNode(s.examples, "")
	for i, n := range s.presets {
		if s.eng.Button(n) && s.OnPreset != nil {
			s.OnPreset(s.presetName[i])
		}
	}
	s.eng.DrawNode(s.infoLabel, "")
	s.info.Text = snap.Stats.String()
	s.eng.DrawNode(s.info, "")

	s.drawStatus(vp, snap)
	s.hud.Draw(vp.X + vp.Width)
}

// drawStatus draws "Status: <message>" in a bar at the bottom of the
// viewport, the message red when it reports an error.
func (s *Sidebar) drawStatus(vp rl.Rectangle, snap viewport.Snapshot) {
	if snap.Status == "" {
		return
	}
	st := s.eng.Style(s.status, "")
	h := float32(st.Height)
	s.status.Bounds = rl.NewRectangle(vp.X, vp.Y+vp.Height-h, vp.Width, h)
	if st.Background.A > 0 {
		rl.DrawRectangleRec(s.status.Bounds, rl.Color(st.Background))
	}
	const label = "Status: "
	x := s.status.Bounds.X + float32(st.Padding)
	y := s.status.Bounds.Y + (h-float32(st.FontSize))/2
	s.eng.DrawText(label, x, y, st.FontSize, rl.Color(st.Color))
	x += s.eng.MeasureText(label, st.FontSize)

	class := "success"
	if snap.IsError() {
		class = "error"
	}
	s.eng.DrawText(snap.Status, x, y, st.FontSize, rl.Color(s.eng.Class(class).Color))
}
