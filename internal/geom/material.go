package geom

// Default material values, matching a fresh three.js MeshStandardMaterial.
const (
	DefaultColor     = 0xffffff
	DefaultRoughness = 1.0
	DefaultOpacity   = 1.0
)

// MaterialParams configures a standard material. Zero fields take defaults,
// except Metalness whose default is zero anyway.
type MaterialParams struct {
	Color     uint32
	Roughness float32
	Metalness float32
	Opacity   float32
	Wireframe bool
}

// Material is a physically based surface description.
type Material struct {
	Color     uint32
	Roughness float32
	Metalness float32
	Opacity   float32
	Wireframe bool
}

// NewMeshStandardMaterial returns a material from p. Color 0 is treated as
// unset; use 0x000001 for near black.
func NewMeshStandardMaterial(p MaterialParams) *Material {
	m := &Material{
		Color:     p.Color,
		Roughness: p.Roughness,
		Metalness: clamp01(p.Metalness),
		Opacity:   p.Opacity,
		Wireframe: p.Wireframe,
	}
	if m.Color == 0 {
		m.Color = DefaultColor
	}
	if m.Roughness == 0 {
		m.Roughness = DefaultRoughness
	}
	m.Roughness = clamp01(m.Roughness)
	if m.Opacity == 0 {
		m.Opacity = DefaultOpacity
	}
	m.Opacity = clamp01(m.Opacity)
	return m
}

// RGB returns the color channels.
func (m *Material) RGB() (r, g, b uint8) {
	return uint8(m.Color >> 16), uint8(m.Color >> 8), uint8(m.Color)
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
