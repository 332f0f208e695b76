package geom

import "cogentcore.org/core/math32"

// Shape generators follow the three.js vertex and index layout, so a
// 1x1x1 box has 24 vertices and 12 faces.

// Minimum segment counts; smaller requests are clamped.
const (
	minSphereWidthSegments  = 3
	minSphereHeightSegments = 2
	minCylinderRadial       = 3
	minTorusRadial          = 2
	minTorusTubular         = 3
)

// NewBoxGeometry returns an axis-aligned box centered on the origin with one
// quad per side.
func NewBoxGeometry(width, height, depth float32) *BufferGeometry {
	b := &builder{}
	const x, y, z = 0, 1, 2
	boxPlane(b, z, y, x, -1, -1, depth, height, width)
	boxPlane(b, z, y, x, 1, -1, depth, height, -width)
	boxPlane(b, x, z, y, 1, 1, width, depth, height)
	boxPlane(b, x, z, y, 1, -1, width, depth, -height)
	boxPlane(b, x, y, z, 1, -1, width, height, depth)
	boxPlane(b, x, y, z, -1, -1, width, height, -depth)
	return b.geometry()
}

// boxPlane emits one side of a box. u, v and w are axis indices; w is the
// axis the side faces along, with its sign taken from depth.
func boxPlane(b *builder, u, v, w int, udir, vdir, width, height, depth float32) {
	start := b.count()
	wh, hh, dh := width/2, height/2, depth/2
	nw := float32(1)
	if depth < 0 {
		nw = -1
	}
	for iy := 0; iy <= 1; iy++ {
		py := float32(iy)*height - hh
		for ix := 0; ix <= 1; ix++ {
			px := float32(ix)*width - wh
			var p, n [3]float32
			p[u], p[v], p[w] = px*udir, py*vdir, dh
			n[w] = nw
			b.vertex(p[0], p[1], p[2], n[0], n[1], n[2], float32(ix), 1-float32(iy))
		}
	}
	a, c, d, e := start, start+2, start+3, start+1
	b.tri(a, c, e)
	b.tri(c, d, e)
}

// NewSphereGeometry returns a UV sphere. widthSegments runs around the
// equator and heightSegments from pole to pole.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *BufferGeometry {
	widthSegments = max(minSphereWidthSegments, widthSegments)
	heightSegments = max(minSphereHeightSegments, heightSegments)
	b := &builder{}
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		uOffset := float32(0)
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			theta := v * math32.Pi
			px := -radius * math32.Cos(phi) * math32.Sin(theta)
			py := radius * math32.Cos(theta)
			pz := radius * math32.Sin(phi) * math32.Sin(theta)
			nx, ny, nz := normalize(px, py, pz)
			row[ix] = b.vertex(px, py, pz, nx, ny, nz, u+uOffset, 1-v)
		}
		grid[iy] = row
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			c := grid[iy][ix]
			d := grid[iy+1][ix]
			e := grid[iy+1][ix+1]
			if iy != 0 {
				b.tri(a, c, e)
			}
			if iy != heightSegments-1 {
				b.tri(c, d, e)
			}
		}
	}
	return b.geometry()
}

// NewCylinderGeometry returns a capped cylinder (or cone when one radius is
// zero) of the given height centered on the origin along Y.
func NewCylinderGeometry(radiusTop, radiusBottom, height float32, radialSegments int) *BufferGeometry {
	radialSegments = max(minCylinderRadial, radialSegments)
	b := &builder{}
	half := height / 2
	slope := float32(0)
	if height != 0 {
		slope = (radiusBottom - radiusTop) / height
	}

	rows := [2][]uint32{}
	for y := 0; y <= 1; y++ {
		v := float32(y)
		r := v*(radiusBottom-radiusTop) + radiusTop
		row := make([]uint32, radialSegments+1)
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			theta := u * 2 * math32.Pi
			sin, cos := math32.Sin(theta), math32.Cos(theta)
			nx, ny, nz := normalize(sin, slope, cos)
			row[x] = b.vertex(r*sin, -v*height+half, r*cos, nx, ny, nz, u, 1-v)
		}
		rows[y] = row
	}
	for x := 0; x < radialSegments; x++ {
		a, c, d, e := rows[0][x], rows[1][x], rows[1][x+1], rows[0][x+1]
		if radiusTop > 0 {
			b.tri(a, c, e)
		}
		if radiusBottom > 0 {
			b.tri(c, d, e)
		}
	}
	if radiusTop > 0 {
		cylinderCap(b, radialSegments, radiusTop, half, true)
	}
	if radiusBottom > 0 {
		cylinderCap(b, radialSegments, radiusBottom, half, false)
	}
	return b.geometry()
}

func cylinderCap(b *builder, segments int, radius, half float32, top bool) {
	sign := float32(-1)
	if top {
		sign = 1
	}
	centerStart := b.count()
	for x := 1; x <= segments; x++ {
		b.vertex(0, half*sign, 0, 0, sign, 0, 0.5, 0.5)
	}
	rimStart := b.count()
	for x := 0; x <= segments; x++ {
		theta := float32(x) / float32(segments) * 2 * math32.Pi
		sin, cos := math32.Sin(theta), math32.Cos(theta)
		b.vertex(radius*sin, half*sign, radius*cos, 0, sign, 0, cos*0.5+0.5, sin*0.5*sign+0.5)
	}
	for x := uint32(0); x < uint32(segments); x++ {
		c := centerStart + x
		i := rimStart + x
		if top {
			b.tri(i, i+1, c)
		} else {
			b.tri(i+1, i, c)
		}
	}
}

// NewTorusGeometry returns a torus in the XY plane. radius is the distance
// from the center to the middle of the tube.
func NewTorusGeometry(radius, tube float32, radialSegments, tubularSegments int) *BufferGeometry {
	radialSegments = max(minTorusRadial, radialSegments)
	tubularSegments = max(minTorusTubular, tubularSegments)
	b := &builder{}
	for j := 0; j <= radialSegments; j++ {
		for i := 0; i <= tubularSegments; i++ {
			u := float32(i) / float32(tubularSegments) * 2 * math32.Pi
			v := float32(j) / float32(radialSegments) * 2 * math32.Pi
			ring := radius + tube*math32.Cos(v)
			px := ring * math32.Cos(u)
			py := ring * math32.Sin(u)
			pz := tube * math32.Sin(v)
			nx, ny, nz := normalize(px-radius*math32.Cos(u), py-radius*math32.Sin(u), pz)
			b.vertex(px, py, pz, nx, ny, nz, float32(i)/float32(tubularSegments), float32(j)/float32(radialSegments))
		}
	}
	stride := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := stride*j + i - 1
			c := stride*(j-1) + i - 1
			d := stride*(j-1) + i
			e := stride*j + i
			b.tri(a, c, e)
			b.tri(c, d, e)
		}
	}
	return b.geometry()
}

// NewPlaneGeometry returns a single quad in the XY plane facing +Z.
func NewPlaneGeometry(width, height float32) *BufferGeometry {
	b := &builder{}
	for iy := 0; iy <= 1; iy++ {
		py := float32(iy)*height - height/2
		for ix := 0; ix <= 1; ix++ {
			px := float32(ix)*width - width/2
			b.vertex(px, -py, 0, 0, 0, 1, float32(ix), 1-float32(iy))
		}
	}
	b.tri(0, 2, 1)
	b.tri(2, 3, 1)
	return b.geometry()
}
