package rr

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glref/vec"
)

// windowVertex is a vertex after the viewport transform.
type windowVertex struct {
	x, y, z float32
	invW    float32
	pt      fixed.Point26_6 // snapped to the subpixel grid
}

func snap(v float32) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(v) * 64))
}

// toWindow applies the perspective divide and the viewport transform.
func toWindow(p vec.Vec4, vp *ViewportState) windowVertex {
	invW := 1 / p[3]
	nx, ny, nz := p[0]*invW, p[1]*invW, p[2]*invW
	r := vp.Rect
	wv := windowVertex{
		x:    float32(r.X) + (nx+1)*float32(r.Width)/2,
		y:    float32(r.Y) + (ny+1)*float32(r.Height)/2,
		z:    (vp.ZFar-vp.ZNear)/2*nz + (vp.ZNear+vp.ZFar)/2,
		invW: invW,
	}
	wv.pt = fixed.Point26_6{X: snap(wv.x), Y: snap(wv.y)}
	return wv
}

// edgeFunc is the signed area test of one triangle edge in 26.6 units.
type edgeFunc struct {
	ax, ay int64
	dx, dy int64
	// inclusive marks top and left edges, which own samples lying exactly
	// on them.
	inclusive bool
}

func newEdgeFunc(a, b fixed.Point26_6) edgeFunc {
	dx := int64(b.X - a.X)
	dy := int64(b.Y - a.Y)
	return edgeFunc{
		ax: int64(a.X), ay: int64(a.Y),
		dx: dx, dy: dy,
		inclusive: dy < 0 || (dy == 0 && dx < 0),
	}
}

func (e *edgeFunc) eval(px, py int64) int64 {
	return e.dx*(py-e.ay) - e.dy*(px-e.ax)
}

func (e *edgeFunc) inside(v int64) bool {
	return v > 0 || (v == 0 && e.inclusive)
}

func (e *edgeFunc) evalFloat(px, py float64) float64 {
	return float64(e.dx)*(py-float64(e.ay)) - float64(e.dy)*(px-float64(e.ax))
}

// rasterizer turns window-space primitives into fragment packets.
type rasterizer struct {
	clip       WindowRect
	numSamples int
	offsets    [MaxSamples]fixed.Point26_6
}

func newRasterizer(clip WindowRect, numSamples int) *rasterizer {
	r := &rasterizer{clip: clip, numSamples: numSamples}
	for s := range numSamples {
		p := SamplePosition(numSamples, s)
		r.offsets[s] = fixed.Point26_6{X: snap(p[0]), Y: snap(p[1])}
	}
	return r
}

func (r *rasterizer) allSamples() uint64 {
	return uint64(1)<<r.numSamples - 1
}

// triangle rasterizes a triangle. Barycentric weights in the produced
// packets follow the order of v.
func (r *rasterizer) triangle(v [3]windowVertex, depthOffset float32, out []FragmentPacket) []FragmentPacket {
	idx := [3]int{0, 1, 2}
	e := newEdgeFunc(v[0].pt, v[1].pt)
	area := e.eval(int64(v[2].pt.X), int64(v[2].pt.Y))
	if area == 0 {
		return out
	}
	if area < 0 {
		idx[1], idx[2] = 2, 1
		area = -area
	}
	a, b, c := v[idx[0]].pt, v[idx[1]].pt, v[idx[2]].pt
	edges := [3]edgeFunc{newEdgeFunc(b, c), newEdgeFunc(c, a), newEdgeFunc(a, b)}

	lo := fixed.Point26_6{X: min(a.X, b.X, c.X), Y: min(a.Y, b.Y, c.Y)}
	hi := fixed.Point26_6{X: max(a.X, b.X, c.X), Y: max(a.Y, b.Y, c.Y)}
	bbox := WindowRect{X: lo.X.Floor(), Y: lo.Y.Floor()}
	bbox.Width = hi.X.Ceil() - bbox.X
	bbox.Height = hi.Y.Ceil() - bbox.Y
	bbox = bbox.Intersect(r.clip)
	if bbox.Empty() {
		return out
	}

	fa := float64(area)
	n := r.numSamples
	for qy := bbox.Y &^ 1; qy < bbox.Y+bbox.Height; qy += 2 {
		for qx := bbox.X &^ 1; qx < bbox.X+bbox.Width; qx += 2 {
			var p FragmentPacket
			p.Position = [2]int{qx, qy}
			for lane := range 4 {
				px, py := qx+lane&1, qy+lane>>1

				cx := (float64(px) + 0.5) * 64
				cy := (float64(py) + 0.5) * 64
				var lin vec.Vec3
				for i := range edges {
					lin[idx[i]] = float32(edges[i].evalFloat(cx, cy) / fa)
				}
				p.Barycentric[lane] = perspective(lin, v)

				if !bbox.Contains(px, py) {
					continue
				}
				for s := range n {
					sx := int64(px)<<6 + int64(r.offsets[s].X)
					sy := int64(py)<<6 + int64(r.offsets[s].Y)
					var w [3]int64
					covered := true
					for i := range edges {
						w[i] = edges[i].eval(sx, sy)
						if !edges[i].inside(w[i]) {
							covered = false
							break
						}
					}
					if !covered {
						continue
					}
					p.Coverage |= 1 << (lane*n + s)
					var z float64
					for i := range 3 {
						z += float64(w[i]) / fa * float64(v[idx[i]].z)
					}
					p.depth[lane*n+s] = float32(z) + depthOffset
				}
			}
			if p.Coverage != 0 {
				out = append(out, p)
			}
		}
	}
	return out
}

// perspective converts window-linear weights into perspective-correct ones.
func perspective(lin vec.Vec3, v [3]windowVertex) vec.Vec3 {
	var b vec.Vec3
	var sum float32
	for i := range 3 {
		b[i] = lin[i] * v[i].invW
		sum += b[i]
	}
	if sum == 0 {
		return lin
	}
	return b.Scale(1 / sum)
}

// polygonOffset returns the depth offset of a triangle: the maximum depth
// slope times factor plus units times the smallest resolvable difference.
func polygonOffset(v [3]windowVertex, st PolygonOffsetState, depthBits int) float32 {
	if !st.Enabled {
		return 0
	}
	x1, y1, z1 := v[1].x-v[0].x, v[1].y-v[0].y, v[1].z-v[0].z
	x2, y2, z2 := v[2].x-v[0].x, v[2].y-v[0].y, v[2].z-v[0].z
	det := x1*y2 - x2*y1
	var m float32
	if det != 0 {
		dzdx := (z1*y2 - z2*y1) / det
		dzdy := (x1*z2 - x2*z1) / det
		m = max(absf(dzdx), absf(dzdy))
	}
	r := float32(math.Ldexp(1, -23))
	if depthBits > 0 && depthBits < 32 {
		r = float32(math.Ldexp(1, -depthBits))
	}
	return m*st.Factor + r*st.Units
}

// emit appends a single fully covered fragment.
func (r *rasterizer) emit(px, py int, bary vec.Vec3, depth float32, out []FragmentPacket) []FragmentPacket {
	if !r.clip.Contains(px, py) {
		return out
	}
	var p FragmentPacket
	p.Position = [2]int{px &^ 1, py &^ 1}
	lane := px&1 + 2*(py&1)
	p.Coverage = r.allSamples() << (lane * r.numSamples)
	for i := range p.Barycentric {
		p.Barycentric[i] = bary
	}
	for s := range r.numSamples {
		p.depth[lane*r.numSamples+s] = depth
	}
	return append(out, p)
}

// line rasterizes a one pixel wide aliased line. Along the major axis a
// pixel is drawn when its center lies in [start, end).
func (r *rasterizer) line(v [2]windowVertex, out []FragmentPacket) []FragmentPacket {
	dx, dy := v[1].x-v[0].x, v[1].y-v[0].y
	if dx == 0 && dy == 0 {
		return out
	}
	xMajor := absf(dx) >= absf(dy)
	major := func(w windowVertex) float32 {
		if xMajor {
			return w.x
		}
		return w.y
	}

	a, b := 0, 1
	if major(v[0]) > major(v[1]) {
		a, b = 1, 0
	}
	m0, m1 := major(v[a]), major(v[b])
	first := int(math.Ceil(float64(m0 - 0.5)))
	last := int(math.Ceil(float64(m1 - 0.5)))

	for i := first; i < last; i++ {
		t := (float32(i) + 0.5 - m0) / (m1 - m0)
		if a == 1 {
			t = 1 - t
		}
		x := v[0].x + t*dx
		y := v[0].y + t*dy
		var px, py int
		if xMajor {
			px, py = i, int(math.Floor(float64(y)))
		} else {
			px, py = int(math.Floor(float64(x))), i
		}
		z := v[0].z + t*(v[1].z-v[0].z)
		out = r.emit(px, py, lineWeights(t, v), z, out)
	}
	return out
}

func lineWeights(t float32, v [2]windowVertex) vec.Vec3 {
	a := (1 - t) * v[0].invW
	b := t * v[1].invW
	if a+b == 0 {
		return vec.Vec3{1 - t, t, 0}
	}
	return vec.Vec3{a / (a + b), b / (a + b), 0}
}

// point rasterizes a square point of the given size. A pixel is drawn when
// its center lies in [c - size/2, c + size/2) on both axes.
func (r *rasterizer) point(v windowVertex, size float32, out []FragmentPacket) []FragmentPacket {
	h := size / 2
	x0 := int(math.Ceil(float64(v.x - h - 0.5)))
	x1 := int(math.Ceil(float64(v.x + h - 0.5)))
	y0 := int(math.Ceil(float64(v.y - h - 0.5)))
	y1 := int(math.Ceil(float64(v.y + h - 0.5)))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			out = r.emit(px, py, vec.Vec3{1, 0, 0}, v.z, out)
		}
	}
	return out
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
