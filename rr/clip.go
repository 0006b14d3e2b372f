package rr

import "github.com/gogpu/glref/vec"

// guardBand scales the x/y clip planes. Geometry is only cut against the
// enlarged planes; the rasterizer scissors the rest to the viewport.
const guardBand = 16

// wEpsilon keeps clipped vertices away from the w = 0 plane.
const wEpsilon = 1e-6

// clipVertex is a vertex in clip space with its interpolated outputs.
type clipVertex struct {
	pos     vec.Vec4
	outputs []GenericVec4
}

type clipPlane func(p vec.Vec4) float32

var clipPlanes = []clipPlane{
	func(p vec.Vec4) float32 { return p[3] - wEpsilon },
	func(p vec.Vec4) float32 { return p[3] + p[2] },
	func(p vec.Vec4) float32 { return p[3] - p[2] },
	func(p vec.Vec4) float32 { return guardBand*p[3] + p[0] },
	func(p vec.Vec4) float32 { return guardBand*p[3] - p[0] },
	func(p vec.Vec4) float32 { return guardBand*p[3] + p[1] },
	func(p vec.Vec4) float32 { return guardBand*p[3] - p[1] },
}

func toClipVertex(p *VertexPacket) clipVertex {
	return clipVertex{pos: p.Position, outputs: p.Outputs}
}

// lerpVertex interpolates between a and b. Flat outputs keep a's value;
// they are read from the provoking vertex anyway.
func lerpVertex(a, b clipVertex, t float32, info []VaryingInfo) clipVertex {
	out := clipVertex{
		pos:     a.pos.Lerp(b.pos, t),
		outputs: make([]GenericVec4, len(a.outputs)),
	}
	for i := range a.outputs {
		if i < len(info) && info[i].Flat {
			out.outputs[i] = a.outputs[i]
			continue
		}
		out.outputs[i] = FromVec4(a.outputs[i].Float().Lerp(b.outputs[i].Float(), t))
	}
	return out
}

func insideAll(p vec.Vec4) bool {
	for _, plane := range clipPlanes {
		if plane(p) < 0 {
			return false
		}
	}
	return true
}

// clipPolygon cuts a convex polygon against the clip volume
// (Sutherland-Hodgman).
func clipPolygon(poly []clipVertex, info []VaryingInfo) []clipVertex {
	for _, plane := range clipPlanes {
		if len(poly) == 0 {
			return nil
		}
		var out []clipVertex
		for i := range poly {
			a := poly[i]
			b := poly[(i+1)%len(poly)]
			da, db := plane(a.pos), plane(b.pos)
			if da >= 0 {
				out = append(out, a)
			}
			if (da >= 0) != (db >= 0) {
				out = append(out, lerpVertex(a, b, da/(da-db), info))
			}
		}
		poly = out
	}
	return poly
}

// clipTriangle returns the clipped triangle as a fan of triangles.
func clipTriangle(tri Triangle, info []VaryingInfo) [][3]clipVertex {
	v := [3]clipVertex{toClipVertex(tri.V[0]), toClipVertex(tri.V[1]), toClipVertex(tri.V[2])}
	if insideAll(v[0].pos) && insideAll(v[1].pos) && insideAll(v[2].pos) {
		return [][3]clipVertex{v}
	}
	poly := clipPolygon(v[:], info)
	if len(poly) < 3 {
		return nil
	}
	out := make([][3]clipVertex, 0, len(poly)-2)
	for i := 1; i+1 < len(poly); i++ {
		out = append(out, [3]clipVertex{poly[0], poly[i], poly[i+1]})
	}
	return out
}

// clipLine returns the visible part of a line, or false when none is left.
func clipLine(l Line, info []VaryingInfo) ([2]clipVertex, bool) {
	a, b := toClipVertex(l.V[0]), toClipVertex(l.V[1])
	t0, t1 := float32(0), float32(1)
	for _, plane := range clipPlanes {
		da, db := plane(a.pos), plane(b.pos)
		switch {
		case da < 0 && db < 0:
			return [2]clipVertex{}, false
		case da < 0:
			t0 = max(t0, da/(da-db))
		case db < 0:
			t1 = min(t1, da/(da-db))
		}
	}
	if t0 > t1 {
		return [2]clipVertex{}, false
	}
	out := [2]clipVertex{a, b}
	if t0 > 0 {
		out[0] = lerpVertex(a, b, t0, info)
	}
	if t1 < 1 {
		out[1] = lerpVertex(a, b, t1, info)
	}
	return out, true
}

// pointVisible reports whether a point's center lies in the clip volume.
func pointVisible(p vec.Vec4) bool {
	w := p[3]
	if w <= 0 {
		return false
	}
	for i := range 3 {
		if p[i] < -w || p[i] > w {
			return false
		}
	}
	return true
}
