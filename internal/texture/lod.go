package texture

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/vec"
)

// Lanes of a 2x2 quad: lane = x + 2*y.
const (
	laneOrigin = 0
	laneRight  = 1
	laneUp     = 2
)

// ComputeLod returns log2 of the scale factor rho from texel-space
// derivatives: rho = max(|d/dx|, |d/dy|).
func ComputeLod(dudx, dvdx, dwdx, dudy, dvdy, dwdy float32) float32 {
	px := math.Sqrt(float64(dudx*dudx + dvdx*dvdx + dwdx*dwdx))
	py := math.Sqrt(float64(dudy*dudy + dvdy*dvdy + dwdy*dwdy))
	return float32(math.Log2(max(px, py)))
}

// QuadLod computes the level of detail for a 2x2 quad of coordinates from
// the differences between neighboring lanes, scaled by the base level size.
// Textures without a base level report the bias alone.
func (t *Texture) QuadLod(coords *[4]vec.Vec4, bias float32) float32 {
	base := t.effectiveBase()
	if base < 0 || base >= MaxLevels || !t.HasLevel(base) {
		return bias
	}
	size := t.LevelSize(base)
	w, h, d := float32(size.Width), float32(size.Height), float32(size.DepthOrArrayLayers)

	var tc [4]vec.Vec3
	switch t.kind {
	case gputypes.TextureViewDimension1D:
		for i, c := range coords {
			tc[i] = vec.Vec3{c[0] * w, 0, 0}
		}
	case gputypes.TextureViewDimension2D, gputypes.TextureViewDimension2DArray:
		for i, c := range coords {
			tc[i] = vec.Vec3{c[0] * w, c[1] * h, 0}
		}
	case gputypes.TextureViewDimension3D:
		for i, c := range coords {
			tc[i] = vec.Vec3{c[0] * w, c[1] * h, c[2] * d}
		}
	default:
		// Cube maps: project every lane onto the face selected by the origin lane.
		face := SelectCubeFace(coords[laneOrigin].XYZ())
		for i, c := range coords {
			u, v := projectToFace(face, c.XYZ())
			tc[i] = vec.Vec3{(u + 1) / 2 * w, (v + 1) / 2 * w, 0}
		}
	}

	dx := tc[laneRight].Sub(tc[laneOrigin])
	dy := tc[laneUp].Sub(tc[laneOrigin])
	return ComputeLod(dx[0], dx[1], dx[2], dy[0], dy[1], dy[2]) + bias
}
