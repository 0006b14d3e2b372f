package texture

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/vec"
)

// GenerateMipmap fills levels base+1 through the last mipmap level from the
// base level using a box filter. Each level is half the size of the
// previous one (never below 1). Array layers and cube faces are filtered
// independently; 3D textures also halve their depth.
//
// Existing levels in the range are replaced. The base level must exist.
func (t *Texture) GenerateMipmap() {
	base := t.effectiveBase()
	q := t.effectiveMax(base)

	if t.kind == gputypes.TextureViewDimensionCube {
		for f := range t.faces {
			generateChain(&t.faces[f], base, q, false)
		}
		return
	}
	generateChain(&t.levels, base, q, t.kind == gputypes.TextureViewDimension3D)
}

func generateChain(la *LevelArray, base, last int, reduceDepth bool) {
	for level := base + 1; level <= last; level++ {
		src := la.Level(level - 1)
		w := max(1, src.Width()/2)
		h := max(1, src.Height()/2)
		d := src.Depth()
		if reduceDepth {
			d = max(1, d/2)
		}
		la.AllocLevel(level, src.Format(), w, h, d)
		downsample(la.Level(level), src, reduceDepth)
	}
}

// downsample averages 2x2 (or 2x2x2) source blocks into each destination
// texel. Odd source sizes clamp the second sample to the last texel.
func downsample(dst, src pixel.Access, reduceDepth bool) {
	srcW, srcH, srcD := src.Width(), src.Height(), src.Depth()
	for z := range dst.Depth() {
		zs := []int{z}
		if reduceDepth {
			zs = []int{min(2*z, srcD-1), min(2*z+1, srcD-1)}
		}
		for y := range dst.Height() {
			for x := range dst.Width() {
				sx0, sx1 := min(2*x, srcW-1), min(2*x+1, srcW-1)
				sy0, sy1 := min(2*y, srcH-1), min(2*y+1, srcH-1)

				var sum vec.Vec4
				n := 0
				for _, sz := range zs {
					sum = sum.Add(src.Pixel(sx0, sy0, sz))
					sum = sum.Add(src.Pixel(sx1, sy0, sz))
					sum = sum.Add(src.Pixel(sx0, sy1, sz))
					sum = sum.Add(src.Pixel(sx1, sy1, sz))
					n += 4
				}
				dst.SetPixel(sum.Scale(1/float32(n)), x, y, z)
			}
		}
	}
}
