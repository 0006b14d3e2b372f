package texture

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/vec"
)

// Kind is the texture dimensionality.
type Kind = gputypes.TextureViewDimension

// CubeFace indexes the six faces of a cube map in GL order.
type CubeFace int

const (
	FacePositiveX CubeFace = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ

	numFaces = 6
)

// Texture holds the levels and sampling state of one texture object.
// Cube maps store one LevelArray per face; every other kind keeps all
// layers or slices in a single LevelArray.
type Texture struct {
	kind   Kind
	levels LevelArray
	faces  [numFaces]LevelArray

	BaseLevel int
	MaxLevel  int

	immutable       bool
	immutableLevels int

	Sampler Sampler
}

// New returns an empty texture of the given kind with default state.
func New(kind Kind) *Texture {
	switch kind {
	case gputypes.TextureViewDimension1D, gputypes.TextureViewDimension2D,
		gputypes.TextureViewDimension2DArray, gputypes.TextureViewDimension3D,
		gputypes.TextureViewDimensionCube, gputypes.TextureViewDimensionCubeArray:
	default:
		panic(fmt.Sprintf("texture: unsupported kind %v", kind))
	}
	return &Texture{
		kind:     kind,
		MaxLevel: 1000,
		Sampler:  DefaultSampler(),
	}
}

// Kind returns the texture dimensionality.
func (t *Texture) Kind() Kind { return t.kind }

// Levels returns the level storage of a non-cube texture.
func (t *Texture) Levels() *LevelArray {
	if t.kind == gputypes.TextureViewDimensionCube {
		panic("texture: Levels on a cube map; use Face")
	}
	return &t.levels
}

// Face returns the level storage of one cube face.
func (t *Texture) Face(face CubeFace) *LevelArray {
	if t.kind != gputypes.TextureViewDimensionCube {
		panic(fmt.Sprintf("texture: Face on %v texture", t.kind))
	}
	return &t.faces[face]
}

// Immutable reports whether the storage was specified with TexStorage.
func (t *Texture) Immutable() bool { return t.immutable }

// ImmutableLevels returns the level count given to TexStorage.
func (t *Texture) ImmutableLevels() int { return t.immutableLevels }

// SetImmutable marks the texture immutable with the given level count.
func (t *Texture) SetImmutable(levels int) {
	t.immutable = true
	t.immutableLevels = levels
}

// HasLevel reports whether a level exists. For cube maps every face must
// have it.
func (t *Texture) HasLevel(level int) bool {
	if t.kind == gputypes.TextureViewDimensionCube {
		for i := range t.faces {
			if !t.faces[i].HasLevel(level) {
				return false
			}
		}
		return true
	}
	return t.levels.HasLevel(level)
}

// levelAccess returns a representative view of a level (face +X for cubes).
func (t *Texture) levelAccess(level int) pixel.Access {
	if t.kind == gputypes.TextureViewDimensionCube {
		return t.faces[FacePositiveX].Level(level)
	}
	return t.levels.Level(level)
}

// LevelSize returns the size of an allocated level. Array textures report
// their layer count as depth.
func (t *Texture) LevelSize(level int) gputypes.Extent3D {
	a := t.levelAccess(level)
	return gputypes.Extent3D{Width: uint32(a.Width()), Height: uint32(a.Height()), DepthOrArrayLayers: uint32(a.Depth())}
}

// effectiveBase returns the base level clamped as GL does for immutable textures.
func (t *Texture) effectiveBase() int {
	if t.immutable {
		return min(max(t.BaseLevel, 0), t.immutableLevels-1)
	}
	return t.BaseLevel
}

// effectiveMax returns the last level used by mipmapped sampling, given the
// base level size.
func (t *Texture) effectiveMax(base int) int {
	size := t.LevelSize(base)
	largest := int(size.Width)
	if t.kind != gputypes.TextureViewDimension1D {
		largest = max(largest, int(size.Height))
	}
	if t.kind == gputypes.TextureViewDimension3D {
		largest = max(largest, int(size.DepthOrArrayLayers))
	}
	q := base + bits.Len(uint(largest)) - 1
	q = min(q, t.MaxLevel, MaxLevels-1)
	if t.immutable {
		q = min(q, t.immutableLevels-1)
	}
	return q
}

// IsComplete reports GL texture completeness for the current sampler state.
func (t *Texture) IsComplete() bool {
	base := t.effectiveBase()
	if base < 0 || base >= MaxLevels || base > t.MaxLevel || !t.HasLevel(base) {
		return false
	}

	ref := t.levelAccess(base)
	if ref.Empty() {
		return false
	}
	format := ref.Format()

	if t.kind == gputypes.TextureViewDimensionCube && !t.cubeLevelConsistent(base, ref.Width(), format) {
		return false
	}

	usesMip := t.Sampler.MinFilter.UsesMipmaps()
	if usesMip {
		w, h, d := ref.Width(), ref.Height(), ref.Depth()
		for level := base + 1; level <= t.effectiveMax(base); level++ {
			if !t.HasLevel(level) {
				return false
			}
			a := t.levelAccess(level)
			if a.Format() != format {
				return false
			}
			want := [3]int{MipSize(w, level-base), MipSize(h, level-base), d}
			switch t.kind {
			case gputypes.TextureViewDimension1D:
				want[1] = 1
			case gputypes.TextureViewDimension3D:
				want[2] = MipSize(d, level-base)
			}
			if a.Width() != want[0] || a.Height() != want[1] || a.Depth() != want[2] {
				return false
			}
			if t.kind == gputypes.TextureViewDimensionCube && !t.cubeLevelConsistent(level, want[0], format) {
				return false
			}
		}
	}

	nearestOnly := t.Sampler.MagFilter == Nearest &&
		(t.Sampler.MinFilter == Nearest || t.Sampler.MinFilter == NearestMipmapNearest)
	if nearestOnly {
		return true
	}
	switch {
	case format.IsInteger():
		return false
	case t.stencilSampled(format):
		return false
	case format.HasDepth() && t.Sampler.CompareMode == CompareNone:
		return false
	}
	return true
}

func (t *Texture) cubeLevelConsistent(level, size int, format pixel.Format) bool {
	for i := range t.faces {
		if !t.faces[i].HasLevel(level) {
			return false
		}
		a := t.faces[i].Level(level)
		if a.Width() != size || a.Height() != size || a.Format() != format {
			return false
		}
	}
	return true
}

// Sample samples the texture at coord with the given level of detail
// (log2 of the footprint plus bias, before clamping to the sampler's LOD
// range). Coordinate layout by kind:
//
//	1D:         (s)
//	2D:         (s, t)
//	2D array:   (s, t, layer)
//	3D:         (s, t, r)
//	cube:       (x, y, z) direction
//	cube array: (x, y, z, layer)
//
// Sampling an incomplete texture returns (0, 0, 0, 1).
func (t *Texture) Sample(coord vec.Vec4, lod float32) vec.Vec4 {
	if !t.IsComplete() {
		return vec.Vec4{0, 0, 0, 1}
	}
	return t.Sampler.applySwizzle(t.sample(coord, lod, nil))
}

// SampleCompare performs a depth comparison lookup against ref and returns
// the filtered comparison result in [0, 1].
func (t *Texture) SampleCompare(coord vec.Vec4, ref, lod float32) float32 {
	if !t.IsComplete() {
		return 0
	}
	if f := t.levelAccess(t.effectiveBase()).Format(); f.Class() != pixel.ClassFloat {
		ref = min(max(ref, 0), 1)
	}
	return t.sample(coord, lod, &ref)[0]
}

// Sample4 samples a 2x2 fragment quad. The level of detail is derived from
// the coordinate differences between lanes (lane = x + 2*y) and is the same
// for all four lanes. The result equals four Sample calls at that LOD.
func (t *Texture) Sample4(out *[4]vec.Vec4, coords *[4]vec.Vec4, lodBias float32) {
	lod := t.QuadLod(coords, lodBias)
	for i := range out {
		out[i] = t.Sample(coords[i], lod)
	}
}

// SampleCompare4 is the depth comparison counterpart of Sample4.
func (t *Texture) SampleCompare4(out *[4]float32, coords *[4]vec.Vec4, refs *[4]float32, lodBias float32) {
	lod := t.QuadLod(coords, lodBias)
	for i := range out {
		out[i] = t.SampleCompare(coords[i], refs[i], lod)
	}
}

func (t *Texture) sample(coord vec.Vec4, lod float32, ref *float32) vec.Vec4 {
	s := &t.Sampler
	base := t.effectiveBase()
	q := t.effectiveMax(base)
	lod += s.LodBias
	if lod != lod {
		lod = s.MinLod
	}
	lod = min(max(lod, s.MinLod), s.MaxLod)

	// Magnification threshold.
	var c float32
	if s.MagFilter == Linear && (s.MinFilter == NearestMipmapNearest || s.MinFilter == NearestMipmapLinear) {
		c = 0.5
	}

	if lod <= c || !s.MinFilter.UsesMipmaps() {
		filter := s.MagFilter
		if lod > c {
			filter = s.MinFilter
		}
		return t.sampleLevel(base, filter, coord, ref)
	}

	levelFilter := s.MinFilter.levelFilter()
	switch s.MinFilter {
	case NearestMipmapNearest, LinearMipmapNearest:
		var d int
		if lod > 0.5 {
			d = int(ceilf(lod+0.5)) - 1
		}
		level := min(base+d, q)
		return t.sampleLevel(level, levelFilter, coord, ref)
	default:
		fl := floorf(lod)
		l0 := min(base+int(fl), q)
		l1 := min(l0+1, q)
		c0 := t.sampleLevel(l0, levelFilter, coord, ref)
		if l0 == l1 {
			return c0
		}
		c1 := t.sampleLevel(l1, levelFilter, coord, ref)
		return c0.Lerp(c1, lod-fl)
	}
}

func (t *Texture) sampleLevel(level int, filter FilterMode, coord vec.Vec4, ref *float32) vec.Vec4 {
	s := &t.Sampler
	switch t.kind {
	case gputypes.TextureViewDimension1D:
		a := t.levels.Level(level)
		return sample2D(s, a, 0, filter, coord[0], 0, ref, true)
	case gputypes.TextureViewDimension2D:
		return sample2D(s, t.levels.Level(level), 0, filter, coord[0], coord[1], ref, false)
	case gputypes.TextureViewDimension2DArray:
		a := t.levels.Level(level)
		layer := arrayLayer(coord[2], a.Depth())
		return sample2D(s, a, layer, filter, coord[0], coord[1], ref, false)
	case gputypes.TextureViewDimension3D:
		return sample3D(s, t.levels.Level(level), filter, coord[0], coord[1], coord[2], ref)
	case gputypes.TextureViewDimensionCube:
		return t.sampleCube(level, 0, filter, coord, ref)
	case gputypes.TextureViewDimensionCubeArray:
		a := t.levels.Level(level)
		layer := arrayLayer(coord[3], a.Depth()/numFaces)
		return t.sampleCube(level, layer, filter, coord, ref)
	}
	panic(fmt.Sprintf("texture: unsupported kind %v", t.kind))
}

// stencilSampled reports whether lookups read the stencil component.
func (t *Texture) stencilSampled(format pixel.Format) bool {
	return format.Order == pixel.S ||
		(format.Order == pixel.DS && t.Sampler.DepthStencilMode == SampleStencil)
}

// cubeFaceAccess returns the 2D view of one face of one cube layer.
func (t *Texture) cubeFaceAccess(level, layer int, face CubeFace) pixel.Access {
	if t.kind == gputypes.TextureViewDimensionCube {
		return t.faces[face].Level(level)
	}
	return t.levels.Level(level).Layer(layer*numFaces + int(face))
}

// arrayLayer selects the array layer for coordinate r.
func arrayLayer(r float32, layers int) int {
	return min(max(int(floorf(r+0.5)), 0), layers-1)
}
