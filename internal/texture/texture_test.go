package texture

import (
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/vec"
)

var rgba8 = pixel.Format{Order: pixel.RGBA, Type: pixel.UnormInt8}

var (
	red   = vec.V4(1, 0, 0, 1)
	green = vec.V4(0, 1, 0, 1)
	blue  = vec.V4(0, 0, 1, 1)
	white = vec.V4(1, 1, 1, 1)
)

// checkerboard returns a 2x2 texture with red, green (bottom row) and
// blue, white (top row), nearest filtering and edge clamping.
func checkerboard(t *testing.T) *Texture {
	t.Helper()
	tex := New(gputypes.TextureViewDimension2D)
	tex.Levels().AllocLevel(0, rgba8, 2, 2, 1)
	lvl := tex.Levels().Level(0)
	lvl.SetPixel(red, 0, 0, 0)
	lvl.SetPixel(green, 1, 0, 0)
	lvl.SetPixel(blue, 0, 1, 0)
	lvl.SetPixel(white, 1, 1, 0)
	tex.Sampler.MinFilter = Nearest
	tex.Sampler.MagFilter = Nearest
	tex.Sampler.WrapS = ClampToEdge
	tex.Sampler.WrapT = ClampToEdge
	return tex
}

func TestSampleNearestReturnsSourceTexel(t *testing.T) {
	tex := checkerboard(t)
	tests := []struct {
		s, t float32
		want vec.Vec4
	}{
		{0.25, 0.25, red},
		{0.75, 0.25, green},
		{0.25, 0.75, blue},
		{0.75, 0.75, white},
		{0.49, 0.49, red},
	}
	for _, tt := range tests {
		if got := tex.Sample(vec.V4(tt.s, tt.t, 0, 0), 0); got != tt.want {
			t.Errorf("Sample(%v, %v) = %v, want %v", tt.s, tt.t, got, tt.want)
		}
	}
}

func TestSampleLinearAtTexelBoundary(t *testing.T) {
	tex := checkerboard(t)
	tex.Sampler.MagFilter = Linear
	tex.Sampler.MinFilter = Linear

	got := tex.Sample(vec.V4(0.5, 0.5, 0, 0), 0)
	want := red.Add(green).Add(blue).Add(white).Scale(0.25)
	if !got.Equal(want, 1e-6) {
		t.Errorf("center = %v, want %v", got, want)
	}

	got = tex.Sample(vec.V4(0.5, 0.25, 0, 0), 0)
	want = red.Add(green).Scale(0.5)
	if !got.Equal(want, 1e-6) {
		t.Errorf("bottom edge = %v, want %v", got, want)
	}
}

func TestSample4MatchesSample(t *testing.T) {
	tex := New(gputypes.TextureViewDimension2D)
	for level, size := range []int{8, 4, 2, 1} {
		tex.Levels().AllocLevel(level, rgba8, size, size, 1)
		c := vec.V4(float32(level)/4, 0, 0, 1)
		pixel.Clear(tex.Levels().Level(level), c)
	}
	tex.Sampler.MinFilter = LinearMipmapLinear

	// Quad spanning roughly 3 texels per pixel: lod = log2(3).
	coords := [4]vec.Vec4{
		vec.V4(0.1, 0.1, 0, 0),
		vec.V4(0.1+3.0/8, 0.1, 0, 0),
		vec.V4(0.1, 0.1+3.0/8, 0, 0),
		vec.V4(0.1+3.0/8, 0.1+3.0/8, 0, 0),
	}
	var out [4]vec.Vec4
	tex.Sample4(&out, &coords, 0)

	lod := tex.QuadLod(&coords, 0)
	if math.Abs(float64(lod)-math.Log2(3)) > 1e-4 {
		t.Errorf("QuadLod() = %v, want log2(3)", lod)
	}
	for i := range out {
		if want := tex.Sample(coords[i], lod); out[i] != want {
			t.Errorf("lane %d: Sample4 = %v, Sample = %v", i, out[i], want)
		}
	}
	// Trilinear between level 1 and 2.
	if got := out[0][0]; got <= 0.25 || got >= 0.5 {
		t.Errorf("trilinear red = %v, want between levels 1 and 2", got)
	}
}

func TestIncompleteTextureSamplesBlack(t *testing.T) {
	tex := New(gputypes.TextureViewDimension2D)
	tex.Levels().AllocLevel(0, rgba8, 4, 4, 1)
	pixel.Clear(tex.Levels().Level(0), white)

	// Default min filter needs the whole chain.
	if tex.IsComplete() {
		t.Fatal("texture with only level 0 should be incomplete")
	}
	if got := tex.Sample(vec.V4(0.5, 0.5, 0, 0), 0); got != (vec.Vec4{0, 0, 0, 1}) {
		t.Errorf("Sample() = %v, want (0,0,0,1)", got)
	}

	tex.GenerateMipmap()
	if !tex.IsComplete() {
		t.Fatal("texture should be complete after GenerateMipmap")
	}
	if got := tex.Sample(vec.V4(0.5, 0.5, 0, 0), 5); !got.Equal(white, 1e-6) {
		t.Errorf("Sample() = %v, want white", got)
	}
}

func TestCompletenessRules(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Texture
		want  bool
	}{
		{"mismatched level size", func() *Texture {
			tex := New(gputypes.TextureViewDimension2D)
			tex.Levels().AllocLevel(0, rgba8, 4, 4, 1)
			tex.Levels().AllocLevel(1, rgba8, 1, 1, 1)
			tex.Levels().AllocLevel(2, rgba8, 1, 1, 1)
			return tex
		}, false},
		{"mismatched level format", func() *Texture {
			tex := New(gputypes.TextureViewDimension2D)
			tex.Levels().AllocLevel(0, rgba8, 2, 2, 1)
			tex.Levels().AllocLevel(1, pixel.Format{Order: pixel.RGB, Type: pixel.UnormInt8}, 1, 1, 1)
			return tex
		}, false},
		{"max level limits chain", func() *Texture {
			tex := New(gputypes.TextureViewDimension2D)
			tex.Levels().AllocLevel(0, rgba8, 4, 4, 1)
			tex.MaxLevel = 0
			return tex
		}, true},
		{"integer format with linear filter", func() *Texture {
			tex := New(gputypes.TextureViewDimension2D)
			tex.Levels().AllocLevel(0, pixel.Format{Order: pixel.RGBA, Type: pixel.UnsignedInt8}, 1, 1, 1)
			tex.Sampler.MinFilter = Linear
			return tex
		}, false},
		{"integer format with nearest filter", func() *Texture {
			tex := New(gputypes.TextureViewDimension2D)
			tex.Levels().AllocLevel(0, pixel.Format{Order: pixel.RGBA, Type: pixel.UnsignedInt8}, 1, 1, 1)
			tex.Sampler.MinFilter = Nearest
			tex.Sampler.MagFilter = Nearest
			return tex
		}, true},
		{"cube with non-square face", func() *Texture {
			tex := New(gputypes.TextureViewDimensionCube)
			for f := range CubeFace(numFaces) {
				tex.Face(f).AllocLevel(0, rgba8, 2, 2, 1)
			}
			tex.Face(FaceNegativeZ).AllocLevel(0, rgba8, 2, 1, 1)
			tex.Sampler.MinFilter = Nearest
			return tex
		}, false},
		{"immutable base clamp", func() *Texture {
			tex := New(gputypes.TextureViewDimension2D)
			tex.Levels().AllocLevel(0, rgba8, 2, 2, 1)
			tex.Levels().AllocLevel(1, rgba8, 1, 1, 1)
			tex.SetImmutable(2)
			tex.BaseLevel = 5
			return tex
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build().IsComplete(); got != tt.want {
				t.Errorf("IsComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapTexel(t *testing.T) {
	tests := []struct {
		mode WrapMode
		c    int
		want int
	}{
		{Repeat, -1, 3},
		{Repeat, 5, 1},
		{ClampToEdge, -3, 0},
		{ClampToEdge, 9, 3},
		{MirroredRepeat, 4, 3},
		{MirroredRepeat, 5, 2},
		{MirroredRepeat, -1, 0},
		{MirroredRepeat, -5, 3},
		{ClampToBorder, -1, borderTexel},
		{ClampToBorder, 4, borderTexel},
		{ClampToBorder, 2, 2},
	}
	for _, tt := range tests {
		if got := wrapTexel(tt.mode, tt.c, 4); got != tt.want {
			t.Errorf("wrapTexel(%d, %d, 4) = %d, want %d", tt.mode, tt.c, got, tt.want)
		}
	}
}

func TestBorderColor(t *testing.T) {
	tex := checkerboard(t)
	tex.Sampler.WrapS = ClampToBorder
	tex.Sampler.BorderColor = vec.V4(0.5, 0.5, 0.5, 0.5)
	if got := tex.Sample(vec.V4(1.5, 0.25, 0, 0), 0); got != tex.Sampler.BorderColor {
		t.Errorf("Sample() = %v, want border", got)
	}
}

func TestMipmapNearestSelection(t *testing.T) {
	tex := New(gputypes.TextureViewDimension2D)
	colors := []vec.Vec4{red, green, blue}
	for level, size := range []int{4, 2, 1} {
		tex.Levels().AllocLevel(level, rgba8, size, size, 1)
		pixel.Clear(tex.Levels().Level(level), colors[level])
	}
	tex.Sampler.MinFilter = NearestMipmapNearest
	tex.Sampler.MagFilter = Nearest

	tests := []struct {
		lod  float32
		want vec.Vec4
	}{
		{-1, red},
		{0.4, red},
		{0.5, red},
		{0.6, green},
		{1.4, green},
		{1.6, blue},
		{10, blue},
	}
	for _, tt := range tests {
		if got := tex.Sample(vec.V4(0.5, 0.5, 0, 0), tt.lod); got != tt.want {
			t.Errorf("lod %v: Sample() = %v, want %v", tt.lod, got, tt.want)
		}
	}
}

func TestRedefinedLevelHasNoStaleData(t *testing.T) {
	tex := checkerboard(t)
	tex.Levels().AllocLevel(0, rgba8, 4, 4, 1)
	for _, s := range []float32{0.1, 0.4, 0.6, 0.9} {
		if got := tex.Sample(vec.V4(s, s, 0, 0), 0); got != (vec.Vec4{}) {
			t.Fatalf("Sample(%v) = %v, want zero after redefinition", s, got)
		}
	}
}

func TestMissingLevelPanics(t *testing.T) {
	var la LevelArray
	defer func() {
		if recover() == nil {
			t.Error("Level() on a missing level should panic")
		}
	}()
	la.Level(3)
}

func TestDepthCompare(t *testing.T) {
	tex := New(gputypes.TextureViewDimension2D)
	tex.Levels().AllocLevel(0, pixel.Format{Order: pixel.D, Type: pixel.Float}, 2, 1, 1)
	tex.Levels().Level(0).SetPixDepth(0.25, 0, 0, 0)
	tex.Levels().Level(0).SetPixDepth(0.75, 1, 0, 0)
	tex.Sampler.MinFilter = Linear
	tex.Sampler.MagFilter = Linear
	tex.Sampler.WrapS = ClampToEdge
	tex.Sampler.CompareMode = CompareRefToTexture
	tex.Sampler.CompareFunc = gputypes.CompareFunctionLessEqual

	if got := tex.SampleCompare(vec.V4(0.25, 0.5, 0, 0), 0.5, 0); got != 0 {
		t.Errorf("ref 0.5 <= 0.25: got %v, want 0", got)
	}
	if got := tex.SampleCompare(vec.V4(0.75, 0.5, 0, 0), 0.5, 0); got != 1 {
		t.Errorf("ref 0.5 <= 0.75: got %v, want 1", got)
	}
	if got := tex.SampleCompare(vec.V4(0.5, 0.5, 0, 0), 0.5, 0); math.Abs(float64(got-0.5)) > 1e-6 {
		t.Errorf("filtered comparison = %v, want 0.5", got)
	}
}

func TestTexture3DTrilinear(t *testing.T) {
	tex := New(gputypes.TextureViewDimension3D)
	tex.Levels().AllocLevel(0, rgba8, 1, 1, 2)
	lvl := tex.Levels().Level(0)
	lvl.SetPixel(red, 0, 0, 0)
	lvl.SetPixel(blue, 0, 0, 1)
	tex.Sampler.MinFilter = Linear
	tex.Sampler.WrapR = ClampToEdge

	got := tex.Sample(vec.V4(0.5, 0.5, 0.5, 0), 0)
	if want := red.Lerp(blue, 0.5); !got.Equal(want, 1e-6) {
		t.Errorf("Sample() = %v, want %v", got, want)
	}
}

func TestArrayLayerSelection(t *testing.T) {
	tex := New(gputypes.TextureViewDimension2DArray)
	tex.Levels().AllocLevel(0, rgba8, 1, 1, 3)
	for layer, c := range []vec.Vec4{red, green, blue} {
		tex.Levels().Level(0).SetPixel(c, 0, 0, layer)
	}
	tex.Sampler.MinFilter = Nearest
	tex.Sampler.MagFilter = Nearest

	tests := []struct {
		layer float32
		want  vec.Vec4
	}{
		{-2, red},
		{0.49, red},
		{0.5, green},
		{1.6, blue},
		{7, blue},
	}
	for _, tt := range tests {
		if got := tex.Sample(vec.V4(0.5, 0.5, tt.layer, 0), 0); got != tt.want {
			t.Errorf("layer %v: got %v, want %v", tt.layer, got, tt.want)
		}
	}
}

func cubeWithFaceColors(t *testing.T) *Texture {
	t.Helper()
	colors := [numFaces]vec.Vec4{
		red, green, blue, white, vec.V4(1, 1, 0, 1), vec.V4(0, 1, 1, 1),
	}
	tex := New(gputypes.TextureViewDimensionCube)
	for f := range CubeFace(numFaces) {
		tex.Face(f).AllocLevel(0, rgba8, 2, 2, 1)
		pixel.Clear(tex.Face(f).Level(0), colors[f])
	}
	tex.Sampler.MinFilter = Linear
	tex.Sampler.MagFilter = Linear
	tex.Sampler.WrapS = ClampToEdge
	tex.Sampler.WrapT = ClampToEdge
	return tex
}

func TestCubeFaceSelection(t *testing.T) {
	tests := []struct {
		dir  vec.Vec3
		want CubeFace
	}{
		{vec.Vec3{1, 0.2, 0.1}, FacePositiveX},
		{vec.Vec3{-1, 0.2, 0.1}, FaceNegativeX},
		{vec.Vec3{0.1, 2, 0.1}, FacePositiveY},
		{vec.Vec3{0.1, -2, 0.1}, FaceNegativeY},
		{vec.Vec3{0.1, 0.2, 3}, FacePositiveZ},
		{vec.Vec3{0.1, 0.2, -3}, FaceNegativeZ},
	}
	for _, tt := range tests {
		if got := SelectCubeFace(tt.dir); got != tt.want {
			t.Errorf("SelectCubeFace(%v) = %d, want %d", tt.dir, got, tt.want)
		}
	}
}

func TestCubeFaceRoundTrip(t *testing.T) {
	for f := range CubeFace(numFaces) {
		d := faceToDir(f, 0.25, -0.5)
		if got := SelectCubeFace(d); got != f {
			t.Fatalf("face %d: direction %v selects %d", f, d, got)
		}
		u, v := projectToFace(f, d)
		if u != 0.25 || v != -0.5 {
			t.Errorf("face %d: projected (%v, %v), want (0.25, -0.5)", f, u, v)
		}
	}
}

func TestCubeSeamlessBlendsAcrossEdge(t *testing.T) {
	tex := cubeWithFaceColors(t)
	dir := vec.V4(1, 0, 1, 0) // edge shared by +X and +Z

	got := tex.Sample(dir, 0)
	if !got.Equal(red, 1e-6) {
		t.Errorf("non-seamless = %v, want +X color", got)
	}

	tex.Sampler.Seamless = true
	got = tex.Sample(dir, 0)
	want := red.Lerp(vec.V4(1, 1, 0, 1), 0.5)
	if !got.Equal(want, 1e-6) {
		t.Errorf("seamless = %v, want %v", got, want)
	}
}

func TestCubeSeamlessCorner(t *testing.T) {
	tex := cubeWithFaceColors(t)
	tex.Sampler.Seamless = true
	// Corner of +X, +Y and +Z.
	got := tex.Sample(vec.V4(1, 1, 1, 0), 0)
	px, py, pz := red, blue, vec.V4(1, 1, 0, 1)
	if got[3] != 1 {
		t.Errorf("alpha = %v, want 1", got[3])
	}
	for i := range 3 {
		lo := min(px[i], py[i], pz[i])
		hi := max(px[i], py[i], pz[i])
		if got[i] < lo-1e-6 || got[i] > hi+1e-6 {
			t.Errorf("component %d = %v outside [%v, %v]", i, got[i], lo, hi)
		}
	}
}

func TestGenerateMipmapBoxFilter(t *testing.T) {
	tex := checkerboard(t)
	tex.GenerateMipmap()
	lvl := tex.Levels().Level(1)
	if lvl.Width() != 1 || lvl.Height() != 1 {
		t.Fatalf("level 1 is %dx%d, want 1x1", lvl.Width(), lvl.Height())
	}
	want := red.Add(green).Add(blue).Add(white).Scale(0.25)
	if got := lvl.Pixel(0, 0, 0); !got.Equal(want, 1.0/255) {
		t.Errorf("level 1 = %v, want %v", got, want)
	}
}

func TestSwizzle(t *testing.T) {
	tex := checkerboard(t)
	tex.Sampler.Swizzle = [4]Swizzle{SwizzleAlpha, SwizzleZero, SwizzleRed, SwizzleOne}
	if got := tex.Sample(vec.V4(0.25, 0.25, 0, 0), 0); got != vec.V4(1, 0, 1, 1) {
		t.Errorf("Sample() = %v", got)
	}
}

func TestLevelArrayUpdateStopsAtGap(t *testing.T) {
	var la LevelArray
	la.AllocLevel(0, rgba8, 4, 4, 1)
	la.AllocLevel(1, rgba8, 2, 2, 1)
	la.AllocLevel(3, rgba8, 1, 1, 1)

	views := make([]pixel.Access, MaxLevels)
	if n := la.Update(views); n != 2 {
		t.Fatalf("Update() = %d, want 2", n)
	}
	if views[1].Width() != 2 {
		t.Errorf("level 1 width = %d", views[1].Width())
	}
	if n := la.Update(views[:1]); n != 1 {
		t.Errorf("Update(short) = %d, want 1", n)
	}
}
