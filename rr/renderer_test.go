package rr

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/internal/blend"
	"github.com/gogpu/glref/internal/pixel"
	"github.com/gogpu/glref/vec"
)

var (
	formatRGBA8   = pixel.Format{Order: pixel.RGBA, Type: pixel.UnormInt8}
	formatRGBA32F = pixel.Format{Order: pixel.RGBA, Type: pixel.Float}
	formatDepth   = pixel.Format{Order: pixel.D, Type: pixel.Float}
	formatStencil = pixel.Format{Order: pixel.S, Type: pixel.UnsignedInt8}
)

// testShader passes attribute 0 through as the position and attribute 1 as
// varying 0, which the fragment stage writes to output 0.
type testShader struct {
	flat      bool
	pointSize float32
}

func (s *testShader) ShadeVertices(inputs []VertexAttrib, packets []*VertexPacket) {
	for _, p := range packets {
		p.Position = ReadVertexAttribFloat(&inputs[0], p.InstanceNdx, p.VertexNdx)
		p.Outputs[0] = FromVec4(ReadVertexAttribFloat(&inputs[1], p.InstanceNdx, p.VertexNdx))
		if s.pointSize > 0 {
			p.PointSize = s.pointSize
		}
	}
}

func (s *testShader) ShadeFragments(packets []FragmentPacket, ctx *FragmentShadingContext) {
	for i := range packets {
		for lane := range 4 {
			WriteFragmentOutput(ctx, i, lane, 0, ReadTriangleVarying(&packets[i], ctx, 0, lane))
		}
	}
}

func (s *testShader) program() *Program {
	return &Program{
		VertexShader:    s,
		FragmentShader:  s,
		VertexInputs:    []GenericVecType{GenericVecTypeFloat, GenericVecTypeFloat},
		Varyings:        []VaryingInfo{{Type: GenericVecTypeFloat, Flat: s.flat}},
		FragmentOutputs: []GenericVecType{GenericVecTypeFloat},
	}
}

func floatBytes(v ...float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}

// quad returns a full-viewport triangle strip at depth z.
func quad(z float32) []byte {
	return floatBytes(
		-1, -1, z, 1,
		1, -1, z, 1,
		-1, 1, z, 1,
		1, 1, z, 1,
	)
}

func positionAttrib(data []byte) VertexAttrib {
	return VertexAttrib{Type: VertexAttribFloat, Size: 4, Pointer: data}
}

func constantAttrib(c vec.Vec4) VertexAttrib {
	return VertexAttrib{Type: VertexAttribFloat, Size: 4, Generic: FromVec4(c)}
}

type drawSetup struct {
	target  RenderTarget
	state   RenderState
	shader  *testShader
	attribs []VertexAttrib
}

func newDrawSetup(color pixel.Access) *drawSetup {
	return &drawSetup{
		target: RenderTarget{Color: []MultisampleAccess{FromSinglesample(color)}},
		state:  NewRenderState(WindowRect{Width: color.Width(), Height: color.Height()}),
		shader: &testShader{},
	}
}

func (d *drawSetup) draw(t PrimitiveType, count int, pos []byte, color VertexAttrib) {
	d.drawIndexed(PrimitiveList{Type: t, Count: count}, pos, color)
}

func (d *drawSetup) drawIndexed(list PrimitiveList, pos []byte, color VertexAttrib) {
	var r Renderer
	r.Draw(&DrawCommand{
		State:         &d.state,
		Target:        d.target,
		Program:       d.shader.program(),
		VertexAttribs: []VertexAttrib{positionAttrib(pos), color},
		Primitives:    list,
	})
}

func TestSharedEdgeCoveredOnce(t *testing.T) {
	color := pixel.Alloc(formatRGBA32F, 8, 8, 1)
	d := newDrawSetup(color)
	d.state.FragOps.BlendMode = BlendStandard
	one := blend.Component{Src: blend.One, Dst: blend.One, Op: gputypes.BlendOperationAdd}
	d.state.FragOps.Blend = blend.State{RGB: one, Alpha: one}

	d.draw(PrimitiveTriangleStrip, 4, quad(0), constantAttrib(vec.V4(0.25, 0, 0, 0)))

	for y := range 8 {
		for x := range 8 {
			if got := color.Pixel(x, y, 0)[0]; got != 0.25 {
				t.Fatalf("pixel (%d,%d) = %v, want exactly one fragment (0.25)", x, y, got)
			}
		}
	}
}

func TestScissorLeavesOutsideUntouched(t *testing.T) {
	color := pixel.Alloc(formatRGBA8, 8, 8, 1)
	depth := pixel.Alloc(formatDepth, 8, 8, 1)
	stencil := pixel.Alloc(formatStencil, 8, 8, 1)
	pixel.Clear(color, vec.V4(0, 0, 0, 1))
	pixel.ClearDepth(depth, 1)
	pixel.ClearStencil(stencil, 7)

	d := newDrawSetup(color)
	d.target.Depth = FromSinglesample(depth)
	d.target.Stencil = FromSinglesample(stencil)
	ops := &d.state.FragOps
	ops.ScissorTestEnabled = true
	ops.ScissorRect = WindowRect{X: 2, Y: 2, Width: 4, Height: 4}
	ops.DepthTestEnabled = true
	ops.DepthFunc = gputypes.CompareFunctionAlways
	ops.StencilTestEnabled = true
	for f := range ops.Stencil {
		ops.Stencil[f].PassOp = gputypes.StencilOperationReplace
		ops.Stencil[f].Ref = 1
	}

	d.draw(PrimitiveTriangleStrip, 4, quad(-1), constantAttrib(vec.V4(1, 1, 1, 1)))

	for y := range 8 {
		for x := range 8 {
			inside := ops.ScissorRect.Contains(x, y)
			wantColor, wantDepth, wantStencil := vec.V4(0, 0, 0, 1), float32(1), int32(7)
			if inside {
				wantColor, wantDepth, wantStencil = vec.V4(1, 1, 1, 1), 0, 1
			}
			if got := color.Pixel(x, y, 0); got != wantColor {
				t.Errorf("color (%d,%d) = %v, want %v", x, y, got, wantColor)
			}
			if got := depth.PixDepth(x, y, 0); got != wantDepth {
				t.Errorf("depth (%d,%d) = %v, want %v", x, y, got, wantDepth)
			}
			if got := stencil.PixStencil(x, y, 0); got != wantStencil {
				t.Errorf("stencil (%d,%d) = %v, want %v", x, y, got, wantStencil)
			}
		}
	}
}

func TestStencilPipelineOps(t *testing.T) {
	tests := []struct {
		name        string
		stencilFunc gputypes.CompareFunction
		depthFunc   gputypes.CompareFunction
		initial     int32
		want        int32
	}{
		// Stencil test fails: FailOp (Zero).
		{"stencil fail", gputypes.CompareFunctionNever, gputypes.CompareFunctionAlways, 255, 0},
		// Depth test fails: DepthFailOp (IncrementWrap).
		{"depth fail wraps", gputypes.CompareFunctionAlways, gputypes.CompareFunctionLess, 255, 0},
		// Both pass: PassOp (DecrementWrap).
		{"pass wraps", gputypes.CompareFunctionAlways, gputypes.CompareFunctionAlways, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := pixel.Alloc(formatRGBA8, 4, 4, 1)
			depth := pixel.Alloc(formatDepth, 4, 4, 1)
			stencil := pixel.Alloc(formatStencil, 4, 4, 1)
			pixel.ClearDepth(depth, 0.5)
			pixel.ClearStencil(stencil, tt.initial)

			d := newDrawSetup(color)
			d.target.Depth = FromSinglesample(depth)
			d.target.Stencil = FromSinglesample(stencil)
			ops := &d.state.FragOps
			ops.DepthTestEnabled = true
			ops.DepthFunc = tt.depthFunc
			ops.StencilTestEnabled = true
			for f := range ops.Stencil {
				ops.Stencil[f].Compare = tt.stencilFunc
				ops.Stencil[f].FailOp = gputypes.StencilOperationZero
				ops.Stencil[f].DepthFailOp = gputypes.StencilOperationIncrementWrap
				ops.Stencil[f].PassOp = gputypes.StencilOperationDecrementWrap
			}

			// z = 0 maps to window depth 0.5, which is not less than 0.5.
			d.draw(PrimitiveTriangleStrip, 4, quad(0), constantAttrib(vec.V4(1, 0, 0, 1)))

			if got := stencil.PixStencil(1, 1, 0); got != tt.want {
				t.Errorf("stencil = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStencilOpTruthTable(t *testing.T) {
	const maxv = 255
	const ref = 0x5a
	tests := []struct {
		op   gputypes.StencilOperation
		in   int32
		want int32
	}{
		{gputypes.StencilOperationKeep, 17, 17},
		{gputypes.StencilOperationZero, 17, 0},
		{gputypes.StencilOperationReplace, 17, ref},
		{gputypes.StencilOperationIncrementClamp, 17, 18},
		{gputypes.StencilOperationIncrementClamp, 255, 255},
		{gputypes.StencilOperationDecrementClamp, 17, 16},
		{gputypes.StencilOperationDecrementClamp, 0, 0},
		{gputypes.StencilOperationInvert, 0x0f, 0xf0},
		{gputypes.StencilOperationIncrementWrap, 255, 0},
		{gputypes.StencilOperationIncrementWrap, 17, 18},
		{gputypes.StencilOperationDecrementWrap, 0, 255},
		{gputypes.StencilOperationDecrementWrap, 17, 16},
	}
	for _, tt := range tests {
		if got := StencilOp(tt.op, tt.in, ref, maxv); got != tt.want {
			t.Errorf("StencilOp(%v, %d) = %d, want %d", tt.op, tt.in, got, tt.want)
		}
	}
}

func TestStencilWriteMask(t *testing.T) {
	color := pixel.Alloc(formatRGBA8, 2, 2, 1)
	stencil := pixel.Alloc(formatStencil, 2, 2, 1)
	pixel.ClearStencil(stencil, 0xf0)

	d := newDrawSetup(color)
	d.target.Stencil = FromSinglesample(stencil)
	ops := &d.state.FragOps
	ops.StencilTestEnabled = true
	for f := range ops.Stencil {
		ops.Stencil[f].PassOp = gputypes.StencilOperationReplace
		ops.Stencil[f].Ref = 0xff
		ops.Stencil[f].WriteMask = 0x0c
	}
	d.draw(PrimitiveTriangleStrip, 4, quad(0), constantAttrib(vec.V4(1, 1, 1, 1)))

	if got := stencil.PixStencil(0, 0, 0); got != 0xfc {
		t.Errorf("stencil = %#x, want 0xfc", got)
	}
}

func TestDepthTestLess(t *testing.T) {
	color := pixel.Alloc(formatRGBA8, 4, 4, 1)
	depth := pixel.Alloc(formatDepth, 4, 4, 1)
	pixel.ClearDepth(depth, 1)

	d := newDrawSetup(color)
	d.target.Depth = FromSinglesample(depth)
	d.state.FragOps.DepthTestEnabled = true

	red, green, blue := vec.V4(1, 0, 0, 1), vec.V4(0, 1, 0, 1), vec.V4(0, 0, 1, 1)
	d.draw(PrimitiveTriangleStrip, 4, quad(0), constantAttrib(red))
	d.draw(PrimitiveTriangleStrip, 4, quad(-0.5), constantAttrib(green))
	d.draw(PrimitiveTriangleStrip, 4, quad(0.5), constantAttrib(blue))

	if got := color.Pixel(2, 2, 0); got != green {
		t.Errorf("color = %v, want %v", got, green)
	}
	if got := depth.PixDepth(2, 2, 0); got != 0.25 {
		t.Errorf("depth = %v, want 0.25", got)
	}
}

// evenColumnDepth writes depth 0 for fragments in even columns and leaves
// odd columns at their rasterized depth.
type evenColumnDepth struct{ testShader }

func (s *evenColumnDepth) ShadeFragments(packets []FragmentPacket, ctx *FragmentShadingContext) {
	s.testShader.ShadeFragments(packets, ctx)
	for i := range packets {
		for lane := range 4 {
			if (packets[i].Position[0]+lane&1)%2 == 0 {
				WriteFragmentDepth(ctx, i, lane, 0)
			}
		}
	}
}

func TestUnwrittenFragmentDepth(t *testing.T) {
	color := pixel.Alloc(formatRGBA8, 4, 4, 1)
	depth := pixel.Alloc(formatDepth, 4, 4, 1)
	pixel.ClearDepth(depth, 1)

	d := newDrawSetup(color)
	d.target.Depth = FromSinglesample(depth)
	d.state.FragOps.DepthTestEnabled = true

	s := &evenColumnDepth{}
	prog := s.program()
	prog.FragmentShader = s
	prog.WritesDepth = true
	for range 2 {
		var r Renderer
		r.Draw(&DrawCommand{
			State:         &d.state,
			Target:        d.target,
			Program:       prog,
			VertexAttribs: []VertexAttrib{positionAttrib(quad(0.5)), constantAttrib(vec.V4(1, 0, 0, 1))},
			Primitives:    PrimitiveList{Type: PrimitiveTriangleStrip, Count: 4},
		})
	}

	for y := range 4 {
		for x := range 4 {
			want := float32(0.75)
			if x%2 == 0 {
				want = 0
			}
			if got := depth.PixDepth(x, y, 0); got != want {
				t.Fatalf("depth (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestColorMask(t *testing.T) {
	color := pixel.Alloc(formatRGBA8, 2, 2, 1)
	pixel.Clear(color, vec.V4(0, 0, 1, 0))
	d := newDrawSetup(color)
	d.state.FragOps.ColorMask = gputypes.ColorWriteMaskRed | gputypes.ColorWriteMaskAlpha

	d.draw(PrimitiveTriangleStrip, 4, quad(0), constantAttrib(vec.V4(1, 1, 0, 1)))

	if got, want := color.Pixel(0, 0, 0), vec.V4(1, 0, 1, 1); got != want {
		t.Errorf("color = %v, want %v", got, want)
	}
}

func TestFaceCulling(t *testing.T) {
	tests := []struct {
		name  string
		cull  gputypes.CullMode
		front gputypes.FrontFace
		drawn bool
	}{
		{"no culling", gputypes.CullModeNone, gputypes.FrontFaceCCW, true},
		{"cull back keeps ccw", gputypes.CullModeBack, gputypes.FrontFaceCCW, true},
		{"cull front drops ccw", gputypes.CullModeFront, gputypes.FrontFaceCCW, false},
		{"cw front face", gputypes.CullModeBack, gputypes.FrontFaceCW, false},
	}
	// Counter-clockwise in window space.
	tri := floatBytes(-1, -1, 0, 1, 1, -1, 0, 1, -1, 1, 0, 1)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := pixel.Alloc(formatRGBA8, 4, 4, 1)
			d := newDrawSetup(color)
			d.state.CullMode = tt.cull
			d.state.FrontFace = tt.front
			d.draw(PrimitiveTriangles, 3, tri, constantAttrib(vec.V4(1, 1, 1, 1)))

			got := color.Pixel(0, 0, 0)[0] == 1
			if got != tt.drawn {
				t.Errorf("drawn = %v, want %v", got, tt.drawn)
			}
		})
	}
}

func TestFlatAndSmoothVaryings(t *testing.T) {
	pos := floatBytes(-1, -1, 0, 1, 1, -1, 0, 1, -1, 1, 0, 1)
	colors := floatBytes(1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1)
	colorAttrib := VertexAttrib{Type: VertexAttribFloat, Size: 4, Pointer: colors}

	t.Run("flat uses provoking vertex", func(t *testing.T) {
		color := pixel.Alloc(formatRGBA32F, 8, 8, 1)
		d := newDrawSetup(color)
		d.shader.flat = true
		d.draw(PrimitiveTriangles, 3, pos, colorAttrib)
		if got, want := color.Pixel(1, 1, 0), vec.V4(0, 0, 1, 1); got != want {
			t.Errorf("color = %v, want %v", got, want)
		}
	})

	t.Run("smooth interpolates", func(t *testing.T) {
		color := pixel.Alloc(formatRGBA32F, 8, 8, 1)
		d := newDrawSetup(color)
		d.draw(PrimitiveTriangles, 3, pos, colorAttrib)
		// Pixel (0,0) center is (0.5, 0.5) of an 8x8 window: weights
		// 1 - 1/16 - 1/16, 1/16, 1/16.
		want := vec.V4(0.875, 0.0625, 0.0625, 1)
		if got := color.Pixel(0, 0, 0); !got.Equal(want, 1e-5) {
			t.Errorf("color = %v, want %v", got, want)
		}
	})
}

func TestClipAgainstFarPlane(t *testing.T) {
	color := pixel.Alloc(formatRGBA8, 8, 8, 1)
	d := newDrawSetup(color)
	// Depth rises from 0 on the left to 2 on the right, so only the left
	// half lies inside the view volume.
	pos := floatBytes(
		-1, -1, 0, 1,
		1, -1, 2, 1,
		-1, 1, 0, 1,
		1, 1, 2, 1,
	)
	d.draw(PrimitiveTriangleStrip, 4, pos, constantAttrib(vec.V4(1, 1, 1, 1)))

	if got := color.Pixel(1, 4, 0)[0]; got != 1 {
		t.Errorf("left pixel = %v, want drawn", got)
	}
	if got := color.Pixel(6, 4, 0)[0]; got != 0 {
		t.Errorf("right pixel = %v, want clipped", got)
	}
}

func TestLineRasterization(t *testing.T) {
	color := pixel.Alloc(formatRGBA8, 8, 8, 1)
	d := newDrawSetup(color)
	// Window y = 4.5 across the full width.
	pos := floatBytes(-1, 0.125, 0, 1, 1, 0.125, 0, 1)
	d.draw(PrimitiveLines, 2, pos, constantAttrib(vec.V4(1, 1, 1, 1)))

	for y := range 8 {
		for x := range 8 {
			want := float32(0)
			if y == 4 {
				want = 1
			}
			if got := color.Pixel(x, y, 0)[0]; got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestPointSize(t *testing.T) {
	color := pixel.Alloc(formatRGBA8, 8, 8, 1)
	d := newDrawSetup(color)
	d.shader.pointSize = 2
	d.draw(PrimitivePoints, 1, floatBytes(0, 0, 0, 1), constantAttrib(vec.V4(1, 1, 1, 1)))

	lit := 0
	for y := range 8 {
		for x := range 8 {
			if color.Pixel(x, y, 0)[0] == 1 {
				lit++
				if x < 3 || x > 4 || y < 3 || y > 4 {
					t.Errorf("unexpected pixel (%d,%d)", x, y)
				}
			}
		}
	}
	if lit != 4 {
		t.Errorf("lit = %d, want 4", lit)
	}
}

func TestPrimitiveRestart(t *testing.T) {
	color := pixel.Alloc(formatRGBA32F, 8, 8, 1)
	d := newDrawSetup(color)
	d.state.Restart = RestartState{Enabled: true, Index: 0xffff}
	d.state.FragOps.BlendMode = BlendStandard
	one := blend.Component{Src: blend.One, Dst: blend.One, Op: gputypes.BlendOperationAdd}
	d.state.FragOps.Blend = blend.State{RGB: one, Alpha: one}

	idx := make([]byte, 0, 14)
	for _, i := range []uint16{0, 1, 2, 0xffff, 2, 1, 3} {
		idx = binary.LittleEndian.AppendUint16(idx, i)
	}
	list := PrimitiveList{
		Type:    PrimitiveTriangleStrip,
		Count:   7,
		Indices: &DrawIndices{Data: idx, Type: IndexUint16},
	}
	d.drawIndexed(list, quad(0), constantAttrib(vec.V4(0.5, 0, 0, 0)))

	for _, p := range [][2]int{{0, 0}, {7, 7}, {3, 4}} {
		if got := color.Pixel(p[0], p[1], 0)[0]; got != 0.5 {
			t.Errorf("pixel %v = %v, want 0.5", p, got)
		}
	}
}

func TestAssembly(t *testing.T) {
	v := make([]*VertexPacket, 5)
	for i := range v {
		v[i] = &VertexPacket{VertexNdx: i}
	}
	ndx := func(vs ...*VertexPacket) []int {
		out := make([]int, len(vs))
		for i, p := range vs {
			out[i] = p.VertexNdx
		}
		return out
	}

	strip := assembleTriangles(PrimitiveTriangleStrip, v, nil)
	if len(strip) != 3 {
		t.Fatalf("strip has %d triangles, want 3", len(strip))
	}
	if got := ndx(strip[1].V[:]...); got[0] != 2 || got[1] != 1 || got[2] != 3 {
		t.Errorf("odd strip triangle = %v, want [2 1 3]", got)
	}

	fan := assembleTriangles(PrimitiveTriangleFan, v, nil)
	if got := ndx(fan[2].V[:]...); got[0] != 0 || got[1] != 3 || got[2] != 4 {
		t.Errorf("fan triangle = %v, want [0 3 4]", got)
	}

	loop := assembleLines(PrimitiveLineLoop, v, nil)
	if len(loop) != 5 || loop[4].V[0].VertexNdx != 4 || loop[4].V[1].VertexNdx != 0 {
		t.Errorf("line loop does not close")
	}

	runs := splitRestart([]*VertexPacket{v[0], nil, v[1], v[2], nil})
	if len(runs) != 2 || len(runs[1]) != 2 {
		t.Errorf("splitRestart = %d runs", len(runs))
	}
}

func TestMultisampleEdgeCoverage(t *testing.T) {
	ms := AllocMultisample(formatRGBA8, 4, 4, 4)
	d := &drawSetup{
		target: RenderTarget{Color: []MultisampleAccess{ms}},
		state:  NewRenderState(WindowRect{Width: 4, Height: 4}),
		shader: &testShader{},
	}
	// Window triangle (0,0) (4,0) (0,4).
	tri := floatBytes(-1, -1, 0, 1, 1, -1, 0, 1, -1, 1, 0, 1)
	d.draw(PrimitiveTriangles, 3, tri, constantAttrib(vec.V4(1, 0, 0, 1)))

	resolved := pixel.Alloc(formatRGBA8, 4, 4, 1)
	ResolveMultisample(resolved, ms)

	tests := []struct {
		x, y int
		want float32
	}{
		{0, 0, 1},    // fully inside
		{3, 3, 0},    // fully outside
		{1, 2, 0.25}, // center on the hypotenuse: one of four samples inside
	}
	for _, tt := range tests {
		got := resolved.Pixel(tt.x, tt.y, 0)[0]
		if diff := got - tt.want; diff < -1.0/255 || diff > 1.0/255 {
			t.Errorf("pixel (%d,%d) red = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestResolveAveragesSamples(t *testing.T) {
	ms := AllocMultisample(formatRGBA32F, 4, 1, 1)
	ms.SetPixel(vec.V4(1, 0, 0, 1), 0, 0, 0)
	ms.SetPixel(vec.V4(0, 1, 0, 1), 1, 0, 0)
	ms.SetPixel(vec.V4(0, 0, 1, 1), 2, 0, 0)
	ms.SetPixel(vec.V4(0, 0, 0, 1), 3, 0, 0)

	dst := pixel.Alloc(formatRGBA32F, 1, 1, 1)
	ResolveMultisample(dst, ms)
	if got, want := dst.Pixel(0, 0, 0), vec.V4(0.25, 0.25, 0.25, 1); got != want {
		t.Errorf("resolve = %v, want %v", got, want)
	}
}

func TestSamplePosition(t *testing.T) {
	if got := SamplePosition(1, 0); got != (vec.Vec2{0.5, 0.5}) {
		t.Errorf("single sample at %v", got)
	}
	want := []vec.Vec2{{0.25, 0.25}, {0.75, 0.25}, {0.25, 0.75}, {0.75, 0.75}}
	for s, w := range want {
		if got := SamplePosition(4, s); got != w {
			t.Errorf("sample %d at %v, want %v", s, got, w)
		}
	}
}
