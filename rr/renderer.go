package rr

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glref/vec"
)

// MaxPointSize is the largest rasterized point size.
const MaxPointSize = 64

// DrawCommand is everything a draw call needs.
type DrawCommand struct {
	State         *RenderState
	Target        RenderTarget
	Program       *Program
	VertexAttribs []VertexAttrib
	Primitives    PrimitiveList
}

// Renderer drives vertex shading, primitive assembly, clipping,
// rasterization, fragment shading and fragment operations, one primitive
// at a time in submission order.
type Renderer struct {
	fp      FragmentProcessor
	ctx     FragmentShadingContext
	packets []FragmentPacket
}

// Draw renders one instance.
func (r *Renderer) Draw(cmd *DrawCommand) {
	r.DrawInstanced(cmd, 1)
}

// DrawInstanced renders numInstances instances of the primitive list.
func (r *Renderer) DrawInstanced(cmd *DrawCommand, numInstances int) {
	w, h := cmd.Target.Size()
	if w == 0 || h == 0 || cmd.Primitives.Count <= 0 {
		return
	}
	st := cmd.State
	clip := st.Viewport.Rect.Intersect(WindowRect{Width: w, Height: h})
	if st.FragOps.ScissorTestEnabled {
		clip = clip.Intersect(st.FragOps.ScissorRect)
	}
	if clip.Empty() {
		return
	}
	ras := newRasterizer(clip, cmd.Target.NumSamples())

	r.ctx.info = cmd.Program.Varyings
	r.ctx.numSamples = ras.numSamples
	r.ctx.numOutputs = len(cmd.Program.FragmentOutputs)

	slogger().Debug("rr: draw",
		"primitive", cmd.Primitives.Type.String(),
		"count", cmd.Primitives.Count,
		"instances", numInstances,
		"samples", ras.numSamples)

	for instance := range numInstances {
		verts := r.shadeVertices(cmd, instance)
		for _, run := range splitRestart(verts) {
			switch t := cmd.Primitives.Type; {
			case t.IsTriangle():
				for _, tri := range assembleTriangles(t, run, nil) {
					r.drawTriangle(cmd, ras, tri)
				}
			case t.IsLine():
				for _, l := range assembleLines(t, run, nil) {
					r.drawLine(cmd, ras, l)
				}
			default:
				for _, v := range run {
					r.drawPoint(cmd, ras, Point{V: v})
				}
			}
		}
	}
}

// shadeVertices runs the vertex stage over every element of the list.
// Restart indices produce nil entries.
func (r *Renderer) shadeVertices(cmd *DrawCommand, instance int) []*VertexPacket {
	list := &cmd.Primitives
	restart := cmd.State.Restart
	verts := make([]*VertexPacket, list.Count)
	shaded := make([]*VertexPacket, 0, list.Count)
	numOutputs := len(cmd.Program.Varyings)
	for i := range list.Count {
		raw, ndx := list.element(i)
		if list.Indices != nil && restart.Enabled && raw == restart.Index {
			continue
		}
		p := &VertexPacket{
			InstanceNdx: instance,
			VertexNdx:   ndx,
			PointSize:   1,
			Outputs:     make([]GenericVec4, numOutputs),
		}
		verts[i] = p
		shaded = append(shaded, p)
	}
	cmd.Program.VertexShader.ShadeVertices(cmd.VertexAttribs, shaded)
	return verts
}

func (r *Renderer) setPrimitiveVaryings(vs ...*VertexPacket) {
	for i := range r.ctx.varyings {
		r.ctx.varyings[i] = nil
	}
	for i, v := range vs {
		r.ctx.varyings[i] = v.Outputs
	}
	r.ctx.flat = vs[len(vs)-1].Outputs
}

func (r *Renderer) shadeAndProcess(cmd *DrawCommand, face Face) {
	if len(r.packets) == 0 {
		return
	}
	r.ctx.reset(r.packets)
	cmd.Program.FragmentShader.ShadeFragments(r.packets, &r.ctx)
	r.fp.Render(&cmd.Target, &cmd.State.FragOps, &FragmentBatch{
		Packets:     r.packets,
		Context:     &r.ctx,
		OutputTypes: cmd.Program.FragmentOutputs,
		WritesDepth: cmd.Program.WritesDepth,
		Face:        face,
	})
}

func (r *Renderer) depthBits(cmd *DrawCommand) int {
	if d := cmd.Target.Depth; !d.Empty() {
		return d.Format().DepthBits()
	}
	return 0
}

func (r *Renderer) drawTriangle(cmd *DrawCommand, ras *rasterizer, tri Triangle) {
	st := cmd.State
	info := cmd.Program.Varyings
	for _, sub := range clipTriangle(tri, info) {
		var wv [3]windowVertex
		for i := range sub {
			wv[i] = toWindow(sub[i].pos, &st.Viewport)
		}

		e := newEdgeFunc(wv[0].pt, wv[1].pt)
		area := e.eval(int64(wv[2].pt.X), int64(wv[2].pt.Y))
		if area == 0 {
			continue
		}
		ccw := area > 0
		front := ccw == (st.FrontFace == gputypes.FrontFaceCCW)
		if culled(st, front) {
			continue
		}
		face := FaceFront
		if !front {
			face = FaceBack
		}

		r.packets = ras.triangle(wv, polygonOffset(wv, st.PolygonOffset, r.depthBits(cmd)), r.packets[:0])

		// Clipped vertices carry interpolated outputs; flat values still
		// come from the original provoking vertex.
		r.ctx.varyings = [3][]GenericVec4{sub[0].outputs, sub[1].outputs, sub[2].outputs}
		r.ctx.flat = tri.V[2].Outputs
		r.shadeAndProcess(cmd, face)
	}
}

func culled(st *RenderState, front bool) bool {
	if st.CullFrontAndBack {
		return true
	}
	switch st.CullMode {
	case gputypes.CullModeFront:
		return front
	case gputypes.CullModeBack:
		return !front
	}
	return false
}

func (r *Renderer) drawLine(cmd *DrawCommand, ras *rasterizer, l Line) {
	cv, ok := clipLine(l, cmd.Program.Varyings)
	if !ok {
		return
	}
	wv := [2]windowVertex{
		toWindow(cv[0].pos, &cmd.State.Viewport),
		toWindow(cv[1].pos, &cmd.State.Viewport),
	}
	r.packets = ras.line(wv, r.packets[:0])
	r.ctx.varyings = [3][]GenericVec4{cv[0].outputs, cv[1].outputs, nil}
	r.ctx.flat = l.V[1].Outputs
	r.shadeAndProcess(cmd, FaceFront)
}

func (r *Renderer) drawPoint(cmd *DrawCommand, ras *rasterizer, p Point) {
	if !pointVisible(p.V.Position) {
		return
	}
	size := min(max(p.V.PointSize, 1), MaxPointSize)
	wv := toWindow(p.V.Position, &cmd.State.Viewport)
	r.packets = ras.point(wv, size, r.packets[:0])
	r.setPrimitiveVaryings(p.V)
	r.shadeAndProcess(cmd, FaceFront)
}

// ReadVertexInputs is a helper for vertex shaders: it fetches every declared
// input of a packet.
func ReadVertexInputs(inputs []VertexAttrib, types []GenericVecType, p *VertexPacket, out []GenericVec4) {
	for i := range out {
		t := GenericVecTypeFloat
		if i < len(types) {
			t = types[i]
		}
		if i >= len(inputs) {
			out[i] = FromVec4(vec.V4(0, 0, 0, 1))
			continue
		}
		out[i] = ReadVertexAttrib(&inputs[i], t, p.InstanceNdx, p.VertexNdx)
	}
}
