package main

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/glref"
	"github.com/gogpu/glref/imageio"
	"github.com/gogpu/glref/rr"
)

const vertexWGSL = `
struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
}

@vertex
fn vs_main(@location(0) position: vec4<f32>, @location(1) color: vec4<f32>) -> VertexOut {
    var out: VertexOut;
    out.position = position;
    out.color = color;
    return out;
}
`

const fragmentWGSL = `
@fragment
fn fs_main(@location(0) color: vec4<f32>) -> @location(0) vec4<f32> {
    return color;
}
`

// vertexColorProgram interpolates a per-vertex color.
type vertexColorProgram struct{}

func (vertexColorProgram) Declaration() glref.ProgramDeclaration {
	return glref.ProgramDeclaration{
		VertexInputs:    []rr.GenericVecType{rr.GenericVecTypeFloat, rr.GenericVecTypeFloat},
		Varyings:        []rr.VaryingInfo{{Type: rr.GenericVecTypeFloat}},
		FragmentOutputs: []rr.GenericVecType{rr.GenericVecTypeFloat},
		VertexWGSL:      vertexWGSL,
		FragmentWGSL:    fragmentWGSL,
	}
}

func (vertexColorProgram) ShadeVertices(_ *glref.Uniforms, inputs []rr.VertexAttrib, packets []*rr.VertexPacket) {
	for _, v := range packets {
		v.Position = rr.ReadVertexAttribFloat(&inputs[0], v.InstanceNdx, v.VertexNdx)
		v.Outputs[0] = rr.FromVec4(rr.ReadVertexAttribFloat(&inputs[1], v.InstanceNdx, v.VertexNdx))
	}
}

func (vertexColorProgram) ShadeFragments(_ *glref.Uniforms, packets []rr.FragmentPacket, ctx *rr.FragmentShadingContext) {
	for i := range packets {
		for lane := range 4 {
			rr.WriteFragmentOutput(ctx, i, lane, 0, rr.FromVec4(rr.ReadVarying(&packets[i], ctx, 0, lane)))
		}
	}
}

// Renderer runs scene steps against a context.
type Renderer struct {
	gl  glref.Context
	vbo uint32
}

// NewRenderer prepares gl for scene rendering: a vertex array with position
// and color attributes and the vertex color program.
func NewRenderer(gl glref.Context) (*Renderer, error) {
	prog, err := gl.CreateProgram(vertexColorProgram{})
	if err != nil {
		return nil, err
	}
	gl.UseProgram(prog)
	gl.BindVertexArray(gl.GenVertexArrays(1)[0])
	r := &Renderer{gl: gl, vbo: gl.GenBuffers(1)[0]}
	gl.BindBuffer(glref.ArrayBuffer, r.vbo)
	if e := gl.GetError(); e != glref.NoError {
		return nil, fmt.Errorf("setup: %v", e)
	}
	return r, nil
}

// Run executes the steps in order and stops at the first GL error.
func (r *Renderer) Run(steps []Step) error {
	for i := range steps {
		r.step(&steps[i])
		if e := r.gl.GetError(); e != glref.NoError {
			return fmt.Errorf("step %d (%s): %v", i, steps[i].Op, e)
		}
	}
	return nil
}

func (r *Renderer) step(st *Step) {
	gl := r.gl
	switch st.Op {
	case "clear":
		mask := glref.ColorBufferBit
		if st.Color != nil {
			gl.ClearColor(st.Color[0], st.Color[1], st.Color[2], st.Color[3])
		} else if st.Depth != nil || st.Stencil != nil {
			mask = 0
		}
		if st.Depth != nil {
			gl.ClearDepthf(*st.Depth)
			mask |= glref.DepthBufferBit
		}
		if st.Stencil != nil {
			gl.ClearStencil(*st.Stencil)
			mask |= glref.StencilBufferBit
		}
		gl.Clear(mask)
	case "scissor":
		if len(st.Rect) == 0 {
			gl.Disable(glref.ScissorTest)
			return
		}
		gl.Enable(glref.ScissorTest)
		gl.Scissor(st.Rect[0], st.Rect[1], st.Rect[2], st.Rect[3])
	case "blend":
		if st.Src == "" {
			gl.Disable(glref.Blend)
			return
		}
		gl.Enable(glref.Blend)
		gl.BlendFunc(blendFactors[st.Src], blendFactors[st.Dst])
		gl.BlendEquation(blendEquations[st.Equation])
	case "depth":
		if st.Func == "" {
			gl.Disable(glref.DepthTest)
			return
		}
		gl.Enable(glref.DepthTest)
		gl.DepthFunc(depthFuncs[st.Func])
	case "draw":
		r.draw(st)
	}
}

// vertexStride is a vec4 position followed by a vec4 color.
const vertexStride = 8 * 4

func (r *Renderer) draw(st *Step) {
	gl := r.gl
	data := make([]byte, 0, len(st.Positions)*vertexStride)
	for i, p := range st.Positions {
		pos := [4]float32{0, 0, 0, 1}
		copy(pos[:], p)
		c := st.Colors[0]
		if len(st.Colors) > 1 {
			c = st.Colors[i]
		}
		for _, v := range append(pos[:], c...) {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(v))
		}
	}
	gl.BindBuffer(glref.ArrayBuffer, r.vbo)
	gl.BufferData(glref.ArrayBuffer, len(data), data, glref.StaticDraw)
	gl.VertexAttribPointer(0, 4, glref.Float, false, vertexStride, 0)
	gl.VertexAttribPointer(1, 4, glref.Float, false, vertexStride, 16)
	gl.EnableVertexAttribArray(0)
	gl.EnableVertexAttribArray(1)
	gl.DrawArrays(primitiveModes[st.Mode], 0, len(st.Positions))
}

// Snapshot reads back the default framebuffer as a top-down image.
func (r *Renderer) Snapshot(width, height int) (*image.NRGBA, error) {
	buf := make([]byte, width*height*4)
	r.gl.ReadPixels(0, 0, width, height, glref.RGBA, glref.UnsignedByte, buf)
	if e := r.gl.GetError(); e != glref.NoError {
		return nil, fmt.Errorf("read back: %v", e)
	}
	return imageio.FromBottomUp(buf, width, height)
}

// RenderScene creates a context from the scene configuration, runs the
// scene and returns the result.
func RenderScene(backend string, s *Scene) (*image.NRGBA, error) {
	gl, err := glref.NewContext(backend, s.Context)
	if err != nil {
		return nil, err
	}
	defer gl.Destroy()

	r, err := NewRenderer(gl)
	if err != nil {
		return nil, err
	}
	if err := r.Run(s.Steps); err != nil {
		return nil, err
	}
	gl.Finish()
	return r.Snapshot(s.Context.Surface.Width, s.Context.Surface.Height)
}
