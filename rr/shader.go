package rr

import (
	"errors"
	"fmt"

	"github.com/gogpu/glref/vec"
)

// MaxSamples is the largest supported sample count per pixel.
const MaxSamples = 16

// VertexPacket is one vertex as seen by the vertex stage.
type VertexPacket struct {
	InstanceNdx int
	VertexNdx   int

	// Written by the shader.
	Position  vec.Vec4 // clip space
	PointSize float32
	Outputs   []GenericVec4
}

// FragmentPacket is a 2x2 quad of fragments. Lane i covers pixel
// (Position.x + i&1, Position.y + i>>1).
type FragmentPacket struct {
	Position [2]int

	// Coverage has bit lane*numSamples+sample set for every covered sample.
	// A shader discards a fragment by clearing its bits.
	Coverage uint64

	// Barycentric holds perspective-correct weights of the primitive's
	// vertices at each lane's pixel center. Lanes without coverage still carry
	// extrapolated weights so quad derivatives are defined.
	Barycentric [4]vec.Vec3

	// Per-sample window depth, indexed lane*numSamples+sample.
	depth [4 * MaxSamples]float32
}

// LaneCovered reports whether any sample of the lane is covered.
func (p *FragmentPacket) LaneCovered(lane, numSamples int) bool {
	m := uint64(1)<<numSamples - 1
	return p.Coverage>>(lane*numSamples)&m != 0
}

// Discard removes all samples of a lane from the packet.
func (p *FragmentPacket) Discard(lane, numSamples int) {
	m := uint64(1)<<numSamples - 1
	p.Coverage &^= m << (lane * numSamples)
}

// VertexShader computes clip-space positions and outputs. It must be a pure
// function of the inputs and the packet's indices.
type VertexShader interface {
	ShadeVertices(inputs []VertexAttrib, packets []*VertexPacket)
}

// FragmentShader computes outputs for every covered lane of every packet.
type FragmentShader interface {
	ShadeFragments(packets []FragmentPacket, ctx *FragmentShadingContext)
}

// VaryingInfo describes one vertex output / fragment input.
type VaryingInfo struct {
	Type GenericVecType
	Flat bool
}

// Program is a user-supplied pair of shading stages with their interface.
type Program struct {
	VertexShader   VertexShader
	FragmentShader FragmentShader

	VertexInputs    []GenericVecType
	Varyings        []VaryingInfo
	FragmentOutputs []GenericVecType

	// WritesDepth is set when the fragment stage overrides window depth.
	WritesDepth bool
}

// ErrInvalidProgram reports a program whose interface cannot be used.
var ErrInvalidProgram = errors.New("rr: invalid program")

// Validate checks the program interface.
func (p *Program) Validate() error {
	if p.VertexShader == nil || p.FragmentShader == nil {
		return fmt.Errorf("%w: missing shader stage", ErrInvalidProgram)
	}
	for i, v := range p.Varyings {
		if v.Type != GenericVecTypeFloat && !v.Flat {
			return fmt.Errorf("%w: integer varying %d must be flat", ErrInvalidProgram, i)
		}
	}
	return nil
}

// FragmentShadingContext gives the fragment stage access to the current
// primitive's varyings and collects its outputs.
type FragmentShadingContext struct {
	varyings [3][]GenericVec4
	flat     []GenericVec4
	info     []VaryingInfo

	numSamples int
	numOutputs int
	outputs    []GenericVec4
	depths     []float32
}

// NumSamples returns the sample count of the render target.
func (ctx *FragmentShadingContext) NumSamples() int { return ctx.numSamples }

// reset sizes the output storage for packets. Outputs start zeroed and each
// lane's depth starts at its rasterized depth at sample 0.
func (ctx *FragmentShadingContext) reset(packets []FragmentPacket) {
	n := len(packets) * 4
	if cap(ctx.outputs) < n*ctx.numOutputs {
		ctx.outputs = make([]GenericVec4, n*ctx.numOutputs)
	}
	ctx.outputs = ctx.outputs[:n*ctx.numOutputs]
	clear(ctx.outputs)
	if cap(ctx.depths) < n {
		ctx.depths = make([]float32, n)
	}
	ctx.depths = ctx.depths[:n]
	for pi := range packets {
		for lane := range 4 {
			ctx.depths[pi*4+lane] = packets[pi].depth[lane*ctx.numSamples]
		}
	}
}

func (ctx *FragmentShadingContext) output(packetNdx, lane, outputNdx int) GenericVec4 {
	return ctx.outputs[(packetNdx*4+lane)*ctx.numOutputs+outputNdx]
}

// ReadTriangleVarying interpolates varying loc at a lane of the packet.
// Flat varyings return the provoking vertex value.
func ReadTriangleVarying(packet *FragmentPacket, ctx *FragmentShadingContext, loc, lane int) GenericVec4 {
	if ctx.info[loc].Flat {
		return ctx.flat[loc]
	}
	b := packet.Barycentric[lane]
	var out vec.Vec4
	for v := range 3 {
		if ctx.varyings[v] == nil {
			continue
		}
		out = out.Add(ctx.varyings[v][loc].Float().Scale(b[v]))
	}
	return FromVec4(out)
}

// ReadVarying interpolates a float varying. Points and lines use the same
// barycentric form with unused weights set to zero.
func ReadVarying(packet *FragmentPacket, ctx *FragmentShadingContext, loc, lane int) vec.Vec4 {
	return ReadTriangleVarying(packet, ctx, loc, lane).Float()
}

// WriteFragmentOutput stores a shader output for a lane.
func WriteFragmentOutput(ctx *FragmentShadingContext, packetNdx, lane, outputNdx int, value GenericVec4) {
	ctx.outputs[(packetNdx*4+lane)*ctx.numOutputs+outputNdx] = value
}

// WriteFragmentDepth overrides the window depth of a lane. It only has an
// effect when the program sets WritesDepth. Lanes left unwritten keep their
// rasterized depth.
func WriteFragmentDepth(ctx *FragmentShadingContext, packetNdx, lane int, depth float32) {
	ctx.depths[packetNdx*4+lane] = depth
}

// DerivateX returns the horizontal quad differences of per-lane values.
func DerivateX(v *[4]vec.Vec4) [4]vec.Vec4 {
	row0 := v[1].Sub(v[0])
	row1 := v[3].Sub(v[2])
	return [4]vec.Vec4{row0, row0, row1, row1}
}

// DerivateY returns the vertical quad differences of per-lane values.
func DerivateY(v *[4]vec.Vec4) [4]vec.Vec4 {
	left := v[2].Sub(v[0])
	right := v[3].Sub(v[1])
	return [4]vec.Vec4{left, right, left, right}
}
