package glref

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/glref/internal/shadercache"
	"github.com/gogpu/glref/internal/texture"
	"github.com/gogpu/glref/rr"
	"github.com/gogpu/glref/vec"
)

// UniformType is the type of a declared uniform.
type UniformType uint8

const (
	UniformFloat UniformType = iota
	UniformInt
	UniformVec4
	UniformMat4
	UniformSampler1D
	UniformSampler2D
	UniformSamplerCube
	UniformSampler2DArray
	UniformSampler3D
	UniformSamplerCubeArray
)

// IsSampler reports whether the uniform names a texture unit.
func (t UniformType) IsSampler() bool { return t >= UniformSampler1D }

var samplerKinds = map[UniformType]textureKind{
	UniformSampler1D:        kind1D,
	UniformSampler2D:        kind2D,
	UniformSamplerCube:      kindCube,
	UniformSampler2DArray:   kind2DArray,
	UniformSampler3D:        kind3D,
	UniformSamplerCubeArray: kindCubeArray,
}

// UniformDecl declares one uniform. Its location is its index in
// ProgramDeclaration.Uniforms.
type UniformDecl struct {
	Name string
	Type UniformType
}

// ProgramDeclaration is the GL-visible interface of a ShaderProgram.
// Attribute i of the vertex array feeds VertexInputs[i]; fragment output i
// is written to draw buffer i.
type ProgramDeclaration struct {
	VertexInputs    []rr.GenericVecType
	Varyings        []rr.VaryingInfo
	FragmentOutputs []rr.GenericVecType
	Uniforms        []UniformDecl
	WritesDepth     bool

	// VertexWGSL and FragmentWGSL are the sources a driver backend would
	// run. When set they must compile.
	VertexWGSL   string
	FragmentWGSL string
}

// ShaderProgram is a user-supplied program: Go shading functions plus the
// declaration that describes their interface to the context.
type ShaderProgram interface {
	Declaration() ProgramDeclaration
	ShadeVertices(u *Uniforms, inputs []rr.VertexAttrib, packets []*rr.VertexPacket)
	ShadeFragments(u *Uniforms, packets []rr.FragmentPacket, ctx *rr.FragmentShadingContext)
}

type uniformValue struct {
	f [16]float32
	i int32
}

// Uniforms holds the uniform values of a program and, during a draw, the
// textures its samplers read.
type Uniforms struct {
	decls    []UniformDecl
	values   []uniformValue
	samplers []UniformSampler
}

func newUniforms(decls []UniformDecl) *Uniforms {
	return &Uniforms{
		decls:    decls,
		values:   make([]uniformValue, len(decls)),
		samplers: make([]UniformSampler, len(decls)),
	}
}

// Location returns the location of the named uniform, or -1.
func (u *Uniforms) Location(name string) int {
	for i, d := range u.decls {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// Float returns a float uniform.
func (u *Uniforms) Float(loc int) float32 { return u.values[loc].f[0] }

// Int returns an int uniform, or the texture unit of a sampler.
func (u *Uniforms) Int(loc int) int32 { return u.values[loc].i }

// Vec4 returns a vec4 uniform.
func (u *Uniforms) Vec4(loc int) vec.Vec4 {
	f := &u.values[loc].f
	return vec.V4(f[0], f[1], f[2], f[3])
}

// Mat4 returns a column-major mat4 uniform.
func (u *Uniforms) Mat4(loc int) vec.Mat4 { return vec.Mat4(u.values[loc].f) }

// Sampler returns the texture a sampler uniform reads during the current
// draw.
func (u *Uniforms) Sampler(loc int) UniformSampler { return u.samplers[loc] }

// UniformSampler samples the texture bound to a sampler uniform's unit. The
// zero value, and any incomplete texture, returns (0, 0, 0, 1).
type UniformSampler struct {
	tex *texture.Texture
}

var incompleteColor = vec.V4(0, 0, 0, 1)

// Sample samples at an explicit level of detail.
func (s UniformSampler) Sample(coord vec.Vec4, lod float32) vec.Vec4 {
	if s.tex == nil {
		return incompleteColor
	}
	return s.tex.Sample(coord, lod)
}

// Sample4 samples a fragment quad with the LOD taken from the quad's
// coordinate derivatives.
func (s UniformSampler) Sample4(out *[4]vec.Vec4, coords *[4]vec.Vec4, lodBias float32) {
	if s.tex == nil {
		*out = [4]vec.Vec4{incompleteColor, incompleteColor, incompleteColor, incompleteColor}
		return
	}
	s.tex.Sample4(out, coords, lodBias)
}

// SampleCompare4 is the depth comparison form of Sample4.
func (s UniformSampler) SampleCompare4(out *[4]float32, coords *[4]vec.Vec4, refs *[4]float32, lodBias float32) {
	if s.tex == nil {
		*out = [4]float32{}
		return
	}
	s.tex.SampleCompare4(out, coords, refs, lodBias)
}

// programObject is a linked program.
type programObject struct {
	object
	prog     ShaderProgram
	decl     ProgramDeclaration
	uniforms *Uniforms
	exec     rr.Program
	spirv    [2][]uint32
}

func (p *programObject) free() { p.prog = nil }

type vertexStage struct{ p *programObject }

func (s vertexStage) ShadeVertices(inputs []rr.VertexAttrib, packets []*rr.VertexPacket) {
	s.p.prog.ShadeVertices(s.p.uniforms, inputs, packets)
}

type fragmentStage struct{ p *programObject }

func (s fragmentStage) ShadeFragments(packets []rr.FragmentPacket, ctx *rr.FragmentShadingContext) {
	s.p.prog.ShadeFragments(s.p.uniforms, packets, ctx)
}

// shaders caches WGSL compile results across contexts.
var shaders = shadercache.New(256, compileWGSL)

// compileWGSL compiles WGSL to SPIR-V words.
func compileWGSL(src string) ([]uint32, error) {
	b, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words, nil
}

// CreateProgram links p and returns its name. A declaration the rasterizer
// cannot run, or WGSL that does not compile, is returned as an error and
// creates nothing.
func (c *ReferenceContext) CreateProgram(p ShaderProgram) (uint32, error) {
	c.enter("CreateProgram")
	if p == nil {
		return 0, fmt.Errorf("%w: nil program", ErrInvalidProgram)
	}
	decl := p.Declaration()
	if len(decl.VertexInputs) > c.cfg.Limits.MaxVertexAttribs {
		return 0, fmt.Errorf("%w: %d vertex inputs, limit %d", ErrInvalidProgram, len(decl.VertexInputs), c.cfg.Limits.MaxVertexAttribs)
	}
	if len(decl.FragmentOutputs) > c.cfg.Limits.MaxDrawBuffers {
		return 0, fmt.Errorf("%w: %d fragment outputs, limit %d", ErrInvalidProgram, len(decl.FragmentOutputs), c.cfg.Limits.MaxDrawBuffers)
	}
	seen := make(map[string]bool, len(decl.Uniforms))
	for _, u := range decl.Uniforms {
		if u.Name == "" || seen[u.Name] || u.Type > UniformSamplerCubeArray {
			return 0, fmt.Errorf("%w: bad uniform %q", ErrInvalidProgram, u.Name)
		}
		seen[u.Name] = true
	}

	obj := &programObject{prog: p, decl: decl, uniforms: newUniforms(decl.Uniforms)}
	for i, src := range []string{decl.VertexWGSL, decl.FragmentWGSL} {
		if src == "" {
			continue
		}
		words, err := shaders.Compile(src)
		if err != nil {
			c.logger().Debug("glref: shader compile failed", "stage", i, "error", err)
			return 0, err
		}
		obj.spirv[i] = words
	}
	obj.exec = rr.Program{
		VertexShader:    vertexStage{obj},
		FragmentShader:  fragmentStage{obj},
		VertexInputs:    decl.VertexInputs,
		Varyings:        decl.Varyings,
		FragmentOutputs: decl.FragmentOutputs,
		WritesDepth:     decl.WritesDepth,
	}
	if err := obj.exec.Validate(); err != nil {
		return 0, errors.Join(ErrInvalidProgram, err)
	}

	obj.name = c.programs.allocName()
	c.programs.insert(obj)
	c.logger().Debug("glref: program created",
		"program", obj.name,
		"inputs", len(decl.VertexInputs),
		"varyings", len(decl.Varyings),
		"outputs", len(decl.FragmentOutputs),
		"uniforms", len(decl.Uniforms),
		"spirvWords", len(obj.spirv[0])+len(obj.spirv[1]))
	return obj.name, nil
}

// DeleteProgram deletes a program. A current program stays usable until it
// is replaced.
func (c *ReferenceContext) DeleteProgram(name uint32) {
	c.enter("DeleteProgram")
	if name == 0 {
		return
	}
	if _, ok := c.programs.find(name); !ok {
		c.setError(InvalidValue)
		return
	}
	c.programs.remove(name)
}

// IsProgram reports whether name is a live program.
func (c *ReferenceContext) IsProgram(name uint32) bool {
	c.enter("IsProgram")
	_, ok := c.programs.find(name)
	return ok
}

// UseProgram makes a program current. Zero selects no program, which makes
// draw calls no-ops.
func (c *ReferenceContext) UseProgram(name uint32) {
	c.enter("UseProgram")
	if name == 0 {
		c.useProgram(nil)
		return
	}
	p, ok := c.programs.find(name)
	if !ok {
		c.setError(InvalidValue)
		return
	}
	c.useProgram(p)
}

func (c *ReferenceContext) useProgram(p *programObject) {
	rebind(c.programs, &c.program, p)
}

// GetUniformLocation returns the location of a uniform, or -1.
func (c *ReferenceContext) GetUniformLocation(program uint32, name string) int {
	c.enter("GetUniformLocation")
	p, ok := c.programs.find(program)
	if !ok {
		c.setError(InvalidValue)
		return -1
	}
	return p.uniforms.Location(name)
}

// uniform returns the value slot of loc in the current program if its type
// is one of types. Location -1 is silently ignored.
func (c *ReferenceContext) uniform(loc int, types ...UniformType) *uniformValue {
	if c.program == nil {
		c.setError(InvalidOperation)
		return nil
	}
	if loc == -1 {
		return nil
	}
	u := c.program.uniforms
	if loc < 0 || loc >= len(u.decls) {
		c.setError(InvalidOperation)
		return nil
	}
	for _, t := range types {
		if u.decls[loc].Type == t {
			return &u.values[loc]
		}
	}
	c.setError(InvalidOperation)
	return nil
}

// Uniform1i sets an int uniform or the texture unit of a sampler.
func (c *ReferenceContext) Uniform1i(location int, v int32) {
	c.enter("Uniform1i")
	if c.program != nil && location >= 0 && location < len(c.program.decl.Uniforms) &&
		c.program.decl.Uniforms[location].Type.IsSampler() {
		if v < 0 || int(v) >= c.cfg.Limits.MaxTextureUnits {
			c.setError(InvalidValue)
			return
		}
		c.program.uniforms.values[location].i = v
		return
	}
	if u := c.uniform(location, UniformInt); u != nil {
		u.i = v
	}
}

// Uniform1f sets a float uniform.
func (c *ReferenceContext) Uniform1f(location int, v float32) {
	c.enter("Uniform1f")
	if u := c.uniform(location, UniformFloat); u != nil {
		u.f[0] = v
	}
}

// Uniform4f sets a vec4 uniform.
func (c *ReferenceContext) Uniform4f(location int, x, y, z, w float32) {
	c.enter("Uniform4f")
	if u := c.uniform(location, UniformVec4); u != nil {
		u.f[0], u.f[1], u.f[2], u.f[3] = x, y, z, w
	}
}

// Uniform4fv sets a vec4 uniform from a slice of four values.
func (c *ReferenceContext) Uniform4fv(location int, v []float32) {
	c.enter("Uniform4fv")
	if len(v) != 4 {
		c.setError(InvalidValue)
		return
	}
	if u := c.uniform(location, UniformVec4); u != nil {
		copy(u.f[:4], v)
	}
}

// UniformMatrix4fv sets a mat4 uniform from 16 column-major values, or
// row-major values when transpose is set.
func (c *ReferenceContext) UniformMatrix4fv(location int, transpose bool, v []float32) {
	c.enter("UniformMatrix4fv")
	if len(v) != 16 {
		c.setError(InvalidValue)
		return
	}
	u := c.uniform(location, UniformMat4)
	if u == nil {
		return
	}
	var m vec.Mat4
	copy(m[:], v)
	if transpose {
		m = m.Transpose()
	}
	u.f = m
}
