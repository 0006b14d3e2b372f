package glref

import (
	"github.com/gogpu/glref/rr"
)

var primitiveModes = map[Enum]rr.PrimitiveType{
	Points:        rr.PrimitivePoints,
	Lines:         rr.PrimitiveLines,
	LineStrip:     rr.PrimitiveLineStrip,
	LineLoop:      rr.PrimitiveLineLoop,
	Triangles:     rr.PrimitiveTriangles,
	TriangleStrip: rr.PrimitiveTriangleStrip,
	TriangleFan:   rr.PrimitiveTriangleFan,
}

var indexTypes = map[Enum]rr.IndexType{
	UnsignedByte:  rr.IndexUint8,
	UnsignedShort: rr.IndexUint16,
	UnsignedInt:   rr.IndexUint32,
}

// fixedRestartIndex is the restart index of PRIMITIVE_RESTART_FIXED_INDEX.
var fixedRestartIndex = map[rr.IndexType]uint32{
	rr.IndexUint8:  0xFF,
	rr.IndexUint16: 0xFFFF,
	rr.IndexUint32: 0xFFFFFFFF,
}

// DrawArrays draws count vertices starting at first.
func (c *ReferenceContext) DrawArrays(mode Enum, first, count int) {
	c.enter("DrawArrays")
	c.drawArrays(mode, first, count, 1)
}

// DrawArraysInstanced draws instances copies of a vertex range.
func (c *ReferenceContext) DrawArraysInstanced(mode Enum, first, count, instances int) {
	c.enter("DrawArraysInstanced")
	c.drawArrays(mode, first, count, instances)
}

func (c *ReferenceContext) drawArrays(mode Enum, first, count, instances int) {
	t, ok := primitiveModes[mode]
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if first < 0 || count < 0 || instances < 0 {
		c.setError(InvalidValue)
		return
	}
	c.draw(rr.PrimitiveList{Type: t, Count: count, First: first}, rr.IndexUint32, instances)
}

// DrawElements draws count indices read from the element buffer at offset.
func (c *ReferenceContext) DrawElements(mode Enum, count int, typ Enum, offset int) {
	c.enter("DrawElements")
	c.drawElements(mode, count, typ, offset, 1)
}

// DrawElementsInstanced draws instances copies of an indexed range.
func (c *ReferenceContext) DrawElementsInstanced(mode Enum, count int, typ Enum, offset, instances int) {
	c.enter("DrawElementsInstanced")
	c.drawElements(mode, count, typ, offset, instances)
}

// DrawRangeElements is DrawElements with a hint of the index range. The
// range is validated and otherwise ignored.
func (c *ReferenceContext) DrawRangeElements(mode Enum, start, end uint32, count int, typ Enum, offset int) {
	c.enter("DrawRangeElements")
	if end < start {
		c.setError(InvalidValue)
		return
	}
	c.drawElements(mode, count, typ, offset, 1)
}

func (c *ReferenceContext) drawElements(mode Enum, count int, typ Enum, offset, instances int) {
	t, ok := primitiveModes[mode]
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	it, ok := indexTypes[typ]
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if count < 0 || offset < 0 || instances < 0 {
		c.setError(InvalidValue)
		return
	}
	eb := c.vertexArray().elementBuffer
	if eb == nil || offset%it.Size() != 0 || offset+count*it.Size() > len(eb.data) {
		c.setError(InvalidOperation)
		return
	}
	c.draw(rr.PrimitiveList{
		Type:    t,
		Count:   count,
		Indices: &rr.DrawIndices{Data: eb.data[offset:], Type: it},
	}, it, instances)
}

// draw runs a validated primitive list through the renderer.
func (c *ReferenceContext) draw(list rr.PrimitiveList, it rr.IndexType, instances int) {
	if status := framebufferStatus(c.drawFBO); status != FramebufferComplete {
		c.setError(InvalidFramebufferOperation)
		c.logger().Warn("glref: draw to incomplete framebuffer", "call", c.call, "status", status.String())
		return
	}
	if c.program == nil || c.caps[RasterizerDiscard] || list.Count == 0 || instances == 0 {
		return
	}

	var restart rr.RestartState
	switch {
	case c.caps[PrimitiveRestartFixedIndex]:
		restart = rr.RestartState{Enabled: true, Index: fixedRestartIndex[it]}
	case c.caps[PrimitiveRestart]:
		restart = rr.RestartState{Enabled: true, Index: c.restartIndex}
	}

	p := c.program
	c.bindSamplers(p)
	defer clear(p.uniforms.samplers)

	cmd := &rr.DrawCommand{
		State:         c.renderState(restart),
		Target:        c.drawTarget(),
		Program:       &p.exec,
		VertexAttribs: c.vertexInputs(len(p.decl.VertexInputs)),
		Primitives:    list,
	}
	c.logger().Debug("glref: draw",
		"call", c.call,
		"mode", list.Type.String(),
		"count", list.Count,
		"instances", instances,
		"program", p.name)
	c.renderer.DrawInstanced(cmd, instances)
}

// bindSamplers resolves every sampler uniform of p to the texture bound to
// its unit. Incomplete textures are left unbound and sample as
// (0, 0, 0, 1).
func (c *ReferenceContext) bindSamplers(p *programObject) {
	u := p.uniforms
	for loc, d := range u.decls {
		if !d.Type.IsSampler() {
			continue
		}
		unit := int(u.values[loc].i)
		t := c.unitTexture(unit, samplerKinds[d.Type])
		if t.tex == nil || !t.tex.IsComplete() {
			c.logger().Warn("glref: sampling incomplete texture",
				"call", c.call,
				"uniform", d.Name,
				"unit", unit,
				"texture", t.name)
			u.samplers[loc] = UniformSampler{}
			continue
		}
		t.tex.Sampler.Seamless = c.caps[TextureCubeMapSeamless]
		u.samplers[loc] = UniformSampler{tex: t.tex}
	}
}
