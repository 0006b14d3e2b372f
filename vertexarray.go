package glref

import (
	"github.com/gogpu/glref/rr"
	"github.com/gogpu/glref/vec"
)

// vertexAttribArray is the array state of one vertex attribute.
type vertexAttribArray struct {
	enabled    bool
	size       int
	typ        Enum
	normalized bool
	integer    bool
	stride     int
	offset     int
	divisor    int
	buffer     *bufferObject
}

// vertexArrayObject holds the attribute arrays and the element buffer.
type vertexArrayObject struct {
	object
	bound         bool
	attribs       []vertexAttribArray
	elementBuffer *bufferObject
}

// free is a no-op: the buffers a vertex array references are released by
// the context when the array is deleted.
func (v *vertexArrayObject) free() {}

func newVertexArrayObject(name uint32, numAttribs int) *vertexArrayObject {
	v := &vertexArrayObject{
		object:  object{name: name},
		attribs: make([]vertexAttribArray, numAttribs),
	}
	for i := range v.attribs {
		v.attribs[i] = vertexAttribArray{size: 4, typ: Float}
	}
	return v
}

var attribTypes = map[Enum]rr.VertexAttribType{
	Float:                 rr.VertexAttribFloat,
	HalfFloat:             rr.VertexAttribHalfFloat,
	Fixed:                 rr.VertexAttribFixed,
	Byte:                  rr.VertexAttribByte,
	UnsignedByte:          rr.VertexAttribUnsignedByte,
	Short:                 rr.VertexAttribShort,
	UnsignedShort:         rr.VertexAttribUnsignedShort,
	Int:                   rr.VertexAttribInt,
	UnsignedInt:           rr.VertexAttribUnsignedInt,
	Int2101010Rev:         rr.VertexAttribInt2101010Rev,
	UnsignedInt2101010Rev: rr.VertexAttribUnsignedInt2101010Rev,
}

// vertexArray returns the current vertex array.
func (c *ReferenceContext) vertexArray() *vertexArrayObject {
	if c.vao != nil {
		return c.vao
	}
	return c.defaultVAO
}

// GenVertexArrays returns n unused vertex array names.
func (c *ReferenceContext) GenVertexArrays(n int) []uint32 {
	c.enter("GenVertexArrays")
	if n < 0 {
		c.setError(InvalidValue)
		return nil
	}
	names := make([]uint32, n)
	for i := range names {
		names[i] = c.vertexArrays.allocName()
		c.vertexArrays.insert(newVertexArrayObject(names[i], c.cfg.Limits.MaxVertexAttribs))
	}
	return names
}

// DeleteVertexArrays deletes vertex arrays, reverting to the default array
// if the current one is deleted.
func (c *ReferenceContext) DeleteVertexArrays(names ...uint32) {
	c.enter("DeleteVertexArrays")
	c.deleteVertexArrays(names)
}

func (c *ReferenceContext) deleteVertexArrays(names []uint32) {
	for _, name := range names {
		v, ok := c.vertexArrays.find(name)
		if !ok {
			continue
		}
		if c.vao == v {
			rebind(c.vertexArrays, &c.vao, nil)
		}
		c.deleteVertexArrayBuffers(v)
		c.vertexArrays.remove(name)
	}
}

// deleteVertexArrayBuffers releases every buffer a vertex array references.
func (c *ReferenceContext) deleteVertexArrayBuffers(v *vertexArrayObject) {
	rebind(c.buffers, &v.elementBuffer, nil)
	for i := range v.attribs {
		rebind(c.buffers, &v.attribs[i].buffer, nil)
	}
}

// IsVertexArray reports whether name is a vertex array that has been bound.
func (c *ReferenceContext) IsVertexArray(name uint32) bool {
	c.enter("IsVertexArray")
	v, ok := c.vertexArrays.find(name)
	return ok && v.bound
}

// BindVertexArray makes a vertex array current. Zero selects the default
// array.
func (c *ReferenceContext) BindVertexArray(name uint32) {
	c.enter("BindVertexArray")
	if name == 0 {
		rebind(c.vertexArrays, &c.vao, nil)
		return
	}
	v, ok := c.vertexArrays.find(name)
	if !ok {
		c.setError(InvalidOperation)
		return
	}
	v.bound = true
	rebind(c.vertexArrays, &c.vao, v)
}

// attrib returns the attribute state for index, or records InvalidValue.
func (c *ReferenceContext) attrib(index uint32) *vertexAttribArray {
	va := c.vertexArray()
	if int(index) >= len(va.attribs) {
		c.setError(InvalidValue)
		return nil
	}
	return &va.attribs[index]
}

// VertexAttribPointer sources attribute index from the bound array buffer
// with conversion to float.
func (c *ReferenceContext) VertexAttribPointer(index uint32, size int, typ Enum, normalized bool, stride, offset int) {
	c.enter("VertexAttribPointer")
	c.vertexAttribPointer(index, size, typ, normalized, false, stride, offset)
}

// VertexAttribIPointer sources attribute index from the bound array buffer
// as pure integers.
func (c *ReferenceContext) VertexAttribIPointer(index uint32, size int, typ Enum, stride, offset int) {
	c.enter("VertexAttribIPointer")
	switch typ {
	case Byte, UnsignedByte, Short, UnsignedShort, Int, UnsignedInt:
	default:
		c.setError(InvalidEnum)
		return
	}
	c.vertexAttribPointer(index, size, typ, false, true, stride, offset)
}

func (c *ReferenceContext) vertexAttribPointer(index uint32, size int, typ Enum, normalized, integer bool, stride, offset int) {
	t, ok := attribTypes[typ]
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if int(index) >= c.cfg.Limits.MaxVertexAttribs || size < 1 || size > 4 || stride < 0 || stride > 255 || offset < 0 {
		c.setError(InvalidValue)
		return
	}
	if t.IsPacked() && size != 4 || c.arrayBuffer == nil {
		c.setError(InvalidOperation)
		return
	}
	a := c.attrib(index)
	a.size = size
	a.typ = typ
	a.normalized = normalized
	a.integer = integer
	a.stride = stride
	a.offset = offset
	rebind(c.buffers, &a.buffer, c.arrayBuffer)
}

// EnableVertexAttribArray makes attribute index read from its array.
func (c *ReferenceContext) EnableVertexAttribArray(index uint32) {
	c.enter("EnableVertexAttribArray")
	if a := c.attrib(index); a != nil {
		a.enabled = true
	}
}

// DisableVertexAttribArray makes attribute index read its generic value.
func (c *ReferenceContext) DisableVertexAttribArray(index uint32) {
	c.enter("DisableVertexAttribArray")
	if a := c.attrib(index); a != nil {
		a.enabled = false
	}
}

// VertexAttribDivisor sets the instance divisor of attribute index.
func (c *ReferenceContext) VertexAttribDivisor(index uint32, divisor int) {
	c.enter("VertexAttribDivisor")
	if divisor < 0 {
		c.setError(InvalidValue)
		return
	}
	if a := c.attrib(index); a != nil {
		a.divisor = divisor
	}
}

// VertexAttrib4f sets the generic float value of attribute index.
func (c *ReferenceContext) VertexAttrib4f(index uint32, x, y, z, w float32) {
	c.enter("VertexAttrib4f")
	c.setGeneric(index, rr.FromVec4(vec.V4(x, y, z, w)))
}

// VertexAttribI4i sets the generic signed integer value of attribute index.
func (c *ReferenceContext) VertexAttribI4i(index uint32, x, y, z, w int32) {
	c.enter("VertexAttribI4i")
	c.setGeneric(index, rr.FromIVec4(vec.IVec4{x, y, z, w}))
}

// VertexAttribI4ui sets the generic unsigned integer value of attribute index.
func (c *ReferenceContext) VertexAttribI4ui(index uint32, x, y, z, w uint32) {
	c.enter("VertexAttribI4ui")
	c.setGeneric(index, rr.FromUVec4(vec.UVec4{x, y, z, w}))
}

func (c *ReferenceContext) setGeneric(index uint32, v rr.GenericVec4) {
	if int(index) >= len(c.genericAttribs) {
		c.setError(InvalidValue)
		return
	}
	c.genericAttribs[index] = v
}

// vertexInputs builds the rr attribute sources for n shader inputs.
// Disabled arrays, and arrays whose buffer was deleted while the array was
// current, read the generic value.
func (c *ReferenceContext) vertexInputs(n int) []rr.VertexAttrib {
	va := c.vertexArray()
	out := make([]rr.VertexAttrib, n)
	for i := range out {
		if i < len(c.genericAttribs) {
			out[i].Generic = c.genericAttribs[i]
		} else {
			out[i].Generic = rr.FromVec4(vec.V4(0, 0, 0, 1))
		}
		if i >= len(va.attribs) {
			continue
		}
		a := &va.attribs[i]
		if !a.enabled || a.buffer == nil || a.buffer.data == nil {
			continue
		}
		data := a.buffer.data
		out[i] = rr.VertexAttrib{
			Type:       attribTypes[a.typ],
			Size:       a.size,
			Normalized: a.normalized,
			Pure:       a.integer,
			Stride:     a.stride,
			Divisor:    a.divisor,
			Pointer:    data[min(a.offset, len(data)):],
		}
	}
	return out
}
