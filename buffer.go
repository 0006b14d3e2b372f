package glref

// bufferObject is a named data store.
type bufferObject struct {
	object
	bound bool
	data  []byte
	usage Enum
}

func (b *bufferObject) free() { b.data = nil }

var bufferUsages = map[Enum]bool{
	StreamDraw: true, StreamRead: true, StreamCopy: true,
	StaticDraw: true, StaticRead: true, StaticCopy: true,
	DynamicDraw: true, DynamicRead: true, DynamicCopy: true,
}

// bufferSlot returns the binding point of a buffer target. The element
// array binding belongs to the current vertex array.
func (c *ReferenceContext) bufferSlot(target Enum) (**bufferObject, bool) {
	switch target {
	case ArrayBuffer:
		return &c.arrayBuffer, true
	case ElementArrayBuffer:
		return &c.vertexArray().elementBuffer, true
	case PixelPackBuffer:
		return &c.pixelPackBuffer, true
	case PixelUnpackBuffer:
		return &c.pixelUnpackBuffer, true
	case CopyReadBuffer:
		return &c.copyReadBuffer, true
	case CopyWriteBuffer:
		return &c.copyWriteBuffer, true
	case UniformBuffer:
		return &c.uniformBuffer, true
	}
	return nil, false
}

// GenBuffers returns n unused buffer names.
func (c *ReferenceContext) GenBuffers(n int) []uint32 {
	c.enter("GenBuffers")
	if n < 0 {
		c.setError(InvalidValue)
		return nil
	}
	names := make([]uint32, n)
	for i := range names {
		names[i] = c.buffers.allocName()
		c.buffers.insert(&bufferObject{object: object{name: names[i]}})
	}
	return names
}

// DeleteBuffers deletes buffers. Context bindings and the attributes of
// the current vertex array that use them are reset; other vertex arrays
// keep their reference.
func (c *ReferenceContext) DeleteBuffers(names ...uint32) {
	c.enter("DeleteBuffers")
	c.deleteBuffers(names)
}

func (c *ReferenceContext) deleteBuffers(names []uint32) {
	for _, name := range names {
		b, ok := c.buffers.find(name)
		if !ok {
			continue
		}
		for _, slot := range []**bufferObject{
			&c.arrayBuffer, &c.pixelPackBuffer, &c.pixelUnpackBuffer,
			&c.copyReadBuffer, &c.copyWriteBuffer, &c.uniformBuffer,
		} {
			if *slot == b {
				rebind(c.buffers, slot, nil)
			}
		}
		va := c.vertexArray()
		if va.elementBuffer == b {
			rebind(c.buffers, &va.elementBuffer, nil)
		}
		for i := range va.attribs {
			if va.attribs[i].buffer == b {
				rebind(c.buffers, &va.attribs[i].buffer, nil)
			}
		}
		c.buffers.remove(name)
	}
}

// IsBuffer reports whether name is a buffer that has been bound.
func (c *ReferenceContext) IsBuffer(name uint32) bool {
	c.enter("IsBuffer")
	b, ok := c.buffers.find(name)
	return ok && b.bound
}

// BindBuffer binds a buffer to a target. Binding a name that was never
// generated creates it.
func (c *ReferenceContext) BindBuffer(target Enum, name uint32) {
	c.enter("BindBuffer")
	slot, ok := c.bufferSlot(target)
	if !ok {
		c.setError(InvalidEnum)
		return
	}
	if name == 0 {
		rebind(c.buffers, slot, nil)
		return
	}
	b, ok := c.buffers.find(name)
	if !ok {
		b = &bufferObject{object: object{name: name}}
		c.buffers.insert(b)
	}
	b.bound = true
	rebind(c.buffers, slot, b)
}

// boundBuffer returns the buffer bound to target, recording the GL error
// for an invalid target or an empty binding.
func (c *ReferenceContext) boundBuffer(target Enum) *bufferObject {
	slot, ok := c.bufferSlot(target)
	if !ok {
		c.setError(InvalidEnum)
		return nil
	}
	if *slot == nil {
		c.setError(InvalidOperation)
		return nil
	}
	return *slot
}

// BufferData replaces the store of the bound buffer with size bytes,
// initialised from data when it is not nil.
func (c *ReferenceContext) BufferData(target Enum, size int, data []byte, usage Enum) {
	c.enter("BufferData")
	if _, ok := c.bufferSlot(target); !ok || !bufferUsages[usage] {
		c.setError(InvalidEnum)
		return
	}
	if size < 0 || data != nil && len(data) < size {
		c.setError(InvalidValue)
		return
	}
	b := c.boundBuffer(target)
	if b == nil {
		return
	}
	b.data = make([]byte, size)
	copy(b.data, data)
	b.usage = usage
}

// BufferSubData writes data at offset into the bound buffer.
func (c *ReferenceContext) BufferSubData(target Enum, offset int, data []byte) {
	c.enter("BufferSubData")
	b := c.boundBuffer(target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		c.setError(InvalidValue)
		return
	}
	copy(b.data[offset:], data)
}

// GetBufferSubData reads len(data) bytes at offset from the bound buffer.
func (c *ReferenceContext) GetBufferSubData(target Enum, offset int, data []byte) {
	c.enter("GetBufferSubData")
	b := c.boundBuffer(target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		c.setError(InvalidValue)
		return
	}
	copy(data, b.data[offset:])
}
