package glref

import (
	"github.com/gogpu/glref/internal/pixel"
)

// ReadPixels reads a rectangle of the read framebuffer into dst, laid out
// by the PACK_* parameters. With a PIXEL_PACK_BUFFER bound, dst must be nil
// and the pixels are written to the start of the buffer. Pixels outside the
// read surface are left unchanged.
func (c *ReferenceContext) ReadPixels(x, y, width, height int, format, typ Enum, dst []byte) {
	c.enter("ReadPixels")
	c.readPixels(x, y, width, height, format, typ, dst, 0)
}

// ReadPixelsToBuffer is ReadPixels into the bound PIXEL_PACK_BUFFER,
// starting offset bytes into the buffer.
func (c *ReferenceContext) ReadPixelsToBuffer(x, y, width, height int, format, typ Enum, offset int) {
	c.enter("ReadPixelsToBuffer")
	if !c.validBufferOffset(c.pixelPackBuffer, offset) {
		return
	}
	c.readPixels(x, y, width, height, format, typ, nil, offset)
}

func (c *ReferenceContext) readPixels(x, y, width, height int, format, typ Enum, dst []byte, offset int) {
	transfer, code := transferFormat(format, typ)
	if code == InvalidEnum {
		c.setError(code)
		return
	}
	if width < 0 || height < 0 {
		c.setError(InvalidValue)
		return
	}
	if code != NoError {
		c.setError(code)
		return
	}

	kind := Color
	switch transfer.Order {
	case pixel.D, pixel.DS:
		kind = Depth
	case pixel.S:
		kind = Stencil
	}
	src, code := c.readSurface(kind)
	if code != NoError {
		c.setError(code)
		return
	}
	if !readCompatible(src.Format(), transfer) {
		c.setError(InvalidOperation)
		return
	}

	data, ok := transferData(c.pixelPackBuffer, dst, offset)
	if !ok {
		c.setError(InvalidOperation)
		return
	}
	view, ok := c.pack.view(transfer, width, height, 1, data)
	if !ok {
		c.setError(InvalidOperation)
		return
	}
	if width == 0 || height == 0 {
		return
	}
	copyRect(view, 0, 0, src, x, y, width, height)
	c.logger().Debug("glref: read pixels",
		"x", x, "y", y, "width", width, "height", height,
		"format", transfer.String(), "offset", offset)
}
