package rr

import (
	"encoding/binary"
	"testing"

	"github.com/x448/float16"

	"github.com/gogpu/glref/vec"
)

func TestReadVertexAttribFloat(t *testing.T) {
	half := make([]byte, 4)
	binary.LittleEndian.PutUint16(half, float16.Fromfloat32(0.5).Bits())
	binary.LittleEndian.PutUint16(half[2:], float16.Fromfloat32(-2).Bits())

	fixed := make([]byte, 4)
	binary.LittleEndian.PutUint32(fixed, uint32(3<<16|1<<15))

	packed := make([]byte, 4)
	// x = 511, y = -512 (0x200), z = 0, w = 1 (two bits).
	binary.LittleEndian.PutUint32(packed, 511|0x200<<10|1<<30)

	tests := []struct {
		name   string
		attrib VertexAttrib
		want   vec.Vec4
	}{
		{
			name:   "unsigned byte normalized",
			attrib: VertexAttrib{Type: VertexAttribUnsignedByte, Size: 2, Normalized: true, Pointer: []byte{255, 0}},
			want:   vec.V4(1, 0, 0, 1),
		},
		{
			name:   "signed byte normalized clamps -128",
			attrib: VertexAttrib{Type: VertexAttribByte, Size: 2, Normalized: true, Pointer: []byte{0x80, 127}},
			want:   vec.V4(-1, 1, 0, 1),
		},
		{
			name:   "unsigned short unnormalized",
			attrib: VertexAttrib{Type: VertexAttribUnsignedShort, Size: 1, Pointer: []byte{0x10, 0x27}},
			want:   vec.V4(10000, 0, 0, 1),
		},
		{
			name:   "half float",
			attrib: VertexAttrib{Type: VertexAttribHalfFloat, Size: 2, Pointer: half},
			want:   vec.V4(0.5, -2, 0, 1),
		},
		{
			name:   "fixed 16.16",
			attrib: VertexAttrib{Type: VertexAttribFixed, Size: 1, Pointer: fixed},
			want:   vec.V4(3.5, 0, 0, 1),
		},
		{
			name:   "signed 2_10_10_10 normalized",
			attrib: VertexAttrib{Type: VertexAttribInt2101010Rev, Size: 4, Normalized: true, Pointer: packed},
			want:   vec.V4(1, -1, 0, 1),
		},
		{
			name:   "generic value",
			attrib: VertexAttrib{Generic: FromVec4(vec.V4(1, 2, 3, 4))},
			want:   vec.V4(1, 2, 3, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadVertexAttribFloat(&tt.attrib, 0, 0)
			if !got.Equal(tt.want, 1e-6) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVertexAttribStrideAndDivisor(t *testing.T) {
	// Two bytes of payload per 4-byte stride.
	data := []byte{1, 2, 0, 0, 3, 4, 0, 0, 5, 6, 0, 0}
	a := VertexAttrib{Type: VertexAttribUnsignedByte, Size: 2, Stride: 4, Pointer: data}

	if got := ReadVertexAttribFloat(&a, 0, 2); got != vec.V4(5, 6, 0, 1) {
		t.Errorf("vertex 2 = %v", got)
	}

	a.Divisor = 2
	if got := ReadVertexAttribFloat(&a, 3, 0); got != vec.V4(3, 4, 0, 1) {
		t.Errorf("instance 3 with divisor 2 = %v", got)
	}

	// Past the end of the buffer reads the default value.
	a.Divisor = 0
	if got := ReadVertexAttribFloat(&a, 0, 3); got != vec.V4(0, 0, 0, 1) {
		t.Errorf("out of range = %v", got)
	}
}

func TestReadVertexAttribInt(t *testing.T) {
	a := VertexAttrib{Type: VertexAttribShort, Size: 2, Pure: true, Pointer: []byte{0xff, 0xff, 0x05, 0x00}}
	if got := ReadVertexAttribInt(&a, 0, 0); got != (vec.IVec4{-1, 5, 0, 1}) {
		t.Errorf("int = %v", got)
	}
	g := ReadVertexAttrib(&a, GenericVecTypeInt32, 0, 0)
	if g.Int()[0] != -1 {
		t.Errorf("generic int = %v", g.Int())
	}
}

func TestGenericVec4(t *testing.T) {
	v := vec.V4(1.5, -2, 0, 3)
	if got := FromVec4(v).Float(); got != v {
		t.Errorf("float = %v", got)
	}
	iv := vec.IVec4{-7, 1, 0, 2}
	if got := FromIVec4(iv).Int(); got != iv {
		t.Errorf("int = %v", got)
	}
}

func TestDerivates(t *testing.T) {
	v := [4]vec.Vec4{vec.Splat4(0), vec.Splat4(1), vec.Splat4(10), vec.Splat4(13)}
	dx := DerivateX(&v)
	dy := DerivateY(&v)
	if dx[0][0] != 1 || dx[3][0] != 3 {
		t.Errorf("dx = %v", dx)
	}
	if dy[0][0] != 10 || dy[1][0] != 12 {
		t.Errorf("dy = %v", dy)
	}
}

func TestProgramValidate(t *testing.T) {
	s := &testShader{}
	p := s.program()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	p.Varyings = append(p.Varyings, VaryingInfo{Type: GenericVecTypeInt32})
	if err := p.Validate(); err == nil {
		t.Error("smooth integer varying accepted")
	}
}
