package vec

// Mat4 is a 4x4 float matrix stored in column-major order, matching the
// layout UniformMatrix4fv receives with transpose=false.
type Mat4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at the given row and column.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for row := range 4 {
		for col := range 4 {
			r[row*4+col] = m[col*4+row]
		}
	}
	return r
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float32
			for k := range 4 {
				sum += m.At(row, k) * n.At(k, col)
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// MulVec returns m * v.
func (m Mat4) MulVec(v Vec4) Vec4 {
	var r Vec4
	for row := range 4 {
		r[row] = m.At(row, 0)*v[0] + m.At(row, 1)*v[1] + m.At(row, 2)*v[2] + m.At(row, 3)*v[3]
	}
	return r
}

// Translate4 returns a translation matrix.
func Translate4(x, y, z float32) Mat4 {
	m := Identity4()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale4 returns a scaling matrix.
func Scale4(x, y, z float32) Mat4 {
	m := Identity4()
	m[0], m[5], m[10] = x, y, z
	return m
}
