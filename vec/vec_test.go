package vec

import "testing"

func TestVec4Arithmetic(t *testing.T) {
	a := V4(1, 2, 3, 4)
	b := V4(4, 3, 2, 1)

	tests := []struct {
		name string
		got  Vec4
		want Vec4
	}{
		{"add", a.Add(b), V4(5, 5, 5, 5)},
		{"sub", a.Sub(b), V4(-3, -1, 1, 3)},
		{"mul", a.Mul(b), V4(4, 6, 6, 4)},
		{"scale", a.Scale(2), V4(2, 4, 6, 8)},
		{"lerp half", a.Lerp(b, 0.5), V4(2.5, 2.5, 2.5, 2.5)},
		{"clamp", V4(-1, 0.5, 2, 1).Clamp(0, 1), V4(0, 0.5, 1, 1)},
		{"min", a.Min(b), V4(1, 2, 2, 1)},
		{"max", a.Max(b), V4(4, 3, 3, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if d := a.Dot(b); d != 20 {
		t.Errorf("Dot() = %v, want 20", d)
	}
}

func TestMat4MulVec(t *testing.T) {
	m := Translate4(1, 2, 3).Mul(Scale4(2, 2, 2))
	got := m.MulVec(V4(1, 1, 1, 1))
	want := V4(3, 4, 5, 1)
	if got != want {
		t.Errorf("MulVec() = %v, want %v", got, want)
	}
}

func TestMat4Transpose(t *testing.T) {
	m := Translate4(1, 2, 3)
	tr := m.Transpose()
	if tr.At(3, 0) != 1 || tr.At(3, 1) != 2 || tr.At(3, 2) != 3 {
		t.Errorf("Transpose() moved translation to %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("double transpose should be identity")
	}
}
