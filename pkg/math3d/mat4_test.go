package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestRotateAxes(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		axis Vec3
		in   Vec3
		want Vec3
	}{
		{"x 90 takes y to z", 90, V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{"y 90 takes z to x", 90, V3(0, 1, 0), V3(0, 0, 1), V3(1, 0, 0)},
		{"z 90 takes x to y", 90, V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0)},
		{"z -90 takes y to x", -90, V3(0, 0, 1), V3(0, 1, 0), V3(1, 0, 0)},
		{"unnormalized axis", 180, V3(0, 0, 5), V3(1, 0, 0), V3(-1, 0, 0)},
		{"zero axis is identity", 45, V3(0, 0, 0), V3(1, 2, 3), V3(1, 2, 3)},
		{"full turn", 360, V3(1, 1, 0), V3(0.3, -2, 7), V3(0.3, -2, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.deg, tt.axis).MulVec3(tt.in)
			assert.True(t, got.ApproxEqual(tt.want, eps), "Rotate(%v, %v) * %v = %v, want %v", tt.deg, tt.axis, tt.in, got, tt.want)
		})
	}
}

func TestRotateMatchesAxisHelpers(t *testing.T) {
	for _, deg := range []float64{-270, -33, 0, 12.5, 90, 181} {
		rad := DegToRad(deg)
		assert.True(t, Rotate(deg, V3(1, 0, 0)).ApproxEqual(RotateX(rad), eps), "Rotate(%v, X)", deg)
		assert.True(t, Rotate(deg, V3(0, 1, 0)).ApproxEqual(RotateY(rad), eps), "Rotate(%v, Y)", deg)
		assert.True(t, Rotate(deg, V3(0, 0, 1)).ApproxEqual(RotateZ(rad), eps), "Rotate(%v, Z)", deg)
	}
}

func TestMulOrder(t *testing.T) {
	// Translate * Scale scales first, then translates.
	m := Translate(V3(1, 0, 0)).Mul(Scale(V3(2, 2, 2)))
	got := m.MulVec3(V3(1, 1, 1))
	assert.True(t, got.ApproxEqual(V3(3, 2, 2), eps), "got %v, want (3,2,2)", got)

	// Rotations do not commute.
	a := RotateX(math.Pi / 2).Mul(RotateY(math.Pi / 2))
	b := RotateY(math.Pi / 2).Mul(RotateX(math.Pi / 2))
	assert.False(t, a.ApproxEqual(b, 1e-6), "expected rotation order to matter")
}

func TestPerspective(t *testing.T) {
	p := Perspective(45, 2, 1, 100)
	f := 1 / math.Tan(math.Pi/8)
	assert.InDelta(t, f/2, p.At(0, 0), eps)
	assert.InDelta(t, f, p.At(1, 1), eps)
	assert.Equal(t, -1.0, p.At(3, 2))
	assert.Equal(t, 0.0, p.At(3, 3))

	// Points on the near and far planes map to NDC z of -1 and +1.
	near := p.MulVec4(V4(0, 0, -1, 1)).PerspectiveDivide()
	far := p.MulVec4(V4(0, 0, -100, 1)).PerspectiveDivide()
	assert.InDelta(t, -1, near.Z, eps)
	assert.InDelta(t, 1, far.Z, eps)
}

func TestMatrixStack(t *testing.T) {
	s := NewMatrixStack()
	require.Equal(t, 0, s.Depth())
	require.Equal(t, Identity(), s.Top(), "new stack should hold only the identity")

	s.Mul(Translate(V3(0, 0, -5)))
	before := s.Top()
	s.Push()
	s.Mul(Scale(V3(3, 3, 3)))
	s.Mul(RotateZ(1))
	assert.Equal(t, 1, s.Depth())

	require.NoError(t, s.Pop())
	assert.Equal(t, before, s.Top(), "Pop should restore the saved matrix")
	assert.ErrorIs(t, s.Pop(), ErrStackUnderflow)

	s.LoadIdentity()
	assert.Equal(t, Identity(), s.Top())
}

func TestVec3(t *testing.T) {
	a, b := V3(1, 0, 0), V3(0, 1, 0)
	assert.Equal(t, V3(0, 0, 1), a.Cross(b))
	assert.Equal(t, 5.0, V3(3, 4, 0).Len())
	assert.Equal(t, Zero3(), Zero3().Normalize())
	assert.Equal(t, V3(0, 5, -3), V3(1, 5, -2).Min(V3(0, 6, -3)))
	assert.Equal(t, V3(1, 6, -2), V3(1, 5, -2).Max(V3(0, 6, -3)))
}
