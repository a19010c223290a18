package cheese

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTranslation(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"pure translation", Translate(10, 20), true},
		{"zero translation", Translate(0, 0), true},
		{"negative translation", Translate(-5, -3), true},
		{"large translation", Translate(1e6, -1e6), true},
		{"uniform scale", Scale(2, 2), false},
		{"non-uniform scale", Scale(3, 0.5), false},
		{"scale 1,1", Scale(1, 1), true},
		{"y flip", Scale(1, -1), false},
		{"scale + translate", Scale(2, 3).Multiply(Translate(10, 20)), false},
		{"zero matrix", Matrix{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.IsTranslation())
		})
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Multiply applies the right operand first.
	m := Scale(2, 3).Multiply(Translate(10, 20))
	assert.Equal(t, Pt(22, 63), m.TransformPoint(Pt(1, 1)))

	m = Translate(10, 20).Multiply(Scale(2, 3))
	assert.Equal(t, Pt(12, 23), m.TransformPoint(Pt(1, 1)))
}

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		p    Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(1e-4, -2e-4), Pt(5e-5, 5e-5), Pt(1.5e-4, -1.5e-4)},
		{"scale", Scale(2, 0.5), Pt(3, 4), Pt(6, 2)},
		{"y flip", Translate(0, 100).Multiply(Scale(1, -1)), Pt(10, 30), Pt(10, 70)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			assert.InDelta(t, tt.want.X, got.X, 1e-15)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-15)
		})
	}
}

func TestPointOps(t *testing.T) {
	p, q := Pt(3, 4), Pt(1, 2)
	assert.Equal(t, Pt(4, 6), p.Add(q))
	assert.Equal(t, Pt(2, 2), p.Sub(q))
	assert.Equal(t, Pt(6, 8), p.Mul(2))
	assert.Equal(t, 2.0, p.Cross(q))
	assert.Equal(t, 5.0, p.Distance(Pt(0, 0)))
}
