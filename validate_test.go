package cheese

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeShape struct{ Rectangle }

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		shape  HoleShape
		dx, dy float64
		want   Outcome
	}{
		{"rectangle clear", Rectangle{10, 10}, 20, 20, OutcomeOK},
		{"rectangle dx equals width", Rectangle{10, 10}, 10, 20, OutcomeSpacingTooSmall},
		{"rectangle dy equals height", Rectangle{10, 10}, 20, 10, OutcomeSpacingTooSmall},
		{"rectangle dx smaller", Rectangle{10, 4}, 8, 20, OutcomeSpacingTooSmall},
		{"rectangle tall hole", Rectangle{4, 10}, 5, 10.5, OutcomeOK},
		{"circle clear", Circle{5}, 10.01, 10.01, OutcomeOK},
		{"circle dx equals diameter", Circle{5}, 10, 20, OutcomeSpacingTooSmall},
		{"circle dy equals diameter", Circle{5}, 20, 10, OutcomeSpacingTooSmall},
		{"circle spacing under radius", Circle{5}, 4, 4, OutcomeSpacingTooSmall},
		{"nil shape", nil, 20, 20, OutcomeUnsupportedShape},
		{"foreign shape", fakeShape{Rectangle{1, 1}}, 20, 20, OutcomeUnsupportedShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.shape, tt.dx, tt.dy))
		})
	}
}

func TestValidateScaling(t *testing.T) {
	for _, extent := range []float64{1e-6, 25e-6, 0.5, 3, 1e3} {
		rect := Rectangle{extent, extent}
		circle := Circle{extent / 2}
		for _, k := range []float64{2.0001, 2.5, 4, 100} {
			d := k * extent
			assert.Equal(t, OutcomeOK, Validate(rect, d, d), "rect extent=%g delta=%g", extent, d)
			assert.Equal(t, OutcomeOK, Validate(circle, d, d), "circle extent=%g delta=%g", extent, d)
		}
		for _, k := range []float64{0.1, 0.5, 0.999, 1} {
			d := k * extent
			assert.Equal(t, OutcomeSpacingTooSmall, Validate(rect, d, d), "rect extent=%g delta=%g", extent, d)
			assert.Equal(t, OutcomeSpacingTooSmall, Validate(circle, d, d), "circle extent=%g delta=%g", extent, d)
		}
	}
}

func TestOutcomeErr(t *testing.T) {
	assert.NoError(t, OutcomeOK.Err())
	assert.ErrorIs(t, OutcomeSpacingTooSmall.Err(), ErrSpacingTooSmall)
	assert.ErrorIs(t, OutcomeUnsupportedShape.Err(), ErrUnsupportedShape)
	assert.Equal(t, "spacing too small", OutcomeSpacingTooSmall.String())
}
