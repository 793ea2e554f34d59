package vision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInverseAffine_Identity(t *testing.T) {
	m, err := BuildInverseAffine(Point{}, 0, [2]float64{0, 0}, 1, [2]float64{0, 0})
	require.NoError(t, err)
	for i, want := range IdentityMatrix {
		assert.InDelta(t, want, m[i], 1e-12, "coefficient %d", i)
	}
}

func TestBuildInverseAffine_PureTranslation(t *testing.T) {
	m, err := BuildInverseAffine(Point{}, 0, [2]float64{10, -4}, 1, [2]float64{0, 0})
	require.NoError(t, err)

	// Inverse of a forward translation undoes it.
	x, y := m.Apply(10, -4)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)
}

func TestBuildInverseAffine_Rotation90(t *testing.T) {
	m, err := BuildInverseAffine(Point{}, 90, [2]float64{0, 0}, 1, [2]float64{0, 0})
	require.NoError(t, err)

	// A 90 degree clockwise forward rotation takes (1, 0) to (0, 1) in
	// y-down coordinates; the inverse map goes back.
	x, y := m.Apply(0, 1)
	assert.InDelta(t, 1, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)
}

func TestBuildInverseAffine_CenterIsFixedPoint(t *testing.T) {
	c := Point{X: 128, Y: 150}
	m, err := BuildInverseAffine(c, 37, [2]float64{0, 0}, 1.3, [2]float64{5, -2})
	require.NoError(t, err)

	x, y := m.Apply(c.X, c.Y)
	assert.InDelta(t, c.X, x, 1e-9)
	assert.InDelta(t, c.Y, y, 1e-9)
}

func TestBuildInverseAffine_DeterminantIsInverseScaleSquared(t *testing.T) {
	for _, scale := range []float64{0.5, 1, 2, 3.7} {
		m, err := BuildInverseAffine(Point{X: 10, Y: 20}, 33, [2]float64{2, 3}, scale, [2]float64{8, 4})
		require.NoError(t, err)

		det := m[0]*m[4] - m[1]*m[3]
		assert.InDelta(t, 1/(scale*scale), det, 1e-9, "scale %v", scale)
	}
}

func TestBuildInverseAffine_RoundTrip(t *testing.T) {
	// Pushing a probe point through an independently computed forward map
	// and then through the inverse matrix must return it unchanged.
	c := Point{X: 50, Y: 30}
	angle, scale := 25.0, 1.4
	translate := [2]float64{7, -3}
	shear := [2]float64{10, 5}

	inv, err := BuildInverseAffine(c, angle, translate, scale, shear)
	require.NoError(t, err)

	rot := angle * math.Pi / 180
	sx := shear[0] * math.Pi / 180
	sy := shear[1] * math.Pi / 180
	fa := math.Cos(rot-sy) / math.Cos(sy)
	fb := -math.Cos(rot-sy)*math.Tan(sx)/math.Cos(sy) - math.Sin(rot)
	fc := math.Sin(rot-sy) / math.Cos(sy)
	fd := -math.Sin(rot-sy)*math.Tan(sx)/math.Cos(sy) + math.Cos(rot)

	// Forward map: translate, then rotate-shear-scale about the center.
	forward := func(x, y float64) (float64, float64) {
		px, py := x-c.X, y-c.Y
		return scale*(fa*px+fb*py) + c.X + translate[0],
			scale*(fc*px+fd*py) + c.Y + translate[1]
	}

	for _, p := range [][2]float64{{0, 0}, {100, 0}, {33, 77}, {-5, 12}} {
		fx, fy := forward(p[0], p[1])
		bx, by := inv.Apply(fx, fy)
		assert.InDelta(t, p[0], bx, 1e-9)
		assert.InDelta(t, p[1], by, 1e-9)
	}
}

func TestBuildInverseAffine_SingularShear(t *testing.T) {
	for _, deg := range []float64{90, -90, 270} {
		_, err := BuildInverseAffine(Point{}, 0, [2]float64{0, 0}, 1, [2]float64{0, deg})
		assert.ErrorIs(t, err, ErrSingularTransform, "y-shear %v", deg)
	}
}

func TestAffineMatrixApply(t *testing.T) {
	m := AffineMatrix{2, 0, 1, 0, 3, -1}
	x, y := m.Apply(5, 4)
	assert.Equal(t, 11.0, x)
	assert.Equal(t, 11.0, y)
}
