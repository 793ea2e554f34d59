package vision

import (
	"fmt"
	"math"
)

// AffineMatrix holds the six coefficients of the inverse mapping from a
// destination pixel to its source pixel:
//
//	src_x = A*dst_x + B*dst_y + C
//	src_y = D*dst_x + E*dst_y + F
//
// Backends resample by pulling a source pixel for each destination pixel,
// so the matrix is always the inverse map, never the forward one.
type AffineMatrix [6]float64

// IdentityMatrix is the no-op inverse mapping.
var IdentityMatrix = AffineMatrix{1, 0, 0, 0, 1, 0}

// Apply maps a destination pixel to its source pixel.
func (m AffineMatrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// BuildInverseAffine derives the inverse affine matrix for a rotation of
// angle degrees clockwise about center, composed with translation, a
// uniform positive scale and per-axis shear angles in degrees.
//
// The forward map is M = T * C * RotateScaleShear * C^-1; the returned
// matrix is M^-1 = C * RotateScaleShear^-1 * C^-1 * T^-1, composed in a
// single pass. A y-shear of ±90 degrees collapses the linear block and is
// rejected with ErrSingularTransform.
func BuildInverseAffine(center Point, angle float64, translate [2]float64, scale float64, shear [2]float64) (AffineMatrix, error) {
	rot := angle * math.Pi / 180
	sx := shear[0] * math.Pi / 180
	sy := shear[1] * math.Pi / 180

	cosSy := math.Cos(sy)
	if math.Abs(cosSy) < 1e-12 {
		return AffineMatrix{}, fmt.Errorf("%w: y-shear of %v degrees is not invertible", ErrSingularTransform, shear[1])
	}

	// Rotation and shear without scaling. det([[a, b], [c, d]]) == 1,
	// since both the rotation and shear sub-matrices have determinant 1.
	a := math.Cos(rot-sy) / cosSy
	b := -math.Cos(rot-sy)*math.Tan(sx)/cosSy - math.Sin(rot)
	c := math.Sin(rot-sy) / cosSy
	d := -math.Sin(rot-sy)*math.Tan(sx)/cosSy + math.Cos(rot)

	cx, cy := center.X, center.Y
	tx, ty := translate[0], translate[1]

	// Inverted rotation-shear block via the adjugate, divided by scale.
	m := AffineMatrix{d, -b, 0, -c, a, 0}
	for i := range m {
		m[i] /= scale
	}

	// RSS^-1 * C^-1 * T^-1, then the center post-shift.
	m[2] += m[0]*(-cx-tx) + m[1]*(-cy-ty)
	m[5] += m[3]*(-cx-tx) + m[4]*(-cy-ty)
	m[2] += cx
	m[5] += cy

	return m, nil
}
