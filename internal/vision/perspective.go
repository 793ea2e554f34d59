package vision

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PerspectiveCoeffs holds the eight coefficients [a,b,c,d,e,f,g,h] of the
// projective inverse mapping
//
//	src_x = (a*x + b*y + c) / (g*x + h*y + 1)
//	src_y = (d*x + e*y + f) / (g*x + h*y + 1)
type PerspectiveCoeffs [8]float64

// IdentityCoeffs is the no-op projective mapping.
var IdentityCoeffs = PerspectiveCoeffs{1, 0, 0, 0, 1, 0, 0, 0}

// Apply maps a destination pixel to its source pixel.
func (p PerspectiveCoeffs) Apply(x, y float64) (float64, float64) {
	den := p[6]*x + p[7]*y + 1
	return (p[0]*x + p[1]*y + p[2]) / den, (p[3]*x + p[4]*y + p[5]) / den
}

// SolvePerspective derives the projective coefficients from four corner
// correspondences, each ordered (top-left, top-right, bottom-right,
// bottom-left). Each end point contributes two rows of an 8×8 system whose
// right-hand side is the matching start point, so the solved coefficients
// map destination pixels back to source pixels.
//
// The system is solved by QR least squares rather than exact inversion:
// a near-degenerate configuration (collinear corners) yields a best-effort
// result instead of failing.
func SolvePerspective(start, end [4]Point) (PerspectiveCoeffs, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		dst, src := end[i], start[i]

		a.SetRow(2*i, []float64{dst.X, dst.Y, 1, 0, 0, 0, -src.X * dst.X, -src.X * dst.Y})
		a.SetRow(2*i+1, []float64{0, 0, 0, dst.X, dst.Y, 1, -src.Y * dst.X, -src.Y * dst.Y})
		b.SetVec(2*i, src.X)
		b.SetVec(2*i+1, src.Y)
	}

	var qr mat.QR
	qr.Factorize(a)

	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, b); err != nil {
		// An ill-conditioned system still carries a usable least-squares
		// solution; only a hard failure is propagated.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return PerspectiveCoeffs{}, fmt.Errorf("perspective solve: %w", err)
		}
	}

	var out PerspectiveCoeffs
	for i := range out {
		out[i] = coef.AtVec(i)
	}
	return out, nil
}
