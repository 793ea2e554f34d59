package array

import (
	"fmt"
	"math"

	"github.com/warp-ml/warp/internal/vision"
)

type invMap func(x, y float64) (float64, float64)

// warp pull-samples src into a width×height buffer through the inverse map.
// The array backend maps integer destination indices directly, the cv2
// convention, so nearest rounds the mapped coordinate.
func warp(a *vision.Array, height, width int, m invMap, interp vision.Interpolation, fill []float64) (*vision.Array, error) {
	if interp != vision.Nearest && interp != vision.Bilinear {
		return nil, fmt.Errorf("%w: interpolation %q not supported for array warping", vision.ErrInvalidArgument, interp)
	}
	w, h := a.Size()
	ch := a.Channels()
	out := newLike(a, height, width)

	sample := func(ix, iy, c int) float64 {
		if ix < 0 || ix >= w || iy < 0 || iy >= h {
			return fill[c%len(fill)]
		}
		return a.At(iy, ix, c)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx, sy := m(float64(x), float64(y))
			if interp == vision.Nearest {
				ix, iy := int(math.Round(sx)), int(math.Round(sy))
				for c := 0; c < ch; c++ {
					out.Set(y, x, c, sample(ix, iy, c))
				}
				continue
			}
			x0, y0 := int(math.Floor(sx)), int(math.Floor(sy))
			fx, fy := sx-float64(x0), sy-float64(y0)
			for c := 0; c < ch; c++ {
				top := sample(x0, y0, c)*(1-fx) + sample(x0+1, y0, c)*fx
				bot := sample(x0, y0+1, c)*(1-fx) + sample(x0+1, y0+1, c)*fx
				out.Set(y, x, c, top*(1-fy)+bot*fy)
			}
		}
	}
	return out, nil
}

// Affine resamples through the inverse affine matrix; the output keeps the
// input framing.
func (b *ArrayBackend) Affine(img vision.Image, m vision.AffineMatrix, interp vision.Interpolation, fill []float64) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	w, h := a.Size()
	out, err := warp(a, h, w, m.Apply, interp, fill)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// expandedBounds returns the canvas of the bounding box of the corners
// pushed through the forward counter-clockwise rotation about (cx, cy).
func expandedBounds(w, h int, angle, cx, cy float64) (nw, nh int, minX, minY float64) {
	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {float64(w), 0}, {float64(w), float64(h)}, {0, float64(h)}} {
		dx, dy := p[0]-cx, p[1]-cy
		x := cos*dx + sin*dy + cx
		y := -sin*dx + cos*dy + cy
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	round6 := func(v float64) float64 { return math.Round(v*1e6) / 1e6 }
	nw = int(math.Ceil(round6(maxX - minX)))
	nh = int(math.Ceil(round6(maxY - minY)))
	return nw, nh, minX, minY
}

// Rotate rotates counter-clockwise about the center (image midpoint when
// nil). With expand the canvas grows to the rotated bounding box.
func (b *ArrayBackend) Rotate(img vision.Image, angle float64, interp vision.Interpolation, expand bool, center *vision.Point, fill []float64) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	w, h := a.Size()

	c := vision.Point{X: float64(w) * 0.5, Y: float64(h) * 0.5}
	if center != nil {
		c = *center
	}

	m, err := vision.BuildInverseAffine(c, -angle, [2]float64{0, 0}, 1, [2]float64{0, 0})
	if err != nil {
		return nil, err
	}

	nw, nh := w, h
	if expand {
		var minX, minY float64
		nw, nh, minX, minY = expandedBounds(w, h, angle, c.X, c.Y)
		m[2] += m[0]*minX + m[1]*minY
		m[5] += m[3]*minX + m[4]*minY
	}

	out, err := warp(a, nh, nw, m.Apply, interp, fill)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Perspective resamples through the projective inverse mapping.
func (b *ArrayBackend) Perspective(img vision.Image, coeffs vision.PerspectiveCoeffs, interp vision.Interpolation, fill []float64) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	w, h := a.Size()
	out, err := warp(a, h, w, coeffs.Apply, interp, fill)
	if err != nil {
		return nil, err
	}
	return out, nil
}
