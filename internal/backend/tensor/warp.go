package tensor

import (
	"fmt"
	"math"

	"github.com/warp-ml/warp/internal/vision"
)

type invMap func(x, y float64) (float64, float64)

// warp pull-samples src into a width×height tensor through the inverse
// map expressed in midpoint-relative coordinates: destination index (x, y)
// maps the point (x - (nw-1)/2, y - (nh-1)/2), and the mapped point lands
// back in source index space at + (w-1)/2, (h-1)/2.
func warp(t *vision.Tensor, height, width int, m invMap, interp vision.Interpolation, fill []float64) (*vision.Tensor, error) {
	if interp != vision.Nearest && interp != vision.Bilinear {
		return nil, fmt.Errorf("%w: interpolation %q not supported for tensor warping", vision.ErrInvalidArgument, interp)
	}
	w, h := t.Size()
	ch := t.Channels()
	out := newLike(t, height, width)

	halfW, halfH := float64(w-1)/2, float64(h-1)/2
	dstHalfW, dstHalfH := float64(width-1)/2, float64(height-1)/2

	sample := func(ix, iy, c int) float32 {
		if ix < 0 || ix >= w || iy < 0 || iy >= h {
			return float32(fill[c%len(fill)])
		}
		return t.At(c, iy, ix)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			rx, ry := m(float64(x)-dstHalfW, float64(y)-dstHalfH)
			sx, sy := rx+halfW, ry+halfH
			if interp == vision.Nearest {
				ix, iy := int(math.Round(sx)), int(math.Round(sy))
				for c := 0; c < ch; c++ {
					out.Set(c, y, x, sample(ix, iy, c))
				}
				continue
			}
			x0, y0 := int(math.Floor(sx)), int(math.Floor(sy))
			fx, fy := float32(sx-float64(x0)), float32(sy-float64(y0))
			for c := 0; c < ch; c++ {
				top := sample(x0, y0, c)*(1-fx) + sample(x0+1, y0, c)*fx
				bot := sample(x0, y0+1, c)*(1-fx) + sample(x0+1, y0+1, c)*fx
				out.Set(c, y, x, top*(1-fy)+bot*fy)
			}
		}
	}
	return out, nil
}

// Affine resamples through the inverse affine matrix. The matrix arrives
// already expressed in midpoint-relative coordinates, the engine having
// recomputed the center offset for this backend.
func (b *TensorBackend) Affine(img vision.Image, m vision.AffineMatrix, interp vision.Interpolation, fill []float64) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	w, h := t.Size()
	return warp(t, h, w, m.Apply, interp, fill)
}

// Rotate rotates counter-clockwise about the center (image midpoint when
// nil; otherwise absolute pixel coordinates, converted here to a midpoint
// offset). With expand the canvas grows to the rotated bounding box;
// expansion assumes rotation about the midpoint.
func (b *TensorBackend) Rotate(img vision.Image, angle float64, interp vision.Interpolation, expand bool, center *vision.Point, fill []float64) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	w, h := t.Size()

	var c vision.Point
	if center != nil && !expand {
		c = vision.Point{X: center.X - float64(w)*0.5, Y: center.Y - float64(h)*0.5}
	}

	m, err := vision.BuildInverseAffine(c, -angle, [2]float64{0, 0}, 1, [2]float64{0, 0})
	if err != nil {
		return nil, err
	}

	nw, nh := w, h
	if expand {
		rad := angle * math.Pi / 180
		cos, sin := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
		round6 := func(v float64) float64 { return math.Round(v*1e6) / 1e6 }
		nw = int(math.Ceil(round6(cos*float64(w) + sin*float64(h))))
		nh = int(math.Ceil(round6(sin*float64(w) + cos*float64(h))))
	}

	return warp(t, nh, nw, m.Apply, interp, fill)
}

// Perspective resamples through the projective inverse mapping. The
// coefficients are solved in absolute pixel coordinates, so the relative
// frame is translated back around the mapping.
func (b *TensorBackend) Perspective(img vision.Image, coeffs vision.PerspectiveCoeffs, interp vision.Interpolation, fill []float64) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	w, h := t.Size()
	halfW, halfH := float64(w-1)/2, float64(h-1)/2

	m := func(x, y float64) (float64, float64) {
		sx, sy := coeffs.Apply(x+halfW, y+halfH)
		return sx - halfW, sy - halfH
	}
	return warp(t, h, w, m, interp, fill)
}
