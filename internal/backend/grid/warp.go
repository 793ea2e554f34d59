package grid

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/warp-ml/warp/internal/vision"
)

// invMap sends a destination pixel to its source pixel.
type invMap func(x, y float64) (float64, float64)

// warp pull-samples src into a nw×nh canvas through the inverse map.
// Destination pixels mapping outside the source get the fill color.
func warp(src *image.NRGBA, nw, nh int, m invMap, interp vision.Interpolation, fc color.NRGBA) (*image.NRGBA, error) {
	if interp != vision.Nearest && interp != vision.Bilinear {
		return nil, fmt.Errorf("%w: interpolation %q not supported for grid warping", vision.ErrInvalidArgument, interp)
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))

	at := func(ix, iy int) color.NRGBA {
		if ix < 0 || ix >= w || iy < 0 || iy >= h {
			return fc
		}
		return src.NRGBAAt(ix, iy)
	}

	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			// Pixel-center convention: destination index (x, y) maps the
			// point (x+0.5, y+0.5), and a nearest lookup floors the result.
			sx, sy := m(float64(x)+0.5, float64(y)+0.5)
			if interp == vision.Nearest {
				dst.SetNRGBA(x, y, at(int(math.Floor(sx)), int(math.Floor(sy))))
				continue
			}
			sx -= 0.5
			sy -= 0.5
			x0, y0 := math.Floor(sx), math.Floor(sy)
			fx, fy := sx-x0, sy-y0
			ix, iy := int(x0), int(y0)

			c00 := at(ix, iy)
			c10 := at(ix+1, iy)
			c01 := at(ix, iy+1)
			c11 := at(ix+1, iy+1)

			blend := func(a, b, c, d uint8) uint8 {
				top := float64(a)*(1-fx) + float64(b)*fx
				bot := float64(c)*(1-fx) + float64(d)*fx
				return uint8(top*(1-fy) + bot*fy + 0.5)
			}
			dst.SetNRGBA(x, y, color.NRGBA{
				R: blend(c00.R, c10.R, c01.R, c11.R),
				G: blend(c00.G, c10.G, c01.G, c11.G),
				B: blend(c00.B, c10.B, c01.B, c11.B),
				A: blend(c00.A, c10.A, c01.A, c11.A),
			})
		}
	}
	return dst, nil
}

// Affine resamples through the inverse affine matrix; the output keeps the
// input framing.
func (b *GridBackend) Affine(img vision.Image, m vision.AffineMatrix, interp vision.Interpolation, fill []float64) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	src := imaging.Clone(g.Img)
	out, err := warp(src, src.Rect.Dx(), src.Rect.Dy(), m.Apply, interp, fillColor(fill))
	if err != nil {
		return nil, err
	}
	return vision.NewGrid(out), nil
}

// expandedBounds returns the canvas size and origin offset of the bounding
// box of the image corners pushed through the forward rotation about
// (cx, cy). Angle is counter-clockwise degrees.
func expandedBounds(w, h int, angle, cx, cy float64) (nw, nh int, minX, minY float64) {
	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {float64(w), 0}, {float64(w), float64(h)}, {0, float64(h)}} {
		dx, dy := p[0]-cx, p[1]-cy
		// Counter-clockwise on screen is clockwise in y-down coordinates.
		x := cos*dx + sin*dy + cx
		y := -sin*dx + cos*dy + cy
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	nw = int(math.Ceil(round6(maxX - minX)))
	nh = int(math.Ceil(round6(maxY - minY)))
	return nw, nh, minX, minY
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// Rotate rotates counter-clockwise about the center (image midpoint when
// nil). With expand the canvas grows to the rotated bounding box.
func (b *GridBackend) Rotate(img vision.Image, angle float64, interp vision.Interpolation, expand bool, center *vision.Point, fill []float64) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	src := imaging.Clone(g.Img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	c := vision.Point{X: float64(w) * 0.5, Y: float64(h) * 0.5}
	if center != nil {
		c = *center
	}

	// The matrix builder's angle is clockwise; rotate is counter-clockwise.
	m, err := vision.BuildInverseAffine(c, -angle, [2]float64{0, 0}, 1, [2]float64{0, 0})
	if err != nil {
		return nil, err
	}

	nw, nh := w, h
	if expand {
		var minX, minY float64
		nw, nh, minX, minY = expandedBounds(w, h, angle, c.X, c.Y)
		// Shift the destination origin onto the bounding box corner.
		m[2] += m[0]*minX + m[1]*minY
		m[5] += m[3]*minX + m[4]*minY
	}

	out, err := warp(src, nw, nh, m.Apply, interp, fillColor(fill))
	if err != nil {
		return nil, err
	}
	return vision.NewGrid(out), nil
}

// Perspective resamples through the projective inverse mapping.
func (b *GridBackend) Perspective(img vision.Image, coeffs vision.PerspectiveCoeffs, interp vision.Interpolation, fill []float64) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	src := imaging.Clone(g.Img)
	out, err := warp(src, src.Rect.Dx(), src.Rect.Dy(), coeffs.Apply, interp, fillColor(fill))
	if err != nil {
		return nil, err
	}
	return vision.NewGrid(out), nil
}
