// Package grid implements the pixel-grid backend on top of the standard
// library image types, with resampling from disintegration/imaging where it
// has the operation and inverse-map pull sampling for the warps.
package grid

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/warp-ml/warp/internal/vision"
)

// GridBackend resamples grid images. It is stateless.
type GridBackend struct{}

// New creates the grid backend.
func New() *GridBackend { return &GridBackend{} }

// Kind returns vision.GridKind.
func (b *GridBackend) Kind() vision.Kind { return vision.GridKind }

// Convention returns the grid coordinate convention: natural axis order,
// absolute center coordinates.
func (b *GridBackend) Convention() vision.Convention { return vision.Convention{} }

func asGrid(img vision.Image) (*vision.Grid, error) {
	g, ok := img.(*vision.Grid)
	if !ok {
		return nil, fmt.Errorf("%w: grid backend received a %s image", vision.ErrUnsupportedType, img.Kind())
	}
	return g, nil
}

func filterFor(interp vision.Interpolation) (imaging.ResampleFilter, error) {
	switch interp {
	case vision.Nearest:
		return imaging.NearestNeighbor, nil
	case vision.Bilinear:
		return imaging.Linear, nil
	case vision.Bicubic:
		return imaging.CatmullRom, nil
	case vision.Lanczos:
		return imaging.Lanczos, nil
	case vision.Hamming:
		return imaging.Hamming, nil
	case vision.Box:
		return imaging.Box, nil
	default:
		return imaging.ResampleFilter{}, fmt.Errorf("%w: interpolation %q not supported by the grid backend", vision.ErrInvalidArgument, interp)
	}
}

func fillColor(fill []float64) color.NRGBA {
	c := color.NRGBA{A: 255}
	clamp := func(v float64) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v + 0.5)
	}
	switch len(fill) {
	case 0:
	case 1:
		c.R, c.G, c.B = clamp(fill[0]), clamp(fill[0]), clamp(fill[0])
	case 2:
		c.R, c.G = clamp(fill[0]), clamp(fill[1])
	default:
		c.R, c.G, c.B = clamp(fill[0]), clamp(fill[1]), clamp(fill[2])
	}
	return c
}

// Resize resamples to width×height with the imaging filter matching interp.
func (b *GridBackend) Resize(img vision.Image, height, width int, interp vision.Interpolation) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	filter, err := filterFor(interp)
	if err != nil {
		return nil, err
	}
	return vision.NewGrid(imaging.Resize(g.Img, width, height, filter)), nil
}

// reflectIndex maps an out-of-range index back into [0, n) by reflection.
// Symmetric reflection repeats the edge sample, plain reflection does not.
func reflectIndex(i, n int, symmetric bool) int {
	if n == 1 {
		return 0
	}
	period := 2*n - 2
	if symmetric {
		period = 2 * n
	}
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
		if symmetric {
			i--
		}
	}
	return i
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Pad extends the borders by (left, top, right, bottom).
func (b *GridBackend) Pad(img vision.Image, padding [4]int, fill []float64, mode vision.PaddingMode) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	src := imaging.Clone(g.Img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	left, top, right, bottom := padding[0], padding[1], padding[2], padding[3]
	nw, nh := w+left+right, h+top+bottom

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	fc := fillColor(fill)

	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			sx, sy := x-left, y-top
			inside := sx >= 0 && sx < w && sy >= 0 && sy < h
			if !inside {
				switch mode {
				case vision.Constant:
					dst.SetNRGBA(x, y, fc)
					continue
				case vision.Edge:
					sx, sy = clampIndex(sx, w), clampIndex(sy, h)
				case vision.Reflect:
					sx, sy = reflectIndex(sx, w, false), reflectIndex(sy, h, false)
				case vision.Symmetric:
					sx, sy = reflectIndex(sx, w, true), reflectIndex(sy, h, true)
				}
			}
			dst.SetNRGBA(x, y, src.NRGBAAt(sx, sy))
		}
	}
	return vision.NewGrid(dst), nil
}

// Crop extracts the box with top-left corner (top, left).
func (b *GridBackend) Crop(img vision.Image, top, left, height, width int) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	r := g.Img.Bounds()
	rect := image.Rect(r.Min.X+left, r.Min.Y+top, r.Min.X+left+width, r.Min.Y+top+height)
	return vision.NewGrid(imaging.Crop(g.Img, rect)), nil
}

// CenterCrop crops the central height×width region.
func (b *GridBackend) CenterCrop(img vision.Image, height, width int) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	w, h := g.Size()
	top := int(math.Round(float64(h-height) / 2))
	left := int(math.Round(float64(w-width) / 2))
	return b.Crop(img, top, left, height, width)
}

// HFlip mirrors left to right.
func (b *GridBackend) HFlip(img vision.Image) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	return vision.NewGrid(imaging.FlipH(g.Img)), nil
}

// VFlip mirrors top to bottom.
func (b *GridBackend) VFlip(img vision.Image) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	return vision.NewGrid(imaging.FlipV(g.Img)), nil
}

// ToGrayscale converts to luminance with ITU-R 601 integer weights.
// One output channel yields a gray image; three replicate the luminance.
func (b *GridBackend) ToGrayscale(img vision.Image, numOutputChannels int) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	src := imaging.Clone(g.Img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	if numOutputChannels == 1 {
		dst := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := src.NRGBAAt(x, y)
				dst.SetGray(x, y, color.Gray{Y: luma601(c)})
			}
		}
		return vision.NewGrid(dst), nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.NRGBAAt(x, y)
			l := luma601(c)
			dst.SetNRGBA(x, y, color.NRGBA{R: l, G: l, B: l, A: c.A})
		}
	}
	return vision.NewGrid(dst), nil
}

func luma601(c color.NRGBA) uint8 {
	return uint8((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)) / 1000)
}

// Normalize is handled by the engine for grid images, which converts them
// to a float representation first.
func (b *GridBackend) Normalize(vision.Image, []float64, []float64, vision.Layout, bool) (vision.Image, error) {
	return nil, fmt.Errorf("%w: normalize needs a float representation", vision.ErrUnsupportedType)
}

// Erase replaces the box at (top, left) with the fill value. Grid images
// always copy; the inplace flag has no effect here.
func (b *GridBackend) Erase(img vision.Image, top, left, height, width int, value []float64, _ bool) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	dst := imaging.Clone(g.Img)
	fc := fillColor(value)
	for y := top; y < top+height; y++ {
		for x := left; x < left+width; x++ {
			if x >= 0 && x < dst.Rect.Dx() && y >= 0 && y < dst.Rect.Dy() {
				dst.SetNRGBA(x, y, fc)
			}
		}
	}
	return vision.NewGrid(dst), nil
}

// ToTensor converts the pixel grid to a float32 tensor scaled to [0, 1].
func (b *GridBackend) ToTensor(img vision.Image, layout vision.Layout) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	src := imaging.Clone(g.Img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	data := make([]float32, 3*h*w)
	var shape vision.Shape
	if layout == vision.CHW {
		shape = vision.Shape{3, h, w}
	} else {
		shape = vision.Shape{h, w, 3}
	}
	out, err := vision.NewTensor(data, shape, layout)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.NRGBAAt(x, y)
			out.Set(0, y, x, float32(c.R)/255)
			out.Set(1, y, x, float32(c.G)/255)
			out.Set(2, y, x, float32(c.B)/255)
		}
	}
	return out, nil
}
