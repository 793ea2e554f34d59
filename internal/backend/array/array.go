// Package array implements the raw sample-buffer backend: H×W or H×W×C
// float64 buffers resampled with pure Go loops.
package array

import (
	"fmt"
	"math"

	"github.com/warp-ml/warp/internal/vision"
)

// ArrayBackend resamples array images. It is stateless.
type ArrayBackend struct{}

// New creates the array backend.
func New() *ArrayBackend { return &ArrayBackend{} }

// Kind returns vision.ArrayKind.
func (b *ArrayBackend) Kind() vision.Kind { return vision.ArrayKind }

// Convention returns the array coordinate convention: width and height are
// read in reverse axis order when deriving geometric defaults.
func (b *ArrayBackend) Convention() vision.Convention {
	return vision.Convention{ReversedAxes: true}
}

func asArray(img vision.Image) (*vision.Array, error) {
	a, ok := img.(*vision.Array)
	if !ok {
		return nil, fmt.Errorf("%w: array backend received a %s image", vision.ErrUnsupportedType, img.Kind())
	}
	return a, nil
}

// newLike allocates an empty array with the same rank and channel count as
// a but a new height and width.
func newLike(a *vision.Array, h, w int) *vision.Array {
	shape := vision.Shape{h, w}
	if len(a.Shape()) == 3 {
		shape = vision.Shape{h, w, a.Shape()[2]}
	}
	out, _ := vision.NewArray(make([]float64, shape.NumElements()), shape)
	return out
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

// reflectIndex maps an out-of-range index back into [0, n) by reflection,
// with or without repeating the edge sample.
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

// Resize resamples to height×width. Nearest and bilinear are supported.
func (b *ArrayBackend) Resize(img vision.Image, height, width int, interp vision.Interpolation) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	if interp != vision.Nearest && interp != vision.Bilinear {
		return nil, fmt.Errorf("%w: interpolation %q not supported by the array backend", vision.ErrInvalidArgument, interp)
	}
	w, h := a.Size()
	ch := a.Channels()
	out := newLike(a, height, width)

	scaleX := float64(w) / float64(width)
	scaleY := float64(h) / float64(height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if interp == vision.Nearest {
				sx := clampIndex(int(float64(x)*scaleX), w)
				sy := clampIndex(int(float64(y)*scaleY), h)
				for c := 0; c < ch; c++ {
					out.Set(y, x, c, a.At(sy, sx, c))
				}
				continue
			}
			sx := (float64(x)+0.5)*scaleX - 0.5
			sy := (float64(y)+0.5)*scaleY - 0.5
			x0, y0 := int(math.Floor(sx)), int(math.Floor(sy))
			fx, fy := sx-float64(x0), sy-float64(y0)
			x1, y1 := clampIndex(x0+1, w), clampIndex(y0+1, h)
			x0, y0 = clampIndex(x0, w), clampIndex(y0, h)
			for c := 0; c < ch; c++ {
				top := a.At(y0, x0, c)*(1-fx) + a.At(y0, x1, c)*fx
				bot := a.At(y1, x0, c)*(1-fx) + a.At(y1, x1, c)*fx
				out.Set(y, x, c, top*(1-fy)+bot*fy)
			}
		}
	}
	return out, nil
}

// Pad extends the borders by (left, top, right, bottom).
func (b *ArrayBackend) Pad(img vision.Image, padding [4]int, fill []float64, mode vision.PaddingMode) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	w, h := a.Size()
	ch := a.Channels()
	left, top, right, bottom := padding[0], padding[1], padding[2], padding[3]
	out := newLike(a, h+top+bottom, w+left+right)
	nh, nw := h+top+bottom, w+left+right

	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			sx, sy := x-left, y-top
			inside := sx >= 0 && sx < w && sy >= 0 && sy < h
			if !inside {
				switch mode {
				case vision.Constant:
					for c := 0; c < ch; c++ {
						out.Set(y, x, c, fill[c%len(fill)])
					}
					continue
				case vision.Edge:
					sx, sy = clampIndex(sx, w), clampIndex(sy, h)
				case vision.Reflect:
					sx, sy = reflectIndex(sx, w, false), reflectIndex(sy, h, false)
				case vision.Symmetric:
					sx, sy = reflectIndex(sx, w, true), reflectIndex(sy, h, true)
				}
			}
			for c := 0; c < ch; c++ {
				out.Set(y, x, c, a.At(sy, sx, c))
			}
		}
	}
	return out, nil
}

// Crop extracts the box with top-left corner (top, left).
func (b *ArrayBackend) Crop(img vision.Image, top, left, height, width int) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	ch := a.Channels()
	out := newLike(a, height, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < ch; c++ {
				out.Set(y, x, c, a.At(top+y, left+x, c))
			}
		}
	}
	return out, nil
}

// CenterCrop crops the central height×width region.
func (b *ArrayBackend) CenterCrop(img vision.Image, height, width int) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	w, h := a.Size()
	top := int(math.Round(float64(h-height) / 2))
	left := int(math.Round(float64(w-width) / 2))
	return b.Crop(img, top, left, height, width)
}

// HFlip mirrors left to right.
func (b *ArrayBackend) HFlip(img vision.Image) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	w, h := a.Size()
	ch := a.Channels()
	out := newLike(a, h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < ch; c++ {
				out.Set(y, x, c, a.At(y, w-1-x, c))
			}
		}
	}
	return out, nil
}

// VFlip mirrors top to bottom.
func (b *ArrayBackend) VFlip(img vision.Image) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	w, h := a.Size()
	ch := a.Channels()
	out := newLike(a, h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < ch; c++ {
				out.Set(y, x, c, a.At(h-1-y, x, c))
			}
		}
	}
	return out, nil
}

// ToGrayscale converts to luminance. The result keeps rank 3 with 1 or 3
// channels.
func (b *ArrayBackend) ToGrayscale(img vision.Image, numOutputChannels int) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	w, h := a.Size()
	shape := vision.Shape{h, w, numOutputChannels}
	out, _ := vision.NewArray(make([]float64, shape.NumElements()), shape)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := luma(a, y, x)
			for c := 0; c < numOutputChannels; c++ {
				out.Set(y, x, c, l)
			}
		}
	}
	return out, nil
}

func luma(a *vision.Array, y, x int) float64 {
	if a.Channels() < 3 {
		return a.At(y, x, 0)
	}
	return math.Floor((299*a.At(y, x, 0) + 587*a.At(y, x, 1) + 114*a.At(y, x, 2)) / 1000)
}

// Normalize subtracts mean and divides by std per channel. The layout
// names the channel axis of the buffer; toRGB reverses the channel order
// first.
func (b *ArrayBackend) Normalize(img vision.Image, mean, std []float64, layout vision.Layout, toRGB bool) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	shape := a.Shape()
	data := a.Data()
	out := make([]float64, len(data))

	if len(shape) == 2 {
		for i, v := range data {
			out[i] = (v - mean[0]) / std[0]
		}
		res, _ := vision.NewArray(out, shape)
		return res, nil
	}

	var ch, inner int
	if layout == vision.CHW {
		ch = shape[0]
		inner = shape[1] * shape[2]
	} else {
		ch = shape[2]
		inner = 1
	}

	if toRGB {
		// Reverse the channel order before normalizing.
		rev := make([]float64, len(data))
		if layout == vision.CHW {
			for c := 0; c < ch; c++ {
				copy(rev[c*inner:(c+1)*inner], data[(ch-1-c)*inner:(ch-c)*inner])
			}
		} else {
			for i := 0; i < len(data); i += ch {
				for c := 0; c < ch; c++ {
					rev[i+c] = data[i+ch-1-c]
				}
			}
		}
		data = rev
	}

	for i, v := range data {
		var c int
		if layout == vision.CHW {
			c = i / inner
		} else {
			c = i % ch
		}
		out[i] = (v - mean[c]) / std[c]
	}

	res, _ := vision.NewArray(out, shape)
	return res, nil
}

// Erase replaces the box at (top, left) with value. With inplace the input
// buffer is mutated and aliased by the result.
func (b *ArrayBackend) Erase(img vision.Image, top, left, height, width int, value []float64, inplace bool) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	if !inplace {
		a = a.Clone()
	}
	w, h := a.Size()
	ch := a.Channels()
	for y := top; y < top+height && y < h; y++ {
		for x := left; x < left+width && x < w; x++ {
			if y < 0 || x < 0 {
				continue
			}
			for c := 0; c < ch; c++ {
				a.Set(y, x, c, value[c%len(value)])
			}
		}
	}
	return a, nil
}

// ToTensor converts the buffer to float32 in the requested layout, without
// value scaling; the array representation does not carry a source dtype.
func (b *ArrayBackend) ToTensor(img vision.Image, layout vision.Layout) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	w, h := a.Size()
	ch := a.Channels()

	var shape vision.Shape
	if layout == vision.CHW {
		shape = vision.Shape{ch, h, w}
	} else {
		shape = vision.Shape{h, w, ch}
	}
	out, err := vision.NewTensor(make([]float32, shape.NumElements()), shape, layout)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < ch; c++ {
				out.Set(c, y, x, float32(a.At(y, x, c)))
			}
		}
	}
	return out, nil
}
