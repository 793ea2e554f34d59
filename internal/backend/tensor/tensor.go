// Package tensor implements the device-tensor backend: rank-3 float32
// buffers in CHW or HWC layout, resampled in midpoint-relative coordinates
// the way grid-generator samplers do.
package tensor

import (
	"fmt"
	"math"

	"github.com/warp-ml/warp/internal/vision"
)

// TensorBackend resamples tensor images. It is stateless.
type TensorBackend struct{}

// New creates the tensor backend.
func New() *TensorBackend { return &TensorBackend{} }

// Kind returns vision.TensorKind.
func (b *TensorBackend) Kind() vision.Kind { return vision.TensorKind }

// Convention returns the tensor coordinate convention: width and height
// read in reverse axis order, center taken as an offset from the image
// midpoint.
func (b *TensorBackend) Convention() vision.Convention {
	return vision.Convention{ReversedAxes: true, CenterRelative: true}
}

func asTensor(img vision.Image) (*vision.Tensor, error) {
	t, ok := img.(*vision.Tensor)
	if !ok {
		return nil, fmt.Errorf("%w: tensor backend received a %s image", vision.ErrUnsupportedType, img.Kind())
	}
	return t, nil
}

// newLike allocates an empty tensor with the same layout and channel count
// as t but a new height and width.
func newLike(t *vision.Tensor, h, w int) *vision.Tensor {
	ch := t.Channels()
	shape := vision.Shape{ch, h, w}
	if t.Layout() == vision.HWC {
		shape = vision.Shape{h, w, ch}
	}
	out, _ := vision.NewTensor(make([]float32, shape.NumElements()), shape, t.Layout())
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
func (b *TensorBackend) Resize(img vision.Image, height, width int, interp vision.Interpolation) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	if interp != vision.Nearest && interp != vision.Bilinear {
		return nil, fmt.Errorf("%w: interpolation %q not supported by the tensor backend", vision.ErrInvalidArgument, interp)
	}
	w, h := t.Size()
	ch := t.Channels()
	out := newLike(t, height, width)

	scaleX := float64(w) / float64(width)
	scaleY := float64(h) / float64(height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if interp == vision.Nearest {
				sx := clampIndex(int(float64(x)*scaleX), w)
				sy := clampIndex(int(float64(y)*scaleY), h)
				for c := 0; c < ch; c++ {
					out.Set(c, y, x, t.At(c, sy, sx))
				}
				continue
			}
			sx := (float64(x)+0.5)*scaleX - 0.5
			sy := (float64(y)+0.5)*scaleY - 0.5
			x0, y0 := int(math.Floor(sx)), int(math.Floor(sy))
			fx, fy := float32(sx-float64(x0)), float32(sy-float64(y0))
			x1, y1 := clampIndex(x0+1, w), clampIndex(y0+1, h)
			x0, y0 = clampIndex(x0, w), clampIndex(y0, h)
			for c := 0; c < ch; c++ {
				top := t.At(c, y0, x0)*(1-fx) + t.At(c, y0, x1)*fx
				bot := t.At(c, y1, x0)*(1-fx) + t.At(c, y1, x1)*fx
				out.Set(c, y, x, top*(1-fy)+bot*fy)
			}
		}
	}
	return out, nil
}

// Pad extends the borders by (left, top, right, bottom).
func (b *TensorBackend) Pad(img vision.Image, padding [4]int, fill []float64, mode vision.PaddingMode) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	w, h := t.Size()
	ch := t.Channels()
	left, top, right, bottom := padding[0], padding[1], padding[2], padding[3]
	nh, nw := h+top+bottom, w+left+right
	out := newLike(t, nh, nw)

	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			sx, sy := x-left, y-top
			inside := sx >= 0 && sx < w && sy >= 0 && sy < h
			if !inside {
				switch mode {
				case vision.Constant:
					for c := 0; c < ch; c++ {
						out.Set(c, y, x, float32(fill[c%len(fill)]))
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
				out.Set(c, y, x, t.At(c, sy, sx))
			}
		}
	}
	return out, nil
}

// Crop extracts the box with top-left corner (top, left).
func (b *TensorBackend) Crop(img vision.Image, top, left, height, width int) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	ch := t.Channels()
	out := newLike(t, height, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < ch; c++ {
				out.Set(c, y, x, t.At(c, top+y, left+x))
			}
		}
	}
	return out, nil
}

// CenterCrop crops the central height×width region.
func (b *TensorBackend) CenterCrop(img vision.Image, height, width int) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	w, h := t.Size()
	top := int(math.Round(float64(h-height) / 2))
	left := int(math.Round(float64(w-width) / 2))
	return b.Crop(img, top, left, height, width)
}

// HFlip mirrors left to right.
func (b *TensorBackend) HFlip(img vision.Image) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	w, h := t.Size()
	ch := t.Channels()
	out := newLike(t, h, w)
	for c := 0; c < ch; c++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(c, y, x, t.At(c, y, w-1-x))
			}
		}
	}
	return out, nil
}

// VFlip mirrors top to bottom.
func (b *TensorBackend) VFlip(img vision.Image) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	w, h := t.Size()
	ch := t.Channels()
	out := newLike(t, h, w)
	for c := 0; c < ch; c++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(c, y, x, t.At(c, h-1-y, x))
			}
		}
	}
	return out, nil
}

// ToGrayscale converts to luminance with 1 or 3 output channels.
func (b *TensorBackend) ToGrayscale(img vision.Image, numOutputChannels int) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	w, h := t.Size()

	shape := vision.Shape{numOutputChannels, h, w}
	if t.Layout() == vision.HWC {
		shape = vision.Shape{h, w, numOutputChannels}
	}
	out, _ := vision.NewTensor(make([]float32, shape.NumElements()), shape, t.Layout())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := luma(t, y, x)
			for c := 0; c < numOutputChannels; c++ {
				out.Set(c, y, x, l)
			}
		}
	}
	return out, nil
}

func luma(t *vision.Tensor, y, x int) float32 {
	if t.Channels() < 3 {
		return t.At(0, y, x)
	}
	return 0.299*t.At(0, y, x) + 0.587*t.At(1, y, x) + 0.114*t.At(2, y, x)
}

// Normalize subtracts mean and divides by std per channel. The channel
// axis comes from the tensor's own layout; toRGB does not apply to tensor
// images and is ignored.
func (b *TensorBackend) Normalize(img vision.Image, mean, std []float64, _ vision.Layout, _ bool) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	w, h := t.Size()
	ch := t.Channels()
	out := t.Clone()
	for c := 0; c < ch; c++ {
		m, s := float32(mean[c]), float32(std[c])
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(c, y, x, (t.At(c, y, x)-m)/s)
			}
		}
	}
	return out, nil
}

// Erase replaces the box at (top, left) with value. With inplace the input
// buffer is mutated and aliased by the result.
func (b *TensorBackend) Erase(img vision.Image, top, left, height, width int, value []float64, inplace bool) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	if !inplace {
		t = t.Clone()
	}
	w, h := t.Size()
	ch := t.Channels()
	for y := top; y < top+height && y < h; y++ {
		for x := left; x < left+width && x < w; x++ {
			if y < 0 || x < 0 {
				continue
			}
			for c := 0; c < ch; c++ {
				t.Set(c, y, x, float32(value[c%len(value)]))
			}
		}
	}
	return t, nil
}

// ToTensor returns the tensor unchanged when the layout already matches,
// otherwise a transposed copy.
func (b *TensorBackend) ToTensor(img vision.Image, layout vision.Layout) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	if layout == t.Layout() {
		return t, nil
	}
	w, h := t.Size()
	ch := t.Channels()

	shape := vision.Shape{ch, h, w}
	if layout == vision.HWC {
		shape = vision.Shape{h, w, ch}
	}
	out, err := vision.NewTensor(make([]float32, shape.NumElements()), shape, layout)
	if err != nil {
		return nil, err
	}
	for c := 0; c < ch; c++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(c, y, x, t.At(c, y, x))
			}
		}
	}
	return out, nil
}
