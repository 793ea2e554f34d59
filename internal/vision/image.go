package vision

import (
	"fmt"
	stdimage "image"
)

// Layout describes the axis order of a tensor-image buffer.
type Layout string

// Supported tensor layouts.
const (
	CHW Layout = "CHW"
	HWC Layout = "HWC"
)

// Image is the closed set of representations the engine operates on.
// Exactly three types implement it: *Grid, *Array and *Tensor.
type Image interface {
	Kind() Kind
	// Size returns the logical (width, height) in pixels.
	Size() (int, int)

	sealed()
}

// Grid is a pixel-grid image backed by a standard library image value.
// Origin is the top-left corner with the (0,0) pixel-center convention.
type Grid struct {
	Img stdimage.Image
}

// NewGrid wraps a standard library image.
func NewGrid(img stdimage.Image) *Grid {
	return &Grid{Img: img}
}

// Kind returns GridKind.
func (g *Grid) Kind() Kind { return GridKind }

// Size returns the (width, height) of the wrapped image.
func (g *Grid) Size() (int, int) {
	b := g.Img.Bounds()
	return b.Dx(), b.Dy()
}

func (g *Grid) sealed() {}

// Array is a raw sample buffer in row-major H×W or H×W×C order.
type Array struct {
	data    []float64
	shape   Shape
	strides []int
}

// NewArray creates an array image over data with the given shape.
// The shape's rank is not restricted here; classification enforces
// the supported ranks.
func NewArray(data []float64, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, got %d",
			ErrInvalidArgument, shape, shape.NumElements(), len(data))
	}
	shape = shape.Clone()
	return &Array{data: data, shape: shape, strides: shape.ComputeStrides()}, nil
}

// Kind returns ArrayKind.
func (a *Array) Kind() Kind { return ArrayKind }

// Shape returns the buffer shape (H, W) or (H, W, C).
func (a *Array) Shape() Shape { return a.shape }

// Size returns the (width, height) of the image.
func (a *Array) Size() (int, int) {
	return a.shape[1], a.shape[0]
}

// Channels returns the channel count (1 for a rank-2 buffer).
func (a *Array) Channels() int {
	if len(a.shape) == 2 {
		return 1
	}
	return a.shape[2]
}

// Data returns the raw sample buffer.
func (a *Array) Data() []float64 { return a.data }

// At returns the sample at row y, column x, channel c.
// For rank-2 buffers c must be 0.
func (a *Array) At(y, x, c int) float64 {
	if len(a.shape) == 2 {
		return a.data[y*a.strides[0]+x]
	}
	return a.data[y*a.strides[0]+x*a.strides[1]+c]
}

// Set stores the sample at row y, column x, channel c.
func (a *Array) Set(y, x, c int, v float64) {
	if len(a.shape) == 2 {
		a.data[y*a.strides[0]+x] = v
		return
	}
	a.data[y*a.strides[0]+x*a.strides[1]+c] = v
}

// Clone returns a deep copy of the array image.
func (a *Array) Clone() *Array {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return &Array{data: data, shape: a.shape.Clone(), strides: append([]int(nil), a.strides...)}
}

func (a *Array) sealed() {}

// Tensor is a device-tensor style image: a rank-3 float32 buffer in
// CHW or HWC layout.
type Tensor struct {
	data    []float32
	shape   Shape
	layout  Layout
	strides []int
}

// NewTensor creates a tensor image over data with the given shape and layout.
func NewTensor(data []float32, shape Shape, layout Layout) (*Tensor, error) {
	if layout != CHW && layout != HWC {
		return nil, fmt.Errorf("%w: layout must be CHW or HWC, got %q", ErrInvalidArgument, layout)
	}
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: tensor image requires a rank-3 shape, got %v", ErrInvalidArgument, shape)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, got %d",
			ErrInvalidArgument, shape, shape.NumElements(), len(data))
	}
	shape = shape.Clone()
	return &Tensor{data: data, shape: shape, layout: layout, strides: shape.ComputeStrides()}, nil
}

// Kind returns TensorKind.
func (t *Tensor) Kind() Kind { return TensorKind }

// Shape returns the buffer shape in the tensor's layout order.
func (t *Tensor) Shape() Shape { return t.shape }

// Layout returns the axis order of the buffer.
func (t *Tensor) Layout() Layout { return t.layout }

// Size returns the (width, height) of the image.
func (t *Tensor) Size() (int, int) {
	if t.layout == CHW {
		return t.shape[2], t.shape[1]
	}
	return t.shape[1], t.shape[0]
}

// Channels returns the channel count.
func (t *Tensor) Channels() int {
	if t.layout == CHW {
		return t.shape[0]
	}
	return t.shape[2]
}

// Data returns the raw sample buffer.
func (t *Tensor) Data() []float32 { return t.data }

// At returns the sample at channel c, row y, column x.
func (t *Tensor) At(c, y, x int) float32 {
	if t.layout == CHW {
		return t.data[c*t.strides[0]+y*t.strides[1]+x]
	}
	return t.data[y*t.strides[0]+x*t.strides[1]+c]
}

// Set stores the sample at channel c, row y, column x.
func (t *Tensor) Set(c, y, x int, v float32) {
	if t.layout == CHW {
		t.data[c*t.strides[0]+y*t.strides[1]+x] = v
		return
	}
	t.data[y*t.strides[0]+x*t.strides[1]+c] = v
}

// Clone returns a deep copy of the tensor image.
func (t *Tensor) Clone() *Tensor {
	data := make([]float32, len(t.data))
	copy(data, t.data)
	return &Tensor{data: data, shape: t.shape.Clone(), layout: t.layout, strides: append([]int(nil), t.strides...)}
}

func (t *Tensor) sealed() {}
