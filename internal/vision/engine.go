package vision

import "fmt"

// Engine routes each operation to the backend owning the image's
// representation kind. It holds no mutable state; concurrent use needs no
// coordination.
type Engine struct {
	backends map[Kind]Backend
}

// NewEngine creates an engine over the given backends, one per kind.
func NewEngine(backends ...Backend) *Engine {
	m := make(map[Kind]Backend, len(backends))
	for _, b := range backends {
		m[b.Kind()] = b
	}
	return &Engine{backends: m}
}

// backendFor classifies v and selects the backend owning its kind.
// Classification runs before any parameter work, so malformed images never
// reach matrix math.
func (e *Engine) backendFor(v any) (Image, Backend, error) {
	img, err := Classify(v)
	if err != nil {
		return nil, nil, err
	}
	b, ok := e.backends[img.Kind()]
	if !ok {
		return nil, nil, fmt.Errorf("%w: no backend for %s images", ErrUnsupportedType, img.Kind())
	}
	return img, b, nil
}

// PadOptions configures Pad. The zero value means a zero constant fill.
type PadOptions struct {
	Fill []float64
	Mode PaddingMode
}

// AffineOptions configures Affine. The zero value means nearest
// interpolation, zero fill and the image-center rotation point.
type AffineOptions struct {
	Interpolation Interpolation
	Fill          []float64
	Center        []float64
}

// RotateOptions configures Rotate. The zero value means nearest
// interpolation, no expansion, zero fill and the image-center rotation
// point.
type RotateOptions struct {
	Interpolation Interpolation
	Expand        bool
	Center        []float64
	Fill          []float64
}

// PerspectiveOptions configures Perspective. The zero value means nearest
// interpolation and zero fill.
type PerspectiveOptions struct {
	Interpolation Interpolation
	Fill          []float64
}

func orDefault(interp, def Interpolation) Interpolation {
	if interp == "" {
		return def
	}
	return interp
}

// channelCount reports the logical channel count used to broadcast fill
// and per-channel statistics. Grid images are treated as three-channel.
func channelCount(img Image) int {
	switch im := img.(type) {
	case *Array:
		return im.Channels()
	case *Tensor:
		return im.Channels()
	default:
		return 3
	}
}

// gridToArray converts a grid image to a float array image in H×W×C order
// with samples in [0, 255]. Normalize uses it because its output is
// float-valued and cannot live in a pixel grid.
func gridToArray(g *Grid) *Array {
	b := g.Img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]float64, h*w*3)
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, gr, bl, _ := g.Img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			data[i] = float64(r >> 8)
			data[i+1] = float64(gr >> 8)
			data[i+2] = float64(bl >> 8)
			i += 3
		}
	}
	arr, _ := NewArray(data, Shape{h, w, 3})
	return arr
}
