package vision

import "fmt"

// Interpolation names a resampling method. Support varies per backend;
// an unsupported name is reported by the backend itself.
type Interpolation string

// Interpolation methods.
const (
	Nearest  Interpolation = "nearest"
	Bilinear Interpolation = "bilinear"
	Bicubic  Interpolation = "bicubic"
	Area     Interpolation = "area"
	Lanczos  Interpolation = "lanczos"
	Hamming  Interpolation = "hamming"
	Box      Interpolation = "box"
)

// PaddingMode names a border extension rule for Pad.
type PaddingMode string

// Padding modes.
const (
	Constant  PaddingMode = "constant"
	Edge      PaddingMode = "edge"
	Reflect   PaddingMode = "reflect"
	Symmetric PaddingMode = "symmetric"
)

// Point is a pixel coordinate with origin at the top-left corner.
type Point struct {
	X, Y float64
}

// NormalizePadding canonicalizes border widths to (left, top, right, bottom).
// One value pads all four sides, two values pad (left/right, top/bottom),
// four values pad each side independently.
func NormalizePadding(padding []int) ([4]int, error) {
	switch len(padding) {
	case 1:
		p := padding[0]
		return [4]int{p, p, p, p}, nil
	case 2:
		return [4]int{padding[0], padding[1], padding[0], padding[1]}, nil
	case 4:
		return [4]int{padding[0], padding[1], padding[2], padding[3]}, nil
	default:
		return [4]int{}, fmt.Errorf("%w: padding must contain 1, 2 or 4 values, got %d", ErrInvalidArgument, len(padding))
	}
}

// NormalizeShear canonicalizes a shear argument to (x, y) degrees.
// A bare scalar shears the x-axis only; a 1-element sequence is broadcast
// to both axes; a 2-element sequence is taken as (x, y).
func NormalizeShear(shear any) ([2]float64, error) {
	switch s := shear.(type) {
	case nil:
		return [2]float64{0, 0}, nil
	case int:
		return [2]float64{float64(s), 0}, nil
	case float64:
		return [2]float64{s, 0}, nil
	case [2]float64:
		return s, nil
	case []int:
		fs := make([]float64, len(s))
		for i, v := range s {
			fs[i] = float64(v)
		}
		return normalizeShearSeq(fs)
	case []float64:
		return normalizeShearSeq(s)
	default:
		return [2]float64{}, fmt.Errorf("%w: shear must be a number or a sequence, got %T", ErrInvalidArgument, shear)
	}
}

func normalizeShearSeq(s []float64) ([2]float64, error) {
	switch len(s) {
	case 1:
		return [2]float64{s[0], s[0]}, nil
	case 2:
		return [2]float64{s[0], s[1]}, nil
	default:
		return [2]float64{}, fmt.Errorf("%w: shear must contain 1 or 2 values, got %d", ErrInvalidArgument, len(s))
	}
}

// NormalizeTranslate requires exactly two components.
func NormalizeTranslate(translate []float64) ([2]float64, error) {
	if len(translate) != 2 {
		return [2]float64{}, fmt.Errorf("%w: translate must contain 2 values, got %d", ErrInvalidArgument, len(translate))
	}
	return [2]float64{translate[0], translate[1]}, nil
}

// NormalizeScale rejects non-positive scale factors; a zero or negative
// scale is geometrically degenerate.
func NormalizeScale(scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidArgument, scale)
	}
	return nil
}

// NormalizeCenter accepts an optional 2-element point. A nil center means
// the backend-convention geometric center is used.
func NormalizeCenter(center []float64) (*Point, error) {
	if center == nil {
		return nil, nil
	}
	if len(center) != 2 {
		return nil, fmt.Errorf("%w: center must contain 2 values, got %d", ErrInvalidArgument, len(center))
	}
	return &Point{X: center[0], Y: center[1]}, nil
}

// NormalizeFill broadcasts a fill value over channels. A single value fills
// every channel; an explicit sequence must match the channel count.
func NormalizeFill(fill []float64, channels int) ([]float64, error) {
	if channels < 1 {
		channels = 1
	}
	switch len(fill) {
	case 0:
		return make([]float64, channels), nil
	case 1:
		out := make([]float64, channels)
		for i := range out {
			out[i] = fill[0]
		}
		return out, nil
	case channels:
		out := make([]float64, channels)
		copy(out, fill)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: fill must contain 1 or %d values, got %d", ErrInvalidArgument, channels, len(fill))
	}
}

// NormalizeSize canonicalizes a target size. A single value names the
// target short side (aspect ratio preserved); two values are (height, width).
func NormalizeSize(size []int) (height, width int, short bool, err error) {
	switch len(size) {
	case 1:
		if size[0] <= 0 {
			return 0, 0, false, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidArgument, size[0])
		}
		return size[0], size[0], true, nil
	case 2:
		if size[0] <= 0 || size[1] <= 0 {
			return 0, 0, false, fmt.Errorf("%w: size must be positive, got %v", ErrInvalidArgument, size)
		}
		return size[0], size[1], false, nil
	default:
		return 0, 0, false, fmt.Errorf("%w: size must contain 1 or 2 values, got %d", ErrInvalidArgument, len(size))
	}
}

// NormalizePoints requires exactly four corner points in
// (top-left, top-right, bottom-right, bottom-left) order. The ordering
// itself is a caller contract and is not validated.
func NormalizePoints(points []Point) ([4]Point, error) {
	if len(points) != 4 {
		return [4]Point{}, fmt.Errorf("%w: expected 4 corner points, got %d", ErrInvalidArgument, len(points))
	}
	return [4]Point{points[0], points[1], points[2], points[3]}, nil
}

// NormalizeChannelStats broadcasts per-channel mean or std values.
func NormalizeChannelStats(name string, vals []float64, channels int) ([]float64, error) {
	switch len(vals) {
	case 1:
		out := make([]float64, channels)
		for i := range out {
			out[i] = vals[0]
		}
		return out, nil
	case channels:
		out := make([]float64, channels)
		copy(out, vals)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s must contain 1 or %d values, got %d", ErrInvalidArgument, name, channels, len(vals))
	}
}
