package tensor

import (
	"fmt"
	"math"

	"github.com/warp-ml/warp/internal/vision"
)

// Tensor color math assumes unit sample range, the range ToTensor scales
// pixel grids into.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mapSamples(t *vision.Tensor, f func(v float32) float32) *vision.Tensor {
	out := t.Clone()
	data := out.Data()
	for i, v := range data {
		data[i] = f(v)
	}
	return out
}

// AdjustBrightness scales every sample by factor.
func (b *TensorBackend) AdjustBrightness(img vision.Image, factor float64) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	f := float32(factor)
	return mapSamples(t, func(v float32) float32 { return clamp01(v * f) }), nil
}

// AdjustContrast blends every sample with the image's mean luminance.
func (b *TensorBackend) AdjustContrast(img vision.Image, factor float64) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	w, h := t.Size()
	var sum float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum += float64(luma(t, y, x))
		}
	}
	mean := float32(sum / float64(w*h))
	f := float32(factor)
	return mapSamples(t, func(v float32) float32 { return clamp01(mean + f*(v-mean)) }), nil
}

// AdjustSaturation blends every pixel with its own luminance. Requires a
// three-channel tensor.
func (b *TensorBackend) AdjustSaturation(img vision.Image, factor float64) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	if t.Channels() != 3 {
		return nil, fmt.Errorf("%w: saturation adjustment requires 3 channels, got %d", vision.ErrInvalidArgument, t.Channels())
	}
	w, h := t.Size()
	f := float32(factor)
	out := t.Clone()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := luma(t, y, x)
			for c := 0; c < 3; c++ {
				out.Set(c, y, x, clamp01(l+f*(t.At(c, y, x)-l)))
			}
		}
	}
	return out, nil
}

// AdjustHue cyclically shifts the hue channel by factor of a full turn.
// Requires a three-channel tensor.
func (b *TensorBackend) AdjustHue(img vision.Image, factor float64) (vision.Image, error) {
	t, err := asTensor(img)
	if err != nil {
		return nil, err
	}
	if t.Channels() != 3 {
		return nil, fmt.Errorf("%w: hue adjustment requires 3 channels, got %d", vision.ErrInvalidArgument, t.Channels())
	}
	w, h := t.Size()
	out := t.Clone()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hh, s, v := rgbToHSV(float64(t.At(0, y, x)), float64(t.At(1, y, x)), float64(t.At(2, y, x)))
			hh = math.Mod(hh+factor+1, 1)
			r, g, bl := hsvToRGB(hh, s, v)
			out.Set(0, y, x, clamp01(float32(r)))
			out.Set(1, y, x, clamp01(float32(g)))
			out.Set(2, y, x, clamp01(float32(bl)))
		}
	}
	return out, nil
}

func rgbToHSV(r, g, b float64) (float64, float64, float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v := max
	d := max - min

	var s float64
	if max > 0 {
		s = d / max
	}
	if d == 0 {
		return 0, s, v
	}

	var h float64
	switch max {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6
	if h < 0 {
		h++
	}
	return h, s, v
}

func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	switch i % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
