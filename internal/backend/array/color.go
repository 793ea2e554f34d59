package array

import (
	"fmt"
	"math"

	"github.com/warp-ml/warp/internal/vision"
)

// Array color math assumes 8-bit sample range, matching the buffers this
// backend inherits from decoded images.
func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func mapSamples(a *vision.Array, f func(v float64) float64) *vision.Array {
	out := a.Clone()
	data := out.Data()
	for i, v := range data {
		data[i] = f(v)
	}
	return out
}

// AdjustBrightness scales every sample by factor.
func (b *ArrayBackend) AdjustBrightness(img vision.Image, factor float64) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	return mapSamples(a, func(v float64) float64 { return clamp255(v * factor) }), nil
}

// AdjustContrast blends every sample with the image's mean luminance.
func (b *ArrayBackend) AdjustContrast(img vision.Image, factor float64) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	w, h := a.Size()
	var sum float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum += luma(a, y, x)
		}
	}
	mean := math.Round(sum / float64(w*h))
	return mapSamples(a, func(v float64) float64 { return clamp255(mean + factor*(v-mean)) }), nil
}

// AdjustSaturation blends every pixel with its own luminance. Requires a
// three-channel buffer.
func (b *ArrayBackend) AdjustSaturation(img vision.Image, factor float64) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	if a.Channels() != 3 {
		return nil, fmt.Errorf("%w: saturation adjustment requires 3 channels, got %d", vision.ErrInvalidArgument, a.Channels())
	}
	w, h := a.Size()
	out := a.Clone()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := luma(a, y, x)
			for c := 0; c < 3; c++ {
				out.Set(y, x, c, clamp255(l+factor*(a.At(y, x, c)-l)))
			}
		}
	}
	return out, nil
}

// AdjustHue cyclically shifts the hue channel by factor of a full turn.
// Requires a three-channel buffer.
func (b *ArrayBackend) AdjustHue(img vision.Image, factor float64) (vision.Image, error) {
	a, err := asArray(img)
	if err != nil {
		return nil, err
	}
	if a.Channels() != 3 {
		return nil, fmt.Errorf("%w: hue adjustment requires 3 channels, got %d", vision.ErrInvalidArgument, a.Channels())
	}
	w, h := a.Size()
	out := a.Clone()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hh, s, v := rgbToHSV(a.At(y, x, 0)/255, a.At(y, x, 1)/255, a.At(y, x, 2)/255)
			hh = math.Mod(hh+factor+1, 1)
			r, g, bl := hsvToRGB(hh, s, v)
			out.Set(y, x, 0, clamp255(r*255))
			out.Set(y, x, 1, clamp255(g*255))
			out.Set(y, x, 2, clamp255(bl*255))
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
