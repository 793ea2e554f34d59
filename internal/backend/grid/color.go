package grid

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/warp-ml/warp/internal/vision"
)

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// mapPixels applies f to every pixel, preserving alpha.
func mapPixels(src *image.NRGBA, f func(r, g, b float64) (float64, float64, float64)) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.NRGBAAt(x, y)
			r, g, bl := f(float64(c.R), float64(c.G), float64(c.B))
			dst.SetNRGBA(x, y, color.NRGBA{R: clamp255(r), G: clamp255(g), B: clamp255(bl), A: c.A})
		}
	}
	return dst
}

// AdjustBrightness scales every channel by factor.
func (b *GridBackend) AdjustBrightness(img vision.Image, factor float64) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	out := mapPixels(imaging.Clone(g.Img), func(r, gr, bl float64) (float64, float64, float64) {
		return r * factor, gr * factor, bl * factor
	})
	return vision.NewGrid(out), nil
}

// AdjustContrast blends every channel with the image's mean luminance.
func (b *GridBackend) AdjustContrast(img vision.Image, factor float64) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	src := imaging.Clone(g.Img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	var sum float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum += float64(luma601(src.NRGBAAt(x, y)))
		}
	}
	mean := math.Round(sum / float64(w*h))

	out := mapPixels(src, func(r, gr, bl float64) (float64, float64, float64) {
		return mean + factor*(r-mean), mean + factor*(gr-mean), mean + factor*(bl-mean)
	})
	return vision.NewGrid(out), nil
}

// AdjustSaturation blends every pixel with its own luminance.
func (b *GridBackend) AdjustSaturation(img vision.Image, factor float64) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	out := mapPixels(imaging.Clone(g.Img), func(r, gr, bl float64) (float64, float64, float64) {
		l := math.Floor((299*r + 587*gr + 114*bl) / 1000)
		return l + factor*(r-l), l + factor*(gr-l), l + factor*(bl-l)
	})
	return vision.NewGrid(out), nil
}

// AdjustHue shifts the hue channel cyclically by factor of a full turn.
func (b *GridBackend) AdjustHue(img vision.Image, factor float64) (vision.Image, error) {
	g, err := asGrid(img)
	if err != nil {
		return nil, err
	}
	out := mapPixels(imaging.Clone(g.Img), func(r, gr, bl float64) (float64, float64, float64) {
		hh, s, v := rgbToHSV(r/255, gr/255, bl/255)
		hh = math.Mod(hh+factor+1, 1)
		nr, ng, nb := hsvToRGB(hh, s, v)
		return nr * 255, ng * 255, nb * 255
	})
	return vision.NewGrid(out), nil
}

// rgbToHSV converts unit-range RGB to (h, s, v) with h in [0, 1).
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

// hsvToRGB converts (h, s, v) with h in [0, 1) back to unit-range RGB.
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
