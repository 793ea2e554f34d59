package vision

import "fmt"

// Resize resamples the image to the given size. A single size value names
// the target short side with the aspect ratio preserved; two values are
// (height, width). The default interpolation is bilinear.
func (e *Engine) Resize(v any, size []int, interp Interpolation) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	oh, ow, short, err := NormalizeSize(size)
	if err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	if short {
		w, h := img.Size()
		s := oh
		if (w <= h && w == s) || (h <= w && h == s) {
			return img, nil
		}
		if w < h {
			ow = s
			oh = int(float64(s) * float64(h) / float64(w))
		} else {
			oh = s
			ow = int(float64(s) * float64(w) / float64(h))
		}
	}
	return b.Resize(img, oh, ow, orDefault(interp, Bilinear))
}

// Pad extends the image borders. Padding accepts 1, 2 or 4 values per the
// normalizer; the default mode is constant with a zero fill.
func (e *Engine) Pad(v any, padding []int, opts PadOptions) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	p, err := NormalizePadding(padding)
	if err != nil {
		return nil, fmt.Errorf("pad: %w", err)
	}
	mode := opts.Mode
	if mode == "" {
		mode = Constant
	}
	switch mode {
	case Constant, Edge, Reflect, Symmetric:
	default:
		return nil, fmt.Errorf("pad: %w: unknown padding mode %q", ErrInvalidArgument, mode)
	}
	fill, err := NormalizeFill(opts.Fill, channelCount(img))
	if err != nil {
		return nil, fmt.Errorf("pad: %w", err)
	}
	return b.Pad(img, p, fill, mode)
}

// Crop extracts the height×width region whose top-left corner is at
// (top, left). (0, 0) is the top-left corner of the image and the box
// must lie entirely within it.
func (e *Engine) Crop(v any, top, left, height, width int) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("crop: %w: crop box must be positive, got %dx%d", ErrInvalidArgument, height, width)
	}
	w, h := img.Size()
	if top < 0 || left < 0 || top+height > h || left+width > w {
		return nil, fmt.Errorf("crop: %w: box (%d,%d)+%dx%d outside %dx%d image",
			ErrInvalidArgument, top, left, height, width, w, h)
	}
	return b.Crop(img, top, left, height, width)
}

// CenterCrop crops the central region of the given output size. A single
// value crops a square.
func (e *Engine) CenterCrop(v any, size []int) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	oh, ow, _, err := NormalizeSize(size)
	if err != nil {
		return nil, fmt.Errorf("center_crop: %w", err)
	}
	w, h := img.Size()
	if oh > h || ow > w {
		return nil, fmt.Errorf("center_crop: %w: output %dx%d larger than %dx%d image",
			ErrInvalidArgument, oh, ow, w, h)
	}
	return b.CenterCrop(img, oh, ow)
}

// HFlip mirrors the image left to right.
func (e *Engine) HFlip(v any) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	return b.HFlip(img)
}

// VFlip mirrors the image top to bottom.
func (e *Engine) VFlip(v any) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	return b.VFlip(img)
}

// AdjustBrightness scales pixel intensity by a non-negative factor.
// 0 gives a black image, 1 the original.
func (e *Engine) AdjustBrightness(v any, factor float64) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	if factor < 0 {
		return nil, fmt.Errorf("adjust_brightness: %w: factor must be non-negative, got %v", ErrInvalidArgument, factor)
	}
	return b.AdjustBrightness(img, factor)
}

// AdjustContrast blends the image with its mean gray by a non-negative
// factor. 0 gives a solid gray image, 1 the original.
func (e *Engine) AdjustContrast(v any, factor float64) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	if factor < 0 {
		return nil, fmt.Errorf("adjust_contrast: %w: factor must be non-negative, got %v", ErrInvalidArgument, factor)
	}
	return b.AdjustContrast(img, factor)
}

// AdjustSaturation blends the image with its grayscale version by a
// non-negative factor. 0 gives a black-and-white image, 1 the original.
func (e *Engine) AdjustSaturation(v any, factor float64) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	if factor < 0 {
		return nil, fmt.Errorf("adjust_saturation: %w: factor must be non-negative, got %v", ErrInvalidArgument, factor)
	}
	return b.AdjustSaturation(img, factor)
}

// AdjustHue cyclically shifts the hue channel. The factor must lie in
// [-0.5, 0.5]; both extremes give complete hue reversal.
func (e *Engine) AdjustHue(v any, factor float64) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	if factor < -0.5 || factor > 0.5 {
		return nil, fmt.Errorf("adjust_hue: %w: factor must be in [-0.5, 0.5], got %v", ErrInvalidArgument, factor)
	}
	return b.AdjustHue(img, factor)
}

// ToGrayscale converts the image to grayscale with 1 or 3 output channels
// (3 replicates the luminance into r = g = b).
func (e *Engine) ToGrayscale(v any, numOutputChannels int) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	if numOutputChannels != 1 && numOutputChannels != 3 {
		return nil, fmt.Errorf("to_grayscale: %w: num_output_channels must be 1 or 3, got %d", ErrInvalidArgument, numOutputChannels)
	}
	return b.ToGrayscale(img, numOutputChannels)
}

// Normalize subtracts mean and divides by std per channel. Grid images are
// converted to float array images first, since the result is float-valued;
// this is the one operation whose output kind can differ from its input.
// toRGB reverses the channel order before normalizing and is ignored for
// tensor images.
func (e *Engine) Normalize(v any, mean, std []float64, layout Layout, toRGB bool) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	if layout == "" {
		layout = CHW
	}
	if layout != CHW && layout != HWC {
		return nil, fmt.Errorf("normalize: %w: layout must be CHW or HWC, got %q", ErrInvalidArgument, layout)
	}
	if g, ok := img.(*Grid); ok {
		img = gridToArray(g)
		b = e.backends[ArrayKind]
		if b == nil {
			return nil, fmt.Errorf("%w: no backend for array images", ErrUnsupportedType)
		}
		layout = HWC
	}
	ch := channelCount(img)
	m, err := NormalizeChannelStats("mean", mean, ch)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	s, err := NormalizeChannelStats("std", std, ch)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return b.Normalize(img, m, s, layout, toRGB)
}

// Erase replaces the height×width region at (top, left) with value,
// broadcast over channels. With inplace the input buffer is mutated and
// aliased by the result; grid images always copy.
func (e *Engine) Erase(v any, top, left, height, width int, value []float64, inplace bool) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("erase: %w: erase box must be positive, got %dx%d", ErrInvalidArgument, height, width)
	}
	val, err := NormalizeFill(value, channelCount(img))
	if err != nil {
		return nil, fmt.Errorf("erase: %w", err)
	}
	return b.Erase(img, top, left, height, width, val, inplace)
}

// ToTensor converts the image to a tensor image in the given layout.
// Grid images are scaled to [0, 1]; array and tensor buffers keep their
// value range.
func (e *Engine) ToTensor(v any, layout Layout) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	if layout == "" {
		layout = CHW
	}
	if layout != CHW && layout != HWC {
		return nil, fmt.Errorf("to_tensor: %w: layout must be CHW or HWC, got %q", ErrInvalidArgument, layout)
	}
	return b.ToTensor(img, layout)
}
