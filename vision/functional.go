// Copyright 2026 Warp ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package vision

import (
	arraybackend "github.com/warp-ml/warp/internal/backend/array"
	gridbackend "github.com/warp-ml/warp/internal/backend/grid"
	tensorbackend "github.com/warp-ml/warp/internal/backend/tensor"
	"github.com/warp-ml/warp/internal/vision"
)

// Default is the engine wired with the three standard backends. The
// package-level operations below go through it.
var Default = vision.NewEngine(gridbackend.New(), arraybackend.New(), tensorbackend.New())

// Resize resamples the image to the given size. A single size value names
// the target short side with the aspect ratio preserved; two values are
// (height, width). The default interpolation is bilinear.
func Resize(img any, size []int, interp Interpolation) (Image, error) {
	return Default.Resize(img, size, interp)
}

// Pad extends the image borders. One padding value pads all four sides,
// two pad (left/right, top/bottom), four pad (left, top, right, bottom).
func Pad(img any, padding []int, opts PadOptions) (Image, error) {
	return Default.Pad(img, padding, opts)
}

// Crop extracts the height×width region whose top-left corner is at
// (top, left).
func Crop(img any, top, left, height, width int) (Image, error) {
	return Default.Crop(img, top, left, height, width)
}

// CenterCrop crops the central region of the given output size.
func CenterCrop(img any, size []int) (Image, error) {
	return Default.CenterCrop(img, size)
}

// HFlip mirrors the image left to right.
func HFlip(img any) (Image, error) { return Default.HFlip(img) }

// VFlip mirrors the image top to bottom.
func VFlip(img any) (Image, error) { return Default.VFlip(img) }

// AdjustBrightness scales pixel intensity by a non-negative factor.
func AdjustBrightness(img any, factor float64) (Image, error) {
	return Default.AdjustBrightness(img, factor)
}

// AdjustContrast blends the image with its mean gray by a non-negative
// factor.
func AdjustContrast(img any, factor float64) (Image, error) {
	return Default.AdjustContrast(img, factor)
}

// AdjustSaturation blends the image with its grayscale version by a
// non-negative factor.
func AdjustSaturation(img any, factor float64) (Image, error) {
	return Default.AdjustSaturation(img, factor)
}

// AdjustHue cyclically shifts the hue channel by a factor in [-0.5, 0.5].
func AdjustHue(img any, factor float64) (Image, error) {
	return Default.AdjustHue(img, factor)
}

// Affine applies an affine transformation: angle degrees clockwise,
// translation, positive scale and per-axis shear. Shear accepts a bare
// number, a 1-element or a 2-element sequence.
func Affine(img any, angle float64, translate []float64, scale float64, shear any, opts AffineOptions) (Image, error) {
	return Default.Affine(img, angle, translate, scale, shear, opts)
}

// Rotate rotates the image by angle degrees counter-clockwise.
func Rotate(img any, angle float64, opts RotateOptions) (Image, error) {
	return Default.Rotate(img, angle, opts)
}

// Perspective warps the image so the four start corners map onto the end
// corners, both ordered (top-left, top-right, bottom-right, bottom-left).
func Perspective(img any, startPoints, endPoints []Point, opts PerspectiveOptions) (Image, error) {
	return Default.Perspective(img, startPoints, endPoints, opts)
}

// ToGrayscale converts the image to grayscale with 1 or 3 output channels.
func ToGrayscale(img any, numOutputChannels int) (Image, error) {
	return Default.ToGrayscale(img, numOutputChannels)
}

// Normalize subtracts mean and divides by std per channel.
func Normalize(img any, mean, std []float64, layout Layout, toRGB bool) (Image, error) {
	return Default.Normalize(img, mean, std, layout, toRGB)
}

// Erase replaces the height×width region at (top, left) with value.
func Erase(img any, top, left, height, width int, value []float64, inplace bool) (Image, error) {
	return Default.Erase(img, top, left, height, width, value, inplace)
}

// ToTensor converts the image to a tensor image in the given layout.
func ToTensor(img any, layout Layout) (Image, error) {
	return Default.ToTensor(img, layout)
}
