package vision

import "fmt"

// Affine applies an affine transformation. The angle is in degrees,
// clockwise. Shear accepts a bare number (x-axis only), a 1-element
// sequence (both axes) or a 2-element sequence. The rotation center
// defaults to the image's geometric center, computed in the convention of
// the backend owning the image.
func (e *Engine) Affine(v any, angle float64, translate []float64, scale float64, shear any, opts AffineOptions) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}

	tr, err := NormalizeTranslate(translate)
	if err != nil {
		return nil, fmt.Errorf("affine: %w", err)
	}
	if err := NormalizeScale(scale); err != nil {
		return nil, fmt.Errorf("affine: %w", err)
	}
	sh, err := NormalizeShear(shear)
	if err != nil {
		return nil, fmt.Errorf("affine: %w", err)
	}
	center, err := NormalizeCenter(opts.Center)
	if err != nil {
		return nil, fmt.Errorf("affine: %w", err)
	}
	fill, err := NormalizeFill(opts.Fill, channelCount(img))
	if err != nil {
		return nil, fmt.Errorf("affine: %w", err)
	}

	m, err := e.inverseAffineFor(img, b.Convention(), center, angle, tr, scale, sh)
	if err != nil {
		return nil, fmt.Errorf("affine: %w", err)
	}
	return b.Affine(img, m, orDefault(opts.Interpolation, Nearest), fill)
}

// inverseAffineFor re-parameterizes the logical center into the backend's
// coordinate convention and builds the inverse matrix. The same logical
// center must be recomputed per backend: reversed-axis backends read their
// width and height swapped, and midpoint-relative backends take the center
// as an offset from the image midpoint.
//
// The default center is the un-offset midpoint (w*0.5, h*0.5), not the
// pixel-center-offset one, so a 90 degree rotation lines up with an
// independently resampled rotation instead of drifting by half a pixel.
func (e *Engine) inverseAffineFor(img Image, conv Convention, center *Point, angle float64, translate [2]float64, scale float64, shear [2]float64) (AffineMatrix, error) {
	w, h := img.Size()
	if conv.ReversedAxes {
		w, h = h, w
	}

	var c Point
	switch {
	case conv.CenterRelative:
		if center != nil {
			c = Point{X: center.X - float64(w)*0.5, Y: center.Y - float64(h)*0.5}
		}
	case center != nil:
		c = *center
	default:
		c = Point{X: float64(w) * 0.5, Y: float64(h) * 0.5}
	}

	return BuildInverseAffine(c, angle, translate, scale, shear)
}

// Rotate rotates the image by angle degrees counter-clockwise, the
// opposite direction from Affine; both conventions are deliberate. With
// expand the output canvas grows to the bounding box of the rotated image;
// expansion assumes rotation about the center and no translation.
func (e *Engine) Rotate(v any, angle float64, opts RotateOptions) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	center, err := NormalizeCenter(opts.Center)
	if err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}
	fill, err := NormalizeFill(opts.Fill, channelCount(img))
	if err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}
	return b.Rotate(img, angle, orDefault(opts.Interpolation, Nearest), opts.Expand, center, fill)
}

// Perspective warps the image so the four start corners map onto the end
// corners. Both point sets are ordered (top-left, top-right, bottom-right,
// bottom-left); the ordering is a caller contract and is not validated.
// Inconsistently ordered points produce a plausible but wrong transform.
func (e *Engine) Perspective(v any, startPoints, endPoints []Point, opts PerspectiveOptions) (Image, error) {
	img, b, err := e.backendFor(v)
	if err != nil {
		return nil, err
	}
	start, err := NormalizePoints(startPoints)
	if err != nil {
		return nil, fmt.Errorf("perspective: %w", err)
	}
	end, err := NormalizePoints(endPoints)
	if err != nil {
		return nil, fmt.Errorf("perspective: %w", err)
	}
	fill, err := NormalizeFill(opts.Fill, channelCount(img))
	if err != nil {
		return nil, fmt.Errorf("perspective: %w", err)
	}
	coeffs, err := SolvePerspective(start, end)
	if err != nil {
		return nil, fmt.Errorf("perspective: %w", err)
	}
	return b.Perspective(img, coeffs, orDefault(opts.Interpolation, Nearest), fill)
}
