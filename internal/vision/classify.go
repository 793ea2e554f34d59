package vision

import (
	"fmt"
	stdimage "image"
)

// Classify determines which representation a value is. It accepts the three
// Image implementations and bare standard library images (wrapped as grid
// images). Anything else, including array buffers whose rank is not 2 or 3,
// fails with ErrUnsupportedType.
//
// Classification is by representation kind only; pixel values are never
// inspected.
func Classify(v any) (Image, error) {
	switch img := v.(type) {
	case *Grid:
		return img, nil
	case *Array:
		if rank := len(img.Shape()); rank != 2 && rank != 3 {
			return nil, fmt.Errorf("%w: array image must have rank 2 or 3, got rank %d", ErrUnsupportedType, rank)
		}
		return img, nil
	case *Tensor:
		return img, nil
	case stdimage.Image:
		return NewGrid(img), nil
	default:
		return nil, fmt.Errorf("%w: %T is not a grid, array or tensor image", ErrUnsupportedType, v)
	}
}
