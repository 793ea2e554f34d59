// Copyright 2026 Warp ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vision provides backend-agnostic geometric image transforms.
//
// # Overview
//
// The engine accepts images in three representations and guarantees they
// all see the same real-world geometry:
//   - grid images: standard library image.Image values
//   - array images: H×W or H×W×C float64 sample buffers
//   - tensor images: C×H×W or H×W×C float32 buffers
//
// Every operation classifies its input, normalizes the parameters into one
// canonical form, derives the transform matrix in the coordinate convention
// of the backend owning that representation, and dispatches the resampling
// to it. The result keeps the input's representation kind.
//
// # Basic Usage
//
//	import "github.com/warp-ml/warp/vision"
//
//	func main() {
//	    img, _, _ := image.Decode(r)
//	    rotated, err := vision.Rotate(img, 90, vision.RotateOptions{Expand: true})
//	    ...
//	    out, err := vision.Affine(img, 45, []float64{0, 0}, 0.5, []float64{-10, 10}, vision.AffineOptions{})
//	}
//
// # Errors
//
// Validation failures surface as ErrUnsupportedType (unrecognized image
// representation, checked first), ErrInvalidArgument (malformed parameter)
// or ErrSingularTransform (non-invertible shear). Match them with
// errors.Is.
//
// # Concurrency
//
// All operations are pure computations without shared mutable state;
// concurrent calls need no coordination. The one caveat is the Erase
// inplace flag, under which the result aliases the mutated input buffer.
package vision
