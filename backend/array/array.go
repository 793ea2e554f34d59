// Copyright 2026 Warp ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array provides the backend for float64 sample-buffer images in
// row-major H×W or H×W×C order.
//
// The array backend reads its geometry with reversed axes and samples at
// integer coordinates, rounding half away from zero for nearest-neighbor
// lookups.
package array

import (
	internalarray "github.com/warp-ml/warp/internal/backend/array"
	"github.com/warp-ml/warp/vision"
)

// Backend operates on array images.
type Backend = internalarray.ArrayBackend

// Compile-time check that Backend implements vision.Backend.
var _ vision.Backend = (*Backend)(nil)

// New creates an array backend.
func New() *Backend {
	return internalarray.New()
}
