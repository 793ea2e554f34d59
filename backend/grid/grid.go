// Copyright 2026 Warp ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package grid provides the backend for pixel-grid images backed by
// standard library image values.
//
// The grid backend samples with a half-pixel offset: coordinates address
// pixel centers, and nearest-neighbor lookups truncate toward the origin.
// Only nearest and bilinear interpolation are supported for warps.
package grid

import (
	internalgrid "github.com/warp-ml/warp/internal/backend/grid"
	"github.com/warp-ml/warp/vision"
)

// Backend operates on grid images.
type Backend = internalgrid.GridBackend

// Compile-time check that Backend implements vision.Backend.
var _ vision.Backend = (*Backend)(nil)

// New creates a grid backend.
//
// Example:
//
//	import (
//	    "github.com/warp-ml/warp/backend/grid"
//	    "github.com/warp-ml/warp/vision"
//	)
//
//	func main() {
//	    engine := vision.NewEngine(grid.New())
//	    out, err := engine.Rotate(img, 45, vision.RotateOptions{Expand: true})
//	    _ = out
//	    _ = err
//	}
func New() *Backend {
	return internalgrid.New()
}
