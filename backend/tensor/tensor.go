// Copyright 2026 Warp ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the backend for rank-3 float32 tensor images in
// CHW or HWC layout.
//
// The tensor backend reads its geometry with reversed axes and works in a
// midpoint-relative coordinate frame: rotation centers are offsets from
// the image midpoint, and warp sampling translates destination
// coordinates into that frame before mapping.
package tensor

import (
	internaltensor "github.com/warp-ml/warp/internal/backend/tensor"
	"github.com/warp-ml/warp/vision"
)

// Backend operates on tensor images.
type Backend = internaltensor.TensorBackend

// Compile-time check that Backend implements vision.Backend.
var _ vision.Backend = (*Backend)(nil)

// New creates a tensor backend.
func New() *Backend {
	return internaltensor.New()
}
