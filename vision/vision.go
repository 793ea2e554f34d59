// Copyright 2026 Warp ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package vision

import (
	"github.com/warp-ml/warp/internal/vision"
)

// Type aliases for the public API.

// Image is the closed set of representations the engine operates on.
type Image = vision.Image

// Grid is a pixel-grid image backed by a standard library image value.
type Grid = vision.Grid

// Array is a raw sample buffer in row-major H×W or H×W×C order.
type Array = vision.Array

// Tensor is a rank-3 float32 buffer in CHW or HWC layout.
type Tensor = vision.Tensor

// Kind identifies the representation of an image value.
type Kind = vision.Kind

// Representation kinds.
const (
	GridKind   Kind = vision.GridKind
	ArrayKind  Kind = vision.ArrayKind
	TensorKind Kind = vision.TensorKind
)

// Shape represents the dimensions of a sample buffer.
type Shape = vision.Shape

// Layout describes the axis order of a tensor-image buffer.
type Layout = vision.Layout

// Tensor layouts.
const (
	CHW Layout = vision.CHW
	HWC Layout = vision.HWC
)

// Point is a pixel coordinate with origin at the top-left corner.
type Point = vision.Point

// Interpolation names a resampling method.
type Interpolation = vision.Interpolation

// Interpolation methods. Support varies per backend.
const (
	Nearest  Interpolation = vision.Nearest
	Bilinear Interpolation = vision.Bilinear
	Bicubic  Interpolation = vision.Bicubic
	Area     Interpolation = vision.Area
	Lanczos  Interpolation = vision.Lanczos
	Hamming  Interpolation = vision.Hamming
	Box      Interpolation = vision.Box
)

// PaddingMode names a border extension rule.
type PaddingMode = vision.PaddingMode

// Padding modes.
const (
	Constant  PaddingMode = vision.Constant
	Edge      PaddingMode = vision.Edge
	Reflect   PaddingMode = vision.Reflect
	Symmetric PaddingMode = vision.Symmetric
)

// AffineMatrix holds the six coefficients of the inverse affine mapping.
type AffineMatrix = vision.AffineMatrix

// PerspectiveCoeffs holds the eight projective inverse-mapping coefficients.
type PerspectiveCoeffs = vision.PerspectiveCoeffs

// Backend performs the pixel resampling for one representation kind.
type Backend = vision.Backend

// Convention describes a backend's coordinate convention.
type Convention = vision.Convention

// Engine routes operations to the backend owning an image's kind.
type Engine = vision.Engine

// Option structs.
type (
	// PadOptions configures Pad.
	PadOptions = vision.PadOptions
	// AffineOptions configures Affine.
	AffineOptions = vision.AffineOptions
	// RotateOptions configures Rotate.
	RotateOptions = vision.RotateOptions
	// PerspectiveOptions configures Perspective.
	PerspectiveOptions = vision.PerspectiveOptions
)

// Sentinel errors.
var (
	ErrUnsupportedType   = vision.ErrUnsupportedType
	ErrInvalidArgument   = vision.ErrInvalidArgument
	ErrSingularTransform = vision.ErrSingularTransform
)

// NewGrid wraps a standard library image.
var NewGrid = vision.NewGrid

// NewArray creates an array image over data with the given shape.
var NewArray = vision.NewArray

// NewTensor creates a tensor image over data with the given shape and layout.
var NewTensor = vision.NewTensor

// Classify determines which representation a value is.
var Classify = vision.Classify

// BuildInverseAffine derives the inverse affine matrix from
// (center, angle, translate, scale, shear).
var BuildInverseAffine = vision.BuildInverseAffine

// SolvePerspective derives the projective coefficients from four corner
// correspondences.
var SolvePerspective = vision.SolvePerspective

// NewEngine creates an engine over the given backends, one per kind.
var NewEngine = vision.NewEngine

// IdentityMatrix is the no-op inverse affine mapping.
var IdentityMatrix = vision.IdentityMatrix

// IdentityCoeffs is the no-op projective mapping.
var IdentityCoeffs = vision.IdentityCoeffs
