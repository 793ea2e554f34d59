package vision

import "errors"

// Sentinel errors returned by the engine. Callers match them with errors.Is.
var (
	// ErrUnsupportedType means the value is not one of the recognized image
	// representations, or an array buffer has an unsupported rank.
	ErrUnsupportedType = errors.New("unsupported image type")

	// ErrInvalidArgument means a parameter failed shape, type or range
	// normalization.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSingularTransform means the requested transform is not invertible
	// (a ±90 degree y-shear collapses the affine block).
	ErrSingularTransform = errors.New("singular transform")
)
