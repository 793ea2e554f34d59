package vision

// Convention describes how a backend interprets size and center parameters.
// The engine re-derives geometric parameters through it so the matrix math
// stays backend-agnostic.
type Convention struct {
	// ReversedAxes: the backend reads its (width, height) in reverse axis
	// order when deriving geometric defaults.
	ReversedAxes bool
	// CenterRelative: the backend expects the rotation center as an offset
	// from the image midpoint rather than an absolute pixel coordinate.
	CenterRelative bool
}

// Backend performs the actual pixel resampling for one image representation.
// Every method receives parameters already normalized by the engine and
// returns a result of the backend's own representation kind (ToTensor is the
// deliberate exception). Backends report their own errors for resampling
// failures, e.g. an interpolation method they do not support.
type Backend interface {
	// Kind is the representation this backend owns.
	Kind() Kind
	// Convention is the backend's coordinate convention.
	Convention() Convention

	Resize(img Image, height, width int, interp Interpolation) (Image, error)
	Pad(img Image, padding [4]int, fill []float64, mode PaddingMode) (Image, error)
	Crop(img Image, top, left, height, width int) (Image, error)
	CenterCrop(img Image, height, width int) (Image, error)
	HFlip(img Image) (Image, error)
	VFlip(img Image) (Image, error)

	AdjustBrightness(img Image, factor float64) (Image, error)
	AdjustContrast(img Image, factor float64) (Image, error)
	AdjustSaturation(img Image, factor float64) (Image, error)
	AdjustHue(img Image, factor float64) (Image, error)

	Affine(img Image, m AffineMatrix, interp Interpolation, fill []float64) (Image, error)
	Rotate(img Image, angle float64, interp Interpolation, expand bool, center *Point, fill []float64) (Image, error)
	Perspective(img Image, coeffs PerspectiveCoeffs, interp Interpolation, fill []float64) (Image, error)

	ToGrayscale(img Image, numOutputChannels int) (Image, error)
	Normalize(img Image, mean, std []float64, layout Layout, toRGB bool) (Image, error)
	Erase(img Image, top, left, height, width int, value []float64, inplace bool) (Image, error)
	ToTensor(img Image, layout Layout) (Image, error)
}
