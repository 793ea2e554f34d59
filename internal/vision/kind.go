package vision

// Kind identifies the representation of an image value.
type Kind int

// Supported image representations.
const (
	GridKind Kind = iota
	ArrayKind
	TensorKind
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case GridKind:
		return "grid"
	case ArrayKind:
		return "array"
	case TensorKind:
		return "tensor"
	default:
		return "unknown"
	}
}
