package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp-ml/warp/internal/vision"
)

func mustTensor(t *testing.T, data []float32, shape vision.Shape, layout vision.Layout) *vision.Tensor {
	t.Helper()
	ten, err := vision.NewTensor(data, shape, layout)
	require.NoError(t, err)
	return ten
}

func TestTensorResize(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{1, 2, 3, 4}, vision.Shape{1, 2, 2}, vision.CHW)

	out, err := b.Resize(src, 4, 4, vision.Nearest)
	require.NoError(t, err)
	ten := out.(*vision.Tensor)
	assert.Equal(t, vision.Shape{1, 4, 4}, ten.Shape())
	assert.Equal(t, float32(1), ten.At(0, 0, 0))
	assert.Equal(t, float32(4), ten.At(0, 3, 3))

	_, err = b.Resize(src, 2, 2, vision.Lanczos)
	assert.ErrorIs(t, err, vision.ErrInvalidArgument)
}

func TestTensorPad(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{1, 2, 3, 4}, vision.Shape{1, 1, 4}, vision.CHW)

	tests := []struct {
		name string
		mode vision.PaddingMode
		want []float32
	}{
		{"constant", vision.Constant, []float32{7, 7, 1, 2, 3, 4, 7, 7}},
		{"edge", vision.Edge, []float32{1, 1, 1, 2, 3, 4, 4, 4}},
		{"reflect", vision.Reflect, []float32{3, 2, 1, 2, 3, 4, 3, 2}},
		{"symmetric", vision.Symmetric, []float32{2, 1, 1, 2, 3, 4, 4, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := b.Pad(src, [4]int{2, 0, 2, 0}, []float64{7}, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.(*vision.Tensor).Data())
		})
	}
}

func TestTensorCropAndFlips(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{1, 2, 3, 4, 5, 6}, vision.Shape{1, 2, 3}, vision.CHW)

	out, err := b.Crop(src, 0, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3, 5, 6}, out.(*vision.Tensor).Data())

	out, err = b.HFlip(src)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 2, 1, 6, 5, 4}, out.(*vision.Tensor).Data())

	out, err = b.VFlip(src)
	require.NoError(t, err)
	assert.Equal(t, []float32{4, 5, 6, 1, 2, 3}, out.(*vision.Tensor).Data())
}

func TestTensorToGrayscale(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{0.8, 0.4, 0.2}, vision.Shape{3, 1, 1}, vision.CHW)

	out, err := b.ToGrayscale(src, 1)
	require.NoError(t, err)
	ten := out.(*vision.Tensor)
	assert.Equal(t, vision.Shape{1, 1, 1}, ten.Shape())
	// Float luminance, no 8-bit flooring.
	assert.InDelta(t, 0.299*0.8+0.587*0.4+0.114*0.2, float64(ten.At(0, 0, 0)), 1e-6)
}

func TestTensorNormalize(t *testing.T) {
	b := New()

	chw := mustTensor(t, []float32{1, 2, 3, 4}, vision.Shape{2, 1, 2}, vision.CHW)
	out, err := b.Normalize(chw, []float64{1, 3}, []float64{2, 2}, vision.CHW, false)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0.5, 0, 0.5}, out.(*vision.Tensor).Data())

	// The channel axis follows the tensor's own layout, not the argument.
	hwc := mustTensor(t, []float32{1, 3, 2, 4}, vision.Shape{1, 2, 2}, vision.HWC)
	out, err = b.Normalize(hwc, []float64{1, 3}, []float64{1, 1}, vision.CHW, false)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 1, 1}, out.(*vision.Tensor).Data())
}

func TestTensorErase_Inplace(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{1, 2, 3, 4}, vision.Shape{1, 2, 2}, vision.CHW)

	out, err := b.Erase(src, 0, 0, 1, 2, []float64{9}, true)
	require.NoError(t, err)
	assert.Same(t, vision.Image(src), out)
	assert.Equal(t, []float32{9, 9, 3, 4}, src.Data())

	src2 := mustTensor(t, []float32{1, 2, 3, 4}, vision.Shape{1, 2, 2}, vision.CHW)
	out, err = b.Erase(src2, 0, 0, 1, 2, []float64{9}, false)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, src2.Data())
	assert.Equal(t, []float32{9, 9, 3, 4}, out.(*vision.Tensor).Data())
}

func TestTensorToTensor(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{1, 2, 3, 4, 5, 6}, vision.Shape{3, 1, 2}, vision.CHW)

	// Same layout returns the input untouched.
	out, err := b.ToTensor(src, vision.CHW)
	require.NoError(t, err)
	assert.Same(t, vision.Image(src), out)

	// Layout change transposes the buffer.
	out, err = b.ToTensor(src, vision.HWC)
	require.NoError(t, err)
	ten := out.(*vision.Tensor)
	assert.Equal(t, vision.Shape{1, 2, 3}, ten.Shape())
	assert.Equal(t, []float32{1, 3, 5, 2, 4, 6}, ten.Data())
}

func TestTensorRotate_ExpandSwapsDims(t *testing.T) {
	b := New()
	src := mustTensor(t, make([]float32, 12), vision.Shape{1, 3, 4}, vision.CHW)

	out, err := b.Rotate(src, 90, vision.Nearest, true, nil, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, vision.Shape{1, 4, 3}, out.(*vision.Tensor).Shape())
}

func TestTensorRotate_180(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{1, 2, 3, 4}, vision.Shape{1, 2, 2}, vision.CHW)

	// The midpoint-relative frame makes an exact reversal regardless of
	// even dimensions.
	out, err := b.Rotate(src, 180, vision.Nearest, false, nil, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, []float32{4, 3, 2, 1}, out.(*vision.Tensor).Data())
}

func TestTensorAffine_Identity(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{1, 2, 3, 4}, vision.Shape{1, 2, 2}, vision.CHW)

	out, err := b.Affine(src, vision.IdentityMatrix, vision.Nearest, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, src.Data(), out.(*vision.Tensor).Data())
}

func TestTensorPerspective_Identity(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{1, 2, 3, 4}, vision.Shape{1, 2, 2}, vision.CHW)

	out, err := b.Perspective(src, vision.IdentityCoeffs, vision.Bilinear, []float64{0})
	require.NoError(t, err)
	for i, want := range src.Data() {
		assert.InDelta(t, want, out.(*vision.Tensor).Data()[i], 1e-6)
	}
}

func TestTensorWrongKindRejected(t *testing.T) {
	b := New()
	arr, err := vision.NewArray(make([]float64, 4), vision.Shape{2, 2})
	require.NoError(t, err)

	_, err = b.VFlip(arr)
	assert.ErrorIs(t, err, vision.ErrUnsupportedType)
}
