package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp-ml/warp/internal/vision"
)

func mustArray(t *testing.T, data []float64, shape vision.Shape) *vision.Array {
	t.Helper()
	a, err := vision.NewArray(data, shape)
	require.NoError(t, err)
	return a
}

func TestArrayResize_Nearest(t *testing.T) {
	b := New()
	// 2x2 single-channel buffer.
	src := mustArray(t, []float64{1, 2, 3, 4}, vision.Shape{2, 2})

	out, err := b.Resize(src, 4, 4, vision.Nearest)
	require.NoError(t, err)
	a := out.(*vision.Array)
	assert.Equal(t, vision.Shape{4, 4}, a.Shape())
	// Each source sample covers a 2x2 block.
	assert.Equal(t, 1.0, a.At(0, 0, 0))
	assert.Equal(t, 1.0, a.At(1, 1, 0))
	assert.Equal(t, 2.0, a.At(0, 2, 0))
	assert.Equal(t, 3.0, a.At(2, 0, 0))
	assert.Equal(t, 4.0, a.At(3, 3, 0))
}

func TestArrayResize_BilinearConstant(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{5, 5, 5, 5}, vision.Shape{2, 2})

	out, err := b.Resize(src, 3, 5, vision.Bilinear)
	require.NoError(t, err)
	a := out.(*vision.Array)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			assert.InDelta(t, 5.0, a.At(y, x, 0), 1e-12)
		}
	}
}

func TestArrayResize_UnsupportedInterpolation(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{1}, vision.Shape{1, 1})

	_, err := b.Resize(src, 2, 2, vision.Bicubic)
	assert.ErrorIs(t, err, vision.ErrInvalidArgument)
}

func TestArrayPadModes(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{1, 2, 3, 4}, vision.Shape{1, 4})

	tests := []struct {
		name string
		mode vision.PaddingMode
		fill []float64
		want []float64
	}{
		{"constant", vision.Constant, []float64{0}, []float64{0, 0, 1, 2, 3, 4, 0, 0}},
		{"edge", vision.Edge, []float64{0}, []float64{1, 1, 1, 2, 3, 4, 4, 4}},
		{"reflect", vision.Reflect, []float64{0}, []float64{3, 2, 1, 2, 3, 4, 3, 2}},
		{"symmetric", vision.Symmetric, []float64{0}, []float64{2, 1, 1, 2, 3, 4, 4, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := b.Pad(src, [4]int{2, 0, 2, 0}, tt.fill, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.(*vision.Array).Data())
		})
	}
}

func TestArrayCropAndCenterCrop(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}, vision.Shape{4, 4})

	out, err := b.Crop(src, 1, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 7, 10, 11}, out.(*vision.Array).Data())

	out, err = b.CenterCrop(src, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 7, 10, 11}, out.(*vision.Array).Data())
}

func TestArrayFlips(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{1, 2, 3, 4, 5, 6}, vision.Shape{2, 3})

	out, err := b.HFlip(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2, 1, 6, 5, 4}, out.(*vision.Array).Data())

	out, err = b.VFlip(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6, 1, 2, 3}, out.(*vision.Array).Data())
}

func TestArrayToGrayscale(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{200, 100, 50}, vision.Shape{1, 1, 3})

	out, err := b.ToGrayscale(src, 1)
	require.NoError(t, err)
	a := out.(*vision.Array)
	assert.Equal(t, vision.Shape{1, 1, 1}, a.Shape())
	assert.Equal(t, 124.0, a.At(0, 0, 0), "luminance floors like 8-bit math")

	out, err = b.ToGrayscale(src, 3)
	require.NoError(t, err)
	a = out.(*vision.Array)
	assert.Equal(t, vision.Shape{1, 1, 3}, a.Shape())
	assert.Equal(t, a.At(0, 0, 0), a.At(0, 0, 2))
}

func TestArrayNormalize(t *testing.T) {
	b := New()

	t.Run("rank 2", func(t *testing.T) {
		src := mustArray(t, []float64{10, 20, 30, 40}, vision.Shape{2, 2})
		out, err := b.Normalize(src, []float64{10}, []float64{10}, vision.HWC, false)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 2, 3}, out.(*vision.Array).Data())
	})

	t.Run("hwc channels", func(t *testing.T) {
		src := mustArray(t, []float64{10, 20, 30, 40, 50, 60}, vision.Shape{1, 2, 3})
		out, err := b.Normalize(src, []float64{10, 20, 30}, []float64{1, 2, 3}, vision.HWC, false)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0, 30, 15, 10}, out.(*vision.Array).Data())
	})

	t.Run("chw channels", func(t *testing.T) {
		// 3 channels of a 1x2 image, planar order.
		src := mustArray(t, []float64{10, 20, 30, 40, 50, 60}, vision.Shape{3, 2, 1})
		out, err := b.Normalize(src, []float64{10, 30, 50}, []float64{1, 1, 1}, vision.CHW, false)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 10, 0, 10, 0, 10}, out.(*vision.Array).Data())
	})

	t.Run("to rgb reverses channels first", func(t *testing.T) {
		src := mustArray(t, []float64{1, 2, 3}, vision.Shape{1, 1, 3})
		out, err := b.Normalize(src, []float64{0, 0, 0}, []float64{1, 1, 1}, vision.HWC, true)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 2, 1}, out.(*vision.Array).Data())
	})
}

func TestArrayErase_Inplace(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{1, 2, 3, 4}, vision.Shape{2, 2})

	out, err := b.Erase(src, 0, 0, 1, 1, []float64{9}, true)
	require.NoError(t, err)
	assert.Equal(t, 9.0, src.At(0, 0, 0), "inplace mutates the input buffer")
	assert.Same(t, vision.Image(src), out)
}

func TestArrayErase_Copy(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{1, 2, 3, 4}, vision.Shape{2, 2})

	out, err := b.Erase(src, 0, 0, 1, 2, []float64{9}, false)
	require.NoError(t, err)
	assert.Equal(t, 1.0, src.At(0, 0, 0), "input stays untouched")
	assert.Equal(t, []float64{9, 9, 3, 4}, out.(*vision.Array).Data())
}

func TestArrayToTensor(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{1, 2, 3, 4, 5, 6}, vision.Shape{1, 2, 3})

	out, err := b.ToTensor(src, vision.CHW)
	require.NoError(t, err)
	ten := out.(*vision.Tensor)
	assert.Equal(t, vision.Shape{3, 1, 2}, ten.Shape())
	// No value scaling: the buffer carries no source dtype.
	assert.Equal(t, float32(1), ten.At(0, 0, 0))
	assert.Equal(t, float32(4), ten.At(0, 0, 1))
	assert.Equal(t, float32(2), ten.At(1, 0, 0))
}

func TestArrayRotate_ExpandSwapsDims(t *testing.T) {
	b := New()
	src := mustArray(t, make([]float64, 12), vision.Shape{3, 4})

	out, err := b.Rotate(src, 90, vision.Nearest, true, nil, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, vision.Shape{4, 3}, out.(*vision.Array).Shape())
}

func TestArrayRotate_180(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, vision.Shape{3, 3})

	// About the middle pixel the rotation reverses the buffer exactly.
	out, err := b.Rotate(src, 180, vision.Nearest, false, &vision.Point{X: 1, Y: 1}, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 8, 7, 6, 5, 4, 3, 2, 1}, out.(*vision.Array).Data())
}

func TestArrayAffine_Identity(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{1, 2, 3, 4}, vision.Shape{2, 2})

	out, err := b.Affine(src, vision.IdentityMatrix, vision.Nearest, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, src.Data(), out.(*vision.Array).Data())
}

func TestArrayPerspective_Identity(t *testing.T) {
	b := New()
	src := mustArray(t, []float64{1, 2, 3, 4}, vision.Shape{2, 2})

	out, err := b.Perspective(src, vision.IdentityCoeffs, vision.Nearest, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, src.Data(), out.(*vision.Array).Data())
}

func TestArrayWrongKindRejected(t *testing.T) {
	b := New()
	ten, err := vision.NewTensor(make([]float32, 3), vision.Shape{3, 1, 1}, vision.CHW)
	require.NoError(t, err)

	_, err = b.HFlip(ten)
	assert.ErrorIs(t, err, vision.ErrUnsupportedType)
}
