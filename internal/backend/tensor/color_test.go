package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp-ml/warp/internal/vision"
)

func TestTensorAdjustBrightness(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{0.4, 0.8}, vision.Shape{1, 1, 2}, vision.CHW)

	out, err := b.AdjustBrightness(src, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.8, 1}, out.(*vision.Tensor).Data(), "samples clamp to the unit range")
}

func TestTensorAdjustContrast_ZeroFactorIsMean(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{0.2, 0.6}, vision.Shape{1, 1, 2}, vision.CHW)

	out, err := b.AdjustContrast(src, 0)
	require.NoError(t, err)
	data := out.(*vision.Tensor).Data()
	assert.InDelta(t, 0.4, float64(data[0]), 1e-6)
	assert.InDelta(t, 0.4, float64(data[1]), 1e-6)
}

func TestTensorAdjustSaturation_ZeroFactorIsGray(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{0.9, 0.3, 0.1}, vision.Shape{3, 1, 1}, vision.CHW)

	out, err := b.AdjustSaturation(src, 0)
	require.NoError(t, err)
	ten := out.(*vision.Tensor)
	assert.InDelta(t, float64(ten.At(0, 0, 0)), float64(ten.At(1, 0, 0)), 1e-6)
	assert.InDelta(t, float64(ten.At(1, 0, 0)), float64(ten.At(2, 0, 0)), 1e-6)
}

func TestTensorAdjustHue_RequiresThreeChannels(t *testing.T) {
	b := New()
	src := mustTensor(t, []float32{0.5}, vision.Shape{1, 1, 1}, vision.CHW)

	_, err := b.AdjustHue(src, 0.2)
	assert.ErrorIs(t, err, vision.ErrInvalidArgument)
}

func TestTensorAdjustHue_ThirdTurn(t *testing.T) {
	b := New()
	red := mustTensor(t, []float32{1, 0, 0}, vision.Shape{3, 1, 1}, vision.CHW)

	out, err := b.AdjustHue(red, 1.0/3.0)
	require.NoError(t, err)
	ten := out.(*vision.Tensor)
	assert.InDelta(t, 0, float64(ten.At(0, 0, 0)), 1e-6)
	assert.InDelta(t, 1, float64(ten.At(1, 0, 0)), 1e-6)
	assert.InDelta(t, 0, float64(ten.At(2, 0, 0)), 1e-6)
}
