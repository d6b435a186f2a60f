package kernel_test

import (
	"math"
	"testing"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	t.Run("computes area", func(t *testing.T) {
		d, err := kernel.NewDimensions(12, 18)

		require.NoError(t, err)
		assert.InDelta(t, 12.0, d.Width(), 1e-9)
		assert.InDelta(t, 18.0, d.Height(), 1e-9)
		assert.InDelta(t, 216.0, d.Area(), 1e-9)
		assert.Equal(t, "12x18in", d.String())
	})

	t.Run("accepts fractional inches", func(t *testing.T) {
		d, err := kernel.NewDimensions(3.5, 2.25)

		require.NoError(t, err)
		assert.InDelta(t, 7.875, d.Area(), 1e-9)
	})

	testCases := []struct {
		name   string
		width  float64
		height float64
	}{
		{"zero width", 0, 10},
		{"negative height", 10, -1},
		{"too wide", kernel.MaxPrintInches + 1, 10},
		{"nan", math.NaN(), 10},
		{"inf", 10, math.Inf(1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := kernel.NewDimensions(tc.width, tc.height)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		})
	}
}

func TestDimensions_IsEqual(t *testing.T) {
	a, _ := kernel.NewDimensions(10, 12)
	b, _ := kernel.NewDimensions(10, 12)
	c, _ := kernel.NewDimensions(12, 10)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)

	_, err = a.IsEqual(kernel.Dimensions{})
	require.ErrorIs(t, err, kernel.ErrDimensionsAreNotConstructed)
}
