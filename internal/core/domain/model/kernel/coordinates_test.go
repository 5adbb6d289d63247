package kernel_test

import (
	"math"
	"testing"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinates(t *testing.T) {
	t.Run("creates_valid_coordinates", func(t *testing.T) {
		coords, err := kernel.NewCoordinates(30.0444, 31.2357)

		require.NoError(t, err)
		assert.InDelta(t, 30.0444, coords.Lat(), 1e-9)
		assert.InDelta(t, 31.2357, coords.Lng(), 1e-9)
		require.NoError(t, coords.Validate())
	})

	t.Run("accepts_boundary_values", func(t *testing.T) {
		cases := []struct{ lat, lng float64 }{
			{-90, 0},
			{90, 0},
			{0, -180},
			{0, 180},
		}
		for _, tc := range cases {
			_, err := kernel.NewCoordinates(tc.lat, tc.lng)
			require.NoError(t, err)
		}
	})

	t.Run("rejects_out_of_range_latitude", func(t *testing.T) {
		_, err := kernel.NewCoordinates(90.01, 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_out_of_range_longitude", func(t *testing.T) {
		_, err := kernel.NewCoordinates(0, -180.5)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_non_finite_components", func(t *testing.T) {
		_, err := kernel.NewCoordinates(math.NaN(), 31.0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = kernel.NewCoordinates(30.0, math.Inf(1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCoordinates_Validate(t *testing.T) {
	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var coords kernel.Coordinates

		err := coords.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCoordinates_IsEqual(t *testing.T) {
	a, _ := kernel.NewCoordinates(30.0, 31.0)
	b, _ := kernel.NewCoordinates(30.0, 31.0)
	c, _ := kernel.NewCoordinates(30.0, 31.5)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestCoordinates_DistanceKmTo(t *testing.T) {
	t.Run("zero_distance_for_same_point", func(t *testing.T) {
		point, _ := kernel.NewCoordinates(30.0444, 31.2357)

		distance, err := point.DistanceKmTo(point)

		require.NoError(t, err)
		assert.InDelta(t, 0, distance, 1e-9)
	})

	t.Run("one_degree_of_latitude_is_about_111km", func(t *testing.T) {
		a, _ := kernel.NewCoordinates(30.0, 31.0)
		b, _ := kernel.NewCoordinates(31.0, 31.0)

		distance, err := a.DistanceKmTo(b)

		require.NoError(t, err)
		assert.InDelta(t, 111.19, distance, 0.5)
	})

	t.Run("distance_is_symmetric", func(t *testing.T) {
		a, _ := kernel.NewCoordinates(30.0444, 31.2357)
		b, _ := kernel.NewCoordinates(31.2001, 29.9187)

		ab, err := a.DistanceKmTo(b)
		require.NoError(t, err)
		ba, err := b.DistanceKmTo(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("fails_for_unconstructed_operand", func(t *testing.T) {
		point, _ := kernel.NewCoordinates(30.0, 31.0)
		var zero kernel.Coordinates

		_, err := point.DistanceKmTo(zero)
		require.Error(t, err)

		_, err = zero.DistanceKmTo(point)
		require.Error(t, err)
	})
}
