package errs_test

import (
	"errors"
	"testing"

	"tawsila/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderNumber", "TW-42")

		assert.Equal(t, "orderNumber", err.ParamName)
		assert.Equal(t, "TW-42", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: TW-42", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderNumber", "TW-42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderNumber, ID is: TW-42 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestObjectConflictError(t *testing.T) {
	t.Run("NewObjectConflictError", func(t *testing.T) {
		err := errs.NewObjectConflictError("orderNumber", "TW-42")

		assert.Equal(t, "orderNumber", err.ParamName)
		assert.Equal(t, "TW-42", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object conflict: TW-42", err.Error())
		assert.Equal(t, errs.ErrObjectConflict, err.Unwrap())
	})

	t.Run("NewObjectConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("claimed by another driver")
		err := errs.NewObjectConflictErrorWithCause("orderNumber", "TW-42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object conflict: param is: orderNumber, ID is: TW-42 (cause: claimed by another driver)",
			err.Error())
		assert.Equal(t, errs.ErrObjectConflict, err.Unwrap())
	})

	t.Run("conflict and not-found stay distinct", func(t *testing.T) {
		conflict := errs.NewObjectConflictError("orderNumber", "TW-42")
		assert.NotErrorIs(t, conflict, errs.ErrObjectNotFound)

		notFound := errs.NewObjectNotFoundError("orderNumber", "TW-42")
		assert.NotErrorIs(t, notFound, errs.ErrObjectConflict)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("customerPhone")

		assert.Equal(t, "customerPhone", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: customerPhone", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("customerPhone", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: customerPhone (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("rating", 7, 1, 5)

		assert.Equal(t, "rating", err.ParamName)
		assert.Equal(t, 7, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 5, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 7 is rating, min value is 1, max value is 5", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize keeps messages single-line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("address", "first line\nsecond line", 0, 10)
		assert.Contains(t, err.Error(), "first line second line")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("customerName")

		assert.Equal(t, "customerName", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: customerName", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("driverId", "d-1"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewObjectConflictError("orderNumber", "TW-1"), errs.ErrObjectConflict)
		require.ErrorIs(t, errs.NewValueIsInvalidError("lat"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("rating", 0, 1, 5), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("itemType"), errs.ErrValueIsRequired)
	})
}
