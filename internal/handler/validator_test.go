package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationError(t *testing.T) {
	t.Run("Nil Error", func(t *testing.T) {
		assert.Nil(t, FormatValidationError(nil))
	})

	t.Run("Non Validation Error", func(t *testing.T) {
		errs := FormatValidationError(errors.New("boom"))
		assert.Equal(t, "Invalid request format", errs["error"])
	})

	t.Run("Required Fields", func(t *testing.T) {
		type probe struct {
			To       string `validate:"required"`
			BoxCount uint32 `validate:"required,gt=0"`
		}

		err := GetValidator().ValidateStruct(probe{})
		require.Error(t, err)

		errs := FormatValidationError(err)
		assert.Equal(t, "This field is required", errs["to"])
		assert.Equal(t, "This field is required", errs["boxcount"])
	})
}
