package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	EventType string `validate:"required"`
	Limit     int    `validate:"max=10"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&sampleRequest{EventType: "question_asked"}))
	})

	t.Run("missing required field reports the field", func(t *testing.T) {
		err := ValidateStruct(&sampleRequest{})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		fields := GetValidationFields(err)
		assert.Contains(t, fields, "EventType")
		assert.Contains(t, fields["EventType"], "required")
	})

	t.Run("max violation reports the bound", func(t *testing.T) {
		err := ValidateStruct(&sampleRequest{EventType: "x", Limit: 11})
		require.Error(t, err)

		fields := GetValidationFields(err)
		assert.Contains(t, fields["Limit"], "at most 10")
	})
}

func TestGetValidationFieldsOnOtherError(t *testing.T) {
	assert.Nil(t, GetValidationFields(assert.AnError))
	assert.False(t, IsValidationError(assert.AnError))
}
