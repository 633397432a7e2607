package validation

import (
	"testing"

	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required,min=3"`
	Email string `json:"email" validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	t.Run("passes a valid struct", func(t *testing.T) {
		err := Struct(sampleRequest{Name: "abc", Email: "x@y.de", Count: 1})
		assert.NoError(t, err)
	})

	t.Run("reports every failing field", func(t *testing.T) {
		err := Struct(sampleRequest{Name: "", Email: "", Count: -1})
		require.Error(t, err)

		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)

		fields, ok := domainErr.Context["fields"].([]shared.FieldError)
		require.True(t, ok)
		assert.Len(t, fields, 3)

		names := make([]string, len(fields))
		for i, f := range fields {
			names[i] = f.Field
		}
		assert.Contains(t, names, "name")
		assert.Contains(t, names, "email")
		assert.Contains(t, names, "count")
	})

	t.Run("uses json names in field errors", func(t *testing.T) {
		err := Struct(sampleRequest{Name: "ab", Email: "x@y.de"})
		require.Error(t, err)

		domainErr := err.(*shared.DomainError)
		fields := domainErr.Context["fields"].([]shared.FieldError)
		require.Len(t, fields, 1)
		assert.Equal(t, "name", fields[0].Field)
		assert.Equal(t, "min", fields[0].Rule)
	})
}
