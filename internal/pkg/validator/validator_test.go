package validator

import (
	"errors"
	"testing"

	"servicehub/internal/domain"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"notblank"`
	Password string `json:"password" validate:"min=8"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	fields := Validate(sample{Email: "nope", Name: "   ", Password: "short"})

	assert.Equal(t, map[string]string{
		"email":    "email",
		"name":     "notblank",
		"password": "min",
	}, fields)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(sample{Email: "a@b.co", Name: "Alice", Password: "password123"}))

	err := Check(sample{Email: "a@b.co", Name: "", Password: "password123"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "name (notblank)")
}
