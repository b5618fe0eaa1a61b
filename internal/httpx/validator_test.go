package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Title string `validate:"required"`
	Email string `validate:"required,email"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct yields no messages", func(t *testing.T) {
		messages := ValidateStruct(sampleRequest{Title: "X", Email: "a@b.com"})
		assert.Nil(t, messages)
	})

	t.Run("one message per violated rule", func(t *testing.T) {
		messages := ValidateStruct(sampleRequest{})

		assert.Equal(t, []string{"title is required", "email is required"}, messages)
	})

	t.Run("email format", func(t *testing.T) {
		messages := ValidateStruct(sampleRequest{Title: "X", Email: "nope"})

		assert.Equal(t, []string{"email must be a valid email address"}, messages)
	})
}
