package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chirpd/chirp-api/internal/domain"
)

type taggedRequest struct {
	Name string `validate:"required"`
}

func TestValidateRequest(t *testing.T) {
	t.Run("dispatches to an entity's own Validate method", func(t *testing.T) {
		valid := &domain.Account{Username: "alice", Password: "pass1"}
		assert.NoError(t, ValidateRequest(valid))

		invalid := &domain.Account{Username: "alice", Password: "abc"}
		err := ValidateRequest(invalid)
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("falls back to struct tags", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(&taggedRequest{Name: "set"}))
		assert.Error(t, ValidateRequest(&taggedRequest{}))
	})
}

func TestValidateRequestKeepsValidationKind(t *testing.T) {
	err := ValidateRequest(&domain.Message{OwnerID: 1, Text: ""})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
