package apperrors_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(apperrors.ErrInternal, "failed to list accounts", cause)

	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "failed to list accounts: connection reset", err.Error())
}

func TestAppError_WithoutCause(t *testing.T) {
	err := apperrors.NewAppError(apperrors.ErrValidation, "amount must not be negative", nil)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "amount must not be negative", err.Error())
}
