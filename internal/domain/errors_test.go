package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"interview-agent/internal/domain"
)

func TestIsContextLengthExceeded(t *testing.T) {
	overflow := &domain.ModelError{Kind: domain.ModelErrContextLength, Err: errors.New("too many tokens")}
	other := &domain.ModelError{Kind: domain.ModelErrOther, Err: errors.New("boom")}

	assert.True(t, domain.IsContextLengthExceeded(overflow))
	assert.False(t, domain.IsContextLengthExceeded(other))
	assert.False(t, domain.IsContextLengthExceeded(errors.New("boom")))
	assert.False(t, domain.IsContextLengthExceeded(nil))
}

func TestIsContextLengthExceededThroughWrapping(t *testing.T) {
	overflow := &domain.ModelError{Kind: domain.ModelErrContextLength, Err: errors.New("too many tokens")}
	wrapped := fmt.Errorf("ask turn: %w", overflow)

	assert.True(t, domain.IsContextLengthExceeded(wrapped))
}

func TestModelErrorUnwrap(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := &domain.ModelError{Kind: domain.ModelErrOther, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "other")
	assert.Contains(t, err.Error(), "deadline exceeded")
}
