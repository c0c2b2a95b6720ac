package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	cause := errors.New("connection refused")

	t.Run("WithErr保留错误码", func(t *testing.T) {
		err := ErrBookNotFound.WithErr(cause)
		assert.True(t, errors.Is(err, ErrBookNotFound))
		assert.True(t, errors.Is(err, cause))
		assert.False(t, errors.Is(err, ErrMissingID))
	})

	t.Run("多层fmt包装", func(t *testing.T) {
		err := fmt.Errorf("edit: %w", ErrMissingID)
		assert.True(t, errors.Is(err, ErrMissingID))
		assert.True(t, HasCode(err, ErrCodeMissingID))
	})

	t.Run("WithMessage仍按错误码匹配", func(t *testing.T) {
		err := ErrInvalidParams.WithMessage("title is required")
		assert.True(t, errors.Is(err, ErrInvalidParams))
		assert.Equal(t, "title is required", err.Message)
	})
}

func TestStoreError(t *testing.T) {
	err := StoreError(errors.New("deadline exceeded"))

	assert.Equal(t, ErrCodeStoreError, err.Code)
	assert.Equal(t, "Error: deadline exceeded", err.Message)
	assert.Equal(t, "[50001] Error: deadline exceeded: deadline exceeded", err.Error())
}

func TestGetAppError(t *testing.T) {
	plain := errors.New("boom")

	appErr := GetAppError(plain)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.ErrorIs(t, appErr, plain)

	assert.Same(t, ErrBookNotFound, GetAppError(ErrBookNotFound))
	assert.False(t, IsAppError(plain))
}
