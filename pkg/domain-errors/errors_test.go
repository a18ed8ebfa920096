package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeInvalidInput, "bad")
		assert.True(t, HasCode(err, CodeInvalidInput))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches code through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", New(CodeInvariantViolation, "empty code"))
		assert.True(t, HasCode(err, CodeInvariantViolation))
	})

	t.Run("matches inner code of nested coded errors", func(t *testing.T) {
		inner := New(CodeNotFound, "missing")
		outer := Wrap(inner, CodeInternal, "lookup failed")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeNotFound))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})

	t.Run("errors.Join keeps codes discoverable", func(t *testing.T) {
		err := errors.Join(errors.New("other"), New(CodeInvalidInput, "bad enum"))
		assert.True(t, HasCode(err, CodeInvalidInput))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("keeps cause reachable", func(t *testing.T) {
		cause := errors.New("disk")
		err := Wrap(cause, CodeInternal, "read snapshot")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "internal_error: read snapshot: disk", err.Error())
	})
}
