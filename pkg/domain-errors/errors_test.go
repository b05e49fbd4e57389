package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeNotFound, "employee not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("load: %w", New(CodeInvalidInput, "bad pin"))
		assert.True(t, HasCode(err, CodeInvalidInput))
	})

	t.Run("matches inner code of nested domain errors", func(t *testing.T) {
		inner := New(CodeTimeout, "deadline")
		outer := Wrap(inner, CodeInternal, "failed to punch")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeTimeout))
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "failed to load settings")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load settings: connection reset", err.Error())
	assert.Nil(t, Wrap(nil, CodeInternal, "ignored"))
}
