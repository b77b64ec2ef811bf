package panicerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryReturnsNilWhenFDoesNotPanic(t *testing.T) {
	err := Try("unit", func() {})
	require.NoError(t, err)
}

func TestTryUnwrapsAnErrorPanic(t *testing.T) {
	sentinel := errors.New("boom")
	err := Try("unit", func() { panic(sentinel) })
	require.Error(t, err)
	assert.Same(t, sentinel, err)
}

func TestTryFormatsANonErrorPanic(t *testing.T) {
	err := Try("unit", func() { panic("something broke") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit")
	assert.Contains(t, err.Error(), "something broke")
}
