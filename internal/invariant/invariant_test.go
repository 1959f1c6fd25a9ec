package invariant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertPassesSilently(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true, "unreachable %d", 1) })
}

func TestAssertPanicsWithFormattedMessage(t *testing.T) {
	assert.PanicsWithValue(t, "bad value 42", func() {
		Assert(false, "bad value %d", 42)
	})
}

func TestMustReturnsValueOnNilError(t *testing.T) {
	v := Must(7, nil)
	assert.Equal(t, 7, v)
}

func TestMustPanicsOnError(t *testing.T) {
	err := errors.New("boom")
	assert.PanicsWithValue(t, err, func() {
		Must(0, err)
	})
}
