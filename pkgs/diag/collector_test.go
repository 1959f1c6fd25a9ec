package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyxlang/nyxc/pkgs/lexer"
)

func newRegisteredCollector(t *testing.T, path string, src []byte) (*Collector, lexer.InputFileID) {
	t.Helper()
	c := NewCollector()
	id := lexer.InputFileID(1)
	buf := lexer.NewSourceBuffer(id, path, lexer.CoreUnit, src)
	c.RegisterFile(id, path, buf)
	return c, id
}

func TestCollectorCountsErrorsAndWarnings(t *testing.T) {
	c, id := newRegisteredCollector(t, "a.nx", []byte("let x = 1;"))
	c.AddError(id, 4, 1, "bad token")
	c.AddWarning(id, 0, 1, "unused variable")
	c.AddError(id, 0, 1, "another error")

	assert.Equal(t, 2, c.ErrorCount())
	assert.Equal(t, 1, c.WarningCount())
}

func TestCollectorEmitRendersCaretUnderline(t *testing.T) {
	src := []byte("let x = 1;\nproc bad(")
	c, id := newRegisteredCollector(t, "a.nx", src)
	// Offset 16 is inside the second line, at the 'b' of "bad".
	c.AddError(id, 16, 2, "unexpected end of input")

	out := c.String([]lexer.InputFileID{id})
	assert.Contains(t, out, "a.nx:2:")
	assert.Contains(t, out, "error: unexpected end of input")
	assert.Contains(t, out, "proc bad(")
	assert.Contains(t, out, "^")
}

func TestCollectorEmitClampsOffsetPastEOF(t *testing.T) {
	src := []byte("abc")
	c, id := newRegisteredCollector(t, "a.nx", src)
	c.AddError(id, 999, 1, "overflowed")

	require.NotPanics(t, func() {
		c.String([]lexer.InputFileID{id})
	})
}

func TestCollectorEmitOnlyRendersRequestedOrder(t *testing.T) {
	c, id1 := newRegisteredCollector(t, "a.nx", []byte("a"))
	buf2 := lexer.NewSourceBuffer(2, "b.nx", lexer.CoreUnit, []byte("b"))
	c.RegisterFile(2, "b.nx", buf2)

	c.AddError(id1, 0, 1, "error in a")
	c.AddError(2, 0, 1, "error in b")

	out := c.String([]lexer.InputFileID{2})
	assert.NotContains(t, out, "error in a")
	assert.Contains(t, out, "error in b")
}

func TestCollectorColorizeWrapsANSI(t *testing.T) {
	c, id := newRegisteredCollector(t, "a.nx", []byte("x"))
	c.Colorize = true
	c.AddError(id, 0, 1, "boom")

	out := c.String([]lexer.InputFileID{id})
	assert.Contains(t, out, "\x1b[")
}

func TestSuggestFindsClosestCandidate(t *testing.T) {
	got := Suggest("proce", []string{"proc", "struct", "namespace"})
	assert.Equal(t, "proc", got)
}

func TestSuggestEmptyWhenNothingClose(t *testing.T) {
	got := Suggest("zzzzzzzzzz", []string{"proc", "struct"})
	assert.Equal(t, "", got)
}
