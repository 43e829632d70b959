package charreader_test

import (
	"testing"

	"github.com/hdlc/hdlc/lang/charreader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceAndEOF(t *testing.T) {
	r := charreader.New([]byte("ab"))
	assert.Equal(t, 'a', r.Cur())
	assert.Equal(t, byte('b'), r.Peek())
	r.Advance()
	assert.Equal(t, 'b', r.Cur())
	r.Advance()
	assert.Equal(t, charreader.EOF, r.Cur())
	// EOF is a sentinel that is returned repeatedly, never a panic.
	r.Advance()
	assert.Equal(t, charreader.EOF, r.Cur())
}

func TestUnget(t *testing.T) {
	r := charreader.New([]byte("xyz"))
	require.Equal(t, 'x', r.Cur())
	r.Advance()
	require.Equal(t, 'y', r.Cur())
	r.Unget()
	assert.Equal(t, 'x', r.Cur())
}

func TestUngetTwiceConsecutivelyPanics(t *testing.T) {
	r := charreader.New([]byte("xyz"))
	r.Advance()
	r.Unget()
	assert.Panics(t, func() { r.Unget() })
}

func TestUTF8(t *testing.T) {
	r := charreader.New([]byte("é€"))
	assert.Equal(t, 'é', r.Cur())
	r.Advance()
	assert.Equal(t, '€', r.Cur())
}
