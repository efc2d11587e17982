package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCursorAdvancePastEnd(t *testing.T) {
	c := newCursor([]byte("ab"))

	assert.NoError(t, c.advance(2))
	assert.True(t, c.eof())

	err := c.advance(1)
	assert.IsError(t, err, errAdvancePastEnd)
}

func TestCursorTracksLineAndColumn(t *testing.T) {
	c := newCursor([]byte("ab\ncd"))

	assert.Equal(t, 1, c.line)
	assert.Equal(t, 1, c.column)

	c.next()
	c.next()
	assert.Equal(t, 1, c.line)
	assert.Equal(t, 3, c.column)

	c.next() // newline
	assert.Equal(t, 2, c.line)
	assert.Equal(t, 1, c.column)
}

func TestCursorProbeDoesNotMoveOriginal(t *testing.T) {
	c := newCursor([]byte("abc"))

	probe := c
	probe.next()
	probe.next()

	assert.Equal(t, 0, c.pos)
	assert.Equal(t, 2, probe.pos)

	c = probe
	assert.Equal(t, 2, c.pos)
}

func TestCursorSkipEOL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rest  byte
	}{
		{name: "LF", input: "\nx", rest: 'x'},
		{name: "CRLF", input: "\r\nx", rest: 'x'},
		{name: "CR", input: "\rx", rest: 'x'},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newCursor([]byte(test.input))
			c.skipEOL()
			assert.Equal(t, test.rest, c.peek())
		})
	}
}

func TestCursorSkipBlankStopsAtNewline(t *testing.T) {
	c := newCursor([]byte("  \t\nx"))
	c.skipBlank()
	assert.Equal(t, byte('\n'), c.peek())

	c.skipWhitespace()
	assert.Equal(t, byte('x'), c.peek())
}
