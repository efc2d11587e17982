package parser

import (
	"bytes"

	"github.com/robinvdvleuten/traderfmt/ast"
)

// cursor is a scanning position over the source buffer. It is a small value
// type: probing an alternative works on a plain copy, and the caller commits
// by assigning the copy back. A failed probe therefore never moves the shared
// position, which is the backtracking discipline the grammar relies on.
type cursor struct {
	src    []byte
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
}

func newCursor(src []byte) cursor {
	return cursor{src: src, line: 1, column: 1}
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.src)
}

// peek returns the byte at the current position, or 0 at end of input.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.pos]
}

// next consumes and returns one byte, keeping line/column tracking current.
func (c *cursor) next() byte {
	if c.eof() {
		return 0
	}
	ch := c.src[c.pos]
	c.pos++
	if ch == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	return ch
}

// advance consumes n bytes. Moving past end of input is reported as an error
// rather than a panic; committing a validated construct should never get
// there, but a cursor bug must surface as a parse failure.
func (c *cursor) advance(n int) error {
	for i := 0; i < n; i++ {
		if c.eof() {
			return errAdvancePastEnd
		}
		c.next()
	}
	return nil
}

// hasPrefix reports whether the unconsumed input starts with s.
func (c *cursor) hasPrefix(s string) bool {
	return bytes.HasPrefix(c.src[c.pos:], []byte(s))
}

// skipBlank consumes spaces and tabs on the current line.
func (c *cursor) skipBlank() {
	for !c.eof() {
		if ch := c.peek(); ch != ' ' && ch != '\t' {
			break
		}
		c.next()
	}
}

// skipWhitespace consumes spaces, tabs and line breaks.
func (c *cursor) skipWhitespace() {
	for !c.eof() {
		if ch := c.peek(); ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			break
		}
		c.next()
	}
}

// skipEOL consumes a single line terminator: \r\n, \n or \r.
func (c *cursor) skipEOL() {
	if c.peek() == '\r' {
		c.next()
	}
	if c.peek() == '\n' {
		c.next()
	}
}

// position captures the current location for error reporting and node
// positions.
func (c *cursor) position() ast.Position {
	return ast.Position{Offset: c.pos, Line: c.line, Column: c.column}
}
