package parser

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/traderfmt/ast"
)

// errAdvancePastEnd signals a cursor commit that tried to move past the end
// of input. See cursor.advance.
var errAdvancePastEnd = errors.New("cannot advance cursor past end of input")

// ParseError represents a syntax error during parsing.
type ParseError struct {
	Pos        ast.Position
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	location := fmt.Sprintf("%s:%d", e.Pos.Filename, e.Pos.Line)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d", e.Pos.Line)
	}

	return fmt.Sprintf("%s: %s", location, e.Message)
}

func (e *ParseError) GetPosition() ast.Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}
