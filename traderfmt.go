// Package traderfmt parses game trader/economy config files and re-renders
// them in a canonical form: consistent indentation, column-aligned currency
// tables and preserved comments.
//
// The pipeline is two pure steps: parse the whole input into an immutable
// token tree, then render the tree back to text. Formatting the parse of an
// already-canonical document reproduces it byte for byte.
package traderfmt

import (
	"context"
	"strings"

	"github.com/robinvdvleuten/traderfmt/ast"
	"github.com/robinvdvleuten/traderfmt/formatter"
	"github.com/robinvdvleuten/traderfmt/parser"
)

// Parse parses a trader config document from a string.
func Parse(input string) (*ast.Document, error) {
	return parser.ParseString(context.Background(), input)
}

// Format renders a document to canonical text.
func Format(doc *ast.Document) (string, error) {
	var buf strings.Builder
	if err := formatter.New().Format(context.Background(), doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Canonicalize parses input and renders it back in canonical form.
func Canonicalize(input string) (string, error) {
	doc, err := Parse(input)
	if err != nil {
		return "", err
	}
	return Format(doc)
}
