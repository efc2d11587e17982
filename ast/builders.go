// Constructor functions for programmatically building token trees, e.g. when
// generating configs from spreadsheets or in tests. The builders perform the
// same structural validation as the parser.
package ast

import (
	"fmt"
	"strings"
)

// NewComment creates a Comment with the given message. Leading whitespace is
// stripped, matching what the parser stores.
//
// Example:
//
//	c := ast.NewComment("prices updated 2024-06-01")
func NewComment(message string) *Comment {
	return &Comment{Message: strings.TrimLeft(message, " \t")}
}

// NewLine creates a header Line with the given text and optional comment.
// Text is trimmed of surrounding whitespace.
func NewLine(text string, comment *Comment) Line {
	return Line{Text: strings.TrimSpace(text), Comment: comment}
}

// NewCSVLine creates a CSVLine from the given field values. Each value is
// trimmed and empty values are dropped, matching parser behavior.
func NewCSVLine(values []string, comment *Comment) *CSVLine {
	row := &CSVLine{Comment: comment}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			row.Values = append(row.Values, v)
		}
	}
	return row
}

// NewCategoryItem refines a CSV row into a CategoryItem. It fails unless the
// row has exactly four fields (class, amount, buy value, sell value); a row
// with a missing or extra comma must be rejected, never silently coerced.
func NewCategoryItem(row *CSVLine) (*CategoryItem, error) {
	if len(row.Values) != NumItemFields {
		return nil, fmt.Errorf("expected %d fields (class, amount, buy value, sell value), got %d", NumItemFields, len(row.Values))
	}
	return &CategoryItem{
		Pos:       row.Pos,
		Class:     row.Values[0],
		Amount:    row.Values[1],
		BuyValue:  row.Values[2],
		SellValue: row.Values[3],
		Comment:   row.Comment,
	}, nil
}
