// Package formatter renders a parsed token tree back to canonical trader
// config text.
//
// The formatter is purely structural: it assumes the tree is well-formed
// (guaranteed by a successful parse), performs no I/O of its own beyond the
// final write, and cannot fail except on a writer fault. Rendering a document
// is the concatenation of its top-level tokens' renderings in source order.
package formatter

import (
	"context"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/traderfmt/ast"
	"github.com/robinvdvleuten/traderfmt/telemetry"
)

const (
	// DefaultColumnWidth is the fixed cell width of currency table rows.
	// Each field plus its separating comma is space-padded to this width;
	// wider cells are emitted at their natural length, never truncated.
	DefaultColumnWidth = 60

	// DefaultIndentation is the indentation of nested block entries.
	// Category items and their comments are indented twice this deep.
	DefaultIndentation = 4
)

// Formatter renders tokens with fixed indentation and column rules.
type Formatter struct {
	// ColumnWidth is the cell width used for currency rows.
	ColumnWidth int

	// Indentation is the indent of entries nested one level deep.
	Indentation int
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithColumnWidth overrides the currency cell width.
func WithColumnWidth(width int) Option {
	return func(f *Formatter) {
		f.ColumnWidth = width
	}
}

// WithIndentation overrides the nested-entry indent.
func WithIndentation(indent int) Option {
	return func(f *Formatter) {
		f.Indentation = indent
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		ColumnWidth: DefaultColumnWidth,
		Indentation: DefaultIndentation,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Format renders the document and writes the output to the writer in one
// write, so a writer fault never leaves partial output interleaved with
// other stream users.
func (f *Formatter) Format(ctx context.Context, doc *ast.Document, w io.Writer) error {
	timer := telemetry.FromContext(ctx).Start("render")
	defer timer.End()

	var buf strings.Builder
	buf.Grow(len(doc.Tokens) * 64)

	for _, tok := range doc.Tokens {
		f.formatToken(tok, &buf)
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// FormatToken renders a single top-level token to a string.
func (f *Formatter) FormatToken(tok ast.Token) string {
	var buf strings.Builder
	f.formatToken(tok, &buf)
	return buf.String()
}

func (f *Formatter) formatToken(tok ast.Token, buf *strings.Builder) {
	switch t := tok.(type) {
	case *ast.Comment:
		f.formatComment(t, buf)
		buf.WriteByte('\n')
	case *ast.CurrencyName:
		f.formatCurrencyName(t, buf)
	case *ast.Trader:
		f.formatTrader(t, buf)
	case *ast.OpenFile:
		buf.WriteString("<OpenFile> ")
		f.formatLine(t.Name, buf)
	case *ast.FileEnd:
		buf.WriteString("<FileEnd> ")
		f.formatLine(t.Name, buf)
	}
}

// formatComment renders "// " plus the stored message, with no trailing
// content; the wrapping construct owns the line break.
func (f *Formatter) formatComment(c *ast.Comment, buf *strings.Builder) {
	buf.WriteString("// ")
	buf.WriteString(c.Message)
}

// formatLine renders a header line: text, one space, the trailing comment if
// any, one newline.
func (f *Formatter) formatLine(l ast.Line, buf *strings.Builder) {
	buf.WriteString(l.Text)
	buf.WriteByte(' ')
	if l.Comment != nil {
		f.formatComment(l.Comment, buf)
	}
	buf.WriteByte('\n')
}

// formatCurrencyName renders the table header and its entries, each indented
// one level.
func (f *Formatter) formatCurrencyName(c *ast.CurrencyName, buf *strings.Builder) {
	buf.WriteString("<CurrencyName> ")
	f.formatLine(c.Name, buf)

	for _, entry := range c.Currencies {
		f.writeIndent(f.Indentation, buf)
		switch e := entry.(type) {
		case *ast.Comment:
			f.formatComment(e, buf)
			buf.WriteByte('\n')
		case *ast.CSVLine:
			f.formatCurrencyRow(e, buf)
		}
	}
}

// formatCurrencyRow renders one denomination row. Every field (with its
// separating comma, omitted on the last field) is space-padded to the fixed
// cell width so the values line up as columns; a cell already wider than the
// column is emitted at natural length.
func (f *Formatter) formatCurrencyRow(row *ast.CSVLine, buf *strings.Builder) {
	buf.WriteString("<Currency> ")

	for i, value := range row.Values {
		cell := value
		if i < len(row.Values)-1 {
			cell += ","
		}
		buf.WriteString(cell)
		if pad := f.ColumnWidth - runewidth.StringWidth(cell); pad > 0 {
			buf.WriteString(strings.Repeat(" ", pad))
		}
	}

	if row.Comment != nil {
		buf.WriteByte(' ')
		f.formatComment(row.Comment, buf)
	}
	buf.WriteByte('\n')
}

// formatTrader renders the trader header and its category entries.
func (f *Formatter) formatTrader(t *ast.Trader, buf *strings.Builder) {
	buf.WriteString("<Trader> ")
	f.formatLine(t.Name, buf)

	for _, entry := range t.Categories {
		switch e := entry.(type) {
		case *ast.Comment:
			f.writeIndent(f.Indentation, buf)
			f.formatComment(e, buf)
			buf.WriteByte('\n')
		case *ast.TraderCategory:
			f.formatCategory(e, buf)
		}
	}
}

// formatCategory renders the category header and its item entries, two
// levels deep.
func (f *Formatter) formatCategory(c *ast.TraderCategory, buf *strings.Builder) {
	f.writeIndent(f.Indentation, buf)
	buf.WriteString("<Category> ")
	f.formatLine(c.Name, buf)

	for _, entry := range c.Items {
		f.writeIndent(2*f.Indentation, buf)
		switch e := entry.(type) {
		case *ast.Comment:
			f.formatComment(e, buf)
			buf.WriteByte('\n')
		case *ast.CategoryItem:
			f.formatItem(e, buf)
		}
	}
}

// formatItem renders one tradeable entry: the four fields joined with plain
// commas, deliberately without the currency table's column padding.
func (f *Formatter) formatItem(item *ast.CategoryItem, buf *strings.Builder) {
	buf.WriteString(item.Class)
	buf.WriteByte(',')
	buf.WriteString(item.Amount)
	buf.WriteByte(',')
	buf.WriteString(item.BuyValue)
	buf.WriteByte(',')
	buf.WriteString(item.SellValue)

	if item.Comment != nil {
		buf.WriteByte(' ')
		f.formatComment(item.Comment, buf)
	}
	buf.WriteByte('\n')
}

func (f *Formatter) writeIndent(n int, buf *strings.Builder) {
	for i := 0; i < n; i++ {
		buf.WriteByte(' ')
	}
}
