// Package parser implements a recursive-descent parser for trader config
// files.
//
// The grammar is recognized PEG-style with ordered choice: every sub-parser
// probes on a copy of the cursor and either consumes-and-matches or leaves
// the shared position untouched so the caller can try the next alternative.
// Top-level content that matches no alternative is resynced by skipping one
// byte and retrying, so stray bytes between recognized constructs never abort
// a parse. Malformed constructs the parser has positively recognized (an
// unclosed tag, a category row with the wrong field count) are hard errors.
package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/traderfmt/ast"
	"github.com/robinvdvleuten/traderfmt/telemetry"
)

// Parser scans a single source buffer. A Parser is one-shot: it consumes the
// whole input once and is discarded with the parse.
type Parser struct {
	filename string
	source   []byte
	cur      cursor
}

// ParseString parses a trader config document from a string.
func ParseString(ctx context.Context, input string) (*ast.Document, error) {
	return ParseBytesWithFilename(ctx, "", []byte(input))
}

// ParseBytes parses a trader config document from bytes.
func ParseBytes(ctx context.Context, data []byte) (*ast.Document, error) {
	return ParseBytesWithFilename(ctx, "", data)
}

// ParseBytesWithFilename parses a trader config document from bytes,
// recording the filename in node positions and errors.
func ParseBytesWithFilename(ctx context.Context, filename string, data []byte) (*ast.Document, error) {
	timer := telemetry.FromContext(ctx).Start("parse")
	defer timer.End()

	p := &Parser{
		filename: filename,
		source:   data,
		cur:      newCursor(data),
	}

	return p.parse()
}

// parse runs the top-level loop: skip whitespace, try the alternatives in
// fixed priority order, and resync by one byte when none match.
func (p *Parser) parse() (*ast.Document, error) {
	doc := &ast.Document{}

	for {
		p.cur.skipWhitespace()
		if p.cur.eof() {
			break
		}

		tok, err := p.parseToken()
		if err != nil {
			return nil, err
		}
		if tok != nil {
			doc.Tokens = append(doc.Tokens, tok)
			continue
		}

		// Resync skip: drop exactly one byte and retry.
		p.cur.next()
	}

	return doc, nil
}

// parseToken tries the top-level alternatives in priority order. A nil token
// with a nil error means nothing matched at the current position.
func (p *Parser) parseToken() (ast.Token, error) {
	if comment, ok := p.parseComment(&p.cur); ok {
		return comment, nil
	}

	if currency, ok, err := p.parseCurrencyName(&p.cur); err != nil {
		return nil, err
	} else if ok {
		return currency, nil
	}

	if trader, ok, err := p.parseTrader(&p.cur); err != nil {
		return nil, err
	} else if ok {
		return trader, nil
	}

	if pos, ok, err := p.parseTag(&p.cur, "OpenFile"); err != nil {
		return nil, err
	} else if ok {
		return &ast.OpenFile{Pos: pos, Name: p.parseLine(&p.cur)}, nil
	}

	if pos, ok, err := p.parseTag(&p.cur, "FileEnd"); err != nil {
		return nil, err
	} else if ok {
		return &ast.FileEnd{Pos: pos, Name: p.parseLine(&p.cur)}, nil
	}

	return nil, nil
}

// parseComment probes for a "//" comment. The message is the rest of the
// line with leading whitespace removed; anything after the second slash
// belongs to the message, so "///" still reads as a comment. The line
// terminator is left unconsumed.
func (p *Parser) parseComment(c *cursor) (*ast.Comment, bool) {
	probe := *c
	probe.skipWhitespace()

	pos := probe.position()
	if !probe.hasPrefix("//") {
		return nil, false
	}
	probe.next()
	probe.next()
	probe.skipBlank()

	start := probe.pos
	for !probe.eof() && probe.peek() != '\n' && probe.peek() != '\r' {
		probe.next()
	}
	message := string(probe.src[start:probe.pos])

	*c = probe
	return &ast.Comment{Pos: pos, Message: message}, true
}

// parseTag probes for an angle-bracket tag with the given keyword. The name
// is read up to '>', '/' or the line end; hitting the line end (or end of
// input) first is a hard "unclosed tag" error no matter which keyword was
// expected, while a different, unrelated keyword is a plain no-match that
// lets the caller try its next alternative.
func (p *Parser) parseTag(c *cursor, keyword string) (ast.Position, bool, error) {
	probe := *c
	probe.skipWhitespace()

	pos := probe.position()
	if probe.peek() != '<' {
		return pos, false, nil
	}
	probe.next()

	start := probe.pos
	for probe.peek() != '>' && probe.peek() != '/' {
		if probe.eof() || probe.peek() == '\n' || probe.peek() == '\r' {
			return pos, false, p.errorAt(pos, "unclosed tag %q", "<"+string(probe.src[start:probe.pos]))
		}
		probe.next()
	}

	if string(probe.src[start:probe.pos]) != keyword {
		return pos, false, nil
	}

	// Commit past the closing '>'. A '/' terminator is left in place; it
	// begins the line's trailing comment.
	if probe.peek() == '>' {
		if err := probe.advance(1); err != nil {
			return pos, false, p.errorAt(pos, "%v", err)
		}
	}

	*c = probe
	return pos, true, nil
}

// parseLine reads the free-form remainder of a header line: text up to the
// line end or up to a trailing "//" comment. It cannot fail; an empty
// remainder yields an empty Line.
func (p *Parser) parseLine(c *cursor) ast.Line {
	c.skipBlank()

	line := ast.Line{Pos: c.position()}
	var text []byte
	for !c.eof() {
		ch := c.peek()
		if ch == '\n' || ch == '\r' {
			c.skipEOL()
			break
		}
		if ch == '/' && c.hasPrefix("//") {
			line.Comment, _ = p.parseComment(c)
			break
		}
		text = append(text, ch)
		c.next()
	}
	line.Text = strings.TrimSpace(string(text))

	return line
}

// parseCSVLine probes for a comma-separated row. Fields are trimmed and
// empty fields dropped; a "//" starts the row's trailing comment and ends
// field accumulation. Seeing '<' anywhere in the row means the next tag has
// begun: the probe is abandoned without consuming anything, which is what
// lets a currency table or category terminate at its successor. A row with
// neither fields nor a comment is a no-match so empty space is never
// recorded as a phantom row.
func (p *Parser) parseCSVLine(c *cursor) (*ast.CSVLine, bool) {
	probe := *c
	probe.skipWhitespace()

	row := &ast.CSVLine{Pos: probe.position()}
	var field []byte
	endField := func() {
		if v := strings.TrimSpace(string(field)); v != "" {
			row.Values = append(row.Values, v)
		}
		field = field[:0]
	}

scan:
	for !probe.eof() {
		switch ch := probe.peek(); ch {
		case '<':
			return nil, false
		case '\n', '\r':
			probe.skipEOL()
			break scan
		case ',':
			endField()
			probe.next()
		case '/':
			if probe.hasPrefix("//") {
				endField()
				row.Comment, _ = p.parseComment(&probe)
				break scan
			}
			field = append(field, ch)
			probe.next()
		default:
			field = append(field, ch)
			probe.next()
		}
	}
	endField()

	if len(row.Values) == 0 && row.Comment == nil {
		return nil, false
	}

	*c = probe
	return row, true
}

// parseCurrencyRow probes for a "<Currency>" tag followed by its CSV row.
func (p *Parser) parseCurrencyRow(c *cursor) (*ast.CSVLine, bool, error) {
	probe := *c

	pos, ok, err := p.parseTag(&probe, "Currency")
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	row, ok := p.parseCSVLine(&probe)
	if !ok {
		// A bare tag with nothing on its line: keep an empty row rather
		// than dropping the tag.
		row = &ast.CSVLine{Pos: pos}
	}

	*c = probe
	return row, true, nil
}

// parseCurrencyName probes for a "<CurrencyName>" block: the header line plus
// the currency table. Termination is structural: the table ends at the first
// position where neither a comment nor a currency row matches.
func (p *Parser) parseCurrencyName(c *cursor) (*ast.CurrencyName, bool, error) {
	probe := *c

	pos, ok, err := p.parseTag(&probe, "CurrencyName")
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	currency := &ast.CurrencyName{Pos: pos, Name: p.parseLine(&probe)}
	for {
		if comment, ok := p.parseComment(&probe); ok {
			currency.Currencies = append(currency.Currencies, comment)
			continue
		}
		row, ok, err := p.parseCurrencyRow(&probe)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			break
		}
		currency.Currencies = append(currency.Currencies, row)
	}

	*c = probe
	return currency, true, nil
}

// parseCategoryItem probes for one item row of a category and validates its
// shape. A row that is recognized but does not have exactly four fields is a
// hard error naming the raw row content; a missing or extra comma must be
// rejected, never silently coerced.
func (p *Parser) parseCategoryItem(c *cursor) (*ast.CategoryItem, bool, error) {
	probe := *c

	row, ok := p.parseCSVLine(&probe)
	if !ok {
		return nil, false, nil
	}

	item, err := ast.NewCategoryItem(row)
	if err != nil {
		raw := strings.TrimRight(string(p.source[row.Pos.Offset:probe.pos]), " \t\r\n")
		return nil, false, p.errorAt(row.Pos, "malformed category item %q: %v", raw, err)
	}

	*c = probe
	return item, true, nil
}

// parseCategory probes for a "<Category>" block: the header line plus its
// item entries.
func (p *Parser) parseCategory(c *cursor) (*ast.TraderCategory, bool, error) {
	probe := *c

	pos, ok, err := p.parseTag(&probe, "Category")
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	category := &ast.TraderCategory{Pos: pos, Name: p.parseLine(&probe)}
	for {
		if comment, ok := p.parseComment(&probe); ok {
			category.Items = append(category.Items, comment)
			continue
		}
		item, ok, err := p.parseCategoryItem(&probe)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			break
		}
		category.Items = append(category.Items, item)
	}

	*c = probe
	return category, true, nil
}

// parseTrader probes for a "<Trader>" block: the header line plus its
// category entries.
func (p *Parser) parseTrader(c *cursor) (*ast.Trader, bool, error) {
	probe := *c

	pos, ok, err := p.parseTag(&probe, "Trader")
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	trader := &ast.Trader{Pos: pos, Name: p.parseLine(&probe)}
	for {
		if comment, ok := p.parseComment(&probe); ok {
			trader.Categories = append(trader.Categories, comment)
			continue
		}
		category, ok, err := p.parseCategory(&probe)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			break
		}
		trader.Categories = append(trader.Categories, category)
	}

	*c = probe
	return trader, true, nil
}

// errorAt builds a ParseError at the given position.
func (p *Parser) errorAt(pos ast.Position, format string, args ...interface{}) *ParseError {
	pos.Filename = p.filename
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
