// Package ast declares the types used to represent the token tree of a trader
// config file.
//
// The tree mirrors the source structure: top-level tokens (comments, currency
// tables, traders, file markers) own their nested entries, and every sequence
// preserves source order. Order is semantically load-bearing; it is also the
// render order used by the formatter package. Nodes are built bottom-up during
// parsing and never mutated afterwards. All leaf text is owned by the node, so
// a tree stays valid after the source buffer is gone.
package ast

// Document represents one parsed trader config file: the ordered sequence of
// top-level tokens.
type Document struct {
	Tokens []Token
}

// Token is the interface implemented by all top-level token types: Comment,
// CurrencyName, Trader, OpenFile and FileEnd. The variant set is closed; the
// formatter dispatches over it with an exhaustive type switch.
type Token interface {
	// Kind returns the token's grammar name, e.g. "Trader".
	Kind() string

	// Position returns the token's start position in the source.
	Position() Position
}

// CurrencyToken is an entry of a currency denomination table: either a
// Comment or a currency row (CSVLine).
type CurrencyToken interface {
	currencyToken()
}

// CategoryItemToken is an entry of a trader category: either a Comment or a
// CategoryItem.
type CategoryItemToken interface {
	categoryItemToken()
}

// TraderCategoryToken is an entry of a trader block: either a Comment or a
// TraderCategory.
type TraderCategoryToken interface {
	traderCategoryToken()
}

// Comment is a "//" comment. Message holds the text after the slashes with
// leading whitespace removed; the original text is otherwise preserved
// verbatim. A Comment can appear at any level of the tree.
type Comment struct {
	Pos     Position
	Message string
}

var _ Token = (*Comment)(nil)

func (c *Comment) Kind() string         { return "Comment" }
func (c *Comment) Position() Position   { return c.Pos }
func (c *Comment) currencyToken()       {}
func (c *Comment) categoryItemToken()   {}
func (c *Comment) traderCategoryToken() {}

// Line is the free-form remainder of a header line following a tag, e.g. a
// trader's display name, plus an optional trailing comment. Text is trimmed
// of surrounding whitespace.
type Line struct {
	Pos     Position
	Text    string
	Comment *Comment
}

// CSVLine is an ordered sequence of trimmed comma-separated fields plus an
// optional trailing comment. Values may be empty when the row carries only a
// comment. Empty fields are dropped rather than recorded.
type CSVLine struct {
	Pos     Position
	Values  []string
	Comment *Comment
}

func (l *CSVLine) currencyToken() {}

// NumItemFields is the exact field count a category item row must have.
const NumItemFields = 4

// CategoryItem is one validated tradeable entry of a category: class
// identifier, amount, buy value and sell value. The numeric-looking fields
// are kept as strings; the tool does not interpret game values.
type CategoryItem struct {
	Pos       Position
	Class     string
	Amount    string
	BuyValue  string
	SellValue string
	Comment   *Comment
}

func (i *CategoryItem) categoryItemToken() {}

// Values returns the item's four fields in source order.
func (i *CategoryItem) Values() []string {
	return []string{i.Class, i.Amount, i.BuyValue, i.SellValue}
}

// CurrencyName is a currency denomination table: the header line naming the
// currency plus its ordered entries.
type CurrencyName struct {
	Pos        Position
	Name       Line
	Currencies []CurrencyToken
}

var _ Token = (*CurrencyName)(nil)

func (c *CurrencyName) Kind() string       { return "CurrencyName" }
func (c *CurrencyName) Position() Position { return c.Pos }

// TraderCategory is one category block of a trader: the header line naming
// the category plus its ordered item entries.
type TraderCategory struct {
	Pos   Position
	Name  Line
	Items []CategoryItemToken
}

func (c *TraderCategory) traderCategoryToken() {}

// Trader is one trader definition: the header line naming the trader plus its
// ordered category entries.
type Trader struct {
	Pos        Position
	Name       Line
	Categories []TraderCategoryToken
}

var _ Token = (*Trader)(nil)

func (t *Trader) Kind() string       { return "Trader" }
func (t *Trader) Position() Position { return t.Pos }

// OpenFile is a marker opening a file section in the source format.
type OpenFile struct {
	Pos  Position
	Name Line
}

var _ Token = (*OpenFile)(nil)

func (o *OpenFile) Kind() string       { return "OpenFile" }
func (o *OpenFile) Position() Position { return o.Pos }

// FileEnd is a marker closing a file section in the source format.
type FileEnd struct {
	Pos  Position
	Name Line
}

var _ Token = (*FileEnd)(nil)

func (f *FileEnd) Kind() string       { return "FileEnd" }
func (f *FileEnd) Position() Position { return f.Pos }
