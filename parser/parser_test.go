package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/traderfmt/ast"
)

func TestParseTrader(t *testing.T) {
	input := "<Trader> Bob\n    <Category> Weapons\n        AK47,10,100,50\n"

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(doc.Tokens))

	trader, ok := doc.Tokens[0].(*ast.Trader)
	assert.True(t, ok, "token should be a trader")
	assert.Equal(t, "Bob", trader.Name.Text)
	assert.Equal(t, 1, len(trader.Categories))

	category, ok := trader.Categories[0].(*ast.TraderCategory)
	assert.True(t, ok, "entry should be a category")
	assert.Equal(t, "Weapons", category.Name.Text)
	assert.Equal(t, 1, len(category.Items))

	item, ok := category.Items[0].(*ast.CategoryItem)
	assert.True(t, ok, "entry should be an item")
	assert.Equal(t, "AK47", item.Class)
	assert.Equal(t, "10", item.Amount)
	assert.Equal(t, "100", item.BuyValue)
	assert.Equal(t, "50", item.SellValue)
	assert.Zero(t, item.Comment)
}

func TestParseTraderMultipleCategories(t *testing.T) {
	input := `<Trader> Maria
    <Category> Food
        Apple,50,2,1
        Bread,30,4,2
    <Category> Drinks
        Water,100,1,1
`

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(doc.Tokens))

	trader := doc.Tokens[0].(*ast.Trader)
	assert.Equal(t, 2, len(trader.Categories))

	food := trader.Categories[0].(*ast.TraderCategory)
	assert.Equal(t, "Food", food.Name.Text)
	assert.Equal(t, 2, len(food.Items))

	drinks := trader.Categories[1].(*ast.TraderCategory)
	assert.Equal(t, "Drinks", drinks.Name.Text)
	assert.Equal(t, 1, len(drinks.Items))
}

func TestParseCurrencyName(t *testing.T) {
	input := "<CurrencyName> USD\n    <Currency> 1,100\n"

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(doc.Tokens))

	currency, ok := doc.Tokens[0].(*ast.CurrencyName)
	assert.True(t, ok, "token should be a currency table")
	assert.Equal(t, "USD", currency.Name.Text)
	assert.Equal(t, 1, len(currency.Currencies))

	row, ok := currency.Currencies[0].(*ast.CSVLine)
	assert.True(t, ok, "entry should be a row")
	assert.Equal(t, []string{"1", "100"}, row.Values)
}

func TestParseCurrencyTableTerminatesAtTrader(t *testing.T) {
	input := `<CurrencyName> Ruble
    <Currency> 1,1
    <Currency> 5,5
<Trader> Bob
`

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(doc.Tokens))

	currency := doc.Tokens[0].(*ast.CurrencyName)
	assert.Equal(t, 2, len(currency.Currencies))

	_, ok := doc.Tokens[1].(*ast.Trader)
	assert.True(t, ok, "second token should be a trader")
}

func TestParseEmptyCurrencyTable(t *testing.T) {
	input := "<CurrencyName> USD\n<Trader> Bob\n"

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(doc.Tokens))

	currency := doc.Tokens[0].(*ast.CurrencyName)
	assert.Equal(t, 0, len(currency.Currencies))
}

func TestParseFileMarkers(t *testing.T) {
	input := "<OpenFile> TraderConfig.txt\n<FileEnd> TraderConfig.txt\n"

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(doc.Tokens))

	open, ok := doc.Tokens[0].(*ast.OpenFile)
	assert.True(t, ok, "first token should be an open marker")
	assert.Equal(t, "TraderConfig.txt", open.Name.Text)

	end, ok := doc.Tokens[1].(*ast.FileEnd)
	assert.True(t, ok, "second token should be an end marker")
	assert.Equal(t, "TraderConfig.txt", end.Name.Text)
}

func TestParseHeaderLineWithComment(t *testing.T) {
	input := "<Trader> Bob // the gun guy\n"

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)

	trader := doc.Tokens[0].(*ast.Trader)
	assert.Equal(t, "Bob", trader.Name.Text)
	assert.NotZero(t, trader.Name.Comment)
	assert.Equal(t, "the gun guy", trader.Name.Comment.Message)
}

func TestParseItemWithTrailingComment(t *testing.T) {
	input := "<Trader> Bob\n    <Category> Weapons\n        AK47,10,100,50 // rare spawn\n"

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)

	trader := doc.Tokens[0].(*ast.Trader)
	category := trader.Categories[0].(*ast.TraderCategory)
	item := category.Items[0].(*ast.CategoryItem)
	assert.NotZero(t, item.Comment)
	assert.Equal(t, "rare spawn", item.Comment.Message)
}

func TestParseMalformedCategoryItem(t *testing.T) {
	tests := []struct {
		name  string
		row   string
		count string
	}{
		{name: "MissingField", row: "Apple,5,1", count: "got 3"},
		{name: "ExtraField", row: "Apple,5,1,2,3", count: "got 5"},
		{name: "SingleField", row: "Apple", count: "got 1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			input := "<Trader> Bob\n    <Category> Food\n        " + test.row + "\n"

			_, err := ParseString(context.Background(), input)
			assert.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), "malformed category item"), "got %q", err.Error())
			assert.True(t, strings.Contains(err.Error(), test.row), "error should name the raw row, got %q", err.Error())
			assert.True(t, strings.Contains(err.Error(), test.count), "got %q", err.Error())
		})
	}
}

func TestParseMalformedItemPosition(t *testing.T) {
	input := "<Trader> Bob\n    <Category> Food\n        Apple,5,1\n"

	_, err := ParseString(context.Background(), input)
	assert.Error(t, err)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr), "error should be a ParseError")
	assert.Equal(t, 3, parseErr.Pos.Line)
}

func TestParseUnclosedTag(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "NewlineBeforeClose", input: "<CurrencyName USD\n"},
		{name: "EndOfInput", input: "<Trader"},
		{name: "InsideCurrencyTable", input: "<CurrencyName> USD\n    <Currency 1,100\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseString(context.Background(), test.input)
			assert.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), "unclosed tag"), "got %q", err.Error())
		})
	}
}

func TestParseUnrelatedTagBacktracks(t *testing.T) {
	// An unknown but well-formed tag is not an error; its bytes are dropped
	// by the resync skip and parsing continues at the next construct.
	input := "<NotATag> something\n<Trader> Bob\n"

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(doc.Tokens))

	trader := doc.Tokens[0].(*ast.Trader)
	assert.Equal(t, "Bob", trader.Name.Text)
}

func TestParseResyncSkipsStrayBytes(t *testing.T) {
	input := "<OpenFile> a.txt\n??? stray bytes ???\n<FileEnd> a.txt\n"

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(doc.Tokens))

	_, ok := doc.Tokens[0].(*ast.OpenFile)
	assert.True(t, ok)
	_, ok = doc.Tokens[1].(*ast.FileEnd)
	assert.True(t, ok)
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\n  ", "\r\n"} {
		doc, err := ParseString(context.Background(), input)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(doc.Tokens))
	}
}

func TestParseFieldsAreTrimmed(t *testing.T) {
	input := "<CurrencyName> USD\n    <Currency>   1 ,  100  \n"

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)

	currency := doc.Tokens[0].(*ast.CurrencyName)
	row := currency.Currencies[0].(*ast.CSVLine)
	assert.Equal(t, []string{"1", "100"}, row.Values)
}

func TestParseEmptyFieldsAreDropped(t *testing.T) {
	input := "<CurrencyName> USD\n    <Currency> 1,,100,\n"

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)

	currency := doc.Tokens[0].(*ast.CurrencyName)
	row := currency.Currencies[0].(*ast.CSVLine)
	assert.Equal(t, []string{"1", "100"}, row.Values)
}

func TestParseBareCurrencyTag(t *testing.T) {
	// A <Currency> tag with nothing on its line keeps an empty row.
	input := "<CurrencyName> USD\n    <Currency>\n    <Currency> 1,1\n"

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)

	currency := doc.Tokens[0].(*ast.CurrencyName)
	assert.Equal(t, 2, len(currency.Currencies))

	first := currency.Currencies[0].(*ast.CSVLine)
	assert.Equal(t, 0, len(first.Values))
}

func TestParseFullDocumentOrder(t *testing.T) {
	input := `// DayZ trader economy
<OpenFile> TraderConfig.txt
<CurrencyName> Ruble
    <Currency> 1,1
<Trader> Bob
    <Category> Weapons
        AK47,10,100,50
<FileEnd> TraderConfig.txt
`

	doc, err := ParseString(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 5, len(doc.Tokens))

	kinds := make([]string, 0, len(doc.Tokens))
	for _, tok := range doc.Tokens {
		kinds = append(kinds, tok.Kind())
	}
	assert.Equal(t, []string{"Comment", "OpenFile", "CurrencyName", "Trader", "FileEnd"}, kinds)
}

func TestParsePositions(t *testing.T) {
	input := "<Trader> Bob\n    <Category> Weapons\n"

	doc, err := ParseBytesWithFilename(context.Background(), "config.txt", []byte(input))
	assert.NoError(t, err)

	trader := doc.Tokens[0].(*ast.Trader)
	assert.Equal(t, 1, trader.Pos.Line)
	assert.Equal(t, 1, trader.Pos.Column)

	category := trader.Categories[0].(*ast.TraderCategory)
	assert.Equal(t, 2, category.Pos.Line)
	assert.Equal(t, 5, category.Pos.Column)
}
