package format

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is one of the currencies offered in the record form
type Currency struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Symbol string `json:"symbol"`
	Locale string `json:"locale"`
}

// Currencies is the display set. Records may carry other currency codes; they
// are formatted with a plain code prefix.
var Currencies = []Currency{
	{Name: "United States dollar", Value: "usd", Symbol: "$", Locale: "en-US"},
	{Name: "Euro", Value: "eur", Symbol: "€", Locale: "fi-FI"},
	{Name: "British Pound Sterling", Value: "gbp", Symbol: "£", Locale: "en-US"},
	{Name: "Japanese Yen", Value: "jpy", Symbol: "¥", Locale: "en-US"},
	{Name: "Indian Rupee", Value: "inr", Symbol: "₹", Locale: "en-US"},
}

var zeroDisplay = map[string]string{
	"eur": "0,00 €",
	"gbp": "£0.00",
	"jpy": "¥0.00",
	"inr": "₹0.00",
}

// Lookup finds a display currency by its value
func Lookup(value string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Value == value {
			return c, true
		}
	}
	return Currency{}, false
}

// Locale returns the display locale of a currency, en-US when unknown
func Locale(value string) string {
	if c, ok := Lookup(value); ok {
		return c.Locale
	}
	return "en-US"
}

// separators and symbol placement per display locale. "1" stands for the
// number and "$" for the currency symbol.
type localeFormat struct {
	decimal  string
	thousand string
	template string
}

var localeFormats = map[string]localeFormat{
	"en-US": {decimal: ".", thousand: ",", template: "$1"},
	"fi-FI": {decimal: ",", thousand: " ", template: "1 $"},
}

// Amount formats a value in the given currency using its display locale,
// e.g. "$1,234.50" or "1 234,50 €"
func Amount(value float64, currency string) string {
	if value == 0 {
		if s, ok := zeroDisplay[currency]; ok {
			return s
		}
		return "$0.00"
	}

	code := strings.ToUpper(currency)
	c := money.GetCurrency(code)
	if c == nil {
		return code + " " + decimal.NewFromFloat(value).StringFixed(2)
	}

	minor := decimal.NewFromFloat(value).Shift(int32(c.Fraction)).Round(0).IntPart()
	if _, ok := Lookup(currency); !ok {
		return money.New(minor, code).Display()
	}

	lf, ok := localeFormats[Locale(currency)]
	if !ok {
		lf = localeFormats["en-US"]
	}
	return money.NewFormatter(c.Fraction, lf.decimal, lf.thousand, c.Grapheme, lf.template).Format(minor)
}

// AmountK formats a value in thousands with no decimals, e.g. "$12k", for chart axes
func AmountK(value float64, currency string) string {
	thousands := decimal.NewFromFloat(value).Div(decimal.NewFromInt(1000)).Round(0)

	symbol := strings.ToUpper(currency) + " "
	if c, ok := Lookup(currency); ok {
		symbol = c.Symbol
	}

	if thousands.IsNegative() {
		return "-" + symbol + thousands.Abs().String() + "k"
	}
	return symbol + thousands.String() + "k"
}

// Percent formats a ratio already expressed in percent, e.g. "12.50%"
func Percent(value float64, places int32) string {
	return decimal.NewFromFloat(value).StringFixed(places) + "%"
}

// Fixed rounds a value to two decimals for spreadsheets and CSV-like output
func Fixed(value float64) float64 {
	f, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return f
}
