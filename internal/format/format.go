// Package format renders prices and dates according to the display
// preferences stored in the settings row.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"laby-stock-backend/internal/model"
)

type currencyStyle struct {
	symbol   string
	prefix   bool
	thousand string
	decimal  string
	places   int32
}

var currencies = map[string]currencyStyle{
	"EUR": {symbol: "€", prefix: false, thousand: " ", decimal: ",", places: 2},
	"USD": {symbol: "$", prefix: true, thousand: ",", decimal: ".", places: 2},
	"GBP": {symbol: "£", prefix: true, thousand: ",", decimal: ".", places: 2},
	"MAD": {symbol: "MAD", prefix: false, thousand: " ", decimal: ",", places: 2},
	"XOF": {symbol: "FCFA", prefix: false, thousand: " ", decimal: ",", places: 0},
}

var dateLayouts = map[string]string{
	model.DateFormatDMY: "02/01/2006",
	model.DateFormatMDY: "01/02/2006",
	model.DateFormatYMD: "2006-01-02",
}

// KnownCurrency reports whether the currency code has a display style
func KnownCurrency(code string) bool {
	_, ok := currencies[code]
	return ok
}

// KnownDateFormat reports whether the date format code is supported
func KnownDateFormat(code string) bool {
	_, ok := dateLayouts[code]
	return ok
}

// Price renders an amount with thousands grouping and the currency symbol
// in its usual position. Unknown codes fall back to a plain suffix.
func Price(amount decimal.Decimal, currency string) string {
	style, ok := currencies[currency]
	if !ok {
		style = currencyStyle{symbol: currency, thousand: " ", decimal: ",", places: 2}
	}

	fixed := amount.StringFixed(style.places)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if style.prefix {
		b.WriteString(style.symbol)
	}
	b.WriteString(groupDigits(intPart, style.thousand))
	if fracPart != "" {
		b.WriteString(style.decimal)
		b.WriteString(fracPart)
	}
	if !style.prefix {
		b.WriteByte(' ')
		b.WriteString(style.symbol)
	}
	return b.String()
}

// Date renders a time using the layout mapped to the format code,
// defaulting to DD/MM/YYYY for unknown codes.
func Date(t time.Time, code string) string {
	layout, ok := dateLayouts[code]
	if !ok {
		layout = dateLayouts[model.DateFormatDMY]
	}
	return t.Format(layout)
}

// DateLayout exposes the Go time layout for a format code
func DateLayout(code string) string {
	layout, ok := dateLayouts[code]
	if !ok {
		return dateLayouts[model.DateFormatDMY]
	}
	return layout
}

func groupDigits(digits, sep string) string {
	n := len(digits)
	if n <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
