package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"laby-stock-backend/internal/model"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{name: "eur_grouped", amount: "1234.56", currency: "EUR", want: "1 234,56 €"},
		{name: "eur_small", amount: "9.5", currency: "EUR", want: "9,50 €"},
		{name: "eur_zero", amount: "0", currency: "EUR", want: "0,00 €"},
		{name: "usd_prefix", amount: "1234.56", currency: "USD", want: "$1,234.56"},
		{name: "usd_millions", amount: "1234567.89", currency: "USD", want: "$1,234,567.89"},
		{name: "gbp_prefix", amount: "42", currency: "GBP", want: "£42.00"},
		{name: "mad_suffix", amount: "1500", currency: "MAD", want: "1 500,00 MAD"},
		{name: "xof_no_decimals", amount: "1000000", currency: "XOF", want: "1 000 000 FCFA"},
		{name: "negative_eur", amount: "-1234.5", currency: "EUR", want: "-1 234,50 €"},
		{name: "unknown_code_falls_back_to_suffix", amount: "10", currency: "CHF", want: "10,00 CHF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			if err != nil {
				t.Fatalf("Bad test amount %q: %v", tt.amount, err)
			}
			if got := Price(amount, tt.currency); got != tt.want {
				t.Errorf("Price(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	date := time.Date(2026, 3, 7, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "day_month_year", code: model.DateFormatDMY, want: "07/03/2026"},
		{name: "month_day_year", code: model.DateFormatMDY, want: "03/07/2026"},
		{name: "iso", code: model.DateFormatYMD, want: "2026-03-07"},
		{name: "unknown_defaults_to_dmy", code: "YY.MM.DD", want: "07/03/2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Date(date, tt.code); got != tt.want {
				t.Errorf("Date(%s) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestKnownCodes(t *testing.T) {
	if !KnownCurrency("EUR") || KnownCurrency("BTC") {
		t.Error("KnownCurrency misclassified a code")
	}
	if !KnownDateFormat(model.DateFormatYMD) || KnownDateFormat("DD-MM") {
		t.Error("KnownDateFormat misclassified a code")
	}
}
