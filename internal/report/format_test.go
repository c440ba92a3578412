package report

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    *decimal.Decimal
		currency string
		want     string
	}{
		{"nil", nil, "$", "unknown"},
		{"sub-cent gets six places", dec("0.000123"), "$", "$0.000123"},
		{"regular gets two places", dec("1.5"), "$", "$1.50"},
		{"exactly one cent", dec("0.01"), "$", "$0.01"},
		{"just under one cent", dec("0.009999"), "$", "$0.009999"},
		{"no currency prefix", dec("10.5"), "", "10.50"},
		{"negative sub-cent", dec("-0.0001"), "$", "$-0.000100"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.price, tt.currency); got != tt.want {
			t.Errorf("%s: FormatPrice = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatChange(t *testing.T) {
	up := 2.5
	down := -0.333
	zero := 0.0

	tests := []struct {
		change *float64
		want   string
	}{
		{nil, "unknown"},
		{&up, "+2.50%"},
		{&down, "-0.33%"},
		{&zero, "+0.00%"},
	}

	for _, tt := range tests {
		if got := FormatChange(tt.change); got != tt.want {
			t.Errorf("FormatChange = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "unknown"},
		{"not a number", "unknown"},
		{"1000", "1,000"},
		{"5000000000", "5,000,000,000"},
		{"42", "42"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.raw); got != tt.want {
			t.Errorf("FormatAmount(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFormatCap(t *testing.T) {
	tests := []struct {
		mcap string
		want string
	}{
		{"5000000000", "$5,000,000,000.00"},
		{"1234.5", "$1,234.50"},
		{"0.5", "$0.50"},
	}

	for _, tt := range tests {
		if got := FormatCap(decimal.RequireFromString(tt.mcap)); got != tt.want {
			t.Errorf("FormatCap(%s) = %q, want %q", tt.mcap, got, tt.want)
		}
	}
}
