package normalize

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/cashflow-ingest/internal/domain"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		want     string // expected magnitude as a decimal string
		negative bool
		signHint domain.Direction
		ok       bool
	}{
		{name: "plain", token: "500", want: "500", ok: true},
		{name: "decimals", token: "1234.56", want: "1234.56", ok: true},
		{name: "three-digit grouping", token: "1,234.56", want: "1234.56", ok: true},
		{name: "indian grouping", token: "1,23,456.78", want: "123456.78", ok: true},
		{name: "rupee symbol", token: "₹1,234.56", want: "1234.56", ok: true},
		{name: "dollar symbol", token: "$1,234.56", want: "1234.56", ok: true},
		{name: "euro symbol", token: "€1234.56", want: "1234.56", ok: true},
		{name: "accounting parentheses", token: "(500)", want: "500", negative: true, ok: true},
		{name: "accounting with decimals", token: "(1,234.56)", want: "1234.56", negative: true, ok: true},
		{name: "debit suffix", token: "1234.56 Dr", want: "1234.56", signHint: domain.Debit, ok: true},
		{name: "credit suffix upper", token: "1234.56 CR", want: "1234.56", signHint: domain.Credit, ok: true},
		{name: "debit suffix lower", token: "1234.56 dr", want: "1234.56", signHint: domain.Debit, ok: true},
		{name: "bare negative", token: "-250.00", want: "250", negative: true, ok: true},
		{name: "negative with symbol", token: "-₹1,000", want: "1000", negative: true, ok: true},
		{name: "empty", token: ""},
		{name: "single dash", token: "-"},
		{name: "double dash", token: "--"},
		{name: "nan", token: "nan"},
		{name: "nan upper", token: "NaN"},
		{name: "zero", token: "0"},
		{name: "zero decimal", token: "0.00"},
		{name: "prose", token: "abc"},
		{name: "double decimal point", token: "12.34.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.token)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.token, ok, tt.ok)
			}
			if !ok {
				return
			}
			want := decimal.RequireFromString(tt.want)
			if !got.Magnitude.Equal(want) {
				t.Errorf("ParseAmount(%q) magnitude = %s, want %s", tt.token, got.Magnitude, want)
			}
			if got.Negative != tt.negative {
				t.Errorf("ParseAmount(%q) negative = %v, want %v", tt.token, got.Negative, tt.negative)
			}
			if got.SignHint != tt.signHint {
				t.Errorf("ParseAmount(%q) signHint = %q, want %q", tt.token, got.SignHint, tt.signHint)
			}
		})
	}
}
