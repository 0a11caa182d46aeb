package normalize

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/cashflow-ingest/internal/domain"
)

// Amount is the result of parsing one raw amount token.
type Amount struct {
	Magnitude decimal.Decimal
	// Negative is set by a leading minus sign or the accounting (X) form.
	Negative bool
	// SignHint is set by a trailing Dr/Cr locale indicator, "" otherwise.
	SignHint domain.Direction
}

// ParseAmount converts a raw amount token into a positive magnitude plus
// sign information. The second return value is false for empty cells,
// placeholders ("-", "--", "nan"), zero values, and anything non-numeric:
// no value is never coerced to zero.
func ParseAmount(token string) (Amount, bool) {
	s := strings.TrimSpace(token)
	switch strings.ToLower(s) {
	case "", "-", "--", "nan":
		return Amount{}, false
	}

	var out Amount

	// Accounting-negative form: (1,234.56)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		out.Negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// Trailing Dr/Cr suffix used by Indian and some UK statements.
	switch upper := strings.ToUpper(s); {
	case strings.HasSuffix(upper, "DR"):
		out.SignHint = domain.Debit
		s = strings.TrimSpace(s[:len(s)-2])
	case strings.HasSuffix(upper, "CR"):
		out.SignHint = domain.Credit
		s = strings.TrimSpace(s[:len(s)-2])
	}

	// Strip currency symbols, internal whitespace, and grouping commas.
	// Dropping every comma tolerates both 3-digit and Indian 2-3-digit
	// grouping without caring about group widths.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Sc, r) || unicode.IsSpace(r) || r == ',' {
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	if strings.HasPrefix(s, "-") {
		out.Negative = true
		s = s[1:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsZero() {
		return Amount{}, false
	}

	out.Magnitude = d.Abs()
	return out, true
}
