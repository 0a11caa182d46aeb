package normalize

import (
	"testing"

	"cloud.google.com/go/civil"
)

func TestParseDate(t *testing.T) {
	want := civil.Date{Year: 2025, Month: 9, Day: 1}

	tests := []struct {
		name  string
		token string
		want  civil.Date
		ok    bool
	}{
		{"slash DD/MM/YYYY", "01/09/2025", want, true},
		{"dash DD-MM-YYYY", "01-09-2025", want, true},
		{"month abbreviation", "01-Sep-2025", want, true},
		{"month abbreviation uppercase", "01-SEP-2025", want, true},
		{"month abbreviation lowercase", "01-sep-2025", want, true},
		{"space separated", "01 Sep 2025", want, true},
		{"iso", "2025-09-01", want, true},
		{"dotted", "01.09.2025", want, true},
		{"two-digit year", "01/09/25", want, true},
		{"two-digit year high", "01/09/99", civil.Date{Year: 2099, Month: 9, Day: 1}, true},
		{"four-digit pre-2000 slash", "15/03/1999", civil.Date{Year: 1999, Month: 3, Day: 15}, true},
		{"four-digit pre-2000 iso", "1999-03-15", civil.Date{Year: 1999, Month: 3, Day: 15}, true},
		{"four-digit pre-2000 abbreviated", "15-Mar-1999", civil.Date{Year: 1999, Month: 3, Day: 15}, true},
		{"surrounding whitespace", "  01/09/2025  ", want, true},
		{"day before month wins", "02/03/2025", civil.Date{Year: 2025, Month: 3, Day: 2}, true},
		{"empty", "", civil.Date{}, false},
		{"prose", "invalid", civil.Date{}, false},
		{"out of range", "32/13/2025", civil.Date{}, false},
		{"bare number", "2025", civil.Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.token)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.token, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseDateEquivalentFormats(t *testing.T) {
	// The same calendar date in three conventions must normalize
	// identically, otherwise re-ingested statements would not deduplicate.
	tokens := []string{"01-Sep-2025", "01/09/2025", "2025-09-01"}

	first, ok := ParseDate(tokens[0])
	if !ok {
		t.Fatalf("ParseDate(%q) failed", tokens[0])
	}
	for _, token := range tokens[1:] {
		got, ok := ParseDate(token)
		if !ok {
			t.Fatalf("ParseDate(%q) failed", token)
		}
		if got != first {
			t.Errorf("ParseDate(%q) = %v, want %v", token, got, first)
		}
	}
}
