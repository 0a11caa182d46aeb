package normalize

import (
	"strings"
	"time"
	"unicode"

	"cloud.google.com/go/civil"
)

// twoDigitYearLayout carries no century; parsed years below 2000 are
// windowed forward so that "99" means 2099, never 1999. Four-digit layouts
// state their century explicitly and must not be touched.
const twoDigitYearLayout = "02/01/06"

// dateLayouts is the fixed priority order for date disambiguation.
// Day-before-month is the policy throughout; there is no locale detection.
var dateLayouts = []string{
	"02/01/2006", // DD/MM/YYYY
	"02-01-2006", // DD-MM-YYYY
	"02-Jan-2006",
	"02 Jan 2006",
	"2006-01-02",
	"02.01.2006",
	twoDigitYearLayout,
}

// ParseDate converts a raw date token into a calendar date. The second
// return value is false when no known pattern matches; callers treat that
// as a row rejection, never as a zero date.
func ParseDate(token string) (civil.Date, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return civil.Date{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil && strings.Contains(layout, "Jan") {
			// Statements print month abbreviations in every casing
			// ("SEP", "sep"); time.Parse only accepts "Sep".
			t, err = time.Parse(layout, titleCaseMonths(s))
		}
		if err != nil {
			continue
		}
		if layout == twoDigitYearLayout && t.Year() < 2000 {
			t = t.AddDate(100, 0, 0)
		}
		return civil.DateOf(t), true
	}

	return civil.Date{}, false
}

// titleCaseMonths rewrites every alphabetic run as "Xxx" so that month
// abbreviations in arbitrary casing satisfy time.Parse.
func titleCaseMonths(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevAlpha := false
	for _, r := range s {
		alpha := unicode.IsLetter(r)
		switch {
		case alpha && !prevAlpha:
			b.WriteRune(unicode.ToUpper(r))
		case alpha:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevAlpha = alpha
	}
	return b.String()
}
