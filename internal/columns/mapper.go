package columns

import (
	"fmt"
	"strings"

	"github.com/dvloznov/cashflow-ingest/internal/domain"
)

// Mapping is the resolved assignment of canonical roles to raw header
// labels, computed once per document. Unresolved roles hold "".
type Mapping struct {
	Date        string
	Description string
	Debit       string
	Credit      string
	Balance     string
	Amount      string // single signed amount column, exclusive with Debit/Credit
}

// SeparateDebitCredit reports whether amounts live in dedicated debit and/or
// credit columns rather than one signed amount column.
func (m Mapping) SeparateDebitCredit() bool {
	return m.Debit != "" || m.Credit != ""
}

// Resolve maps the document's raw header labels to canonical roles using the
// supplied synonym table. Date and description must resolve, and at least one
// of debit/credit or a single amount column must resolve; otherwise the whole
// document is rejected with a distinguishable failure code that names both
// the headers seen and the vocabulary expected.
func Resolve(headers []string, syn SynonymTable) (Mapping, error) {
	claimed := make(map[string]bool, len(headers))
	byRole := make(map[Role]string, len(resolveOrder))

	for _, role := range resolveOrder {
		if label, ok := match(headers, syn[role], claimed); ok {
			byRole[role] = label
			claimed[label] = true
		}
	}

	m := Mapping{
		Date:        byRole[RoleDate],
		Description: byRole[RoleDescription],
		Debit:       byRole[RoleDebit],
		Credit:      byRole[RoleCredit],
		Balance:     byRole[RoleBalance],
	}

	if m.Date == "" {
		return Mapping{}, failure(domain.MissingDateColumn, RoleDate, headers, syn)
	}
	if m.Description == "" {
		return Mapping{}, failure(domain.MissingDescriptionColumn, RoleDescription, headers, syn)
	}
	if m.Debit == "" && m.Credit == "" {
		if label, ok := match(headers, syn[RoleAmount], claimed); ok {
			m.Amount = label
		} else {
			return Mapping{}, amountFailure(headers, syn)
		}
	}

	return m, nil
}

// minFuzzyLen is the shortest label or synonym eligible for the containment
// pass. Short synonyms like "dr" and "cr" appear inside unrelated words
// ("address"), so they match exactly or not at all; the truncated fragments
// the pass exists for are all well above this.
const minFuzzyLen = 4

// match finds the first unclaimed header satisfying any synonym: an exact
// pass over all headers first, then a substring containment pass to tolerate
// truncated or garbled labels ("Drawals" for "Withdrawals").
func match(headers []string, synonyms []string, claimed map[string]bool) (string, bool) {
	for _, h := range headers {
		if claimed[h] {
			continue
		}
		norm := NormalizeLabel(h)
		if norm == "" {
			continue
		}
		for _, s := range synonyms {
			if norm == s {
				return h, true
			}
		}
	}
	for _, h := range headers {
		if claimed[h] {
			continue
		}
		norm := NormalizeLabel(h)
		if len(norm) < minFuzzyLen {
			continue
		}
		for _, s := range synonyms {
			if len(s) < minFuzzyLen {
				continue
			}
			if strings.Contains(norm, s) || strings.Contains(s, norm) {
				return h, true
			}
		}
	}
	return "", false
}

// MatchesRole reports whether a single label satisfies the role's synonym
// set exactly. The PDF extractor uses this to spot header lines.
func MatchesRole(label string, role Role, syn SynonymTable) bool {
	norm := NormalizeLabel(label)
	if norm == "" {
		return false
	}
	for _, s := range syn[role] {
		if norm == s {
			return true
		}
	}
	return false
}

// NormalizeLabel trims, lowercases, and collapses internal whitespace.
func NormalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

func failure(code domain.FailureCode, role Role, headers []string, syn SynonymTable) error {
	detail := fmt.Sprintf("no header matches the %q role; headers seen: [%s]; expected one of: [%s]",
		role, strings.Join(headers, ", "), strings.Join(syn[role], ", "))
	return domain.NewDocumentError(code, detail, nil)
}

// amountFailure names every vocabulary that was tried: debit and credit
// columns first, then the single-amount fallback.
func amountFailure(headers []string, syn SynonymTable) error {
	detail := fmt.Sprintf(
		"no header matches the %q, %q, or %q roles; headers seen: [%s]; expected debit: [%s]; credit: [%s]; amount: [%s]",
		RoleDebit, RoleCredit, RoleAmount,
		strings.Join(headers, ", "),
		strings.Join(syn[RoleDebit], ", "),
		strings.Join(syn[RoleCredit], ", "),
		strings.Join(syn[RoleAmount], ", "))
	return domain.NewDocumentError(domain.MissingAmountColumns, detail, nil)
}
