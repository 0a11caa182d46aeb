package pipeline

import (
	"strings"

	"github.com/dvloznov/cashflow-ingest/internal/columns"
	"github.com/dvloznov/cashflow-ingest/internal/domain"
	"github.com/dvloznov/cashflow-ingest/internal/normalize"
)

// RowNormalizer converts one raw row into a canonical transaction candidate,
// or a structured rejection. It owns no state beyond the direction policy
// for sign-less single-amount values.
type RowNormalizer struct {
	// SignlessDirection classifies a positive single-amount value that
	// carries no sign, suffix, or parentheses. Misclassifying income as an
	// expense silently corrupts downstream aggregates, so this is explicit
	// configuration rather than a hard-coded convention.
	SignlessDirection domain.Direction
}

// Normalize applies the field normalizers to the mapped cells of row.
// Exactly one of the return values is non-nil.
func (n *RowNormalizer) Normalize(row domain.RawRow, m columns.Mapping) (*domain.CanonicalTransaction, *domain.RejectedRow) {
	date, ok := normalize.ParseDate(row.Cell(m.Date))
	if !ok {
		return nil, n.reject(row, domain.UnparseableDate)
	}

	desc := strings.TrimSpace(row.Cell(m.Description))
	if desc == "" {
		return nil, n.reject(row, domain.EmptyDescription)
	}

	var (
		amount normalize.Amount
		dir    domain.Direction
	)

	if m.SeparateDebitCredit() {
		debit, dok := normalize.ParseAmount(row.Cell(m.Debit))
		credit, cok := normalize.ParseAmount(row.Cell(m.Credit))
		switch {
		case dok && cok:
			return nil, n.reject(row, domain.AmbiguousAmountColumns)
		case dok:
			amount, dir = debit, domain.Debit
		case cok:
			amount, dir = credit, domain.Credit
		default:
			return nil, n.reject(row, domain.NoAmountValue)
		}
	} else {
		a, aok := normalize.ParseAmount(row.Cell(m.Amount))
		if !aok {
			return nil, n.reject(row, domain.ZeroOrMissingAmount)
		}
		amount = a
		switch {
		case a.SignHint != "":
			dir = a.SignHint
		case a.Negative:
			dir = domain.Debit
		default:
			dir = n.SignlessDirection
		}
	}

	// ParseAmount never returns a zero magnitude, so the invariant
	// amount > 0 holds for every transaction built here.
	return domain.NewCanonicalTransaction(date, desc, amount.Magnitude, dir), nil
}

func (n *RowNormalizer) reject(row domain.RawRow, reason domain.RejectReason) *domain.RejectedRow {
	return &domain.RejectedRow{
		RowIndex:   row.Index,
		Reason:     reason,
		RawSnippet: rowSnippet(row),
	}
}

const maxSnippetLen = 120

func rowSnippet(row domain.RawRow) string {
	parts := make([]string, 0, len(row.Headers))
	for _, h := range row.Headers {
		parts = append(parts, row.Cells[h])
	}
	s := strings.Join(parts, " | ")
	if len(s) > maxSnippetLen {
		s = s[:maxSnippetLen] + "..."
	}
	return s
}
