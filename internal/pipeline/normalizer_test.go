package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/cashflow-ingest/internal/columns"
	"github.com/dvloznov/cashflow-ingest/internal/domain"
)

func separateMapping() columns.Mapping {
	return columns.Mapping{
		Date:        "Date",
		Description: "Description",
		Debit:       "Debit",
		Credit:      "Credit",
	}
}

func singleMapping() columns.Mapping {
	return columns.Mapping{
		Date:        "Date",
		Description: "Description",
		Amount:      "Amount",
	}
}

func rawRow(headers []string, cells map[string]string) domain.RawRow {
	return domain.RawRow{Index: 1, Headers: headers, Cells: cells}
}

func TestNormalizeSeparateColumns(t *testing.T) {
	n := RowNormalizer{SignlessDirection: domain.Debit}
	headers := []string{"Date", "Description", "Debit", "Credit"}

	tests := []struct {
		name      string
		cells     map[string]string
		wantDir   domain.Direction
		wantAmt   string
		wantError domain.RejectReason
	}{
		{
			name:    "debit filled",
			cells:   map[string]string{"Date": "01/09/2025", "Description": "Coffee", "Debit": "120.00", "Credit": ""},
			wantDir: domain.Debit,
			wantAmt: "120",
		},
		{
			name:    "credit filled",
			cells:   map[string]string{"Date": "01/09/2025", "Description": "Salary", "Debit": "", "Credit": "50000"},
			wantDir: domain.Credit,
			wantAmt: "50000",
		},
		{
			name:      "both filled",
			cells:     map[string]string{"Date": "01/09/2025", "Description": "Odd", "Debit": "10", "Credit": "10"},
			wantError: domain.AmbiguousAmountColumns,
		},
		{
			name:      "neither filled",
			cells:     map[string]string{"Date": "01/09/2025", "Description": "Odd", "Debit": "-", "Credit": ""},
			wantError: domain.NoAmountValue,
		},
		{
			name:      "bad date",
			cells:     map[string]string{"Date": "yesterday", "Description": "Coffee", "Debit": "10", "Credit": ""},
			wantError: domain.UnparseableDate,
		},
		{
			name:      "blank description",
			cells:     map[string]string{"Date": "01/09/2025", "Description": "   ", "Debit": "10", "Credit": ""},
			wantError: domain.EmptyDescription,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, rejected := n.Normalize(rawRow(headers, tt.cells), separateMapping())
			if tt.wantError != "" {
				if rejected == nil {
					t.Fatalf("Normalize() = %+v, want rejection %s", tx, tt.wantError)
				}
				if rejected.Reason != tt.wantError {
					t.Errorf("reason = %s, want %s", rejected.Reason, tt.wantError)
				}
				if rejected.RowIndex != 1 {
					t.Errorf("RowIndex = %d, want 1", rejected.RowIndex)
				}
				return
			}
			if rejected != nil {
				t.Fatalf("Normalize() rejected: %+v", rejected)
			}
			if tx.Direction != tt.wantDir {
				t.Errorf("Direction = %s, want %s", tx.Direction, tt.wantDir)
			}
			if !tx.Amount.Equal(decimal.RequireFromString(tt.wantAmt)) {
				t.Errorf("Amount = %s, want %s", tx.Amount, tt.wantAmt)
			}
		})
	}
}

func TestNormalizeSingleColumn(t *testing.T) {
	headers := []string{"Date", "Description", "Amount"}

	tests := []struct {
		name      string
		policy    domain.Direction
		amount    string
		wantDir   domain.Direction
		wantError domain.RejectReason
	}{
		{name: "negative is debit", policy: domain.Debit, amount: "-120.00", wantDir: domain.Debit},
		{name: "parens is debit", policy: domain.Credit, amount: "(120.00)", wantDir: domain.Debit},
		{name: "dr suffix wins over policy", policy: domain.Credit, amount: "120.00 Dr", wantDir: domain.Debit},
		{name: "cr suffix wins over policy", policy: domain.Debit, amount: "120.00 Cr", wantDir: domain.Credit},
		{name: "signless follows policy debit", policy: domain.Debit, amount: "120.00", wantDir: domain.Debit},
		{name: "signless follows policy credit", policy: domain.Credit, amount: "120.00", wantDir: domain.Credit},
		{name: "zero amount", policy: domain.Debit, amount: "0.00", wantError: domain.ZeroOrMissingAmount},
		{name: "placeholder amount", policy: domain.Debit, amount: "--", wantError: domain.ZeroOrMissingAmount},
		{name: "garbage amount", policy: domain.Debit, amount: "12.34.56", wantError: domain.ZeroOrMissingAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := RowNormalizer{SignlessDirection: tt.policy}
			cells := map[string]string{"Date": "01/09/2025", "Description": "Entry", "Amount": tt.amount}

			tx, rejected := n.Normalize(rawRow(headers, cells), singleMapping())
			if tt.wantError != "" {
				if rejected == nil || rejected.Reason != tt.wantError {
					t.Fatalf("Normalize() = (%+v, %+v), want rejection %s", tx, rejected, tt.wantError)
				}
				return
			}
			if rejected != nil {
				t.Fatalf("Normalize() rejected: %+v", rejected)
			}
			if tx.Direction != tt.wantDir {
				t.Errorf("Direction = %s, want %s", tx.Direction, tt.wantDir)
			}
			if !tx.Amount.IsPositive() {
				t.Errorf("Amount = %s, want positive magnitude", tx.Amount)
			}
		})
	}
}

func TestRowSnippetTruncates(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	row := rawRow([]string{"Description"}, map[string]string{"Description": string(long)})

	s := rowSnippet(row)
	if len(s) != maxSnippetLen+len("...") {
		t.Errorf("snippet length = %d, want %d", len(s), maxSnippetLen+len("..."))
	}
}
