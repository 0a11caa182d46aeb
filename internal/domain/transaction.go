package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Direction tells whether money left the account or entered it.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// CanonicalTransaction is the normalized output unit of the ingestion
// pipeline, independent of the source statement's format. Downstream
// consumers (budgets, reports, insights) read only this shape.
type CanonicalTransaction struct {
	Date        civil.Date      // calendar date, no time component
	Description string          // trimmed, original casing preserved
	Amount      decimal.Decimal // positive magnitude; sign lives in Direction
	Direction   Direction

	// ContentHash is the deduplication key: a pure function of the four
	// fields above. Stable across re-ingestions and raw formatting changes.
	ContentHash string
}

// ComputeContentHash derives the dedup key for a (date, description, amount,
// direction) tuple. The description is lowercased and trimmed and the amount
// rendered with exactly two decimals so that cosmetic differences between
// statements ("Tesco " vs "tesco", "500" vs "500.00") hash identically.
func ComputeContentHash(date civil.Date, description string, amount decimal.Decimal, dir Direction) string {
	normalized := strings.ToLower(strings.TrimSpace(description))
	input := fmt.Sprintf("%s|%s|%s|%s", date.String(), normalized, amount.StringFixed(2), dir)
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// NewCanonicalTransaction builds a transaction and stamps its content hash.
func NewCanonicalTransaction(date civil.Date, description string, amount decimal.Decimal, dir Direction) *CanonicalTransaction {
	return &CanonicalTransaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Direction:   dir,
		ContentHash: ComputeContentHash(date, description, amount, dir),
	}
}
