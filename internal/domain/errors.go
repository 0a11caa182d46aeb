package domain

import "fmt"

// FailureCode enumerates document-level, fatal failure reasons. Any of these
// aborts the whole ingestion call with zero store writes.
type FailureCode string

const (
	UnreadableDocument       FailureCode = "unreadable_document"
	NoTransactionTable       FailureCode = "no_transaction_table"
	NoDateHeader             FailureCode = "no_date_header"
	MissingDateColumn        FailureCode = "missing_date_column"
	MissingDescriptionColumn FailureCode = "missing_description_column"
	MissingAmountColumns     FailureCode = "missing_amount_columns"
)

// DocumentError is a fatal, document-level ingestion failure. Code is the
// machine-readable reason; Detail is a human-readable context fragment
// (e.g. observed headers vs expected synonyms) suitable for direct display.
type DocumentError struct {
	Code   FailureCode
	Detail string
	Err    error // underlying cause, may be nil
}

func (e *DocumentError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return string(e.Code)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// NewDocumentError builds a fatal document-level failure.
func NewDocumentError(code FailureCode, detail string, err error) *DocumentError {
	return &DocumentError{Code: code, Detail: detail, Err: err}
}

// RejectReason enumerates row-level, recoverable failure reasons. These never
// abort an ingestion call; they accumulate into the report.
type RejectReason string

const (
	ColumnCountMismatch    RejectReason = "column_count_mismatch"
	UnparseableDate        RejectReason = "unparseable_date"
	EmptyDescription       RejectReason = "empty_description"
	NoAmountValue          RejectReason = "no_amount_value"
	AmbiguousAmountColumns RejectReason = "ambiguous_amount_columns"
	ZeroOrMissingAmount    RejectReason = "zero_or_missing_amount"
)

// RejectedRow records one discarded statement line for user diagnosis.
// It is never persisted as a transaction.
type RejectedRow struct {
	RowIndex   int
	Reason     RejectReason
	RawSnippet string
}
