// Package extract turns raw statement bytes into a uniform stream of raw
// rows. Both extractors are deterministic: identical bytes always yield the
// same rows in source-document order.
package extract

import (
	"fmt"

	"github.com/dvloznov/cashflow-ingest/internal/columns"
	"github.com/dvloznov/cashflow-ingest/internal/domain"
)

// Result is the extractor output consumed by the ingestion coordinator.
type Result struct {
	// Headers are the raw header labels, in source column order, that the
	// column mapper resolves once per document.
	Headers []string
	// Rows are the detected transaction lines, in source order.
	Rows []domain.RawRow
	// Rejected holds lines discarded individually (e.g. a CSV record whose
	// field count disagrees with the header). Never a document failure.
	Rejected []domain.RejectedRow
}

// Extract dispatches on the declared format tag. The synonym table is needed
// by the PDF extractor to recognize header lines by their date column.
func Extract(doc domain.RawDocument, syn columns.SynonymTable) (*Result, error) {
	switch doc.Format {
	case domain.FormatCSV:
		return CSV(doc)
	case domain.FormatPDF:
		return PDF(doc, syn)
	default:
		return nil, domain.NewDocumentError(domain.UnreadableDocument,
			fmt.Sprintf("unsupported format tag %q (supported: csv, pdf)", doc.Format), nil)
	}
}
