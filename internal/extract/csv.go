package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dvloznov/cashflow-ingest/internal/domain"
)

// CSV extracts raw rows from a delimited-text statement. The first line is
// the header; every subsequent non-blank record becomes one RawRow keyed by
// the header labels at the same column index. Records with a different field
// count are rejected individually with column_count_mismatch.
func CSV(doc domain.RawDocument) (*Result, error) {
	if !utf8.Valid(doc.Content) {
		return nil, domain.NewDocumentError(domain.UnreadableDocument,
			"CSV content is not valid UTF-8", nil)
	}

	r := csv.NewReader(bytes.NewReader(doc.Content))
	r.FieldsPerRecord = -1 // field count mismatches are handled per row
	r.TrimLeadingSpace = true

	headers, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewDocumentError(domain.UnreadableDocument,
				"document is empty: no header line", err)
		}
		return nil, domain.NewDocumentError(domain.UnreadableDocument,
			fmt.Sprintf("reading CSV header: %v", err), err)
	}

	res := &Result{Headers: headers}
	index := 0

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewDocumentError(domain.UnreadableDocument,
				fmt.Sprintf("reading CSV record: %v", err), err)
		}
		if blank(record) {
			continue
		}

		if len(record) != len(headers) {
			res.Rejected = append(res.Rejected, domain.RejectedRow{
				RowIndex:   index,
				Reason:     domain.ColumnCountMismatch,
				RawSnippet: snippet(record),
			})
			index++
			continue
		}

		cells := make(map[string]string, len(headers))
		for i, h := range headers {
			cells[h] = record[i]
		}
		res.Rows = append(res.Rows, domain.RawRow{
			Index:   index,
			Headers: headers,
			Cells:   cells,
		})
		index++
	}

	return res, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

const maxSnippetLen = 120

// snippet renders a discarded record for the report, truncated so a single
// pathological line cannot bloat diagnostics.
func snippet(fields []string) string {
	s := strings.Join(fields, " | ")
	if len(s) > maxSnippetLen {
		s = s[:maxSnippetLen] + "..."
	}
	return s
}
