package extract

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/dvloznov/cashflow-ingest/internal/columns"
	"github.com/dvloznov/cashflow-ingest/internal/domain"
)

// pageSource abstracts the PDF reader so the page fold below can be tested
// against plain text pages without MuPDF.
type pageSource interface {
	NumPage() int
	Text(n int) (string, error)
}

// PDF extracts raw rows from a page-oriented statement. Pages are processed
// one at a time; only the current table state (header labels and their
// column offsets) survives between pages, so peak memory stays bounded by
// one page of text regardless of document length.
func PDF(doc domain.RawDocument, syn columns.SynonymTable) (*Result, error) {
	fdoc, err := fitz.NewFromMemory(doc.Content)
	if err != nil {
		return nil, domain.NewDocumentError(domain.UnreadableDocument,
			fmt.Sprintf("opening PDF: %v", err), err)
	}
	defer fdoc.Close()

	return foldPages(fdoc, syn)
}

// headerCol is one resolved column: its raw label and the rune offset where
// it starts on the header line. Data lines are sliced at these offsets.
type headerCol struct {
	label string
	start int
}

// tableState is the explicit page-spanning parser state: the column
// boundaries inferred from the most recent header line. A new header line
// replaces it wholesale, which is how repeated per-page headers work.
type tableState struct {
	cols   []headerCol
	labels []string
}

// foldPages walks every text line of every page through a small state
// machine. A header line is the first line whose fragments include a
// date-role synonym; tabular lines after it are interpreted against its
// column boundaries until the next header line appears.
func foldPages(src pageSource, syn columns.SynonymTable) (*Result, error) {
	res := &Result{}
	var state *tableState
	sawTable := false
	index := 0

	for p := 0; p < src.NumPage(); p++ {
		text, err := src.Text(p)
		if err != nil {
			return nil, domain.NewDocumentError(domain.UnreadableDocument,
				fmt.Sprintf("extracting text from page %d: %v", p+1, err), err)
		}

		for _, line := range strings.Split(text, "\n") {
			frags := splitFragments(line)
			if len(frags) < 2 {
				// Prose, footers, blank lines: not table material.
				continue
			}
			sawTable = true

			if isHeaderLine(frags, syn) {
				state = newTableState(frags)
				if res.Headers == nil {
					res.Headers = state.labels
				}
				continue
			}
			if state == nil {
				continue
			}

			row, ok := state.sliceRow(line, index)
			if !ok {
				continue
			}
			res.Rows = append(res.Rows, row)
			index++
		}
	}

	if res.Headers == nil {
		if sawTable {
			return nil, domain.NewDocumentError(domain.NoDateHeader,
				"tabular lines found, but no header line contains a date column", nil)
		}
		return nil, domain.NewDocumentError(domain.NoTransactionTable,
			"no tabular lines found in any page", nil)
	}

	return res, nil
}

// fragment is a run of text on a line, with its starting rune offset.
// Columns in machine-generated statements are separated by two or more
// spaces; single spaces stay inside one fragment ("Value Date").
type fragment struct {
	text  string
	start int
}

func splitFragments(line string) []fragment {
	var frags []fragment
	runes := []rune(line)

	i := 0
	for i < len(runes) {
		// Skip a gap: two or more consecutive spaces (or leading spaces).
		if runes[i] == ' ' || runes[i] == '\t' || runes[i] == '\r' {
			i++
			continue
		}
		start := i
		for i < len(runes) {
			if runes[i] == '\t' || runes[i] == '\r' {
				break
			}
			if runes[i] == ' ' {
				// Peek: a single space continues the fragment.
				if i+1 < len(runes) && runes[i+1] != ' ' && runes[i+1] != '\t' {
					i += 2
					continue
				}
				break
			}
			i++
		}
		text := strings.TrimSpace(string(runes[start:i]))
		if text != "" {
			frags = append(frags, fragment{text: text, start: start})
		}
	}

	return frags
}

// isHeaderLine reports whether any fragment is a date-role synonym.
// Exact matching only: substring matching here would turn prose lines
// mentioning dates into spurious headers.
func isHeaderLine(frags []fragment, syn columns.SynonymTable) bool {
	for _, f := range frags {
		if columns.MatchesRole(f.text, columns.RoleDate, syn) {
			return true
		}
	}
	return false
}

func newTableState(frags []fragment) *tableState {
	st := &tableState{
		cols:   make([]headerCol, 0, len(frags)),
		labels: make([]string, 0, len(frags)),
	}
	for _, f := range frags {
		st.cols = append(st.cols, headerCol{label: f.text, start: f.start})
		st.labels = append(st.labels, f.text)
	}
	return st
}

// sliceRow cuts a data line at the header's column offsets. Lines that fill
// fewer than two cells are not transaction material and are skipped.
func (st *tableState) sliceRow(line string, index int) (domain.RawRow, bool) {
	runes := []rune(line)
	cells := make(map[string]string, len(st.cols))
	filled := 0

	for i, col := range st.cols {
		from := col.start
		if i == 0 {
			from = 0
		}
		to := len(runes)
		if i+1 < len(st.cols) {
			to = st.cols[i+1].start
		}
		if from > len(runes) {
			from = len(runes)
		}
		if to > len(runes) {
			to = len(runes)
		}
		cell := strings.TrimSpace(string(runes[from:to]))
		cells[col.label] = cell
		if cell != "" {
			filled++
		}
	}

	if filled < 2 {
		return domain.RawRow{}, false
	}
	return domain.RawRow{Index: index, Headers: st.labels, Cells: cells}, true
}
