package domain

// Format is the declared format tag of an uploaded statement.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// RawDocument is the immutable input to an ingestion call: opaque bytes plus
// the caller-declared format. The pipeline never mutates the content.
type RawDocument struct {
	Content []byte
	Format  Format

	// Filename is optional and used only for logging and the report.
	Filename string
}

// RawRow is the uniform intermediate representation both extractors produce:
// one detected transaction line, keyed by the raw header labels exactly as
// they appeared in the source. Headers preserves source column order; Cells
// maps each header to its raw cell text (possibly empty).
type RawRow struct {
	Index   int // zero-based position among detected transaction lines
	Headers []string
	Cells   map[string]string
}

// Cell returns the raw text under the given header ("" if absent).
func (r *RawRow) Cell(header string) string {
	return r.Cells[header]
}
