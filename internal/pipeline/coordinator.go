package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/cashflow-ingest/internal/columns"
	"github.com/dvloznov/cashflow-ingest/internal/domain"
	"github.com/dvloznov/cashflow-ingest/internal/extract"
	"github.com/dvloznov/cashflow-ingest/internal/logger"
	"github.com/dvloznov/cashflow-ingest/internal/store"
)

// Step is a single stage of the ingestion state machine.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State is the shared state threaded through the steps of one ingestion
// call. The coordinator exclusively owns it for the call's duration.
type State struct {
	Doc domain.RawDocument
	Run domain.IngestionRun

	Extracted *extract.Result
	Mapping   columns.Mapping
	Report    *domain.IngestionReport
}

// Coordinator drives one document through extraction, column mapping, row
// normalization, and deduplicated insertion. All shared mutable state lives
// behind the store, so independent documents may be ingested concurrently.
type Coordinator struct {
	store      store.Store
	synonyms   columns.SynonymTable
	normalizer RowNormalizer
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithSynonyms replaces the default header vocabulary, e.g. to add a new
// bank's column names without touching core logic.
func WithSynonyms(syn columns.SynonymTable) Option {
	return func(c *Coordinator) { c.synonyms = syn }
}

// WithSignlessDirection sets how a positive, sign-less single-amount value
// is classified. The default is Debit.
func WithSignlessDirection(dir domain.Direction) Option {
	return func(c *Coordinator) { c.normalizer.SignlessDirection = dir }
}

// New creates a Coordinator backed by the given deduplication store.
func New(st store.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:      st,
		synonyms:   columns.DefaultSynonyms(),
		normalizer: RowNormalizer{SignlessDirection: domain.Debit},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ingest runs one document to a finalized report, or fails wholesale at the
// document level before any store write happens. Row-level failures never
// abort the call; they accumulate into the report. A store failure mid-stream
// is fatal for the remainder of the document, but rows inserted before it
// stay committed: partial progress is preferred over all-or-nothing.
func (c *Coordinator) Ingest(ctx context.Context, doc domain.RawDocument) (*domain.IngestionReport, error) {
	state := &State{
		Doc: doc,
		Run: domain.IngestionRun{
			RunID:     uuid.NewString(),
			Checksum:  documentChecksum(doc.Content),
			StartedAt: time.Now(),
		},
	}

	log := logger.FromContext(ctx).With().
		Str("run_id", state.Run.RunID).
		Str("format", string(doc.Format)).
		Str("filename", doc.Filename).
		Logger()
	ctx = logger.WithContext(ctx, log)

	steps := []Step{
		&ExtractStep{Synonyms: c.synonyms},
		&MapColumnsStep{Synonyms: c.synonyms},
		&StreamRowsStep{Store: c.store, Normalizer: &c.normalizer},
		&FinalizeStep{},
	}

	for _, step := range steps {
		if err := step.Execute(ctx, state); err != nil {
			log.Error().Err(err).Msg("Ingestion failed")
			return nil, err
		}
	}

	log.Info().
		Int("inserted", state.Report.InsertedCount).
		Int("duplicates", state.Report.DuplicateCount).
		Int("rejected", len(state.Report.RejectedRows)).
		Int("total_rows", state.Report.TotalRowsSeen).
		Msg("Ingestion finished")

	return state.Report, nil
}

// ExtractStep turns raw bytes into the uniform raw-row stream.
type ExtractStep struct {
	Synonyms columns.SynonymTable
}

func (s *ExtractStep) Execute(ctx context.Context, state *State) error {
	res, err := extract.Extract(state.Doc, s.Synonyms)
	if err != nil {
		return err
	}
	state.Extracted = res

	log := logger.FromContext(ctx)
	log.Debug().
		Int("rows", len(res.Rows)).
		Int("rejected", len(res.Rejected)).
		Strs("headers", res.Headers).
		Msg("Extraction complete")
	return nil
}

// MapColumnsStep resolves the column mapping once per document.
type MapColumnsStep struct {
	Synonyms columns.SynonymTable
}

func (s *MapColumnsStep) Execute(ctx context.Context, state *State) error {
	mapping, err := columns.Resolve(state.Extracted.Headers, s.Synonyms)
	if err != nil {
		return err
	}
	state.Mapping = mapping

	log := logger.FromContext(ctx)
	log.Debug().
		Str("date", mapping.Date).
		Str("description", mapping.Description).
		Str("debit", mapping.Debit).
		Str("credit", mapping.Credit).
		Str("amount", mapping.Amount).
		Msg("Columns mapped")
	return nil
}

// StreamRowsStep normalizes every row, deduplicates by content hash, and
// accumulates counts. This is the only step that writes to the store.
type StreamRowsStep struct {
	Store      store.Store
	Normalizer *RowNormalizer
}

func (s *StreamRowsStep) Execute(ctx context.Context, state *State) error {
	log := logger.FromContext(ctx)

	report := &domain.IngestionReport{
		Run:           state.Run,
		RejectedRows:  append([]domain.RejectedRow(nil), state.Extracted.Rejected...),
		TotalRowsSeen: len(state.Extracted.Rows) + len(state.Extracted.Rejected),
	}

	for _, row := range state.Extracted.Rows {
		tx, rejected := s.Normalizer.Normalize(row, state.Mapping)
		if rejected != nil {
			log.Debug().
				Int("row", rejected.RowIndex).
				Str("reason", string(rejected.Reason)).
				Msg("Row rejected")
			report.RejectedRows = append(report.RejectedRows, *rejected)
			continue
		}

		outcome, err := s.Store.Insert(ctx, tx)
		if err != nil {
			return fmt.Errorf("StreamRowsStep: inserting row %d: %w", row.Index, err)
		}
		switch outcome {
		case store.AlreadyExists:
			report.DuplicateCount++
		case store.Inserted:
			report.InsertedCount++
		}
		report.DateRange.Observe(tx.Date)
	}

	state.Report = report
	return nil
}

// FinalizeStep stamps the run as finished. The report is immutable once the
// coordinator returns it.
type FinalizeStep struct{}

func (s *FinalizeStep) Execute(ctx context.Context, state *State) error {
	state.Report.Run.FinishedAt = time.Now()
	return nil
}

// documentChecksum is the whole-file digest recorded on the run for
// tracking which statement produced which transactions.
func documentChecksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
