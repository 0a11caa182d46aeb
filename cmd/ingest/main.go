package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dvloznov/cashflow-ingest/internal/config"
	"github.com/dvloznov/cashflow-ingest/internal/domain"
	"github.com/dvloznov/cashflow-ingest/internal/logger"
	"github.com/dvloznov/cashflow-ingest/internal/pipeline"
	"github.com/dvloznov/cashflow-ingest/internal/store"
)

func main() {
	filePath := flag.String("file", "", "Path to the statement file (.csv or .pdf)")
	format := flag.String("format", "", "Format tag: csv or pdf (default: from file extension)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	if *filePath == "" {
		log.Fatal().Msg("Error: --file is required")
	}

	if *format == "" {
		switch strings.ToLower(filepath.Ext(*filePath)) {
		case ".csv":
			*format = "csv"
		case ".pdf":
			*format = "pdf"
		default:
			log.Fatal().Str("file", *filePath).Msg("Cannot infer format from extension; pass --format")
		}
	}

	content, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read statement file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	var st store.Store
	switch cfg.Store.Backend {
	case "memory":
		st = store.NewMemory()
		log.Warn().Msg("Using in-memory store: deduplication will not survive this run")
	case "postgres":
		pool, err := store.NewPool(ctx, cfg.Store.DSN(), log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Postgres")
		}
		defer pool.Close()
		st = store.NewPostgres(pool)
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("Unknown store backend")
	}

	coordinator := pipeline.New(st,
		pipeline.WithSignlessDirection(cfg.Pipeline.SignlessDirection),
	)

	doc := domain.RawDocument{
		Content:  content,
		Format:   domain.Format(*format),
		Filename: filepath.Base(*filePath),
	}

	log.Info().Str("file", *filePath).Str("format", *format).Msg("Starting ingestion")

	report, err := coordinator.Ingest(ctx, doc)
	if err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}

	printReport(report)
}

func printReport(r *domain.IngestionReport) {
	fmt.Println("\n=== Ingestion Report ===")
	fmt.Printf("Run ID:      %s\n", r.Run.RunID)
	fmt.Printf("Checksum:    %s\n", r.Run.Checksum)
	fmt.Printf("Duration:    %s\n", r.Run.FinishedAt.Sub(r.Run.StartedAt).Round(time.Millisecond))
	fmt.Printf("Rows seen:   %d\n", r.TotalRowsSeen)
	fmt.Printf("Inserted:    %d\n", r.InsertedCount)
	fmt.Printf("Duplicates:  %d\n", r.DuplicateCount)
	if r.DateRange.Valid {
		fmt.Printf("Date range:  %s to %s\n", r.DateRange.Start, r.DateRange.End)
	}

	if len(r.RejectedRows) > 0 {
		fmt.Printf("\n=== Rejected Rows (%d) ===\n", len(r.RejectedRows))
		for _, rej := range r.RejectedRows {
			fmt.Printf("  row %d [%s]: %s\n", rej.RowIndex, rej.Reason, rej.RawSnippet)
		}
	}
	fmt.Println()
}
