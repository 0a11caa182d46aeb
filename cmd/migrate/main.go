package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/cashflow-ingest/internal/config"
	"github.com/dvloznov/cashflow-ingest/internal/logger"
	"github.com/dvloznov/cashflow-ingest/internal/store"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print the schema without applying it")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel)

	if *dryRun {
		log.Info().Msg("Dry run: schema below")
		fmt.Print(store.Schema, "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := store.NewPool(ctx, cfg.Store.DSN(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Postgres")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, store.Schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	log.Info().Str("database", cfg.Store.DBName).Msg("Schema applied")
}
