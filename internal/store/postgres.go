package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dvloznov/cashflow-ingest/internal/domain"
)

const transactionsTable = "transactions"

// Postgres is a Store backed by a transactions table with content_hash as
// primary key. Atomicity of Insert comes from ON CONFLICT DO NOTHING, so
// concurrent ingestions racing on one hash resolve inside the database.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing connection pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// NewPool connects to Postgres and verifies the connection.
func NewPool(ctx context.Context, dsn string, log zerolog.Logger) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("NewPool: parsing DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("NewPool: creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("NewPool: ping: %w", err)
	}

	log.Info().Str("database", cfg.ConnConfig.Database).Msg("Database connection established")
	return pool, nil
}

func (s *Postgres) Exists(ctx context.Context, hash string) (bool, error) {
	sql, args, err := squirrel.Select("1").
		From(transactionsTable).
		Where(squirrel.Eq{"content_hash": hash}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("Exists: building query: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("Exists: query: %w", err)
	}
	defer rows.Close()

	return rows.Next(), rows.Err()
}

func (s *Postgres) Insert(ctx context.Context, tx *domain.CanonicalTransaction) (InsertOutcome, error) {
	sql, args, err := squirrel.Insert(transactionsTable).
		Columns("content_hash", "transaction_date", "description", "amount", "direction", "created_at").
		Values(tx.ContentHash, tx.Date.In(time.UTC), tx.Description, tx.Amount, string(tx.Direction), time.Now().UTC()).
		Suffix("ON CONFLICT (content_hash) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("Insert: building query: %w", err)
	}

	tag, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("Insert: exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return AlreadyExists, nil
	}
	return Inserted, nil
}

// Schema is the DDL for the transactions table; cmd/migrate applies it.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	content_hash     TEXT PRIMARY KEY,
	transaction_date DATE NOT NULL,
	description      TEXT NOT NULL,
	amount           NUMERIC(18, 2) NOT NULL CHECK (amount > 0),
	direction        TEXT NOT NULL CHECK (direction IN ('DEBIT', 'CREDIT')),
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (transaction_date);
`
