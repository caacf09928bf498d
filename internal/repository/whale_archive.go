package repository

import (
	"context"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/clickhouse"
	"CoinPulse/pkg/util"
)

var whaleSchema = []string{
	`CREATE TABLE IF NOT EXISTS whale_transactions (
		chain        LowCardinality(String),
		symbol       LowCardinality(String),
		amount       Float64,
		observed_at  DateTime,
		inserted_at  DateTime DEFAULT now()
	) ENGINE = MergeTree()
	PARTITION BY toYYYYMM(observed_at)
	ORDER BY (chain, observed_at)`,
}

// WhaleArchive persists observed whale transactions to ClickHouse for
// historical analysis. Writes are best effort from the caller's point of
// view; the query path never waits on nor fails because of the archive.
type WhaleArchive struct {
	client *clickhouse.Client
}

func NewWhaleArchive(ctx context.Context, client *clickhouse.Client) (*WhaleArchive, error) {
	if err := client.InitSchema(ctx, whaleSchema); err != nil {
		return nil, fmt.Errorf("whale archive schema: %w", err)
	}
	return &WhaleArchive{client: client}, nil
}

func (a *WhaleArchive) ArchiveBatch(ctx context.Context, chain string, txs []models.WhaleTransaction) error {
	if len(txs) == 0 {
		return nil
	}

	tx, err := a.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("whale archive begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO whale_transactions (chain, symbol, amount, observed_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("whale archive prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range txs {
		observed := util.ParseTimeDefault(t.TimestampUTC, time.Now().UTC())
		if _, err := stmt.ExecContext(ctx, chain, t.Symbol, t.Amount, observed); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("whale archive insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("whale archive commit: %w", err)
	}
	return nil
}
