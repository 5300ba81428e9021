package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/wonny/tickerpulse/internal/contracts"
	"github.com/wonny/tickerpulse/pkg/database"
)

// Store implements contracts.Store over Postgres
// ⭐ SSOT: pipeline snapshots are opened here and nowhere else
type Store struct {
	db *database.DB
}

// New creates a new store
func New(db *database.DB) *Store {
	return &Store{db: db}
}

// Begin opens a REPEATABLE READ transaction and returns a snapshot whose
// repositories are all bound to it. One compute run uses exactly one
// snapshot: every read and the final upsert see the same database state.
func (s *Store) Begin(ctx context.Context) (contracts.Snapshot, error) {
	tx, err := s.db.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &snapshot{
		tx:      tx,
		news:    NewNewsRepository(tx),
		prices:  NewPriceRepository(tx),
		metrics: NewMetricRepository(tx),
	}, nil
}

// Metrics returns a pool-bound metric repository for read-side callers
// (timeseries, API) that need no snapshot semantics.
func (s *Store) Metrics() contracts.MetricRepository {
	return NewMetricRepository(s.db.Pool)
}

// snapshot binds the three repositories to one transaction
type snapshot struct {
	tx      pgx.Tx
	news    *NewsRepository
	prices  *PriceRepository
	metrics *MetricRepository
}

func (s *snapshot) News() contracts.NewsRepository      { return s.news }
func (s *snapshot) Prices() contracts.PriceRepository   { return s.prices }
func (s *snapshot) Metrics() contracts.MetricRepository { return s.metrics }

func (s *snapshot) Commit(ctx context.Context) error {
	return s.tx.Commit(ctx)
}

// Rollback aborts the snapshot. Safe to call after Commit; pgx returns
// ErrTxClosed which is swallowed so deferred rollbacks stay quiet.
func (s *snapshot) Rollback(ctx context.Context) error {
	err := s.tx.Rollback(ctx)
	if err == pgx.ErrTxClosed {
		return nil
	}
	return err
}
