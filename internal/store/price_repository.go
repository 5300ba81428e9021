package store

import (
	"context"
	"time"

	"github.com/wonny/tickerpulse/internal/contracts"
)

// PriceRepository implements contracts.PriceRepository over Postgres.
// Read-only: the price-feed collaborator owns all writes.
type PriceRepository struct {
	db DBTX
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(db DBTX) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetByTickerAndRange retrieves snapshots for a ticker with ts in
// [from, to), ordered by ts ascending (uses the (ticker, ts) index).
func (r *PriceRepository) GetByTickerAndRange(ctx context.Context, ticker string, from, to time.Time) ([]*contracts.PriceSnapshot, error) {
	query := `
		SELECT id, ticker, price, ts
		FROM price_snapshots
		WHERE ticker = $1 AND ts >= $2 AND ts < $3
		ORDER BY ts ASC
	`

	rows, err := r.db.Query(ctx, query, ticker, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*contracts.PriceSnapshot
	for rows.Next() {
		var p contracts.PriceSnapshot
		if err := rows.Scan(&p.ID, &p.Ticker, &p.Price, &p.TS); err != nil {
			return nil, err
		}
		snaps = append(snaps, &p)
	}
	return snaps, rows.Err()
}
