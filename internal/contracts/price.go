package contracts

import (
	"fmt"
	"time"
)

// PriceSnapshot represents one observed price point.
// Produced by the price-feed collaborator; immutable, read-only input.
type PriceSnapshot struct {
	ID     int64     `json:"id"`
	Ticker string    `json:"ticker"`
	Price  float64   `json:"price"`
	TS     time.Time `json:"ts"`
}

// Validate checks the snapshot invariants.
// A negative price is malformed input and fails the compute run;
// a zero close is handled separately as a data-quality anomaly.
func (p *PriceSnapshot) Validate() error {
	if p.Ticker == "" {
		return fmt.Errorf("price snapshot %d: ticker is empty", p.ID)
	}
	if p.Price < 0 {
		return fmt.Errorf("price snapshot %d (%s at %s): negative price %f",
			p.ID, p.Ticker, p.TS.Format(time.RFC3339), p.Price)
	}
	return nil
}
