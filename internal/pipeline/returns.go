package pipeline

import (
	"time"

	"github.com/wonny/tickerpulse/internal/contracts"
)

// priorCloseLookbackDays bounds the search for the previous available
// close. Covers weekends and long holiday stretches without scanning
// unbounded history.
const priorCloseLookbackDays = 7

// PriceSeries holds per-day closing prices for one ticker, bucketed by
// calendar day in the reference timezone. The close of a day is the
// snapshot with the latest ts on that day.
type PriceSeries struct {
	loc    *time.Location
	closes map[string]float64
}

// BuildPriceSeries buckets snapshots into daily closes.
// Snapshots are expected in ts-ascending order (the repository returns
// them that way), so the last snapshot seen for a day wins.
func BuildPriceSeries(snaps []*contracts.PriceSnapshot, loc *time.Location) *PriceSeries {
	s := &PriceSeries{
		loc:    loc,
		closes: make(map[string]float64, len(snaps)),
	}
	for _, snap := range snaps {
		s.closes[dayKey(snap.TS, loc)] = snap.Price
	}
	return s
}

// CloseOn returns the closing price for a day, if any snapshot exists
func (s *PriceSeries) CloseOn(day time.Time) (float64, bool) {
	close, ok := s.closes[dayKey(day, s.loc)]
	return close, ok
}

// ReturnOn computes the daily return for a day against the previous
// available day's close within the lookback window.
//
// The return is absent when the day has no snapshot, when no prior day
// within the lookback has one, or when the prior close is zero. The
// zero-base case additionally reports zeroBase=true so the caller can
// flag the data-quality anomaly; it is never fatal.
func (s *PriceSeries) ReturnOn(day time.Time) (ret *float64, zeroBase bool) {
	close, ok := s.CloseOn(day)
	if !ok {
		return nil, false
	}

	for back := 1; back <= priorCloseLookbackDays; back++ {
		prevClose, ok := s.CloseOn(day.AddDate(0, 0, -back))
		if !ok {
			continue
		}
		if prevClose == 0 {
			// Division guard: zero base price is a data anomaly
			return nil, true
		}
		r := (close - prevClose) / prevClose
		return &r, false
	}

	return nil, false
}

// dayKey normalizes an instant to its calendar day in loc
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// startOfDay returns midnight of t's calendar day in loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
