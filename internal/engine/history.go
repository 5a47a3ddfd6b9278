package engine

import (
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
)

// StockHistory answers "how many birds were alive at date D" for one flock.
// It maps every logged date to the start-of-day total and keeps the
// end-of-day total of the last log as the answer for post-log queries.
// Used by vaccine dose counts, inventory projections and the executive
// dashboard's week-start stock.
type StockHistory struct {
	dates  []time.Time
	totals []int
	intake int
	latest int
}

// BuildStockHistory replays the flock's logs and indexes the daily totals.
func BuildStockHistory(f *domain.Flock, logs []domain.DailyLog) StockHistory {
	replay := ReplayStocks(f, logs)
	return historyFromReplay(f, replay)
}

// BuildStockHistories is the bulk form: one replay per flock over
// already-fetched logs, avoiding per-flock round trips in callers that walk
// many flocks. The single form is equivalent to a singleton input here.
func BuildStockHistories(flocks []domain.Flock, logsByFlock map[string][]domain.DailyLog) map[string]StockHistory {
	out := make(map[string]StockHistory, len(flocks))
	for i := range flocks {
		f := &flocks[i]
		out[f.ID] = BuildStockHistory(f, logsByFlock[f.ID])
	}
	return out
}

// historyFromReplay lets callers that already ran the replay reuse it.
func historyFromReplay(f *domain.Flock, replay ReplayResult) StockHistory {
	h := StockHistory{
		intake: f.IntakeMale + f.IntakeFemale,
		latest: f.IntakeMale + f.IntakeFemale,
	}
	h.dates = make([]time.Time, 0, len(replay.Days))
	h.totals = make([]int, 0, len(replay.Days))
	for _, d := range replay.Days {
		h.dates = append(h.dates, dayKey(d.Date))
		h.totals = append(h.totals, d.Start.Total())
		h.latest = d.End.Total()
	}
	return h
}

// At returns the live stock at date d: the start-of-day total of the
// greatest logged date not after d, the end-of-day total of the last log for
// later dates, and the intake total before the first log.
func (h StockHistory) At(d time.Time) int {
	k := dayKey(d)
	if len(h.dates) == 0 || k.Before(h.dates[0]) {
		return h.intake
	}
	if k.After(h.dates[len(h.dates)-1]) {
		return h.latest
	}
	// Binary search for the greatest logged date <= k.
	lo, hi := 0, len(h.dates)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if h.dates[mid].After(k) {
			hi = mid - 1
		} else {
			lo = mid
		}
	}
	return h.totals[lo]
}

// Latest returns the end-of-day total of the last logged date, or the intake
// total when the flock has no logs.
func (h StockHistory) Latest() int { return h.latest }

// Len returns the number of logged dates in the index.
func (h StockHistory) Len() int { return len(h.dates) }

// DoseCount returns the number of inventory units needed to vaccinate the
// given stock, rounding up partial units.
func DoseCount(stock, dosesPerUnit int) int {
	if dosesPerUnit <= 0 || stock <= 0 {
		return 0
	}
	return (stock + dosesPerUnit - 1) / dosesPerUnit
}
