package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
)

// ExecutiveBucket is one cross-flock aggregation bucket of the read-only
// executive view, keyed by ISO week, ISO month or year.
type ExecutiveBucket struct {
	Key       string    `json:"key"`
	StartDate time.Time `json:"start_date"`
	Flocks    int       `json:"flocks"`

	// StockStart sums, over the flocks active in the bucket, each flock's
	// live stock at the bucket's first date.
	StockStart int `json:"stock_start"`

	Mortality     int `json:"mortality"`
	Culls         int `json:"culls"`
	EggsCollected int `json:"eggs_collected"`
	HatchEggs     int `json:"hatch_eggs"`
	EggSet        int `json:"egg_set"`
	HatchedChicks int `json:"hatched_chicks"`

	MortalityPct    float64 `json:"mortality_pct"`
	EggProdPct      float64 `json:"egg_prod_pct"`
	HatchEggPct     float64 `json:"hatch_pct"`
	HatchabilityPct float64 `json:"hatchability_pct"`
}

// ExecutiveReport groups the executive buckets by granularity.
type ExecutiveReport struct {
	Weeks  []ExecutiveBucket `json:"weeks"`
	Months []ExecutiveBucket `json:"months"`
	Years  []ExecutiveBucket `json:"years"`
}

// ISOWeekStart returns the Monday of the given ISO year and week.
func ISOWeekStart(year, week int) time.Time {
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -(int(jan4.Weekday())+6)%7)
	return monday.AddDate(0, 0, (week-1)*7)
}

// ParseISOWeek parses a "2006-W02" label into the Monday of that week.
func ParseISOWeek(s string) (time.Time, error) {
	var year, week int
	if _, err := fmt.Sscanf(s, "%d-W%d", &year, &week); err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO week %q: %w", s, err)
	}
	if week < 1 || week > 53 {
		return time.Time{}, fmt.Errorf("invalid ISO week %q", s)
	}
	return ISOWeekStart(year, week), nil
}

type execState struct {
	bucket     ExecutiveBucket
	flocks     map[string]struct{}
	femaleDays int
}

// AggregateExecutive produces the executive ISO aggregation across flocks.
// Days before minDate are excluded; when yearFilter is non-nil only days of
// that calendar year contribute. Stock-at-bucket-start comes from the
// per-flock stock histories.
func AggregateExecutive(flocks []domain.Flock, daysByFlock map[string][]EnrichedDay, histories map[string]StockHistory, minDate time.Time, yearFilter *int) ExecutiveReport {
	weeks := make(map[string]*execState)
	months := make(map[string]*execState)
	years := make(map[string]*execState)

	for i := range flocks {
		f := &flocks[i]
		for j := range daysByFlock[f.ID] {
			d := &daysByFlock[f.ID][j]
			if d.Date.Before(minDate) {
				continue
			}
			if yearFilter != nil && d.Date.Year() != *yearFilter {
				continue
			}

			isoYear, isoWeek := d.Date.ISOWeek()
			addExecDay(weeks, fmt.Sprintf("%d-W%02d", isoYear, isoWeek), f.ID, d)
			addExecDay(months, d.Date.Format("2006-01"), f.ID, d)
			addExecDay(years, fmt.Sprintf("%d", d.Date.Year()), f.ID, d)
		}
	}

	return ExecutiveReport{
		Weeks:  finishExec(weeks, histories),
		Months: finishExec(months, histories),
		Years:  finishExec(years, histories),
	}
}

func addExecDay(buckets map[string]*execState, key, flockID string, d *EnrichedDay) {
	st, ok := buckets[key]
	if !ok {
		st = &execState{
			bucket: ExecutiveBucket{Key: key, StartDate: dayKey(d.Date)},
			flocks: make(map[string]struct{}),
		}
		buckets[key] = st
	}
	if d.Date.Before(st.bucket.StartDate) {
		st.bucket.StartDate = dayKey(d.Date)
	}
	st.flocks[flockID] = struct{}{}

	b := &st.bucket
	b.Mortality += d.MortalityMale + d.MortalityFemale
	b.Culls += d.CullsMale + d.CullsFemale
	b.EggsCollected += d.Log.EggsCollected
	b.HatchEggs += d.HatchEggs
	if d.Hatch != nil {
		b.EggSet += d.Hatch.EggSet
		b.HatchedChicks += d.Hatch.HatchedChicks
	}
	st.femaleDays += d.Stock.Start.Female()
}

func finishExec(buckets map[string]*execState, histories map[string]StockHistory) []ExecutiveBucket {
	out := make([]ExecutiveBucket, 0, len(buckets))
	for _, st := range buckets {
		b := st.bucket
		b.Flocks = len(st.flocks)
		for flockID := range st.flocks {
			b.StockStart += histories[flockID].At(b.StartDate)
		}
		b.MortalityPct = ratioPct(b.Mortality, b.StockStart)
		b.EggProdPct = ratioPct(b.EggsCollected, st.femaleDays)
		b.HatchEggPct = ratioPct(b.HatchEggs, b.EggsCollected)
		b.HatchabilityPct = ratioPct(b.HatchedChicks, b.EggSet)
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
