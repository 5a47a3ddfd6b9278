package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
)

// HatcheryWeek is one ISO week of setting events across flocks.
type HatcheryWeek struct {
	Week            string  `json:"week"`
	Settings        int     `json:"settings"`
	EggSet          int     `json:"egg_set"`
	ClearEggs       int     `json:"clear_eggs"`
	RottenEggs      int     `json:"rotten_eggs"`
	HatchedChicks   int     `json:"hatched_chicks"`
	HatchabilityPct float64 `json:"hatchability_pct"`
	FertilePct      float64 `json:"fertile_pct"`
}

// HatcherySummary aggregates setting events over a setting-date range, with
// a per-ISO-week breakdown. Percentages are re-derived from the summed
// counts, never averaged over the per-setting percentages.
type HatcherySummary struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Settings      int `json:"settings"`
	Flocks        int `json:"flocks"`
	EggSet        int `json:"egg_set"`
	ClearEggs     int `json:"clear_eggs"`
	RottenEggs    int `json:"rotten_eggs"`
	HatchedChicks int `json:"hatched_chicks"`

	HatchabilityPct float64 `json:"hatchability_pct"`
	FertilePct      float64 `json:"fertile_pct"`

	Weeks []HatcheryWeek `json:"weeks"`
}

// SummarizeHatchery aggregates the setting events whose setting date falls
// in [from, to], keyed by the ISO week of the setting date.
func SummarizeHatchery(settings []domain.Hatchability, from, to time.Time) HatcherySummary {
	sum := HatcherySummary{From: from, To: to}
	flocks := map[string]struct{}{}
	weeks := map[string]*HatcheryWeek{}

	for i := range settings {
		h := &settings[i]
		d := dayKey(h.SettingDate)
		if d.Before(dayKey(from)) || d.After(dayKey(to)) {
			continue
		}

		sum.Settings++
		sum.EggSet += h.EggSet
		sum.ClearEggs += h.ClearEggs
		sum.RottenEggs += h.RottenEggs
		sum.HatchedChicks += h.HatchedChicks
		flocks[h.FlockID] = struct{}{}

		y, w := d.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", y, w)
		wk, ok := weeks[key]
		if !ok {
			wk = &HatcheryWeek{Week: key}
			weeks[key] = wk
		}
		wk.Settings++
		wk.EggSet += h.EggSet
		wk.ClearEggs += h.ClearEggs
		wk.RottenEggs += h.RottenEggs
		wk.HatchedChicks += h.HatchedChicks
	}

	sum.Flocks = len(flocks)
	sum.HatchabilityPct, sum.FertilePct = hatcheryPcts(
		sum.EggSet, sum.ClearEggs, sum.RottenEggs, sum.HatchedChicks)

	for _, wk := range weeks {
		wk.HatchabilityPct, wk.FertilePct = hatcheryPcts(
			wk.EggSet, wk.ClearEggs, wk.RottenEggs, wk.HatchedChicks)
		sum.Weeks = append(sum.Weeks, *wk)
	}
	sort.Slice(sum.Weeks, func(i, j int) bool { return sum.Weeks[i].Week < sum.Weeks[j].Week })
	return sum
}

func hatcheryPcts(set, clear, rotten, hatched int) (hatchability, fertile float64) {
	if set == 0 {
		return 0, 0
	}
	hatchable := set - clear - rotten
	if hatchable < 0 {
		hatchable = 0
	}
	return float64(hatched) / float64(set) * 100, float64(hatchable) / float64(set) * 100
}
