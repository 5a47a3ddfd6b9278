package engine

import "github.com/ayamprima/flockcore/internal/domain"

// NominalLayWeek returns the smallest week in the standards table with a
// non-zero egg production standard, or fallback when none exists.
func NominalLayWeek(stds []domain.Standard, fallback int) int {
	best := 0
	for _, s := range stds {
		if s.EggProdPct <= 0 {
			continue
		}
		if best == 0 || s.Week < best {
			best = s.Week
		}
	}
	if best == 0 {
		return fallback
	}
	return best
}

// ActualLayWeek returns the age week of the first enriched day with eggs
// collected. ok is false when the flock has not laid yet.
func ActualLayWeek(days []EnrichedDay) (week int, ok bool) {
	for i := range days {
		if days[i].Log.EggsCollected > 0 {
			return days[i].AgeWeek, true
		}
	}
	return 0, false
}

// LayOffset computes the horizontal shift between the flock's actual lay
// curve and the breed standard, in whole weeks. Zero when the flock has not
// started laying.
func LayOffset(days []EnrichedDay, stds []domain.Standard, fallback int) int {
	actual, ok := ActualLayWeek(days)
	if !ok {
		return 0
	}
	return actual - NominalLayWeek(stds, fallback)
}

// ApplyStandards fills the standard comparatives on each enriched day. The
// egg production standard is looked up at age week minus offset so the
// standard curve lines up with the flock's actual lay start; the biological
// standards (mortality, body weight) are looked up at the age week directly.
// Days whose shifted week has no standard row keep a nil comparative.
func ApplyStandards(days []EnrichedDay, stds []domain.Standard, offset int) {
	byWeek := make(map[int]*domain.Standard, len(stds))
	for i := range stds {
		byWeek[stds[i].Week] = &stds[i]
	}

	for i := range days {
		d := &days[i]
		if s, ok := byWeek[d.AgeWeek-offset]; ok {
			d.StdEggProdPct = floatPtr(s.EggProdPct)
		}
		if s, ok := byWeek[d.AgeWeek]; ok {
			d.StdMortalityPct = floatPtr(s.MortalityPct)
			d.StdBodyWeightMale = floatPtr(s.BodyWeightMale)
			d.StdBodyWeightFemale = floatPtr(s.BodyWeightFemale)
		}
	}
}

// ShiftedEggStandard returns the egg production standard for an age week
// after applying the lay offset. ok is false when the shifted week has no
// standard row.
func ShiftedEggStandard(stds []domain.Standard, week, offset int) (float64, bool) {
	for _, s := range stds {
		if s.Week == week-offset {
			return s.EggProdPct, true
		}
	}
	return 0, false
}
