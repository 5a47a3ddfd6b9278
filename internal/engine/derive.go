package engine

import (
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
)

// Egg-production denominator policies.
const (
	EggDenominatorAuto       = "auto"
	EggDenominatorProduction = "production"
	EggDenominatorTotal      = "total"
)

// Policy groups the configurable engine constants. Zero values are not
// usable; start from DefaultPolicy.
type Policy struct {
	// EggDenominator selects the female stock used as the egg-production
	// denominator. "auto" uses the production pen while the female hospital
	// pen is occupied and the whole female stock otherwise.
	EggDenominator string
	// LargeWindowDays flags male-ratio collection windows longer than this.
	LargeWindowDays int
	// NominalLayWeek is the fallback standard lay week for the shifter when
	// the standards table has no production values.
	NominalLayWeek int
}

// DefaultPolicy returns the engine defaults.
func DefaultPolicy() Policy {
	return Policy{
		EggDenominator:  EggDenominatorAuto,
		LargeWindowDays: 10,
		NominalLayWeek:  24,
	}
}

// EnrichedDay is the dense per-day record the rest of the application
// consumes: the raw log, the reconstructed stocks and every derived metric.
type EnrichedDay struct {
	Log     *domain.DailyLog `json:"log"`
	Date    time.Time        `json:"date"`
	AgeDays int              `json:"age_days"`
	AgeWeek int              `json:"age_week"`
	Stock   DayStock         `json:"stock"`

	MortalityMale   int `json:"mortality_male"`
	MortalityFemale int `json:"mortality_female"`
	CullsMale       int `json:"culls_male"`
	CullsFemale     int `json:"culls_female"`

	MortalityMalePct   float64 `json:"mortality_male_pct"`
	MortalityFemalePct float64 `json:"mortality_female_pct"`
	CullMalePct        float64 `json:"culls_male_pct"`
	CullFemalePct      float64 `json:"culls_female_pct"`

	CumMortalityMalePct   float64 `json:"mortality_cum_male_pct"`
	CumMortalityFemalePct float64 `json:"mortality_cum_female_pct"`

	EggProdPct         float64 `json:"egg_prod_pct"`
	HatchEggs          int     `json:"hatch_eggs"`
	HatchEggPct        float64 `json:"hatch_pct"`
	CullEggTotal       int     `json:"cull_eggs_total"`
	CullEggTotalPct    float64 `json:"cull_eggs_total_pct"`
	CullEggJumboPct    float64 `json:"cull_eggs_jumbo_pct"`
	CullEggSmallPct    float64 `json:"cull_eggs_small_pct"`
	CullEggCrackPct    float64 `json:"cull_eggs_crack_pct"`
	CullEggAbnormalPct float64 `json:"cull_eggs_abnormal_pct"`

	FeedMaleKg   float64 `json:"feed_male_kg"`
	FeedFemaleKg float64 `json:"feed_female_kg"`

	WaterPerBird float64  `json:"water_per_bird"`
	MaleRatioPct *float64 `json:"male_ratio_pct"`

	// Hatchery-sourced values, attached when a setting event happened on
	// this date. Nil otherwise.
	Hatch           *domain.Hatchability `json:"hatch,omitempty"`
	HatchabilityPct *float64             `json:"hatchability_pct"`
	FertileEggPct   *float64             `json:"fertile_egg_pct"`
	ClearEggPct     *float64             `json:"clear_egg_pct"`
	RottenEggPct    *float64             `json:"rotten_egg_pct"`

	// Standard comparatives, filled by ApplyStandards. StdEggProdPct is
	// looked up with the lay-offset shift; the biological standards are not.
	StdEggProdPct       *float64 `json:"std_egg_prod"`
	StdMortalityPct     *float64 `json:"std_mortality_pct"`
	StdBodyWeightMale   *float64 `json:"std_body_weight_male"`
	StdBodyWeightFemale *float64 `json:"std_body_weight_female"`
}

// EggDenominator returns the female stock count used as the egg-production
// denominator for this day under the given policy.
func (d *EnrichedDay) EggDenominator(policy string) int {
	switch policy {
	case EggDenominatorProduction:
		return d.Stock.Start.FemaleProd
	case EggDenominatorTotal:
		return d.Stock.Start.Female()
	default:
		if d.Stock.Start.FemaleHosp > 0 {
			return d.Stock.Start.FemaleProd
		}
		return d.Stock.Start.Female()
	}
}

// Enrich runs the stock replay and derives every per-day metric. Hatchery
// percentages are associated with the log whose date equals the record's
// setting date. The standard comparatives are left nil; apply them with
// ApplyStandards once the lay offset is known.
func Enrich(f *domain.Flock, logs []domain.DailyLog, hatch []domain.Hatchability, pol Policy) ([]EnrichedDay, ReplayResult) {
	replay := ReplayStocks(f, logs)

	hatchByDate := make(map[time.Time]*domain.Hatchability, len(hatch))
	for i := range hatch {
		hatchByDate[dayKey(hatch[i].SettingDate)] = &hatch[i]
	}

	// Cumulative mortality counters. The denominator is the intake count
	// until the production reset fires, then the production baseline.
	cumMortMale, cumMortFemale := 0, 0
	cumDenMale, cumDenFemale := f.IntakeMale, f.IntakeFemale

	days := make([]EnrichedDay, 0, len(replay.Days))
	for i := range replay.Days {
		l := &replay.Logs[i]
		stock := replay.Days[i]

		if i == replay.ResetIndex {
			cumMortMale, cumMortFemale = 0, 0
			cumDenMale = f.BaselineMaleProd
			cumDenFemale = f.BaselineFemaleProd
		}
		cumMortMale += l.MortalityMale()
		cumMortFemale += l.MortalityFemale()

		d := EnrichedDay{
			Log:     l,
			Date:    l.Date,
			AgeDays: f.AgeDays(l.Date),
			AgeWeek: f.AgeWeek(l.Date),
			Stock:   stock,

			MortalityMale:   l.MortalityMale(),
			MortalityFemale: l.MortalityFemale(),
			CullsMale:       l.CullsMale(),
			CullsFemale:     l.CullsFemale(),

			MortalityMalePct:   ratioPct(l.MortalityMale(), stock.Start.Male()),
			MortalityFemalePct: ratioPct(l.MortalityFemale(), stock.Start.Female()),
			CullMalePct:        ratioPct(l.CullsMale(), stock.Start.Male()),
			CullFemalePct:      ratioPct(l.CullsFemale(), stock.Start.Female()),

			CumMortalityMalePct:   ratioPct(cumMortMale, cumDenMale),
			CumMortalityFemalePct: ratioPct(cumMortFemale, cumDenFemale),

			HatchEggs:          l.HatchEggs(),
			HatchEggPct:        ratioPct(l.HatchEggs(), l.EggsCollected),
			CullEggTotal:       l.CullEggTotal(),
			CullEggTotalPct:    ratioPct(l.CullEggTotal(), l.EggsCollected),
			CullEggJumboPct:    ratioPct(l.CullEggJumbo, l.EggsCollected),
			CullEggSmallPct:    ratioPct(l.CullEggSmall, l.EggsCollected),
			CullEggCrackPct:    ratioPct(l.CullEggCrack, l.EggsCollected),
			CullEggAbnormalPct: ratioPct(l.CullEggAbnormal, l.EggsCollected),

			FeedMaleKg:   feedKg(l.FeedMaleGrams, l.FeedProgram, stock.Start.Male()),
			FeedFemaleKg: feedKg(l.FeedFemaleGrams, l.FeedProgram, stock.Start.Female()),
		}

		d.EggProdPct = ratioPct(l.EggsCollected, d.EggDenominator(pol.EggDenominator))

		if total := stock.Start.Total(); total > 0 {
			d.WaterPerBird = l.WaterIntake * 1000 / float64(total)
		}

		if fp := stock.Start.FemaleProd; fp > 0 {
			r := float64(stock.Start.MaleProd) / float64(fp) * 100
			d.MaleRatioPct = &r
		}

		if h, ok := hatchByDate[dayKey(l.Date)]; ok {
			d.Hatch = h
			d.HatchabilityPct = floatPtr(h.HatchabilityPct())
			d.FertileEggPct = floatPtr(h.FertilePct())
			d.ClearEggPct = floatPtr(h.ClearPct())
			d.RottenEggPct = floatPtr(h.RottenPct())
		}

		days = append(days, d)
	}

	return days, replay
}

// feedKg converts a grams-per-bird ration into total kilograms for the pen.
func feedKg(gramsPerBird float64, program domain.FeedProgram, stock int) float64 {
	return gramsPerBird * program.Multiplier() * float64(stock) / 1000
}

// ratioPct returns num/den as a percentage, 0 when the denominator is zero.
func ratioPct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}

func floatPtr(v float64) *float64 { return &v }

func dayKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
