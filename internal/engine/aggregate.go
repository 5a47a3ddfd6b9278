package engine

import (
	"strings"
	"time"
)

// Aggregate is one weekly or monthly bucket of enriched days. Counts are
// summed; rates are re-derived from the sums, never averaged from daily
// rates. The cumulative mortality values are taken verbatim from the last
// day in the bucket.
type Aggregate struct {
	// Week is the 1-based age week for weekly buckets, 0 for monthly ones.
	Week int `json:"week,omitempty"`
	// Year/Month identify monthly buckets; zero for weekly ones.
	Year  int        `json:"year,omitempty"`
	Month time.Month `json:"month,omitempty"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      int       `json:"days"`

	// StockStart is the start-of-day stock of the first day in the bucket.
	StockStart PenStock `json:"stock_start"`

	MortalityMale   int `json:"mortality_male"`
	MortalityFemale int `json:"mortality_female"`
	CullsMale       int `json:"culls_male"`
	CullsFemale     int `json:"culls_female"`
	EggsCollected   int `json:"eggs_collected"`
	HatchEggs       int `json:"hatch_eggs"`
	CullEggTotal    int `json:"cull_eggs_total"`
	CullEggJumbo    int `json:"cull_eggs_jumbo"`
	CullEggSmall    int `json:"cull_eggs_small"`
	CullEggCrack    int `json:"cull_eggs_crack"`
	CullEggAbnormal int `json:"cull_eggs_abnormal"`
	EggSet          int `json:"egg_set"`
	HatchedChicks   int `json:"hatched_chicks"`

	MortalityMalePct   float64 `json:"mortality_male_pct"`
	MortalityFemalePct float64 `json:"mortality_female_pct"`
	CullMalePct        float64 `json:"culls_male_pct"`
	CullFemalePct      float64 `json:"culls_female_pct"`
	EggProdPct         float64 `json:"egg_prod_pct"`
	HatchEggPct        float64 `json:"hatch_pct"`
	CullEggTotalPct    float64 `json:"cull_eggs_total_pct"`

	CumMortalityMalePct   float64 `json:"mortality_cum_male_pct"`
	CumMortalityFemalePct float64 `json:"mortality_cum_female_pct"`

	// Body weight, uniformity and egg weight are averaged over days with a
	// non-zero sample only.
	BodyWeightMale   float64 `json:"body_weight_male"`
	BodyWeightFemale float64 `json:"body_weight_female"`
	UniformityMale   float64 `json:"uniformity_male"`
	UniformityFemale float64 `json:"uniformity_female"`
	EggWeight        float64 `json:"egg_weight"`

	FeedMaleKg   float64 `json:"feed_male_kg"`
	FeedFemaleKg float64 `json:"feed_female_kg"`
	WaterTotal   float64 `json:"water_total"`
	WaterPerBird float64 `json:"water_per_bird"`

	Notes  string   `json:"notes"`
	Photos []string `json:"photos"`

	// StdEggProdPct carries the shifted standard of the bucket's last day.
	StdEggProdPct *float64 `json:"std_egg_prod"`
}

// AggregateWeekly buckets enriched days into age weeks. Days must be in
// ascending date order (as produced by Enrich).
func AggregateWeekly(days []EnrichedDay, pol Policy) []Aggregate {
	return aggregate(days, pol, func(d *EnrichedDay) aggKey {
		return aggKey{week: d.AgeWeek}
	})
}

// AggregateMonthly buckets enriched days into calendar months.
func AggregateMonthly(days []EnrichedDay, pol Policy) []Aggregate {
	return aggregate(days, pol, func(d *EnrichedDay) aggKey {
		return aggKey{year: d.Date.Year(), month: d.Date.Month()}
	})
}

type aggKey struct {
	week  int
	year  int
	month time.Month
}

type aggState struct {
	agg   Aggregate
	notes []string

	// Summed daily denominators for rate re-derivation.
	maleDays, femaleDays, eggDenDays, totalDays int

	bwMale, bwFemale, uniMale, uniFemale, eggWeight     float64
	bwMaleN, bwFemaleN, uniMaleN, uniFemaleN, eggWeightN int
}

func aggregate(days []EnrichedDay, pol Policy, keyOf func(*EnrichedDay) aggKey) []Aggregate {
	var order []aggKey
	states := make(map[aggKey]*aggState)

	for i := range days {
		d := &days[i]
		key := keyOf(d)
		st, ok := states[key]
		if !ok {
			st = &aggState{agg: Aggregate{
				Week:       key.week,
				Year:       key.year,
				Month:      key.month,
				StartDate:  d.Date,
				StockStart: d.Stock.Start,
			}}
			states[key] = st
			order = append(order, key)
		}
		addDay(st, d, pol)
	}

	out := make([]Aggregate, 0, len(order))
	for _, key := range order {
		out = append(out, finishBucket(states[key]))
	}
	return out
}

func addDay(st *aggState, d *EnrichedDay, pol Policy) {
	a := &st.agg
	a.EndDate = d.Date
	a.Days++

	a.MortalityMale += d.MortalityMale
	a.MortalityFemale += d.MortalityFemale
	a.CullsMale += d.CullsMale
	a.CullsFemale += d.CullsFemale
	a.EggsCollected += d.Log.EggsCollected
	a.HatchEggs += d.HatchEggs
	a.CullEggTotal += d.CullEggTotal
	a.CullEggJumbo += d.Log.CullEggJumbo
	a.CullEggSmall += d.Log.CullEggSmall
	a.CullEggCrack += d.Log.CullEggCrack
	a.CullEggAbnormal += d.Log.CullEggAbnormal
	if d.Hatch != nil {
		a.EggSet += d.Hatch.EggSet
		a.HatchedChicks += d.Hatch.HatchedChicks
	}

	a.FeedMaleKg += d.FeedMaleKg
	a.FeedFemaleKg += d.FeedFemaleKg
	a.WaterTotal += d.Log.WaterIntake

	// End-of-bucket values are taken verbatim from the latest day.
	a.CumMortalityMalePct = d.CumMortalityMalePct
	a.CumMortalityFemalePct = d.CumMortalityFemalePct
	a.StdEggProdPct = d.StdEggProdPct

	st.maleDays += d.Stock.Start.Male()
	st.femaleDays += d.Stock.Start.Female()
	st.eggDenDays += d.EggDenominator(pol.EggDenominator)
	st.totalDays += d.Stock.Start.Total()

	if d.Log.BodyWeightMale > 0 {
		st.bwMale += d.Log.BodyWeightMale
		st.bwMaleN++
	}
	if d.Log.BodyWeightFemale > 0 {
		st.bwFemale += d.Log.BodyWeightFemale
		st.bwFemaleN++
	}
	if d.Log.UniformityMale > 0 {
		st.uniMale += d.Log.UniformityMale
		st.uniMaleN++
	}
	if d.Log.UniformityFemale > 0 {
		st.uniFemale += d.Log.UniformityFemale
		st.uniFemaleN++
	}
	if d.Log.EggWeight > 0 {
		st.eggWeight += d.Log.EggWeight
		st.eggWeightN++
	}

	if d.Log.Notes != "" {
		st.notes = append(st.notes, d.Log.Notes)
	}
	if d.Log.PhotoPath != "" {
		a.Photos = append(a.Photos, d.Log.PhotoPath)
	}
}

func finishBucket(st *aggState) Aggregate {
	a := st.agg

	// Loss rates use the bucket's first-day stock as denominator, so a
	// week's mortality percent is the fraction of the birds that entered it.
	a.MortalityMalePct = ratioPct(a.MortalityMale, a.StockStart.Male())
	a.MortalityFemalePct = ratioPct(a.MortalityFemale, a.StockStart.Female())
	a.CullMalePct = ratioPct(a.CullsMale, a.StockStart.Male())
	a.CullFemalePct = ratioPct(a.CullsFemale, a.StockStart.Female())

	// Production rates use summed bird-days (hen-day production).
	a.EggProdPct = ratioPct(a.EggsCollected, st.eggDenDays)
	a.HatchEggPct = ratioPct(a.HatchEggs, a.EggsCollected)
	a.CullEggTotalPct = ratioPct(a.CullEggTotal, a.EggsCollected)

	if st.totalDays > 0 {
		a.WaterPerBird = a.WaterTotal * 1000 / float64(st.totalDays)
	}

	if st.bwMaleN > 0 {
		a.BodyWeightMale = st.bwMale / float64(st.bwMaleN)
	}
	if st.bwFemaleN > 0 {
		a.BodyWeightFemale = st.bwFemale / float64(st.bwFemaleN)
	}
	if st.uniMaleN > 0 {
		a.UniformityMale = st.uniMale / float64(st.uniMaleN)
	}
	if st.uniFemaleN > 0 {
		a.UniformityFemale = st.uniFemale / float64(st.uniFemaleN)
	}
	if st.eggWeightN > 0 {
		a.EggWeight = st.eggWeight / float64(st.eggWeightN)
	}

	a.Notes = strings.Join(st.notes, " | ")
	return a
}
