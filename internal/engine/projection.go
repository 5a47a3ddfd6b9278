package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
)

// ProjectionEvent marks a day carrying clinical notes or a photo.
type ProjectionEvent struct {
	Date  string `json:"date"`
	Note  string `json:"note,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// Projection is the parallel-array chart payload: one dates array, one weeks
// array and one value array per requested metric key, all index-aligned.
// Unavailable comparatives stay null so chart gaps render correctly.
type Projection struct {
	Dates  []string             `json:"dates"`
	Weeks  []int                `json:"weeks"`
	Keys   []string             `json:"-"`
	Series map[string][]*float64 `json:"-"`
	Notes  []string             `json:"-"`
	Events []ProjectionEvent    `json:"events"`

	Warnings []Warning `json:"-"`
}

// MarshalJSON flattens the series into top-level members, keeping the
// wire-stable shape {dates, weeks, <key>: [...], events}.
func (p *Projection) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Keys)+4)
	out["dates"] = p.Dates
	out["weeks"] = p.Weeks
	for _, key := range p.Keys {
		out[key] = p.Series[key]
	}
	if p.Notes != nil {
		out["notes"] = p.Notes
	}
	out["events"] = p.Events
	return json.Marshal(out)
}

// Project builds a custom projection for the requested metric keys over an
// optional date range. Unknown keys are skipped with a warning attached to
// the result; the request itself never fails on them.
func Project(f *domain.Flock, days []EnrichedDay, keys []string, from, to *time.Time) *Projection {
	p := &Projection{
		Series: make(map[string][]*float64),
		Events: make([]ProjectionEvent, 0),
	}

	for _, key := range keys {
		if _, ok := Registry[key]; !ok {
			p.Warnings = append(p.Warnings, warnf(f.ID, time.Time{}, WarnUnknownMetric,
				"unrecognized metric key %q ignored", key))
			continue
		}
		p.Keys = append(p.Keys, key)
		p.Series[key] = make([]*float64, 0, len(days))
	}

	for i := range days {
		d := &days[i]
		if from != nil && d.Date.Before(*from) {
			continue
		}
		if to != nil && d.Date.After(*to) {
			continue
		}

		p.Dates = append(p.Dates, d.Date.Format("2006-01-02"))
		p.Weeks = append(p.Weeks, d.AgeWeek)
		for _, key := range p.Keys {
			p.Series[key] = append(p.Series[key], metricValue(d, key))
		}
		if d.Log.Notes != "" || d.Log.PhotoPath != "" {
			p.Events = append(p.Events, ProjectionEvent{
				Date:  d.Date.Format("2006-01-02"),
				Note:  d.Log.Notes,
				Photo: d.Log.PhotoPath,
			})
		}
	}

	return p
}

// ChartProjection is the full chart-data payload: every registry key, the
// shifted standard, the partition body-weight arrays (bw_M1..8, bw_F1..8)
// and a notes array aligned to dates.
func ChartProjection(f *domain.Flock, days []EnrichedDay) *Projection {
	p := Project(f, days, MetricKeys(), nil, nil)

	for _, name := range domain.PartitionNames() {
		key := "bw_" + name
		series := make([]*float64, 0, len(days))
		for i := range days {
			series = append(series, partitionWeight(&days[i], name))
		}
		p.Keys = append(p.Keys, key)
		p.Series[key] = series
	}

	p.Notes = make([]string, 0, len(days))
	for i := range days {
		p.Notes = append(p.Notes, days[i].Log.Notes)
	}

	return p
}

func partitionWeight(d *EnrichedDay, name string) *float64 {
	for i := range d.Log.Partitions {
		if d.Log.Partitions[i].Name == name {
			return floatPtr(d.Log.Partitions[i].BodyWeight)
		}
	}
	return nil
}

// metricValue resolves a registry key against an enriched day. Raw keys pass
// the log value through; derived keys come from the calculator. Comparatives
// that are unavailable on the day stay nil.
func metricValue(d *EnrichedDay, key string) *float64 {
	l := d.Log
	switch key {
	case "mortality_male":
		return floatPtr(float64(d.MortalityMale))
	case "mortality_female":
		return floatPtr(float64(d.MortalityFemale))
	case "mortality_male_pct":
		return floatPtr(d.MortalityMalePct)
	case "mortality_female_pct":
		return floatPtr(d.MortalityFemalePct)
	case "mortality_cum_male_pct":
		return floatPtr(d.CumMortalityMalePct)
	case "mortality_cum_female_pct":
		return floatPtr(d.CumMortalityFemalePct)
	case "culls_male":
		return floatPtr(float64(d.CullsMale))
	case "culls_female":
		return floatPtr(float64(d.CullsFemale))
	case "culls_male_pct":
		return floatPtr(d.CullMalePct)
	case "culls_female_pct":
		return floatPtr(d.CullFemalePct)
	case "feed_male_gp_bird":
		return floatPtr(l.FeedMaleGrams)
	case "feed_female_gp_bird":
		return floatPtr(l.FeedFemaleGrams)
	case "feed_male_kg":
		return floatPtr(d.FeedMaleKg)
	case "feed_female_kg":
		return floatPtr(d.FeedFemaleKg)
	case "water_total":
		return floatPtr(l.WaterIntake)
	case "water_per_bird":
		return floatPtr(d.WaterPerBird)
	case "eggs_collected":
		return floatPtr(float64(l.EggsCollected))
	case "egg_prod_pct":
		return floatPtr(d.EggProdPct)
	case "hatch_eggs":
		return floatPtr(float64(d.HatchEggs))
	case "hatch_pct":
		return floatPtr(d.HatchEggPct)
	case "egg_weight":
		return floatPtr(l.EggWeight)
	case "cull_eggs_jumbo":
		return floatPtr(float64(l.CullEggJumbo))
	case "cull_eggs_small":
		return floatPtr(float64(l.CullEggSmall))
	case "cull_eggs_crack":
		return floatPtr(float64(l.CullEggCrack))
	case "cull_eggs_abnormal":
		return floatPtr(float64(l.CullEggAbnormal))
	case "cull_eggs_jumbo_pct":
		return floatPtr(d.CullEggJumboPct)
	case "cull_eggs_small_pct":
		return floatPtr(d.CullEggSmallPct)
	case "cull_eggs_crack_pct":
		return floatPtr(d.CullEggCrackPct)
	case "cull_eggs_abnormal_pct":
		return floatPtr(d.CullEggAbnormalPct)
	case "cull_eggs_total":
		return floatPtr(float64(d.CullEggTotal))
	case "cull_eggs_total_pct":
		return floatPtr(d.CullEggTotalPct)
	case "body_weight_male":
		return floatPtr(l.BodyWeightMale)
	case "body_weight_female":
		return floatPtr(l.BodyWeightFemale)
	case "uniformity_male":
		return floatPtr(l.UniformityMale)
	case "uniformity_female":
		return floatPtr(l.UniformityFemale)
	case "hatchability_pct":
		return d.HatchabilityPct
	case "fertile_egg_pct":
		return d.FertileEggPct
	case "clear_egg_pct":
		return d.ClearEggPct
	case "rotten_egg_pct":
		return d.RottenEggPct
	case "egg_set":
		if d.Hatch == nil {
			return nil
		}
		return floatPtr(float64(d.Hatch.EggSet))
	case "hatched_chicks":
		if d.Hatch == nil {
			return nil
		}
		return floatPtr(float64(d.Hatch.HatchedChicks))
	case "male_ratio_pct":
		return d.MaleRatioPct
	case "std_egg_prod":
		return d.StdEggProdPct
	default:
		panic(fmt.Sprintf("metricValue: key %q missing from switch", key))
	}
}
