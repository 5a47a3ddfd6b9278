package engine

import "sort"

// MetricType distinguishes values copied from the daily log from values the
// calculator derives.
type MetricType string

const (
	MetricRaw     MetricType = "raw"
	MetricDerived MetricType = "derived"
)

// Metric describes one recognized metric key. The JSON shape of the registry
// ({key: {label, unit, type}}) is wire-stable; the chart frontend renders
// straight from it.
type Metric struct {
	Label string     `json:"label"`
	Unit  string     `json:"unit"`
	Type  MetricType `json:"type"`
}

// Registry is the closed catalogue of recognized metric keys. Keys outside
// it are ignored by projections.
var Registry = map[string]Metric{
	"mortality_male":           {Label: "Mortality (M)", Unit: "birds", Type: MetricRaw},
	"mortality_female":         {Label: "Mortality (F)", Unit: "birds", Type: MetricRaw},
	"mortality_male_pct":       {Label: "Mortality % (M)", Unit: "%", Type: MetricDerived},
	"mortality_female_pct":     {Label: "Mortality % (F)", Unit: "%", Type: MetricDerived},
	"mortality_cum_male_pct":   {Label: "Cumulative mortality % (M)", Unit: "%", Type: MetricDerived},
	"mortality_cum_female_pct": {Label: "Cumulative mortality % (F)", Unit: "%", Type: MetricDerived},
	"culls_male":               {Label: "Culls (M)", Unit: "birds", Type: MetricRaw},
	"culls_female":             {Label: "Culls (F)", Unit: "birds", Type: MetricRaw},
	"culls_male_pct":           {Label: "Culls % (M)", Unit: "%", Type: MetricDerived},
	"culls_female_pct":         {Label: "Culls % (F)", Unit: "%", Type: MetricDerived},
	"feed_male_gp_bird":        {Label: "Feed per bird (M)", Unit: "g", Type: MetricRaw},
	"feed_female_gp_bird":      {Label: "Feed per bird (F)", Unit: "g", Type: MetricRaw},
	"feed_male_kg":             {Label: "Feed (M)", Unit: "kg", Type: MetricDerived},
	"feed_female_kg":           {Label: "Feed (F)", Unit: "kg", Type: MetricDerived},
	"water_total":              {Label: "Water intake", Unit: "L", Type: MetricRaw},
	"water_per_bird":           {Label: "Water per bird", Unit: "ml", Type: MetricDerived},
	"eggs_collected":           {Label: "Eggs collected", Unit: "eggs", Type: MetricRaw},
	"egg_prod_pct":             {Label: "Egg production %", Unit: "%", Type: MetricDerived},
	"hatch_eggs":               {Label: "Hatching eggs", Unit: "eggs", Type: MetricDerived},
	"hatch_pct":                {Label: "Hatching egg %", Unit: "%", Type: MetricDerived},
	"egg_weight":               {Label: "Egg weight", Unit: "g", Type: MetricRaw},
	"cull_eggs_jumbo":          {Label: "Cull eggs (jumbo)", Unit: "eggs", Type: MetricRaw},
	"cull_eggs_small":          {Label: "Cull eggs (small)", Unit: "eggs", Type: MetricRaw},
	"cull_eggs_crack":          {Label: "Cull eggs (crack)", Unit: "eggs", Type: MetricRaw},
	"cull_eggs_abnormal":       {Label: "Cull eggs (abnormal)", Unit: "eggs", Type: MetricRaw},
	"cull_eggs_jumbo_pct":      {Label: "Cull eggs % (jumbo)", Unit: "%", Type: MetricDerived},
	"cull_eggs_small_pct":      {Label: "Cull eggs % (small)", Unit: "%", Type: MetricDerived},
	"cull_eggs_crack_pct":      {Label: "Cull eggs % (crack)", Unit: "%", Type: MetricDerived},
	"cull_eggs_abnormal_pct":   {Label: "Cull eggs % (abnormal)", Unit: "%", Type: MetricDerived},
	"cull_eggs_total":          {Label: "Cull eggs", Unit: "eggs", Type: MetricDerived},
	"cull_eggs_total_pct":      {Label: "Cull eggs %", Unit: "%", Type: MetricDerived},
	"body_weight_male":         {Label: "Body weight (M)", Unit: "g", Type: MetricRaw},
	"body_weight_female":       {Label: "Body weight (F)", Unit: "g", Type: MetricRaw},
	"uniformity_male":          {Label: "Uniformity (M)", Unit: "%", Type: MetricRaw},
	"uniformity_female":        {Label: "Uniformity (F)", Unit: "%", Type: MetricRaw},
	"hatchability_pct":         {Label: "Hatchability %", Unit: "%", Type: MetricDerived},
	"fertile_egg_pct":          {Label: "Fertile egg %", Unit: "%", Type: MetricDerived},
	"clear_egg_pct":            {Label: "Clear egg %", Unit: "%", Type: MetricDerived},
	"rotten_egg_pct":           {Label: "Rotten egg %", Unit: "%", Type: MetricDerived},
	"egg_set":                  {Label: "Eggs set", Unit: "eggs", Type: MetricRaw},
	"hatched_chicks":           {Label: "Hatched chicks", Unit: "chicks", Type: MetricRaw},
	"male_ratio_pct":           {Label: "Male ratio %", Unit: "%", Type: MetricDerived},
	"std_egg_prod":             {Label: "Standard egg production %", Unit: "%", Type: MetricDerived},
}

// MetricKeys returns the recognized keys in stable (sorted) order.
func MetricKeys() []string {
	keys := make([]string, 0, len(Registry))
	for k := range Registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LookupMetric returns the metric descriptor for a key.
func LookupMetric(key string) (Metric, bool) {
	m, ok := Registry[key]
	return m, ok
}
