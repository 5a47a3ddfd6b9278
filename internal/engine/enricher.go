package engine

import (
	"github.com/ayamprima/flockcore/internal/domain"
)

// FlockSeries is the fully enriched output for one flock: the daily series
// with standards applied, the weekly and monthly aggregates, the lay offset
// and everything the replay reported.
type FlockSeries struct {
	Flock     *domain.Flock `json:"flock"`
	Days      []EnrichedDay `json:"days"`
	Weekly    []Aggregate   `json:"weekly"`
	Monthly   []Aggregate   `json:"monthly"`
	LayOffset int           `json:"lay_offset"`
	History   StockHistory  `json:"-"`

	Baseline *BaselineDiff `json:"baseline,omitempty"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// EnrichFlock runs the whole engine for one flock: replay, derivation,
// standard shifting and aggregation. Inputs are the already-materialized
// ordered lists the repository layer produced; the function is pure compute
// and deterministic, so running it twice on the same inputs yields identical
// output.
func EnrichFlock(f *domain.Flock, logs []domain.DailyLog, hatch []domain.Hatchability, stds []domain.Standard, pol Policy) *FlockSeries {
	days, replay := Enrich(f, logs, hatch, pol)

	offset := LayOffset(days, stds, pol.NominalLayWeek)
	ApplyStandards(days, stds, offset)

	return &FlockSeries{
		Flock:     f,
		Days:      days,
		Weekly:    AggregateWeekly(days, pol),
		Monthly:   AggregateMonthly(days, pol),
		LayOffset: offset,
		History:   historyFromReplay(f, replay),
		Baseline:  replay.Baseline,
		Warnings:  replay.Warnings,
	}
}
