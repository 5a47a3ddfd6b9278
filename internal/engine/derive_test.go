package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/ayamprima/flockcore/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDailyMortalityPct(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), MortMaleProd: 10, MortFemaleProd: 10},
	}

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	if got := days[0].MortalityMalePct; !almostEqual(got, 1.0) {
		t.Errorf("mortality_male_pct = %v, want 1.0", got)
	}
	if got := days[0].MortalityFemalePct; !almostEqual(got, 0.1) {
		t.Errorf("mortality_female_pct = %v, want 0.1", got)
	}
}

func TestCumulativeMortalityResetsAtPhaseSwitch(t *testing.T) {
	f := productionFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), MortMaleProd: 10, MortFemaleProd: 10},
		{FlockID: f.ID, Date: date(2025, 1, 2), MortMaleProd: 5},
	}

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	if got := days[0].CumMortalityMalePct; !almostEqual(got, 1.0) {
		t.Errorf("pre-switch cumulative = %v, want 1.0 (denominator intake)", got)
	}
	// After the reset the numerator restarts and the denominator is the
	// production baseline: 5/900.
	want := 5.0 / 900.0 * 100
	if got := days[1].CumMortalityMalePct; !almostEqual(got, want) {
		t.Errorf("post-switch cumulative = %v, want %v", got, want)
	}
}

func TestWaterPerBird(t *testing.T) {
	f := testFlock()
	f.IntakeMale = 0
	f.IntakeFemale = 10000
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), WaterIntake: 500},
	}

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	if got := days[0].WaterPerBird; !almostEqual(got, 50) {
		t.Errorf("water_per_bird = %v, want 50 ml", got)
	}
}

func TestFeedKgMultipliers(t *testing.T) {
	tests := []struct {
		program domain.FeedProgram
		want    float64
	}{
		{domain.FeedFull, 100 * 1 * 10000 / 1000},
		{domain.FeedSkipDay, 100 * 2 * 10000 / 1000},
		{domain.FeedTwoOne, 100 * 1.5 * 10000 / 1000},
	}

	for _, tt := range tests {
		f := testFlock()
		logs := []domain.DailyLog{
			{FlockID: f.ID, Date: date(2025, 1, 1), FeedProgram: tt.program, FeedFemaleGrams: 100},
		}
		days, _ := Enrich(f, logs, nil, DefaultPolicy())
		if got := days[0].FeedFemaleKg; !almostEqual(got, tt.want) {
			t.Errorf("%s: feed_female_kg = %v, want %v", tt.program, got, tt.want)
		}
	}
}

func TestEggPercentages(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{
			FlockID: f.ID, Date: date(2025, 1, 1),
			EggsCollected: 8000,
			CullEggJumbo:  100, CullEggSmall: 200, CullEggCrack: 50, CullEggAbnormal: 50,
		},
	}

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	d := days[0]
	if d.HatchEggs != 7600 {
		t.Errorf("hatch_eggs = %d, want 7600", d.HatchEggs)
	}
	if d.HatchEggs+d.CullEggTotal != d.Log.EggsCollected {
		t.Errorf("hatching + culls = %d, want eggs_collected %d",
			d.HatchEggs+d.CullEggTotal, d.Log.EggsCollected)
	}
	if got := d.EggProdPct; !almostEqual(got, 80) {
		t.Errorf("egg_prod_pct = %v, want 80", got)
	}
	if got := d.CullEggSmallPct; !almostEqual(got, 2.5) {
		t.Errorf("cull_eggs_small_pct = %v, want 2.5", got)
	}
}

func TestZeroEggsAllPctZero(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{{FlockID: f.ID, Date: date(2025, 1, 1)}}

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	d := days[0]
	for name, v := range map[string]float64{
		"hatch_pct":           d.HatchEggPct,
		"cull_eggs_total_pct": d.CullEggTotalPct,
		"cull_eggs_jumbo_pct": d.CullEggJumboPct,
	} {
		if v != 0 {
			t.Errorf("%s = %v, want 0 when no eggs collected", name, v)
		}
	}
}

func TestZeroFemaleStockNeverNaN(t *testing.T) {
	f := testFlock()
	f.IntakeFemale = 0
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), EggsCollected: 5, MortFemaleProd: 1},
	}

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	d := days[0]
	if d.MaleRatioPct != nil {
		t.Errorf("male_ratio_pct = %v, want nil with no females", *d.MaleRatioPct)
	}
	for name, v := range map[string]float64{
		"egg_prod_pct":         d.EggProdPct,
		"mortality_female_pct": d.MortalityFemalePct,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s = %v, want finite", name, v)
		}
		if v != 0 {
			t.Errorf("%s = %v, want 0", name, v)
		}
	}
}

func TestEggDenominatorPolicies(t *testing.T) {
	d := EnrichedDay{Stock: DayStock{Start: PenStock{FemaleProd: 900, FemaleHosp: 100}}}

	if got := d.EggDenominator(EggDenominatorAuto); got != 900 {
		t.Errorf("auto with occupied hospital = %d, want 900", got)
	}
	if got := d.EggDenominator(EggDenominatorProduction); got != 900 {
		t.Errorf("production = %d, want 900", got)
	}
	if got := d.EggDenominator(EggDenominatorTotal); got != 1000 {
		t.Errorf("total = %d, want 1000", got)
	}

	d.Stock.Start.FemaleHosp = 0
	if got := d.EggDenominator(EggDenominatorAuto); got != 900 {
		t.Errorf("auto with empty hospital = %d, want 900", got)
	}
}

func TestHatcheryAttachment(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1)},
		{FlockID: f.ID, Date: date(2025, 1, 2)},
	}
	hatch := []domain.Hatchability{
		{FlockID: f.ID, SettingDate: date(2025, 1, 2), EggSet: 1000, ClearEggs: 50, RottenEggs: 50, HatchedChicks: 800},
	}

	days, _ := Enrich(f, logs, hatch, DefaultPolicy())
	if days[0].HatchabilityPct != nil {
		t.Error("hatchery values attached to a non-setting date")
	}
	d := days[1]
	if d.HatchabilityPct == nil || !almostEqual(*d.HatchabilityPct, 80) {
		t.Fatalf("hatchability_pct = %v, want 80", d.HatchabilityPct)
	}
	if !almostEqual(*d.FertileEggPct, 90) {
		t.Errorf("fertile_egg_pct = %v, want 90", *d.FertileEggPct)
	}
	if !almostEqual(*d.ClearEggPct, 5) || !almostEqual(*d.RottenEggPct, 5) {
		t.Errorf("clear/rotten = %v/%v, want 5/5", *d.ClearEggPct, *d.RottenEggPct)
	}
}

func TestEnrichIsDeterministic(t *testing.T) {
	f := productionFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), MortMaleProd: 10, EggsCollected: 100, WaterIntake: 5},
		{FlockID: f.ID, Date: date(2025, 1, 2), MortFemaleProd: 3, EggsCollected: 120, WaterIntake: 6},
	}

	a, _ := Enrich(f, logs, nil, DefaultPolicy())
	b, _ := Enrich(f, logs, nil, DefaultPolicy())
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs over the same inputs diverged")
	}
}

func TestProductionToggleRestoresCumulativeCounters(t *testing.T) {
	logs := []domain.DailyLog{
		{FlockID: "H01-2025", Date: date(2025, 1, 1), MortMaleProd: 5, MortFemaleProd: 20},
		{FlockID: "H01-2025", Date: date(2025, 1, 2), MortFemaleProd: 10},
		{FlockID: "H01-2025", Date: date(2025, 1, 3), MortMaleProd: 5, MortFemaleProd: 10},
	}

	before, _ := Enrich(testFlock(), logs, nil, DefaultPolicy())
	toggled, _ := Enrich(productionFlock(), logs, nil, DefaultPolicy())
	restored, _ := Enrich(testFlock(), logs, nil, DefaultPolicy())

	// Flipping production on resets the cumulative counters against the
	// baselines from the switch date onward.
	if almostEqual(toggled[2].CumMortalityFemalePct, before[2].CumMortalityFemalePct) {
		t.Fatal("production baselines had no effect on the cumulative counters")
	}

	// Flipping it back off restores the pre-toggle values exactly.
	for i := range before {
		if !almostEqual(restored[i].CumMortalityFemalePct, before[i].CumMortalityFemalePct) ||
			!almostEqual(restored[i].CumMortalityMalePct, before[i].CumMortalityMalePct) {
			t.Errorf("day %d: cumulative mortality %v/%v not restored to %v/%v",
				i, restored[i].CumMortalityMalePct, restored[i].CumMortalityFemalePct,
				before[i].CumMortalityMalePct, before[i].CumMortalityFemalePct)
		}
	}
}
