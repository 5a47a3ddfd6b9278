package engine

import (
	"testing"

	"github.com/ayamprima/flockcore/internal/domain"
)

func weekOfLogs(f *domain.Flock) []domain.DailyLog {
	logs := make([]domain.DailyLog, 0, 7)
	for i := 0; i < 7; i++ {
		logs = append(logs, domain.DailyLog{
			FlockID:        f.ID,
			Date:           date(2025, 1, 1+i),
			MortFemaleProd: 2,
			MortMaleProd:   1,
			EggsCollected:  100,
			WaterIntake:    5,
			Notes:          "",
		})
	}
	return logs
}

func TestWeeklyRatesRederivedFromSums(t *testing.T) {
	f := testFlock()
	logs := weekOfLogs(f)

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	weekly := AggregateWeekly(days, DefaultPolicy())
	if len(weekly) != 1 {
		t.Fatalf("expected 1 week, got %d", len(weekly))
	}

	w := weekly[0]
	if w.Week != 1 {
		t.Errorf("week = %d, want 1", w.Week)
	}
	if w.MortalityFemale != 14 {
		t.Errorf("mortality_female = %d, want 14", w.MortalityFemale)
	}
	// Rate over the first day's stock, not the average of daily percents.
	want := 14.0 / 10000.0 * 100
	if !almostEqual(w.MortalityFemalePct, want) {
		t.Errorf("mortality_female_pct = %v, want %v", w.MortalityFemalePct, want)
	}
}

func TestWeeklyCumulativeTakenVerbatim(t *testing.T) {
	f := testFlock()
	logs := weekOfLogs(f)

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	weekly := AggregateWeekly(days, DefaultPolicy())

	last := days[len(days)-1]
	if !almostEqual(weekly[0].CumMortalityFemalePct, last.CumMortalityFemalePct) {
		t.Errorf("end-of-week cumulative = %v, want last day's %v",
			weekly[0].CumMortalityFemalePct, last.CumMortalityFemalePct)
	}
}

func TestWeeklyBucketBoundaries(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1)},  // age day 0, week 1
		{FlockID: f.ID, Date: date(2025, 1, 7)},  // age day 6, week 1
		{FlockID: f.ID, Date: date(2025, 1, 8)},  // age day 7, week 2
	}

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	weekly := AggregateWeekly(days, DefaultPolicy())
	if len(weekly) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weekly))
	}
	if weekly[0].Days != 2 || weekly[1].Days != 1 {
		t.Errorf("bucket sizes = %d/%d, want 2/1", weekly[0].Days, weekly[1].Days)
	}
	if !weekly[0].EndDate.Equal(date(2025, 1, 7)) {
		t.Errorf("week 1 end = %s, want 2025-01-07", weekly[0].EndDate)
	}
}

func TestWeeklyBodyWeightAveragesNonZeroDaysOnly(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1)},
		{FlockID: f.ID, Date: date(2025, 1, 2), BodyWeightFemale: 400, WeighingDay: true},
		{FlockID: f.ID, Date: date(2025, 1, 3)},
		{FlockID: f.ID, Date: date(2025, 1, 4), BodyWeightFemale: 420, WeighingDay: true},
	}

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	weekly := AggregateWeekly(days, DefaultPolicy())
	if got := weekly[0].BodyWeightFemale; !almostEqual(got, 410) {
		t.Errorf("body_weight_female = %v, want 410 (zero days excluded)", got)
	}
}

func TestWeeklyNotesAndPhotos(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), Notes: "vaccinated ND"},
		{FlockID: f.ID, Date: date(2025, 1, 2)},
		{FlockID: f.ID, Date: date(2025, 1, 3), Notes: "wet litter", PhotoPath: "photos/w1.jpg"},
	}

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	weekly := AggregateWeekly(days, DefaultPolicy())
	if got := weekly[0].Notes; got != "vaccinated ND | wet litter" {
		t.Errorf("notes = %q", got)
	}
	if len(weekly[0].Photos) != 1 || weekly[0].Photos[0] != "photos/w1.jpg" {
		t.Errorf("photos = %v", weekly[0].Photos)
	}
}

func TestMonthlyBuckets(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 30), EggsCollected: 10},
		{FlockID: f.ID, Date: date(2025, 1, 31), EggsCollected: 20},
		{FlockID: f.ID, Date: date(2025, 2, 1), EggsCollected: 30},
	}

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	monthly := AggregateMonthly(days, DefaultPolicy())
	if len(monthly) != 2 {
		t.Fatalf("expected 2 months, got %d", len(monthly))
	}
	if monthly[0].EggsCollected != 30 || monthly[1].EggsCollected != 30 {
		t.Errorf("egg sums = %d/%d, want 30/30",
			monthly[0].EggsCollected, monthly[1].EggsCollected)
	}
	if monthly[0].Year != 2025 || monthly[0].Month != 1 {
		t.Errorf("first bucket = %d-%d", monthly[0].Year, monthly[0].Month)
	}
}

func TestWeeklyStockStartIsFirstDay(t *testing.T) {
	f := testFlock()
	logs := weekOfLogs(f)

	days, _ := Enrich(f, logs, nil, DefaultPolicy())
	weekly := AggregateWeekly(days, DefaultPolicy())
	if weekly[0].StockStart != days[0].Stock.Start {
		t.Errorf("stock_start = %+v, want first day's %+v",
			weekly[0].StockStart, days[0].Stock.Start)
	}
}
