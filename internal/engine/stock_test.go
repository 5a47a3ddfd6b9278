package engine

import (
	"testing"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testFlock() *domain.Flock {
	return &domain.Flock{
		ID:           "H01-2025",
		IntakeDate:   date(2025, 1, 1),
		IntakeMale:   1000,
		IntakeFemale: 10000,
		Status:       domain.FlockActive,
		Phase:        domain.PhaseRearing,
	}
}

func productionFlock() *domain.Flock {
	f := testFlock()
	ps := date(2025, 1, 2)
	f.ProductionStart = &ps
	f.Phase = domain.PhaseProduction
	f.BaselineMaleProd = 900
	f.BaselineFemaleProd = 9900
	f.BaselineMaleHosp = 50
	f.BaselineFemaleHosp = 50
	return f
}

func TestReplayBasic(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), MortMaleProd: 10, MortFemaleProd: 10},
	}

	res := ReplayStocks(f, logs)
	if len(res.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(res.Days))
	}

	day := res.Days[0]
	wantStart := PenStock{MaleProd: 1000, FemaleProd: 10000}
	if day.Start != wantStart {
		t.Errorf("start = %+v, want %+v", day.Start, wantStart)
	}
	wantEnd := PenStock{MaleProd: 990, FemaleProd: 9990}
	if day.End != wantEnd {
		t.Errorf("end = %+v, want %+v", day.End, wantEnd)
	}
	if res.ResetIndex != -1 {
		t.Errorf("reset fired at %d for a rearing flock", res.ResetIndex)
	}
}

func TestReplayPhaseSwitch(t *testing.T) {
	f := productionFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), MortMaleProd: 10, MortFemaleProd: 10},
		{FlockID: f.ID, Date: date(2025, 1, 2), MortMaleProd: 5},
	}

	res := ReplayStocks(f, logs)
	if res.ResetIndex != 1 {
		t.Fatalf("reset index = %d, want 1", res.ResetIndex)
	}

	day := res.Days[1]
	wantStart := PenStock{MaleProd: 900, FemaleProd: 9900, MaleHosp: 50, FemaleHosp: 50}
	if day.Start != wantStart {
		t.Errorf("start = %+v, want %+v", day.Start, wantStart)
	}
	wantEnd := PenStock{MaleProd: 895, FemaleProd: 9900, MaleHosp: 50, FemaleHosp: 50}
	if day.End != wantEnd {
		t.Errorf("end = %+v, want %+v", day.End, wantEnd)
	}

	if res.Baseline == nil {
		t.Fatal("baseline diff not reported")
	}
	// Replay implied 990 males and 9990 females; baselines claim 950/9950.
	if res.Baseline.DiffMale != 40 || res.Baseline.DiffFemale != 40 {
		t.Errorf("baseline diff = (%d, %d), want (40, 40)",
			res.Baseline.DiffMale, res.Baseline.DiffFemale)
	}
}

func TestReplayTransfers(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), MovedMaleToHosp: 30, MovedFemaleToHosp: 20},
		{FlockID: f.ID, Date: date(2025, 1, 2), MovedMaleToProd: 10, MortMaleHosp: 5},
	}

	res := ReplayStocks(f, logs)
	if got := res.Days[0].End; got != (PenStock{MaleProd: 970, FemaleProd: 9980, MaleHosp: 30, FemaleHosp: 20}) {
		t.Errorf("day 1 end = %+v", got)
	}
	if got := res.Days[1].End; got != (PenStock{MaleProd: 980, FemaleProd: 9980, MaleHosp: 15, FemaleHosp: 20}) {
		t.Errorf("day 2 end = %+v", got)
	}
}

func TestReplayClampsNegative(t *testing.T) {
	f := testFlock()
	f.IntakeMale = 5
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), MortMaleProd: 10},
	}

	res := ReplayStocks(f, logs)
	if got := res.Days[0].End.MaleProd; got != 0 {
		t.Errorf("male prod = %d, want 0 after clamp", got)
	}
	if !hasWarning(res.Warnings, WarnNegativeStock) {
		t.Error("clamp did not emit a warning")
	}
}

func TestReplaySortsAndDedupes(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 2), MortMaleProd: 2},
		{FlockID: f.ID, Date: date(2025, 1, 1), MortMaleProd: 1},
		{FlockID: f.ID, Date: date(2025, 1, 2), MortMaleProd: 3},
	}

	res := ReplayStocks(f, logs)
	if len(res.Days) != 2 {
		t.Fatalf("expected 2 days after dedupe, got %d", len(res.Days))
	}
	if !res.Days[0].Date.Equal(date(2025, 1, 1)) {
		t.Errorf("days not sorted: first = %s", res.Days[0].Date)
	}
	// The later record for Jan 2 supersedes the earlier one.
	if got := res.Days[1].End.MaleProd; got != 1000-1-3 {
		t.Errorf("male prod = %d, want %d", got, 1000-1-3)
	}
	if !hasWarning(res.Warnings, WarnDuplicateDate) {
		t.Error("duplicate date did not emit a warning")
	}
}

func TestReplayDropsPreIntakeLogs(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2024, 12, 31), MortMaleProd: 100},
		{FlockID: f.ID, Date: date(2025, 1, 1), MortMaleProd: 1},
	}

	res := ReplayStocks(f, logs)
	if len(res.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(res.Days))
	}
	if got := res.Days[0].End.MaleProd; got != 999 {
		t.Errorf("male prod = %d, want 999", got)
	}
	if !hasWarning(res.Warnings, WarnLogBeforeIntake) {
		t.Error("pre-intake log did not emit a warning")
	}
}

func TestReplayGapsCarryForward(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), MortMaleProd: 10},
		{FlockID: f.ID, Date: date(2025, 1, 10), MortMaleProd: 5},
	}

	res := ReplayStocks(f, logs)
	if got := res.Days[1].Start.MaleProd; got != 990 {
		t.Errorf("stock after gap = %d, want 990 (no implicit mortality)", got)
	}
}

func TestReplayPhaseSwitchWithoutBaselines(t *testing.T) {
	f := testFlock()
	ps := date(2025, 1, 2)
	f.ProductionStart = &ps
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), MortMaleProd: 10},
		{FlockID: f.ID, Date: date(2025, 1, 2), MortMaleProd: 5},
	}

	res := ReplayStocks(f, logs)
	if res.ResetIndex != -1 {
		t.Errorf("reset fired without baselines")
	}
	if got := res.Days[1].Start.MaleProd; got != 990 {
		t.Errorf("start = %d, want replayed 990", got)
	}
}

// Total losses from intake must equal the drop in total stock; transfers are
// internal and cancel out.
func TestReplayConservation(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 1), MortFemaleProd: 7, CullFemaleProd: 3, MovedFemaleToHosp: 50},
		{FlockID: f.ID, Date: date(2025, 1, 2), MortFemaleHosp: 4, CullFemaleHosp: 1, MovedFemaleToProd: 20},
		{FlockID: f.ID, Date: date(2025, 1, 3), MortFemaleProd: 2},
	}

	res := ReplayStocks(f, logs)
	losses := 0
	for i := range res.Logs {
		losses += res.Logs[i].MortalityFemale() + res.Logs[i].CullsFemale()
	}
	last := res.Days[len(res.Days)-1].End
	if got := f.IntakeFemale - last.Female(); got != losses {
		t.Errorf("stock drop = %d, summed losses = %d", got, losses)
	}
}

func hasWarning(warnings []Warning, code string) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
