package engine

import (
	"math"
	"testing"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
)

func stockDay(d time.Time, maleProd, femaleProd int) EnrichedDay {
	return EnrichedDay{
		Date: d,
		Stock: DayStock{
			Date:  d,
			Start: PenStock{MaleProd: maleProd, FemaleProd: femaleProd},
		},
	}
}

func TestSettingWindowTuesday(t *testing.T) {
	s := date(2025, 3, 4) // a Tuesday
	w := SettingWindow(nil, s, 10)
	if !w.Start.Equal(date(2025, 2, 28)) || !w.End.Equal(date(2025, 3, 3)) {
		t.Errorf("window = [%s, %s], want [2025-02-28, 2025-03-03]",
			w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
	}
	if w.Days() != 4 {
		t.Errorf("window length = %d, want 4", w.Days())
	}
	if w.Large {
		t.Error("4-day window flagged as large")
	}
}

func TestSettingWindowFriday(t *testing.T) {
	s := date(2025, 3, 7) // a Friday
	w := SettingWindow(nil, s, 10)
	if !w.Start.Equal(date(2025, 3, 4)) || !w.End.Equal(date(2025, 3, 6)) {
		t.Errorf("window = [%s, %s], want [2025-03-04, 2025-03-06]",
			w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
	}
}

func TestSettingWindowFallbackToPriorSetting(t *testing.T) {
	settings := []domain.Hatchability{
		{SettingDate: date(2025, 2, 18)},
		{SettingDate: date(2025, 2, 25)},
	}
	s := date(2025, 3, 5) // a Wednesday
	w := SettingWindow(settings, s, 10)
	if !w.Start.Equal(date(2025, 2, 25)) || !w.End.Equal(date(2025, 3, 4)) {
		t.Errorf("window = [%s, %s], want [2025-02-25, 2025-03-04]",
			w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
	}
}

func TestSettingWindowFallbackSevenDays(t *testing.T) {
	s := date(2025, 3, 5) // a Wednesday, no prior settings
	w := SettingWindow(nil, s, 10)
	if !w.Start.Equal(date(2025, 2, 26)) || !w.End.Equal(date(2025, 3, 4)) {
		t.Errorf("window = [%s, %s], want [2025-02-26, 2025-03-04]",
			w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
	}
}

func TestSettingWindowLargeFlag(t *testing.T) {
	settings := []domain.Hatchability{{SettingDate: date(2025, 2, 1)}}
	s := date(2025, 3, 5)
	w := SettingWindow(settings, s, 10)
	if !w.Large {
		t.Errorf("window of %d days not flagged large", w.Days())
	}
}

func TestMaleRatioForSettingTuesday(t *testing.T) {
	days := []EnrichedDay{
		stockDay(date(2025, 2, 27), 905, 9905), // outside window
		stockDay(date(2025, 2, 28), 900, 9900),
		stockDay(date(2025, 3, 1), 900, 9895),
		stockDay(date(2025, 3, 2), 895, 9895),
		stockDay(date(2025, 3, 3), 895, 9890),
		stockDay(date(2025, 3, 4), 895, 9890), // setting day itself, excluded
	}

	ratio, large := MaleRatioForSetting(days, nil, date(2025, 3, 4), 10)
	if ratio == nil {
		t.Fatal("ratio = nil, want a value")
	}
	want := (900.0/9900 + 900.0/9895 + 895.0/9895 + 895.0/9890) / 4 * 100
	if math.Abs(*ratio-want) > 1e-9 {
		t.Errorf("ratio = %v, want %v", *ratio, want)
	}
	if math.Abs(*ratio-9.070) > 0.001 {
		t.Errorf("ratio = %v, want about 9.070", *ratio)
	}
	if large {
		t.Error("large flag set for a 4-day window")
	}
}

func TestMaleRatioSkipsDaysWithoutFemales(t *testing.T) {
	days := []EnrichedDay{
		stockDay(date(2025, 2, 28), 900, 0),
		stockDay(date(2025, 3, 1), 900, 9000),
	}
	ratio, _ := MaleRatioForSetting(days, nil, date(2025, 3, 4), 10)
	if ratio == nil {
		t.Fatal("ratio = nil")
	}
	if math.Abs(*ratio-10) > 1e-9 {
		t.Errorf("ratio = %v, want 10 (zero-female day excluded)", *ratio)
	}
}

func TestMaleRatioNilWhenNoUsableDays(t *testing.T) {
	days := []EnrichedDay{stockDay(date(2025, 2, 28), 900, 0)}
	ratio, large := MaleRatioForSetting(days, nil, date(2025, 3, 4), 10)
	if ratio != nil {
		t.Errorf("ratio = %v, want nil", *ratio)
	}
	if large {
		t.Error("large flag set unexpectedly")
	}
}
