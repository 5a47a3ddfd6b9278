package domain

import (
	"math"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFlockAge(t *testing.T) {
	f := Flock{IntakeDate: day(2025, 1, 1)}
	tests := []struct {
		at        time.Time
		days, wk  int
	}{
		{day(2025, 1, 1), 0, 1},
		{day(2025, 1, 7), 6, 1},
		{day(2025, 1, 8), 7, 2},
		{day(2025, 3, 1), 59, 9},
	}
	for _, tt := range tests {
		if got := f.AgeDays(tt.at); got != tt.days {
			t.Errorf("AgeDays(%s) = %d, want %d", tt.at.Format("2006-01-02"), got, tt.days)
		}
		if got := f.AgeWeek(tt.at); got != tt.wk {
			t.Errorf("AgeWeek(%s) = %d, want %d", tt.at.Format("2006-01-02"), got, tt.wk)
		}
	}
}

func TestHasBaselines(t *testing.T) {
	f := Flock{}
	if f.HasBaselines() {
		t.Error("zero baselines reported as captured")
	}
	f.BaselineFemaleHosp = 12
	if !f.HasBaselines() {
		t.Error("non-zero hospital baseline not detected")
	}
}

func TestFeedProgramMultiplier(t *testing.T) {
	tests := []struct {
		p    FeedProgram
		want float64
	}{
		{FeedFull, 1},
		{FeedSkipDay, 2},
		{FeedTwoOne, 1.5},
		{FeedProgram(""), 1},
		{FeedProgram("banquet"), 1},
	}
	for _, tt := range tests {
		if got := tt.p.Multiplier(); got != tt.want {
			t.Errorf("Multiplier(%q) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestDailyLogEggHelpers(t *testing.T) {
	l := DailyLog{
		EggsCollected: 100,
		CullEggJumbo:  2, CullEggSmall: 3, CullEggCrack: 4, CullEggAbnormal: 1,
	}
	if l.CullEggTotal() != 10 {
		t.Errorf("CullEggTotal = %d, want 10", l.CullEggTotal())
	}
	if l.HatchEggs() != 90 {
		t.Errorf("HatchEggs = %d, want 90", l.HatchEggs())
	}

	l.EggsCollected = 5
	if l.HatchEggs() != 0 {
		t.Errorf("HatchEggs = %d, want clamp to 0", l.HatchEggs())
	}
}

func TestHatchabilityDerivations(t *testing.T) {
	h := Hatchability{
		SettingDate:   day(2025, 3, 4),
		EggSet:        1000,
		ClearEggs:     80,
		RottenEggs:    20,
		HatchedChicks: 850,
	}

	if h.HatchableEggs() != 900 {
		t.Errorf("HatchableEggs = %d, want 900", h.HatchableEggs())
	}
	if got := h.HatchabilityPct(); math.Abs(got-85) > 1e-9 {
		t.Errorf("HatchabilityPct = %v, want 85", got)
	}
	if got := h.FertilePct(); math.Abs(got-90) > 1e-9 {
		t.Errorf("FertilePct = %v, want 90", got)
	}
	if got := h.ClearPct(); math.Abs(got-8) > 1e-9 {
		t.Errorf("ClearPct = %v, want 8", got)
	}
	if got := h.RottenPct(); math.Abs(got-2) > 1e-9 {
		t.Errorf("RottenPct = %v, want 2", got)
	}

	empty := Hatchability{}
	if empty.HatchabilityPct() != 0 || empty.FertilePct() != 0 {
		t.Error("zero egg set must not divide")
	}
}

func TestHatchabilityEffectiveDates(t *testing.T) {
	h := Hatchability{SettingDate: day(2025, 3, 4)}
	if got := h.EffectiveCandlingDate(18); !got.Equal(day(2025, 3, 22)) {
		t.Errorf("candling default = %s", got.Format("2006-01-02"))
	}
	if got := h.EffectiveHatchingDate(21); !got.Equal(day(2025, 3, 25)) {
		t.Errorf("hatching default = %s", got.Format("2006-01-02"))
	}

	reported := day(2025, 3, 20)
	h.CandlingDate = &reported
	if got := h.EffectiveCandlingDate(18); !got.Equal(reported) {
		t.Errorf("reported candling ignored: %s", got.Format("2006-01-02"))
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"04:30", 270, false},
		{"23:59", 1439, false},
		{" 06:15 ", 375, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(270); got != "04:30" {
		t.Errorf("FormatClock(270) = %q", got)
	}
	if got := FormatClock(0); got != "00:00" {
		t.Errorf("FormatClock(0) = %q", got)
	}
	if got := FormatClock(1439); got != "23:59" {
		t.Errorf("FormatClock(1439) = %q", got)
	}
}

func TestPartitionNameSpace(t *testing.T) {
	names := PartitionNames()
	if len(names) != 16 {
		t.Fatalf("name space = %d, want 16", len(names))
	}
	if names[0] != "M1" || names[7] != "M8" || names[8] != "F1" || names[15] != "F8" {
		t.Errorf("name order = %v", names)
	}
	for _, n := range names {
		if !ValidPartitionName(n) {
			t.Errorf("%s rejected", n)
		}
	}
	for _, bad := range []string{"M0", "M9", "F9", "X1", "M", "", "f1"} {
		if ValidPartitionName(bad) {
			t.Errorf("%q accepted", bad)
		}
	}
}
