package engine

import (
	"testing"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
)

func TestStockHistoryAt(t *testing.T) {
	f := testFlock()
	logs := []domain.DailyLog{
		{FlockID: f.ID, Date: date(2025, 1, 2), MortFemaleProd: 100},
		{FlockID: f.ID, Date: date(2025, 1, 5), MortFemaleProd: 50},
	}

	h := BuildStockHistory(f, logs)

	tests := []struct {
		name string
		at   string
		want int
	}{
		{"before first log", "2025-01-01", 11000},
		{"first logged date", "2025-01-02", 11000},
		{"gap carries previous start", "2025-01-03", 11000},
		{"second logged date", "2025-01-05", 10900},
		{"after last log uses latest", "2025-01-09", 10850},
	}

	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.at)
		if err != nil {
			t.Fatalf("%s: bad date %q", tt.name, tt.at)
		}
		if got := h.At(d); got != tt.want {
			t.Errorf("%s: At(%s) = %d, want %d", tt.name, tt.at, got, tt.want)
		}
	}
}

func TestStockHistoryNoLogs(t *testing.T) {
	f := testFlock()
	h := BuildStockHistory(f, nil)
	if got := h.At(date(2025, 6, 1)); got != 11000 {
		t.Errorf("At = %d, want intake total 11000", got)
	}
	if h.Latest() != 11000 {
		t.Errorf("Latest = %d, want 11000", h.Latest())
	}
}

func TestBuildStockHistoriesBulk(t *testing.T) {
	f1 := testFlock()
	f2 := testFlock()
	f2.ID = "H02-2025"
	f2.IntakeMale = 500
	f2.IntakeFemale = 5000

	logsByFlock := map[string][]domain.DailyLog{
		f1.ID: {{FlockID: f1.ID, Date: date(2025, 1, 2), MortFemaleProd: 10}},
	}

	hs := BuildStockHistories([]domain.Flock{*f1, *f2}, logsByFlock)
	if got := hs[f1.ID].Latest(); got != 10990 {
		t.Errorf("flock 1 latest = %d, want 10990", got)
	}
	if got := hs[f2.ID].At(date(2025, 3, 1)); got != 5500 {
		t.Errorf("flock 2 (no logs) = %d, want 5500", got)
	}
}

func TestDoseCount(t *testing.T) {
	tests := []struct {
		stock, perUnit, want int
	}{
		{10000, 1000, 10},
		{10001, 1000, 11},
		{999, 1000, 1},
		{0, 1000, 0},
		{500, 0, 0},
	}
	for _, tt := range tests {
		if got := DoseCount(tt.stock, tt.perUnit); got != tt.want {
			t.Errorf("DoseCount(%d, %d) = %d, want %d", tt.stock, tt.perUnit, got, tt.want)
		}
	}
}
