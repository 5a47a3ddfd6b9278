package service

import (
	"context"
	"testing"
	"time"

	"github.com/ayamprima/flockcore/internal/config"
	"github.com/ayamprima/flockcore/internal/domain"
	"github.com/ayamprima/flockcore/internal/engine"
)

type stubFlockRepo struct {
	flock *domain.Flock
}

func (s *stubFlockRepo) GetFlock(ctx context.Context, id string) (*domain.Flock, error) {
	return s.flock, nil
}

func (s *stubFlockRepo) ListFlocks(ctx context.Context, status domain.FlockStatus) ([]domain.Flock, error) {
	return []domain.Flock{*s.flock}, nil
}

func (s *stubFlockRepo) SetProductionStart(ctx context.Context, id string, start time.Time, baseline [4]int) error {
	return nil
}

type stubLogRepo struct {
	saved *domain.DailyLog
}

func (s *stubLogRepo) GetLogs(ctx context.Context, flockID string) ([]domain.DailyLog, error) {
	return nil, nil
}

func (s *stubLogRepo) GetLogsMany(ctx context.Context, flockIDs []string) (map[string][]domain.DailyLog, error) {
	return nil, nil
}

func (s *stubLogRepo) UpsertLog(ctx context.Context, l *domain.DailyLog) error {
	s.saved = l
	return nil
}

func TestPolicyFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.EngineConfig
		want engine.Policy
	}{
		{
			name: "valid values pass through",
			cfg: config.EngineConfig{
				EggDenominator:  "total",
				LargeWindowDays: 14,
				NominalLayWeek:  25,
			},
			want: engine.Policy{EggDenominator: "total", LargeWindowDays: 14, NominalLayWeek: 25},
		},
		{
			name: "unknown denominator falls back to auto",
			cfg: config.EngineConfig{
				EggDenominator:  "hens-only",
				LargeWindowDays: 10,
				NominalLayWeek:  24,
			},
			want: engine.DefaultPolicy(),
		},
		{
			name: "zero knobs keep defaults",
			cfg:  config.EngineConfig{},
			want: engine.DefaultPolicy(),
		},
	}

	for _, tt := range tests {
		if got := PolicyFromConfig(tt.cfg); got != tt.want {
			t.Errorf("%s: PolicyFromConfig = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestUpsertLogDropsPartitionsDuringProduction(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	flock := &domain.Flock{
		ID:              "H01-2025",
		IntakeDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Phase:           domain.PhaseProduction,
		ProductionStart: &start,
	}
	logs := &stubLogRepo{}
	svc := NewFlockService(&stubFlockRepo{flock: flock}, logs, nil, nil, nil, nil, config.EngineConfig{})

	partitions := []domain.PartitionWeight{{Name: "F1", BodyWeight: 720, Uniformity: 82}}

	l := &domain.DailyLog{FlockID: flock.ID, Date: start.AddDate(0, 0, 3), Partitions: partitions}
	if err := svc.UpsertLog(context.Background(), l); err != nil {
		t.Fatal(err)
	}
	if len(logs.saved.Partitions) != 0 {
		t.Errorf("production-phase log kept %d partitions, want 0", len(logs.saved.Partitions))
	}

	l = &domain.DailyLog{FlockID: flock.ID, Date: start.AddDate(0, 0, -10), Partitions: partitions}
	if err := svc.UpsertLog(context.Background(), l); err != nil {
		t.Fatal(err)
	}
	if len(logs.saved.Partitions) != 1 {
		t.Errorf("rearing-phase log lost its partitions")
	}
}
