package service

import (
	"context"
	"time"

	"github.com/ayamprima/flockcore/internal/cache"
	"github.com/ayamprima/flockcore/internal/config"
	"github.com/ayamprima/flockcore/internal/engine"
	"github.com/rs/zerolog/log"
)

// ExecutiveService produces the cross-flock ISO week/month/year aggregation
// behind the executive dashboard.
type ExecutiveService struct {
	flockService *FlockService
	dashboards   cache.DashboardCache
	minDate      time.Time
}

func NewExecutiveService(flockService *FlockService, dashboards cache.DashboardCache, cfg config.EngineConfig) *ExecutiveService {
	if dashboards == nil {
		dashboards = cache.NewNoopDashboardCache()
	}

	minDate, err := engine.ParseISOWeek(cfg.ExecutiveMinWeek)
	if err != nil {
		log.Warn().Err(err).Str("value", cfg.ExecutiveMinWeek).
			Msg("invalid executive minimum week, including all history")
		minDate = time.Time{}
	}

	return &ExecutiveService{
		flockService: flockService,
		dashboards:   dashboards,
		minDate:      minDate,
	}
}

// GetDashboard returns the executive aggregation, optionally restricted to
// one calendar year.
func (s *ExecutiveService) GetDashboard(ctx context.Context, yearFilter *int) (*engine.ExecutiveReport, error) {
	if report, ok, err := s.dashboards.Get(ctx, yearFilter); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard cache get failed")
	}

	flocks, seriesByFlock, err := s.flockService.EnrichAll(ctx, "")
	if err != nil {
		return nil, err
	}

	daysByFlock := make(map[string][]engine.EnrichedDay, len(flocks))
	histories := make(map[string]engine.StockHistory, len(flocks))
	for id, series := range seriesByFlock {
		daysByFlock[id] = series.Days
		histories[id] = series.History
	}

	report := engine.AggregateExecutive(flocks, daysByFlock, histories, s.minDate, yearFilter)

	if err := s.dashboards.Set(ctx, yearFilter, &report); err != nil {
		log.Warn().Err(err).Msg("dashboard cache set failed")
	}
	return &report, nil
}

// GetHatcherySummary aggregates hatchery setting events across all flocks
// over a setting-date range, broken down by ISO week.
func (s *ExecutiveService) GetHatcherySummary(ctx context.Context, from, to time.Time) (*engine.HatcherySummary, error) {
	settings, err := s.flockService.hatch.GetSettingsInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := engine.SummarizeHatchery(settings, from, to)
	return &summary, nil
}
