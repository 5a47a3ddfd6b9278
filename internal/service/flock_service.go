package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayamprima/flockcore/internal/cache"
	"github.com/ayamprima/flockcore/internal/config"
	"github.com/ayamprima/flockcore/internal/domain"
	"github.com/ayamprima/flockcore/internal/engine"
	"github.com/ayamprima/flockcore/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// enrichConcurrency caps the fan-out of bulk enrichment.
const enrichConcurrency = 8

// FlockService runs the metrics engine over repository data and serves the
// chart, projection and aggregate views.
type FlockService struct {
	flocks     repository.FlockRepository
	logs       repository.LogRepository
	hatch      repository.HatchabilityRepository
	standards  repository.StandardRepository
	chartCache cache.ChartCache
	dashboards cache.DashboardCache
	policy     engine.Policy
}

func NewFlockService(
	flocks repository.FlockRepository,
	logs repository.LogRepository,
	hatch repository.HatchabilityRepository,
	standards repository.StandardRepository,
	chartCache cache.ChartCache,
	dashboards cache.DashboardCache,
	cfg config.EngineConfig,
) *FlockService {
	if chartCache == nil {
		chartCache = cache.NewNoopChartCache()
	}
	if dashboards == nil {
		dashboards = cache.NewNoopDashboardCache()
	}
	return &FlockService{
		flocks:     flocks,
		logs:       logs,
		hatch:      hatch,
		standards:  standards,
		chartCache: chartCache,
		dashboards: dashboards,
		policy:     PolicyFromConfig(cfg),
	}
}

// PolicyFromConfig maps the environment knobs onto the engine policy,
// falling back to engine defaults for unusable values.
func PolicyFromConfig(cfg config.EngineConfig) engine.Policy {
	pol := engine.DefaultPolicy()
	switch cfg.EggDenominator {
	case engine.EggDenominatorAuto, engine.EggDenominatorProduction, engine.EggDenominatorTotal:
		pol.EggDenominator = cfg.EggDenominator
	}
	if cfg.LargeWindowDays > 0 {
		pol.LargeWindowDays = cfg.LargeWindowDays
	}
	if cfg.NominalLayWeek > 0 {
		pol.NominalLayWeek = cfg.NominalLayWeek
	}
	return pol
}

// GetSeries loads everything for one flock and runs the full engine.
func (s *FlockService) GetSeries(ctx context.Context, flockID string) (*engine.FlockSeries, error) {
	f, err := s.flocks.GetFlock(ctx, flockID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logs.GetLogs(ctx, flockID)
	if err != nil {
		return nil, err
	}

	settings, err := s.hatch.GetSettings(ctx, flockID)
	if err != nil {
		return nil, err
	}

	stds, err := s.standards.GetStandards(ctx)
	if err != nil {
		return nil, err
	}

	series := engine.EnrichFlock(f, logs, settings, stds, s.policy)
	for _, w := range series.Warnings {
		log.Warn().
			Str("flock_id", w.FlockID).
			Str("code", w.Code).
			Msg(w.Message)
	}
	return series, nil
}

// GetChart serves the full chart-data payload, cached per flock.
func (s *FlockService) GetChart(ctx context.Context, flockID string) ([]byte, error) {
	if payload, ok, err := s.chartCache.Get(ctx, flockID); err == nil && ok {
		return payload, nil
	} else if err != nil {
		log.Warn().Err(err).Str("flock_id", flockID).Msg("chart cache get failed")
	}

	series, err := s.GetSeries(ctx, flockID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(engine.ChartProjection(series.Flock, series.Days))
	if err != nil {
		return nil, fmt.Errorf("encode chart payload: %w", err)
	}

	if err := s.chartCache.Set(ctx, flockID, payload); err != nil {
		log.Warn().Err(err).Str("flock_id", flockID).Msg("chart cache set failed")
	}
	return payload, nil
}

// GetProjection builds a custom projection for the requested keys.
func (s *FlockService) GetProjection(ctx context.Context, flockID string, keys []string, from, to *time.Time) (*engine.Projection, error) {
	series, err := s.GetSeries(ctx, flockID)
	if err != nil {
		return nil, err
	}
	return engine.Project(series.Flock, series.Days, keys, from, to), nil
}

// GetWeekly returns the age-week aggregates.
func (s *FlockService) GetWeekly(ctx context.Context, flockID string) ([]engine.Aggregate, error) {
	series, err := s.GetSeries(ctx, flockID)
	if err != nil {
		return nil, err
	}
	return series.Weekly, nil
}

// GetMonthly returns the calendar-month aggregates.
func (s *FlockService) GetMonthly(ctx context.Context, flockID string) ([]engine.Aggregate, error) {
	series, err := s.GetSeries(ctx, flockID)
	if err != nil {
		return nil, err
	}
	return series.Monthly, nil
}

// StandardSet bundles the shared breed-standard table with the process-wide
// defaults.
type StandardSet struct {
	Global *domain.GlobalStandard `json:"global"`
	Weeks  []domain.Standard      `json:"weeks"`
}

// GetStandards returns the breed standards and the global defaults.
func (s *FlockService) GetStandards(ctx context.Context) (*StandardSet, error) {
	global, err := s.standards.GetGlobalStandard(ctx)
	if err != nil {
		return nil, err
	}
	weeks, err := s.standards.GetStandards(ctx)
	if err != nil {
		return nil, err
	}
	return &StandardSet{Global: global, Weeks: weeks}, nil
}

// StartProduction flips the flock into the production phase, capturing the
// phase-switch baselines exactly once, and drops the derived caches.
func (s *FlockService) StartProduction(ctx context.Context, flockID string, start time.Time, baseline [4]int) error {
	if err := s.flocks.SetProductionStart(ctx, flockID, start, baseline); err != nil {
		return err
	}

	if err := s.chartCache.Invalidate(ctx, flockID); err != nil {
		log.Warn().Err(err).Str("flock_id", flockID).Msg("chart cache invalidate failed")
	}
	if err := s.dashboards.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidate failed")
	}
	return nil
}

// GetHatchability returns the flock's hatchery settings.
func (s *FlockService) GetHatchability(ctx context.Context, flockID string) ([]domain.Hatchability, error) {
	return s.hatch.GetSettings(ctx, flockID)
}

// GetMaleRatio computes the collection-window male ratio for one setting
// date and persists it back onto a matching hatchery record when one exists.
func (s *FlockService) GetMaleRatio(ctx context.Context, flockID string, settingDate time.Time) (*float64, bool, error) {
	series, err := s.GetSeries(ctx, flockID)
	if err != nil {
		return nil, false, err
	}

	settings, err := s.hatch.GetSettings(ctx, flockID)
	if err != nil {
		return nil, false, err
	}

	ratio, large := engine.MaleRatioForSetting(series.Days, settings, settingDate, s.policy.LargeWindowDays)

	for i := range settings {
		if settings[i].SettingDate.Equal(settingDate) {
			if err := s.hatch.SaveMaleRatio(ctx, settings[i].ID, ratio); err != nil {
				log.Warn().Err(err).Str("flock_id", flockID).Msg("persist male ratio failed")
			}
			break
		}
	}
	return ratio, large, nil
}

// UpsertLog stores a daily observation and invalidates the derived caches.
// Partition weighings are a rearing practice; on production-phase dates any
// submitted partitions are dropped before the write.
func (s *FlockService) UpsertLog(ctx context.Context, l *domain.DailyLog) error {
	f, err := s.flocks.GetFlock(ctx, l.FlockID)
	if err != nil {
		return err
	}

	if f.ProductionStart != nil && !l.Date.Before(*f.ProductionStart) {
		l.Partitions = nil
	}

	if err := s.logs.UpsertLog(ctx, l); err != nil {
		return err
	}

	if err := s.chartCache.Invalidate(ctx, l.FlockID); err != nil {
		log.Warn().Err(err).Str("flock_id", l.FlockID).Msg("chart cache invalidate failed")
	}
	if err := s.dashboards.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidate failed")
	}
	return nil
}

// EnrichAll runs the engine over every flock of the given status with a
// bounded fan-out. Used by the executive aggregation and the exporter.
func (s *FlockService) EnrichAll(ctx context.Context, status domain.FlockStatus) ([]domain.Flock, map[string]*engine.FlockSeries, error) {
	flocks, err := s.flocks.ListFlocks(ctx, status)
	if err != nil {
		return nil, nil, err
	}
	if len(flocks) == 0 {
		return flocks, map[string]*engine.FlockSeries{}, nil
	}

	ids := make([]string, len(flocks))
	for i := range flocks {
		ids[i] = flocks[i].ID
	}

	logsByFlock, err := s.logs.GetLogsMany(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	stds, err := s.standards.GetStandards(ctx)
	if err != nil {
		return nil, nil, err
	}

	seriesByFlock := make(map[string]*engine.FlockSeries, len(flocks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	results := make([]*engine.FlockSeries, len(flocks))

	for i := range flocks {
		i := i
		g.Go(func() error {
			f := &flocks[i]
			settings, err := s.hatch.GetSettings(gctx, f.ID)
			if err != nil {
				return err
			}
			results[i] = engine.EnrichFlock(f, logsByFlock[f.ID], settings, stds, s.policy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for i := range flocks {
		seriesByFlock[flocks[i].ID] = results[i]
	}
	return flocks, seriesByFlock, nil
}
