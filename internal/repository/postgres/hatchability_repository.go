package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
	"github.com/jmoiron/sqlx"
)

type hatchabilityRepository struct {
	db *DB
}

func NewHatchabilityRepository(db *DB) *hatchabilityRepository {
	return &hatchabilityRepository{db: db}
}

func (r *hatchabilityRepository) GetSettings(ctx context.Context, flockID string) ([]domain.Hatchability, error) {
	query := `
		SELECT id, flock_id, setting_date, candling_date, hatching_date,
			egg_set, clear_eggs, rotten_eggs, hatched_chicks, male_ratio_pct,
			created_at, updated_at
		FROM hatchability
		WHERE flock_id = $1
		ORDER BY setting_date
	`

	var settings []domain.Hatchability
	if err := sqlx.SelectContext(ctx, r.db, &settings, query, flockID); err != nil {
		return nil, fmt.Errorf("failed to get hatchery settings: %w", err)
	}
	return settings, nil
}

func (r *hatchabilityRepository) GetSettingsInRange(ctx context.Context, from, to time.Time) ([]domain.Hatchability, error) {
	query := `
		SELECT id, flock_id, setting_date, candling_date, hatching_date,
			egg_set, clear_eggs, rotten_eggs, hatched_chicks, male_ratio_pct,
			created_at, updated_at
		FROM hatchability
		WHERE setting_date >= $1 AND setting_date <= $2
		ORDER BY setting_date, flock_id
	`

	var settings []domain.Hatchability
	if err := sqlx.SelectContext(ctx, r.db, &settings, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to get hatchery settings in range: %w", err)
	}
	return settings, nil
}

func (r *hatchabilityRepository) SaveMaleRatio(ctx context.Context, settingID int64, ratio *float64) error {
	query := `UPDATE hatchability SET male_ratio_pct = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, settingID, ratio); err != nil {
		return fmt.Errorf("failed to save male ratio: %w", err)
	}
	return nil
}
