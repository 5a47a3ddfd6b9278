package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayamprima/flockcore/internal/domain"
	"github.com/jmoiron/sqlx"
)

type standardRepository struct {
	db *DB
}

func NewStandardRepository(db *DB) *standardRepository {
	return &standardRepository{db: db}
}

func (r *standardRepository) GetStandards(ctx context.Context) ([]domain.Standard, error) {
	query := `
		SELECT week, mortality_pct, body_weight_male, body_weight_female,
			egg_prod_pct, feed_male, feed_female, egg_weight, hatchability
		FROM standards
		ORDER BY week
	`

	var stds []domain.Standard
	if err := sqlx.SelectContext(ctx, r.db, &stds, query); err != nil {
		return nil, fmt.Errorf("failed to get standards: %w", err)
	}
	return stds, nil
}

func (r *standardRepository) GetGlobalStandard(ctx context.Context) (*domain.GlobalStandard, error) {
	query := `
		SELECT id, nominal_lay_week, candling_offset_days, hatching_offset_days
		FROM global_standards
		ORDER BY id
		LIMIT 1
	`

	var g domain.GlobalStandard
	if err := sqlx.GetContext(ctx, r.db, &g, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultGlobalStandard(), nil
		}
		return nil, fmt.Errorf("failed to get global standard: %w", err)
	}
	return &g, nil
}
