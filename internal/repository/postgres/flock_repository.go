package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
	"github.com/jmoiron/sqlx"
)

type flockRepository struct {
	db *DB
}

func NewFlockRepository(db *DB) *flockRepository {
	return &flockRepository{db: db}
}

const flockColumns = `
	id, house_id, intake_date, intake_male, intake_female,
	doa_male, doa_female, status, phase, production_start,
	baseline_male_prod, baseline_female_prod,
	baseline_male_hosp, baseline_female_hosp,
	created_at, updated_at
`

func (r *flockRepository) GetFlock(ctx context.Context, id string) (*domain.Flock, error) {
	query := `SELECT ` + flockColumns + ` FROM flocks WHERE id = $1`

	var f domain.Flock
	if err := sqlx.GetContext(ctx, r.db, &f, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("flock %s not found", id)
		}
		return nil, fmt.Errorf("failed to get flock: %w", err)
	}
	return &f, nil
}

func (r *flockRepository) ListFlocks(ctx context.Context, status domain.FlockStatus) ([]domain.Flock, error) {
	query := `SELECT ` + flockColumns + ` FROM flocks
		WHERE ($1 = '' OR status = $1)
		ORDER BY intake_date, id`

	var flocks []domain.Flock
	if err := sqlx.SelectContext(ctx, r.db, &flocks, query, string(status)); err != nil {
		return nil, fmt.Errorf("failed to list flocks: %w", err)
	}
	return flocks, nil
}

// SetProductionStart flips the phase and captures the baselines. The WHERE
// guard makes the capture idempotent: once production_start is set the
// statement matches no rows.
func (r *flockRepository) SetProductionStart(ctx context.Context, id string, start time.Time, baseline [4]int) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE flocks SET
				phase = 'production',
				production_start = $2,
				baseline_male_prod = $3,
				baseline_female_prod = $4,
				baseline_male_hosp = $5,
				baseline_female_hosp = $6,
				updated_at = NOW()
			WHERE id = $1 AND production_start IS NULL
		`
		res, err := tx.ExecContext(ctx, query, id, start,
			baseline[0], baseline[1], baseline[2], baseline[3])
		if err != nil {
			return fmt.Errorf("failed to set production start: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("flock %s already in production", id)
		}
		return nil
	})
}
