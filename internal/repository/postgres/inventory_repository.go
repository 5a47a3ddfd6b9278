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

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetVaccine(ctx context.Context, id int64) (*domain.Vaccine, error) {
	query := `
		SELECT id, flock_id, name, scheduled_date, administered_date, item_id
		FROM vaccines WHERE id = $1
	`

	var v domain.Vaccine
	if err := sqlx.GetContext(ctx, r.db, &v, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vaccine %d not found", id)
		}
		return nil, fmt.Errorf("failed to get vaccine: %w", err)
	}
	return &v, nil
}

func (r *inventoryRepository) ListVaccines(ctx context.Context, flockID string) ([]domain.Vaccine, error) {
	query := `
		SELECT id, flock_id, name, scheduled_date, administered_date, item_id
		FROM vaccines WHERE flock_id = $1 ORDER BY scheduled_date
	`

	var vaccines []domain.Vaccine
	if err := sqlx.SelectContext(ctx, r.db, &vaccines, query, flockID); err != nil {
		return nil, fmt.Errorf("failed to list vaccines: %w", err)
	}
	return vaccines, nil
}

func (r *inventoryRepository) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	query := `SELECT id, name, unit, doses_per_unit, stock FROM inventory_items WHERE id = $1`

	var item domain.InventoryItem
	if err := sqlx.GetContext(ctx, r.db, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("inventory item %d not found", id)
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

// MarkAdministered sets the administration date only when it is not already
// set; the guard is what keeps re-submits from deducting stock twice.
func (r *inventoryRepository) MarkAdministered(ctx context.Context, tx *sql.Tx, vaccineID int64, date time.Time) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE vaccines SET administered_date = $2
		WHERE id = $1 AND administered_date IS NULL
	`, vaccineID, date)
	if err != nil {
		return fmt.Errorf("failed to mark vaccine administered: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("vaccine %d already administered", vaccineID)
	}
	return nil
}

func (r *inventoryRepository) InsertTransaction(ctx context.Context, tx *sql.Tx, t *domain.InventoryTransaction) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO inventory_transactions (item_id, tx_type, quantity, tx_date, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, t.ItemID, t.Type, t.Quantity, t.Date, t.Note).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to insert inventory transaction: %w", err)
	}
	return nil
}

func (r *inventoryRepository) InsertMedication(ctx context.Context, tx *sql.Tx, m *domain.Medication) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO medications (flock_id, med_date, item_id, quantity, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, m.FlockID, m.Date, m.ItemID, m.Quantity, m.Note).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("failed to insert medication: %w", err)
	}
	return nil
}
