package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
	"github.com/ayamprima/flockcore/internal/engine"
	"github.com/ayamprima/flockcore/internal/repository"
	"github.com/rs/zerolog/log"
)

// InventoryService records vaccine administrations and medications and
// emits the matching inventory usage events.
type InventoryService struct {
	tx        repository.TxRunner
	inventory repository.InventoryRepository
	flocks    repository.FlockRepository
	logs      repository.LogRepository
}

func NewInventoryService(
	tx repository.TxRunner,
	inventory repository.InventoryRepository,
	flocks repository.FlockRepository,
	logs repository.LogRepository,
) *InventoryService {
	return &InventoryService{tx: tx, inventory: inventory, flocks: flocks, logs: logs}
}

// AdministrationResult reports what a vaccine administration deducted.
type AdministrationResult struct {
	VaccineID int64     `json:"vaccine_id"`
	Date      time.Time `json:"date"`
	Stock     int       `json:"stock"`
	Doses     int       `json:"doses"`
}

// AdministerVaccine marks the vaccine as given on the date, sizes the dose
// from the flock's stock on that date, and writes the usage event in the
// same transaction. Only the first administration deducts; re-submits fail
// inside the transaction and deduct nothing.
func (s *InventoryService) AdministerVaccine(ctx context.Context, flockID string, vaccineID int64, date time.Time) (*AdministrationResult, error) {
	v, err := s.inventory.GetVaccine(ctx, vaccineID)
	if err != nil {
		return nil, err
	}
	if v.FlockID != flockID {
		return nil, fmt.Errorf("vaccine %d does not belong to flock %s", vaccineID, flockID)
	}

	f, err := s.flocks.GetFlock(ctx, flockID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logs.GetLogs(ctx, flockID)
	if err != nil {
		return nil, err
	}

	history := engine.BuildStockHistory(f, logs)
	stock := history.At(date)

	result := &AdministrationResult{
		VaccineID: vaccineID,
		Date:      date,
		Stock:     stock,
	}

	if v.ItemID == nil {
		// Schedule-only vaccine with no linked stock item: record the
		// date, nothing to deduct.
		err := s.tx.WithTx(ctx, func(tx *sql.Tx) error {
			return s.inventory.MarkAdministered(ctx, tx, vaccineID, date)
		})
		return result, err
	}

	item, err := s.inventory.GetItem(ctx, *v.ItemID)
	if err != nil {
		return nil, err
	}

	doses := engine.DoseCount(stock, item.DosesPerUnit)
	result.Doses = doses

	err = s.tx.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.inventory.MarkAdministered(ctx, tx, vaccineID, date); err != nil {
			return err
		}
		return s.inventory.InsertTransaction(ctx, tx, &domain.InventoryTransaction{
			ItemID:   item.ID,
			Type:     domain.InventoryUsage,
			Quantity: float64(doses),
			Date:     date,
			Note:     fmt.Sprintf("vaccine %s for flock %s (%d birds)", v.Name, flockID, stock),
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("flock_id", flockID).
		Int64("vaccine_id", vaccineID).
		Int("doses", doses).
		Msg("vaccine administered")
	return result, nil
}

// RecordMedication stores an ad-hoc treatment and its usage event.
func (s *InventoryService) RecordMedication(ctx context.Context, m *domain.Medication) error {
	if _, err := s.flocks.GetFlock(ctx, m.FlockID); err != nil {
		return err
	}

	item, err := s.inventory.GetItem(ctx, m.ItemID)
	if err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.inventory.InsertMedication(ctx, tx, m); err != nil {
			return err
		}
		return s.inventory.InsertTransaction(ctx, tx, &domain.InventoryTransaction{
			ItemID:   item.ID,
			Type:     domain.InventoryUsage,
			Quantity: m.Quantity,
			Date:     m.Date,
			Note:     fmt.Sprintf("medication for flock %s: %s", m.FlockID, m.Note),
		})
	})
}

// ListVaccines returns the vaccination schedule for one flock.
func (s *InventoryService) ListVaccines(ctx context.Context, flockID string) ([]domain.Vaccine, error) {
	return s.inventory.ListVaccines(ctx, flockID)
}
