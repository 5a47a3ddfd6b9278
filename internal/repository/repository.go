package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
)

// TxRunner runs a function inside a database transaction. Services that
// need cross-repository atomicity depend on this rather than on the concrete
// pool type.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// FlockRepository reads and mutates flock master data.
type FlockRepository interface {
	GetFlock(ctx context.Context, id string) (*domain.Flock, error)
	ListFlocks(ctx context.Context, status domain.FlockStatus) ([]domain.Flock, error)
	// SetProductionStart flips the phase to production and captures the
	// four baseline counts. The capture happens exactly once; a second call
	// for the same flock fails.
	SetProductionStart(ctx context.Context, id string, start time.Time, baseline [4]int) error
}

// LogRepository reads and writes daily logs, always date-ascending.
type LogRepository interface {
	GetLogs(ctx context.Context, flockID string) ([]domain.DailyLog, error)
	GetLogsMany(ctx context.Context, flockIDs []string) (map[string][]domain.DailyLog, error)
	// UpsertLog inserts or replaces the single log for (flock, date) and
	// replaces its partition weights wholesale in the same transaction.
	UpsertLog(ctx context.Context, l *domain.DailyLog) error
}

// StandardRepository serves the shared breed-standard table.
type StandardRepository interface {
	GetStandards(ctx context.Context) ([]domain.Standard, error)
	GetGlobalStandard(ctx context.Context) (*domain.GlobalStandard, error)
}

// HatchabilityRepository serves per-flock hatchery setting records.
type HatchabilityRepository interface {
	GetSettings(ctx context.Context, flockID string) ([]domain.Hatchability, error)
	// GetSettingsInRange returns setting events across all flocks whose
	// setting date falls in [from, to], date-ascending.
	GetSettingsInRange(ctx context.Context, from, to time.Time) ([]domain.Hatchability, error)
	SaveMaleRatio(ctx context.Context, settingID int64, ratio *float64) error
}

// InventoryRepository covers vaccine schedules, medications and the
// inventory transaction trail. Mutations that must be atomic take a *sql.Tx
// from the caller's transaction.
type InventoryRepository interface {
	GetVaccine(ctx context.Context, id int64) (*domain.Vaccine, error)
	ListVaccines(ctx context.Context, flockID string) ([]domain.Vaccine, error)
	GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error)
	MarkAdministered(ctx context.Context, tx *sql.Tx, vaccineID int64, date time.Time) error
	InsertTransaction(ctx context.Context, tx *sql.Tx, t *domain.InventoryTransaction) error
	InsertMedication(ctx context.Context, tx *sql.Tx, m *domain.Medication) error
}
