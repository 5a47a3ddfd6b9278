package domain

import "time"

// InventoryTransactionType labels a stock movement on an inventory item.
// The engine only ever emits usages; receipts come from purchasing.
type InventoryTransactionType string

const (
	InventoryUsage   InventoryTransactionType = "Usage"
	InventoryReceipt InventoryTransactionType = "Receipt"
)

// InventoryItem is a vaccine or medication held in the farm store. The
// engine never mutates item stock directly; it emits transactions.
type InventoryItem struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Unit         string  `json:"unit" db:"unit"`
	DosesPerUnit int     `json:"doses_per_unit" db:"doses_per_unit"`
	Stock        float64 `json:"stock" db:"stock"`
}

// InventoryTransaction is the side-effect record the engine emits when a
// vaccine administration or medication is recorded.
type InventoryTransaction struct {
	ID       int64                    `json:"id" db:"id"`
	ItemID   int64                    `json:"item_id" db:"item_id"`
	Type     InventoryTransactionType `json:"type" db:"tx_type"`
	Quantity float64                  `json:"quantity" db:"quantity"`
	Date     time.Time                `json:"date" db:"tx_date"`
	Note     string                   `json:"note" db:"note"`
}

// Vaccine is a scheduled vaccination event for a flock. Setting the actual
// administration date for the first time triggers the inventory deduction.
type Vaccine struct {
	ID               int64      `json:"id" db:"id"`
	FlockID          string     `json:"flock_id" db:"flock_id"`
	Name             string     `json:"name" db:"name"`
	ScheduledDate    time.Time  `json:"scheduled_date" db:"scheduled_date"`
	AdministeredDate *time.Time `json:"administered_date" db:"administered_date"`
	ItemID           *int64     `json:"item_id" db:"item_id"`
}

// Medication is an ad-hoc treatment applied to a flock.
type Medication struct {
	ID       int64     `json:"id" db:"id"`
	FlockID  string    `json:"flock_id" db:"flock_id"`
	Date     time.Time `json:"date" db:"med_date"`
	ItemID   int64     `json:"item_id" db:"item_id"`
	Quantity float64   `json:"quantity" db:"quantity"`
	Note     string    `json:"note" db:"note"`
}
