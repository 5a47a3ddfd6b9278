package domain

import "time"

// Hatchability is the hatchery record for one setting event of a flock.
// Candling and hatching dates default to setting +18/+21 days when the
// hatchery has not reported them yet.
type Hatchability struct {
	ID            int64      `json:"id" db:"id"`
	FlockID       string     `json:"flock_id" db:"flock_id"`
	SettingDate   time.Time  `json:"setting_date" db:"setting_date"`
	CandlingDate  *time.Time `json:"candling_date" db:"candling_date"`
	HatchingDate  *time.Time `json:"hatching_date" db:"hatching_date"`
	EggSet        int        `json:"egg_set" db:"egg_set"`
	ClearEggs     int        `json:"clear_eggs" db:"clear_eggs"`
	RottenEggs    int        `json:"rotten_eggs" db:"rotten_eggs"`
	HatchedChicks int        `json:"hatched_chicks" db:"hatched_chicks"`
	// MaleRatioPct is computed over the collection window feeding this
	// setting; nil when the computation had no usable days.
	MaleRatioPct *float64 `json:"male_ratio_pct" db:"male_ratio_pct"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EffectiveCandlingDate returns the reported candling date, or setting date
// plus the given offset when absent.
func (h *Hatchability) EffectiveCandlingDate(offsetDays int) time.Time {
	if h.CandlingDate != nil {
		return *h.CandlingDate
	}
	return h.SettingDate.AddDate(0, 0, offsetDays)
}

// EffectiveHatchingDate returns the reported hatching date, or setting date
// plus the given offset when absent.
func (h *Hatchability) EffectiveHatchingDate(offsetDays int) time.Time {
	if h.HatchingDate != nil {
		return *h.HatchingDate
	}
	return h.SettingDate.AddDate(0, 0, offsetDays)
}

// HatchableEggs returns set minus clear minus rotten, never negative.
func (h *Hatchability) HatchableEggs() int {
	n := h.EggSet - h.ClearEggs - h.RottenEggs
	if n < 0 {
		return 0
	}
	return n
}

// HatchabilityPct returns hatched/set as a percentage, 0 when nothing was set.
func (h *Hatchability) HatchabilityPct() float64 {
	if h.EggSet == 0 {
		return 0
	}
	return float64(h.HatchedChicks) / float64(h.EggSet) * 100
}

// FertilePct returns hatchable/set as a percentage, 0 when nothing was set.
func (h *Hatchability) FertilePct() float64 {
	if h.EggSet == 0 {
		return 0
	}
	return float64(h.HatchableEggs()) / float64(h.EggSet) * 100
}

// ClearPct returns clear/set as a percentage, 0 when nothing was set.
func (h *Hatchability) ClearPct() float64 {
	if h.EggSet == 0 {
		return 0
	}
	return float64(h.ClearEggs) / float64(h.EggSet) * 100
}

// RottenPct returns rotten/set as a percentage, 0 when nothing was set.
func (h *Hatchability) RottenPct() float64 {
	if h.EggSet == 0 {
		return 0
	}
	return float64(h.RottenEggs) / float64(h.EggSet) * 100
}
