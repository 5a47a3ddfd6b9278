package domain

// Standard holds the breed standard values for one nominal age week. The
// table is process-wide and shared read-only by all flocks.
type Standard struct {
	Week             int     `json:"week" db:"week"`
	MortalityPct     float64 `json:"mortality_pct" db:"mortality_pct"`
	BodyWeightMale   float64 `json:"body_weight_male" db:"body_weight_male"`
	BodyWeightFemale float64 `json:"body_weight_female" db:"body_weight_female"`
	EggProdPct       float64 `json:"egg_prod_pct" db:"egg_prod_pct"`
	FeedMale         float64 `json:"feed_male" db:"feed_male"`
	FeedFemale       float64 `json:"feed_female" db:"feed_female"`
	EggWeight        float64 `json:"egg_weight" db:"egg_weight"`
	Hatchability     float64 `json:"hatchability" db:"hatchability"`
}

// GlobalStandard carries the process-wide defaults that are not per-week:
// the nominal lay week used when the standards table is empty and the
// hatchery milestone offsets.
type GlobalStandard struct {
	ID                 int64 `json:"id" db:"id"`
	NominalLayWeek     int   `json:"nominal_lay_week" db:"nominal_lay_week"`
	CandlingOffsetDays int   `json:"candling_offset_days" db:"candling_offset_days"`
	HatchingOffsetDays int   `json:"hatching_offset_days" db:"hatching_offset_days"`
}

// DefaultGlobalStandard returns the values used when no row is configured.
func DefaultGlobalStandard() *GlobalStandard {
	return &GlobalStandard{
		NominalLayWeek:     24,
		CandlingOffsetDays: 18,
		HatchingOffsetDays: 21,
	}
}
