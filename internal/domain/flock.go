package domain

import "time"

// FlockStatus marks whether a flock is still housed.
type FlockStatus string

const (
	FlockActive   FlockStatus = "active"
	FlockInactive FlockStatus = "inactive"
)

// FlockPhase is the lifecycle phase of a breeder flock. Production begins at
// first lay and is entered exactly once.
type FlockPhase string

const (
	PhaseRearing    FlockPhase = "rearing"
	PhaseProduction FlockPhase = "production"
)

// Flock represents one cohort of breeder birds occupying a house for its
// life. The four baseline counts are captured once, when the phase flips to
// production, and stay zero while the flock is rearing.
type Flock struct {
	ID              string      `json:"id" db:"id"`
	HouseID         int64       `json:"house_id" db:"house_id"`
	IntakeDate      time.Time   `json:"intake_date" db:"intake_date"`
	IntakeMale      int         `json:"intake_male" db:"intake_male"`
	IntakeFemale    int         `json:"intake_female" db:"intake_female"`
	DOAMale         int         `json:"doa_male" db:"doa_male"`
	DOAFemale       int         `json:"doa_female" db:"doa_female"`
	Status          FlockStatus `json:"status" db:"status"`
	Phase           FlockPhase  `json:"phase" db:"phase"`
	ProductionStart *time.Time  `json:"production_start" db:"production_start"`

	BaselineMaleProd   int `json:"baseline_male_prod" db:"baseline_male_prod"`
	BaselineFemaleProd int `json:"baseline_female_prod" db:"baseline_female_prod"`
	BaselineMaleHosp   int `json:"baseline_male_hosp" db:"baseline_male_hosp"`
	BaselineFemaleHosp int `json:"baseline_female_hosp" db:"baseline_female_hosp"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasBaselines reports whether any production-start baseline was captured.
func (f *Flock) HasBaselines() bool {
	return f.BaselineMaleProd != 0 || f.BaselineFemaleProd != 0 ||
		f.BaselineMaleHosp != 0 || f.BaselineFemaleHosp != 0
}

// AgeDays returns the age of the flock in whole days at the given date.
func (f *Flock) AgeDays(date time.Time) int {
	return int(truncateDay(date).Sub(truncateDay(f.IntakeDate)).Hours() / 24)
}

// AgeWeek returns the 1-based age week at the given date: intake day through
// day 6 are week 1.
func (f *Flock) AgeWeek(date time.Time) int {
	return f.AgeDays(date)/7 + 1
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
