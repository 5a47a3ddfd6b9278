package engine

import (
	"sort"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
)

// PenStock is a head count snapshot of the four pens of a house.
type PenStock struct {
	MaleProd   int `json:"male_prod"`
	FemaleProd int `json:"female_prod"`
	MaleHosp   int `json:"male_hosp"`
	FemaleHosp int `json:"female_hosp"`
}

// Male returns the male head count across both pens.
func (p PenStock) Male() int { return p.MaleProd + p.MaleHosp }

// Female returns the female head count across both pens.
func (p PenStock) Female() int { return p.FemaleProd + p.FemaleHosp }

// Total returns the live head count of the whole house.
func (p PenStock) Total() int { return p.Male() + p.Female() }

// DayStock pairs the start-of-day and end-of-day stocks for one logged date.
type DayStock struct {
	Date  time.Time `json:"date"`
	Start PenStock  `json:"start"`
	End   PenStock  `json:"end"`
}

// BaselineDiff reports the divergence between the production-start baselines
// captured on the flock and the counters implied by replaying its logs. The
// discrepancy is reported per sex and never auto-corrected.
type BaselineDiff struct {
	Date           time.Time `json:"date"`
	ExpectedMale   int       `json:"expected_male"`
	ActualMale     int       `json:"actual_male"`
	DiffMale       int       `json:"diff_male"`
	ExpectedFemale int       `json:"expected_female"`
	ActualFemale   int       `json:"actual_female"`
	DiffFemale     int       `json:"diff_female"`
}

// ReplayResult is the output of ReplayStocks. Days is parallel to the
// (sorted, deduplicated) logs the replay consumed; ResetIndex is the index of
// the first day at which the production baselines overwrote the counters, or
// -1 when the reset never fired.
type ReplayResult struct {
	Days       []DayStock     `json:"days"`
	Logs       []domain.DailyLog `json:"-"`
	ResetIndex int            `json:"reset_index"`
	Baseline   *BaselineDiff  `json:"baseline,omitempty"`
	Warnings   []Warning      `json:"warnings,omitempty"`
}

// ReplayStocks reconstructs per-day stocks for the four pens by replaying the
// flock's daily logs in date order against the intake counts and, once the
// production start date is reached, the production-start baselines.
//
// Logs are sorted defensively; a later log for the same date supersedes the
// earlier one; logs dated before intake are dropped. Gaps between dates carry
// the counters forward unchanged. Any pen that a day's losses would drive
// negative is clamped to zero with a warning.
func ReplayStocks(f *domain.Flock, logs []domain.DailyLog) ReplayResult {
	res := ReplayResult{ResetIndex: -1}

	ordered := make([]domain.DailyLog, len(logs))
	copy(ordered, logs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	kept := ordered[:0]
	for _, l := range ordered {
		if l.Date.Before(f.IntakeDate) {
			res.Warnings = append(res.Warnings, warnf(f.ID, l.Date, WarnLogBeforeIntake,
				"log dated %s precedes intake %s, dropped",
				l.Date.Format("2006-01-02"), f.IntakeDate.Format("2006-01-02")))
			continue
		}
		if n := len(kept); n > 0 && sameDay(kept[n-1].Date, l.Date) {
			res.Warnings = append(res.Warnings, warnf(f.ID, l.Date, WarnDuplicateDate,
				"duplicate log for %s, keeping the later record", l.Date.Format("2006-01-02")))
			kept[n-1] = l
			continue
		}
		kept = append(kept, l)
	}

	cur := PenStock{MaleProd: f.IntakeMale, FemaleProd: f.IntakeFemale}
	res.Days = make([]DayStock, 0, len(kept))
	res.Logs = kept

	for i := range kept {
		l := &kept[i]

		if res.ResetIndex < 0 && f.ProductionStart != nil && !l.Date.Before(*f.ProductionStart) {
			if f.HasBaselines() {
				res.ResetIndex = i
				res.Baseline = diffBaseline(f, cur, l.Date)
				cur = PenStock{
					MaleProd:   f.BaselineMaleProd,
					FemaleProd: f.BaselineFemaleProd,
					MaleHosp:   f.BaselineMaleHosp,
					FemaleHosp: f.BaselineFemaleHosp,
				}
				if res.Baseline.DiffMale != 0 || res.Baseline.DiffFemale != 0 {
					res.Warnings = append(res.Warnings, warnf(f.ID, l.Date, WarnBaselineDiff,
						"production baselines diverge from replay: male %+d, female %+d",
						res.Baseline.DiffMale, res.Baseline.DiffFemale))
				}
			}
		}

		day := DayStock{Date: l.Date, Start: cur}

		cur.MaleProd, res.Warnings = applyDelta(cur.MaleProd,
			-l.MortMaleProd-l.CullMaleProd-l.MovedMaleToHosp+l.MovedMaleToProd,
			f.ID, l.Date, "male production", res.Warnings)
		cur.FemaleProd, res.Warnings = applyDelta(cur.FemaleProd,
			-l.MortFemaleProd-l.CullFemaleProd-l.MovedFemaleToHosp+l.MovedFemaleToProd,
			f.ID, l.Date, "female production", res.Warnings)
		cur.MaleHosp, res.Warnings = applyDelta(cur.MaleHosp,
			-l.MortMaleHosp-l.CullMaleHosp+l.MovedMaleToHosp-l.MovedMaleToProd,
			f.ID, l.Date, "male hospital", res.Warnings)
		cur.FemaleHosp, res.Warnings = applyDelta(cur.FemaleHosp,
			-l.MortFemaleHosp-l.CullFemaleHosp+l.MovedFemaleToHosp-l.MovedFemaleToProd,
			f.ID, l.Date, "female hospital", res.Warnings)

		day.End = cur
		res.Days = append(res.Days, day)
	}

	return res
}

func applyDelta(stock, delta int, flockID string, date time.Time, pen string, warnings []Warning) (int, []Warning) {
	next := stock + delta
	if next < 0 {
		warnings = append(warnings, warnf(flockID, date, WarnNegativeStock,
			"%s pen would go to %d, clamped to zero", pen, next))
		next = 0
	}
	return next, warnings
}

func diffBaseline(f *domain.Flock, replayed PenStock, date time.Time) *BaselineDiff {
	actualMale := f.BaselineMaleProd + f.BaselineMaleHosp
	actualFemale := f.BaselineFemaleProd + f.BaselineFemaleHosp
	return &BaselineDiff{
		Date:           date,
		ExpectedMale:   replayed.Male(),
		ActualMale:     actualMale,
		DiffMale:       replayed.Male() - actualMale,
		ExpectedFemale: replayed.Female(),
		ActualFemale:   actualFemale,
		DiffFemale:     replayed.Female() - actualFemale,
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
