package engine

import (
	"sort"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
)

// CollectionWindow is the contiguous span of days whose eggs feed a single
// setting event.
type CollectionWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Large bool      `json:"large"`
}

// Days returns the inclusive length of the window in days.
func (w CollectionWindow) Days() int {
	return int(dayKey(w.End).Sub(dayKey(w.Start)).Hours()/24) + 1
}

// Contains reports whether the date falls inside the window.
func (w CollectionWindow) Contains(d time.Time) bool {
	k := dayKey(d)
	return !k.Before(dayKey(w.Start)) && !k.After(dayKey(w.End))
}

// SettingWindow determines the collection window for a setting date.
// Hatchery trucks run on Tuesdays and Fridays, so those weekdays have fixed
// windows; any other setting date collects since the previous setting, or
// the trailing seven days when it is the flock's first.
func SettingWindow(settings []domain.Hatchability, settingDate time.Time, largeThreshold int) CollectionWindow {
	s := dayKey(settingDate)
	var w CollectionWindow

	switch s.Weekday() {
	case time.Tuesday:
		w = CollectionWindow{Start: s.AddDate(0, 0, -4), End: s.AddDate(0, 0, -1)}
	case time.Friday:
		w = CollectionWindow{Start: s.AddDate(0, 0, -3), End: s.AddDate(0, 0, -1)}
	default:
		if prev, ok := lastSettingBefore(settings, s); ok {
			w = CollectionWindow{Start: prev, End: s.AddDate(0, 0, -1)}
		} else {
			w = CollectionWindow{Start: s.AddDate(0, 0, -7), End: s.AddDate(0, 0, -1)}
		}
	}

	if largeThreshold > 0 && w.Days() > largeThreshold {
		w.Large = true
	}
	return w
}

// MaleRatioForSetting averages the daily male-ratio-of-stock over the
// collection window of a setting date. The mean covers only days where the
// female production pen is occupied; nil when no such day exists. The bool
// result is the large-window flag, surfaced even when the ratio is nil.
func MaleRatioForSetting(days []EnrichedDay, settings []domain.Hatchability, settingDate time.Time, largeThreshold int) (*float64, bool) {
	w := SettingWindow(settings, settingDate, largeThreshold)

	var sum float64
	var n int
	for i := range days {
		d := &days[i]
		if !w.Contains(d.Date) {
			continue
		}
		if d.Stock.Start.FemaleProd <= 0 {
			continue
		}
		sum += float64(d.Stock.Start.MaleProd) / float64(d.Stock.Start.FemaleProd) * 100
		n++
	}
	if n == 0 {
		return nil, w.Large
	}
	mean := sum / float64(n)
	return &mean, w.Large
}

func lastSettingBefore(settings []domain.Hatchability, s time.Time) (time.Time, bool) {
	dates := make([]time.Time, 0, len(settings))
	for i := range settings {
		d := dayKey(settings[i].SettingDate)
		if d.Before(s) {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return time.Time{}, false
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates[len(dates)-1], true
}
