package engine

import (
	"fmt"
	"time"
)

// Warning codes attached to engine outputs. These are recovered conditions:
// the computation continues and the caller decides whether to surface them.
const (
	WarnLogBeforeIntake = "log_before_intake"
	WarnDuplicateDate   = "duplicate_date"
	WarnNegativeStock   = "negative_stock_clamped"
	WarnNegativeValue   = "negative_value_clamped"
	WarnBaselineDiff    = "baseline_discrepancy"
	WarnUnknownMetric   = "unknown_metric_key"
)

// Warning is a structured, non-fatal finding produced during enrichment.
type Warning struct {
	FlockID string    `json:"flock_id"`
	Date    time.Time `json:"date"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

func warnf(flockID string, date time.Time, code, format string, args ...interface{}) Warning {
	return Warning{
		FlockID: flockID,
		Date:    date,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
