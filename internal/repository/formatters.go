package repository

import (
	"time"

	"task-planner/internal/domain"
)

// FormatDateForDB formats a calendar date as YYYY-MM-DD for storage
func FormatDateForDB(d time.Time) string {
	return domain.FormatDate(d)
}

// FormatOptionalDateForDB formats an optional date, returning nil when it is unset
func FormatOptionalDateForDB(d time.Time, ok bool) interface{} {
	if !ok {
		return nil
	}
	return FormatDateForDB(d)
}

// ParseDateFromDB parses a date read back from the database. Engines that
// render dates as timestamps are accepted and truncated to the date.
func ParseDateFromDB(s string) (time.Time, error) {
	d, err := domain.ParseDate(s)
	if err == nil {
		return d, nil
	}
	if t, terr := time.Parse(time.RFC3339, s); terr == nil {
		return domain.DateOf(t), nil
	}
	return time.Time{}, err
}

// FormatBoolForDB stores flags as integers, which every supported engine accepts
func FormatBoolForDB(b bool) int {
	if b {
		return 1
	}
	return 0
}
