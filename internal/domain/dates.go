package domain

import "time"

// now is the clock used for every "today" computation.
var now = time.Now

// Date returns the calendar date y-m-d as UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the time of day from t, keeping t's own calendar date.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the current local calendar date.
func Today() time.Time {
	return DateOf(now())
}

// TodayPlus returns the date the given number of days after today.
func TodayPlus(days int) time.Time {
	return Today().AddDate(0, 0, days)
}

// TodayMinus returns the date the given number of days before today.
func TodayMinus(days int) time.Time {
	return Today().AddDate(0, 0, -days)
}

// DateLayout is the storage and display form of a calendar date.
const DateLayout = "2006-01-02"

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// ParseDate reads a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
