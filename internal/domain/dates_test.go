package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday(t *testing.T) {
	fixClock(t, time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC))

	assert.Equal(t, Date(2025, 12, 31), Today())
	assert.Equal(t, Date(2026, 1, 7), TodayPlus(7))
	assert.Equal(t, Date(2025, 12, 24), TodayMinus(7))
}

func TestDateOf(t *testing.T) {
	assert.True(t, DateOf(time.Time{}).IsZero())
	assert.Equal(t, Date(2025, 2, 1), DateOf(time.Date(2025, 2, 1, 13, 4, 5, 0, time.UTC)))
}

func TestFormatAndParseDate(t *testing.T) {
	d := Date(2025, 7, 4)

	assert.Equal(t, "2025-07-04", FormatDate(d))

	parsed, err := ParseDate("2025-07-04")
	require.NoError(t, err)
	assert.Equal(t, d, parsed)

	_, err = ParseDate("07/04/2025")
	assert.Error(t, err)
}
