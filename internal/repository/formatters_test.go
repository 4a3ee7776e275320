package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/domain"
)

func TestFormatDateForDB(t *testing.T) {
	assert.Equal(t, "2025-11-05", FormatDateForDB(time.Date(2025, 11, 5, 18, 30, 0, 0, time.UTC)))
}

func TestFormatOptionalDateForDB(t *testing.T) {
	assert.Nil(t, FormatOptionalDateForDB(time.Time{}, false))
	assert.Equal(t, "2025-11-05", FormatOptionalDateForDB(domain.Date(2025, 11, 5), true))
}

func TestParseDateFromDB(t *testing.T) {
	d, err := ParseDateFromDB("2025-11-05")
	require.NoError(t, err)
	assert.Equal(t, domain.Date(2025, 11, 5), d)

	d, err = ParseDateFromDB("2025-11-05T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, domain.Date(2025, 11, 5), d)

	_, err = ParseDateFromDB("yesterday")
	assert.Error(t, err)
}

func TestFormatBoolForDB(t *testing.T) {
	assert.Equal(t, 1, FormatBoolForDB(true))
	assert.Equal(t, 0, FormatBoolForDB(false))
}
