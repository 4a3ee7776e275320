package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/domain"
)

func TestParseDateArg(t *testing.T) {
	d, err := parseDateArg("2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, domain.Date(2025, 6, 30), d)

	d, err = parseDateArg("today")
	require.NoError(t, err)
	assert.Equal(t, domain.Today(), d)

	d, err = parseDateArg("+14")
	require.NoError(t, err)
	assert.Equal(t, domain.TodayPlus(14), d)

	d, err = parseDateArg("-7")
	require.NoError(t, err)
	assert.Equal(t, domain.TodayMinus(7), d)

	_, err = parseDateArg("+x")
	assert.Error(t, err)
	_, err = parseDateArg("30/06/2025")
	assert.Error(t, err)
}

func TestPriorityLabel(t *testing.T) {
	task := domain.NewTask()
	assert.Equal(t, "-", priorityLabel(task))

	task.SetPriorityGroupLetter('C')
	assert.Equal(t, "C", priorityLabel(task))

	task.SetPriority(4)
	assert.Equal(t, "C4", priorityLabel(task))
}
