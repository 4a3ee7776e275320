package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"task-planner/internal/domain"
)

func TestParams_StageAndRead(t *testing.T) {
	var p Params
	due := domain.Date(2025, 3, 1)

	p.Stage(int64(7), "Write the quarterly report", due, domain.TaskStatusOnHold)

	assert.Equal(t, 4, p.Len())
	assert.Equal(t, int64(7), Arg[int64](&p, 0))
	assert.Equal(t, "Write the quarterly report", Arg[string](&p, 1))
	assert.Equal(t, due, Arg[time.Time](&p, 2))
	assert.Equal(t, domain.TaskStatusOnHold, Arg[domain.TaskStatus](&p, 3))
}

func TestParams_ResetAllowsNextOperation(t *testing.T) {
	var p Params
	p.Stage("first")
	p.Reset()

	assert.Equal(t, 0, p.Len())
	assert.NotPanics(t, func() { p.Stage("second") })
	assert.Equal(t, "second", Arg[string](&p, 0))
}

func TestParams_StageTwicePanics(t *testing.T) {
	var p Params
	p.Stage(int64(1))

	assert.PanicsWithError(t,
		"parameter 1: parameters already staged for this operation",
		func() { p.Stage(int64(2)) },
	)
}

func TestArg_Mismatch(t *testing.T) {
	var p Params
	p.Stage(7)

	defer func() {
		staging, ok := recover().(*StagingError)
		if assert.True(t, ok) {
			assert.Equal(t, &StagingError{Position: 0, Want: "int64", Got: "int"}, staging)
		}
	}()
	Arg[int64](&p, 0)
}

func TestArg_OutOfRange(t *testing.T) {
	var p Params
	p.Stage("only")

	defer func() {
		r := recover()
		err, ok := r.(*StagingError)
		if assert.True(t, ok) {
			assert.Equal(t, 2, err.Position)
			assert.Equal(t, "parameter 2: want string, staged nothing", err.Error())
		}
	}()
	Arg[string](&p, 2)
}
