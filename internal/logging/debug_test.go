package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = previous })
	return &buf
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv(DebugEnvVar, "")
	assert.False(t, DebugEnabled(), "DebugEnabled() should return false when PLANNER_DEBUG is empty")

	t.Setenv(DebugEnvVar, "1")
	assert.True(t, DebugEnabled(), "DebugEnabled() should return true when PLANNER_DEBUG is set")

	t.Setenv(DebugEnvVar, "true")
	assert.True(t, DebugEnabled())
}

func TestDebugf(t *testing.T) {
	buf := captureGlobal(t)

	t.Setenv(DebugEnvVar, "")
	Debugf("This should not appear: %s", "hidden")
	assert.Empty(t, buf.String())

	t.Setenv(DebugEnvVar, "1")
	Debugf("This should appear: %s", "shown")
	assert.Contains(t, buf.String(), "This should appear: shown")
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestDebugln(t *testing.T) {
	buf := captureGlobal(t)

	t.Setenv(DebugEnvVar, "")
	Debugln("This should not appear")
	assert.Empty(t, buf.String())

	t.Setenv(DebugEnvVar, "1")
	Debugln("task", 42, "loaded")
	assert.Contains(t, buf.String(), "task 42 loaded")
}
