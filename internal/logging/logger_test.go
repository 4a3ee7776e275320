package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"task-planner/internal/config"
)

func TestNew_JSONLevels(t *testing.T) {
	t.Setenv(DebugEnvVar, "")

	tests := []struct {
		name      string
		cfg       config.ApplicationConfig
		wantDebug bool
	}{
		{
			name:      "info level drops debug",
			cfg:       config.ApplicationConfig{LogLevel: "info"},
			wantDebug: false,
		},
		{
			name:      "debug level keeps debug",
			cfg:       config.ApplicationConfig{LogLevel: "debug"},
			wantDebug: true,
		},
		{
			name:      "verbose lowers level to debug",
			cfg:       config.ApplicationConfig{LogLevel: "warn", Verbose: true},
			wantDebug: true,
		},
		{
			name:      "invalid level falls back to info",
			cfg:       config.ApplicationConfig{LogLevel: "chatty"},
			wantDebug: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.cfg, &buf)
			logger.Debug().Msg("debug line")
			logger.Info().Msg("info line")

			assert.Contains(t, buf.String(), "info line")
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
		})
	}
}

func TestNew_DebugEnvOverridesLevel(t *testing.T) {
	t.Setenv(DebugEnvVar, "1")

	var buf bytes.Buffer
	logger := New(config.ApplicationConfig{LogLevel: "error"}, &buf)
	logger.Debug().Msg("forced")

	assert.Contains(t, buf.String(), "forced")
}

func TestNew_ConsoleFormat(t *testing.T) {
	t.Setenv(DebugEnvVar, "")

	var buf bytes.Buffer
	logger := New(config.ApplicationConfig{LogLevel: "info", LogFormat: "console", Environment: "testing"}, &buf)
	logger.Info().Msg("hello console")

	out := buf.String()
	assert.Contains(t, out, "hello console")
	assert.NotContains(t, out, `"message"`)
}
