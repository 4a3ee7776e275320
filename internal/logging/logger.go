package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"task-planner/internal/config"
)

// New builds the application logger from the application config section.
// PLANNER_DEBUG overrides the configured level with debug.
func New(cfg config.ApplicationConfig, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	if cfg.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	if DebugEnabled() {
		level = zerolog.DebugLevel
	}

	var w io.Writer = out
	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "task-planner").
		Str("environment", cfg.Environment).
		Logger()
}

// SetGlobal installs logger as the zerolog global used by Debugf and Debugln.
func SetGlobal(logger zerolog.Logger) {
	log.Logger = logger
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
