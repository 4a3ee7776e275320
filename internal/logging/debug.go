package logging

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// DebugEnvVar enables debug output when set to any non-empty value.
const DebugEnvVar = "PLANNER_DEBUG"

// DebugEnabled returns true if debug mode is enabled via PLANNER_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// Debugf logs a formatted debug message through the global logger only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		log.Debug().Msgf(format, args...)
	}
}

// Debugln logs its arguments, space separated, only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		msg := fmt.Sprintln(args...)
		log.Debug().Msg(msg[:len(msg)-1])
	}
}
