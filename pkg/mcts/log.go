package mcts

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-level structured logger, grounded on
// christopherWilliams98-risk-agent/searcher/mcts.go's use of
// github.com/rs/zerolog/log for warnings (e.g. "node's state hash %d does
// not match segment's state hash %d"). Disabled by default so importing
// this package produces no output unless a caller opts in.
var Logger zerolog.Logger = zerolog.New(os.Stderr).
	With().Timestamp().Logger().
	Level(zerolog.Disabled)

// SetLogger installs a caller-provided logger, e.g. to route diagnostics
// through an application's own zerolog instance.
func SetLogger(l zerolog.Logger) {
	Logger = l
}

// SetLogLevel adjusts the package logger's level without replacing it.
func SetLogLevel(level zerolog.Level) {
	Logger = Logger.Level(level)
}
