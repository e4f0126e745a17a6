package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger used by the symbolic engines. It discards
// everything until SetGlobalLogger is called.
var Logger zerolog.Logger

func init() {
	SetGlobalLogger(zerolog.Nop())
}

func SetGlobalLogger(logger zerolog.Logger) {
	Logger = logger
	zerolog.DefaultContextLogger = &Logger
}

// Component returns a child logger tagged with the engine that emits it.
func Component(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}

func Trace() *zerolog.Event { return Logger.Trace() }

func Debug() *zerolog.Event { return Logger.Debug() }

func Ctx(ctx context.Context) *zerolog.Logger { return zerolog.Ctx(ctx) }
