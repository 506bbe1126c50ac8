package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger: human-readable console output in dev,
// JSON everywhere else.
func New(env, service string) zerolog.Logger {
	var logger zerolog.Logger
	if env == "dev" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.With().Timestamp().Str("service", service).Logger()
}
