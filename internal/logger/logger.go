package logger

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// New builds the root logger for a single showcase run. Output goes to
// stderr so the error stream carries warnings while stdout stays clean.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stderr).
		With().
		Timestamp().
		Caller().
		Str("run_id", uuid.New().String()).
		Logger()

	logger = logger.Level(zerolog.InfoLevel)

	return logger
}

func SetLevel(level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stderr).
		With().
		Timestamp().
		Caller().
		Str("run_id", uuid.New().String()).
		Logger()

	logger = logger.Level(level)

	return logger
}

var Module = fx.Provide(New)
