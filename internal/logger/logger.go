package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"videos-api/internal/config"
)

// Init configures the global zerolog logger.
// An unknown level falls back to info.
func Init(cfg config.LogConfig, pretty bool) zerolog.Logger {
	return InitWithWriter(cfg, pretty, os.Stdout)
}

// InitWithWriter is Init with an explicit destination
func InitWithWriter(cfg config.LogConfig, pretty bool, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	// zerolog.Ctx falls back to this logger when a context carries none
	zerolog.DefaultContextLogger = &log.Logger

	return log.Logger
}
