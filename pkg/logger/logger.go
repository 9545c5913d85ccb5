package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"team-planner-backend/pkg/config"
)

// New builds the process logger: human-readable console output in
// development, JSON in production.
func New(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	if cfg.IsDevelopment() {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}
