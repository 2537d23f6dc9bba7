// Package telemetry builds the zerolog.Logger used throughout the
// server, choosing between a console writer and a rotating file sink
// based on config.Config.
package telemetry

import (
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/curatorsigma/blazing-agi/config"
)

// New builds a logger configured per cfg. When cfg.LogFile is empty,
// output goes to a human-readable console writer on stdout; otherwise
// it goes to a rotating file via lumberjack, with JSON records (file
// output is meant for machine consumption, console for a developer's
// terminal).
func New(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var base zerolog.Logger
	if cfg.LogFile == "" {
		console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02T15:04:05"}
		base = zerolog.New(console)
	} else {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		base = zerolog.New(rotator)
	}
	return base.With().Timestamp().Str("component", "blazing-agi").Logger()
}
