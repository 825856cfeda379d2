package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New construye el zerolog.Logger del servicio.
// En development escribe consola legible; en el resto, JSON por stdout.
func New(appEnv, level string) zerolog.Logger {
	lvl := parseLevel(level)

	l := zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Str("app", "pet-adoption").
		Logger()

	if strings.EqualFold(strings.TrimSpace(appEnv), "development") {
		l = l.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return l
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
