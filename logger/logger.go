package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger.
// level: "debug", "info", "warn", "error" (default "info").
// format: "console" for human readable output, anything else for JSON.
func Setup(level, format, serviceName string) zerolog.Logger {
	return SetupWriter(os.Stdout, level, format, serviceName)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level, format, serviceName string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(w).With().Timestamp()
	if serviceName != "" {
		ctx = ctx.Str("service", serviceName)
	}
	l := ctx.Logger()
	log.Logger = l
	return l
}
