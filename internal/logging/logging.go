package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// logger fields
const (
	PACKAGE = "pkg"
	EVENT   = "event"
	ID      = "id"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// New builds the root logger. format "console" writes human-readable lines,
// anything else writes JSON. An unknown level falls back to info.
func New(level, format string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// ForPackage returns a child logger tagged with pkg=name.
func ForPackage(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str(PACKAGE, name).Logger()
}
