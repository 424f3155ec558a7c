package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Options struct {
	Level  string
	Format string
}

// New builds the process logger. An unparsable level falls back to warn so a
// typo in config never silences errors.
func New(out io.Writer, opts Options) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}

	var writer io.Writer
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatConsole:
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case FormatJSON:
		writer = out
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format %q", opts.Format)
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger(), nil
}
