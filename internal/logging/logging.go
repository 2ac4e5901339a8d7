// Package logging builds the zerolog loggers used by the commands.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a human readable logger writing to w at the given level.
func New(w io.Writer, level string, color bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: time.TimeOnly,
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
