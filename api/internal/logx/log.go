package logx

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a logger writing to w (stderr when nil).
// format "console" gives human-readable output; anything else is JSON.
func New(level, format string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// levelAliases covers names zerolog itself does not know.
var levelAliases = map[string]zerolog.Level{
	"all":     zerolog.TraceLevel,
	"warning": zerolog.WarnLevel,
	"none":    zerolog.Disabled,
	"off":     zerolog.Disabled,
}

// ParseLevel maps a config value to a zerolog level, case-insensitively.
// Empty or unrecognised values mean info.
func ParseLevel(level string) zerolog.Level {
	s := strings.ToLower(strings.TrimSpace(level))
	if l, err := zerolog.ParseLevel(s); err == nil && l != zerolog.NoLevel {
		return l
	}
	if l, ok := levelAliases[s]; ok {
		return l
	}
	return zerolog.InfoLevel
}
