package applog

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

const (
	// scopeFieldName defines the key for the "scope" field in structured logs.
	scopeFieldName = "scope"
)

// NewLogger creates a console zerolog.Logger writing to w at the given level.
// This instance is intended to be passed to other components, which narrow it
// down with WithScope.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	partsOrder := []string{
		zerolog.LevelFieldName,
		zerolog.TimestampFieldName,
		scopeFieldName,
		zerolog.MessageFieldName,
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
		PartsOrder: partsOrder,
		// Render the scope as [SCOPE] in front of the message.
		FormatPrepare: func(m map[string]any) error {
			if v, ok := m[scopeFieldName].(string); ok && v != "" {
				m[scopeFieldName] = fmt.Sprintf("[%s]", v)
			} else {
				m[scopeFieldName] = ""
			}
			return nil
		},
		FieldsExclude: []string{scopeFieldName},
	}

	return zerolog.New(consoleWriter).Level(level).With().Timestamp().Logger()
}

// ParseLevel is zerolog.ParseLevel, except that an empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid level string %q", s)
	}
	return l, nil
}

// WithScope returns a sub-logger tagged with a component name.
func WithScope(logger zerolog.Logger, scope string) zerolog.Logger {
	return logger.With().Str(scopeFieldName, scope).Logger()
}
