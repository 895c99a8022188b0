package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger is a JSON slog logger tagged with the name of the component
// that owns it.
type Logger struct {
	*slog.Logger
}

type Config struct {
	Level slog.Level
	// AddSource records the file and line of each log call.
	AddSource bool
	// Output defaults to os.Stderr so stdout stays free for results.
	Output io.Writer
}

func DefaultConfig() *Config {
	return &Config{
		Level: slog.LevelInfo,
	}
}

// New returns a logger whose entries all carry component.
func New(component string, cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(out, opts)).With(slog.String("component", component)),
	}
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(slog.Any(key, value))}
}

// ErrorWithCause logs msg at error level together with what went wrong
// and what the user can do about it.
func (l *Logger) ErrorWithCause(msg string, err error, cause string, action string) {
	l.Error(msg,
		slog.Any("error", err),
		slog.String("cause", cause),
		slog.String("action", action),
	)
}

// ParseLevel maps debug, info, warn and error to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", level)
	}
}
