package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// globalLogger discards everything until InitLogging runs.
var globalLogger = zerolog.Nop()

var once sync.Once

// Options controls where log lines go.
type Options struct {
	// FilePath adds a file sink when set.
	FilePath string
	// Level is a zerolog level name; unknown or empty values mean info.
	Level string
	// Console writes to stdout. The TUI turns it off so logs do not draw over the screen.
	Console bool
}

// InitLogging configures the global zerolog logger. Only the first call has an effect.
func InitLogging(opts Options) {
	once.Do(func() {
		var writers []io.Writer
		if opts.Console {
			writers = append(writers, os.Stdout)
		}

		if opts.FilePath != "" {
			file, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
			if err != nil {
				// The logger is not ready yet.
				os.Stderr.WriteString("Failed to open log file: " + err.Error() + "\n")
			} else {
				writers = append(writers, file)
			}
		}
		if len(writers) == 0 {
			writers = append(writers, io.Discard)
		}

		multi := zerolog.MultiLevelWriter(writers...)
		logger := zerolog.New(multi).With().Timestamp().Logger()
		logger = logger.Level(ParseLevel(opts.Level))
		globalLogger = logger
		log.Logger = logger
	})
}

// ParseLevel maps a level name onto a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// WithLogger returns a new context containing the logger with additional fields.
func WithLogger(ctx context.Context, fields map[string]interface{}) context.Context {
	l := getLogger(ctx).With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// getLogger extracts the zerolog logger from the context, falling back to the global logger.
func getLogger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	// zerolog.Ctx returns a disabled logger if none is in context
	if l.GetLevel() == zerolog.Disabled {
		return &globalLogger
	}
	return l
}

// DebugLog logs a debug level message.
func DebugLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Debug().Msgf(msg, args...)
}

// InfoLog logs an info level message.
func InfoLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Info().Msgf(msg, args...)
}

// WarnLog logs a warning level message.
func WarnLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Warn().Msgf(msg, args...)
}

// ErrorLog logs an error level message. A lone error argument is attached with Err.
func ErrorLog(ctx context.Context, msg string, args ...interface{}) {
	l := getLogger(ctx)
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			l.Error().Err(err).Msg(msg)
			return
		}
	}
	l.Error().Msgf(msg, args...)
}
