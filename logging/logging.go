package libpack_logging

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gookit/goutil/envutil"
	"github.com/rs/zerolog"
)

// Logger wraps zerolog with a mutable minimum level so callers can
// silence client diagnostics without touching global zerolog state.
// Error-and-above events go to stderr, the rest to stdout.
type Logger struct {
	stdout   zerolog.Logger
	stderr   zerolog.Logger
	nop      zerolog.Logger
	mu       sync.RWMutex
	minLevel zerolog.Level
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.MessageFieldName = "msg"
	zerolog.TimestampFieldName = "ts"
	zerolog.LevelFieldName = "level"
}

// New creates a logger with the minimum level taken from LOG_LEVEL.
func New() *Logger {
	zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
	return &Logger{
		stdout:   zl,
		stderr:   zl.Output(os.Stderr),
		nop:      zerolog.Nop(),
		minLevel: GetLogLevel(envutil.Getenv("LOG_LEVEL", "info")),
	}
}

// GetLogLevel maps a level name to a zerolog level, defaulting to info.
func GetLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "critical", "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetMinLogLevel changes the minimum level below which events are dropped.
func (l *Logger) SetMinLogLevel(level zerolog.Level) {
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

func (l *Logger) pick(level zerolog.Level) zerolog.Logger {
	l.mu.RLock()
	min := l.minLevel
	l.mu.RUnlock()
	if level < min {
		return l.nop
	}
	if level >= zerolog.ErrorLevel {
		return l.stderr
	}
	return l.stdout
}

func (l *Logger) log(level zerolog.Level, message string, fields []map[string]interface{}) {
	picked := l.pick(level)
	event := picked.WithLevel(level)
	if len(fields) > 0 {
		for key, value := range fields[0] {
			switch v := value.(type) {
			case string:
				event = event.Str(key, v)
			case int:
				event = event.Int(key, v)
			case bool:
				event = event.Bool(key, v)
			case error:
				event = event.AnErr(key, v)
			default:
				event = event.Interface(key, v)
			}
		}
	}
	event.Msg(message)
}

func (l *Logger) Debug(message string, fields ...map[string]interface{}) {
	l.log(zerolog.DebugLevel, message, fields)
}

func (l *Logger) Info(message string, fields ...map[string]interface{}) {
	l.log(zerolog.InfoLevel, message, fields)
}

func (l *Logger) Warn(message string, fields ...map[string]interface{}) {
	l.log(zerolog.WarnLevel, message, fields)
}

// Warning is an alias kept for callers used to the longer name.
func (l *Logger) Warning(message string, fields ...map[string]interface{}) {
	l.Warn(message, fields...)
}

func (l *Logger) Error(message string, fields ...map[string]interface{}) {
	l.log(zerolog.ErrorLevel, message, fields)
}
