package logging

import (
	"log"
	"strings"
)

// Logger is injected into the engine wherever a recoverable condition
// has to be reported.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// Level is a logging threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a case-insensitive level name, defaulting to info.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// StdLogger writes leveled messages through the standard log package.
type StdLogger struct {
	level  Level
	logger *log.Logger
}

// New creates a leveled logger. A nil logger uses log.Default().
func New(level string, logger *log.Logger) *StdLogger {
	if logger == nil {
		logger = log.Default()
	}
	return &StdLogger{level: ParseLevel(level), logger: logger}
}

func (l *StdLogger) enabled(level Level) bool { return level >= l.level }

func (l *StdLogger) Debugf(format string, v ...any) {
	if l.enabled(LevelDebug) {
		l.logger.Printf("[DEBUG] "+format, v...)
	}
}

func (l *StdLogger) Infof(format string, v ...any) {
	if l.enabled(LevelInfo) {
		l.logger.Printf("[INFO] "+format, v...)
	}
}

func (l *StdLogger) Warnf(format string, v ...any) {
	if l.enabled(LevelWarn) {
		l.logger.Printf("[WARN] "+format, v...)
	}
}

func (l *StdLogger) Errorf(format string, v ...any) {
	if l.enabled(LevelError) {
		l.logger.Printf("[ERROR] "+format, v...)
	}
}

// NoOp discards everything.
type NoOp struct{}

func (NoOp) Debugf(format string, v ...any) {}
func (NoOp) Infof(format string, v ...any)  {}
func (NoOp) Warnf(format string, v ...any)  {}
func (NoOp) Errorf(format string, v ...any) {}

// Discard returns a logger that drops all messages.
func Discard() Logger { return NoOp{} }
