// Package app provides process-wide application services: logging and
// user-facing message formatting.
package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum level to output ("debug", "info", "warn", "error").
	Level string
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
	// Format selects the formatter: "text" (default), "json" or "logfmt".
	Format string
	// Timestamps enables timestamps on each line.
	Timestamps bool
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  "info",
		Output: os.Stderr,
		Prefix: "addonkit",
	}
}

// ParseLogLevel parses a level name. Unknown names yield info.
func ParseLogLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "warning":
		return log.WarnLevel
	case "critical":
		return log.FatalLevel
	}
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func parseFormatter(s string) log.Formatter {
	switch strings.ToLower(s) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg LoggerConfig) *log.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return log.NewWithOptions(cfg.Output, log.Options{
		Prefix:          cfg.Prefix,
		Level:           ParseLogLevel(cfg.Level),
		Formatter:       parseFormatter(cfg.Format),
		ReportTimestamp: cfg.Timestamps,
	})
}

// NullLogger returns a logger that discards all output.
func NullLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

var (
	appLogger     *log.Logger
	appLoggerMu   sync.Mutex
	appLoggerOnce sync.Once
)

// GetLogger returns the application logger.
// Creates a default logger on first call if not set.
func GetLogger() *log.Logger {
	appLoggerOnce.Do(func() {
		appLoggerMu.Lock()
		defer appLoggerMu.Unlock()
		if appLogger == nil {
			appLogger = NewLogger(DefaultLoggerConfig())
		}
	})
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	return appLogger
}

// SetLogger sets the application-wide logger.
// Should be called early in application startup.
func SetLogger(l *log.Logger) {
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	appLogger = l
}

// Component returns a child of l tagged with a component name.
func Component(l *log.Logger, name string) *log.Logger {
	if l == nil {
		l = GetLogger()
	}
	return l.WithPrefix(name)
}

// MsgType classifies a user-facing message.
type MsgType string

// Message types.
const (
	MsgInfo     MsgType = "Info"
	MsgCaution  MsgType = "Caution"
	MsgError    MsgType = "Error"
	MsgCritical MsgType = "Critical"
)

// FormatMsg builds a user-facing message of the form "Sender: Type: msg".
func FormatMsg(sender string, typ MsgType, msg string) string {
	return fmt.Sprintf("%s: %s: %s", sender, typ, msg)
}

// Level returns the log level messages of this type are written at.
func (t MsgType) Level() log.Level {
	switch t {
	case MsgCaution:
		return log.WarnLevel
	case MsgError:
		return log.ErrorLevel
	case MsgCritical:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Report formats a message and writes it to l at the type's level.
func Report(l *log.Logger, sender string, typ MsgType, msg string) string {
	text := FormatMsg(sender, typ, msg)
	if l != nil {
		l.Log(typ.Level(), text)
	}
	return text
}
