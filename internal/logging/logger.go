package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // package-level logger
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
	defaultLoggerMu   sync.RWMutex
)

func getDefaultLogger() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New("info")
	})
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// New creates a new logger writing to stderr with the specified level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	setLoggerLevel(logger, level)
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return NewWithWriter(io.Discard, "error")
}

func setLoggerLevel(logger *log.Logger, level string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	return getDefaultLogger()
}

// SetDefault sets the package-level default logger.
func SetDefault(logger *log.Logger) {
	getDefaultLogger()
	defaultLoggerMu.Lock()
	defaultLogger = logger
	defaultLoggerMu.Unlock()
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	setLoggerLevel(getDefaultLogger(), level)
}
