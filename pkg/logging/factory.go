package logging

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Factory provides component-aware loggers with consistent field naming.
type Factory struct {
	baseLogger *log.Logger
	levels     map[string]log.Level
}

// NewFactory creates a new logger factory around an existing base logger.
func NewFactory(baseLogger *log.Logger) *Factory {
	return &Factory{
		baseLogger: baseLogger,
		levels:     make(map[string]log.Level),
	}
}

// NewBaseLogger builds the process-wide root logger.
func NewBaseLogger(level string) *log.Logger {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	return log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Level:           parsed,
		TimeFormat:      time.Kitchen,
	})
}

// SetComponentLevel overrides the log level for a single component id.
func (lf *Factory) SetComponentLevel(id string, level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return
	}
	lf.levels[id] = parsed
}

// ForComponent creates a logger tagged with the component id.
func (lf *Factory) ForComponent(id string) *log.Logger {
	logger := lf.baseLogger.With("component", id)
	if level, ok := lf.levels[id]; ok {
		logger.SetLevel(level)
	}
	return logger
}

// ForService creates a logger for service components.
func (lf *Factory) ForService(id string) *log.Logger {
	return lf.ForComponent(id)
}

// ForHandler creates a logger for HTTP handler components.
func (lf *Factory) ForHandler(id string) *log.Logger {
	return lf.ForComponent(id)
}

// ForRepository creates a logger for storage components.
func (lf *Factory) ForRepository(id string) *log.Logger {
	return lf.ForComponent(id)
}
