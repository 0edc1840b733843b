// Package logging provides the rotating file loggers used by indiamap.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Manager owns every log file written by indiamap.
type Manager struct {
	// System is the log for startup, config, dataset loading and the web
	// mirror.
	System *Logger

	// Interaction traces pointer events and theme toggles at debug level.
	Interaction *Logger

	logDir string
}

// NewManager creates <home>/logs and opens the loggers inside it:
//
//	<home>/logs/system.log
//	<home>/logs/interaction.log
func NewManager(home, level string, rotationMB int, toConsole bool) (*Manager, error) {
	logDir := filepath.Join(home, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: mkdir %s: %w", logDir, err)
	}

	sysLog, err := NewLogger(filepath.Join(logDir, "system.log"), "system", level, rotationMB, toConsole)
	if err != nil {
		return nil, fmt.Errorf("logging: system logger: %w", err)
	}

	// Pointer traces are noisy; they never go to the console.
	ixLog, err := NewLogger(filepath.Join(logDir, "interaction.log"), "interaction", level, rotationMB, false)
	if err != nil {
		sysLog.Close()
		return nil, fmt.Errorf("logging: interaction logger: %w", err)
	}

	return &Manager{
		System:      sysLog,
		Interaction: ixLog,
		logDir:      logDir,
	}, nil
}

// Dir returns the directory holding the log files.
func (m *Manager) Dir() string { return m.logDir }

// Close closes every logger owned by the manager.
func (m *Manager) Close() error {
	var errs []error
	for _, l := range []*Logger{m.System, m.Interaction} {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
