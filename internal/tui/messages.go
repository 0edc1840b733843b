package tui

import "indiamap/internal/app"

// DatasetLoadedMsg is sent once the feature store has loaded.
type DatasetLoadedMsg struct{}

// DatasetFailedMsg carries the error from a failed dataset load.
type DatasetFailedMsg struct{ Err error }

// SessionChangedMsg wraps a session event so changes made by another sink
// (the web mirror) repaint the terminal.
type SessionChangedMsg struct{ Event app.Event }
