package app

import (
	"github.com/bethropolis/numfield/internal/event"
	"github.com/bethropolis/numfield/internal/logger"
)

// handleValueChanged logs committed values and refreshes the status line.
func (a *App) handleValueChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ValueChangedData); ok {
		logger.DebugTagf("app", "App: %s = %q", data.Name, data.Text)
		if data.Name == a.focusedName() {
			a.updateStatusBarContent()
		}
	}
	return false // Not consumed
}

func (a *App) handleFocusChanged(e event.Event) bool {
	if data, ok := e.Data.(event.FocusChangedData); ok {
		logger.DebugTagf("app", "App: focus -> %s (%d)", data.Name, data.Index)
	}
	a.statusBar.ResetTemporaryMessage()
	a.updateStatusBarContent()
	return false
}
