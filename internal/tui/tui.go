// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/numfield/internal/logger"
	"github.com/bethropolis/numfield/internal/session"
	"github.com/bethropolis/numfield/internal/theme"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
	closed bool
}

// New creates and initializes a TUI on the real terminal.
func New(th *theme.Theme) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, th)
}

// NewWithScreen initializes s (a simulation screen in tests) and wraps it.
func NewWithScreen(s tcell.Screen, th *theme.Theme) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	if th == nil {
		th = theme.Dark
	}
	s.SetStyle(th.GetStyle(theme.StyleDefault))
	s.EnablePaste()
	return &TUI{screen: s}, nil
}

// Close finalizes the tcell screen. Later calls do nothing.
func (t *TUI) Close() {
	if t.screen != nil && !t.closed {
		t.closed = true
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}

// Scheduler defers callbacks through the screen's event queue, so they run on
// the main loop after the events already queued.
func (t *TUI) Scheduler() session.Scheduler {
	return session.SchedulerFunc(func(fn func()) {
		if err := t.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
			logger.Warnf("TUI: event queue full, running deferred callback inline: %v", err)
			fn()
		}
	})
}

// Quit wakes the main loop with a nil-payload interrupt.
func (t *TUI) Quit() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// RunInterrupt executes the callback carried by an interrupt posted through
// Scheduler. It reports false for interrupts without one.
func RunInterrupt(ev *tcell.EventInterrupt) bool {
	fn, ok := ev.Data().(func())
	if !ok || fn == nil {
		return false
	}
	fn()
	return true
}
