// Package clipboard is the copy and paste source for fields. It talks to the
// system clipboard when enabled and always keeps an internal register.
package clipboard

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/numfield/internal/logger"
)

// System is the platform clipboard.
type System interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type atottoSystem struct{}

func (atottoSystem) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (atottoSystem) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Manager handles clipboard operations
type Manager struct {
	system   System
	register string
}

// NewManager creates a manager. With useSystem false only the internal register is used.
func NewManager(useSystem bool) *Manager {
	m := &Manager{}
	if useSystem && !clipboard.Unsupported {
		m.system = atottoSystem{}
	}
	return m
}

// NewManagerWith creates a manager backed by sys. A nil sys means internal only.
func NewManagerWith(sys System) *Manager {
	return &Manager{system: sys}
}

// UsesSystem reports whether a system clipboard is attached.
func (m *Manager) UsesSystem() bool { return m.system != nil }

// Copy stores text in the register and, if attached, in the system clipboard.
// A system failure leaves the register updated and is returned.
func (m *Manager) Copy(text string) error {
	if text == "" {
		return nil
	}
	m.register = text
	logger.DebugTagf("clipboard", "ClipboardManager: Copied %d bytes", len(text))
	if m.system == nil {
		return nil
	}
	if err := m.system.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard write: %w", err)
	}
	return nil
}

// Paste returns the text to insert: the system clipboard when it is readable and
// not empty, the internal register otherwise. Line breaks and other control
// characters are removed since a field holds one line.
func (m *Manager) Paste() string {
	text := m.register
	if m.system != nil {
		s, err := m.system.ReadAll()
		switch {
		case err != nil:
			logger.DebugTagf("clipboard", "ClipboardManager: system read failed, using register: %v", err)
		case s != "":
			text = s
		}
	}
	return Sanitize(text)
}

// Sanitize trims surrounding space and drops control characters.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
