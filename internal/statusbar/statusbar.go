// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/numfield/internal/config"
	"github.com/bethropolis/numfield/internal/event"
	"github.com/bethropolis/numfield/internal/theme"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style // Default background/foreground
	StyleMessage   tcell.Style // Style for temporary messages
	StyleError     tcell.Style // Style for rejected edits
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return ConfigFromTheme(theme.Dark)
}

// ConfigFromTheme takes the status bar styles from th.
func ConfigFromTheme(th *theme.Theme) Config {
	return Config{
		StyleDefault:   th.GetStyle(theme.StyleStatusBar),
		StyleMessage:   th.GetStyle(theme.StyleStatusBarMessage),
		StyleError:     th.GetStyle(theme.StyleStatusBarError),
		MessageTimeout: config.MessageTimeout,
	}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex // Protect access to text fields

	fieldName string
	value     string
	mode      string

	// Temporary message state
	tempMessage     string
	tempMessageTime time.Time
	tempIsError     bool

	now func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetFieldInfo updates the focused field shown in the status bar.
func (sb *StatusBar) SetFieldInfo(name, value, mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.fieldName = name
	sb.value = value
	sb.mode = mode
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.setMessage(false, format, args...)
}

// SetErrorMessage displays a temporary message in the error style.
func (sb *StatusBar) SetErrorMessage(format string, args ...interface{}) {
	sb.setMessage(true, format, args...)
}

func (sb *StatusBar) setMessage(isErr bool, format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
	sb.tempIsError = isErr
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Subscribe shows engine events for the focused field as temporary messages.
// focused returns the name of the field that has focus.
func (sb *StatusBar) Subscribe(m *event.Manager, focused func() string) {
	m.Subscribe(event.TypeEditRejected, func(e event.Event) bool {
		if d, ok := e.Data.(event.EditRejectedData); ok && d.Name == focused() {
			if d.Text != "" {
				sb.SetErrorMessage("%s: %q not accepted", d.Name, d.Text)
			} else {
				sb.SetErrorMessage("%s: %s not accepted", d.Name, d.Intent)
			}
		}
		return false
	})
	m.Subscribe(event.TypeHistoryBoundary, func(e event.Event) bool {
		if d, ok := e.Data.(event.HistoryBoundaryData); ok && d.Name == focused() {
			if d.Redo {
				sb.SetTemporaryMessage("Already at newest change")
			} else {
				sb.SetTemporaryMessage("Already at oldest change")
			}
		}
		return false
	})
	m.Subscribe(event.TypeConfigChanged, func(e event.Event) bool {
		if d, ok := e.Data.(event.ConfigChangedData); ok {
			sb.SetTemporaryMessage("%s: options changed, history cleared", d.Name)
		}
		return false
	})
}

// Text returns the line Draw would render and whether it is a temporary message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	text, _, temp := sb.current()
	return text, temp
}

// current expires old messages and picks the text and style. Caller holds mu.
func (sb *StatusBar) current() (string, tcell.Style, bool) {
	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if active {
		if sb.tempIsError {
			return sb.tempMessage, sb.config.StyleError, true
		}
		return sb.tempMessage, sb.config.StyleMessage, true
	}
	return sb.defaultText(), sb.config.StyleDefault, false
}

func (sb *StatusBar) defaultText() string {
	name := sb.fieldName
	if name == "" {
		name = "[No Field]"
	}
	value := sb.value
	if value == "" {
		value = "(empty)"
	}
	if sb.mode != "" {
		return fmt.Sprintf("%s = %s -- %s", name, value, sb.mode)
	}
	return fmt.Sprintf("%s = %s", name, value)
}

// Draw renders the status bar onto the last screen line using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	text, style, _ := sb.current()
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		if runes := gr.Runes(); len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
