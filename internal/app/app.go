// internal/app/app.go
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/numfield/internal/clipboard"
	"github.com/bethropolis/numfield/internal/config"
	"github.com/bethropolis/numfield/internal/event"
	"github.com/bethropolis/numfield/internal/input"
	"github.com/bethropolis/numfield/internal/logger"
	"github.com/bethropolis/numfield/internal/session"
	"github.com/bethropolis/numfield/internal/statusbar"
	"github.com/bethropolis/numfield/internal/theme"
	"github.com/bethropolis/numfield/internal/tui"
)

// fieldSession pairs a visible field with the controller guarding it.
type fieldSession struct {
	cfg   config.FieldConfig
	field *session.Field
	ctrl  *session.Controller
}

// App encapsulates the form and the main loop.
type App struct {
	tuiManager     *tui.TUI
	cfg            *config.Config
	configPath     string
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	inputProcessor *input.InputProcessor
	clipboard      *clipboard.Manager
	activeTheme    *theme.Theme

	fields []*fieldSession
	focus  int
	quit   bool
}

// NewApp creates the application on the real terminal. configPath is re-read
// when the user asks for a reload.
func NewApp(cfg *config.Config, configPath string) (*App, error) {
	th := loadTheme(cfg.UI.ThemeFile)
	tuiManager, err := tui.New(th)
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return newApp(cfg, configPath, tuiManager, th, clipboard.NewManager(cfg.UI.SystemClipboard)), nil
}

// NewAppWithScreen creates the application on an existing screen, typically a
// tcell simulation screen.
func NewAppWithScreen(cfg *config.Config, screen tcell.Screen, clip *clipboard.Manager) (*App, error) {
	th := loadTheme(cfg.UI.ThemeFile)
	tuiManager, err := tui.NewWithScreen(screen, th)
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	if clip == nil {
		clip = clipboard.NewManager(false)
	}
	return newApp(cfg, "", tuiManager, th, clip), nil
}

func newApp(cfg *config.Config, configPath string, tuiManager *tui.TUI, th *theme.Theme, clip *clipboard.Manager) *App {
	a := &App{
		tuiManager:     tuiManager,
		cfg:            cfg,
		configPath:     configPath,
		statusBar:      statusbar.New(statusbar.ConfigFromTheme(th)),
		eventManager:   event.NewManager(),
		inputProcessor: input.NewInputProcessor(),
		clipboard:      clip,
		activeTheme:    th,
	}

	// --- Subscribe Core Components (App level wiring) ---
	a.statusBar.Subscribe(a.eventManager, a.focusedName)
	a.eventManager.Subscribe(event.TypeValueChanged, a.handleValueChanged)
	a.eventManager.Subscribe(event.TypeFocusChanged, a.handleFocusChanged)

	defaults := cfg.Engine.Defaults.ToOptions()
	for _, fc := range cfg.Fields {
		field := session.NewField(fc.Value)
		ctrl := session.New(field,
			session.WithName(fc.Name),
			session.WithDefaults(defaults),
			session.WithOptions(fc.ResolvedOptions()),
			session.WithHistorySize(cfg.Engine.HistorySize),
			session.WithScheduler(tuiManager.Scheduler()),
			session.WithEventManager(a.eventManager),
		)
		a.fields = append(a.fields, &fieldSession{cfg: fc, field: field, ctrl: ctrl})
		logger.Debugf("App: field '%s' ready (%s)", fc.Name, describeConfig(ctrl.Config()))
	}
	a.updateStatusBarContent()
	return a
}

func loadTheme(path string) *theme.Theme {
	if path == "" {
		return theme.Dark
	}
	th, err := theme.LoadThemeFromFile(path)
	if err != nil {
		logger.Warnf("App: %v, using built-in theme", err)
		return theme.Dark
	}
	return th
}

// Run starts the main loop. It returns when the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Tab next field | Ctrl+Z undo | Ctrl+Y redo | F5 reload | ESC quit")
	a.draw()

	for !a.quit {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}
		if a.HandleEvent(ev) {
			a.draw()
		}
	}
	logger.Infof("Exiting application.")
	return nil
}

// HandleEvent processes one tcell event and reports whether a redraw is needed.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true
	case *tcell.EventInterrupt:
		// deferred session callbacks; a nil payload just wakes the loop
		tui.RunInterrupt(ev)
		return true
	case *tcell.EventKey, *tcell.EventPaste:
		return a.handleAction(a.inputProcessor.ProcessEvent(ev))
	}
	return false
}

// Quitting reports whether the main loop will stop after the current event.
func (a *App) Quitting() bool { return a.quit }

// Value returns the text of the named field.
func (a *App) Value(name string) (string, bool) {
	for _, fs := range a.fields {
		if fs.cfg.Name == name {
			return fs.ctrl.Value(), true
		}
	}
	return "", false
}

func (a *App) focused() *fieldSession {
	if len(a.fields) == 0 {
		return nil
	}
	return a.fields[a.focus]
}

func (a *App) focusedName() string {
	if fs := a.focused(); fs != nil {
		return fs.cfg.Name
	}
	return ""
}

// draw clears screen and redraws all components.
func (a *App) draw() {
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	views := make([]tui.FieldView, len(a.fields))
	for i, fs := range a.fields {
		views[i] = tui.FieldView{Label: fs.cfg.Name, Field: fs.field, Focused: i == a.focus}
	}

	a.tuiManager.Clear()
	tui.DrawForm(a.tuiManager, views, a.activeTheme, a.cfg.UI.StatusBarHeight)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}
