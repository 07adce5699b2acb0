package app

import (
	"github.com/bethropolis/numfield/internal/config"
	"github.com/bethropolis/numfield/internal/event"
	"github.com/bethropolis/numfield/internal/input"
	"github.com/bethropolis/numfield/internal/logger"
	"github.com/bethropolis/numfield/internal/session"
)

// handleAction applies a decoded action to the focused field.
func (a *App) handleAction(act input.ActionEvent) bool {
	fs := a.focused()
	switch act.Action {
	case input.ActionUnknown:
		return false
	case input.ActionQuit:
		if fs != nil {
			fs.ctrl.Blur()
		}
		a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
		a.quit = true
		return false
	case input.ActionReloadConfig:
		a.reloadConfig()
		return true
	case input.ActionExportJSON:
		a.exportJSON()
		return true
	}
	if fs == nil {
		return false
	}

	switch act.Action {
	case input.ActionNextField:
		a.moveFocus(1)
	case input.ActionPrevField:
		a.moveFocus(-1)
	case input.ActionMoveLeft:
		fs.field.MoveCursor(-1, act.Extend)
	case input.ActionMoveRight:
		fs.field.MoveCursor(1, act.Extend)
	case input.ActionMoveHome:
		fs.field.Home(act.Extend)
	case input.ActionMoveEnd:
		fs.field.End(act.Extend)
	case input.ActionSelectAll:
		fs.field.SelectAll()
	case input.ActionInsertRune:
		fs.ctrl.Apply(session.Insert(string(act.Rune)))
	case input.ActionDeleteCharBackward:
		fs.ctrl.Apply(session.DeleteBackward())
	case input.ActionDeleteCharForward:
		fs.ctrl.Apply(session.DeleteForward())
	case input.ActionCopy:
		a.copy(fs)
	case input.ActionCut:
		if fs.field.SelectedText() != "" {
			a.copy(fs)
			fs.ctrl.Apply(session.DeleteSelection())
		}
	case input.ActionPaste:
		fs.ctrl.Apply(session.Paste(a.clipboard.Paste()))
	case input.ActionPasteText:
		fs.ctrl.Apply(session.Paste(act.Text))
	case input.ActionUndo:
		fs.ctrl.Undo()
	case input.ActionRedo:
		fs.ctrl.Redo()
	case input.ActionReset:
		if fs.ctrl.SetValue(fs.cfg.Value) {
			a.statusBar.SetTemporaryMessage("%s reset", fs.cfg.Name)
		}
	default:
		logger.DebugTagf("app", "App: unhandled action %v", act.Action)
		return false
	}
	a.updateStatusBarContent()
	return true
}

// copy puts the selection, or the whole value when nothing is selected, on the clipboard.
func (a *App) copy(fs *fieldSession) {
	text := fs.field.SelectedText()
	if text == "" {
		text = fs.field.Text()
	}
	if err := a.clipboard.Copy(text); err != nil {
		logger.Warnf("App: %v", err)
		a.statusBar.SetErrorMessage("Clipboard unavailable; copied to internal register")
	}
}

// moveFocus blurs the focused field and focuses its neighbour.
func (a *App) moveFocus(delta int) {
	a.focused().ctrl.Blur()
	n := len(a.fields)
	a.focus = ((a.focus+delta)%n + n) % n
	fs := a.focused()
	fs.field.SelectAll()
	a.eventManager.Dispatch(event.TypeFocusChanged, event.FocusChangedData{Index: a.focus, Name: fs.cfg.Name})
}

// reloadConfig re-reads the config file and pushes new option bags to fields
// matched by name. Fields keep their text; a changed config resets their history.
func (a *App) reloadConfig() {
	if a.configPath == "" {
		a.statusBar.SetTemporaryMessage("No config file to reload")
		return
	}
	cfg, err := config.Load(a.configPath, nil)
	if err != nil {
		logger.Warnf("App: reload failed: %v", err)
		a.statusBar.SetErrorMessage("Reload failed: %v", err)
		return
	}

	byName := make(map[string]config.FieldConfig, len(cfg.Fields))
	for _, fc := range cfg.Fields {
		byName[fc.Name] = fc
	}
	defaults := cfg.Engine.Defaults.ToOptions()
	changed := 0
	for _, fs := range a.fields {
		fc, ok := byName[fs.cfg.Name]
		if !ok {
			continue
		}
		fs.cfg = fc
		if fs.ctrl.Configure(defaults, fc.ResolvedOptions()) {
			changed++
		}
	}
	logger.Infof("App: reloaded %s, %d field(s) changed", a.configPath, changed)
	a.statusBar.SetTemporaryMessage("Config reloaded, %d field(s) changed", changed)
	a.updateStatusBarContent()
}
