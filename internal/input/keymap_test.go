package input

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent_Keys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: '7'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModShift), ActionEvent{Action: ActionInsertRune, Rune: '+'}},
		{"alt rune ignored", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCharBackward}},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCharBackward}},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCharForward}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionEvent{Action: ActionMoveLeft}},
		{"shift left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), ActionEvent{Action: ActionMoveLeft, Extend: true}},
		{"shift end", tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModShift), ActionEvent{Action: ActionMoveEnd, Extend: true}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ActionEvent{Action: ActionNextField}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionEvent{Action: ActionNextField}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), ActionEvent{Action: ActionPrevField}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionEvent{Action: ActionQuit}},
		{"ctrl+z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionEvent{Action: ActionUndo}},
		{"ctrl+y", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ActionEvent{Action: ActionRedo}},
		{"ctrl+shift+z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl|tcell.ModShift), ActionEvent{Action: ActionRedo}},
		{"ctrl+a", tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl), ActionEvent{Action: ActionSelectAll}},
		{"ctrl+x", tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl), ActionEvent{Action: ActionCut}},
		{"ctrl+c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), ActionEvent{Action: ActionCopy}},
		{"ctrl+v", tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModCtrl), ActionEvent{Action: ActionPaste}},
		{"ctrl+q", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), ActionEvent{Action: ActionQuit}},
		{"ctrl without bit", tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModNone), ActionEvent{Action: ActionPaste}},
		{"ctrl+r", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), ActionEvent{Action: ActionReset}},
		{"ctrl+e", tcell.NewEventKey(tcell.KeyCtrlE, 0, tcell.ModCtrl), ActionEvent{Action: ActionExportJSON}},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ActionEvent{Action: ActionReloadConfig}},
		{"unbound", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), ActionEvent{Action: ActionUnknown}},
	}
	p := NewInputProcessor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}

func TestProcessEvent_BracketedPaste(t *testing.T) {
	p := NewInputProcessor()

	assert.Equal(t, ActionUnknown, p.ProcessEvent(tcell.NewEventPaste(true)).Action)
	assert.True(t, p.Pasting())
	for _, r := range "12.5" {
		assert.Equal(t, ActionUnknown, p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)).Action)
	}
	// line breaks inside a paste are dropped
	p.ProcessEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '0', tcell.ModNone))

	got := p.ProcessEvent(tcell.NewEventPaste(false))
	assert.Equal(t, ActionEvent{Action: ActionPasteText, Text: "12.50"}, got)
	assert.False(t, p.Pasting())

	assert.Equal(t, ActionInsertRune, p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone)).Action)
	assert.Equal(t, ActionUnknown, p.ProcessEvent(tcell.NewEventPaste(false)).Action, "stray paste end")
}

func TestProcessEvent_PasteIsBounded(t *testing.T) {
	p := NewInputProcessor()
	p.ProcessEvent(tcell.NewEventPaste(true))
	for i := 0; i < MaxPasteGraphemes+10; i++ {
		p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '9', tcell.ModNone))
	}
	got := p.ProcessEvent(tcell.NewEventPaste(false))
	assert.Equal(t, strings.Repeat("9", MaxPasteGraphemes), got.Text)
}

func TestTruncateGraphemes(t *testing.T) {
	assert.Equal(t, "12", truncateGraphemes("12", 5))
	assert.Equal(t, "é", truncateGraphemes("éx", 1))
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "undo", ActionUndo.String())
	assert.Equal(t, "unknown", Action(999).String())
}
