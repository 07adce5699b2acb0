// internal/input/keymap.go
package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/numfield/internal/logger"
)

// MaxPasteGraphemes bounds a bracketed paste payload. Anything longer is cut.
const MaxPasteGraphemes = 256

// Keymap maps specific key events to actions.
type Keymap map[tcell.Key]Action        // For special keys (Enter, Arrows, etc.)
type ModKeymap map[tcell.ModMask]Keymap // For keys combined with modifiers (Ctrl, Alt, Shift)

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap    Keymap
	modKeymap ModKeymap

	pasting bool
	paste   strings.Builder
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:    make(Keymap),
		modKeymap: make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

// loadDefaultBindings sets up the initial key mappings.
func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward // Often used for Backspace
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyTab] = ActionNextField
	p.keymap[tcell.KeyEnter] = ActionNextField
	p.keymap[tcell.KeyBacktab] = ActionPrevField
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyF5] = ActionReloadConfig

	// --- Modifier Keys ---
	// tcell reports Ctrl+letter as its own key with ModCtrl set
	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlA] = ActionSelectAll
	ctrlMap[tcell.KeyCtrlC] = ActionCopy
	ctrlMap[tcell.KeyCtrlX] = ActionCut
	ctrlMap[tcell.KeyCtrlV] = ActionPaste
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlR] = ActionReset
	ctrlMap[tcell.KeyCtrlE] = ActionExportJSON
	ctrlMap[tcell.KeyCtrlQ] = ActionQuit
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	// Ctrl+Shift+Z where the terminal reports it
	p.modKeymap[tcell.ModCtrl|tcell.ModShift] = Keymap{tcell.KeyCtrlZ: ActionRedo}
}

// Pasting reports whether a bracketed paste is being collected.
func (p *InputProcessor) Pasting() bool { return p.pasting }

// ProcessEvent takes a tcell event and returns the corresponding ActionEvent.
// Key events inside a bracketed paste are buffered and come back as one
// ActionPasteText when the paste ends.
func (p *InputProcessor) ProcessEvent(ev tcell.Event) ActionEvent {
	switch ev := ev.(type) {
	case *tcell.EventPaste:
		return p.processPaste(ev)
	case *tcell.EventKey:
		if p.pasting {
			if ev.Key() == tcell.KeyRune {
				p.paste.WriteRune(ev.Rune())
			}
			return ActionEvent{Action: ActionUnknown}
		}
		return p.processKey(ev)
	}
	return ActionEvent{Action: ActionUnknown}
}

func (p *InputProcessor) processPaste(ev *tcell.EventPaste) ActionEvent {
	if ev.Start() {
		p.pasting = true
		p.paste.Reset()
		return ActionEvent{Action: ActionUnknown}
	}
	if !p.pasting {
		return ActionEvent{Action: ActionUnknown}
	}
	p.pasting = false
	text := truncateGraphemes(p.paste.String(), MaxPasteGraphemes)
	p.paste.Reset()
	logger.DebugTagf("input", "InputProcessor: bracketed paste of %d bytes", len(text))
	return ActionEvent{Action: ActionPasteText, Text: text}
}

func (p *InputProcessor) processKey(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	// 1. Check Modifier + Key combinations
	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}
	// Some terminals report Ctrl+letter without the modifier bit
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 2. Check simple Key mappings; Shift only matters for movement
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action, Extend: mod == tcell.ModShift && isMovement(action)}
		}
	}

	// 3. Plain runes are insertions
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}

	// 4. No mapping found
	return ActionEvent{Action: ActionUnknown}
}

func isMovement(a Action) bool {
	return a == ActionMoveLeft || a == ActionMoveRight || a == ActionMoveHome || a == ActionMoveEnd
}

// truncateGraphemes keeps at most n grapheme clusters of s.
func truncateGraphemes(s string, n int) string {
	if uniseg.GraphemeClusterCount(s) <= n {
		return s
	}
	g := uniseg.NewGraphemes(s)
	end := 0
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[:end]
}
