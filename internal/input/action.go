// internal/input/action.go
package input

// Action represents an operation requested by the user.
type Action int

// Define the set of possible actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action, also returned while a paste is buffered
	ActionQuit

	// --- Focus ---
	ActionNextField // Tab, Enter
	ActionPrevField // Shift+Tab

	// --- Cursor Movement ---
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome
	ActionMoveEnd
	ActionSelectAll

	// --- Text Manipulation ---
	ActionInsertRune         // Requires Rune argument
	ActionDeleteCharForward  // Delete key
	ActionDeleteCharBackward // Backspace key
	ActionCut
	ActionCopy
	ActionPaste     // Paste from the clipboard manager
	ActionPasteText // Bracketed paste finished, Text carries the payload

	// --- History ---
	ActionUndo
	ActionRedo
	ActionReset        // Restore the configured initial value
	ActionReloadConfig // Re-read the config file and apply field options
	ActionExportJSON   // Copy every field value as a JSON object
)

var actionNames = map[Action]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionNextField:          "next-field",
	ActionPrevField:          "prev-field",
	ActionMoveLeft:           "move-left",
	ActionMoveRight:          "move-right",
	ActionMoveHome:           "move-home",
	ActionMoveEnd:            "move-end",
	ActionSelectAll:          "select-all",
	ActionInsertRune:         "insert-rune",
	ActionDeleteCharForward:  "delete-forward",
	ActionDeleteCharBackward: "delete-backward",
	ActionCut:                "cut",
	ActionCopy:               "copy",
	ActionPaste:              "paste",
	ActionPasteText:          "paste-text",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionReset:              "reset",
	ActionReloadConfig:       "reload-config",
	ActionExportJSON:         "export-json",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune   // Used for ActionInsertRune
	Text   string // Used for ActionPasteText
	Extend bool   // Shift held: movement extends the selection
}
