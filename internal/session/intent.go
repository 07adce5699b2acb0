package session

// IntentKind identifies the edit a host wants to perform.
type IntentKind uint8

const (
	IntentInsert IntentKind = iota
	IntentDeleteBackward
	IntentDeleteForward
	IntentDeleteSelection
	IntentPaste
)

func (k IntentKind) String() string {
	switch k {
	case IntentInsert:
		return "insert"
	case IntentDeleteBackward:
		return "deleteBackward"
	case IntentDeleteForward:
		return "deleteForward"
	case IntentDeleteSelection:
		return "deleteSelection"
	case IntentPaste:
		return "paste"
	}
	return "unknown"
}

// Intent is an abstract edit, independent of the input mechanism that produced it.
// The selection it applies to is read from the Control.
type Intent struct {
	Kind IntentKind
	Text string // payload for insert and paste
	// Force relaxes digit-cap rejections into truncation.
	Force bool
}

// Insert types text at the selection.
func Insert(text string) Intent { return Intent{Kind: IntentInsert, Text: text} }

// Paste pastes text at the selection.
func Paste(text string) Intent { return Intent{Kind: IntentPaste, Text: text} }

// DeleteBackward is backspace.
func DeleteBackward() Intent { return Intent{Kind: IntentDeleteBackward} }

// DeleteForward is the delete key.
func DeleteForward() Intent { return Intent{Kind: IntentDeleteForward} }

// DeleteSelection is cut.
func DeleteSelection() Intent { return Intent{Kind: IntentDeleteSelection} }
