// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Session events
	TypeValueChanged    // A value-changing edit was committed (non-terminal shapes suppressed)
	TypeEditRejected    // An edit intent was swallowed by validation
	TypeHistoryBoundary // Undo or redo was requested with nothing left in that direction
	TypeConfigChanged   // Resolved options changed and history was reset

	// Host events
	TypeFocusChanged // The focused field changed
	TypeAppReady     // Fired when the application is fully initialized
	TypeAppQuit      // Fired just before application termination begins
)

func (t Type) String() string {
	switch t {
	case TypeValueChanged:
		return "ValueChanged"
	case TypeEditRejected:
		return "EditRejected"
	case TypeHistoryBoundary:
		return "HistoryBoundary"
	case TypeConfigChanged:
		return "ConfigChanged"
	case TypeFocusChanged:
		return "FocusChanged"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// ValueChangedData carries the committed text of a session.
type ValueChangedData struct {
	Session string // session ID
	Name    string // field name, may be empty
	Text    string
}

// EditRejectedData describes a swallowed edit.
type EditRejectedData struct {
	Session string
	Name    string
	Intent  string
	Text    string // payload of the rejected intent, empty for deletions
}

// HistoryBoundaryData tells which direction ran out.
type HistoryBoundaryData struct {
	Session string
	Name    string
	Redo    bool
}

// ConfigChangedData is dispatched after a session re-resolved its options.
type ConfigChangedData struct {
	Session string
	Name    string
}

// FocusChangedData names the newly focused field.
type FocusChangedData struct {
	Index int
	Name  string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
