package session

import "github.com/bethropolis/numfield/internal/numeric"

// Control is the visible input the engine keeps in sync.
type Control interface {
	// Text returns what the control currently displays.
	Text() string
	// Selection returns the current cursor or selection.
	Selection() numeric.TextRange
	// SetState replaces the displayed text and selection.
	SetState(numeric.TextState)
}

// Field is an in-memory Control: a single-line text with a caret and a
// selection anchor. Hosts render it and move its caret; edits go through a
// Controller.
type Field struct {
	text   string
	caret  int
	anchor int
}

// NewField creates a field showing text with the caret at its end.
func NewField(text string) *Field {
	return &Field{text: text, caret: len(text), anchor: len(text)}
}

func (f *Field) Text() string { return f.text }

func (f *Field) Selection() numeric.TextRange {
	return numeric.NewRange(f.anchor, f.caret)
}

// Caret is the position the cursor is drawn at.
func (f *Field) Caret() int { return f.caret }

func (f *Field) SetState(s numeric.TextState) {
	f.text = s.Text
	r := s.Range.Clamp(len(s.Text))
	f.anchor, f.caret = r.Start, r.End
}

// SetSelection places the anchor and the caret. Offsets are clamped.
func (f *Field) SetSelection(anchor, caret int) {
	f.anchor = clamp(anchor, len(f.text))
	f.caret = clamp(caret, len(f.text))
}

// MoveCursor moves the caret by delta. With extend the anchor stays, growing
// the selection; without it a selection collapses onto its edge first.
func (f *Field) MoveCursor(delta int, extend bool) {
	if !extend && f.anchor != f.caret {
		sel := f.Selection()
		edge := sel.Start
		if delta > 0 {
			edge = sel.End
		}
		f.anchor, f.caret = edge, edge
		return
	}
	f.caret = clamp(f.caret+delta, len(f.text))
	if !extend {
		f.anchor = f.caret
	}
}

// Home moves the caret to the start.
func (f *Field) Home(extend bool) {
	f.caret = 0
	if !extend {
		f.anchor = 0
	}
}

// End moves the caret to the end.
func (f *Field) End(extend bool) {
	f.caret = len(f.text)
	if !extend {
		f.anchor = f.caret
	}
}

// SelectAll selects the whole text.
func (f *Field) SelectAll() {
	f.anchor, f.caret = 0, len(f.text)
}

// SelectedText returns the text under the selection.
func (f *Field) SelectedText() string {
	sel := f.Selection()
	return f.text[sel.Start:sel.End]
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}
