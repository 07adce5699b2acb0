package numeric

import "fmt"

// TextRange is a cursor (Start == End) or a selection over a text buffer.
type TextRange struct {
	Start int
	End   int
}

// Caret returns a collapsed range at pos.
func Caret(pos int) TextRange {
	return TextRange{Start: pos, End: pos}
}

// NewRange orders a and b into a TextRange.
func NewRange(a, b int) TextRange {
	if a > b {
		a, b = b, a
	}
	return TextRange{Start: a, End: b}
}

// Collapsed reports whether the range is a plain cursor.
func (r TextRange) Collapsed() bool { return r.Start == r.End }

// Len is the number of selected bytes.
func (r TextRange) Len() int { return r.End - r.Start }

// Clamp bounds both ends of the range to a text of length n.
func (r TextRange) Clamp(n int) TextRange {
	return NewRange(clampInt(r.Start, 0, n), clampInt(r.End, 0, n))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (r TextRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// TextState is an immutable snapshot of a field: its text and selection.
type TextState struct {
	Text  string
	Range TextRange
}

// StateAtEnd returns text with a collapsed cursor after its last character.
func StateAtEnd(text string) TextState {
	return TextState{Text: text, Range: Caret(len(text))}
}

// Dangling reports whether text is a shape that must not survive the end of
// editing: a bare sign or a trailing decimal point.
func Dangling(text string) bool {
	return text == "-" || (text != "" && text[len(text)-1] == '.')
}
