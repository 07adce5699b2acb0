// Package numeric resolves numeric input options and validates edits against them.
//
// ComposeEdit is the heart of the package: given the current text, a candidate
// edit and a selection, it either produces the next valid text and cursor or
// rejects the edit. It is a pure function of its arguments and the resolved Config.
//
// Offsets are byte offsets. Every accepted text is ASCII, so for stored states
// byte offsets and character offsets coincide.
package numeric
