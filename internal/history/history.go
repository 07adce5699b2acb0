// Package history provides a bounded, pointer-addressable edit history for undo/redo.
//
// The history is linear: once the pointer has been moved by Prev or Next, the
// next Append discards every entry after the pointer before appending.
package history

import "github.com/bethropolis/numfield/internal/logger"

// DefaultMaxHistory is the history size hosts use when none is configured.
const DefaultMaxHistory = 100

// History holds accepted states. It is owned by a single session and is not
// safe for concurrent use.
type History[T any] struct {
	entries []T
	max     int  // 0 means unbounded
	pointer int  // index of the current entry
	moved   bool // pointer moved by Prev/Next since the last Append
}

// New creates a history holding at most max entries. max <= 0 means unbounded.
func New[T any](max int) *History[T] {
	if max < 0 {
		max = 0
	}
	return &History[T]{max: max}
}

// Size returns the number of stored entries.
func (h *History[T]) Size() int { return len(h.entries) }

// Max returns the configured bound (0 = unbounded).
func (h *History[T]) Max() int { return h.max }

// Pointer returns the index of the current entry.
func (h *History[T]) Pointer() int { return h.pointer }

// Append pushes state and makes it current.
func (h *History[T]) Append(state T) {
	if h.moved {
		h.truncate()
		h.moved = false
	}
	h.entries = append(h.entries, state)

	if h.max > 0 && len(h.entries) > h.max {
		// Evict from the front; copy so the backing array does not keep growing.
		kept := make([]T, h.max, h.max+1)
		copy(kept, h.entries[len(h.entries)-h.max:])
		h.entries = kept
	}
	h.pointer = len(h.entries) - 1

	logger.DebugTagf("history", "History: appended. Pointer: %d, Count: %d", h.pointer, len(h.entries))
}

// Current returns the entry at the pointer.
func (h *History[T]) Current() (T, bool) {
	return h.at(h.pointer)
}

// Before returns the entry just behind the pointer.
func (h *History[T]) Before() (T, bool) {
	return h.at(h.pointer - 1)
}

// Prev moves the pointer one step back and returns the entry there.
// At the first entry the pointer stays put and false is returned.
func (h *History[T]) Prev() (T, bool) {
	h.moved = true
	if h.pointer <= 0 {
		h.pointer = 0
		logger.DebugTagf("history", "History: nothing to undo.")
		var zero T
		return zero, false
	}
	h.pointer--
	return h.Current()
}

// Next moves the pointer one step forward and returns the entry there.
// At the last entry the pointer stays put and false is returned.
func (h *History[T]) Next() (T, bool) {
	h.moved = true
	if h.pointer >= len(h.entries)-1 {
		logger.DebugTagf("history", "History: nothing to redo. Pointer=%d, Count=%d", h.pointer, len(h.entries))
		var zero T
		return zero, false
	}
	h.pointer++
	return h.Current()
}

// Clip discards every entry after the pointer.
func (h *History[T]) Clip() {
	h.truncate()
}

// Clear resets the history to empty.
func (h *History[T]) Clear() {
	var zero T
	for i := range h.entries {
		h.entries[i] = zero
	}
	h.entries = h.entries[:0]
	h.pointer = 0
	h.moved = false
	logger.DebugTagf("history", "History: cleared.")
}

func (h *History[T]) truncate() {
	if h.pointer+1 < len(h.entries) {
		var zero T
		for i := h.pointer + 1; i < len(h.entries); i++ {
			h.entries[i] = zero
		}
		h.entries = h.entries[:h.pointer+1]
	}
}

func (h *History[T]) at(i int) (T, bool) {
	if i < 0 || i >= len(h.entries) {
		var zero T
		return zero, false
	}
	return h.entries[i], true
}
