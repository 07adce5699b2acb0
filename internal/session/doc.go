// Package session drives a numeric field: it turns edit intents and lifecycle
// signals into ComposeEdit calls and history updates, and keeps the attached
// control in sync.
//
// A Controller is single-threaded. Each control owns its own Controller and
// history; only the event manager may be shared.
package session
