package session

import (
	"strings"

	"github.com/google/uuid"

	"github.com/bethropolis/numfield/internal/event"
	"github.com/bethropolis/numfield/internal/history"
	"github.com/bethropolis/numfield/internal/logger"
	"github.com/bethropolis/numfield/internal/numeric"
)

type phase int

const (
	phaseIdle phase = iota
	phaseComposing
)

// recommit is the deferred re-application of the current entry after a
// composition ends.
type recommit struct {
	state numeric.TextState
	ok    bool
}

// Controller owns the history and resolved config of one control.
type Controller struct {
	id      string
	name    string
	control Control
	events  *event.Manager
	sched   Scheduler

	defaults numeric.Options
	options  numeric.Options
	cfg      numeric.Config

	hist    *history.History[numeric.TextState]
	phase   phase
	pending *recommit
}

// Option configures a Controller.
type Option func(*Controller)

// WithDefaults sets the shared default option bag. Per-field options win over it.
func WithDefaults(opts numeric.Options) Option {
	return func(c *Controller) { c.defaults = opts }
}

// WithOptions sets the field's own option bag.
func WithOptions(opts numeric.Options) Option {
	return func(c *Controller) { c.options = opts }
}

// WithHistorySize bounds the undo history. 0 means unbounded.
func WithHistorySize(n int) Option {
	return func(c *Controller) { c.hist = history.New[numeric.TextState](n) }
}

// WithScheduler sets how composition-end re-commits are deferred. Default: Immediate.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithEventManager shares an event bus. Without it the controller creates its own.
func WithEventManager(m *event.Manager) Option {
	return func(c *Controller) { c.events = m }
}

// WithName labels the controller in events and logs.
func WithName(name string) Option {
	return func(c *Controller) { c.name = name }
}

// New attaches a controller to ctrl. The control's current text is sanitized
// with a forced replacement and becomes the first history entry.
func New(ctrl Control, opts ...Option) *Controller {
	c := &Controller{
		id:      uuid.NewString(),
		control: ctrl,
		sched:   Immediate,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hist == nil {
		c.hist = history.New[numeric.TextState](history.DefaultMaxHistory)
	}
	if c.events == nil {
		c.events = event.NewManager()
	}
	c.cfg = numeric.Resolve(numeric.Merge(c.defaults, c.options))
	c.seed()
	c.debugf("attached (mode=%v, history=%d)", c.cfg.Mode, c.hist.Max())
	return c
}

// ID is the session identifier carried by events.
func (c *Controller) ID() string { return c.id }

// Name is the label given with WithName.
func (c *Controller) Name() string { return c.name }

// Config returns the resolved configuration.
func (c *Controller) Config() numeric.Config { return c.cfg }

// Events returns the event bus the controller dispatches on.
func (c *Controller) Events() *event.Manager { return c.events }

// Composing reports whether a composition session is open.
func (c *Controller) Composing() bool { return c.phase == phaseComposing }

// State returns the current history entry.
func (c *Controller) State() (numeric.TextState, bool) { return c.hist.Current() }

// HistorySize returns the number of stored states.
func (c *Controller) HistorySize() int { return c.hist.Size() }

// Value returns the text shown by the control.
func (c *Controller) Value() string { return c.control.Text() }

// Apply performs an edit intent against the control's current selection.
// It reports whether the edit was accepted; a rejected edit changes nothing.
func (c *Controller) Apply(in Intent) bool {
	c.flush()

	text := c.control.Text()
	sel := c.control.Selection().Clamp(len(text))

	var (
		state numeric.TextState
		ok    bool
	)
	if c.phase == phaseComposing {
		// The composition owns its own keystrokes; only a live selection is
		// removed so the composed text replaces it.
		if sel.Collapsed() {
			return false
		}
		state, ok = numeric.ComposeEdit(text, "", sel.Start, sel.End, true, c.cfg)
	} else {
		if noop(text, sel, in) {
			return false
		}
		state, ok = c.compose(text, sel, in)
	}

	if !ok {
		c.debugf("swallowed %v %q at %v", in.Kind, in.Text, sel)
		c.events.Dispatch(event.TypeEditRejected, event.EditRejectedData{
			Session: c.id, Name: c.name, Intent: in.Kind.String(), Text: in.Text,
		})
		return false
	}
	c.changeState(state, true)
	return true
}

// noop reports intents that have nothing to act on, such as backspace at offset 0.
func noop(text string, sel numeric.TextRange, in Intent) bool {
	switch in.Kind {
	case IntentInsert, IntentPaste:
		return in.Text == ""
	case IntentDeleteBackward:
		return sel.Collapsed() && sel.Start == 0
	case IntentDeleteForward:
		return sel.Collapsed() && sel.End == len(text)
	case IntentDeleteSelection:
		return sel.Collapsed()
	}
	return true
}

func (c *Controller) compose(text string, sel numeric.TextRange, in Intent) (numeric.TextState, bool) {
	start, end := sel.Start, sel.End
	switch in.Kind {
	case IntentInsert, IntentPaste:
		wholesale := !sel.Collapsed() && start == 0 && end == len(text)
		return numeric.ComposeEdit(text, in.Text, start, end, in.Force || wholesale, c.cfg)
	case IntentDeleteBackward:
		if sel.Collapsed() {
			start--
		}
	case IntentDeleteForward:
		if sel.Collapsed() {
			end++
		}
	}
	return numeric.ComposeEdit(text, "", start, end, in.Force, c.cfg)
}

// CompositionStart opens a composition session.
func (c *Controller) CompositionStart() {
	c.flush()
	c.phase = phaseComposing
	c.debugf("composition started")
}

// CompositionEnd closes the composition session and schedules one re-commit of
// the current history entry, discarding whatever the composition left behind.
// Any operation arriving before the scheduler runs it performs the re-commit first.
func (c *Controller) CompositionEnd() {
	c.phase = phaseIdle
	state, ok := c.hist.Current()
	p := &recommit{state: state, ok: ok}
	c.pending = p
	c.sched.Defer(func() { c.runRecommit(p) })
}

func (c *Controller) runRecommit(p *recommit) {
	if c.pending != p {
		return
	}
	c.pending = nil
	if p.ok {
		c.changeState(p.state, false)
	}
}

func (c *Controller) flush() {
	if c.pending != nil {
		c.runRecommit(c.pending)
	}
}

// Blur ends editing and corrects dangling shapes: a bare sign is dropped and a
// trailing point is trimmed.
func (c *Controller) Blur() {
	c.flush()
	c.phase = phaseIdle

	cur, ok := c.hist.Current()
	if !ok {
		return
	}
	before, hasBefore := c.hist.Before()

	switch {
	case cur.Text == "-" || cur.Text == "-.":
		if hasBefore && before.Text != "" {
			c.changeState(numeric.StateAtEnd(""), true)
			return
		}
		if !hasBefore {
			c.replaceCurrent(numeric.StateAtEnd(""), false)
			return
		}
		prev, _ := c.hist.Prev()
		c.changeState(prev, false)
		c.hist.Clip()
	case strings.HasSuffix(cur.Text, "."):
		trimmed := strings.TrimSuffix(cur.Text, ".")
		if hasBefore && trimmed == before.Text {
			prev, _ := c.hist.Prev()
			c.changeState(prev, false)
			c.hist.Clip()
			return
		}
		c.replaceCurrent(numeric.StateAtEnd(trimmed), hasBefore)
	}
}

// replaceCurrent swaps the current entry for state.
func (c *Controller) replaceCurrent(state numeric.TextState, hasBefore bool) {
	if hasBefore {
		c.hist.Prev()
	} else {
		c.hist.Clear()
	}
	c.changeState(state, true)
}

// Undo steps back in history. It reports false at the oldest entry.
func (c *Controller) Undo() bool {
	return c.navigate(false)
}

// Redo steps forward in history. It reports false at the newest entry.
func (c *Controller) Redo() bool {
	return c.navigate(true)
}

func (c *Controller) navigate(redo bool) bool {
	c.flush()
	var (
		state numeric.TextState
		ok    bool
	)
	if redo {
		state, ok = c.hist.Next()
	} else {
		state, ok = c.hist.Prev()
	}
	if !ok {
		c.events.Dispatch(event.TypeHistoryBoundary, event.HistoryBoundaryData{Session: c.id, Name: c.name, Redo: redo})
		return false
	}
	c.changeState(state, false)
	return true
}

// SetValue writes a value programmatically as a forced full replacement.
// Echoing back the value in front of a dangling trailing point leaves the point
// in place. It reports whether the control now shows an accepted value.
func (c *Controller) SetValue(v string) bool {
	c.flush()

	cur, ok := c.hist.Current()
	if ok && cur.Text == v {
		if c.control.Text() != v {
			c.control.SetState(cur)
		}
		return true
	}
	if ok && strings.HasSuffix(cur.Text, ".") {
		if before, has := c.hist.Before(); has && before.Text == v {
			return true
		}
	}

	state, accepted := numeric.ComposeEdit("", v, 0, 0, true, c.cfg)
	if !accepted {
		c.debugf("external value %q rejected", v)
		c.events.Dispatch(event.TypeEditRejected, event.EditRejectedData{
			Session: c.id, Name: c.name, Intent: "setValue", Text: v,
		})
		return false
	}
	c.changeState(state, true)
	return true
}

// SetOptions replaces the field's option bag. When the resolved config changes
// the history is cleared and re-seeded from the visible text.
func (c *Controller) SetOptions(opts numeric.Options) bool {
	c.options = opts
	return c.reconfigure()
}

// SetDefaults replaces the shared default bag, with the same effect as SetOptions.
func (c *Controller) SetDefaults(opts numeric.Options) bool {
	c.defaults = opts
	return c.reconfigure()
}

// Configure replaces both option bags at once.
func (c *Controller) Configure(defaults, opts numeric.Options) bool {
	c.defaults, c.options = defaults, opts
	return c.reconfigure()
}

func (c *Controller) reconfigure() bool {
	c.flush()
	cfg := numeric.Resolve(numeric.Merge(c.defaults, c.options))
	if cfg.Equal(c.cfg) {
		return false
	}
	c.cfg = cfg
	c.hist.Clear()
	c.seed()
	c.debugf("config changed, history reset")
	c.events.Dispatch(event.TypeConfigChanged, event.ConfigChangedData{Session: c.id, Name: c.name})
	return true
}

// seed revalidates the visible text and records it as the first entry.
func (c *Controller) seed() {
	state, ok := numeric.ComposeEdit("", c.control.Text(), 0, 0, true, c.cfg)
	if !ok {
		state = numeric.StateAtEnd("")
	}
	c.changeState(state, true)
}

// changeState pushes state to the control when it differs from what is shown,
// and records it when save is set.
func (c *Controller) changeState(state numeric.TextState, save bool) {
	cur, ok := c.hist.Current()
	if !ok || state.Text != cur.Text || c.control.Text() != state.Text {
		c.control.SetState(state)
		c.notify(state.Text)
	}
	if save {
		c.hist.Append(state)
	}
}

// notify tells observers about a committed value. Bare signs and trailing
// points are not values yet.
func (c *Controller) notify(text string) {
	if numeric.Dangling(text) {
		return
	}
	c.events.Dispatch(event.TypeValueChanged, event.ValueChangedData{Session: c.id, Name: c.name, Text: text})
}

func (c *Controller) debugf(format string, args ...interface{}) {
	logger.DebugTagf("session", "[%s %s] "+format, append([]interface{}{c.name, c.id[:8]}, args...)...)
}
