package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/numfield/internal/event"
	"github.com/bethropolis/numfield/internal/numeric"
)

type recorder struct {
	values   []string
	rejected []event.EditRejectedData
	bounds   []event.HistoryBoundaryData
	configs  int
}

func record(m *event.Manager) *recorder {
	r := &recorder{}
	m.Subscribe(event.TypeValueChanged, func(e event.Event) bool {
		r.values = append(r.values, e.Data.(event.ValueChangedData).Text)
		return false
	})
	m.Subscribe(event.TypeEditRejected, func(e event.Event) bool {
		r.rejected = append(r.rejected, e.Data.(event.EditRejectedData))
		return false
	})
	m.Subscribe(event.TypeHistoryBoundary, func(e event.Event) bool {
		r.bounds = append(r.bounds, e.Data.(event.HistoryBoundaryData))
		return false
	})
	m.Subscribe(event.TypeConfigChanged, func(event.Event) bool {
		r.configs++
		return false
	})
	return r
}

func newSession(t *testing.T, text string, opts numeric.Options, extra ...Option) (*Controller, *Field, *recorder) {
	t.Helper()
	f := NewField(text)
	c := New(f, append([]Option{WithOptions(opts), WithName("test")}, extra...)...)
	return c, f, record(c.Events())
}

func typeText(c *Controller, s string) {
	for _, r := range s {
		c.Apply(Insert(string(r)))
	}
}

func TestController_SeedsSanitizedText(t *testing.T) {
	c, f, _ := newSession(t, "12abc", numeric.Options{})
	assert.Equal(t, "12", f.Text())
	assert.Equal(t, 1, c.HistorySize())

	c, f, _ = newSession(t, "007", numeric.Options{Integer: 2})
	assert.Equal(t, "7", f.Text())

	c, f, _ = newSession(t, "garbage", numeric.Options{})
	assert.Equal(t, "", f.Text())
	st, ok := c.State()
	require.True(t, ok)
	assert.Equal(t, numeric.StateAtEnd(""), st)
}

func TestController_TypingNotifiesTerminalValuesOnly(t *testing.T) {
	c, f, rec := newSession(t, "", numeric.Options{Min: -100})

	typeText(c, "-12.5")
	assert.Equal(t, "-12.5", f.Text())
	assert.Equal(t, numeric.Caret(5), f.Selection())
	assert.Equal(t, []string{"-1", "-12", "-12.5"}, rec.values)
	assert.Equal(t, 6, c.HistorySize())
}

func TestController_RejectedKeystrokeChangesNothing(t *testing.T) {
	c, f, rec := newSession(t, "", numeric.Options{Integer: 2})
	typeText(c, "12")
	size := c.HistorySize()

	assert.False(t, c.Apply(Insert("3")))
	assert.False(t, c.Apply(Insert("x")))

	assert.Equal(t, "12", f.Text())
	assert.Equal(t, size, c.HistorySize())
	require.Len(t, rec.rejected, 2)
	assert.Equal(t, "insert", rec.rejected[0].Intent)
	assert.Equal(t, "3", rec.rejected[0].Text)
	assert.Equal(t, "test", rec.rejected[0].Name)
	assert.Equal(t, c.ID(), rec.rejected[0].Session)
}

func TestController_Deletes(t *testing.T) {
	c, f, rec := newSession(t, "123", numeric.Options{})

	f.Home(false)
	assert.False(t, c.Apply(DeleteBackward()), "backspace at start is a no-op")
	assert.Empty(t, rec.rejected)

	assert.True(t, c.Apply(DeleteForward()))
	assert.Equal(t, "23", f.Text())
	assert.Equal(t, numeric.Caret(0), f.Selection())

	f.End(false)
	assert.False(t, c.Apply(DeleteForward()), "delete at end is a no-op")
	assert.True(t, c.Apply(DeleteBackward()))
	assert.Equal(t, "2", f.Text())

	assert.False(t, c.Apply(DeleteSelection()), "cut needs a selection")
	f.SelectAll()
	assert.True(t, c.Apply(DeleteSelection()))
	assert.Equal(t, "", f.Text())
}

func TestController_DeleteOverPointNormalizes(t *testing.T) {
	c, f, _ := newSession(t, "0.5", numeric.Options{})
	f.SetSelection(1, 2)
	require.True(t, c.Apply(DeleteSelection()))
	assert.Equal(t, "5", f.Text(), "leading zero collapses after the point goes")
}

func TestController_WholesaleReplacementIsForced(t *testing.T) {
	c, f, _ := newSession(t, "12", numeric.Options{Integer: 2})

	f.SelectAll()
	require.True(t, c.Apply(Paste("345")))
	assert.Equal(t, "45", f.Text())

	f.SetSelection(0, 1)
	assert.False(t, c.Apply(Paste("678")), "partial selection is not forced")
	assert.Equal(t, "45", f.Text())

	assert.True(t, c.Apply(Intent{Kind: IntentPaste, Text: "678", Force: true}))
	assert.Equal(t, "85", f.Text())
}

func TestController_UndoRedo(t *testing.T) {
	c, f, rec := newSession(t, "", numeric.Options{})
	typeText(c, "123")

	require.True(t, c.Undo())
	assert.Equal(t, "12", f.Text())
	require.True(t, c.Undo())
	assert.Equal(t, "1", f.Text())
	require.True(t, c.Redo())
	assert.Equal(t, "12", f.Text())
	assert.Equal(t, numeric.Caret(2), f.Selection())

	typeText(c, "9")
	assert.Equal(t, "129", f.Text())
	assert.False(t, c.Redo(), "undone future is gone")
	require.Len(t, rec.bounds, 1)
	assert.True(t, rec.bounds[0].Redo)

	for c.Undo() {
	}
	assert.Equal(t, "", f.Text())
	require.Len(t, rec.bounds, 2)
	assert.False(t, rec.bounds[1].Redo)
}

func TestController_BlurDropsBareSign(t *testing.T) {
	c, f, _ := newSession(t, "", numeric.Options{Min: -10})
	typeText(c, "-")
	require.Equal(t, "-", f.Text())

	c.Blur()
	assert.Equal(t, "", f.Text())
	assert.Equal(t, 1, c.HistorySize(), "dangling entry dropped")
	_, ok := c.hist.Next()
	assert.False(t, ok)
}

func TestController_BlurBareSignAfterValue(t *testing.T) {
	c, f, rec := newSession(t, "", numeric.Options{Min: -10})
	typeText(c, "-5")
	c.Apply(DeleteBackward())
	require.Equal(t, "-", f.Text())

	c.Blur()
	assert.Equal(t, "", f.Text())
	st, _ := c.State()
	assert.Equal(t, "", st.Text)
	assert.Equal(t, "", rec.values[len(rec.values)-1])
}

func TestController_PointAfterSign(t *testing.T) {
	c, f, rec := newSession(t, "", numeric.Options{Min: -10})
	typeText(c, "-.5")
	assert.Equal(t, "-.5", f.Text())
	assert.Equal(t, []string{"-.5"}, rec.values)

	c.Blur()
	assert.Equal(t, "-.5", f.Text())
}

func TestController_BlurDropsSignWithPoint(t *testing.T) {
	c, f, rec := newSession(t, "", numeric.Options{Min: -10})
	typeText(c, "-.")
	require.Equal(t, "-.", f.Text())
	assert.Empty(t, rec.values)

	c.Blur()
	assert.Equal(t, "", f.Text())
	st, _ := c.State()
	assert.Equal(t, "", st.Text)
}

func TestController_BlurBareSignWithoutHistory(t *testing.T) {
	c, f, _ := newSession(t, "-", numeric.Options{Min: -10})
	require.Equal(t, "-", f.Text())
	require.Equal(t, 1, c.HistorySize())

	c.Blur()
	assert.Equal(t, "", f.Text())
	assert.Equal(t, 1, c.HistorySize())
}

func TestController_BlurTrimsTrailingPoint(t *testing.T) {
	c, f, _ := newSession(t, "", numeric.Options{})
	typeText(c, "12.")

	c.Blur()
	assert.Equal(t, "12", f.Text())
	assert.Equal(t, 3, c.HistorySize(), "collapsed onto the previous entry")

	typeText(c, ".5")
	c.Apply(DeleteBackward())
	require.Equal(t, "12.", f.Text())

	c.Blur()
	assert.Equal(t, "12", f.Text())
	st, _ := c.State()
	assert.Equal(t, numeric.StateAtEnd("12"), st)
	before, _ := c.hist.Before()
	assert.Equal(t, "12.5", before.Text)
}

func TestController_BlurLeavesCompleteValues(t *testing.T) {
	c, f, _ := newSession(t, "3.5", numeric.Options{})
	size := c.HistorySize()
	c.Blur()
	assert.Equal(t, "3.5", f.Text())
	assert.Equal(t, size, c.HistorySize())
}

func TestController_CompositionRecommitIsDeferred(t *testing.T) {
	q := &Queue{}
	c, f, _ := newSession(t, "12", numeric.Options{}, WithScheduler(q))

	c.CompositionStart()
	assert.True(t, c.Composing())
	assert.False(t, c.Apply(Insert("x")))
	assert.False(t, c.Apply(DeleteBackward()), "collapsed deletes belong to the composition")

	// the platform writes composed text straight into the control
	f.SetState(numeric.StateAtEnd("12x"))

	c.CompositionEnd()
	assert.False(t, c.Composing())
	assert.Equal(t, "12x", f.Text())
	require.Equal(t, 1, q.Len())

	q.Run()
	assert.Equal(t, "12", f.Text())
	assert.Equal(t, 1, c.HistorySize())
}

func TestController_CompositionRecommitKeepsOrdering(t *testing.T) {
	q := &Queue{}
	c, f, _ := newSession(t, "12", numeric.Options{}, WithScheduler(q))

	c.CompositionStart()
	f.SetState(numeric.StateAtEnd("12x"))
	c.CompositionEnd()

	require.True(t, c.Apply(Insert("3")))
	assert.Equal(t, "123", f.Text())

	q.Run()
	assert.Equal(t, "123", f.Text(), "stale re-commit does not run twice")
}

func TestController_CompositionDeletesSelection(t *testing.T) {
	c, f, _ := newSession(t, "123", numeric.Options{})
	c.CompositionStart()
	f.SetSelection(1, 3)

	require.True(t, c.Apply(Insert("x")))
	assert.Equal(t, "1", f.Text())
	c.CompositionEnd()
	assert.Equal(t, "1", f.Text())
}

func TestController_SetValue(t *testing.T) {
	c, f, rec := newSession(t, "", numeric.Options{Integer: 2})

	require.True(t, c.SetValue("42"))
	assert.Equal(t, "42", c.Value())
	assert.Equal(t, "42", rec.values[len(rec.values)-1])

	size := c.HistorySize()
	require.True(t, c.SetValue("42"))
	assert.Equal(t, size, c.HistorySize(), "same value is not recorded again")

	require.True(t, c.SetValue("12345"))
	assert.Equal(t, "45", f.Text())

	assert.False(t, c.SetValue("abc"))
	assert.Equal(t, "45", f.Text())
	assert.Equal(t, "setValue", rec.rejected[len(rec.rejected)-1].Intent)

	require.True(t, c.SetValue(""))
	assert.Equal(t, "", f.Text())
}

func TestController_SetValueKeepsTrailingPoint(t *testing.T) {
	c, f, _ := newSession(t, "", numeric.Options{})
	typeText(c, "12.")

	require.True(t, c.SetValue("12"))
	assert.Equal(t, "12.", f.Text())
	assert.Equal(t, numeric.Caret(3), f.Selection())

	require.True(t, c.SetValue("7"))
	assert.Equal(t, "7", f.Text())
}

func TestController_SetOptionsResetsHistory(t *testing.T) {
	c, f, rec := newSession(t, "", numeric.Options{})
	typeText(c, "123")
	require.Equal(t, 4, c.HistorySize())

	assert.False(t, c.SetOptions(numeric.Options{}), "same config")
	assert.Equal(t, 4, c.HistorySize())

	assert.True(t, c.SetOptions(numeric.Options{Integer: 2}))
	assert.Equal(t, "23", f.Text())
	assert.Equal(t, 1, c.HistorySize())
	assert.Equal(t, 1, rec.configs)
	assert.False(t, c.Undo())
}

func TestController_DefaultsMergeUnderOptions(t *testing.T) {
	f := NewField("")
	c := New(f, WithDefaults(numeric.Options{Min: -5, Decimals: 1}), WithOptions(numeric.Options{Min: 0}))

	assert.False(t, c.Config().MinusSignAllowed)
	assert.Equal(t, 1, c.Config().DecimalDigits)

	assert.True(t, c.SetDefaults(numeric.Options{Decimals: 3}))
	assert.Equal(t, 3, c.Config().DecimalDigits)
	assert.True(t, c.Config().VerifyMin)

	assert.False(t, c.Configure(numeric.Options{Decimals: 3}, numeric.Options{Min: 0}))
	assert.True(t, c.Configure(numeric.Options{}, numeric.Options{Mode: "integer"}))
	assert.Equal(t, numeric.ModeInteger, c.Config().Mode)
}

func TestController_HistoryBound(t *testing.T) {
	c, _, _ := newSession(t, "", numeric.Options{}, WithHistorySize(3))
	typeText(c, "12345")
	assert.Equal(t, 3, c.HistorySize())
	st, _ := c.State()
	assert.Equal(t, "12345", st.Text)
}

func TestController_IndependentSessionsShareEvents(t *testing.T) {
	m := event.NewManager()
	a := New(NewField(""), WithEventManager(m), WithName("a"))
	b := New(NewField(""), WithEventManager(m), WithName("b"))

	var names []string
	m.Subscribe(event.TypeValueChanged, func(e event.Event) bool {
		names = append(names, e.Data.(event.ValueChangedData).Name)
		return false
	})

	typeText(a, "1")
	typeText(b, "2")
	typeText(a, "3")

	assert.Equal(t, []string{"a", "b", "a"}, names)
	assert.Equal(t, "13", a.Value())
	assert.Equal(t, "2", b.Value())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 3, a.HistorySize())
	assert.Equal(t, 2, b.HistorySize())
}
