package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/numfield/internal/clipboard"
	"github.com/bethropolis/numfield/internal/config"
)

func testConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Fields = []config.FieldConfig{
		{Name: "amount", Value: "12.5", Options: config.FieldOptions{Min: -100, Max: 1000, Decimals: 2, MaxFail: "maxValue"}},
		{Name: "qty", Options: config.FieldOptions{Mode: "integer", Min: 0, Integer: 3}},
	}
	return cfg
}

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	a, err := NewAppWithScreen(testConfig(), s, clipboard.NewManager(false))
	require.NoError(t, err)
	s.SetSize(40, 6)
	t.Cleanup(a.tuiManager.Close)
	return a, s
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey { return tcell.NewEventKey(k, 0, mod) }

func typeRunes(a *App, s string) {
	for _, r := range s {
		a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func value(t *testing.T, a *App, name string) string {
	t.Helper()
	v, ok := a.Value(name)
	require.True(t, ok, name)
	return v
}

func TestApp_TypingGoesThroughTheEngine(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, "12.5", value(t, a, "amount"))

	typeRunes(a, "9")
	assert.Equal(t, "12.59", value(t, a, "amount"))
	typeRunes(a, "9")
	assert.Equal(t, "12.59", value(t, a, "amount"), "third decimal rejected")
	text, temp := a.statusBar.Text()
	assert.True(t, temp)
	assert.Contains(t, text, "not accepted")

	a.HandleEvent(key(tcell.KeyCtrlZ, tcell.ModCtrl))
	assert.Equal(t, "12.5", value(t, a, "amount"))
	a.HandleEvent(key(tcell.KeyCtrlY, tcell.ModCtrl))
	assert.Equal(t, "12.59", value(t, a, "amount"))
}

func TestApp_MaxLimitAndSelection(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleEvent(key(tcell.KeyCtrlA, tcell.ModCtrl))
	typeRunes(a, "5000")
	assert.Equal(t, "1000", value(t, a, "amount"), "maxValue policy clamps")
}

func TestApp_FocusBlurCorrects(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleEvent(key(tcell.KeyCtrlA, tcell.ModCtrl))
	typeRunes(a, "7.")
	assert.Equal(t, "7.", value(t, a, "amount"))

	a.HandleEvent(key(tcell.KeyTab, tcell.ModNone))
	assert.Equal(t, "7", value(t, a, "amount"), "trailing point trimmed on blur")
	assert.Equal(t, "qty", a.focusedName())

	typeRunes(a, "-1234")
	assert.Equal(t, "123", value(t, a, "qty"))

	a.HandleEvent(key(tcell.KeyBacktab, tcell.ModNone))
	assert.Equal(t, "amount", a.focusedName())
	a.HandleEvent(key(tcell.KeyBacktab, tcell.ModNone))
	assert.Equal(t, "qty", a.focusedName(), "focus wraps")
}

func TestApp_BracketedPaste(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleEvent(key(tcell.KeyTab, tcell.ModNone))

	a.HandleEvent(tcell.NewEventPaste(true))
	typeRunes(a, "42abc")
	assert.Equal(t, "", value(t, a, "qty"), "nothing applied mid-paste")
	a.HandleEvent(tcell.NewEventPaste(false))
	assert.Equal(t, "42", value(t, a, "qty"))
}

func TestApp_CopyCutPaste(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleEvent(key(tcell.KeyCtrlC, tcell.ModCtrl))
	a.HandleEvent(key(tcell.KeyTab, tcell.ModNone))
	a.HandleEvent(key(tcell.KeyCtrlV, tcell.ModCtrl))
	assert.Equal(t, "12", value(t, a, "qty"), "integer field keeps the integer prefix")

	a.HandleEvent(key(tcell.KeyCtrlA, tcell.ModCtrl))
	a.HandleEvent(key(tcell.KeyCtrlX, tcell.ModCtrl))
	assert.Equal(t, "", value(t, a, "qty"))
	a.HandleEvent(key(tcell.KeyCtrlV, tcell.ModCtrl))
	assert.Equal(t, "12", value(t, a, "qty"))
}

func TestApp_Reset(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleEvent(key(tcell.KeyCtrlA, tcell.ModCtrl))
	typeRunes(a, "7")
	assert.Equal(t, "7", value(t, a, "amount"))
	a.HandleEvent(key(tcell.KeyCtrlR, tcell.ModCtrl))
	assert.Equal(t, "12.5", value(t, a, "amount"))
	text, _ := a.statusBar.Text()
	assert.Equal(t, "amount reset", text)
}

func TestApp_ReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[fields]]
name = "amount"
value = "12.5"
[fields.options]
mode = "integer"
integer = 1
`), 0o644))

	a, _ := newTestApp(t)
	a.configPath = path
	a.HandleEvent(key(tcell.KeyF5, tcell.ModNone))

	assert.Equal(t, "2", value(t, a, "amount"), "revalidated under the new options")
	text, _ := a.statusBar.Text()
	assert.Equal(t, "Config reloaded, 1 field(s) changed", text)
	a.HandleEvent(key(tcell.KeyCtrlZ, tcell.ModCtrl))
	assert.Equal(t, "2", value(t, a, "amount"), "history was reset")
}

func TestApp_RunUntilQuit(t *testing.T) {
	a, s := newTestApp(t)
	s.InjectKey(tcell.KeyRune, '3', tcell.ModNone)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	require.NoError(t, a.Run())
	assert.True(t, a.Quitting())
	assert.Equal(t, "12.53", value(t, a, "amount"))
}

func TestApp_DrawsForm(t *testing.T) {
	a, s := newTestApp(t)
	a.draw()

	cells, w, h := s.GetContents()
	line := func(y int) string {
		out := make([]rune, 0, w)
		for x := 0; x < w; x++ {
			out = append(out, cells[y*w+x].Runes...)
		}
		return string(out)
	}
	assert.Contains(t, line(0), "amount: 12.5")
	assert.Contains(t, line(2), "qty:")
	assert.Contains(t, line(h-1), "amount = 12.5")
}

func TestDescribeConfig(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, "float [-100,1000] .2", describeConfig(a.fields[0].ctrl.Config()))
	assert.Equal(t, "integer [0,] 3d", describeConfig(a.fields[1].ctrl.Config()))
}

func TestApp_ExportJSON(t *testing.T) {
	a, _ := newTestApp(t)
	a.fields[1].cfg.Name = "qty.total"

	doc, err := a.ValuesJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": 12.5, "qty.total": null}`, doc)

	a.HandleEvent(key(tcell.KeyBackspace2, tcell.ModNone))
	a.HandleEvent(key(tcell.KeyCtrlE, tcell.ModCtrl))
	assert.JSONEq(t, `{"amount": "12.", "qty.total": null}`, a.clipboard.Paste())
	text, _ := a.statusBar.Text()
	assert.Equal(t, "Copied 2 value(s) as JSON", text)
}

func TestJSONNumber(t *testing.T) {
	assert.Equal(t, "-0.5", jsonNumber("-.5"))
	assert.Equal(t, "0.25", jsonNumber(".25"))
	assert.Equal(t, "-12.5", jsonNumber("-12.5"))
}
