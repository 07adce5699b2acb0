package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSystem struct {
	text    string
	readErr error
	writes  int
}

func (f *fakeSystem) ReadAll() (string, error) { return f.text, f.readErr }

func (f *fakeSystem) WriteAll(text string) error {
	f.writes++
	f.text = text
	return nil
}

func TestManager_InternalRegister(t *testing.T) {
	m := NewManager(false)
	assert.False(t, m.UsesSystem())
	assert.Equal(t, "", m.Paste())

	assert.NoError(t, m.Copy("12.5"))
	assert.Equal(t, "12.5", m.Paste())

	assert.NoError(t, m.Copy(""))
	assert.Equal(t, "12.5", m.Paste(), "empty copy keeps the register")
}

func TestManager_SystemClipboard(t *testing.T) {
	sys := &fakeSystem{text: " 42\n"}
	m := NewManagerWith(sys)
	assert.Equal(t, "42", m.Paste())

	assert.NoError(t, m.Copy("7"))
	assert.Equal(t, 1, sys.writes)
	assert.Equal(t, "7", m.Paste())
}

func TestManager_SystemFailureFallsBack(t *testing.T) {
	sys := &fakeSystem{}
	m := NewManagerWith(sys)
	assert.NoError(t, m.Copy("3"))

	sys.readErr = errors.New("no display")
	assert.Equal(t, "3", m.Paste())

	sys.readErr = nil
	sys.text = ""
	assert.Equal(t, "3", m.Paste(), "empty system clipboard falls back to the register")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "1234", Sanitize("12\t3\r\n4"))
	assert.Equal(t, "-1.5", Sanitize("  -1.5  "))
}
