// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/numfield/internal/logger"
)

// Style names looked up by the drawing code.
const (
	StyleDefault          = "Default"
	StyleLabel            = "Label"
	StyleLabelFocused     = "Label.focused"
	StyleField            = "Field"
	StyleFieldFocused     = "Field.focused"
	StyleSelection        = "Selection"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarMessage = "StatusBarMessage"
	StyleStatusBarError   = "StatusBarError"
)

type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to the part before the first
// dot, then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	// 1. Try exact name
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// 2. Try base name (part before first dot)
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	// 3. Return "Default" style
	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	// 4. Absolute fallback
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Dark is the built-in theme.
var Dark = newDark()

func newDark() *Theme {
	background := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	red := tcell.NewHexColor(0xe06c75)
	field := tcell.NewHexColor(0x353b45)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)
	return &Theme{
		Name:   "Numfield Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleLabel:            base.Foreground(muted),
			StyleLabelFocused:     base.Foreground(yellow).Bold(true),
			StyleField:            base.Background(field).Foreground(orange),
			StyleFieldFocused:     base.Background(field).Foreground(orange).Bold(true),
			StyleSelection:        base.Reverse(true),
			StyleStatusBar:        tcell.StyleDefault.Background(background).Foreground(foreground),
			StyleStatusBarMessage: tcell.StyleDefault.Background(background).Foreground(foreground).Bold(true),
			StyleStatusBarError:   tcell.StyleDefault.Background(background).Foreground(red).Bold(true),
		},
	}
}
