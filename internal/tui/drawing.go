// internal/tui/drawing.go
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/numfield/internal/session"
	"github.com/bethropolis/numfield/internal/theme"
)

// FieldView is one labeled row of the form.
type FieldView struct {
	Label   string
	Field   *session.Field
	Focused bool
}

// RowHeight is the number of screen lines each field occupies.
const RowHeight = 2

// minFieldWidth keeps a usable box on narrow screens.
const minFieldWidth = 4

// LabelWidth is the column where field boxes start.
func LabelWidth(views []FieldView) int {
	w := 0
	for _, v := range views {
		if lw := uniseg.StringWidth(v.Label); lw > w {
			w = lw
		}
	}
	return w + 2 // ": "
}

// calculateVisualColumn returns the screen width of text[:byteIndex].
func calculateVisualColumn(text string, byteIndex int) int {
	if byteIndex <= 0 {
		return 0
	}
	if byteIndex > len(text) {
		byteIndex = len(text)
	}
	return uniseg.StringWidth(text[:byteIndex])
}

// scrollOffset is the first byte shown so the caret stays inside a box of width w.
func scrollOffset(text string, caret, w int) int {
	offset := 0
	for calculateVisualColumn(text, caret)-calculateVisualColumn(text, offset) >= w && offset < caret {
		offset++
	}
	return offset
}

// DrawForm draws every field and places the terminal cursor on the focused
// one. Rows past the status bar are skipped.
func DrawForm(t *TUI, views []FieldView, th *theme.Theme, statusBarHeight int) {
	if th == nil {
		th = theme.Dark
	}
	width, height := t.Size()
	viewHeight := height - statusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}

	labelWidth := LabelWidth(views)
	boxWidth := width - labelWidth - 1
	if boxWidth < minFieldWidth {
		boxWidth = minFieldWidth
	}

	screen := t.GetScreen()
	screen.HideCursor()
	for i, v := range views {
		y := i * RowHeight
		if y >= viewHeight {
			break
		}
		labelStyle := th.GetStyle(theme.StyleLabel)
		fieldStyle := th.GetStyle(theme.StyleField)
		if v.Focused {
			labelStyle = th.GetStyle(theme.StyleLabelFocused)
			fieldStyle = th.GetStyle(theme.StyleFieldFocused)
		}
		drawString(screen, 0, y, width, v.Label+":", labelStyle)

		cx := drawField(screen, labelWidth, y, boxWidth, v.Field, fieldStyle, th.GetStyle(theme.StyleSelection))
		if v.Focused && cx < width {
			screen.ShowCursor(cx, y)
		}
	}
}

// drawField renders the text of f in a box, highlighting the selection, and
// returns the screen column of the caret.
func drawField(screen tcell.Screen, x0, y, w int, f *session.Field, style, selStyle tcell.Style) int {
	text := f.Text()
	caret := f.Caret()
	sel := f.Selection()
	offset := scrollOffset(text, caret, w)

	for x := 0; x < w; x++ {
		screen.SetContent(x0+x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text[offset:])
	x := 0
	for gr.Next() {
		cw := gr.Width()
		if x+cw > w {
			break
		}
		from, _ := gr.Positions()
		pos := offset + from
		st := style
		if !sel.Collapsed() && pos >= sel.Start && pos < sel.End {
			st = selStyle
		}
		runes := gr.Runes()
		screen.SetContent(x0+x, y, runes[0], runes[1:], st)
		x += cw
	}
	return x0 + calculateVisualColumn(text, caret) - calculateVisualColumn(text, offset)
}

func drawString(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cw := gr.Width()
		if x+cw > maxX {
			return
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += cw
	}
}
