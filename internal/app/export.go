package app

import (
	"strconv"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/bethropolis/numfield/internal/logger"
	"github.com/bethropolis/numfield/internal/numeric"
)

// ValuesJSON renders every field as {"name": value}. Complete values are JSON
// numbers, empty fields are null and dangling shapes are kept as strings.
func (a *App) ValuesJSON() (string, error) {
	doc := "{}"
	var err error
	for _, fs := range a.fields {
		key := escapePath(fs.cfg.Name)
		text := fs.ctrl.Value()
		switch {
		case text == "":
			doc, err = sjson.SetRaw(doc, key, "null")
		case !numeric.Dangling(text) && isNumber(text):
			doc, err = sjson.SetRaw(doc, key, jsonNumber(text))
		default:
			doc, err = sjson.Set(doc, key, text)
		}
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func (a *App) exportJSON() {
	doc, err := a.ValuesJSON()
	if err != nil {
		logger.Errorf("App: export failed: %v", err)
		a.statusBar.SetErrorMessage("Export failed: %v", err)
		return
	}
	if err := a.clipboard.Copy(doc); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.statusBar.SetTemporaryMessage("Copied %d value(s) as JSON", len(a.fields))
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// jsonNumber adds the zero JSON requires before a leading point.
func jsonNumber(text string) string {
	sign := ""
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	return sign + text
}

// escapePath quotes the sjson path characters in a field name.
func escapePath(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
