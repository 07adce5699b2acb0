package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/numfield/internal/numeric"
)

// updateStatusBarContent pushes the focused field's state to the status bar.
func (a *App) updateStatusBarContent() {
	fs := a.focused()
	if fs == nil {
		a.statusBar.SetFieldInfo("", "", "")
		return
	}
	a.statusBar.SetFieldInfo(fs.cfg.Name, fs.ctrl.Value(), describeConfig(fs.ctrl.Config()))
}

// describeConfig renders the limits of cfg in a short form, e.g. "float [-100,1000] .2".
func describeConfig(cfg numeric.Config) string {
	parts := []string{cfg.Mode.String()}
	if cfg.VerifyMin || cfg.VerifyMax {
		lo, hi := "", ""
		if cfg.VerifyMin {
			lo = strconv.FormatFloat(cfg.Min, 'f', -1, 64)
		}
		if cfg.VerifyMax {
			hi = strconv.FormatFloat(cfg.Max, 'f', -1, 64)
		}
		parts = append(parts, fmt.Sprintf("[%s,%s]", lo, hi))
	}
	if cfg.IntegerDigits > 0 {
		parts = append(parts, fmt.Sprintf("%dd", cfg.IntegerDigits))
	}
	if cfg.DecimalDigits > 0 {
		parts = append(parts, fmt.Sprintf(".%d", cfg.DecimalDigits))
	}
	if cfg.TotalLength > 0 {
		parts = append(parts, fmt.Sprintf("len %d", cfg.TotalLength))
	}
	return strings.Join(parts, " ")
}
