package numeric

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bethropolis/numfield/internal/logger"
)

// grammar decomposes a literal into sign, integer digits, point and decimal digits.
var grammar = regexp.MustCompile(`^(-?)(\d*)(\.?)(\d*)`)

// fragmentStart is the shape a multi-character insertion must begin with.
var fragmentStart = regexp.MustCompile(`^(-?\d|\.\d)`)

// edit carries the facts about the source text that the gates consult.
type edit struct {
	source     string
	start, end int
	force      bool
	deletion   bool
	minusIndex int
	pointIndex int
	cfg        Config
}

// ComposeEdit replaces source[start:end] with inserted and returns the resulting
// state, or false if the edit must be rejected. An empty inserted is a pure
// deletion. force relaxes digit-cap rejections into truncation.
//
// A rejection means the caller should change nothing.
func ComposeEdit(source, inserted string, start, end int, force bool, cfg Config) (TextState, bool) {
	r := NewRange(start, end).Clamp(len(source))
	e := edit{
		source:     source,
		start:      r.Start,
		end:        r.End,
		force:      force,
		deletion:   inserted == "",
		minusIndex: strings.IndexByte(source, '-'),
		pointIndex: strings.IndexByte(source, '.'),
		cfg:        cfg,
	}

	fragment := ""
	if !e.deletion {
		var ok bool
		if fragment, ok = e.accept(inserted); !ok {
			return TextState{}, false
		}
	}
	text := source[:e.start] + fragment + source[e.end:]

	text, ok := e.normalize(text)
	if !ok {
		return TextState{}, false
	}
	if text, ok = e.enforceRange(text); !ok {
		return TextState{}, false
	}

	caret := e.start + len(fragment)
	if caret > len(text) {
		caret = len(text)
	}
	return TextState{Text: text, Range: Caret(caret)}, true
}

func reject(reason string, args ...interface{}) (string, bool) {
	logger.DebugTagf("compose", "rejected: "+reason, args...)
	return "", false
}

// signAllowed: a bare minus goes at offset 0 into text that has none.
func (e *edit) signAllowed() bool {
	return e.cfg.MinusSignAllowed && e.start == 0 && e.minusIndex < 0
}

// leadingSignAllowed is the gate for a minus opening a pasted fragment, which
// may replace a selected minus.
func (e *edit) leadingSignAllowed() bool {
	if !e.cfg.MinusSignAllowed || e.start != 0 {
		return false
	}
	return e.minusIndex < 0 || e.overwrites(e.minusIndex)
}

// pointAllowed: a point never opens the text and may appear once.
func (e *edit) pointAllowed() bool {
	return e.start > 0 && e.pointFree()
}

// pointFree: no point yet, or the existing one is being overwritten.
func (e *edit) pointFree() bool {
	if !e.cfg.DecimalPointAllowed {
		return false
	}
	return e.pointIndex < 0 || e.overwrites(e.pointIndex)
}

func (e *edit) overwrites(i int) bool {
	return i >= e.start && i < e.end
}

// accept applies the character gates to an insertion and returns the accepted fragment.
func (e *edit) accept(inserted string) (string, bool) {
	switch inserted {
	case "-":
		if !e.signAllowed() {
			return reject("minus sign at %d", e.start)
		}
		return inserted, true
	case ".":
		if !e.pointAllowed() {
			return reject("decimal point at %d", e.start)
		}
		return inserted, true
	}

	if !fragmentStart.MatchString(inserted) {
		return reject("fragment %q does not start with a number", inserted)
	}
	if isDigits(inserted) {
		return inserted, true
	}

	var b strings.Builder
	seenPoint := false
scan:
	for i := 0; i < len(inserted); i++ {
		c := inserted[i]
		switch {
		case c == '-':
			if i != 0 || !e.leadingSignAllowed() {
				break scan
			}
		case c == '.':
			if seenPoint || !e.pointFree() || (b.Len() == 0 && e.start == 0) {
				break scan
			}
			seenPoint = true
		case isDigit(c):
		default:
			break scan
		}
		b.WriteByte(c)
	}
	if b.Len() == 0 {
		return reject("nothing acceptable in %q", inserted)
	}
	return b.String(), true
}

// normalize strips leading zeros and applies the digit caps.
func (e *edit) normalize(text string) (string, bool) {
	m := grammar.FindStringSubmatch(text)
	sign, integer, point, decimals := m[1], m[2], m[3], m[4]
	if integer == "" && point == "" {
		// nothing numeric yet: empty text or a bare sign
		return text, true
	}

	if len(integer) > 1 {
		integer = strings.TrimLeft(integer, "0")
		if integer == "" {
			integer = "0"
		}
	}
	if e.cfg.Mode == ModeInteger {
		point, decimals = "", ""
	}

	hasPoint := e.pointIndex >= 0
	if limit := e.cfg.IntegerDigits; limit > 0 && len(integer) > limit {
		straddles := hasPoint && e.start < e.pointIndex && e.end > e.pointIndex
		switch {
		case e.force || straddles:
			integer = integer[len(integer)-limit:]
		case !e.deletion:
			return reject("integer part exceeds %d digits", limit)
		}
	}
	if limit := e.cfg.DecimalDigits; limit > 0 && len(decimals) > limit {
		switch {
		case e.force || !hasPoint || e.start <= e.pointIndex:
			decimals = decimals[:limit]
		case !e.deletion:
			return reject("decimal part exceeds %d digits", limit)
		}
	}
	if limit := e.cfg.TotalLength; limit > 0 && len(integer)+len(decimals) > limit {
		switch {
		case e.force:
			integer, point, decimals = trimTotal(integer, point, decimals, limit)
		case !e.deletion:
			return reject("value exceeds %d digits", limit)
		}
	}

	return sign + integer + point + decimals, true
}

// trimTotal drops decimal digits from the end, then integer digits from the
// front, until at most limit digits remain.
func trimTotal(integer, point, decimals string, limit int) (string, string, string) {
	excess := len(integer) + len(decimals) - limit
	if excess <= len(decimals) {
		decimals = decimals[:len(decimals)-excess]
	} else {
		excess -= len(decimals)
		decimals = ""
		integer = integer[excess:]
	}
	if decimals == "" {
		point = ""
	}
	return integer, point, decimals
}

// enforceRange dispatches on the fail policy when the value crosses a bound.
func (e *edit) enforceRange(text string) (string, bool) {
	cfg := e.cfg
	if text == "" || !(cfg.VerifyMin || cfg.VerifyMax) {
		return text, true
	}
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// bare sign: nothing to compare yet
		return text, true
	}

	switch {
	case cfg.VerifyMin && num < cfg.Min && cfg.Min < 0:
		return applyFail(cfg.MinFail, num, cfg.Min, text, "min")
	case cfg.VerifyMax && num > cfg.Max:
		return applyFail(cfg.MaxFail, num, cfg.Max, text, "max")
	}
	return text, true
}

func applyFail(p FailPolicy, num, bound float64, text, side string) (string, bool) {
	switch p.Action {
	case FailNone:
		return text, true
	case FailClear:
		return "", true
	case FailLimit:
		return formatNumber(bound), true
	case FailCustom:
		out, ok := p.Custom(num)
		if !ok || math.IsNaN(out) || math.IsInf(out, 0) {
			return "", true
		}
		return formatNumber(out), true
	}
	return reject("%s %s bound %s crossed", text, side, formatNumber(bound))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}
