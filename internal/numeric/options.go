package numeric

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Options is the raw, possibly partial option bag supplied by a host.
// Values are loosely typed: Go numbers, numeric strings or garbage are all accepted
// and degrade to defaults during Resolve.
type Options struct {
	// Mode is "integer" or "float". Anything else means float.
	Mode string
	// Min and Max bound the value. nil or unparsable means unset.
	Min any
	Max any
	// MinFail and MaxFail name the policy applied when a bound is crossed:
	// "none", "stop", "clear", "minValue"/"maxValue", a FailFunc,
	// a func(float64) float64, or an "=" prefixed expression.
	MinFail any
	MaxFail any
	// Integer, Decimals and Length cap integer digits, decimal digits and total digits.
	Integer  any
	Decimals any
	Length   any
}

// Merge overlays raw on top of defaults. Fields set in raw win.
func Merge(defaults, raw Options) Options {
	out := defaults
	if raw.Mode != "" {
		out.Mode = raw.Mode
	}
	if raw.Min != nil {
		out.Min = raw.Min
	}
	if raw.Max != nil {
		out.Max = raw.Max
	}
	if raw.MinFail != nil {
		out.MinFail = raw.MinFail
	}
	if raw.MaxFail != nil {
		out.MaxFail = raw.MaxFail
	}
	if raw.Integer != nil {
		out.Integer = raw.Integer
	}
	if raw.Decimals != nil {
		out.Decimals = raw.Decimals
	}
	if raw.Length != nil {
		out.Length = raw.Length
	}
	return out
}

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// parseNumber reads an option value the way a lenient form field would:
// numbers pass through, strings are parsed by their longest numeric prefix.
// integer truncates toward zero. Unusable values give NaN.
func parseNumber(v any, integer bool) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		f = parseNumericPrefix(n, integer)
	case fmt.Stringer:
		f = parseNumericPrefix(n.String(), integer)
	default:
		return math.NaN()
	}
	if math.IsInf(f, 0) {
		return math.NaN()
	}
	if integer && !math.IsNaN(f) {
		f = math.Trunc(f)
	}
	return f
}

func parseNumericPrefix(s string, integer bool) float64 {
	s = strings.TrimSpace(s)
	re := floatPrefix
	if integer {
		re = intPrefix
	}
	m := re.FindString(s)
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// parseCap resolves a digit cap. Negative, non-numeric or missing values give 0.
// set reports whether v held a usable, non-negative number.
func parseCap(v any) (n int, set bool) {
	f := parseNumber(v, true)
	if math.IsNaN(f) || f < 0 {
		return 0, false
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, true
	}
	return int(f), true
}

// formatNumber renders a float the shortest way that round-trips, without exponent.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
