package numeric

import (
	"math"
	"reflect"

	"github.com/bethropolis/numfield/internal/logger"
)

// Mode selects which literals a field accepts.
type Mode int

const (
	ModeFloat Mode = iota
	ModeInteger
)

func (m Mode) String() string {
	if m == ModeInteger {
		return "integer"
	}
	return "float"
}

// FailAction is what happens when a value crosses a configured bound.
type FailAction int

const (
	FailStop FailAction = iota // reject the edit
	FailNone                   // accept the out-of-range text as is
	FailClear                  // empty the field
	FailLimit                  // snap to the bound (minValue / maxValue)
	FailCustom                 // ask a callback
)

func (a FailAction) String() string {
	switch a {
	case FailNone:
		return "none"
	case FailClear:
		return "clear"
	case FailLimit:
		return "limit"
	case FailCustom:
		return "custom"
	}
	return "stop"
}

// FailFunc computes a replacement for an out-of-range value.
// Returning ok=false, or a NaN, clears the field.
type FailFunc func(value float64) (replacement float64, ok bool)

// FailPolicy is a resolved MinFail or MaxFail value.
type FailPolicy struct {
	Action FailAction
	Custom FailFunc
	// source identifies the callback for equality: an expression text or a function pointer.
	source string
	fnPtr  uintptr
}

func (p FailPolicy) equal(o FailPolicy) bool {
	if p.Action != o.Action {
		return false
	}
	if p.Action != FailCustom {
		return true
	}
	return p.source == o.source && p.fnPtr == o.fnPtr
}

// Config is the fully resolved validation configuration.
type Config struct {
	Mode Mode

	// Min and Max are NaN when unset.
	Min       float64
	Max       float64
	VerifyMin bool
	VerifyMax bool

	MinFail FailPolicy
	MaxFail FailPolicy

	// Digit caps; 0 means unbounded.
	IntegerDigits int
	DecimalDigits int
	TotalLength   int

	MinusSignAllowed    bool
	DecimalPointAllowed bool
}

// Default is the configuration of an empty option bag: unbounded float, no sign.
func Default() Config {
	return Resolve(Options{})
}

// Equal reports structural equality. NaN bounds compare equal to each other.
func (c Config) Equal(o Config) bool {
	return c.Mode == o.Mode &&
		sameBound(c.Min, o.Min) && sameBound(c.Max, o.Max) &&
		c.VerifyMin == o.VerifyMin && c.VerifyMax == o.VerifyMax &&
		c.MinFail.equal(o.MinFail) && c.MaxFail.equal(o.MaxFail) &&
		c.IntegerDigits == o.IntegerDigits &&
		c.DecimalDigits == o.DecimalDigits &&
		c.TotalLength == o.TotalLength &&
		c.MinusSignAllowed == o.MinusSignAllowed &&
		c.DecimalPointAllowed == o.DecimalPointAllowed
}

func sameBound(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

// Resolve turns a raw option bag into a Config. Malformed fields degrade to
// defaults; Resolve never fails.
func Resolve(opts Options) Config {
	mode := ModeFloat
	if opts.Mode == "integer" {
		mode = ModeInteger
	}
	integer := mode == ModeInteger

	cfg := Config{
		Mode: mode,
		Min:  parseNumber(opts.Min, integer),
		Max:  parseNumber(opts.Max, integer),
	}
	cfg.VerifyMin = !math.IsNaN(cfg.Min)
	cfg.VerifyMax = !math.IsNaN(cfg.Max)
	cfg.MinFail = resolveFail(opts.MinFail, "minValue", cfg)
	cfg.MaxFail = resolveFail(opts.MaxFail, "maxValue", cfg)

	cfg.IntegerDigits, _ = parseCap(opts.Integer)
	decimals, decimalsSet := parseCap(opts.Decimals)
	cfg.DecimalDigits = decimals
	cfg.TotalLength, _ = parseCap(opts.Length)

	cfg.MinusSignAllowed = cfg.VerifyMin && cfg.Min < 0
	// An explicit decimals = 0 forbids the point; unset or invalid leaves it open.
	cfg.DecimalPointAllowed = mode == ModeFloat && (!decimalsSet || decimals > 0)
	return cfg
}

// resolveFail maps a raw fail value onto a policy. limitName is the bound keyword
// valid for this side ("minValue" or "maxValue").
func resolveFail(v any, limitName string, cfg Config) FailPolicy {
	switch f := v.(type) {
	case nil:
		return FailPolicy{Action: FailStop}
	case FailFunc:
		if f == nil {
			return FailPolicy{Action: FailStop}
		}
		return FailPolicy{Action: FailCustom, Custom: f, fnPtr: reflect.ValueOf(f).Pointer()}
	case func(float64) (float64, bool):
		if f == nil {
			return FailPolicy{Action: FailStop}
		}
		return FailPolicy{Action: FailCustom, Custom: f, fnPtr: reflect.ValueOf(f).Pointer()}
	case func(float64) float64:
		if f == nil {
			return FailPolicy{Action: FailStop}
		}
		return FailPolicy{
			Action: FailCustom,
			Custom: func(value float64) (float64, bool) { return f(value), true },
			fnPtr:  reflect.ValueOf(f).Pointer(),
		}
	case string:
		switch f {
		case "none":
			return FailPolicy{Action: FailNone}
		case "stop":
			return FailPolicy{Action: FailStop}
		case "clear":
			return FailPolicy{Action: FailClear}
		case limitName:
			return FailPolicy{Action: FailLimit}
		}
		if isExpression(f) {
			fn, err := compileFailExpr(f, cfg.Min, cfg.Max)
			if err != nil {
				logger.Warnf("numeric: fail expression %q rejected, falling back to stop: %v", f, err)
				return FailPolicy{Action: FailStop}
			}
			return FailPolicy{Action: FailCustom, Custom: fn, source: f}
		}
	}
	return FailPolicy{Action: FailStop}
}
