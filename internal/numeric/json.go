package numeric

import (
	"github.com/tidwall/gjson"
)

// ParseOptionsJSON reads a loosely typed JSON option bag such as
//
//	{"mode": "float", "min": "-10", "max": 99.5, "decimals": 2, "maxFail": "maxValue"}
//
// Numbers and numeric strings are both accepted. Unknown keys are ignored and a
// malformed document yields empty Options.
func ParseOptionsJSON(doc string) Options {
	var opts Options
	if !gjson.Valid(doc) {
		return opts
	}
	root := gjson.Parse(doc)
	if !root.IsObject() {
		return opts
	}

	if mode := root.Get("mode"); mode.Type == gjson.String {
		opts.Mode = mode.String()
	}
	opts.Min = jsonValue(root.Get("min"))
	opts.Max = jsonValue(root.Get("max"))
	opts.MinFail = jsonValue(root.Get("minFail"))
	opts.MaxFail = jsonValue(root.Get("maxFail"))
	opts.Integer = jsonValue(root.Get("integer"))
	opts.Decimals = jsonValue(root.Get("decimals"))
	opts.Length = jsonValue(root.Get("length"))
	return opts
}

// jsonValue keeps scalars and drops everything else (null, objects, arrays).
func jsonValue(r gjson.Result) any {
	switch r.Type {
	case gjson.Number:
		return r.Float()
	case gjson.String:
		return r.String()
	}
	return nil
}
