package numeric

import (
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

const exprPrefix = "="

// failEnv is the environment visible to fail expressions. lower and upper are
// the configured bounds (NaN when unset).
type failEnv struct {
	Value float64 `expr:"value"`
	Lower float64 `expr:"lower"`
	Upper float64 `expr:"upper"`
}

func isExpression(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), exprPrefix)
}

// compileFailExpr builds a FailFunc from an expression such as
// "= value < lower ? lower : value". The expression must evaluate to a number.
func compileFailExpr(src string, lower, upper float64) (FailFunc, error) {
	body := strings.TrimPrefix(strings.TrimSpace(src), exprPrefix)
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("empty expression")
	}
	program, err := expr.Compile(body, expr.Env(failEnv{}))
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return func(value float64) (float64, bool) {
		return runFailExpr(program, failEnv{Value: value, Lower: lower, Upper: upper})
	}, nil
}

func runFailExpr(program *vm.Program, env failEnv) (float64, bool) {
	out, err := expr.Run(program, env)
	if err != nil {
		return math.NaN(), false
	}
	switch n := out.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return math.NaN(), false
}
