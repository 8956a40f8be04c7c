package builtins

import (
	"math"

	"github.com/cwbudde/exprscript/internal/ast"
	"github.com/cwbudde/exprscript/internal/context"
	"github.com/cwbudde/exprscript/internal/value"
)

func init() {
	registerTrig("sin", math.Sin)
	registerTrig("cos", math.Cos)
	registerTrig("tan", math.Tan)
	registerInverseTrig("asin", math.Asin)
	registerInverseTrig("acos", math.Acos)
	registerInverseTrig("atan", math.Atan)
}

// registerTrig registers a forward trig function: its single argument is
// converted from the context's active angle unit into radians before fn
// is applied.
func registerTrig(name string, fn func(float64) float64) {
	global.registerFunc(FuncRecord{
		Name: name, Arity: ConstArity(1), Classification: Trig,
		Handler: func(ec EvalContext, args []ast.Expression) (value.Value, error) {
			x, err := evalOneFloat(ec, args)
			if err != nil {
				return nil, err
			}
			return value.Float{V: fn(toRadians(x, ec.AngleUnit()))}, nil
		},
	})
}

// registerInverseTrig registers an inverse trig function: fn's radian
// result is converted into the context's active angle unit.
func registerInverseTrig(name string, fn func(float64) float64) {
	global.registerFunc(FuncRecord{
		Name: name, Arity: ConstArity(1), Classification: InverseTrig,
		Handler: func(ec EvalContext, args []ast.Expression) (value.Value, error) {
			x, err := evalOneFloat(ec, args)
			if err != nil {
				return nil, err
			}
			return value.Float{V: fromRadians(fn(x), ec.AngleUnit())}, nil
		},
	})
}

func toRadians(x float64, unit context.AngleUnit) float64 {
	if unit == context.Degree {
		return x * math.Pi / 180
	}
	return x
}

func fromRadians(x float64, unit context.AngleUnit) float64 {
	if unit == context.Degree {
		return x * 180 / math.Pi
	}
	return x
}
