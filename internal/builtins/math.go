package builtins

import (
	"math"
	"math/rand"

	"github.com/cwbudde/exprscript/internal/ast"
	evalerrors "github.com/cwbudde/exprscript/internal/errors"
	"github.com/cwbudde/exprscript/internal/value"
)

func init() {
	registerConstants()
	registerStdUnary("sqrt", math.Sqrt)
	registerStdUnary("abs", math.Abs)
	registerStdUnary("floor", math.Floor)
	registerStdUnary("ceil", math.Ceil)
	registerStdUnary("ln", math.Log)
	registerStdUnary("log", math.Log10)
	registerStdUnary("exp", math.Exp)

	global.registerFunc(FuncRecord{
		Name: "pow", Arity: ConstArity(2), Classification: Std,
		Handler: func(ec EvalContext, args []ast.Expression) (value.Value, error) {
			a, b, err := evalTwoFloats(ec, args)
			if err != nil {
				return nil, err
			}
			return value.Float{V: math.Pow(a, b)}, nil
		},
	})

	global.registerFunc(FuncRecord{
		Name: "min", Arity: DynamicArity(), Classification: Std,
		Handler: func(ec EvalContext, args []ast.Expression) (value.Value, error) {
			return reduceFloats(ec, args, math.Min)
		},
	})
	global.registerFunc(FuncRecord{
		Name: "max", Arity: DynamicArity(), Classification: Std,
		Handler: func(ec EvalContext, args []ast.Expression) (value.Value, error) {
			return reduceFloats(ec, args, math.Max)
		},
	})

	global.registerFunc(FuncRecord{
		Name: "rand", Arity: ConstArity(1), Classification: Std,
		Handler: func(ec EvalContext, args []ast.Expression) (value.Value, error) {
			n, err := evalOneFloat(ec, args)
			if err != nil {
				return nil, err
			}
			if n <= 0 {
				return nil, evalerrors.New(evalerrors.TypeError, "rand: upper bound must be positive, got %g", n)
			}
			return value.Float{V: rand.Float64() * n}, nil
		},
	})

	// branch is deliberately non-strict: only the selected arm is
	// evaluated, so side-effect-free but expensive alternatives (e.g. a
	// recursive user function) don't pay for the branch not taken.
	global.registerFunc(FuncRecord{
		Name: "branch", Arity: ConstArity(3), Classification: Std,
		Handler: func(ec EvalContext, args []ast.Expression) (value.Value, error) {
			cond, err := ec.Eval(args[0])
			if err != nil {
				return nil, err
			}
			b, err := value.AsBool(cond)
			if err != nil {
				return nil, err
			}
			if b {
				return ec.Eval(args[1])
			}
			return ec.Eval(args[2])
		},
	})
}

func registerConstants() {
	global.registerConst("pi", value.Float{V: math.Pi})
	global.registerConst("e", value.Float{V: math.E})
}

func registerStdUnary(name string, fn func(float64) float64) {
	global.registerFunc(FuncRecord{
		Name: name, Arity: ConstArity(1), Classification: Std,
		Handler: func(ec EvalContext, args []ast.Expression) (value.Value, error) {
			x, err := evalOneFloat(ec, args)
			if err != nil {
				return nil, err
			}
			return value.Float{V: fn(x)}, nil
		},
	})
}

func evalOneFloat(ec EvalContext, args []ast.Expression) (float64, error) {
	v, err := ec.Eval(args[0])
	if err != nil {
		return 0, err
	}
	return value.AsFloat(v)
}

func evalTwoFloats(ec EvalContext, args []ast.Expression) (float64, float64, error) {
	a, err := ec.Eval(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := ec.Eval(args[1])
	if err != nil {
		return 0, 0, err
	}
	af, err := value.AsFloat(a)
	if err != nil {
		return 0, 0, err
	}
	bf, err := value.AsFloat(b)
	if err != nil {
		return 0, 0, err
	}
	return af, bf, nil
}

func reduceFloats(ec EvalContext, args []ast.Expression, reduce func(a, b float64) float64) (value.Value, error) {
	acc, err := evalOneFloat(ec, args[:1])
	if err != nil {
		return nil, err
	}
	for _, a := range args[1:] {
		v, err := ec.Eval(a)
		if err != nil {
			return nil, err
		}
		f, err := value.AsFloat(v)
		if err != nil {
			return nil, err
		}
		acc = reduce(acc, f)
	}
	return value.Float{V: acc}, nil
}
