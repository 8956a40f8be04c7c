package value

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	evalerrors "github.com/cwbudde/exprscript/internal/errors"
)

// binaryOp is a scalar binary operation, called once the operands have
// already been promoted to a common, non-Vector complexity.
type binaryOp func(l, r Value) (Value, error)

// apply implements the convert_and_apply strategy of spec.md §4.V: compute
// the common complexity (floored by floorComplexity), broadcast
// scalar/vector pairs, zip vector/vector pairs (equal length required),
// otherwise convert both operands and invoke op, then demote losslessly
// toward the more specific original operand type.
func apply(name string, l, r Value, floorComplexity int, op binaryOp) (Value, error) {
	highest := highestComplexity(l, r, fromComplexity(floorComplexity))

	if highest == complexityVector || l.complexity() == complexityVector || r.complexity() == complexityVector {
		lv, rv := AsVector(l), AsVector(r)
		switch {
		case len(lv.V) == 1 && len(rv.V) != 1:
			lv = broadcast(lv.V[0], len(rv.V))
		case len(rv.V) == 1 && len(lv.V) != 1:
			rv = broadcast(rv.V[0], len(lv.V))
		}
		if len(lv.V) != len(rv.V) {
			return nil, evalerrors.New(evalerrors.MismatchedArrayLengths,
				"%s: mismatched array lengths %d and %d", name, len(lv.V), len(rv.V))
		}
		out := make([]Value, len(lv.V))
		for i := range lv.V {
			elem, err := apply(name, lv.V[i], rv.V[i], floorComplexity, op)
			if err != nil {
				return nil, err
			}
			out[i] = elem
		}
		return Vector{V: out}, nil
	}

	lc, err := convertTo(l, highest)
	if err != nil {
		return nil, err
	}
	rc, err := convertTo(r, highest)
	if err != nil {
		return nil, err
	}
	result, err := op(lc, rc)
	if err != nil {
		return nil, err
	}
	demoteFloor := l.complexity()
	if r.complexity() < demoteFloor {
		demoteFloor = r.complexity()
	}
	return demote(result, demoteFloor), nil
}

func broadcast(v Value, n int) Vector {
	out := make([]Value, n)
	for i := range out {
		out[i] = v
	}
	return Vector{V: out}
}

// Add implements +, lifted to at least Int.
func Add(l, r Value) (Value, error) {
	return apply("addition", l, r, complexityInt, func(l, r Value) (Value, error) {
		switch l.(type) {
		case Int:
			return Int{V: l.(Int).V + r.(Int).V}, nil
		case Float:
			return Float{V: l.(Float).V + r.(Float).V}, nil
		case Complex:
			return Complex{V: l.(Complex).V + r.(Complex).V}, nil
		default:
			return nil, evalerrors.New(evalerrors.TypeError, "cannot add %s", l.Type())
		}
	})
}

// Sub implements -, lifted to at least Int.
func Sub(l, r Value) (Value, error) {
	return apply("subtraction", l, r, complexityInt, func(l, r Value) (Value, error) {
		switch l.(type) {
		case Int:
			return Int{V: l.(Int).V - r.(Int).V}, nil
		case Float:
			return Float{V: l.(Float).V - r.(Float).V}, nil
		case Complex:
			return Complex{V: l.(Complex).V - r.(Complex).V}, nil
		default:
			return nil, evalerrors.New(evalerrors.TypeError, "cannot subtract %s", l.Type())
		}
	})
}

// Mul implements *, lifted to at least Int.
func Mul(l, r Value) (Value, error) {
	return apply("multiplication", l, r, complexityInt, func(l, r Value) (Value, error) {
		switch l.(type) {
		case Int:
			return Int{V: l.(Int).V * r.(Int).V}, nil
		case Float:
			return Float{V: l.(Float).V * r.(Float).V}, nil
		case Complex:
			return Complex{V: l.(Complex).V * r.(Complex).V}, nil
		default:
			return nil, evalerrors.New(evalerrors.TypeError, "cannot multiply %s", l.Type())
		}
	})
}

// Div implements /, lifted to at least Float (spec.md §4.V: "division
// lifts to at least Float").
func Div(l, r Value) (Value, error) {
	return apply("division", l, r, complexityFloat, func(l, r Value) (Value, error) {
		switch l.(type) {
		case Float:
			rv := r.(Float).V
			if rv == 0 {
				return nil, evalerrors.New(evalerrors.DivideByZero, "division by zero")
			}
			return Float{V: l.(Float).V / rv}, nil
		case Complex:
			rv := r.(Complex).V
			if rv == 0 {
				return nil, evalerrors.New(evalerrors.DivideByZero, "division by zero")
			}
			return Complex{V: l.(Complex).V / rv}, nil
		default:
			return nil, evalerrors.New(evalerrors.TypeError, "cannot divide %s", l.Type())
		}
	})
}

// Mod implements %, lifted to at least Int; defined on Int/Float only.
func Mod(l, r Value) (Value, error) {
	return apply("modulo", l, r, complexityInt, func(l, r Value) (Value, error) {
		switch l.(type) {
		case Int:
			rv := r.(Int).V
			if rv == 0 {
				return nil, evalerrors.New(evalerrors.DivideByZero, "modulo by zero")
			}
			return Int{V: l.(Int).V % rv}, nil
		case Float:
			rv := r.(Float).V
			if rv == 0 {
				return nil, evalerrors.New(evalerrors.DivideByZero, "modulo by zero")
			}
			return Float{V: math.Mod(l.(Float).V, rv)}, nil
		default:
			return nil, evalerrors.New(evalerrors.TypeError, "cannot modulo %s", l.Type())
		}
	})
}

// Pow implements ^ as exp(rhs * ln(lhs)) in the complex plane, demoting
// away a within-tolerance imaginary residue on real inputs, per spec.md
// §4.V.
func Pow(l, r Value) (Value, error) {
	if l.complexity() == complexityVector || r.complexity() == complexityVector {
		return apply("exponentiation", l, r, complexityInt, func(l, r Value) (Value, error) {
			return Pow(l, r)
		})
	}

	lc, err := AsComplex(l)
	if err != nil {
		return nil, err
	}
	rc, err := AsComplex(r)
	if err != nil {
		return nil, err
	}

	result := cmplx.Exp(rc * cmplx.Log(lc))

	const tolerance = 1e-9
	if math.Abs(imag(result)) < tolerance {
		re := real(result)
		if nearest := math.Round(re); math.Abs(re-nearest) < tolerance {
			re = nearest
		}
		realPart := Float{V: re}
		floor := l.complexity()
		if r.complexity() < floor {
			floor = r.complexity()
		}
		if floor < complexityFloat {
			floor = complexityFloat
		}
		return demote(realPart, minInt(floor, complexityInt)), nil
	}
	return Complex{V: result}, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Neg implements unary minus.
func Neg(v Value) (Value, error) {
	switch t := v.(type) {
	case Int:
		return Int{V: -t.V}, nil
	case Float:
		return Float{V: -t.V}, nil
	case Complex:
		return Complex{V: -t.V}, nil
	case Bool:
		i, _ := AsInt(t)
		return Int{V: -i}, nil
	case Vector:
		out := make([]Value, len(t.V))
		for i, e := range t.V {
			neg, err := Neg(e)
			if err != nil {
				return nil, err
			}
			out[i] = neg
		}
		return Vector{V: out}, nil
	default:
		return nil, evalerrors.New(evalerrors.TypeError, "cannot negate %s", v.Type())
	}
}

// Not implements logical negation, lifted to Bool.
func Not(v Value) (Value, error) {
	b, err := AsBool(v)
	if err != nil {
		return nil, err
	}
	return Bool{V: !b}, nil
}

// And implements &&, lifted to Bool.
func And(l, r Value) (Value, error) {
	return apply("logical and", l, r, complexityBool, func(l, r Value) (Value, error) {
		lb, err := AsBool(l)
		if err != nil {
			return nil, err
		}
		rb, err := AsBool(r)
		if err != nil {
			return nil, err
		}
		return Bool{V: lb && rb}, nil
	})
}

// Or implements ||, lifted to Bool.
func Or(l, r Value) (Value, error) {
	return apply("logical or", l, r, complexityBool, func(l, r Value) (Value, error) {
		lb, err := AsBool(l)
		if err != nil {
			return nil, err
		}
		rb, err := AsBool(r)
		if err != nil {
			return nil, err
		}
		return Bool{V: lb || rb}, nil
	})
}

// comparisonOp lifts comparisons to at least Float per spec.md §4.V.
func comparisonOp(name string, l, r Value, cmp func(a, b float64) bool) (Value, error) {
	return apply(name, l, r, complexityFloat, func(l, r Value) (Value, error) {
		lf, err := AsFloat(l)
		if err != nil {
			return nil, err
		}
		rf, err := AsFloat(r)
		if err != nil {
			return nil, err
		}
		return Bool{V: cmp(lf, rf)}, nil
	})
}

func Lt(l, r Value) (Value, error) {
	return comparisonOp("less-than", l, r, func(a, b float64) bool { return a < b })
}

func Gt(l, r Value) (Value, error) {
	return comparisonOp("greater-than", l, r, func(a, b float64) bool { return a > b })
}

func Le(l, r Value) (Value, error) {
	return comparisonOp("less-or-equal", l, r, func(a, b float64) bool { return a <= b })
}

func Ge(l, r Value) (Value, error) {
	return comparisonOp("greater-or-equal", l, r, func(a, b float64) bool { return a >= b })
}

// Eq implements structural equality after promotion; Vector equality
// requires equal length and pointwise equality.
func Eq(l, r Value) (Value, error) {
	return Bool{V: equal(l, r)}, nil
}

// Ne is the negation of Eq.
func Ne(l, r Value) (Value, error) {
	return Bool{V: !equal(l, r)}, nil
}

func equal(l, r Value) bool {
	if lv, ok := l.(Vector); ok {
		rv, ok := r.(Vector)
		if !ok || len(lv.V) != len(rv.V) {
			return false
		}
		for i := range lv.V {
			if !equal(lv.V[i], rv.V[i]) {
				return false
			}
		}
		return true
	}
	if _, ok := r.(Vector); ok {
		return false
	}

	highest := highestComplexity(l, r)
	lc, err := convertTo(l, highest)
	if err != nil {
		return false
	}
	rc, err := convertTo(r, highest)
	if err != nil {
		return false
	}
	switch lv := lc.(type) {
	case Bool:
		return lv.V == rc.(Bool).V
	case Int:
		return lv.V == rc.(Int).V
	case Float:
		return lv.V == rc.(Float).V
	case Complex:
		return lv.V == rc.(Complex).V
	default:
		return false
	}
}

// Round rounds Floats and both Complex components to p decimals
// (clamped to [0,12]); a no-op on Bool/Int; applies element-wise to
// Vectors.
func Round(v Value, p int) Value {
	if p < 0 {
		p = 0
	}
	if p > 12 {
		p = 12
	}
	scale := math.Pow(10, float64(p))
	roundFloat := func(f float64) float64 { return math.Round(f*scale) / scale }

	switch t := v.(type) {
	case Float:
		return Float{V: roundFloat(t.V)}
	case Complex:
		return Complex{V: complex(roundFloat(real(t.V)), roundFloat(imag(t.V)))}
	case Vector:
		out := make([]Value, len(t.V))
		for i, e := range t.V {
			out[i] = Round(e, p)
		}
		return Vector{V: out}
	default:
		return v
	}
}

// FromString parses a merged literal token's payload into a Value, per
// spec.md §4.V: "true"/"false" -> Bool; trailing "i" -> Complex (imag
// only); exactly one "." -> Float; otherwise Int. Two or more dots is a
// tokenization error surfaced earlier by the lexer, but FromString still
// reports it defensively.
func FromString(s string) (Value, error) {
	switch s {
	case "true":
		return Bool{V: true}, nil
	case "false":
		return Bool{V: false}, nil
	}

	if strings.HasSuffix(s, "i") {
		mantissa := strings.TrimSuffix(s, "i")
		if mantissa == "" {
			mantissa = "1"
		}
		f, err := strconv.ParseFloat(mantissa, 64)
		if err != nil {
			return nil, evalerrors.New(evalerrors.FailedParse, "cannot parse %q as a number", s)
		}
		return Complex{V: complex(0, f)}, nil
	}

	dots := strings.Count(s, ".")
	switch dots {
	case 0:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, evalerrors.New(evalerrors.FailedParse, "cannot parse %q as a number", s)
		}
		return Int{V: i}, nil
	case 1:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, evalerrors.New(evalerrors.FailedParse, "cannot parse %q as a number", s)
		}
		return Float{V: f}, nil
	default:
		return nil, evalerrors.NewAt(evalerrors.InvalidTokenPosition, 0, "literal %q has more than one decimal point", s)
	}
}
