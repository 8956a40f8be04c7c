// Package value implements the tagged numeric Value of spec.md §3/§4.V:
// Bool, Int, Float, Complex and Vector, plus the promotion, broadcasting
// and casting rules that give the interpreter its "dimension-lifted"
// arithmetic. The interface shape (Type()/String() on every variant)
// mirrors the teacher's internal/interp/value.go Value interface; the
// promotion algorithm itself is grounded on
// _examples/original_source/src-tauri/numcore/src/{value,operators}/mod.rs.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	evalerrors "github.com/cwbudde/exprscript/internal/errors"
)

// Value is the interface every concrete numeric variant implements.
type Value interface {
	// Type returns the value's kind name, e.g. "Int", "Vector".
	Type() string
	// String returns the value's textual representation.
	String() string
	// complexity returns the promotion rank used by Highest/convert.
	complexity() int
}

// Complexity order: Bool < Int < Float < Complex < Vector (spec.md §3).
const (
	complexityBool = iota
	complexityInt
	complexityFloat
	complexityComplex
	complexityVector
)

// Bool is the boolean variant.
type Bool struct{ V bool }

func (Bool) Type() string     { return "Bool" }
func (b Bool) complexity() int { return complexityBool }
func (b Bool) String() string {
	if b.V {
		return "true"
	}
	return "false"
}

// Int is the 64-bit signed integer variant.
type Int struct{ V int64 }

func (Int) Type() string      { return "Int" }
func (i Int) complexity() int { return complexityInt }
func (i Int) String() string  { return strconv.FormatInt(i.V, 10) }

// Float is the 64-bit IEEE-754 variant.
type Float struct{ V float64 }

func (Float) Type() string      { return "Float" }
func (f Float) complexity() int { return complexityFloat }
func (f Float) String() string  { return strconv.FormatFloat(f.V, 'g', -1, 64) }

// Complex is a pair of floats (real, imaginary), backed by Go's builtin
// complex128 rather than a hand-rolled pair, per the Rust original's
// ComplexValue = Complex64 realized with the host language's native
// complex type.
type Complex struct{ V complex128 }

func (Complex) Type() string      { return "Complex" }
func (c Complex) complexity() int { return complexityComplex }
func (c Complex) String() string {
	re, im := real(c.V), imag(c.V)
	if im == 0 {
		return strconv.FormatFloat(re, 'g', -1, 64)
	}
	sign := "+"
	if im < 0 {
		sign = "-"
		im = -im
	}
	if re == 0 {
		if sign == "-" {
			return fmt.Sprintf("-%si", strconv.FormatFloat(im, 'g', -1, 64))
		}
		return fmt.Sprintf("%si", strconv.FormatFloat(im, 'g', -1, 64))
	}
	return fmt.Sprintf("%s%s%si", strconv.FormatFloat(re, 'g', -1, 64), sign, strconv.FormatFloat(im, 'g', -1, 64))
}

// Vector is an ordered, finite, owning sequence of Values. It may nest.
type Vector struct{ V []Value }

func (Vector) Type() string      { return "Vector" }
func (v Vector) complexity() int { return complexityVector }
func (v Vector) String() string {
	parts := make([]string, len(v.V))
	for i, e := range v.V {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// highestComplexity returns the highest complexity() among vals.
func highestComplexity(vals ...Value) int {
	highest := complexityBool
	for _, v := range vals {
		if v.complexity() > highest {
			highest = v.complexity()
		}
	}
	return highest
}

func fromComplexity(c int) Value {
	switch c {
	case complexityBool:
		return Bool{}
	case complexityInt:
		return Int{}
	case complexityFloat:
		return Float{}
	case complexityComplex:
		return Complex{}
	default:
		return Vector{}
	}
}

// AsBool casts v to Bool. Fails if v is Int/Float/Complex outside {0,1}
// (after stripping a zero fractional/imaginary part), per spec.md §4.V.
func AsBool(v Value) (bool, error) {
	switch t := v.(type) {
	case Bool:
		return t.V, nil
	case Int:
		switch t.V {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return false, castErr(v, "Bool")
		}
	default:
		i, err := AsInt(v)
		if err != nil {
			return false, castErr(v, "Bool")
		}
		return AsBool(Int{V: i})
	}
}

// AsInt casts v to Int. Fails on a non-zero fractional/imaginary part.
func AsInt(v Value) (int64, error) {
	switch t := v.(type) {
	case Int:
		return t.V, nil
	case Bool:
		if t.V {
			return 1, nil
		}
		return 0, nil
	case Float:
		if t.V == math.Trunc(t.V) {
			return int64(t.V), nil
		}
		return 0, castErr(v, "Int")
	default:
		f, err := AsFloat(v)
		if err != nil {
			return 0, castErr(v, "Int")
		}
		return AsInt(Float{V: f})
	}
}

// AsFloat casts v to Float. Fails on a non-zero imaginary part and on any
// Vector, including a length-1 one.
func AsFloat(v Value) (float64, error) {
	switch t := v.(type) {
	case Float:
		return t.V, nil
	case Int:
		return float64(t.V), nil
	case Bool:
		if t.V {
			return 1, nil
		}
		return 0, nil
	case Complex:
		if imag(t.V) == 0 {
			return real(t.V), nil
		}
		return 0, castErr(v, "Float")
	default:
		return 0, castErr(v, "Float")
	}
}

// AsComplex casts v to Complex. Always succeeds for scalars; for a
// length-1 Vector it recurses on the element.
func AsComplex(v Value) (complex128, error) {
	switch t := v.(type) {
	case Complex:
		return t.V, nil
	case Float:
		return complex(t.V, 0), nil
	case Int:
		return complex(float64(t.V), 0), nil
	case Bool:
		if t.V {
			return complex(1, 0), nil
		}
		return complex(0, 0), nil
	case Vector:
		if len(t.V) == 1 {
			return AsComplex(t.V[0])
		}
		return 0, castErr(v, "Complex")
	default:
		return 0, castErr(v, "Complex")
	}
}

// AsVector casts v to Vector. Always succeeds: a scalar becomes a
// length-1 vector, per spec.md §4.V.
func AsVector(v Value) Vector {
	if vec, ok := v.(Vector); ok {
		return vec
	}
	return Vector{V: []Value{v}}
}

// AsType converts v to the variant named by target ("Bool", "Int",
// "Float", "Complex", "Vector").
func AsType(v Value, target string) (Value, error) {
	switch target {
	case "Bool":
		b, err := AsBool(v)
		if err != nil {
			return nil, err
		}
		return Bool{V: b}, nil
	case "Int":
		i, err := AsInt(v)
		if err != nil {
			return nil, err
		}
		return Int{V: i}, nil
	case "Float":
		f, err := AsFloat(v)
		if err != nil {
			return nil, err
		}
		return Float{V: f}, nil
	case "Complex":
		c, err := AsComplex(v)
		if err != nil {
			return nil, err
		}
		return Complex{V: c}, nil
	case "Vector":
		return AsVector(v), nil
	default:
		return nil, evalerrors.New(evalerrors.InternalError, "unknown target type %q", target)
	}
}

// convertTo converts v to the variant of the given complexity rank with a
// single AsType cast; callers only ever widen, which AsType always admits
// for scalars.
func convertTo(v Value, complexity int) (Value, error) {
	return AsType(v, fromComplexity(complexity).Type())
}

// demote attempts a lossless demotion of v back toward the complexity of
// target; returns v unchanged if demotion would be lossy, per spec.md
// §4.V ("demotion fails silently").
func demote(v Value, targetComplexity int) Value {
	for v.complexity() > targetComplexity {
		var demoted Value
		var err error
		switch v.complexity() {
		case complexityInt:
			return v // Int is the floor for numeric demotion
		case complexityFloat:
			f := v.(Float)
			if f.V == math.Trunc(f.V) && !math.IsInf(f.V, 0) {
				demoted = Int{V: int64(f.V)}
			} else {
				return v
			}
		case complexityComplex:
			c := v.(Complex)
			if imag(c.V) == 0 {
				demoted = Float{V: real(c.V)}
			} else {
				return v
			}
		case complexityVector:
			vec := v.(Vector)
			if len(vec.V) == 1 {
				demoted = vec.V[0]
			} else {
				return v
			}
		default:
			return v
		}
		if err != nil {
			return v
		}
		v = demoted
	}
	return v
}

func castErr(v Value, to string) error {
	return evalerrors.New(evalerrors.FailedCast, "cannot cast %s %s to %s", v.Type(), v.String(), to)
}
