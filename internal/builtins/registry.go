// Package builtins implements the process-wide built-in function and
// constant registry of spec.md §4.C, grounded on the teacher's
// internal/interp/builtins_context.go (a read-mostly, mutex-guarded
// registry populated once at init time and consulted on every
// evaluation) and the Rust original's numcore/src/function/builtin.rs
// (per-function arity and angle-unit classification).
package builtins

import (
	"sync"

	"github.com/cwbudde/exprscript/internal/ast"
	"github.com/cwbudde/exprscript/internal/context"
	evalerrors "github.com/cwbudde/exprscript/internal/errors"
	"github.com/cwbudde/exprscript/internal/value"
)

// Classification controls whether a built-in's arguments/result pass
// through the active Context's angle-unit conversion.
type Classification int

const (
	// Std built-ins never convert angle units.
	Std Classification = iota
	// Trig built-ins convert their (single) argument from the context's
	// angle unit into radians before calling the underlying math.
	Trig
	// InverseTrig built-ins convert their radian-valued result into the
	// context's angle unit.
	InverseTrig
)

// Arity describes how many arguments a built-in accepts: either an exact
// count (Const) or a variable count of one-or-more (Dynamic), mirroring
// spec.md §4.C's "Const(n) | Dynamic (meaning >=1)".
type Arity struct {
	dynamic bool
	n       int
}

// ConstArity requires exactly n arguments.
func ConstArity(n int) Arity { return Arity{n: n} }

// DynamicArity accepts any number of arguments >= 1.
func DynamicArity() Arity { return Arity{dynamic: true, n: 1} }

// Accepts reports whether n arguments satisfy a.
func (a Arity) Accepts(n int) bool {
	if a.dynamic {
		return n >= a.n
	}
	return n == a.n
}

func (a Arity) String() string {
	if a.dynamic {
		return "variable"
	}
	return "fixed"
}

// EvalContext is the narrow interface a HandlerFunc uses to evaluate its
// own argument expressions (lazily, where needed — see branch) and to
// read the active angle unit.
type EvalContext interface {
	Eval(expr ast.Expression) (value.Value, error)
	AngleUnit() context.AngleUnit
}

// HandlerFunc implements a built-in function's behavior. It receives the
// raw, unevaluated argument expressions rather than pre-evaluated Values
// so handlers with non-strict semantics (branch) can choose which
// arguments to evaluate at all.
type HandlerFunc func(ec EvalContext, args []ast.Expression) (value.Value, error)

// FuncRecord is one registered built-in function.
type FuncRecord struct {
	Name           string
	Arity          Arity
	Classification Classification
	Handler        HandlerFunc
}

// Registry is a read-mostly, concurrency-safe set of built-in constants
// and functions. The zero value is usable.
type Registry struct {
	mu        sync.RWMutex
	constants map[string]value.Value
	functions map[string]FuncRecord
}

// global is the process-wide registry every Eval call consults, matching
// the teacher's single package-level builtins instance.
var global = &Registry{
	constants: map[string]value.Value{},
	functions: map[string]FuncRecord{},
}

// Global returns the process-wide built-in registry.
func Global() *Registry { return global }

func (r *Registry) registerConst(name string, v value.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constants[name] = v
}

func (r *Registry) registerFunc(rec FuncRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[rec.Name] = rec
}

// Constant looks up a built-in constant by name.
func (r *Registry) Constant(name string) (value.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.constants[name]
	return v, ok
}

// Function looks up a built-in function record by name.
func (r *Registry) Function(name string) (FuncRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.functions[name]
	return rec, ok
}

// IsConstant reports whether name names a built-in constant.
func (r *Registry) IsConstant(name string) bool {
	_, ok := r.Constant(name)
	return ok
}

// IsFunction reports whether name names a built-in function.
func (r *Registry) IsFunction(name string) bool {
	_, ok := r.Function(name)
	return ok
}

// Call invokes the named built-in function with the given unevaluated
// argument expressions, checking arity first.
func (r *Registry) Call(ec EvalContext, name string, args []ast.Expression) (value.Value, error) {
	rec, ok := r.Function(name)
	if !ok {
		return nil, evalerrors.New(evalerrors.UnknownFunction, "unknown function %q", name)
	}
	if !rec.Arity.Accepts(len(args)) {
		return nil, evalerrors.New(evalerrors.WrongFunctionArgumentsAmount,
			"%q expects a %s number of arguments, got %d", name, rec.Arity, len(args))
	}
	return rec.Handler(ec, args)
}
