// Package interp implements the request interpreter and evaluator of
// spec.md §4.I / §4.E: turning a token stream into a Request (Evaluation,
// VarDeclaration, or FuncDeclaration) and then executing it against a
// Context. Grounded on the teacher's internal/interp package (the
// tree-walking Eval with an Environment parameter) and the Rust
// original's numcore/src/interpreter.rs request-dispatch shape.
package interp

import (
	"github.com/cwbudde/exprscript/internal/ast"
	"github.com/cwbudde/exprscript/internal/builtins"
	"github.com/cwbudde/exprscript/internal/context"
	evalerrors "github.com/cwbudde/exprscript/internal/errors"
	"github.com/cwbudde/exprscript/internal/lexer"
	"github.com/cwbudde/exprscript/internal/token"
	"github.com/cwbudde/exprscript/internal/value"
)

// Evaluator walks an Expression tree, resolving Var/FuncExpr nodes
// against the built-in registry, the active call scope (user function
// parameters), and a Context's user declarations, in that order.
type Evaluator struct {
	Builtins *builtins.Registry
}

// New returns an Evaluator backed by the process-wide built-in registry.
func New() *Evaluator {
	return &Evaluator{Builtins: builtins.Global()}
}

// Execute dispatches a Request: an Evaluation is evaluated and rounded;
// a VarDeclaration/FuncDeclaration is checked against reserved names and
// registered into ctx, returning Bool(true) on success.
func (e *Evaluator) Execute(req ast.Request, ctx *context.Context) (value.Value, error) {
	switch r := req.(type) {
	case *ast.Evaluation:
		return e.EvalTopLevel(r.Expr, ctx)
	case *ast.VarDeclaration:
		if e.isReserved(r.Name) {
			return nil, evalerrors.New(evalerrors.ReservedVarName, "%q is a reserved name", r.Name)
		}
		ctx.PutVar(r.Name, r.Body)
		return value.Bool{V: true}, nil
	case *ast.FuncDeclaration:
		if e.isReserved(r.Name) {
			return nil, evalerrors.New(evalerrors.ReservedFunctionName, "%q is a reserved name", r.Name)
		}
		ctx.PutFunc(r.Name, r.Params, r.Body)
		return value.Bool{V: true}, nil
	default:
		return nil, evalerrors.New(evalerrors.InternalError, "unknown request type %T", req)
	}
}

func (e *Evaluator) isReserved(name string) bool {
	return e.Builtins.IsConstant(name) || e.Builtins.IsFunction(name)
}

// EvalTopLevel evaluates expr against ctx and applies top-level-only
// rounding to the result (spec.md §4.E: rounding never applies to
// intermediate subexpressions).
func (e *Evaluator) EvalTopLevel(expr ast.Expression, ctx *context.Context) (value.Value, error) {
	v, err := e.eval(expr, ctx, nil, 0)
	if err != nil {
		return nil, err
	}
	return value.Round(v, ctx.Settings.Rounding), nil
}

func (e *Evaluator) eval(expr ast.Expression, ctx *context.Context, scope map[string]value.Value, depth int) (value.Value, error) {
	if depth > ctx.Settings.DepthLimit {
		return nil, evalerrors.New(evalerrors.RecursionDepthLimitReached,
			"recursion exceeded depth limit %d", ctx.Settings.DepthLimit)
	}

	switch n := expr.(type) {
	case *ast.Literal:
		return n.Value, nil

	case *ast.UnionExpr:
		if len(n.Elements) == 1 {
			return e.eval(n.Elements[0], ctx, scope, depth)
		}
		vals := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.eval(el, ctx, scope, depth+1)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return value.Vector{V: vals}, nil

	case *ast.VarExpr:
		return e.evalVar(n, ctx, scope, depth)

	case *ast.FuncExpr:
		return e.evalFunc(n, ctx, scope, depth)

	case *ast.UnaryExpr:
		operand, err := e.eval(n.Operand, ctx, scope, depth+1)
		if err != nil {
			return nil, err
		}
		return applyUnary(n.Op, operand)

	case *ast.BinaryExpr:
		lhs, err := e.eval(n.LHS, ctx, scope, depth+1)
		if err != nil {
			return nil, err
		}
		rhs, err := e.eval(n.RHS, ctx, scope, depth+1)
		if err != nil {
			return nil, err
		}
		return applyBinary(n.Op, lhs, rhs)

	default:
		return nil, evalerrors.New(evalerrors.InternalError, "unknown expression type %T", expr)
	}
}

func (e *Evaluator) evalVar(n *ast.VarExpr, ctx *context.Context, scope map[string]value.Value, depth int) (value.Value, error) {
	if v, ok := e.Builtins.Constant(n.Name); ok {
		return v, nil
	}
	if scope != nil {
		if v, ok := scope[n.Name]; ok {
			return v, nil
		}
	}
	if body, ok := ctx.GetVar(n.Name); ok {
		return e.eval(body, ctx, nil, depth+1)
	}
	if v, err, handled := e.resolveAmbiguous(n.Name, ctx, scope, depth); handled {
		return v, err
	}
	return nil, evalerrors.New(evalerrors.UnknownVar, "unknown variable %q", n.Name)
}

func (e *Evaluator) evalFunc(n *ast.FuncExpr, ctx *context.Context, scope map[string]value.Value, depth int) (value.Value, error) {
	if v, err, ok := e.callFunctionByName(n.Name, n.Args, ctx, scope, depth); ok {
		return v, err
	}
	if v, err, handled := e.resolveAmbiguousFunc(n, ctx, scope, depth); handled {
		return v, err
	}
	return nil, evalerrors.New(evalerrors.UnknownFunction, "unknown function %q", n.Name)
}

// callFunctionByName dispatches a resolved function name (builtin or
// user-declared) against args. ok reports whether name names a function
// at all; a false ok means the caller should try something else before
// reporting UnknownFunction.
func (e *Evaluator) callFunctionByName(name string, args []ast.Expression, ctx *context.Context, scope map[string]value.Value, depth int) (value.Value, error, bool) {
	if _, ok := e.Builtins.Function(name); ok {
		ec := &evalAdapter{e: e, ctx: ctx, scope: scope, depth: depth}
		v, err := e.Builtins.Call(ec, name, args)
		return v, err, true
	}
	if params, body, ok := ctx.GetFunc(name); ok {
		if len(params) != len(args) {
			return nil, evalerrors.New(evalerrors.WrongFunctionArgumentsAmount,
				"%q expects %d argument(s), got %d", name, len(params), len(args)), true
		}
		newScope := make(map[string]value.Value, len(params))
		for i, p := range params {
			v, err := e.eval(args[i], ctx, scope, depth+1)
			if err != nil {
				return nil, err, true
			}
			newScope[p] = v
		}
		v, err := e.eval(body, ctx, newScope, depth+1)
		return v, err, true
	}
	return nil, nil, false
}

// resolveAmbiguous re-splits a Var identifier that failed direct
// resolution into a chain of known variable/constant pieces, multiplied
// together (spec.md §9: the lexer's pass-6 split and this retry share
// lexer.SplitIdentifier). handled reports whether the name was
// recognized as a multi-piece split at all; a false handled means the
// caller should report UnknownVar itself. Only variable/constant pieces
// are considered: a split piece naming a function has no argument list
// to call it with here, so any such match is treated as a failed split,
// not a partial success. resolveAmbiguousFunc is the Function-identifier
// counterpart, which does allow a trailing function piece since it has
// n.Args to apply it to.
func (e *Evaluator) resolveAmbiguous(name string, ctx *context.Context, scope map[string]value.Value, depth int) (value.Value, error, bool) {
	dict := lexer.Dictionaries{
		IsBuiltinConstant: e.Builtins.IsConstant,
		IsUserVariable: func(s string) bool {
			if scope != nil {
				if _, ok := scope[s]; ok {
					return true
				}
			}
			return ctx.HasVar(s)
		},
	}
	tokens, resolved := lexer.SplitIdentifier(name, dict)
	if !resolved || len(tokens) < 2 {
		return nil, nil, false
	}

	var result value.Value
	for i, tok := range tokens {
		v, err, ok := e.lookupSplitPiece(tok.Literal, ctx, scope, depth)
		if err != nil {
			return nil, err, true
		}
		if !ok {
			return nil, nil, false
		}
		if i == 0 {
			result = v
			continue
		}
		product, err := value.Mul(result, v)
		if err != nil {
			return nil, err, true
		}
		result = product
	}
	return result, nil, true
}

func (e *Evaluator) lookupSplitPiece(name string, ctx *context.Context, scope map[string]value.Value, depth int) (value.Value, error, bool) {
	if v, ok := e.Builtins.Constant(name); ok {
		return v, nil, true
	}
	if scope != nil {
		if v, ok := scope[name]; ok {
			return v, nil, true
		}
	}
	if body, ok := ctx.GetVar(name); ok {
		v, err := e.eval(body, ctx, nil, depth+1)
		return v, err, true
	}
	return nil, nil, false
}

// resolveAmbiguousFunc re-splits a Function identifier that failed
// direct resolution (spec.md §4.E / §9: "a Function fragment consumes
// the next fragment as its single argument" generalizes here to the
// trailing fragment consuming n.Args). Every fragment but the last must
// resolve as a variable/constant piece, multiplied together the same
// way resolveAmbiguous does for Var identifiers; the last fragment must
// resolve as a function (builtin or user-declared), called with the
// FuncExpr's original argument list, and its result folded into the
// same product. handled reports whether the split even produced a
// usable shape; a false handled means the caller should report
// UnknownFunction itself.
func (e *Evaluator) resolveAmbiguousFunc(n *ast.FuncExpr, ctx *context.Context, scope map[string]value.Value, depth int) (value.Value, error, bool) {
	dict := lexer.Dictionaries{
		IsBuiltinConstant: e.Builtins.IsConstant,
		IsBuiltinFunction: e.Builtins.IsFunction,
		IsUserFunction:    ctx.HasFunc,
		IsUserVariable: func(s string) bool {
			if scope != nil {
				if _, ok := scope[s]; ok {
					return true
				}
			}
			return ctx.HasVar(s)
		},
	}
	tokens, resolved := lexer.SplitIdentifier(n.Name, dict)
	if !resolved || len(tokens) < 2 {
		return nil, nil, false
	}
	last := tokens[len(tokens)-1]
	if last.IdentKind != token.Function {
		return nil, nil, false
	}

	var result value.Value
	have := false
	for _, tok := range tokens[:len(tokens)-1] {
		v, err, ok := e.lookupSplitPiece(tok.Literal, ctx, scope, depth)
		if err != nil {
			return nil, err, true
		}
		if !ok {
			return nil, nil, false
		}
		if !have {
			result, have = v, true
			continue
		}
		product, err := value.Mul(result, v)
		if err != nil {
			return nil, err, true
		}
		result = product
	}

	fv, err, ok := e.callFunctionByName(last.Literal, n.Args, ctx, scope, depth)
	if !ok {
		return nil, nil, false
	}
	if err != nil {
		return nil, err, true
	}
	if !have {
		return fv, nil, true
	}
	product, err := value.Mul(result, fv)
	if err != nil {
		return nil, err, true
	}
	return product, nil, true
}

func applyUnary(op token.Kind, v value.Value) (value.Value, error) {
	switch op {
	case token.MINUS:
		return value.Neg(v)
	case token.BANG:
		return value.Not(v)
	default:
		return nil, evalerrors.New(evalerrors.NotAnOperator, "%s is not a unary operator", op)
	}
}

func applyBinary(op token.Kind, l, r value.Value) (value.Value, error) {
	switch op {
	case token.PLUS:
		return value.Add(l, r)
	case token.MINUS:
		return value.Sub(l, r)
	case token.STAR:
		return value.Mul(l, r)
	case token.SLASH:
		return value.Div(l, r)
	case token.PERCENT:
		return value.Mod(l, r)
	case token.CARET:
		return value.Pow(l, r)
	case token.LT:
		return value.Lt(l, r)
	case token.GT:
		return value.Gt(l, r)
	case token.LE:
		return value.Le(l, r)
	case token.GE:
		return value.Ge(l, r)
	case token.EQ:
		return value.Eq(l, r)
	case token.NE:
		return value.Ne(l, r)
	case token.AND:
		return value.And(l, r)
	case token.OR:
		return value.Or(l, r)
	default:
		return nil, evalerrors.New(evalerrors.NotAnOperator, "%s is not valid outside a top-level declaration", op)
	}
}

// evalAdapter lets a builtins.HandlerFunc evaluate its own raw argument
// expressions (lazily, where it chooses) and read the active angle unit,
// without exposing the rest of Evaluator's internals.
type evalAdapter struct {
	e     *Evaluator
	ctx   *context.Context
	scope map[string]value.Value
	depth int
}

func (a *evalAdapter) Eval(expr ast.Expression) (value.Value, error) {
	return a.e.eval(expr, a.ctx, a.scope, a.depth+1)
}

func (a *evalAdapter) AngleUnit() context.AngleUnit {
	return a.ctx.Settings.AngleUnit
}
