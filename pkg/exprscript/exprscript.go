// Package exprscript is the public facade over the expression pipeline:
// lexer -> tree builder -> request interpreter -> evaluator. It mirrors
// the teacher's pkg/dwscript facade, which wraps the heavier internal/
// packages behind three entry points appropriate to how a caller wants
// declarations to interact with a shared Context (spec.md §6).
package exprscript

import (
	"github.com/cwbudde/exprscript/internal/ast"
	"github.com/cwbudde/exprscript/internal/builtins"
	"github.com/cwbudde/exprscript/internal/context"
	"github.com/cwbudde/exprscript/internal/interp"
	"github.com/cwbudde/exprscript/internal/lexer"
	"github.com/cwbudde/exprscript/internal/token"
	"github.com/cwbudde/exprscript/internal/value"
)

// Value is the tagged numeric result type: Bool, Int, Float, Complex, or
// Vector.
type Value = value.Value

// Context holds user-declared variables/functions and evaluation
// Settings across a sequence of Eval calls.
type Context = context.Context

// Settings controls rounding, angle unit, and recursion depth.
type Settings = context.Settings

// NewContext returns an empty Context with spec-default Settings.
func NewContext() *Context { return context.New() }

// DefaultSettings returns the spec-mandated defaults: Round(8), Radian,
// Limit(49).
func DefaultSettings() Settings { return context.DefaultSettings() }

// Eval evaluates a single expression with a fresh, throwaway Context. It
// cannot participate in declarations across calls; use
// EvalWithMutableContext for a REPL-style session.
func Eval(input string) (Value, error) {
	return EvalWithStaticContext(input, context.New())
}

// EvalWithStaticContext evaluates input against a clone of ctx: any
// VarDeclaration/FuncDeclaration in input is visible only to input
// itself and never written back to the caller's ctx.
func EvalWithStaticContext(input string, ctx *Context) (Value, error) {
	if ctx == nil {
		ctx = context.New()
	}
	return run(input, ctx.Clone())
}

// EvalWithMutableContext evaluates input against ctx directly: a
// successful VarDeclaration/FuncDeclaration is persisted into ctx for
// subsequent calls, the way a REPL session accumulates state.
func EvalWithMutableContext(input string, ctx *Context) (Value, error) {
	if ctx == nil {
		ctx = context.New()
	}
	return run(input, ctx)
}

// Tokenize exposes the lexer alone (cmd/exprscript's "lex" subcommand),
// resolving identifiers against ctx's current declarations.
func Tokenize(input string, ctx *Context) ([]token.Token, error) {
	if ctx == nil {
		ctx = context.New()
	}
	return lexer.Tokenize(input, dictionariesFor(ctx))
}

// BuildRequest exposes the tree builder and request interpreter alone
// (cmd/exprscript's "parse" subcommand), without executing the result.
func BuildRequest(input string, ctx *Context) (ast.Request, error) {
	if ctx == nil {
		ctx = context.New()
	}
	stream, err := lexer.Tokenize(input, dictionariesFor(ctx))
	if err != nil {
		return nil, err
	}
	return interp.Interpret(stream)
}

func run(input string, ctx *Context) (Value, error) {
	stream, err := lexer.Tokenize(input, dictionariesFor(ctx))
	if err != nil {
		return nil, err
	}
	req, err := interp.Interpret(stream)
	if err != nil {
		return nil, err
	}
	return interp.New().Execute(req, ctx)
}

func dictionariesFor(ctx *Context) lexer.Dictionaries {
	reg := builtins.Global()
	return lexer.Dictionaries{
		IsBuiltinFunction: reg.IsFunction,
		IsBuiltinConstant: reg.IsConstant,
		IsUserFunction:    ctx.HasFunc,
		IsUserVariable:    ctx.HasVar,
	}
}
