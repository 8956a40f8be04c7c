package interp

import (
	"testing"

	"github.com/cwbudde/exprscript/internal/ast"
	"github.com/cwbudde/exprscript/internal/builtins"
	"github.com/cwbudde/exprscript/internal/context"
	evalerrors "github.com/cwbudde/exprscript/internal/errors"
	"github.com/cwbudde/exprscript/internal/lexer"
	"github.com/cwbudde/exprscript/internal/value"
)

func dictFor(ctx *context.Context) lexer.Dictionaries {
	reg := builtins.Global()
	return lexer.Dictionaries{
		IsBuiltinFunction: reg.IsFunction,
		IsBuiltinConstant: reg.IsConstant,
		IsUserFunction:    ctx.HasFunc,
		IsUserVariable:    ctx.HasVar,
	}
}

func interpret(t *testing.T, src string, ctx *context.Context) ast.Request {
	t.Helper()
	stream, err := lexer.Tokenize(src, dictFor(ctx))
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	req, err := Interpret(stream)
	if err != nil {
		t.Fatalf("Interpret(%q): %v", src, err)
	}
	return req
}

func run(t *testing.T, src string, ctx *context.Context) (float64, error) {
	t.Helper()
	stream, err := lexer.Tokenize(src, dictFor(ctx))
	if err != nil {
		return 0, err
	}
	req, err := Interpret(stream)
	if err != nil {
		return 0, err
	}
	v, err := New().Execute(req, ctx)
	if err != nil {
		return 0, err
	}
	return value.AsFloat(v)
}

func TestInterpretRecognizesVarDeclaration(t *testing.T) {
	ctx := context.New()
	req := interpret(t, "x=5", ctx)
	if _, ok := req.(*ast.VarDeclaration); !ok {
		t.Errorf("Interpret(\"x=5\") = %T, want *ast.VarDeclaration", req)
	}
}

func TestInterpretRecognizesFuncDeclaration(t *testing.T) {
	ctx := context.New()
	req := interpret(t, "f(x)=x+1", ctx)
	fd, ok := req.(*ast.FuncDeclaration)
	if !ok || fd.Name != "f" || len(fd.Params) != 1 {
		t.Errorf("Interpret(\"f(x)=x+1\") = %+v, want FuncDeclaration(f, [x])", req)
	}
}

func TestInterpretRecognizesEvaluation(t *testing.T) {
	ctx := context.New()
	req := interpret(t, "1+2", ctx)
	if _, ok := req.(*ast.Evaluation); !ok {
		t.Errorf("Interpret(\"1+2\") = %T, want *ast.Evaluation", req)
	}
}

func TestEndToEndVarDeclarationThenUse(t *testing.T) {
	ctx := context.New()
	if _, err := run(t, "x=5", ctx); err != nil {
		t.Fatalf("declaring x: %v", err)
	}
	got, err := run(t, "x*2", ctx)
	if err != nil {
		t.Fatalf("using x: %v", err)
	}
	if got != 10 {
		t.Errorf("x*2 after x=5: got %v, want 10", got)
	}
}

func TestEndToEndFuncDeclarationThenCall(t *testing.T) {
	ctx := context.New()
	if _, err := run(t, "f(x)=x^2+1", ctx); err != nil {
		t.Fatalf("declaring f: %v", err)
	}
	got, err := run(t, "f(3)", ctx)
	if err != nil {
		t.Fatalf("calling f: %v", err)
	}
	if got != 10 {
		t.Errorf("f(3) after f(x)=x^2+1: got %v, want 10", got)
	}
}

func TestBuiltinsShadowUserDeclarations(t *testing.T) {
	// A user cannot redeclare a builtin name: isReserved rejects it
	// before it ever reaches scope/context resolution order.
	ctx := context.New()
	if _, err := run(t, "pi=3", ctx); err == nil {
		t.Error("redeclaring 'pi' should fail: reserved builtin name")
	}
	if _, err := run(t, "sin(x)=x", ctx); err == nil {
		t.Error("redeclaring 'sin' should fail: reserved builtin name")
	}
}

func TestRecursionDepthLimitReached(t *testing.T) {
	ctx := context.New()
	ctx.Settings.DepthLimit = 3
	if _, err := run(t, "f(x)=f(x)", ctx); err != nil {
		t.Fatalf("declaring recursive f: %v", err)
	}
	if _, err := run(t, "f(1)", ctx); err == nil {
		t.Error("infinitely recursive call should fail with a depth-limit error")
	}
}

func TestWrongArgumentCountFails(t *testing.T) {
	ctx := context.New()
	if _, err := run(t, "f(x,y)=x+y", ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "f(1)", ctx); err == nil {
		t.Error("f(1) should fail: f expects 2 arguments")
	}
}

func TestUnknownVariableFails(t *testing.T) {
	ctx := context.New()
	if _, err := run(t, "q", ctx); err == nil {
		t.Error("evaluating an unknown variable should fail")
	}
}

func TestMultipleTopLevelAssignsFails(t *testing.T) {
	ctx := context.New()
	_, err := run(t, "a=b=c", ctx)
	if !evalerrors.Is(err, evalerrors.InvalidTokenPosition) {
		t.Errorf("a=b=c: got %v, want InvalidTokenPosition", err)
	}
}

func TestAssignInsideBracketsFails(t *testing.T) {
	ctx := context.New()
	_, err := run(t, "(x=5)", ctx)
	if !evalerrors.Is(err, evalerrors.InvalidTokenPosition) {
		t.Errorf("(x=5): got %v, want InvalidTokenPosition", err)
	}
}

// TestFunctionNameAmbiguousSplitAppliesArgsToTrailingFunction exercises
// resolveAmbiguousFunc directly: "xcos" inside g's body is lexed before
// x exists as anything but a future parameter name, so it is predicted
// as a single unresolved Function identifier at lex time, and only
// resolveAmbiguousFunc's split-at-eval-time (using the call-local scope)
// recovers "x * cos(0)".
func TestFunctionNameAmbiguousSplitAppliesArgsToTrailingFunction(t *testing.T) {
	ctx := context.New()
	if _, err := run(t, "g(x)=xcos(0)", ctx); err != nil {
		t.Fatal(err)
	}
	got, err := run(t, "g(7)", ctx)
	if err != nil {
		t.Fatalf("g(7) with body xcos(0): %v", err)
	}
	if got != 7 {
		t.Errorf("g(7) = %v, want 7 (7*cos(0))", got)
	}
}
