package parser

import (
	"testing"

	"github.com/cwbudde/exprscript/internal/ast"
	"github.com/cwbudde/exprscript/internal/lexer"
	"github.com/cwbudde/exprscript/internal/token"
)

func dict() lexer.Dictionaries {
	funcs := map[string]bool{"sin": true, "cos": true}
	consts := map[string]bool{"pi": true, "e": true}
	return lexer.Dictionaries{
		IsBuiltinFunction: func(s string) bool { return funcs[s] },
		IsBuiltinConstant: func(s string) bool { return consts[s] },
	}
}

func build(t *testing.T, src string) ast.Expression {
	t.Helper()
	toks, err := lexer.Tokenize(src, dict())
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	expr, err := Build(toks)
	if err != nil {
		t.Fatalf("Build(%q): %v", src, err)
	}
	return expr
}

func TestBuildLeadingUnaryMinus(t *testing.T) {
	expr := build(t, "-x^2")
	un, ok := expr.(*ast.UnaryExpr)
	if !ok || un.Op != token.MINUS {
		t.Fatalf("-x^2 should parse to a unary minus, got %T", expr)
	}
	bin, ok := un.Operand.(*ast.BinaryExpr)
	if !ok || bin.Op != token.CARET {
		t.Fatalf("operand of -x^2 should be x^2, got %T", un.Operand)
	}
}

func TestBuildPrecedence(t *testing.T) {
	// 1+2*3 should group as 1+(2*3), i.e. the root is '+'.
	expr := build(t, "1+2*3")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || bin.Op != token.PLUS {
		t.Fatalf("1+2*3 root should be '+', got %T", expr)
	}
	rhs, ok := bin.RHS.(*ast.BinaryExpr)
	if !ok || rhs.Op != token.STAR {
		t.Fatalf("rhs of 1+2*3 should be 2*3, got %T", bin.RHS)
	}
}

func TestBuildLeftAssociativeChain(t *testing.T) {
	// 2-1-3 should group as (2-1)-3: root is the rightmost '-'.
	expr := build(t, "2-1-3")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || bin.Op != token.MINUS {
		t.Fatalf("2-1-3 root should be '-', got %T", expr)
	}
	lit, ok := bin.RHS.(*ast.Literal)
	if !ok || lit.Value.String() != "3" {
		t.Fatalf("rhs of root should be literal 3, got %v", bin.RHS)
	}
	lhs, ok := bin.LHS.(*ast.BinaryExpr)
	if !ok || lhs.Op != token.MINUS {
		t.Fatalf("lhs of root should be 2-1, got %T", bin.LHS)
	}
}

func TestBuildCommaProducesFlatUnion(t *testing.T) {
	expr := build(t, "(1,2,3)")
	u, ok := expr.(*ast.UnionExpr)
	if !ok {
		t.Fatalf("(1,2,3) should build a Union, got %T", expr)
	}
	if len(u.Elements) != 3 {
		t.Fatalf("Union should have 3 flattened elements, got %d", len(u.Elements))
	}
}

func TestBuildFunctionCallSingleArgWraps(t *testing.T) {
	expr := build(t, "sin(x)")
	fn, ok := expr.(*ast.FuncExpr)
	if !ok || fn.Name != "sin" {
		t.Fatalf("sin(x) should build a FuncExpr, got %T", expr)
	}
	if len(fn.Args) != 1 {
		t.Fatalf("sin(x) should have exactly one argument, got %d", len(fn.Args))
	}
}

func TestBuildFunctionCallMultiArg(t *testing.T) {
	expr := build(t, "cos(1,2)")
	fn, ok := expr.(*ast.FuncExpr)
	if !ok || fn.Name != "cos" {
		t.Fatalf("cos(1,2) should build a FuncExpr, got %T", expr)
	}
	if len(fn.Args) != 2 {
		t.Fatalf("cos(1,2) should have two arguments, got %d", len(fn.Args))
	}
}

func TestBuildEmptyInputIsZero(t *testing.T) {
	toks, err := lexer.Tokenize("", dict())
	if err != nil {
		t.Fatal(err)
	}
	expr, err := Build(toks)
	if err != nil {
		t.Fatal(err)
	}
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Value.String() != "0" {
		t.Errorf("empty input should build Literal(0), got %v", expr)
	}
}

func TestBuildMissingClosingBracket(t *testing.T) {
	toks, err := lexer.Tokenize("(1+2", dict())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build(toks); err == nil {
		t.Error("(1+2 should fail: missing closing bracket")
	}
}

func TestBuildUnmatchedClosingBracket(t *testing.T) {
	toks, err := lexer.Tokenize("1+2)", dict())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build(toks); err == nil {
		t.Error("1+2) should fail: unmatched closing bracket")
	}
}
