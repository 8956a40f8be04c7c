package token

import "testing"

func TestPrecedenceTable(t *testing.T) {
	cases := []struct {
		k    Kind
		want int
	}{
		{CARET, 90},
		{BANG, 80},
		{STAR, 70},
		{SLASH, 70},
		{PERCENT, 70},
		{PLUS, 60},
		{MINUS, 60},
		{LT, 50},
		{LE, 50},
		{GT, 50},
		{GE, 50},
		{EQ, 40},
		{NE, 40},
		{AND, 30},
		{OR, 20},
		{COMMA, 10},
		{ASSIGN, 0},
		{LITERAL, LeafPrecedence},
		{IDENT, LeafPrecedence},
	}
	for _, c := range cases {
		if got := c.k.Precedence(); got != c.want {
			t.Errorf("%s.Precedence() = %d, want %d", c.k, got, c.want)
		}
	}
}

func TestIsBinaryUnary(t *testing.T) {
	if !MINUS.IsBinaryOperator() || !MINUS.IsUnaryOperator() {
		t.Error("MINUS should be both binary and unary")
	}
	if !BANG.IsUnaryOperator() || BANG.IsBinaryOperator() {
		t.Error("BANG should be unary-only")
	}
	if !COMMA.IsBinaryOperator() || COMMA.IsUnaryOperator() {
		t.Error("COMMA should be binary-only")
	}
	if PLUS.IsUnaryOperator() {
		t.Error("PLUS should not be unary")
	}
}

func TestTokenConstructors(t *testing.T) {
	lit := NewLiteral("3.14")
	if lit.Kind != LITERAL || lit.Literal != "3.14" {
		t.Errorf("NewLiteral: got %+v", lit)
	}
	ident := NewIdent("sin", Function)
	if ident.Kind != IDENT || ident.IdentKind != Function || ident.Literal != "sin" {
		t.Errorf("NewIdent: got %+v", ident)
	}
}
