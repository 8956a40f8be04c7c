// Package ast defines the Expression and Request tree types of spec.md §3.
// The interface shape (every node exposing its originating Token for
// location-aware errors) mirrors the teacher's internal/ast node style
// (go-dws internal/ast.Node / Expression).
package ast

import (
	"strings"

	"github.com/cwbudde/exprscript/internal/token"
	"github.com/cwbudde/exprscript/internal/value"
)

// Expression is the base interface for every node in the expression tree.
type Expression interface {
	// Tok returns the token this node originates from, for error location.
	Tok() token.Token
	// String renders the node for debugging (cmd/exprscript parse output).
	String() string
	expressionNode()
}

// Literal wraps a parsed constant value.
type Literal struct {
	Token token.Token
	Value value.Value
}

func (n *Literal) Tok() token.Token { return n.Token }
func (n *Literal) String() string   { return n.Value.String() }
func (*Literal) expressionNode()    {}

// VarExpr references a variable by name.
type VarExpr struct {
	Token token.Token
	Name  string
}

func (n *VarExpr) Tok() token.Token { return n.Token }
func (n *VarExpr) String() string   { return n.Name }
func (*VarExpr) expressionNode()    {}

// FuncExpr applies a named function to an ordered argument list.
type FuncExpr struct {
	Token token.Token
	Name  string
	Args  []Expression
}

func (n *FuncExpr) Tok() token.Token { return n.Token }
func (n *FuncExpr) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (*FuncExpr) expressionNode() {}

// UnaryExpr is a prefix operator applied to a single operand.
type UnaryExpr struct {
	Token   token.Token
	Op      token.Kind
	Operand Expression
}

func (n *UnaryExpr) Tok() token.Token { return n.Token }
func (n *UnaryExpr) String() string   { return n.Op.String() + n.Operand.String() }
func (*UnaryExpr) expressionNode()    {}

// BinaryExpr is an infix operator applied to two operands.
type BinaryExpr struct {
	Token token.Token
	LHS   Expression
	Op    token.Kind
	RHS   Expression
}

func (n *BinaryExpr) Tok() token.Token { return n.Token }
func (n *BinaryExpr) String() string {
	return "(" + n.LHS.String() + " " + n.Op.String() + " " + n.RHS.String() + ")"
}
func (*BinaryExpr) expressionNode() {}

// UnionExpr is the structural grouping a comma produces (spec.md §3): a
// single-element Union collapses to its element at evaluation time,
// otherwise it evaluates to a Vector.
type UnionExpr struct {
	Token    token.Token
	Elements []Expression
}

func (n *UnionExpr) Tok() token.Token { return n.Token }
func (n *UnionExpr) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
func (*UnionExpr) expressionNode() {}
