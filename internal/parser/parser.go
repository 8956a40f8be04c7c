// Package parser implements the tree builder of spec.md §4.T: bracket
// balance checking followed by "recursive selection by minimum key" —
// repeatedly picking the token with the lowest (depth, precedence,
// -position) key and recursing on the ranges either side of it. The
// package name and the overall algorithm are grounded directly on
// _examples/original_source/src-tauri/numcore/src/tree/mod.rs
// (check_brackets, sort_node_tokens, create_node,
// get_lowest_precedence_node_in_range), adapted to Go idiom the way the
// teacher structures its own internal/parser package (a flat set of
// package-level functions operating on a token slice).
package parser

import (
	"github.com/cwbudde/exprscript/internal/ast"
	evalerrors "github.com/cwbudde/exprscript/internal/errors"
	"github.com/cwbudde/exprscript/internal/token"
	"github.com/cwbudde/exprscript/internal/value"
)

// nodeInfo annotates a single node-producing token with the position,
// bracket depth, and precedence used to sort candidates (spec.md §4.T).
type nodeInfo struct {
	tok      token.Token
	position int
	depth    int
	prec     int
	used     bool
}

// Build parses a token stream into an expression tree.
func Build(stream []token.Token) (ast.Expression, error) {
	if err := checkBrackets(stream); err != nil {
		return nil, err
	}

	b := &builder{stream: stream, infos: sortNodeTokens(stream)}
	return b.createNode(0, len(stream), true)
}

func checkBrackets(stream []token.Token) error {
	depth := 0
	for _, tok := range stream {
		switch tok.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth < 0 {
				return evalerrors.New(evalerrors.InvalidClosingBracket, "unmatched closing bracket")
			}
		}
	}
	if depth != 0 {
		return evalerrors.New(evalerrors.MissingClosingBracket, "missing %d closing bracket(s)", depth)
	}
	return nil
}

// sortNodeTokens annotates every non-bracket token with its depth and
// precedence, sorted ascending by (depth, precedence, -position) — i.e.
// deepest-last, lowest-precedence-first, rightmost-first on ties.
func sortNodeTokens(stream []token.Token) []*nodeInfo {
	var infos []*nodeInfo
	depth := 0
	for pos, tok := range stream {
		switch tok.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		default:
			prec := tok.Kind.Precedence()
			if tok.Kind == token.IDENT || tok.Kind == token.LITERAL {
				prec = token.LeafPrecedence
			}
			infos = append(infos, &nodeInfo{tok: tok, position: pos, depth: depth, prec: prec})
		}
	}
	// Stable ascending sort by (depth, prec, -position).
	for i := 1; i < len(infos); i++ {
		for j := i; j > 0 && less(infos[j], infos[j-1]); j-- {
			infos[j], infos[j-1] = infos[j-1], infos[j]
		}
	}
	return infos
}

func less(a, b *nodeInfo) bool {
	if a.depth != b.depth {
		return a.depth < b.depth
	}
	if a.prec != b.prec {
		return a.prec < b.prec
	}
	return a.position > b.position // -position ascending == position descending
}

type builder struct {
	stream []token.Token
	infos  []*nodeInfo
}

// pick returns the lowest-key unused candidate whose position lies in
// [start, end), or nil if the range is empty.
func (b *builder) pick(start, end int) *nodeInfo {
	for _, info := range b.infos {
		if info.used || info.position < start || info.position >= end {
			continue
		}
		return info
	}
	return nil
}

// hasCandidate reports whether [start, end) contains any unused
// candidate, used for the binary/unary fallback decision without
// consuming anything.
func (b *builder) hasCandidate(start, end int) bool {
	return b.pick(start, end) != nil
}

func (b *builder) createNode(start, end int, outermost bool) (ast.Expression, error) {
	info := b.pick(start, end)
	if info == nil {
		if outermost {
			return &ast.Literal{Value: value.Int{V: 0}}, nil
		}
		return nil, evalerrors.New(evalerrors.EmptyBrackets, "empty expression inside brackets")
	}
	info.used = true
	tok := info.tok
	pos := info.position

	switch {
	case tok.Kind == token.LITERAL:
		v, err := value.FromString(tok.Literal)
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Token: tok, Value: v}, nil

	case tok.Kind == token.IDENT && tok.IdentKind == token.Var:
		return &ast.VarExpr{Token: tok, Name: tok.Literal}, nil

	case tok.Kind == token.IDENT && tok.IdentKind == token.Function:
		return b.createFuncNode(tok, pos)

	case tok.Kind.IsBinaryOperator() && tok.Kind.IsUnaryOperator():
		return b.createBinaryOrUnary(tok, pos, start, end)

	case tok.Kind.IsBinaryOperator():
		return b.createBinary(tok, pos, start, end)

	case tok.Kind.IsUnaryOperator():
		return b.createUnary(tok, pos, start, end)

	default:
		return nil, evalerrors.New(evalerrors.NotAnOperator, "unexpected token %s", tok.Kind)
	}
}

func (b *builder) createBinary(tok token.Token, pos, start, end int) (ast.Expression, error) {
	if !b.hasCandidate(start, pos) || !b.hasCandidate(pos+1, end) {
		return nil, evalerrors.NewAt(evalerrors.MissingOperatorArgument, pos, "operator %s is missing an argument", tok.Kind)
	}
	lhs, err := b.createNode(start, pos, false)
	if err != nil {
		return nil, err
	}
	rhs, err := b.createNode(pos+1, end, false)
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.COMMA {
		return &ast.UnionExpr{Token: tok, Elements: append(flattenUnion(lhs), flattenUnion(rhs)...)}, nil
	}
	return &ast.BinaryExpr{Token: tok, LHS: lhs, Op: tok.Kind, RHS: rhs}, nil
}

func (b *builder) createUnary(tok token.Token, pos, start, end int) (ast.Expression, error) {
	// Prefix unary: the operand is the (non-empty) range to the right of
	// the operator.
	if !b.hasCandidate(pos+1, end) {
		return nil, evalerrors.NewAt(evalerrors.MissingOperatorArgument, pos, "operator %s is missing an argument", tok.Kind)
	}
	operand, err := b.createNode(pos+1, end, false)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Token: tok, Op: tok.Kind, Operand: operand}, nil
}

// createBinaryOrUnary handles operators that can be read either way
// (only MINUS, per spec.md §3's Unary(op,_) invariant): try binary if
// both sides have a candidate, otherwise fall back to unary using
// whichever side is non-empty.
func (b *builder) createBinaryOrUnary(tok token.Token, pos, start, end int) (ast.Expression, error) {
	leftHas := b.hasCandidate(start, pos)
	rightHas := b.hasCandidate(pos+1, end)

	if leftHas && rightHas {
		lhs, err := b.createNode(start, pos, false)
		if err != nil {
			return nil, err
		}
		rhs, err := b.createNode(pos+1, end, false)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Token: tok, LHS: lhs, Op: tok.Kind, RHS: rhs}, nil
	}

	if rightHas {
		operand, err := b.createNode(pos+1, end, false)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Token: tok, Op: tok.Kind, Operand: operand}, nil
	}
	if leftHas {
		operand, err := b.createNode(start, pos, false)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Token: tok, Op: tok.Kind, Operand: operand}, nil
	}
	return nil, evalerrors.NewAt(evalerrors.MissingOperatorArgument, pos, "operator %s is missing an argument", tok.Kind)
}

func flattenUnion(e ast.Expression) []ast.Expression {
	if u, ok := e.(*ast.UnionExpr); ok {
		return u.Elements
	}
	return []ast.Expression{e}
}

// createFuncNode finds the opening '(' immediately after a Function
// identifier, matches it to its closing ')', and recurses on the
// enclosed range to build the argument list.
func (b *builder) createFuncNode(tok token.Token, pos int) (ast.Expression, error) {
	if pos+1 >= len(b.stream) || b.stream[pos+1].Kind != token.LPAREN {
		return nil, evalerrors.NewAt(evalerrors.MissingFunctionParameters, pos, "function %q has no parameter list", tok.Literal)
	}
	open := pos + 1
	depth := 0
	closeIdx := -1
	for i := open; i < len(b.stream); i++ {
		switch b.stream[i].Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx != -1 {
			break
		}
	}
	if closeIdx == -1 {
		return nil, evalerrors.NewAt(evalerrors.MissingClosingBracket, pos, "unterminated call to %q", tok.Literal)
	}

	argsExpr, err := b.createNode(open+1, closeIdx, false)
	if err != nil {
		return nil, err
	}
	return &ast.FuncExpr{Token: tok, Name: tok.Literal, Args: flattenUnion(argsExpr)}, nil
}
