package interp

import (
	"github.com/cwbudde/exprscript/internal/ast"
	evalerrors "github.com/cwbudde/exprscript/internal/errors"
	"github.com/cwbudde/exprscript/internal/parser"
	"github.com/cwbudde/exprscript/internal/token"
)

// Interpret classifies a tokenized line as an Evaluation, VarDeclaration,
// or FuncDeclaration by scanning for a depth-0 '=' (spec.md §4.I), then
// builds the relevant Expression tree(s) with the tree builder.
func Interpret(stream []token.Token) (ast.Request, error) {
	eqPos, err := findTopLevelAssign(stream)
	if err != nil {
		return nil, err
	}
	if eqPos == -1 {
		expr, err := parser.Build(stream)
		if err != nil {
			return nil, err
		}
		return &ast.Evaluation{Expr: expr}, nil
	}

	lhs, rhs := stream[:eqPos], stream[eqPos+1:]

	body, err := parser.Build(rhs)
	if err != nil {
		return nil, err
	}

	if len(lhs) == 1 && lhs[0].Kind == token.IDENT && lhs[0].IdentKind == token.Var {
		return &ast.VarDeclaration{Name: lhs[0].Literal, Body: body}, nil
	}

	if name, params, ok := parseFuncHeader(lhs); ok {
		return &ast.FuncDeclaration{Name: name, Params: params, Body: body}, nil
	}

	return nil, evalerrors.New(evalerrors.InvalidDeclaration, "left-hand side of '=' is not a valid variable or function declaration")
}

// findTopLevelAssign scans the whole stream for '=' tokens. Exactly one
// '=' at depth 0 classifies the line as a declaration; any '=' at
// non-zero depth, or more than one at depth 0, is malformed (spec.md
// §4.I). No '=' at all means the line is a plain Evaluation.
func findTopLevelAssign(stream []token.Token) (int, error) {
	depth := 0
	pos := -1
	count := 0
	for i, tok := range stream {
		switch tok.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.ASSIGN:
			if depth != 0 {
				return -1, evalerrors.New(evalerrors.InvalidTokenPosition, "'=' may not appear inside brackets")
			}
			count++
			pos = i
		}
	}
	if count > 1 {
		return -1, evalerrors.New(evalerrors.InvalidTokenPosition, "an expression may contain at most one top-level '='")
	}
	if count == 0 {
		return -1, nil
	}
	return pos, nil
}

// parseFuncHeader recognizes "name ( param, param, ... )" where name is
// an Identifier(Function) and every parameter is an Identifier(Var).
func parseFuncHeader(lhs []token.Token) (name string, params []string, ok bool) {
	if len(lhs) < 3 {
		return "", nil, false
	}
	if lhs[0].Kind != token.IDENT || lhs[0].IdentKind != token.Function {
		return "", nil, false
	}
	if lhs[1].Kind != token.LPAREN || lhs[len(lhs)-1].Kind != token.RPAREN {
		return "", nil, false
	}
	inner := lhs[2 : len(lhs)-1]
	if len(inner) == 0 {
		return lhs[0].Literal, nil, true
	}

	var paramNames []string
	start := 0
	for i := 0; i <= len(inner); i++ {
		if i == len(inner) || inner[i].Kind == token.COMMA {
			span := inner[start:i]
			if len(span) != 1 || span[0].Kind != token.IDENT || span[0].IdentKind != token.Var {
				return "", nil, false
			}
			paramNames = append(paramNames, span[0].Literal)
			start = i + 1
		}
	}
	return lhs[0].Literal, paramNames, true
}
