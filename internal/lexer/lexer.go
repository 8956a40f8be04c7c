// Package lexer implements the nine-pass tokenization pipeline of
// spec.md §4.L. Each pass consumes a token stream and yields one;
// Tokenize chains them in order. The pass-pipeline structure mirrors
// the teacher's internal/lexer package (go-dws), and the pass contents
// are grounded directly on the original Rust
// token::build_stream/categorize_identifiers/join_literals pipeline in
// _examples/original_source/src-tauri/numcore/src/token/mod.rs, extended
// with the distilled spec's composite-operator, contextual-split,
// unknown-prediction, and implicit-bracket passes.
package lexer

import (
	"unicode"

	evalerrors "github.com/cwbudde/exprscript/internal/errors"
	"github.com/cwbudde/exprscript/internal/token"
)

// Tokenize runs the full nine-pass pipeline over input and returns the
// resulting token stream, context-sensitively classifying identifiers
// against dict along the way.
func Tokenize(input string, dict Dictionaries) ([]token.Token, error) {
	s := stripSpaces(input)

	stream, err := classifyChars(s)
	if err != nil {
		return nil, err
	}

	stream = joinComposites(stream)
	stream = joinIdentifierRuns(stream)

	stream, err = joinNumericLiterals(stream)
	if err != nil {
		return nil, err
	}

	stream = splitAmbiguousIdentifiers(stream, dict)
	stream = predictUnknownIdentifiers(stream)

	stream, err = insertImplicitBrackets(stream)
	if err != nil {
		return nil, err
	}

	stream = insertImplicitMultiplication(stream)

	return stream, nil
}

// Pass 1: strip spaces.
func stripSpaces(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r != ' ' {
			out = append(out, r)
		}
	}
	return string(out)
}

var singleCharOps = map[rune]token.Kind{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	',': token.COMMA,
	'=': token.ASSIGN,
	'^': token.CARET,
	'%': token.PERCENT,
	'<': token.LT,
	'>': token.GT,
	'&': token.AMP,
	'|': token.PIPE,
	'!': token.BANG,
	'(': token.LPAREN,
	')': token.RPAREN,
	'.': token.DOT,
}

func isSingleCharOp(r rune) bool {
	_, ok := singleCharOps[r]
	return ok
}

// Pass 2: single-character classification.
func classifyChars(s string) ([]token.Token, error) {
	var out []token.Token
	for i, r := range s {
		switch {
		case isSingleCharOp(r):
			out = append(out, token.New(singleCharOps[r], 1))
		case unicode.IsDigit(r):
			out = append(out, token.NewLiteral(string(r)))
		case unicode.IsLetter(r):
			out = append(out, token.NewIdent(string(r), token.Unknown))
		default:
			return nil, evalerrors.NewAt(evalerrors.UnknownToken, i, "unknown character %q", r)
		}
	}
	return out, nil
}

// Pass 3: join composite operators (<=, >=, ==, !=, &&, ||).
func joinComposites(stream []token.Token) []token.Token {
	var out []token.Token
	i := 0
	for i < len(stream) {
		if i+1 < len(stream) {
			pair, composite, ok := matchComposite(stream[i].Kind, stream[i+1].Kind)
			if ok {
				out = append(out, token.New(composite, 2))
				i += 2
				_ = pair
				continue
			}
		}
		out = append(out, stream[i])
		i++
	}
	return out
}

func matchComposite(a, b token.Kind) (string, token.Kind, bool) {
	switch {
	case a == token.LT && b == token.ASSIGN:
		return "<=", token.LE, true
	case a == token.GT && b == token.ASSIGN:
		return ">=", token.GE, true
	case a == token.ASSIGN && b == token.ASSIGN:
		return "==", token.EQ, true
	case a == token.BANG && b == token.ASSIGN:
		return "!=", token.NE, true
	case a == token.AMP && b == token.AMP:
		return "&&", token.AND, true
	case a == token.PIPE && b == token.PIPE:
		return "||", token.OR, true
	default:
		return "", 0, false
	}
}

// Pass 4: join consecutive Identifier(Unknown) runs.
func joinIdentifierRuns(stream []token.Token) []token.Token {
	var out []token.Token
	for _, tok := range stream {
		if tok.Kind == token.IDENT && tok.IdentKind == token.Unknown &&
			len(out) > 0 && out[len(out)-1].Kind == token.IDENT && out[len(out)-1].IdentKind == token.Unknown {
			prev := &out[len(out)-1]
			prev.Literal += tok.Literal
			prev.Length += tok.Length
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Pass 5: join numeric literals, allowing at most one dot per merged
// literal. A standalone identifier "i" is the imaginary unit: it ends the
// literal it follows ("2i") or is a literal on its own. The identifiers
// "true" and "false" become boolean literals.
func joinNumericLiterals(stream []token.Token) ([]token.Token, error) {
	var out []token.Token
	dotsInCurrent := 0
	joining := false

	for _, tok := range stream {
		unknownIdent := tok.Kind == token.IDENT && tok.IdentKind == token.Unknown
		if unknownIdent && (tok.Literal == "true" || tok.Literal == "false") {
			dotsInCurrent = 0
			joining = false
			out = append(out, token.NewLiteral(tok.Literal))
			continue
		}
		isImag := unknownIdent && tok.Literal == "i"
		isPart := tok.Kind == token.LITERAL || tok.Kind == token.DOT || isImag
		if isPart {
			if tok.Kind == token.DOT {
				dotsInCurrent++
				if dotsInCurrent > 1 {
					return nil, evalerrors.New(evalerrors.InvalidTokenPosition, "literal has more than one decimal point")
				}
			}
			if joining {
				prev := &out[len(out)-1]
				prev.Literal += literalText(tok)
				prev.Length += tok.Length
			} else {
				out = append(out, token.NewLiteral(literalText(tok)))
				joining = true
			}
			if isImag {
				dotsInCurrent = 0
				joining = false
			}
			continue
		}
		dotsInCurrent = 0
		joining = false
		out = append(out, tok)
	}
	return out, nil
}

func literalText(tok token.Token) string {
	if tok.Kind == token.DOT {
		return "."
	}
	return tok.Literal
}

// Pass 6: contextual identifier splitting, grounded on SplitIdentifier.
func splitAmbiguousIdentifiers(stream []token.Token, dict Dictionaries) []token.Token {
	var out []token.Token
	for _, tok := range stream {
		if tok.Kind == token.IDENT && tok.IdentKind == token.Unknown {
			split, _ := SplitIdentifier(tok.Literal, dict)
			out = append(out, split...)
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Pass 7: predict remaining unknown identifiers as Function (if
// followed by '(') or Var otherwise.
func predictUnknownIdentifiers(stream []token.Token) []token.Token {
	out := make([]token.Token, len(stream))
	copy(out, stream)
	for i := range out {
		if out[i].Kind == token.IDENT && out[i].IdentKind == token.Unknown {
			if i+1 < len(out) && out[i+1].Kind == token.LPAREN {
				out[i].IdentKind = token.Function
			} else {
				out[i].IdentKind = token.Var
			}
		}
	}
	return out
}

// Pass 8: insert implicit single-argument brackets after a Function
// identifier immediately followed by a Literal or Var identifier, e.g.
// "sin x" -> "sin ( x )".
func insertImplicitBrackets(stream []token.Token) ([]token.Token, error) {
	var out []token.Token
	for i := 0; i < len(stream); i++ {
		tok := stream[i]
		out = append(out, tok)
		if tok.Kind == token.IDENT && tok.IdentKind == token.Function {
			if i+1 >= len(stream) {
				return nil, evalerrors.New(evalerrors.MissingFunctionParameters, "function %q has no arguments", tok.Literal)
			}
			next := stream[i+1]
			switch {
			case next.Kind == token.LPAREN:
				// explicit call, nothing to insert.
			case next.Kind == token.LITERAL || (next.Kind == token.IDENT && next.IdentKind == token.Var):
				out = append(out, token.New(token.LPAREN, 0))
				out = append(out, next)
				out = append(out, token.New(token.RPAREN, 0))
				i++
			default:
				return nil, evalerrors.New(evalerrors.MissingFunctionParameters, "function %q expects parameters", tok.Literal)
			}
		}
	}
	return out, nil
}

// Pass 9: insert implicit multiplication between adjacent pairs that
// would otherwise be ungrammatical juxtaposition (spec.md §4.L pass 9).
func insertImplicitMultiplication(stream []token.Token) []token.Token {
	if len(stream) == 0 {
		return stream
	}
	out := []token.Token{stream[0]}
	for i := 1; i < len(stream); i++ {
		prev, cur := stream[i-1], stream[i]
		if needsImplicitMul(prev, cur) {
			out = append(out, token.New(token.STAR, 0))
		}
		out = append(out, cur)
	}
	return out
}

func needsImplicitMul(prev, cur token.Token) bool {
	prevLit := prev.Kind == token.LITERAL
	curLit := cur.Kind == token.LITERAL
	prevIdent := prev.Kind == token.IDENT
	curIdent := cur.Kind == token.IDENT
	prevVar := prevIdent && prev.IdentKind == token.Var

	switch {
	case prevLit && cur.Kind == token.LPAREN:
		return true
	case prev.Kind == token.RPAREN && curLit:
		return true
	case prevLit && curLit:
		return true
	case prev.Kind == token.RPAREN && cur.Kind == token.LPAREN:
		return true
	case prev.Kind == token.RPAREN && curIdent:
		return true
	case prevVar && cur.Kind == token.LPAREN:
		return true
	case prevLit && curIdent:
		return true
	case prevIdent && curLit:
		return true
	case prevIdent && curIdent:
		return true
	default:
		return false
	}
}
