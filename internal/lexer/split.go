package lexer

import "github.com/cwbudde/exprscript/internal/token"

// Dictionaries is the four-dictionary lookup set consulted, in priority
// order, by SplitIdentifier: built-in functions, built-in constants, user
// functions, user variables (spec.md §4.L pass 6, §9). The lexer's own
// contextual-splitting pass and the evaluator's ambiguous-identifier
// retry (internal/interp) both go through this single function, unifying
// what spec.md §9 calls out as duplicated logic in the original design.
type Dictionaries struct {
	IsBuiltinFunction func(name string) bool
	IsBuiltinConstant func(name string) bool
	IsUserFunction    func(name string) bool
	IsUserVariable    func(name string) bool
}

// SplitIdentifier scans s left to right, growing a candidate prefix one
// character at a time and testing it against the four dictionaries in
// priority order; the first match emits an identifier token of the
// matching kind and the scan restarts from the next character. A
// trailing run with no match at any extension becomes a single
// Identifier(Unknown) token. fullyResolved reports whether every
// character of s was consumed by a dictionary match (no Unknown
// residue).
func SplitIdentifier(s string, dict Dictionaries) (tokens []token.Token, fullyResolved bool) {
	pos := 0
	fullyResolved = true
	for pos < len(s) {
		matchedLen := 0
		var kind token.IdentKind

		for length := 1; pos+length <= len(s); length++ {
			prefix := s[pos : pos+length]
			switch {
			case dict.IsBuiltinFunction != nil && dict.IsBuiltinFunction(prefix):
				matchedLen, kind = length, token.Function
			case dict.IsBuiltinConstant != nil && dict.IsBuiltinConstant(prefix):
				matchedLen, kind = length, token.Var
			case dict.IsUserFunction != nil && dict.IsUserFunction(prefix):
				matchedLen, kind = length, token.Function
			case dict.IsUserVariable != nil && dict.IsUserVariable(prefix):
				matchedLen, kind = length, token.Var
			}
			if matchedLen > 0 {
				break
			}
		}

		if matchedLen > 0 {
			tokens = append(tokens, token.NewIdent(s[pos:pos+matchedLen], kind))
			pos += matchedLen
			continue
		}

		tokens = append(tokens, token.NewIdent(s[pos:], token.Unknown))
		fullyResolved = false
		break
	}
	return tokens, fullyResolved
}
