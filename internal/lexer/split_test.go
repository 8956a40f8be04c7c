package lexer

import (
	"testing"

	"github.com/cwbudde/exprscript/internal/token"
)

func TestSplitIdentifierPriorityOrder(t *testing.T) {
	// "sin" should resolve as a builtin function even though it is also
	// registered (hypothetically) as a user variable: builtin function
	// outranks every other dictionary.
	dict := Dictionaries{
		IsBuiltinFunction: func(s string) bool { return s == "sin" },
		IsUserVariable:    func(s string) bool { return s == "sin" },
	}
	toks, resolved := SplitIdentifier("sin", dict)
	if !resolved || len(toks) != 1 || toks[0].IdentKind != token.Function {
		t.Errorf("SplitIdentifier(\"sin\") = %+v, resolved=%v", toks, resolved)
	}
}

func TestSplitIdentifierGrowingPrefixScan(t *testing.T) {
	dict := Dictionaries{
		IsUserVariable: func(s string) bool { return s == "x" || s == "y" },
	}
	toks, resolved := SplitIdentifier("xy", dict)
	if !resolved {
		t.Fatalf("SplitIdentifier(\"xy\") not fully resolved: %+v", toks)
	}
	if len(toks) != 2 || toks[0].Literal != "x" || toks[1].Literal != "y" {
		t.Errorf("SplitIdentifier(\"xy\") = %+v", toks)
	}
}

func TestSplitIdentifierUnresolvedResidue(t *testing.T) {
	dict := Dictionaries{IsUserVariable: func(s string) bool { return s == "a" }}
	toks, resolved := SplitIdentifier("abc", dict)
	if resolved {
		t.Fatal("SplitIdentifier(\"abc\") should not be fully resolved")
	}
	// "a" matches, then "bc" has no match at any length and becomes a
	// single trailing Unknown token.
	if len(toks) != 2 || toks[1].IdentKind != token.Unknown || toks[1].Literal != "bc" {
		t.Errorf("SplitIdentifier(\"abc\") = %+v", toks)
	}
}

func TestSplitIdentifierNoDictionariesIsAllUnknown(t *testing.T) {
	toks, resolved := SplitIdentifier("xyz", Dictionaries{})
	if resolved {
		t.Fatal("empty dictionaries should never resolve")
	}
	if len(toks) != 1 || toks[0].Literal != "xyz" {
		t.Errorf("SplitIdentifier with no dictionaries = %+v", toks)
	}
}
