// Package errors defines the single error sum type shared by every stage of
// the expression pipeline (lexer, tree builder, request interpreter,
// evaluator). Every failure mode in the pipeline is a Kind below; no error
// is recovered inside the core, every failure propagates to the caller
// unchanged except for the arity-name enrichment performed by the evaluator
// when a user function call fails (see internal/interp).
package errors

import "fmt"

// Kind classifies an EvalError. The grouping mirrors the categories used
// throughout the pipeline: lexing, parsing, name resolution, evaluation,
// and dispatch, plus a Bug kind that must never surface on well-formed
// input.
type Kind int

const (
	// Lexing
	UnknownToken Kind = iota
	InvalidTokenPosition
	FailedParse
	EmptyBrackets
	InvalidClosingBracket
	MissingClosingBracket
	MissingFunctionParameters

	// Parsing
	MissingOperatorArgument
	NotAnOperator
	InvalidDeclaration

	// Name resolution
	UnknownVar
	UnknownFunction
	ReservedVarName
	ReservedFunctionName
	WrongFunctionArgumentsAmount

	// Evaluation
	TypeError
	FailedCast
	DivideByZero
	MismatchedArrayLengths
	RecursionDepthLimitReached

	// Dispatch
	InvalidMutableContext

	// Bug
	InternalError
)

var kindNames = map[Kind]string{
	UnknownToken:                 "UnknownToken",
	InvalidTokenPosition:         "InvalidTokenPosition",
	FailedParse:                  "FailedParse",
	EmptyBrackets:                "EmptyBrackets",
	InvalidClosingBracket:        "InvalidClosingBracket",
	MissingClosingBracket:        "MissingClosingBracket",
	MissingFunctionParameters:    "MissingFunctionParameters",
	MissingOperatorArgument:      "MissingOperatorArgument",
	NotAnOperator:                "NotAnOperator",
	InvalidDeclaration:           "InvalidDeclaration",
	UnknownVar:                   "UnknownVar",
	UnknownFunction:              "UnknownFunction",
	ReservedVarName:              "ReservedVarName",
	ReservedFunctionName:         "ReservedFunctionName",
	WrongFunctionArgumentsAmount: "WrongFunctionArgumentsAmount",
	TypeError:                    "TypeError",
	FailedCast:                   "FailedCast",
	DivideByZero:                 "DivideByZero",
	MismatchedArrayLengths:       "MismatchedArrayLengths",
	RecursionDepthLimitReached:   "RecursionDepthLimitReached",
	InvalidMutableContext:        "InvalidMutableContext",
	InternalError:                "InternalError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UnknownKind"
}

// EvalError is the single error type returned by every stage of the
// pipeline. Fields beyond Kind and Message are payload that individual
// constructors fill in; most callers only need Error().
type EvalError struct {
	Kind     Kind
	Message  string
	Position int // 0-based token/character position, -1 if not applicable
}

func (e *EvalError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Kind, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an EvalError with no position payload.
func New(kind Kind, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...), Position: -1}
}

// NewAt builds an EvalError carrying a source position.
func NewAt(kind Kind, position int, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...), Position: position}
}

// Is reports whether err is an *EvalError of the given Kind. Mirrors the
// stdlib errors.Is contract without requiring wrapping, since EvalError
// never wraps another error.
func Is(err error, kind Kind) bool {
	ee, ok := err.(*EvalError)
	return ok && ee.Kind == kind
}
