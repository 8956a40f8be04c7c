// Package context implements the user-definable variable/function scope
// and evaluation Settings of spec.md §4.C / §6, grounded on the teacher's
// internal/interp/environment.go (a name -> binding map with Clone/Join
// semantics used to thread scope through recursive evaluation) and the
// Rust original's numcore/src/context/mod.rs (Settings defaults).
package context

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/exprscript/internal/ast"
)

// AngleUnit selects how trigonometric built-ins interpret their
// arguments and results.
type AngleUnit int

const (
	Radian AngleUnit = iota
	Degree
)

func (u AngleUnit) String() string {
	if u == Degree {
		return "Degree"
	}
	return "Radian"
}

func ParseAngleUnit(s string) (AngleUnit, error) {
	switch s {
	case "Radian", "radian", "":
		return Radian, nil
	case "Degree", "degree":
		return Degree, nil
	default:
		return Radian, fmt.Errorf("context: unknown angle unit %q", s)
	}
}

// Settings controls the ambient behavior of an evaluation: the number of
// decimals top-level Round() applies, the angle unit trig built-ins use,
// and the recursion depth limit. Defaults match spec.md §6: Round(8),
// Radian, Limit(49).
type Settings struct {
	Rounding   int
	AngleUnit  AngleUnit
	DepthLimit int
}

// DefaultSettings returns the spec-mandated defaults.
func DefaultSettings() Settings {
	return Settings{Rounding: 8, AngleUnit: Radian, DepthLimit: 49}
}

type funcDef struct {
	Params []string
	Body   ast.Expression
}

// Context holds user-declared variables and functions plus the Settings
// that govern evaluation. The zero value is not usable; use New.
type Context struct {
	Settings  Settings
	variables map[string]ast.Expression
	functions map[string]funcDef
}

// New returns an empty Context with default Settings.
func New() *Context {
	return &Context{
		Settings:  DefaultSettings(),
		variables: map[string]ast.Expression{},
		functions: map[string]funcDef{},
	}
}

// GetVar looks up a user-declared variable body.
func (c *Context) GetVar(name string) (ast.Expression, bool) {
	body, ok := c.variables[name]
	return body, ok
}

// GetFunc looks up a user-declared function's parameters and body.
func (c *Context) GetFunc(name string) (params []string, body ast.Expression, ok bool) {
	def, ok := c.functions[name]
	return def.Params, def.Body, ok
}

// HasVar/HasFunc report declaration presence without retrieving the body,
// used by the lexer's contextual-split dictionaries.
func (c *Context) HasVar(name string) bool  { _, ok := c.variables[name]; return ok }
func (c *Context) HasFunc(name string) bool { _, ok := c.functions[name]; return ok }

// PutVar binds name to body, overwriting any prior declaration.
func (c *Context) PutVar(name string, body ast.Expression) {
	c.variables[name] = body
}

// PutFunc binds name, with the given parameter names, to body.
func (c *Context) PutFunc(name string, params []string, body ast.Expression) {
	c.functions[name] = funcDef{Params: params, Body: body}
}

// Clone returns a deep-enough copy of c: a new Context whose variable and
// function maps are independent of c's, safe for EvalWithStaticContext to
// hand to the evaluator without the caller observing any mutation.
func (c *Context) Clone() *Context {
	out := &Context{
		Settings:  c.Settings,
		variables: make(map[string]ast.Expression, len(c.variables)),
		functions: make(map[string]funcDef, len(c.functions)),
	}
	for k, v := range c.variables {
		out.variables[k] = v
	}
	for k, v := range c.functions {
		out.functions[k] = v
	}
	return out
}

// JoinWith merges other into a copy of c, right-biased: entries in other
// override entries of the same name in c. Settings are taken from c.
func (c *Context) JoinWith(other *Context) *Context {
	out := c.Clone()
	if other == nil {
		return out
	}
	for k, v := range other.variables {
		out.variables[k] = v
	}
	for k, v := range other.functions {
		out.functions[k] = v
	}
	return out
}

// jsonSettings is the wire shape for Settings: the angle unit is rendered
// as its name rather than the raw enum ordinal.
type jsonSettings struct {
	Rounding   int    `json:"rounding"`
	AngleUnit  string `json:"angleUnit"`
	DepthLimit int    `json:"depthLimit"`
}

// snapshot is the wire shape for a whole Context. Variable and function
// bodies are rendered via Expression.String() for display purposes; this
// is a debug/inspection view, not a round-trippable Expression codec — reconstructing an executable body
// from text would mean re-lexing and re-parsing it, which belongs to
// pkg/exprscript, not to this package.
type snapshot struct {
	Settings  jsonSettings      `json:"settings"`
	Variables map[string]string `json:"variables,omitempty"`
	Functions map[string]struct {
		Params []string `json:"params"`
		Body   string   `json:"body"`
	} `json:"functions,omitempty"`
}

// MarshalJSON renders a debug snapshot of c: Settings plus every
// variable/function name mapped to its body's String() rendering.
func (c *Context) MarshalJSON() ([]byte, error) {
	snap := snapshot{
		Settings: jsonSettings{
			Rounding:   c.Settings.Rounding,
			AngleUnit:  c.Settings.AngleUnit.String(),
			DepthLimit: c.Settings.DepthLimit,
		},
	}
	if len(c.variables) > 0 {
		snap.Variables = make(map[string]string, len(c.variables))
		for name, body := range c.variables {
			snap.Variables[name] = body.String()
		}
	}
	if len(c.functions) > 0 {
		snap.Functions = make(map[string]struct {
			Params []string `json:"params"`
			Body   string   `json:"body"`
		}, len(c.functions))
		for name, def := range c.functions {
			snap.Functions[name] = struct {
				Params []string `json:"params"`
				Body   string   `json:"body"`
			}{Params: def.Params, Body: def.Body.String()}
		}
	}
	return json.Marshal(snap)
}
