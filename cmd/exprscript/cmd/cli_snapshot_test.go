package cmd

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/exprscript/internal/context"
)

// execCLI runs the root command with args against a fresh output buffer,
// the way the teacher's CLI tests exercise cobra commands in-process
// rather than shelling out to a built binary. Persistent flags are reset
// to their defaults first since rootCmd's flag vars are package-level
// singletons shared across every test in this file.
func execCLI(t *testing.T, args ...string) string {
	t.Helper()
	defaults := context.DefaultSettings()
	flagRounding = defaults.Rounding
	flagAngleUnit = "Radian"
	flagDepthLimit = defaults.DepthLimit

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("exprscript %v: %v", args, err)
	}
	return out.String()
}

func TestEvalCommandSnapshot(t *testing.T) {
	// Each "eval" invocation runs against a fresh Context (settingsFromFlags
	// builds a new one per call), so this must be a self-contained
	// expression with no free variable.
	snaps.MatchSnapshot(t, execCLI(t, "eval", "2pi+sin(0)"))
}

func TestEvalCommandVectorSnapshot(t *testing.T) {
	snaps.MatchSnapshot(t, execCLI(t, "eval", "(1,2,3)^2"))
}

func TestLexCommandSnapshot(t *testing.T) {
	snaps.MatchSnapshot(t, execCLI(t, "lex", "2pi+sin(x)"))
}

func TestParseCommandSnapshot(t *testing.T) {
	snaps.MatchSnapshot(t, execCLI(t, "parse", "f(x)=x^2+1"))
}

func TestParseCommandVarDeclarationSnapshot(t *testing.T) {
	snaps.MatchSnapshot(t, execCLI(t, "parse", "x=5"))
}

func TestEvalCommandWithFlagsSnapshot(t *testing.T) {
	snaps.MatchSnapshot(t, execCLI(t, "--angle-unit", "Degree", "--rounding", "4", "eval", "sin(90)"))
}
