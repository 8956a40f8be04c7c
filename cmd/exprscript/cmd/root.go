// Package cmd wires the exprscript CLI's cobra commands. Persistent
// flags, the exitWithError helper, and the Version/GitCommit/BuildDate
// variable convention mirror the teacher's cmd/dwscript/cmd package,
// generalized from a script-file runner to a one-line expression
// evaluator.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exprscript/internal/context"
)

// Version, GitCommit, and BuildDate are overridden at build time via
// -ldflags, following the teacher's release-metadata convention.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var (
	flagRounding   int
	flagAngleUnit  string
	flagDepthLimit int
)

var rootCmd = &cobra.Command{
	Use:   "exprscript",
	Short: "Evaluate one-line math expressions",
	Long: "exprscript lexes, parses, and evaluates one-line math expressions " +
		"such as \"f(x) = x*sin(x)+2pi\", with implicit multiplication, " +
		"vector broadcasting, and variable/function declarations.",
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagRounding, "rounding", context.DefaultSettings().Rounding,
		"decimal places the top-level result is rounded to (0-12)")
	rootCmd.PersistentFlags().StringVar(&flagAngleUnit, "angle-unit", "Radian",
		"angle unit for trig built-ins: Radian or Degree")
	rootCmd.PersistentFlags().IntVar(&flagDepthLimit, "depth-limit", context.DefaultSettings().DepthLimit,
		"maximum nesting depth of evaluation calls (bounds user function recursion)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("exprscript %s (commit %s, built %s)\n", Version, GitCommit, BuildDate))

	rootCmd.AddCommand(evalCmd, lexCmd, parseCmd, replCmd)
}

// Execute runs the root command, exiting the process with status 1 on
// error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "exprscript:", err)
	os.Exit(1)
}

// settingsFromFlags builds a fresh Context whose Settings reflect the
// persistent flags, for subcommands that don't need a session-scoped
// Context of their own.
func settingsFromFlags() (*context.Context, error) {
	ctx := context.New()
	unit, err := context.ParseAngleUnit(flagAngleUnit)
	if err != nil {
		return nil, err
	}
	ctx.Settings.AngleUnit = unit
	ctx.Settings.Rounding = flagRounding
	ctx.Settings.DepthLimit = flagDepthLimit
	return ctx, nil
}
