package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exprscript/pkg/exprscript"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a single expression and print its value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := settingsFromFlags()
		if err != nil {
			return err
		}
		v, err := exprscript.EvalWithMutableContext(args[0], ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
		return nil
	},
}
