package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exprscript/pkg/exprscript"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session sharing one Context across lines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := settingsFromFlags()
		if err != nil {
			return err
		}
		in := cmd.InOrStdin()
		out := cmd.OutOrStdout()

		scanner := bufio.NewScanner(in)
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				return nil
			}
			v, err := exprscript.EvalWithMutableContext(line, ctx)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintln(out, v.String())
		}
	},
}
