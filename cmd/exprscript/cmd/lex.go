package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exprscript/pkg/exprscript"
)

var lexCmd = &cobra.Command{
	Use:   "lex <expression>",
	Short: "Print the token stream produced for an expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := settingsFromFlags()
		if err != nil {
			return err
		}
		tokens, err := exprscript.Tokenize(args[0], ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, tok := range tokens {
			if tok.Kind.String() == "IDENT" {
				fmt.Fprintf(out, "%d: %s(%s) %q\n", i, tok.Kind, tok.IdentKind, tok.Literal)
				continue
			}
			if tok.Literal != "" {
				fmt.Fprintf(out, "%d: %s %q\n", i, tok.Kind, tok.Literal)
				continue
			}
			fmt.Fprintf(out, "%d: %s\n", i, tok.Kind)
		}
		return nil
	},
}
