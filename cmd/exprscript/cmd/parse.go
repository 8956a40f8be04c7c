package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exprscript/internal/ast"
	"github.com/cwbudde/exprscript/pkg/exprscript"
)

var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Print the parsed request (evaluation or declaration) for an expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := settingsFromFlags()
		if err != nil {
			return err
		}
		req, err := exprscript.BuildRequest(args[0], ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderRequest(req))
		return nil
	},
}

func renderRequest(req ast.Request) string {
	switch r := req.(type) {
	case *ast.Evaluation:
		return "eval: " + r.Expr.String()
	case *ast.VarDeclaration:
		return "var " + r.Name + " = " + r.Body.String()
	case *ast.FuncDeclaration:
		return "func " + r.Name + "(" + strings.Join(r.Params, ", ") + ") = " + r.Body.String()
	default:
		return fmt.Sprintf("%T", req)
	}
}
