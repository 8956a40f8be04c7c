// Command exprscript evaluates one-line math expressions from the
// command line, grounded on the teacher's cmd/dwscript entry point
// (a thin main that just calls into cmd.Execute).
package main

import "github.com/cwbudde/exprscript/cmd/exprscript/cmd"

func main() {
	cmd.Execute()
}
