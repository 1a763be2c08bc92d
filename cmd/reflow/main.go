// Command reflow is the CLI surface over the reflow package: run a
// reschedule, validate an existing schedule, or batch-test a directory of
// fixture scenarios against golden files.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd, opts := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if opts.Format == "json" {
			writeJSONError(os.Stderr, "", "error", err.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(ExitCode(err))
	}
}
