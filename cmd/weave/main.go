// Command weave is a CLI around pkg/weave: parse a script, list its
// functions, or run one of them with JSON-encoded arguments.
package main

import (
	"os"

	"github.com/weave-lang/weave/cmd/weave/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
