// Command cincensus validates and rebuilds CIN census returns.
package main

import (
	"os"

	"github.com/careworks/cincensus/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
