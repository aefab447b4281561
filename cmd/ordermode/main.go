// Command ordermode plays and verifies chronological ordering puzzles.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/ordermode/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
