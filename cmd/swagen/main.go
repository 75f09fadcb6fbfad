// Command swagen generates typed API clients from Swagger 2.0 documents.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/mark3labs/swagen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(cli.ExitCode(err))
	}
}
