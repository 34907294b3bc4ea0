package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/taskboard/cmd"
	"github.com/thenoetrevino/taskboard/internal/cli"
)

func main() {
	err := cmd.Execute(context.Background())
	if err != nil {
		// Command failures were already reported by the output formatter
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	os.Exit(cli.ExitCode(err))
}
