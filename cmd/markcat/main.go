package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mhersch/toolbelt/internal/cli"
)

func main() {
	if err := cli.RunMarkcat(context.Background(), os.Args); err != nil {
		// Counted errors were already reported on stderr; only the exit
		// status needs to reflect them.
		if !errors.Is(err, cli.ErrRanWithErrors) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
