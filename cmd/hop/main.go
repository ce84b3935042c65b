package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mhersch/toolbelt/internal/cli"
)

func main() {
	if err := cli.RunHop(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
