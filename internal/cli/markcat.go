package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/mhersch/toolbelt/internal/format"
	"github.com/mhersch/toolbelt/internal/logging"
	"github.com/mhersch/toolbelt/internal/marker"
)

// stdinName is how the standard-input source appears in headers and diagnostics.
const stdinName = "(standard input)"

// RunMarkcat executes the markcat CLI with the given context and arguments.
func RunMarkcat(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:      "markcat",
		Usage:     "Extract marker-delimited blocks from text files",
		Version:   Version,
		ArgsUsage: "[path ...]",
		Description: `Reads files (or standard input) line by line and prints the content
   found between begin/end marker comments such as

      # -- mark begin --
      ...
      # -- mark end --

   Directories are traversed recursively. Diagnostics and the optional
   statistics summary go to standard error.`,
		Flags: append(globalFlags(),
			&cli.BoolFlag{
				Name:    "line-numbers",
				Aliases: []string{"n"},
				Usage:   "Show a right-aligned line-number gutter",
			},
			&cli.BoolFlag{
				Name:    "filenames",
				Aliases: []string{"f"},
				Usage:   "Print a header before each source containing markers",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "Print only the names of sources containing markers",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress diagnostics (errors are still counted)",
			},
			&cli.BoolFlag{
				Name:    "stats",
				Aliases: []string{"s"},
				Usage:   "Print a lines-scanned/printed/errors summary",
			},
			&cli.IntFlag{
				Name:  "max-line-length",
				Usage: "Abort a source whose line exceeds this many bytes (-1 = unlimited)",
			},
		),
		Commands: []*cli.Command{
			versionCommand("markcat"),
		},
		Action: runMarkcat,
	}
	return app.Run(ctx, args)
}

func runMarkcat(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts := marker.Options{
		PrintLineNumbers: cmd.Bool("line-numbers") || cfg.Markcat.LineNumbers,
		PrintFilenames:   cmd.Bool("filenames") || cfg.Markcat.Filenames,
		PrintContent:     !cmd.Bool("list"),
		SuppressErrors:   cmd.Bool("quiet"),
		MaxLineLength:    cfg.Markcat.MaxLineLength,
		TabWidth:         cfg.Markcat.TabWidth,
		Width:            format.TerminalWidth,
	}
	if cmd.IsSet("max-line-length") {
		opts.MaxLineLength = cmd.Int("max-line-length")
	}

	parser := marker.New(opts, os.Stdout, os.Stderr)

	stop := notifyInterrupt(parser.Status())
	defer stop()

	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		// Fatal errors are already counted and diagnosed by the parser.
		_ = parser.ProcessReader(stdinName, os.Stdin)
	} else {
		for _, path := range paths {
			_ = parser.ProcessPath(path)
		}
	}

	return finishMarkcat(cmd, parser.Status(), os.Stderr)
}

// finishMarkcat emits the optional summary and maps counted errors to the
// non-zero-exit sentinel.
func finishMarkcat(cmd *cli.Command, st *marker.Status, errOut io.Writer) error {
	if cmd.Bool("stats") {
		fmt.Fprintln(errOut, st.Summary())
	}
	if st.Errors > 0 {
		return ErrRanWithErrors
	}
	return nil
}

// notifyInterrupt terminates on SIGINT, flushing a short interim error
// summary first when errors had already accumulated.
func notifyInterrupt(st *marker.Status) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	go func() {
		if _, ok := <-sigCh; !ok {
			return
		}
		if st.Errors > 0 {
			fmt.Fprintf(os.Stderr, "interrupted: %s\n", st.Summary())
		}
		logging.Debug("interrupted by signal")
		os.Exit(130)
	}()

	return func() {
		signal.Stop(sigCh)
		close(sigCh)
	}
}
