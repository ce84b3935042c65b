package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/mhersch/toolbelt/internal/bookmark"
	"github.com/mhersch/toolbelt/internal/ui"
	"github.com/mhersch/toolbelt/internal/ui/tui"
	"github.com/mhersch/toolbelt/internal/util"
)

// RunHop executes the hop CLI with the given context and arguments.
func RunHop(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "hop",
		Usage:   "Bookmark directories and jump between them",
		Version: Version,
		Description: `Manages directory bookmarks as symlinks. Pair it with the shell
   wrapper (eval "$(hop shell bash)") so that "hop <name>" changes
   directory in the calling shell.`,
		Flags: globalFlags(),
		Commands: []*cli.Command{
			hopAddCommand(),
			hopRemoveCommand(),
			hopListCommand(),
			hopGoCommand(),
			hopPruneCommand(),
			hopPickCommand(),
			hopShellCommand(),
			versionCommand("hop"),
		},
	}
	return app.Run(ctx, args)
}

// openStore loads config and returns the bookmark store for this invocation.
func openStore(cmd *cli.Command) (*bookmark.Store, error) {
	cfg, err := setup(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return bookmark.NewStore(util.ExpandPath(cfg.Hop.MarksDir)), nil
}

func hopAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Bookmark a directory",
		ArgsUsage: "<name> [dir]",
		Description: `Creates a bookmark pointing at dir, or at the current directory
   when dir is omitted.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() < 1 {
				return errors.New("bookmark name is required")
			}
			name := args.Get(0)
			target := args.Get(1)
			if target == "" {
				target = "."
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := store.Add(name, target); err != nil {
				return err
			}

			resolved, err := store.Resolve(name)
			if err != nil {
				return err
			}
			fmt.Println(ui.StatusSuccess(fmt.Sprintf("%s -> %s", name, resolved)))
			return nil
		},
	}
}

func hopRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"remove"},
		Usage:     "Remove a bookmark",
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() < 1 {
				return errors.New("bookmark name is required")
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := store.Remove(args.Get(0)); err != nil {
				return err
			}
			fmt.Println(ui.StatusSuccess(args.Get(0) + " removed"))
			return nil
		},
	}
}

func hopListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List bookmarks",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "names",
				Usage: "Print bare names only (used by shell completion)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			marks, err := store.List()
			if err != nil {
				return err
			}

			if cmd.Bool("names") {
				for _, m := range marks {
					fmt.Println(m.Name)
				}
				return nil
			}

			for _, m := range marks {
				if m.Dangling {
					fmt.Printf("%-16s %s\n", m.Name, ui.Warning(m.Target+" (dangling)"))
					continue
				}
				fmt.Printf("%-16s %s\n", m.Name, ui.Dim(m.Target))
			}
			return nil
		},
	}
}

func hopGoCommand() *cli.Command {
	return &cli.Command{
		Name:      "go",
		Usage:     "Print the target directory of a bookmark",
		ArgsUsage: "<name>",
		Description: `Prints the bookmarked directory on stdout, for use by the shell
   wrapper: cd "$(hop go name)".`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() < 1 {
				return errors.New("bookmark name is required")
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			target, err := store.Resolve(args.Get(0))
			if err != nil {
				return err
			}
			fmt.Println(target)
			return nil
		},
	}
}

func hopPruneCommand() *cli.Command {
	return &cli.Command{
		Name:  "prune",
		Usage: "Remove bookmarks whose target directory no longer exists",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			removed, err := store.Prune()
			if err != nil {
				return err
			}

			if len(removed) == 0 {
				fmt.Println(ui.StatusSkipped("nothing to prune"))
				return nil
			}
			for _, name := range removed {
				fmt.Println(ui.StatusSuccess(name + " pruned"))
			}
			return nil
		},
	}
}

func hopPickCommand() *cli.Command {
	return &cli.Command{
		Name:  "pick",
		Usage: "Pick a bookmark interactively and print its target",
		Description: `Opens an interactive list on stderr; the chosen directory is
   printed on stdout so the shell wrapper can cd into it.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			marks, err := store.List()
			if err != nil {
				return err
			}

			result, err := tui.RunBookmarkPicker(marks, tea.WithOutput(os.Stderr))
			if err != nil {
				return err
			}
			if result.Action != tui.BookmarkPickerActionSelect {
				return nil
			}
			if result.Selected.Dangling {
				return fmt.Errorf("%w: %q points at missing directory %q",
					bookmark.ErrNotDirectory, result.Selected.Name, result.Selected.Target)
			}
			fmt.Println(result.Selected.Target)
			return nil
		},
	}
}

func hopShellCommand() *cli.Command {
	return &cli.Command{
		Name:      "shell",
		Usage:     "Print the shell wrapper function and completion",
		ArgsUsage: "<bash|zsh>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() < 1 {
				return errors.New("shell name is required (bash or zsh)")
			}
			script, err := bookmark.ShellScript(args.Get(0))
			if err != nil {
				return err
			}
			fmt.Print(script)
			return nil
		},
	}
}
