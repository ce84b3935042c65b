package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mhersch/toolbelt/internal/comments"
	"github.com/mhersch/toolbelt/internal/logging"
	"github.com/mhersch/toolbelt/internal/ui"
)

// RunDecomment executes the decomment CLI with the given context and arguments.
func RunDecomment(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:      "decomment",
		Usage:     "Strip comments from source text",
		Version:   Version,
		ArgsUsage: "[file ...]",
		Description: `Filters files (or standard input) through a per-language comment
   stripper. The language is chosen by --lang or, for files, by extension.
   Additional styles can be declared in a TOML file.`,
		Flags: append(globalFlags(),
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "Comment style to use (overrides extension detection)",
			},
			&cli.BoolFlag{
				Name:    "blank",
				Aliases: []string{"b"},
				Usage:   "Replace stripped lines with blank lines, preserving numbering",
			},
			&cli.StringFlag{
				Name:  "styles",
				Usage: "TOML file with additional comment styles",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "List the known comment styles and exit",
			},
		),
		Commands: []*cli.Command{
			versionCommand("decomment"),
		},
		Action: runDecomment,
	}
	return app.Run(ctx, args)
}

func runDecomment(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	table := comments.DefaultTable()
	stylesPath := cmd.String("styles")
	if stylesPath == "" {
		stylesPath = cfg.Decomment.StylesPath
	}
	if stylesPath != "" {
		if err := table.MergeTOML(stylesPath); err != nil {
			return err
		}
	}

	if cmd.Bool("list") {
		return listStyles(table)
	}

	keepBlanks := cmd.Bool("blank") || cfg.Decomment.KeepBlanks
	lang := cmd.String("lang")
	paths := cmd.Args().Slice()

	if len(paths) == 0 {
		if lang == "" {
			return errors.New("--lang is required when reading standard input")
		}
		style, ok := table.ByName(lang)
		if !ok {
			return fmt.Errorf("unknown comment style %q", lang)
		}
		return stripSource(style, keepBlanks, stdinName, os.Stdin)
	}

	for _, path := range paths {
		style, err := styleForFile(table, lang, path)
		if err != nil {
			return err
		}
		f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
		if err != nil {
			return fmt.Errorf("opening %q: %w", path, err)
		}
		err = stripSource(style, keepBlanks, path, f)
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// styleForFile picks the comment style for one file: the explicit --lang
// override wins, otherwise the filename extension decides.
func styleForFile(table *comments.Table, lang, path string) (comments.Style, error) {
	if lang != "" {
		style, ok := table.ByName(lang)
		if !ok {
			return comments.Style{}, fmt.Errorf("unknown comment style %q", lang)
		}
		return style, nil
	}
	ext := filepath.Ext(path)
	style, ok := table.ByExtension(ext)
	if !ok {
		return comments.Style{}, fmt.Errorf("no comment style for %q (use --lang)", path)
	}
	return style, nil
}

func stripSource(style comments.Style, keepBlanks bool, name string, r io.Reader) error {
	stripper := comments.NewStripper(style)
	stripper.KeepBlanks = keepBlanks

	if err := stripper.Strip(r, os.Stdout); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if stripper.InBlock() {
		logging.Warn("unterminated block comment at end of input", logging.Source(name))
	}
	return nil
}

// listStyles prints the style table: title-cased name, extensions, tokens.
func listStyles(table *comments.Table) error {
	caser := cases.Title(language.English)
	for _, name := range table.Names() {
		style, _ := table.ByName(name)

		var tokens []string
		tokens = append(tokens, style.Line...)
		if style.BlockStart != "" {
			tokens = append(tokens, style.BlockStart+" "+style.BlockEnd)
		}

		fmt.Printf("%-12s %-28s %s\n",
			caser.String(name),
			strings.Join(style.Extensions, " "),
			ui.Dim(strings.Join(tokens, "  ")),
		)
	}
	return nil
}
