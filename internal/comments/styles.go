// Package comments strips comments from source text using a per-language
// table of comment styles. The built-in table covers common languages and can
// be extended or overridden from a TOML file.
package comments

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Style describes how one language writes comments.
type Style struct {
	// Name is the lookup key, lower-case.
	Name string
	// Extensions are filename extensions (with dot) selecting this style.
	Extensions []string
	// Line holds line-comment introducers, e.g. "//" or "#".
	Line []string
	// BlockStart and BlockEnd delimit block comments; empty means the
	// language has none.
	BlockStart string
	BlockEnd   string
	// Quotes are the string-literal quote characters; comment tokens inside
	// a quoted literal are ignored.
	Quotes string
}

// DefaultStyles returns the built-in comment styles.
func DefaultStyles() []Style {
	return []Style{
		{
			Name:       "go",
			Extensions: []string{".go"},
			Line:       []string{"//"},
			BlockStart: "/*",
			BlockEnd:   "*/",
			Quotes:     "\"'`",
		},
		{
			Name:       "c",
			Extensions: []string{".c", ".h", ".cpp", ".hpp", ".cc", ".java", ".js", ".ts"},
			Line:       []string{"//"},
			BlockStart: "/*",
			BlockEnd:   "*/",
			Quotes:     "\"'",
		},
		{
			Name:       "python",
			Extensions: []string{".py"},
			Line:       []string{"#"},
			Quotes:     "\"'",
		},
		{
			Name:       "shell",
			Extensions: []string{".sh", ".bash", ".zsh"},
			Line:       []string{"#"},
			Quotes:     "\"'",
		},
		{
			Name:       "ruby",
			Extensions: []string{".rb"},
			Line:       []string{"#"},
			Quotes:     "\"'",
		},
		{
			Name:       "lisp",
			Extensions: []string{".lisp", ".el", ".scm", ".clj"},
			Line:       []string{";"},
			Quotes:     "\"",
		},
		{
			Name:       "sql",
			Extensions: []string{".sql"},
			Line:       []string{"--"},
			BlockStart: "/*",
			BlockEnd:   "*/",
			Quotes:     "'",
		},
		{
			Name:       "lua",
			Extensions: []string{".lua"},
			Line:       []string{"--"},
			Quotes:     "\"'",
		},
		{
			Name:       "html",
			Extensions: []string{".html", ".htm", ".xml"},
			BlockStart: "<!--",
			BlockEnd:   "-->",
		},
		{
			Name:       "css",
			Extensions: []string{".css"},
			BlockStart: "/*",
			BlockEnd:   "*/",
			Quotes:     "\"'",
		},
		{
			Name:       "ini",
			Extensions: []string{".ini", ".cfg", ".conf"},
			Line:       []string{";", "#"},
		},
	}
}

// Table indexes styles by name and extension.
type Table struct {
	byName map[string]Style
	byExt  map[string]Style
}

// NewTable builds a table from the given styles. Later entries by the same
// name replace earlier ones.
func NewTable(styles []Style) *Table {
	t := &Table{
		byName: make(map[string]Style),
		byExt:  make(map[string]Style),
	}
	for _, s := range styles {
		t.add(s)
	}
	return t
}

// DefaultTable builds the table of built-in styles.
func DefaultTable() *Table {
	return NewTable(DefaultStyles())
}

func (t *Table) add(s Style) {
	s.Name = strings.ToLower(s.Name)
	t.byName[s.Name] = s
	for _, ext := range s.Extensions {
		t.byExt[strings.ToLower(ext)] = s
	}
}

// ByName looks up a style by language name, case-insensitive.
func (t *Table) ByName(name string) (Style, bool) {
	s, ok := t.byName[strings.ToLower(name)]
	return s, ok
}

// ByExtension looks up a style by filename extension (with dot).
func (t *Table) ByExtension(ext string) (Style, bool) {
	s, ok := t.byExt[strings.ToLower(ext)]
	return s, ok
}

// Names returns the known style names, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// tomlStyle mirrors a [styles.<name>] section of a styles override file.
type tomlStyle struct {
	Extensions []string `toml:"extensions"`
	Line       []string `toml:"line"`
	BlockStart string   `toml:"block_start"`
	BlockEnd   string   `toml:"block_end"`
	Quotes     string   `toml:"quotes"`
}

// tomlStyles is the top-level structure of a styles override file.
type tomlStyles struct {
	Styles map[string]tomlStyle `toml:"styles"`
}

// MergeTOML merges style definitions from a TOML file into the table,
// replacing built-in styles of the same name.
func (t *Table) MergeTOML(path string) error {
	var parsed tomlStyles
	if _, err := toml.DecodeFile(path, &parsed); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("styles file %q not found: %w", path, err)
		}
		return fmt.Errorf("parsing styles file %q: %w", path, err)
	}

	for name, ts := range parsed.Styles {
		if len(ts.Line) == 0 && ts.BlockStart == "" {
			return fmt.Errorf("style %q declares no comment tokens", name)
		}
		if (ts.BlockStart == "") != (ts.BlockEnd == "") {
			return fmt.Errorf("style %q must declare both block_start and block_end", name)
		}
		t.add(Style{
			Name:       name,
			Extensions: ts.Extensions,
			Line:       ts.Line,
			BlockStart: ts.BlockStart,
			BlockEnd:   ts.BlockEnd,
			Quotes:     ts.Quotes,
		})
	}
	return nil
}
