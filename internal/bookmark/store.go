// Package bookmark manages directory bookmarks as a directory of symlinks:
// each bookmark is a symlink <marks-dir>/<name> pointing at an absolute
// directory path. The store itself is the only persistent state any of the
// toolbelt binaries keep.
package bookmark

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/mhersch/toolbelt/internal/logging"
)

// Store errors that call sites branch on.
var (
	// ErrNotFound is returned when a bookmark name does not exist.
	ErrNotFound = errors.New("bookmark not found")
	// ErrExists is returned when adding a name that is already taken.
	ErrExists = errors.New("bookmark already exists")
	// ErrNotDirectory is returned when the target of an add is not a directory.
	ErrNotDirectory = errors.New("target is not a directory")
	// ErrBadName is returned for names that cannot be a single path element.
	ErrBadName = errors.New("invalid bookmark name")
)

// namePattern restricts bookmark names to a single safe path element.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Bookmark is one entry of the store.
type Bookmark struct {
	// Name is the symlink name.
	Name string
	// Target is the directory the symlink points at.
	Target string
	// Dangling is true when the target no longer exists or is not a directory.
	Dangling bool
}

// Store is a directory of bookmark symlinks.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// the first write operation.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Add creates a bookmark pointing at target, which must be an existing
// directory. The target is resolved to an absolute path first so the
// bookmark survives changes of working directory.
func (s *Store) Add(name, target string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", target, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("target %q: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %q", ErrNotDirectory, abs)
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("creating marks directory: %w", err)
	}

	link := filepath.Join(s.dir, name)
	if _, err := os.Lstat(link); err == nil {
		return fmt.Errorf("%w: %q", ErrExists, name)
	}

	if err := os.Symlink(abs, link); err != nil {
		return fmt.Errorf("creating bookmark %q: %w", name, err)
	}

	logging.Debug("bookmark added", logging.Bookmark(name), logging.Path(abs))
	return nil
}

// Remove deletes a bookmark by name.
func (s *Store) Remove(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}

	link := filepath.Join(s.dir, name)
	info, err := os.Lstat(link)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		// Not ours to delete.
		return fmt.Errorf("%w: %q is not a bookmark symlink", ErrBadName, name)
	}

	if err := os.Remove(link); err != nil {
		return fmt.Errorf("removing bookmark %q: %w", name, err)
	}

	logging.Debug("bookmark removed", logging.Bookmark(name))
	return nil
}

// Resolve returns the target directory of a bookmark. Dangling bookmarks
// resolve with an error naming the stale target.
func (s *Store) Resolve(name string) (string, error) {
	if !namePattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}

	link := filepath.Join(s.dir, name)
	target, err := os.Readlink(link)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return "", err
	}

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %q points at missing directory %q", ErrNotDirectory, name, target)
	}
	return target, nil
}

// List returns all bookmarks sorted by name, flagging dangling entries.
// A missing marks directory is an empty store, not an error.
func (s *Store) List() ([]Bookmark, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading marks directory: %w", err)
	}

	var marks []Bookmark
	for _, e := range entries {
		if e.Type()&os.ModeSymlink == 0 {
			continue // stray non-symlink files are not bookmarks
		}
		name := e.Name()
		target, err := os.Readlink(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		b := Bookmark{Name: name, Target: target}
		if info, err := os.Stat(target); err != nil || !info.IsDir() {
			b.Dangling = true
		}
		marks = append(marks, b)
	}

	sort.Slice(marks, func(i, j int) bool { return marks[i].Name < marks[j].Name })
	return marks, nil
}

// Prune removes all dangling bookmarks and returns their names.
func (s *Store) Prune() ([]string, error) {
	marks, err := s.List()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, b := range marks {
		if !b.Dangling {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, b.Name)); err != nil {
			return removed, fmt.Errorf("pruning bookmark %q: %w", b.Name, err)
		}
		removed = append(removed, b.Name)
	}

	logging.Debug("pruned bookmarks", logging.Count(len(removed)))
	return removed, nil
}
