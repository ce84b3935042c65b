package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// ConfigDir returns the toolbelt configuration directory, honoring
// XDG_CONFIG_HOME when set.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "toolbelt")
	}
	return filepath.Join(HomeDir(), ".config", "toolbelt")
}

// DataDir returns the toolbelt data directory, honoring XDG_DATA_HOME
// when set. The hop bookmark store lives underneath it.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "toolbelt")
	}
	return filepath.Join(HomeDir(), ".local", "share", "toolbelt")
}

// ExpandPath expands a leading ~ to the user's home directory and returns
// the path cleaned. Relative paths are returned unchanged apart from cleaning.
func ExpandPath(path string) string {
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
