package util

import (
	"path/filepath"
	"testing"
)

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	want := filepath.Join("/tmp/xdg-config", "toolbelt")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestDataDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	want := filepath.Join("/tmp/xdg-data", "toolbelt")
	if got := DataDir(); got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
}

func TestConfigDirDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")

	want := filepath.Join("/home/tester", ".config", "toolbelt")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare tilde", "~", "/home/tester"},
		{"tilde prefix", "~/marks", filepath.Join("/home/tester", "marks")},
		{"absolute", "/var/tmp/x", "/var/tmp/x"},
		{"relative cleaned", "./a/../b", "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
