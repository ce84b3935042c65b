package ui

import (
	"testing"
)

func TestStatusFunctions(t *testing.T) {
	// Disable colors for consistent test output
	DisableColors()
	defer EnableColors()

	tests := []struct {
		name  string
		fn    func(string) string
		input string
		want  string
	}{
		{"StatusSuccess empty", StatusSuccess, "", SymbolSuccess},
		{"StatusSuccess with msg", StatusSuccess, "done", SymbolSuccess + " done"},
		{"StatusError empty", StatusError, "", SymbolError},
		{"StatusError with msg", StatusError, "failed", SymbolError + " failed"},
		{"StatusWarning empty", StatusWarning, "", SymbolWarning},
		{"StatusWarning with msg", StatusWarning, "caution", SymbolWarning + " caution"},
		{"StatusSkipped empty", StatusSkipped, "", SymbolSkipped},
		{"StatusSkipped with msg", StatusSkipped, "skip", SymbolSkipped + " skip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColorToggle(t *testing.T) {
	initial := IsColorEnabled()

	DisableColors()
	if IsColorEnabled() {
		t.Error("expected colors to be disabled")
	}

	EnableColors()
	if !IsColorEnabled() {
		t.Error("expected colors to be enabled")
	}

	if !initial {
		DisableColors()
	}
}

func TestStyleFunctionsPassThrough(t *testing.T) {
	DisableColors()
	defer EnableColors()

	if got := Dim("42"); got != "42" {
		t.Errorf("expected plain pass-through with colors off, got %q", got)
	}
	if got := Header("input.txt"); got != "input.txt" {
		t.Errorf("expected plain pass-through with colors off, got %q", got)
	}
}
