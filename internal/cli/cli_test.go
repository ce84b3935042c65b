package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mhersch/toolbelt/internal/comments"
	"github.com/mhersch/toolbelt/internal/ui"
)

// captureOutput runs fn with stdout and stderr redirected to pipes.
func captureOutput(t *testing.T, fn func() error) (stdout, stderr string, err error) {
	t.Helper()

	oldOut, oldErr := os.Stdout, os.Stderr
	rOut, wOut, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("pipe: %v", pipeErr)
	}
	rErr, wErr, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("pipe: %v", pipeErr)
	}
	os.Stdout, os.Stderr = wOut, wErr

	err = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout, os.Stderr = oldOut, oldErr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	return string(outBytes), string(errBytes), err
}

// isolate points config and data lookups at empty temp directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	ui.DisableColors()
	t.Cleanup(ui.EnableColors)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestVersionVariables(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

func TestMarkcatExtractsBlock(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "in.txt",
		"# -- mark begin --\nhello\nworld\n# -- mark end --\n")

	stdout, _, err := captureOutput(t, func() error {
		return RunMarkcat(context.Background(), []string{"markcat", path})
	})
	if err != nil {
		t.Fatalf("RunMarkcat() error: %v", err)
	}
	if stdout != "hello\nworld\n" {
		t.Errorf("stdout = %q, want %q", stdout, "hello\nworld\n")
	}
}

func TestMarkcatStatsSummary(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "in.txt",
		"# -- mark begin --\nhello\n# -- mark end --\n")

	_, stderr, err := captureOutput(t, func() error {
		return RunMarkcat(context.Background(), []string{"markcat", "--stats", path})
	})
	if err != nil {
		t.Fatalf("RunMarkcat() error: %v", err)
	}
	if !strings.Contains(stderr, "3 lines scanned, 1 lines printed, 0 errors") {
		t.Errorf("stderr = %q, want summary", stderr)
	}
}

func TestMarkcatErrorsMakeRunFail(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "in.txt", "# -- mark end --\n")

	stdout, stderr, err := captureOutput(t, func() error {
		return RunMarkcat(context.Background(), []string{"markcat", path})
	})
	if !errors.Is(err, ErrRanWithErrors) {
		t.Fatalf("error = %v, want ErrRanWithErrors", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "unmatched end") {
		t.Errorf("stderr = %q, want diagnostic", stderr)
	}
}

func TestMarkcatQuietStillFails(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "in.txt", "# -- mark end --\n")

	_, stderr, err := captureOutput(t, func() error {
		return RunMarkcat(context.Background(), []string{"markcat", "--quiet", path})
	})
	if !errors.Is(err, ErrRanWithErrors) {
		t.Fatalf("error = %v, want ErrRanWithErrors", err)
	}
	if strings.Contains(stderr, "unmatched") {
		t.Errorf("stderr = %q, want diagnostics suppressed", stderr)
	}
}

func TestMarkcatListMode(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "in.txt",
		"# -- mark begin --\nnever shown\n# -- mark end --\n")

	stdout, _, err := captureOutput(t, func() error {
		return RunMarkcat(context.Background(), []string{"markcat", "--list", path})
	})
	if err != nil {
		t.Fatalf("RunMarkcat() error: %v", err)
	}
	if stdout != path+"\n" {
		t.Errorf("stdout = %q, want bare path", stdout)
	}
}

func TestMarkcatMaxLineLengthFlag(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "in.txt",
		"# -- mark begin --\n"+strings.Repeat("x", 80)+"\n# -- mark end --\n")

	_, stderr, err := captureOutput(t, func() error {
		return RunMarkcat(context.Background(), []string{"markcat", "--max-line-length", "40", path})
	})
	if !errors.Is(err, ErrRanWithErrors) {
		t.Fatalf("error = %v, want ErrRanWithErrors", err)
	}
	if !strings.Contains(stderr, "maximum length") {
		t.Errorf("stderr = %q, want line-length diagnostic", stderr)
	}
}

func TestDecommentFileByExtension(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "in.go",
		"// header\npackage main // trailing\n")

	stdout, _, err := captureOutput(t, func() error {
		return RunDecomment(context.Background(), []string{"decomment", path})
	})
	if err != nil {
		t.Fatalf("RunDecomment() error: %v", err)
	}
	if stdout != "package main\n" {
		t.Errorf("stdout = %q, want %q", stdout, "package main\n")
	}
}

func TestDecommentLangOverride(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "in.txt", "value ; note\n")

	stdout, _, err := captureOutput(t, func() error {
		return RunDecomment(context.Background(), []string{"decomment", "--lang", "lisp", path})
	})
	if err != nil {
		t.Fatalf("RunDecomment() error: %v", err)
	}
	if stdout != "value\n" {
		t.Errorf("stdout = %q, want %q", stdout, "value\n")
	}
}

func TestDecommentUnknownExtension(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "in.xyz", "data\n")

	_, _, err := captureOutput(t, func() error {
		return RunDecomment(context.Background(), []string{"decomment", path})
	})
	if err == nil || !strings.Contains(err.Error(), "no comment style") {
		t.Errorf("error = %v, want no-comment-style error", err)
	}
}

func TestDecommentListStyles(t *testing.T) {
	isolate(t)

	stdout, _, err := captureOutput(t, func() error {
		return RunDecomment(context.Background(), []string{"decomment", "--list"})
	})
	if err != nil {
		t.Fatalf("RunDecomment() error: %v", err)
	}
	for _, want := range []string{"Go", "Python", ".sql"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestStyleForFile(t *testing.T) {
	table := comments.DefaultTable()

	if _, err := styleForFile(table, "", "main.go"); err != nil {
		t.Errorf("styleForFile by extension: %v", err)
	}
	if _, err := styleForFile(table, "python", "whatever.bin"); err != nil {
		t.Errorf("styleForFile by lang: %v", err)
	}
	if _, err := styleForFile(table, "", "whatever.bin"); err == nil {
		t.Error("expected error for unknown extension")
	}
	if _, err := styleForFile(table, "cobol", "main.go"); err == nil {
		t.Error("expected error for unknown lang")
	}
}

func TestHopAddGoRemove(t *testing.T) {
	isolate(t)
	target := t.TempDir()
	t.Setenv("TOOLBELT_HOP_MARKS_DIR", filepath.Join(t.TempDir(), "marks"))

	_, _, err := captureOutput(t, func() error {
		return RunHop(context.Background(), []string{"hop", "add", "work", target})
	})
	if err != nil {
		t.Fatalf("hop add error: %v", err)
	}

	stdout, _, err := captureOutput(t, func() error {
		return RunHop(context.Background(), []string{"hop", "go", "work"})
	})
	if err != nil {
		t.Fatalf("hop go error: %v", err)
	}
	if strings.TrimSpace(stdout) == "" || !filepath.IsAbs(strings.TrimSpace(stdout)) {
		t.Errorf("hop go output = %q, want absolute path", stdout)
	}

	_, _, err = captureOutput(t, func() error {
		return RunHop(context.Background(), []string{"hop", "rm", "work"})
	})
	if err != nil {
		t.Fatalf("hop rm error: %v", err)
	}

	_, _, err = captureOutput(t, func() error {
		return RunHop(context.Background(), []string{"hop", "go", "work"})
	})
	if err == nil {
		t.Error("expected error resolving a removed bookmark")
	}
}

func TestHopListNames(t *testing.T) {
	isolate(t)
	target := t.TempDir()
	t.Setenv("TOOLBELT_HOP_MARKS_DIR", filepath.Join(t.TempDir(), "marks"))

	for _, name := range []string{"beta", "alpha"} {
		if _, _, err := captureOutput(t, func() error {
			return RunHop(context.Background(), []string{"hop", "add", name, target})
		}); err != nil {
			t.Fatalf("hop add %s: %v", name, err)
		}
	}

	stdout, _, err := captureOutput(t, func() error {
		return RunHop(context.Background(), []string{"hop", "list", "--names"})
	})
	if err != nil {
		t.Fatalf("hop list error: %v", err)
	}
	if stdout != "alpha\nbeta\n" {
		t.Errorf("hop list --names = %q, want sorted bare names", stdout)
	}
}

func TestHopShellScript(t *testing.T) {
	isolate(t)

	stdout, _, err := captureOutput(t, func() error {
		return RunHop(context.Background(), []string{"hop", "shell", "bash"})
	})
	if err != nil {
		t.Fatalf("hop shell error: %v", err)
	}
	if !strings.Contains(stdout, "hop()") {
		t.Errorf("shell script = %q, want wrapper function", stdout)
	}

	_, _, err = captureOutput(t, func() error {
		return RunHop(context.Background(), []string{"hop", "shell", "fish"})
	})
	if err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestHopAddRequiresName(t *testing.T) {
	isolate(t)

	_, _, err := captureOutput(t, func() error {
		return RunHop(context.Background(), []string{"hop", "add"})
	})
	if err == nil {
		t.Error("expected error when name is missing")
	}
}
