package executor

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	exec := New()
	if !exec.Available("echo") {
		t.Skip("echo not available")
	}

	out, err := exec.Execute(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}
}

func TestExecuteInDir(t *testing.T) {
	exec := New()
	if !exec.Available("pwd") {
		t.Skip("pwd not available")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	out, err := exec.ExecuteInDir(context.Background(), dir, "pwd")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	if got := strings.TrimSpace(out); got != dir {
		t.Errorf("ExecuteInDir() = %q, want %q", got, dir)
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	exec := New()
	if exec.Available("definitely-not-a-real-binary-xyz") {
		t.Fatal("Available() = true for missing binary")
	}
	if _, err := exec.Execute(context.Background(), "definitely-not-a-real-binary-xyz"); err == nil {
		t.Error("Execute() should fail for missing binary")
	}
}
