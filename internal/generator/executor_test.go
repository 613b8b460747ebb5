package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileOp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.txt")

	op := &WriteFileOp{
		Path:    path,
		Content: []byte("hello"),
		Mode:    0644,
	}

	if err := op.Validate(context.Background(), false); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if err := op.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("content = %q, want %q", got, "hello")
	}
}

func TestWriteFileOpConflict(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	op := &WriteFileOp{Path: path, Content: []byte("new"), Mode: 0644}

	if err := op.Validate(context.Background(), false); err == nil {
		t.Error("expected conflict error for existing file")
	}
	if err := op.Validate(context.Background(), true); err != nil {
		t.Errorf("force validate failed: %v", err)
	}
}

func TestWriteFileOpNilContent(t *testing.T) {
	op := &WriteFileOp{Path: filepath.Join(t.TempDir(), "f"), Content: nil}
	if err := op.Validate(context.Background(), false); err == nil {
		t.Error("expected error for nil content")
	}
}

func TestExecutorContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "exists.txt")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ops := []Operation{
		&WriteFileOp{Path: existing, Content: []byte("conflict"), Mode: 0644},
		&WriteFileOp{Path: filepath.Join(dir, "ok.txt"), Content: []byte("fine"), Mode: 0644},
	}

	result, err := NewExecutor(false).Execute(context.Background(), ops)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %d, want 1", len(result.Warnings))
	}
	if len(result.Executed) != 1 {
		t.Errorf("executed = %d, want 1", len(result.Executed))
	}
	if !result.Failed() {
		t.Error("Failed() = false, want true")
	}

	if _, err := os.Stat(filepath.Join(dir, "ok.txt")); err != nil {
		t.Errorf("second file not written: %v", err)
	}
}

func TestExecutorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ops := []Operation{
		&WriteFileOp{Path: filepath.Join(t.TempDir(), "f"), Content: []byte("x"), Mode: 0644},
	}

	_, err := NewExecutor(false).Execute(ctx, ops)
	if err == nil {
		t.Error("expected context error")
	}
}
