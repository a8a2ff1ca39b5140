package chat

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.go")
	content := "package main\n\nfunc main() {}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewFileLoader(0)
	fc, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if fc.Text != content {
		t.Errorf("Load().Text = %q, want %q", fc.Text, content)
	}
	if fc.Path != path {
		t.Errorf("Load().Path = %q, want %q", fc.Path, path)
	}
	if fc.Size != int64(len(content)) {
		t.Errorf("Load().Size = %d, want %d", fc.Size, len(content))
	}
}

func TestFileLoader_NotFound(t *testing.T) {
	loader := NewFileLoader(0)
	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.py"))
	assertFileErrorKind(t, err, FileNotFound)
}

func TestFileLoader_TooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.bin")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 128)), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewFileLoader(64)
	_, err := loader.Load(path)
	assertFileErrorKind(t, err, FileTooLarge)
}

func TestFileLoader_Directory(t *testing.T) {
	loader := NewFileLoader(0)
	_, err := loader.Load(t.TempDir())
	assertFileErrorKind(t, err, FileNotReadable)
}

// Loading the same unchanged file twice yields identical content.
func TestFileLoader_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stable.txt")
	if err := os.WriteFile(path, []byte("same bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewFileLoader(0)
	first, err := loader.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := loader.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if first.Text != second.Text {
		t.Errorf("repeat load differs: %q vs %q", first.Text, second.Text)
	}
}

func assertFileErrorKind(t *testing.T, err error, want FileErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var ferr *FileError
	if !errors.As(err, &ferr) {
		t.Fatalf("error type = %T, want *FileError", err)
	}
	if ferr.Kind != want {
		t.Errorf("FileError.Kind = %v, want %v", ferr.Kind, want)
	}
}
