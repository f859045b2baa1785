package safeio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeReadFile_InsideRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fsys, err := NewSafeFS(root)
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	b, err := fsys.SafeReadFile("sub/a.txt")
	if err != nil {
		t.Fatalf("SafeReadFile: %v", err)
	}
	if string(b) != "hello" {
		t.Fatalf("got %q", b)
	}
}

func TestSafeReadFile_TraversalRejected(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "outside.txt")
	_ = os.WriteFile(outside, []byte("secret"), 0o644)
	defer os.Remove(outside)

	fsys, err := NewSafeFS(root)
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	if _, err := fsys.SafeReadFile("../outside.txt"); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
}

func TestSafeWriteFile_CreatesParents(t *testing.T) {
	root := t.TempDir()
	fsys, err := NewSafeFS(root)
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	if err := fsys.SafeWriteFile("modules/vpc/main.tf", []byte("# tf")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(root, "modules", "vpc", "main.tf"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "# tf" {
		t.Fatalf("got %q", b)
	}
}

func TestSafeWriteFile_EscapeRejected(t *testing.T) {
	root := t.TempDir()
	fsys, err := NewSafeFS(root)
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	if err := fsys.SafeWriteFile("../evil.txt", []byte("x")); err == nil {
		t.Fatal("expected write escape to be rejected")
	}
	if err := fsys.SafeWriteFile("a/../../evil.txt", []byte("x")); err == nil {
		t.Fatal("expected cleaned escape to be rejected")
	}
}
