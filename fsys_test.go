package sng

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestMemFS_WriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	mem := NewMemFS()

	in := []byte("payload bytes")
	if err := mem.WriteFile("out/a.bin", in); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Mutating the caller's slice after the write must not change the store.
	in[0] = 'X'

	got, err := mem.ReadFile("out/a.bin")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, []byte("payload bytes")) {
		t.Fatalf("ReadFile=%q", got)
	}

	// Mutating the returned slice must not change the store either.
	got[0] = 'Y'
	again, err := mem.ReadFile("out/a.bin")
	if err != nil {
		t.Fatal(err)
	}
	if again[0] != 'p' {
		t.Fatalf("stored content changed: %q", again)
	}

	ok, err := mem.Exists("out/a.bin")
	if err != nil || !ok {
		t.Fatalf("Exists=%v err=%v, want true", ok, err)
	}
}

func TestMemFS_ReadMissing(t *testing.T) {
	t.Parallel()

	mem := NewMemFS()

	if _, err := mem.ReadFile("nope.bin"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("ReadFile error = %v, want fs.ErrNotExist", err)
	}

	ok, err := mem.Exists("nope.bin")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("Exists reported a missing file")
	}
}

func TestMemFS_MkdirAllParents(t *testing.T) {
	t.Parallel()

	mem := NewMemFS()
	if err := mem.MkdirAll("a/b/c"); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	for _, dir := range []string{"a", "a/b", "a/b/c"} {
		ok, err := mem.Exists(dir)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("directory %q missing after MkdirAll", dir)
		}
	}
}

func TestMemFS_NormalizesSeparators(t *testing.T) {
	t.Parallel()

	mem := NewMemFS()
	if err := mem.WriteFile(`a\b\c.txt`, []byte("x")); err != nil {
		t.Fatal(err)
	}

	got, err := mem.ReadFile("a/b/c.txt")
	if err != nil {
		t.Fatalf("ReadFile via slash path: %v", err)
	}
	if string(got) != "x" {
		t.Fatalf("content=%q", got)
	}
}

func TestOSFS_Lifecycle(t *testing.T) {
	t.Parallel()

	fsys := OSFS{}
	dir := t.TempDir()

	ok, err := fsys.Exists(filepath.Join(dir, "missing.bin"))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("Exists reported a missing file")
	}

	nested := filepath.Join(dir, "sub", "deep")
	if err := fsys.MkdirAll(nested); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	target := filepath.Join(nested, "file.bin")
	if err := fsys.WriteFile(target, []byte("content")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := fsys.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "content" {
		t.Fatalf("content=%q", got)
	}

	ok, err = fsys.Exists(target)
	if err != nil || !ok {
		t.Fatalf("Exists=%v err=%v, want true", ok, err)
	}
}
