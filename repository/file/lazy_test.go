package file

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLazyFileWriter_CreatesOnFirstWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	w := newLazyFileWriter(path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file exists before any write, stat err = %v", err)
	}

	if _, err := w.Write([]byte("payload")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file missing after first write: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "payload" {
		t.Errorf("content = %q, %v", got, err)
	}
}

func TestLazyFileWriter_EmptyWriteDoesNotCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	w := newLazyFileWriter(path)

	if _, err := w.Write(nil); err != nil {
		t.Fatalf("Write(nil): %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file exists after empty write, stat err = %v", err)
	}
}

func TestLazyFileWriter_TruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	if err := os.WriteFile(path, []byte("previous content"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newLazyFileWriter(path)
	if _, err := w.Write([]byte("new")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil || string(got) != "new" {
		t.Errorf("content = %q, %v", got, err)
	}
}
