package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotatingWriterCreatesFileAndDirectory(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "logs", "capture.log")

	rw, err := NewRotatingWriter(logFile, 1, 2)
	if err != nil {
		t.Fatalf("NewRotatingWriter: %v", err)
	}
	defer rw.Close()

	if _, err := rw.Write([]byte("frame summary\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "frame summary") {
		t.Fatalf("log file missing written line, got %q", data)
	}
}

func TestRotatingWriterAppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "capture.log")
	if err := os.WriteFile(logFile, []byte("old line\n"), 0600); err != nil {
		t.Fatal(err)
	}

	rw, err := NewRotatingWriter(logFile, 1, 2)
	if err != nil {
		t.Fatalf("NewRotatingWriter: %v", err)
	}
	defer rw.Close()

	if _, err := rw.Write([]byte("new line\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, "old line") || !strings.Contains(got, "new line") {
		t.Fatalf("expected both lines after append, got %q", got)
	}
}

func TestRotatingWriterRotatesAndBoundsBackups(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "capture.log")

	rw, err := NewRotatingWriter(logFile, 1, 2)
	if err != nil {
		t.Fatalf("NewRotatingWriter: %v", err)
	}
	defer rw.Close()

	// Shrink the threshold so a handful of writes forces several
	// rotations without megabytes of test I/O.
	rw.maxSize = 32

	line := bytes.Repeat([]byte("x"), 20)
	line = append(line, '\n')
	for i := 0; i < 6; i++ {
		if _, err := rw.Write(line); err != nil {
			t.Fatalf("Write %d: %v", i, err)
		}
	}

	for _, name := range []string{"capture.log", "capture.log.1", "capture.log.2"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "capture.log.3")); !os.IsNotExist(err) {
		t.Fatalf("backup count exceeded maxBackups, stat err = %v", err)
	}

	// The current file restarts small after the most recent rotation.
	info, err := os.Stat(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > 32 {
		t.Fatalf("current file not rotated, size = %d", info.Size())
	}
}

func TestTeeWriterWritesBoth(t *testing.T) {
	var a, b bytes.Buffer
	w := TeeWriter(&a, &b)

	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if a.String() != "hello" || b.String() != "hello" {
		t.Fatalf("tee mismatch: a=%q b=%q", a.String(), b.String())
	}
}
