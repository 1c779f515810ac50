package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// DreamExcerpt is a short passage with repeated words and tied counts.
const DreamExcerpt = "I have a dream. I have a dream today!"

// WriteText writes content to name inside a fresh temp directory and returns the path.
func WriteText(t testing.TB, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadText returns the file contents as a string.
func ReadText(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
