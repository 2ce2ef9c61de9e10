package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"conform/internal/profile"
)

// WriteMediaFile plants a fixture of exactly size bytes at path, creating
// parent directories as needed. The content is derived from the file name so
// distinct fixtures never compare byte-equal.
func WriteMediaFile(t testing.TB, path string, size int64) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if size < 1 {
		size = 1
	}

	seed := byte(len(filepath.Base(path)))
	content := make([]byte, size)
	for i := range content {
		content[i] = seed ^ byte(i)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSidecar plants a stereo sidecar next to sourcePath for the given
// language tag and returns its path.
func WriteSidecar(t testing.TB, sourcePath, lang string) string {
	t.Helper()

	path := profile.SidecarPath(sourcePath, lang)
	WriteMediaFile(t, path, 1024)
	return path
}
