package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"conform/internal/logging"
	"conform/internal/scan"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func collect(t *testing.T, opts scan.Options) []string {
	t.Helper()
	var paths []string
	err := scan.Walk(context.Background(), opts, logging.NewNop(), func(c scan.Candidate) error {
		paths = append(paths, c.Path)
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	return paths
}

func TestWalkFiltersByExtensionAndSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "movie.mkv"), 2048)
	writeFile(t, filepath.Join(root, "shows", "pilot.mp4"), 2048)
	writeFile(t, filepath.Join(root, "notes.txt"), 2048)
	writeFile(t, filepath.Join(root, "tiny.mkv"), 10)
	writeFile(t, filepath.Join(root, "noext"), 2048)

	paths := collect(t, scan.Options{
		Root:         root,
		Extensions:   []string{"mkv", "mp4"},
		MinSizeBytes: 1024,
	})

	want := []string{
		filepath.Join(root, "movie.mkv"),
		filepath.Join(root, "shows", "pilot.mp4"),
	}
	if len(paths) != len(want) {
		t.Fatalf("candidates = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("candidates = %v, want %v", paths, want)
		}
	}
}

func TestWalkAcceptsDottedExtensionConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "movie.MKV"), 2048)

	paths := collect(t, scan.Options{
		Root:       root,
		Extensions: []string{".mkv"},
	})
	if len(paths) != 1 {
		t.Fatalf("expected uppercase extension to match, got %v", paths)
	}
}

func TestWalkSkipsTempArtifacts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "temp_movie.mp4"), 2048)
	writeFile(t, filepath.Join(root, "movie.mp4"), 2048)

	paths := collect(t, scan.Options{
		Root:       root,
		Extensions: []string{"mp4"},
	})
	if len(paths) != 1 || filepath.Base(paths[0]) != "movie.mp4" {
		t.Fatalf("candidates = %v, want only movie.mp4", paths)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	err := scan.Walk(context.Background(), scan.Options{Root: filepath.Join(t.TempDir(), "absent")}, logging.NewNop(), func(scan.Candidate) error {
		t.Fatal("callback should not run")
		return nil
	})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestWalkHonorsCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "movie.mkv"), 2048)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := scan.Walk(ctx, scan.Options{Root: root, Extensions: []string{"mkv"}}, logging.NewNop(), func(scan.Candidate) error {
		t.Fatal("callback should not run after cancellation")
		return nil
	})
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
