package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	child := WithComponent(logger, "classifier")
	child.Info("decision made",
		String(FieldFile, "/library/movie one.mkv"),
		String(FieldAction, "remux"),
		Int("streams", 2),
	)

	line := buf.String()
	if !strings.Contains(line, "INFO classifier: decision made") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, `file="/library/movie one.mkv"`) {
		t.Fatalf("expected quoted file attr, got: %q", line)
	}
	if !strings.Contains(line, "action=remux") || !strings.Contains(line, "streams=2") {
		t.Fatalf("missing attrs in line: %q", line)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible", Error(errors.New("boom")))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be suppressed: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "error=boom") {
		t.Fatalf("unexpected warn line: %q", out)
	}
}

func TestJSONFormatAndLogFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", LogDir: dir, Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello", String("k", "v"))

	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Fatalf("unexpected json output: %q", buf.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "conform.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"k":"v"`) {
		t.Fatalf("log file missing entry: %q", string(data))
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
