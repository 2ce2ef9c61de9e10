package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"conform/internal/logging"
	"conform/internal/plan"
)

// stderrTailLimit bounds how much diagnostic text gets attached to errors.
const stderrTailLimit = 4096

// Executor runs plan commands against a concrete ffmpeg binary.
type Executor struct {
	binary string
	logger *slog.Logger
}

// New constructs an executor for the given binary.
func New(binary string, logger *slog.Logger) *Executor {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &Executor{binary: binary, logger: logging.WithComponent(logger, "executor")}
}

// Run executes one command to completion. On failure the partial output
// artifact is deleted and the error carries the captured stderr tail. There
// are no retries.
func (e *Executor) Run(ctx context.Context, command plan.Command) error {
	cmd := exec.CommandContext(ctx, e.binary, command.Args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.logger.Debug("invoking ffmpeg",
		logging.String("binary", e.binary),
		logging.String("output", command.Output),
		logging.Int("arg_count", len(command.Args)),
	)

	if err := cmd.Run(); err != nil {
		e.cleanupPartial(command.Output)
		return fmt.Errorf("ffmpeg failed: %w: %s", err, stderrTail(stderr.String()))
	}
	return nil
}

func (e *Executor) cleanupPartial(output string) {
	if strings.TrimSpace(output) == "" {
		return
	}
	if err := os.Remove(output); err != nil && !errors.Is(err, fs.ErrNotExist) {
		e.logger.Warn("unable to remove partial output",
			logging.String("output", output),
			logging.Error(err),
		)
	}
}

func stderrTail(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "(no diagnostic output)"
	}
	if len(trimmed) > stderrTailLimit {
		trimmed = trimmed[len(trimmed)-stderrTailLimit:]
	}
	return trimmed
}
