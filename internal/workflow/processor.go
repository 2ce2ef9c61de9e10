package workflow

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"conform/internal/classify"
	"conform/internal/commit"
	"conform/internal/config"
	"conform/internal/ffmpeg"
	"conform/internal/history"
	"conform/internal/logging"
	"conform/internal/media"
	"conform/internal/plan"
	"conform/internal/profile"
)

// CommandRunner executes one planned invocation. ffmpeg.Executor is the
// production implementation; tests substitute fakes.
type CommandRunner interface {
	Run(ctx context.Context, command plan.Command) error
}

// ProbeFunc inspects a media file and returns its descriptor.
type ProbeFunc func(ctx context.Context, path string) (media.Descriptor, error)

// Outcome is the result of processing one file.
type Outcome struct {
	Path     string
	Action   classify.Action
	Reason   string
	Status   string
	Sidecars []string
	Duration time.Duration
	Err      error
}

// Processor runs the probe-classify-plan-execute-commit pipeline for a
// single file.
type Processor struct {
	policy profile.Policy
	probe  ProbeFunc
	runner CommandRunner
	logger *slog.Logger
}

// NewProcessor builds a processor wired to the real ffprobe and ffmpeg
// binaries from configuration.
func NewProcessor(cfg *config.Config, logger *slog.Logger) *Processor {
	ffprobeBinary := cfg.FFprobeBinary()
	return NewProcessorWithTooling(
		profile.FromConfig(cfg),
		func(ctx context.Context, path string) (media.Descriptor, error) {
			return media.Probe(ctx, ffprobeBinary, path)
		},
		ffmpeg.New(cfg.FFmpegBinary(), logger),
		logger,
	)
}

// NewProcessorWithTooling builds a processor with explicit collaborators.
func NewProcessorWithTooling(pol profile.Policy, probe ProbeFunc, runner CommandRunner, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		policy: pol,
		probe:  probe,
		runner: runner,
		logger: logging.WithComponent(logger, "processor"),
	}
}

// Process runs the full pipeline for one file. The returned outcome always
// carries the classification when probing succeeded; Err is set when any
// later stage failed.
func (p *Processor) Process(ctx context.Context, path string) Outcome {
	start := time.Now()
	outcome := Outcome{Path: path, Status: history.StatusFailed}
	defer func() { outcome.Duration = time.Since(start) }()

	desc, err := p.probe(ctx, path)
	if err != nil {
		outcome.Err = fmt.Errorf("%w: %w", ErrProbe, err)
		return outcome
	}

	decision := classify.Classify(desc, p.policy)
	outcome.Action = decision.Action
	outcome.Reason = decision.Reason.String()

	log := p.logger.With(
		logging.String(logging.FieldFile, path),
		logging.String(logging.FieldAction, decision.Action.String()),
	)
	log.Info("classified", logging.String("reason", outcome.Reason))

	commands, err := plan.Build(desc, decision, p.policy)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	switch decision.Action {
	case classify.ActionPass:
		outcome.Status = history.StatusSkipped
		return outcome

	case classify.ActionExternalAudio:
		return p.extractSidecars(ctx, log, commands, outcome)

	default:
		return p.replaceInPlace(ctx, log, path, commands, outcome)
	}
}

// extractSidecars runs each audio extraction independently so completed
// sidecars survive a later failure: every planned stream is attempted even
// after one fails, and successes are recorded alongside the aggregated
// error. A sidecar that appeared since classification is skipped rather
// than rebuilt.
func (p *Processor) extractSidecars(ctx context.Context, log *slog.Logger, commands []plan.Command, outcome Outcome) Outcome {
	var failures []error
	for _, command := range commands {
		if _, err := os.Stat(command.Output); err == nil {
			log.Info("sidecar already present", logging.String("sidecar", command.Output))
			continue
		}
		if err := p.runner.Run(ctx, command); err != nil {
			failures = append(failures, err)
			log.Warn("sidecar extraction failed", logging.String("sidecar", command.Output), logging.Error(err))
			continue
		}
		outcome.Sidecars = append(outcome.Sidecars, command.Output)
		log.Info("sidecar written", logging.String("sidecar", command.Output))
	}
	if len(failures) > 0 {
		outcome.Err = fmt.Errorf("%w: %w", ErrExecution, errors.Join(failures...))
		return outcome
	}
	outcome.Status = history.StatusCompleted
	return outcome
}

// replaceInPlace handles remux and transcode: run the single planned
// invocation into a temp artifact, then swap it into the library slot.
func (p *Processor) replaceInPlace(ctx context.Context, log *slog.Logger, path string, commands []plan.Command, outcome Outcome) Outcome {
	if len(commands) != 1 {
		outcome.Err = fmt.Errorf("expected one command for %s, got %d", outcome.Action, len(commands))
		return outcome
	}
	command := commands[0]

	if err := p.runner.Run(ctx, command); err != nil {
		outcome.Err = fmt.Errorf("%w: %w", ErrExecution, err)
		return outcome
	}

	target := profile.TargetPath(path)
	if err := commit.Replace(path, command.Output, target, p.policy.KeepBackups, p.logger); err != nil {
		// The temp artifact is worthless once the swap fails; leaving it
		// behind would also hide it from future scans.
		if removeErr := os.Remove(command.Output); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			log.Warn("unable to remove temp artifact", logging.String("artifact", command.Output), logging.Error(removeErr))
		}
		outcome.Err = fmt.Errorf("%w: %w", ErrCommit, err)
		return outcome
	}

	log.Info("replaced", logging.String("target", target))
	outcome.Status = history.StatusCompleted
	return outcome
}
