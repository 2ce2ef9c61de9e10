package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"conform/internal/config"
	"conform/internal/history"
	"conform/internal/logging"
	"conform/internal/preflight"
	"conform/internal/scan"
)

// CycleStats summarizes one processing cycle.
type CycleStats struct {
	RunID     string
	Scanned   int
	Completed int
	Skipped   int
	Failed    int
	Elapsed   time.Duration
}

// Manager coordinates processing cycles over the configured library root.
type Manager struct {
	cfg       *config.Config
	store     *history.Store
	processor *Processor
	logger    *slog.Logger

	scanInterval  time.Duration
	errorCooldown time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	lastErr error
}

// NewManager constructs a manager wired to the real tooling.
func NewManager(cfg *config.Config, store *history.Store, logger *slog.Logger) *Manager {
	return NewManagerWithProcessor(cfg, store, NewProcessor(cfg, logger), logger)
}

// NewManagerWithProcessor constructs a manager with an explicit processor
// (used in tests).
func NewManagerWithProcessor(cfg *config.Config, store *history.Store, processor *Processor, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		cfg:           cfg,
		store:         store,
		processor:     processor,
		logger:        logging.WithComponent(logger, "workflow"),
		scanInterval:  time.Duration(cfg.Daemon.ScanIntervalSeconds) * time.Second,
		errorCooldown: time.Duration(cfg.Daemon.ErrorCooldownSeconds) * time.Second,
	}
}

// RunCycle performs one full pass over the library: preflight, scan, and
// per-file processing. Individual file failures are journaled and do not
// stop the cycle; the returned error covers cycle-level faults only.
func (m *Manager) RunCycle(ctx context.Context) (CycleStats, error) {
	start := time.Now()
	stats := CycleStats{RunID: uuid.NewString()}
	log := m.logger.With(logging.String(logging.FieldRunID, stats.RunID))

	if failed := preflight.Failed(preflight.RunAll(m.cfg)); len(failed) > 0 {
		return stats, fmt.Errorf("%w: %s", ErrPreflight, preflight.Summarize(failed))
	}

	log.Info("cycle started", logging.String("root", m.cfg.Paths.SourceDir))

	walkErr := scan.Walk(ctx, scan.FromConfig(m.cfg), m.logger, func(candidate scan.Candidate) error {
		stats.Scanned++
		outcome := m.processor.Process(ctx, candidate.Path)
		m.recordOutcome(ctx, log, stats.RunID, outcome)

		switch outcome.Status {
		case history.StatusCompleted:
			stats.Completed++
		case history.StatusSkipped:
			stats.Skipped++
		default:
			stats.Failed++
			log.Error("file failed",
				logging.String(logging.FieldFile, outcome.Path),
				logging.Error(outcome.Err),
			)
		}

		// A canceled context aborts the walk; anything else is per-file.
		return ctx.Err()
	})

	stats.Elapsed = time.Since(start)
	if walkErr != nil {
		return stats, walkErr
	}

	log.Info("cycle finished",
		logging.Int("scanned", stats.Scanned),
		logging.Int("completed", stats.Completed),
		logging.Int("skipped", stats.Skipped),
		logging.Int("failed", stats.Failed),
		logging.Duration("elapsed", stats.Elapsed),
	)
	return stats, nil
}

func (m *Manager) recordOutcome(ctx context.Context, log *slog.Logger, runID string, outcome Outcome) {
	rec := history.Record{
		RunID:           runID,
		Path:            outcome.Path,
		Action:          outcome.Action.String(),
		Reason:          outcome.Reason,
		Status:          outcome.Status,
		DurationSeconds: outcome.Duration.Seconds(),
	}
	if outcome.Err != nil {
		rec.ErrorMessage = outcome.Err.Error()
	}
	if _, err := m.store.Append(ctx, rec); err != nil {
		log.Warn("failed to journal outcome",
			logging.String(logging.FieldFile, outcome.Path),
			logging.Error(err),
		)
	}
}

// Start begins the polling loop in the background.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return errors.New("workflow already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	go m.runLoop(runCtx)
	return nil
}

// Stop terminates the polling loop and waits for completion.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

// Running reports whether the polling loop is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// LastError returns the most recent cycle-level error, if any.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) setLastError(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

func (m *Manager) runLoop(ctx context.Context) {
	defer m.wg.Done()

	for {
		_, err := m.RunCycle(ctx)
		delay := m.scanInterval
		if err != nil && !errors.Is(err, context.Canceled) {
			m.setLastError(err)
			m.logger.Error("cycle failed", logging.Error(err))
			delay = m.errorCooldown
		} else if err == nil {
			m.setLastError(nil)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}
