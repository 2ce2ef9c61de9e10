package commit

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"conform/internal/fileutil"
	"conform/internal/logging"
)

// BackupSuffix is appended to the original path during the commit window.
const BackupSuffix = ".bak"

var (
	// ErrMissingInput marks a precondition failure: original or artifact
	// absent. Nothing has been mutated.
	ErrMissingInput = errors.New("commit input missing")
	// ErrRollbackFailed marks the fatal case: the swap failed and the backup
	// could not be restored to the original path.
	ErrRollbackFailed = errors.New("commit rollback failed")
)

// Replace atomically swaps artifactPath into targetPath, retiring
// originalPath via a .bak backup. targetPath may differ from originalPath
// when the container extension changes. With keepBackup false the backup is
// removed after a successful swap; a failed removal is logged, not fatal.
func Replace(originalPath, artifactPath, targetPath string, keepBackup bool, logger *slog.Logger) error {
	log := logging.WithComponent(logger, "commit")

	if err := requireFile(originalPath); err != nil {
		return err
	}
	if err := requireFile(artifactPath); err != nil {
		return err
	}

	backupPath := originalPath + BackupSuffix
	if _, err := os.Stat(backupPath); err == nil {
		// Stale backup from a prior failed run. Removal is best-effort: if it
		// stays locked the rename below fails and reports the real problem.
		if err := os.Remove(backupPath); err != nil {
			log.Warn("unable to remove stale backup",
				logging.String("backup", backupPath),
				logging.Error(err),
			)
		}
	}

	if err := os.Rename(originalPath, backupPath); err != nil {
		return fmt.Errorf("backup original: %w", err)
	}

	if err := clearTarget(targetPath, backupPath); err != nil {
		return rollback(originalPath, backupPath, fmt.Errorf("clear target slot: %w", err), log)
	}

	if err := fileutil.MoveFile(artifactPath, targetPath); err != nil {
		return rollback(originalPath, backupPath, fmt.Errorf("move artifact: %w", err), log)
	}

	if keepBackup {
		log.Info("replacement committed, backup preserved",
			logging.String("target", targetPath),
			logging.String("backup", backupPath),
		)
		return nil
	}

	if err := os.Remove(backupPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		// The swap already succeeded; a lingering backup is a cleanup
		// nuisance, not a protocol failure.
		log.Warn("unable to delete backup after commit",
			logging.String("backup", backupPath),
			logging.Error(err),
		)
	}
	log.Info("replacement committed", logging.String("target", targetPath))
	return nil
}

func requireFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}

func clearTarget(targetPath, backupPath string) error {
	if targetPath == backupPath {
		return nil
	}
	if _, err := os.Stat(targetPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.Remove(targetPath)
}

// rollback restores the backup to the original path after a mid-protocol
// failure. The original error is preserved; a rollback failure supersedes it
// with the fatal marker.
func rollback(originalPath, backupPath string, cause error, log *slog.Logger) error {
	if _, err := os.Stat(backupPath); err != nil {
		return cause
	}
	if _, err := os.Stat(originalPath); err == nil {
		// Original still in place; nothing to restore.
		return cause
	}
	if err := os.Rename(backupPath, originalPath); err != nil {
		log.Error("rollback failed: no valid copy is guaranteed at the original path",
			logging.String("original", originalPath),
			logging.String("backup", backupPath),
			logging.Error(err),
			logging.String("operator_action", "inspect the backup file and restore it manually"),
		)
		return fmt.Errorf("%w: %v (original failure: %v)", ErrRollbackFailed, err, cause)
	}
	log.Warn("commit failed, original restored from backup",
		logging.String("original", originalPath),
		logging.Error(cause),
	)
	return cause
}
