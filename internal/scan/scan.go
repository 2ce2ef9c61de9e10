// Package scan walks the library root and yields candidate files for
// normalization, filtered by extension allow-list and minimum size.
package scan

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"conform/internal/config"
	"conform/internal/logging"
)

// Candidate is one file eligible for processing.
type Candidate struct {
	Path string
	Size int64
}

// Options filters the walk.
type Options struct {
	Root         string
	Extensions   []string
	MinSizeBytes int64
}

// FromConfig derives scan options from loaded configuration.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Root:         cfg.Paths.SourceDir,
		Extensions:   cfg.Scan.Extensions,
		MinSizeBytes: cfg.Scan.MinSizeMB * 1024 * 1024,
	}
}

// Walk visits every candidate under the root in lexical order, calling fn
// for each. Unreadable entries are logged and skipped. The walk restarts
// from scratch each call, so every cycle sees current filesystem state.
func Walk(ctx context.Context, opts Options, logger *slog.Logger, fn func(Candidate) error) error {
	log := logging.WithComponent(logger, "scanner")

	if _, err := os.Stat(opts.Root); err != nil {
		return err
	}

	allowed := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return filepath.WalkDir(opts.Root, func(path string, entry fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			log.Warn("skipping unreadable entry", logging.String("path", path), logging.Error(err))
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		name := entry.Name()
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		if ext == "" {
			return nil
		}
		if _, ok := allowed[ext]; !ok {
			return nil
		}
		// Working artifacts from an interrupted run look like candidates but
		// must never be processed in place.
		if strings.HasPrefix(name, "temp_") {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			log.Warn("skipping entry without stat info", logging.String("path", path), logging.Error(err))
			return nil
		}
		if info.Size() < opts.MinSizeBytes {
			log.Debug("skipping small file",
				logging.String("path", path),
				logging.Int64("size_bytes", info.Size()),
			)
			return nil
		}

		return fn(Candidate{Path: path, Size: info.Size()})
	})
}
