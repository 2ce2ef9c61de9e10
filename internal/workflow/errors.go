package workflow

import "errors"

// Stage errors wrap the underlying cause so callers can tell where in the
// pipeline a file failed.
var (
	ErrPreflight = errors.New("preflight checks failed")
	ErrProbe     = errors.New("media inspection failed")
	ErrExecution = errors.New("ffmpeg execution failed")
	ErrCommit    = errors.New("commit failed")
)
