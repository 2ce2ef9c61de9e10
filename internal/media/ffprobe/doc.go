// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no conform-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//
// Inspect executes the binary; Parse decodes a raw JSON payload so callers
// and tests can work without ffprobe installed.
package ffprobe
