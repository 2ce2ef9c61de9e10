// Package ffmpeg runs planned invocations against the external ffmpeg
// binary.
//
// Execution is synchronous and single-attempt. A non-zero exit invalidates
// the run completely: any partial artifact is removed before the error is
// returned, so callers never see a half-written output.
package ffmpeg
