// Package workflow orchestrates processing cycles: scanning the library,
// probing and classifying each candidate, running the planned ffmpeg
// invocations, and committing results atomically.
//
// A Manager runs either a single cycle (the CLI "run" command) or a polling
// loop (the daemon). Each cycle is stamped with a run identifier and every
// per-file outcome is journaled to the history store. Files are strictly
// independent: one failure is recorded and the cycle moves on.
package workflow
