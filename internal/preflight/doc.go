// Package preflight provides readiness checks for the filesystem paths and
// external binaries conform depends on.
//
// The workflow manager runs RunAll before each processing cycle; a failed
// check halts the cycle rather than discovering the problem mid-transcode.
// The CLI status command reuses the individual check functions to display
// environment health.
package preflight
