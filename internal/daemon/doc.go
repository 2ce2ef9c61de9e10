// Package daemon wraps the workflow manager in a long-running service with
// flock-based locking to prevent multiple instances from processing the
// same library.
package daemon
