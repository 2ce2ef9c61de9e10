// Package logging builds the slog loggers used across conform.
//
// Two handler formats are supported: a compact console format for interactive
// use and JSON for log shipping. When the config leaves the format empty the
// choice falls back to terminal detection. Output always goes to stdout and,
// when a log directory is configured, to conform.log inside it.
//
// Components never construct loggers themselves; the process entry point
// builds one logger and hands each component a child via WithComponent.
package logging
