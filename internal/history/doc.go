// Package history persists per-file processing outcomes in SQLite so
// operators can review what the normalizer changed and why.
package history
