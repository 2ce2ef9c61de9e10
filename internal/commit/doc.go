// Package commit swaps a freshly produced artifact into the library without
// ever leaving zero valid copies of a title on disk.
//
// The protocol is a minimal write-ahead pattern: the original is renamed to
// a .bak sibling before the target slot is touched, the artifact moves in,
// and the backup is deleted only after success (when policy says so). Any
// failure before the move completes triggers a rollback of the backup. The
// ordering is load-bearing — the backup must exist before the target slot is
// freed.
//
// A failed rollback is the one fatal condition in the pipeline: it means
// neither a valid original nor a replacement is guaranteed at the expected
// path, and it surfaces as ErrRollbackFailed for operator attention.
package commit
