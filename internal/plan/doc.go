// Package plan turns a classification decision into deterministic ffmpeg
// invocations.
//
// Builders are pure: the same descriptor, decision, and policy always yield
// the same argument lists and output paths. No filesystem access happens
// here beyond path string construction; existence checks (sidecar
// idempotence) belong to classification and execution.
package plan
