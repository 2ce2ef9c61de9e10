// Package profile defines the single normalization target and the policy
// knobs that shape classification and command synthesis.
//
// The target profile is fixed: MP4 container, H.264 video (optionally
// accepting HEVC as-is), AAC audio. Policy carries the configurable parts:
// bitrate tiers, acceleration mode, subtitle and backup retention.
//
// The sidecar naming contract lives here because it is shared on-disk state:
// the classifier reads sidecar paths while the executor writes them.
package profile
