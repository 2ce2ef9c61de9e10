// Package classify decides what work a media file needs to reach the target
// profile.
//
// Classify is pure with respect to program state; its only side input is a
// read-only filesystem existence check for stereo sidecar files. The result
// is a closed four-way Action plus a structured Reason so tests and logs can
// inspect exactly which predicate failed, and the set of audio stream indices
// that still need a stereo counterpart.
//
// The same descriptor and filesystem state always yield the same Decision.
package classify
