// Package media converts ffprobe output into the immutable Descriptor the
// pipeline consumes.
//
// A Descriptor is a point-in-time snapshot of one file's measured properties.
// Nothing downstream re-probes: the classifier, plan builder, and history
// records all work from the same Descriptor.
package media
