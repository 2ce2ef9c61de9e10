// Package language normalizes audio stream language tags.
//
// Stream tags come straight from container metadata and mix ISO 639-1,
// ISO 639-2, and missing values. Classification and sidecar naming rely on
// exact tag comparison, so both read through Normalize. Display names for
// CLI output come from x/text.
package language
