// Command conform normalizes a video library toward a streaming-friendly
// MP4 profile: H.264/AAC in MP4 containers, with standalone stereo sidecars
// for multichannel-only audio tracks.
package main
