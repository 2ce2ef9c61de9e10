package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"conform/internal/language"
	"conform/internal/media/ffprobe"
)

// AudioStream describes one audio track. Index is the container's stream
// identifier, stable but not necessarily sequential.
type AudioStream struct {
	Index    int
	Codec    string
	Channels int
	Language string
}

// Descriptor is the immutable measured description of one media file.
type Descriptor struct {
	Path            string
	VideoCodec      string
	AudioCodec      string // primary audio codec, "none" when the file is silent
	AudioStreams    []AudioStream
	Width           int
	Height          int
	Container       string // lower-case, extension-derived
	HasSubtitles    bool
	DurationSeconds float64
	SizeBytes       int64
}

// Probe inspects path with ffprobe and builds its Descriptor.
func Probe(ctx context.Context, ffprobeBinary, path string) (Descriptor, error) {
	result, err := ffprobe.Inspect(ctx, ffprobeBinary, path)
	if err != nil {
		return Descriptor{}, err
	}
	return FromProbe(result, path), nil
}

// FromProbe converts a parsed ffprobe result into a Descriptor for path.
func FromProbe(result ffprobe.Result, path string) Descriptor {
	desc := Descriptor{
		Path:            path,
		VideoCodec:      "none",
		AudioCodec:      "none",
		Container:       ContainerTag(path),
		HasSubtitles:    result.HasSubtitles(),
		DurationSeconds: result.DurationSeconds(),
		SizeBytes:       result.SizeBytes(),
	}

	if video, ok := result.FirstVideoStream(); ok {
		desc.VideoCodec = strings.ToLower(codecOrUnknown(video.CodecName))
		desc.Width = video.Width
		desc.Height = video.Height
	}
	if audio, ok := result.FirstAudioStream(); ok {
		desc.AudioCodec = strings.ToLower(codecOrUnknown(audio.CodecName))
	}
	for _, stream := range result.AudioStreams() {
		desc.AudioStreams = append(desc.AudioStreams, AudioStream{
			Index:    stream.Index,
			Codec:    strings.ToLower(codecOrUnknown(stream.CodecName)),
			Channels: stream.Channels,
			Language: language.Normalize(stream.Tags.Language),
		})
	}
	return desc
}

// ContainerTag derives the lower-case container tag from the file extension.
// Classification keys on what the file claims to be on disk, not on ffprobe's
// ambiguous format_name ("mov,mp4,m4a,...").
func ContainerTag(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Summary renders a short one-line stream inventory for logs.
func (d Descriptor) Summary() string {
	parts := make([]string, 0, len(d.AudioStreams))
	for _, s := range d.AudioStreams {
		parts = append(parts, fmt.Sprintf("#%d:%s(%dch)[%s]", s.Index, s.Codec, s.Channels, s.Language))
	}
	return fmt.Sprintf("video=%s %dx%d container=%s audio=[%s]",
		d.VideoCodec, d.Width, d.Height, d.Container, strings.Join(parts, " "))
}

func codecOrUnknown(name string) string {
	if strings.TrimSpace(name) == "" {
		return "unknown"
	}
	return name
}
