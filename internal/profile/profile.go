package profile

import (
	"fmt"
	"path/filepath"
	"strings"

	"conform/internal/config"
	"conform/internal/language"
)

const (
	// TargetContainer is the container every library file converges on.
	TargetContainer = "mp4"
	// TargetAudioCodec is the audio codec every stream converges on.
	TargetAudioCodec = "aac"
	// StereoBitrate is the fixed bitrate for generated stereo downmix tracks.
	StereoBitrate = "192k"
	// SidecarPlaceholderTag substitutes for "und" in sidecar filenames.
	// Undetermined is treated as one specific default language, not a
	// wildcard; two und streams with different actual languages collide on
	// the same sidecar name. Known limitation carried over deliberately.
	SidecarPlaceholderTag = "uk"
)

// Acceleration selects the video encoder family.
type Acceleration string

const (
	AccelCUDA     Acceleration = "cuda"
	AccelSoftware Acceleration = "software"
)

// Policy is the immutable normalization configuration consumed by the
// classifier and the plan builder.
type Policy struct {
	AllowHEVC     bool
	Acceleration  Acceleration
	NvencPreset   string
	CPUPreset     string
	Threads       int
	Bitrate720    string
	Bitrate1080   string
	Bitrate2160   string
	AudioBitrate  string
	KeepSubtitles bool
	KeepBackups   bool
}

// FromConfig derives the policy from loaded configuration.
func FromConfig(cfg *config.Config) Policy {
	return Policy{
		AllowHEVC:     cfg.Video.AllowHEVC,
		Acceleration:  Acceleration(cfg.Video.HWAccel),
		NvencPreset:   cfg.Video.NvencPreset,
		CPUPreset:     cfg.Video.CPUPreset,
		Threads:       cfg.Video.Threads,
		Bitrate720:    cfg.Video.Bitrates.Tier720,
		Bitrate1080:   cfg.Video.Bitrates.Tier1080,
		Bitrate2160:   cfg.Video.Bitrates.Tier2160,
		AudioBitrate:  cfg.Audio.Bitrate,
		KeepSubtitles: cfg.KeepSubtitles,
		KeepBackups:   !cfg.DeleteBackups,
	}
}

// VideoAccepted reports whether a video codec needs no re-encode under this
// policy.
func (p Policy) VideoAccepted(codec string) bool {
	switch strings.ToLower(strings.TrimSpace(codec)) {
	case "h264", "avc1":
		return true
	case "hevc", "h265":
		return p.AllowHEVC
	default:
		return false
	}
}

// AudioAccepted reports whether the primary audio codec needs no re-encode.
// "none" is acceptable: a silent file has nothing to normalize.
func AudioAccepted(codec string) bool {
	switch strings.ToLower(strings.TrimSpace(codec)) {
	case TargetAudioCodec, "none":
		return true
	default:
		return false
	}
}

// VideoBitrateFor buckets the resolution by pixel area and returns the tier
// bitrate. Thresholds match the established 4K-ish/720p-ish heuristic.
func (p Policy) VideoBitrateFor(width, height int) string {
	area := width * height
	switch {
	case area > 3000*1500:
		return p.Bitrate2160
	case area < 1500*900:
		return p.Bitrate720
	default:
		return p.Bitrate1080
	}
}

// TierName returns the human label for the resolution bucket.
func TierName(width, height int) string {
	area := width * height
	switch {
	case area > 3000*1500:
		return "2160p"
	case area < 1500*900:
		return "720p"
	default:
		return "1080p"
	}
}

// SidecarPath resolves the stereo sidecar filename for a source file and a
// stream language tag: <basename>.<lang>.stereo.m4a next to the source.
func SidecarPath(sourcePath, lang string) string {
	tag := language.Normalize(lang)
	if tag == language.Undetermined {
		tag = SidecarPlaceholderTag
	}
	base := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath))
	return fmt.Sprintf("%s.%s.stereo.m4a", base, tag)
}

// TargetPath returns the final library path for a source file: same basename
// with the target container extension.
func TargetPath(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + "." + TargetContainer
}

// TempOutputPath returns the working artifact path for a conversion: a
// temp_-prefixed file in the source directory so the final move stays on one
// filesystem.
func TempOutputPath(sourcePath string) string {
	dir := filepath.Dir(sourcePath)
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "temp_"+base+"."+TargetContainer)
}
