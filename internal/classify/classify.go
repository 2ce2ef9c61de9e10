package classify

import (
	"fmt"
	"os"
	"strings"

	"conform/internal/media"
	"conform/internal/profile"
)

// Reason records which predicates drove a classification so callers can
// assert on structure instead of parsing prose.
type Reason struct {
	Container     string
	ContainerOK   bool
	VideoCodec    string
	VideoOK       bool
	AudioCodec    string
	AudioOK       bool
	MissingStereo int
}

// String renders the human-auditable explanation.
func (r Reason) String() string {
	if r.ContainerOK && r.VideoOK && r.AudioOK && r.MissingStereo == 0 {
		return fmt.Sprintf("already normalized (%s/%s/%s)", r.Container, r.VideoCodec, r.AudioCodec)
	}
	if r.ContainerOK && r.MissingStereo > 0 {
		return fmt.Sprintf("%d multichannel stream(s) missing a stereo counterpart", r.MissingStereo)
	}
	var failed []string
	if !r.VideoOK {
		failed = append(failed, "video "+r.VideoCodec)
	}
	if !r.AudioOK {
		failed = append(failed, "audio "+r.AudioCodec)
	}
	if r.MissingStereo > 0 {
		failed = append(failed, fmt.Sprintf("%d stream(s) missing stereo", r.MissingStereo))
	}
	if !r.ContainerOK {
		if len(failed) == 0 {
			return fmt.Sprintf("remux needed (%s -> %s)", r.Container, profile.TargetContainer)
		}
		return fmt.Sprintf("transcode needed from %s (%s)", r.Container, strings.Join(failed, ", "))
	}
	return fmt.Sprintf("transcode needed (%s)", strings.Join(failed, ", "))
}

// Decision is the full classification result for one file.
type Decision struct {
	Action          Action
	Reason          Reason
	NeededDownmixes []int
}

// Classify inspects a descriptor against the policy and decides the required
// work. The filesystem is consulted only to test for existing stereo sidecar
// files next to the source.
func Classify(desc media.Descriptor, pol profile.Policy) Decision {
	reason := Reason{
		Container:  desc.Container,
		VideoCodec: desc.VideoCodec,
		AudioCodec: desc.AudioCodec,
	}
	reason.ContainerOK = desc.Container == profile.TargetContainer
	reason.VideoOK = pol.VideoAccepted(desc.VideoCodec)
	reason.AudioOK = profile.AudioAccepted(desc.AudioCodec)

	needed := scanForMissingStereo(desc)
	reason.MissingStereo = len(needed)

	decision := Decision{Reason: reason, NeededDownmixes: needed}
	switch {
	case reason.ContainerOK && reason.VideoOK && reason.AudioOK && len(needed) == 0:
		decision.Action = ActionPass
	case reason.ContainerOK && len(needed) > 0:
		// Additive sidecar work wins over other non-idealities when the
		// container already matches: it never destroys the original.
		decision.Action = ActionExternalAudio
	case reason.ContainerOK:
		decision.Action = ActionTranscode
	case reason.VideoOK && reason.AudioOK && len(needed) == 0:
		decision.Action = ActionRemux
	default:
		decision.Action = ActionTranscode
	}
	return decision
}

// scanForMissingStereo returns the indices of multichannel streams that lack
// both an internal same-language stereo pair and an on-disk sidecar file, in
// descriptor stream order.
func scanForMissingStereo(desc media.Descriptor) []int {
	var needed []int
	for _, stream := range desc.AudioStreams {
		if stream.Channels <= 2 {
			continue
		}
		if hasInternalStereoPair(desc.AudioStreams, stream) {
			continue
		}
		if sidecarExists(profile.SidecarPath(desc.Path, stream.Language)) {
			continue
		}
		needed = append(needed, stream.Index)
	}
	return needed
}

// hasInternalStereoPair looks for another stream of the same language with at
// most two channels. The language match is exact; two "und" streams pair with
// each other. Codec is irrelevant: any stereo track of the language serves.
func hasInternalStereoPair(streams []media.AudioStream, source media.AudioStream) bool {
	for _, other := range streams {
		if other.Index == source.Index {
			continue
		}
		if other.Channels <= 2 && other.Language == source.Language {
			return true
		}
	}
	return false
}

func sidecarExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
