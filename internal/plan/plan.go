package plan

import (
	"fmt"
	"strconv"

	"conform/internal/classify"
	"conform/internal/media"
	"conform/internal/profile"
)

// Command is one external-tool invocation: the argument list (binary
// excluded) and the artifact it is expected to produce.
type Command struct {
	Args   []string
	Output string
}

// Build maps a decision to its invocation plan. Pass yields no commands;
// remux and transcode yield exactly one; external audio yields one per
// needed stream.
func Build(desc media.Descriptor, decision classify.Decision, pol profile.Policy) ([]Command, error) {
	switch decision.Action {
	case classify.ActionPass:
		return nil, nil
	case classify.ActionRemux:
		return []Command{BuildRemux(desc)}, nil
	case classify.ActionTranscode:
		return []Command{BuildTranscode(desc, decision, pol)}, nil
	case classify.ActionExternalAudio:
		return BuildExtract(desc, decision, pol), nil
	default:
		return nil, fmt.Errorf("plan: unknown action %v", decision.Action)
	}
}

// BuildRemux copies every stream into a fresh target container.
func BuildRemux(desc media.Descriptor) Command {
	output := profile.TempOutputPath(desc.Path)
	args := []string{
		"-y",
		"-i", desc.Path,
		"-c", "copy",
		"-strict", "experimental",
		output,
	}
	return Command{Args: args, Output: output}
}

// BuildTranscode re-encodes whatever falls outside the target profile and
// inserts stereo downmix tracks right after their multichannel sources.
func BuildTranscode(desc media.Descriptor, decision classify.Decision, pol profile.Policy) Command {
	output := profile.TempOutputPath(desc.Path)

	args := []string{"-y"}
	if pol.Acceleration == profile.AccelCUDA {
		args = append(args, "-hwaccel", "cuda")
	}
	args = append(args, "-i", desc.Path)

	args = append(args, "-map", "0:v:0")
	args = appendVideoCodec(args, desc, pol)
	args = appendAudioMaps(args, desc, decision, pol)

	if pol.KeepSubtitles {
		args = append(args, "-c:s", "mov_text")
	} else {
		args = append(args, "-sn")
	}

	args = append(args, output)
	return Command{Args: args, Output: output}
}

// BuildExtract emits one standalone audio-only invocation per stream in the
// needed-downmix set. Each command stands alone so partial success leaves the
// completed sidecars in place.
func BuildExtract(desc media.Descriptor, decision classify.Decision, pol profile.Policy) []Command {
	needed := make(map[int]struct{}, len(decision.NeededDownmixes))
	for _, idx := range decision.NeededDownmixes {
		needed[idx] = struct{}{}
	}

	var commands []Command
	for _, stream := range desc.AudioStreams {
		if _, ok := needed[stream.Index]; !ok {
			continue
		}
		output := profile.SidecarPath(desc.Path, stream.Language)
		args := []string{
			"-y",
			"-i", desc.Path,
			"-map", fmt.Sprintf("0:%d", stream.Index),
			"-c:a", profile.TargetAudioCodec,
			"-b:a", profile.StereoBitrate,
			"-ac", "2",
			"-vn",
			"-sn",
			output,
		}
		commands = append(commands, Command{Args: args, Output: output})
	}
	return commands
}

func appendVideoCodec(args []string, desc media.Descriptor, pol profile.Policy) []string {
	if pol.VideoAccepted(desc.VideoCodec) {
		return append(args, "-c:v", "copy")
	}

	args = append(args, "-pix_fmt", "yuv420p")
	if pol.Acceleration == profile.AccelCUDA {
		args = append(args, "-c:v", "h264_nvenc", "-preset", pol.NvencPreset)
	} else {
		args = append(args,
			"-c:v", "libx264",
			"-preset", pol.CPUPreset,
			"-threads", strconv.Itoa(pol.Threads),
		)
	}
	return append(args, "-b:v", pol.VideoBitrateFor(desc.Width, desc.Height))
}

func appendAudioMaps(args []string, desc media.Descriptor, decision classify.Decision, pol profile.Policy) []string {
	if len(desc.AudioStreams) == 0 {
		if desc.AudioCodec != "none" {
			// Degraded probe: streams were reported but not enumerated.
			// Map everything blindly and force the target codec.
			args = append(args, "-map", "0:a", "-c:a", profile.TargetAudioCodec, "-b:a", pol.AudioBitrate)
		}
		return args
	}

	needed := make(map[int]struct{}, len(decision.NeededDownmixes))
	for _, idx := range decision.NeededDownmixes {
		needed[idx] = struct{}{}
	}

	slot := 0
	for _, stream := range desc.AudioStreams {
		args = append(args, "-map", fmt.Sprintf("0:%d", stream.Index))
		if stream.Codec == profile.TargetAudioCodec {
			args = append(args, fmt.Sprintf("-c:a:%d", slot), "copy")
		} else {
			args = append(args,
				fmt.Sprintf("-c:a:%d", slot), profile.TargetAudioCodec,
				fmt.Sprintf("-b:a:%d", slot), pol.AudioBitrate,
			)
		}
		slot++

		if _, ok := needed[stream.Index]; !ok {
			continue
		}
		// The downmix maps the original multichannel source again, never an
		// already-downmixed copy.
		args = append(args,
			"-map", fmt.Sprintf("0:%d", stream.Index),
			fmt.Sprintf("-c:a:%d", slot), profile.TargetAudioCodec,
			fmt.Sprintf("-b:a:%d", slot), profile.StereoBitrate,
			fmt.Sprintf("-ac:a:%d", slot), "2",
			fmt.Sprintf("-metadata:s:a:%d", slot), fmt.Sprintf("title=Stereo (Downmix from %dch)", stream.Channels),
		)
		slot++
	}
	return args
}
