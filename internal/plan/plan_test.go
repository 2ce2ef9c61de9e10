package plan_test

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"conform/internal/classify"
	"conform/internal/media"
	"conform/internal/plan"
	"conform/internal/profile"
)

func testPolicy() profile.Policy {
	return profile.Policy{
		Acceleration: profile.AccelCUDA,
		NvencPreset:  "p5",
		CPUPreset:    "veryfast",
		Threads:      4,
		Bitrate720:   "2500k",
		Bitrate1080:  "4500k",
		Bitrate2160:  "12000k",
		AudioBitrate: "160k",
	}
}

func joined(cmd plan.Command) string {
	return strings.Join(cmd.Args, " ")
}

func TestBuildRemux(t *testing.T) {
	desc := media.Descriptor{Path: filepath.Join("lib", "movie.mkv"), Container: "mkv"}
	cmd := plan.BuildRemux(desc)

	wantOutput := filepath.Join("lib", "temp_movie.mp4")
	if cmd.Output != wantOutput {
		t.Fatalf("unexpected output: %q", cmd.Output)
	}
	want := []string{"-y", "-i", desc.Path, "-c", "copy", "-strict", "experimental", wantOutput}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("unexpected args:\ngot  %v\nwant %v", cmd.Args, want)
	}
}

func TestBuildTranscodeVideoCopyWhenAccepted(t *testing.T) {
	desc := media.Descriptor{
		Path: "/lib/movie.mkv", VideoCodec: "h264", AudioCodec: "ac3",
		Width: 1920, Height: 1080,
		AudioStreams: []media.AudioStream{{Index: 1, Codec: "ac3", Channels: 2, Language: "eng"}},
	}
	cmd := plan.BuildTranscode(desc, classify.Decision{Action: classify.ActionTranscode}, testPolicy())

	args := joined(cmd)
	if !strings.Contains(args, "-c:v copy") {
		t.Fatalf("expected video stream copy: %s", args)
	}
	if strings.Contains(args, "-b:v") {
		t.Fatalf("copied video must not carry a bitrate: %s", args)
	}
	if !strings.Contains(args, "-c:a:0 aac -b:a:0 160k") {
		t.Fatalf("expected ac3 converted to aac: %s", args)
	}
	if !strings.Contains(args, "-hwaccel cuda") {
		t.Fatalf("expected cuda hwaccel flag: %s", args)
	}
	if !strings.HasSuffix(args, cmd.Output) {
		t.Fatalf("output must be the final argument: %s", args)
	}
}

func TestBuildTranscodeNvencBitrateTier(t *testing.T) {
	desc := media.Descriptor{
		Path: "/lib/movie.mkv", VideoCodec: "mpeg2video", AudioCodec: "aac",
		Width: 3840, Height: 2160,
		AudioStreams: []media.AudioStream{{Index: 1, Codec: "aac", Channels: 2, Language: "eng"}},
	}
	cmd := plan.BuildTranscode(desc, classify.Decision{Action: classify.ActionTranscode}, testPolicy())

	args := joined(cmd)
	if !strings.Contains(args, "-pix_fmt yuv420p -c:v h264_nvenc -preset p5 -b:v 12000k") {
		t.Fatalf("expected nvenc encode at 2160p tier: %s", args)
	}
	if !strings.Contains(args, "-c:a:0 copy") {
		t.Fatalf("expected aac stream copied: %s", args)
	}
}

func TestBuildTranscodeSoftwareEncoder(t *testing.T) {
	pol := testPolicy()
	pol.Acceleration = profile.AccelSoftware
	desc := media.Descriptor{
		Path: "/lib/clip.avi", VideoCodec: "mpeg4", AudioCodec: "mp3",
		Width: 1280, Height: 720,
		AudioStreams: []media.AudioStream{{Index: 1, Codec: "mp3", Channels: 2, Language: "und"}},
	}
	cmd := plan.BuildTranscode(desc, classify.Decision{Action: classify.ActionTranscode}, pol)

	args := joined(cmd)
	if strings.Contains(args, "-hwaccel") {
		t.Fatalf("software mode must not request hwaccel: %s", args)
	}
	if !strings.Contains(args, "-c:v libx264 -preset veryfast -threads 4 -b:v 2500k") {
		t.Fatalf("expected libx264 at 720p tier: %s", args)
	}
}

func TestBuildTranscodeInsertsDownmixAfterSource(t *testing.T) {
	desc := media.Descriptor{
		Path: "/lib/movie.mkv", VideoCodec: "h264", AudioCodec: "dts",
		Width: 1920, Height: 1080,
		AudioStreams: []media.AudioStream{
			{Index: 1, Codec: "dts", Channels: 6, Language: "eng"},
			{Index: 2, Codec: "aac", Channels: 2, Language: "ukr"},
		},
	}
	decision := classify.Decision{Action: classify.ActionTranscode, NeededDownmixes: []int{1}}
	cmd := plan.BuildTranscode(desc, decision, testPolicy())
	args := joined(cmd)

	// Slot 0: dts source converted. Slot 1: its forced stereo downmix from
	// the same input stream. Slot 2: the ukr stream copied.
	if !strings.Contains(args, "-map 0:1 -c:a:0 aac -b:a:0 160k") {
		t.Fatalf("expected dts conversion in slot 0: %s", args)
	}
	if !strings.Contains(args, "-map 0:1 -c:a:1 aac -b:a:1 192k -ac:a:1 2 -metadata:s:a:1 title=Stereo (Downmix from 6ch)") {
		t.Fatalf("expected downmix slot sourced from stream 1: %s", args)
	}
	if !strings.Contains(args, "-map 0:2 -c:a:2 copy") {
		t.Fatalf("expected ukr copy in slot 2: %s", args)
	}
}

func TestBuildTranscodeBlindAudioFallback(t *testing.T) {
	desc := media.Descriptor{
		Path: "/lib/old.avi", VideoCodec: "h264", AudioCodec: "mp3",
		Width: 1920, Height: 1080,
	}
	cmd := plan.BuildTranscode(desc, classify.Decision{Action: classify.ActionTranscode}, testPolicy())
	if !strings.Contains(joined(cmd), "-map 0:a -c:a aac -b:a 160k") {
		t.Fatalf("expected blind audio fallback: %s", joined(cmd))
	}
}

func TestBuildTranscodeSilentFileMapsNoAudio(t *testing.T) {
	desc := media.Descriptor{
		Path: "/lib/silent.mkv", VideoCodec: "h264", AudioCodec: "none",
		Width: 1920, Height: 1080,
	}
	cmd := plan.BuildTranscode(desc, classify.Decision{Action: classify.ActionTranscode}, testPolicy())
	if strings.Contains(joined(cmd), "0:a") {
		t.Fatalf("silent file must not map audio: %s", joined(cmd))
	}
}

func TestBuildTranscodeSubtitlePolicy(t *testing.T) {
	desc := media.Descriptor{
		Path: "/lib/movie.mkv", VideoCodec: "h264", AudioCodec: "aac",
		Width: 1920, Height: 1080, HasSubtitles: true,
	}
	pol := testPolicy()

	cmd := plan.BuildTranscode(desc, classify.Decision{}, pol)
	if !strings.Contains(joined(cmd), "-sn") {
		t.Fatalf("expected subtitles dropped by default: %s", joined(cmd))
	}

	pol.KeepSubtitles = true
	cmd = plan.BuildTranscode(desc, classify.Decision{}, pol)
	if !strings.Contains(joined(cmd), "-c:s mov_text") {
		t.Fatalf("expected subtitles converted: %s", joined(cmd))
	}
}

func TestBuildExtract(t *testing.T) {
	desc := media.Descriptor{
		Path: filepath.Join("lib", "movie.mp4"), VideoCodec: "h264", AudioCodec: "aac",
		AudioStreams: []media.AudioStream{
			{Index: 1, Codec: "aac", Channels: 6, Language: "eng"},
			{Index: 2, Codec: "aac", Channels: 6, Language: "und"},
			{Index: 3, Codec: "aac", Channels: 2, Language: "deu"},
		},
	}
	decision := classify.Decision{Action: classify.ActionExternalAudio, NeededDownmixes: []int{1, 2}}
	commands := plan.BuildExtract(desc, decision, testPolicy())

	if len(commands) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(commands))
	}
	if commands[0].Output != filepath.Join("lib", "movie.eng.stereo.m4a") {
		t.Fatalf("unexpected first sidecar: %q", commands[0].Output)
	}
	if commands[1].Output != filepath.Join("lib", "movie.uk.stereo.m4a") {
		t.Fatalf("expected und placeholder sidecar, got %q", commands[1].Output)
	}
	args := joined(commands[0])
	for _, fragment := range []string{"-map 0:1", "-c:a aac", "-b:a 192k", "-ac 2", "-vn", "-sn"} {
		if !strings.Contains(args, fragment) {
			t.Fatalf("extract args missing %q: %s", fragment, args)
		}
	}
}

func TestBuildDispatch(t *testing.T) {
	desc := media.Descriptor{Path: "/lib/movie.mp4", VideoCodec: "h264", AudioCodec: "aac"}

	commands, err := plan.Build(desc, classify.Decision{Action: classify.ActionPass}, testPolicy())
	if err != nil || commands != nil {
		t.Fatalf("pass should plan nothing: %v %v", commands, err)
	}

	commands, err = plan.Build(desc, classify.Decision{Action: classify.ActionRemux}, testPolicy())
	if err != nil || len(commands) != 1 {
		t.Fatalf("remux should plan one invocation: %v %v", commands, err)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	desc := media.Descriptor{
		Path: "/lib/movie.mkv", VideoCodec: "vc1", AudioCodec: "dts",
		Width: 1920, Height: 1080,
		AudioStreams: []media.AudioStream{{Index: 1, Codec: "dts", Channels: 6, Language: "eng"}},
	}
	decision := classify.Decision{Action: classify.ActionTranscode, NeededDownmixes: []int{1}}

	first, err := plan.Build(desc, decision, testPolicy())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := plan.Build(desc, decision, testPolicy())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("plans differ:\n%v\n%v", first, second)
	}
}
