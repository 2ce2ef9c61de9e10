package classify_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"conform/internal/classify"
	"conform/internal/media"
	"conform/internal/profile"
)

func descriptor(path, container, video, audio string, streams ...media.AudioStream) media.Descriptor {
	return media.Descriptor{
		Path:         path,
		VideoCodec:   video,
		AudioCodec:   audio,
		AudioStreams: streams,
		Width:        1920,
		Height:       1080,
		Container:    container,
	}
}

func TestCleanMP4Passes(t *testing.T) {
	desc := descriptor(filepath.Join(t.TempDir(), "movie.mp4"), "mp4", "h264", "aac",
		media.AudioStream{Index: 1, Codec: "aac", Channels: 2, Language: "eng"},
	)
	decision := classify.Classify(desc, profile.Policy{})
	if decision.Action != classify.ActionPass {
		t.Fatalf("expected pass, got %v (%s)", decision.Action, decision.Reason)
	}
	if len(decision.NeededDownmixes) != 0 {
		t.Fatalf("expected no downmixes, got %v", decision.NeededDownmixes)
	}
	if !decision.Reason.ContainerOK || !decision.Reason.VideoOK || !decision.Reason.AudioOK {
		t.Fatalf("expected all predicates ok: %+v", decision.Reason)
	}
}

func TestMultichannelWithoutPairTriggersExternalAudio(t *testing.T) {
	// Scenario A: mp4/h264/aac with a lone 6ch eng stream.
	desc := descriptor(filepath.Join(t.TempDir(), "movie.mp4"), "mp4", "h264", "aac",
		media.AudioStream{Index: 1, Codec: "aac", Channels: 6, Language: "eng"},
	)
	decision := classify.Classify(desc, profile.Policy{})
	if decision.Action != classify.ActionExternalAudio {
		t.Fatalf("expected external audio, got %v", decision.Action)
	}
	if !reflect.DeepEqual(decision.NeededDownmixes, []int{1}) {
		t.Fatalf("expected downmix set {1}, got %v", decision.NeededDownmixes)
	}
	if decision.Reason.MissingStereo != 1 {
		t.Fatalf("expected reason to count 1 missing stereo: %+v", decision.Reason)
	}
}

func TestWrongContainerWithBadAudioTranscodes(t *testing.T) {
	// Scenario B: mkv/h264/ac3 with a 6ch stream.
	desc := descriptor(filepath.Join(t.TempDir(), "movie.mkv"), "mkv", "h264", "ac3",
		media.AudioStream{Index: 1, Codec: "ac3", Channels: 6, Language: "uk"},
	)
	decision := classify.Classify(desc, profile.Policy{})
	if decision.Action != classify.ActionTranscode {
		t.Fatalf("expected transcode, got %v", decision.Action)
	}
	if decision.Reason.AudioOK {
		t.Fatalf("expected audio predicate to fail: %+v", decision.Reason)
	}
	if !reflect.DeepEqual(decision.NeededDownmixes, []int{1}) {
		t.Fatalf("expected downmix set {1}, got %v", decision.NeededDownmixes)
	}
}

func TestInternalStereoPairSatisfiesDownmix(t *testing.T) {
	// Scenario C: a same-language 2ch stream pairs regardless of codec.
	desc := descriptor(filepath.Join(t.TempDir(), "movie.mp4"), "mp4", "h264", "aac",
		media.AudioStream{Index: 1, Codec: "aac", Channels: 6, Language: "ukr"},
		media.AudioStream{Index: 2, Codec: "ac3", Channels: 2, Language: "ukr"},
	)
	decision := classify.Classify(desc, profile.Policy{})
	if decision.Action != classify.ActionPass {
		t.Fatalf("expected pass, got %v (%s)", decision.Action, decision.Reason)
	}
}

func TestMixedLanguagesOnlyUnpairedStreamNeedsDownmix(t *testing.T) {
	// Scenario D: eng 6ch unpaired; ukr 6ch paired with ukr 2ch.
	desc := descriptor(filepath.Join(t.TempDir(), "movie.mp4"), "mp4", "h264", "aac",
		media.AudioStream{Index: 1, Codec: "aac", Channels: 6, Language: "eng"},
		media.AudioStream{Index: 2, Codec: "aac", Channels: 6, Language: "ukr"},
		media.AudioStream{Index: 3, Codec: "aac", Channels: 2, Language: "ukr"},
	)
	decision := classify.Classify(desc, profile.Policy{})
	if decision.Action != classify.ActionExternalAudio {
		t.Fatalf("expected external audio, got %v", decision.Action)
	}
	if !reflect.DeepEqual(decision.NeededDownmixes, []int{1}) {
		t.Fatalf("expected only the eng stream queued, got %v", decision.NeededDownmixes)
	}
}

func TestTwoMultichannelSameLanguageEachNeedOwnStereo(t *testing.T) {
	desc := descriptor(filepath.Join(t.TempDir(), "movie.mp4"), "mp4", "h264", "aac",
		media.AudioStream{Index: 1, Codec: "ac3", Channels: 6, Language: "eng"},
		media.AudioStream{Index: 2, Codec: "dts", Channels: 8, Language: "eng"},
	)
	decision := classify.Classify(desc, profile.Policy{})
	if !reflect.DeepEqual(decision.NeededDownmixes, []int{1, 2}) {
		t.Fatalf("expected both streams queued in stream order, got %v", decision.NeededDownmixes)
	}
}

func TestSidecarFileSatisfiesDownmix(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "movie.mp4")
	sidecar := filepath.Join(dir, "movie.eng.stereo.m4a")
	if err := os.WriteFile(sidecar, []byte("audio"), 0o644); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}

	desc := descriptor(source, "mp4", "h264", "aac",
		media.AudioStream{Index: 1, Codec: "aac", Channels: 6, Language: "eng"},
	)
	decision := classify.Classify(desc, profile.Policy{})
	if decision.Action != classify.ActionPass {
		t.Fatalf("expected pass with sidecar present, got %v", decision.Action)
	}
}

func TestUndeterminedStreamsUsePlaceholderSidecar(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "movie.mp4")
	if err := os.WriteFile(filepath.Join(dir, "movie.uk.stereo.m4a"), []byte("audio"), 0o644); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}

	desc := descriptor(source, "mp4", "h264", "aac",
		media.AudioStream{Index: 1, Codec: "aac", Channels: 6, Language: "und"},
	)
	decision := classify.Classify(desc, profile.Policy{})
	if decision.Action != classify.ActionPass {
		t.Fatalf("expected placeholder sidecar to satisfy und stream, got %v", decision.Action)
	}
}

func TestUndeterminedPairsWithUndetermined(t *testing.T) {
	desc := descriptor(filepath.Join(t.TempDir(), "movie.mp4"), "mp4", "h264", "aac",
		media.AudioStream{Index: 1, Codec: "aac", Channels: 6, Language: "und"},
		media.AudioStream{Index: 2, Codec: "aac", Channels: 2, Language: "und"},
	)
	decision := classify.Classify(desc, profile.Policy{})
	if decision.Action != classify.ActionPass {
		t.Fatalf("expected und/und internal pair to satisfy, got %v", decision.Action)
	}
}

func TestCleanNonTargetContainerRemuxes(t *testing.T) {
	desc := descriptor(filepath.Join(t.TempDir(), "movie.mkv"), "mkv", "h264", "aac",
		media.AudioStream{Index: 1, Codec: "aac", Channels: 2, Language: "eng"},
	)
	decision := classify.Classify(desc, profile.Policy{})
	if decision.Action != classify.ActionRemux {
		t.Fatalf("expected remux, got %v (%s)", decision.Action, decision.Reason)
	}
}

func TestHEVCAcceptedOnlyWithPolicy(t *testing.T) {
	desc := descriptor(filepath.Join(t.TempDir(), "movie.mp4"), "mp4", "hevc", "aac")

	if got := classify.Classify(desc, profile.Policy{}); got.Action != classify.ActionTranscode {
		t.Fatalf("expected hevc rejected by default, got %v", got.Action)
	}
	if got := classify.Classify(desc, profile.Policy{AllowHEVC: true}); got.Action != classify.ActionPass {
		t.Fatalf("expected hevc accepted with allow_hevc, got %v", got.Action)
	}
}

func TestMP4WithBadCodecsAndNoDownmixWorkTranscodes(t *testing.T) {
	desc := descriptor(filepath.Join(t.TempDir(), "movie.mp4"), "mp4", "mpeg4", "mp3",
		media.AudioStream{Index: 1, Codec: "mp3", Channels: 2, Language: "eng"},
	)
	decision := classify.Classify(desc, profile.Policy{})
	if decision.Action != classify.ActionTranscode {
		t.Fatalf("expected transcode, got %v", decision.Action)
	}
	if decision.Reason.VideoOK || decision.Reason.AudioOK {
		t.Fatalf("expected both codec predicates to fail: %+v", decision.Reason)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	desc := descriptor(filepath.Join(t.TempDir(), "movie.mp4"), "mp4", "h264", "aac",
		media.AudioStream{Index: 1, Codec: "aac", Channels: 6, Language: "eng"},
		media.AudioStream{Index: 2, Codec: "aac", Channels: 6, Language: "ukr"},
	)
	first := classify.Classify(desc, profile.Policy{})
	second := classify.Classify(desc, profile.Policy{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("decisions differ:\n%+v\n%+v", first, second)
	}
}

func TestReasonStrings(t *testing.T) {
	tests := []struct {
		name   string
		desc   media.Descriptor
		substr string
	}{
		{
			name:   "pass",
			desc:   descriptor("/x/a.mp4", "mp4", "h264", "aac"),
			substr: "already normalized",
		},
		{
			name:   "remux",
			desc:   descriptor("/x/a.avi", "avi", "h264", "aac"),
			substr: "remux needed",
		},
		{
			name:   "transcode",
			desc:   descriptor("/x/a.mp4", "mp4", "vp9", "opus"),
			substr: "transcode needed",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision := classify.Classify(tc.desc, profile.Policy{})
			got := decision.Reason.String()
			if !strings.Contains(got, tc.substr) {
				t.Fatalf("reason %q missing %q", got, tc.substr)
			}
		})
	}
}
