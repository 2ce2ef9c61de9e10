package ffprobe

import "testing"

const samplePayload = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080},
    {"index": 1, "codec_name": "ac3", "codec_type": "audio", "channels": 6, "tags": {"language": "eng"}},
    {"index": 2, "codec_name": "aac", "codec_type": "audio", "channels": 2, "tags": {"language": "ukr"}},
    {"index": 3, "codec_name": "subrip", "codec_type": "subtitle"}
  ],
  "format": {
    "filename": "movie.mkv",
    "duration": "5400.25",
    "size": "4294967296",
    "format_name": "matroska,webm"
  }
}`

func TestParse(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	video, ok := result.FirstVideoStream()
	if !ok {
		t.Fatal("expected a video stream")
	}
	if video.CodecName != "h264" || video.Width != 1920 || video.Height != 1080 {
		t.Fatalf("unexpected video stream: %+v", video)
	}

	audio := result.AudioStreams()
	if len(audio) != 2 {
		t.Fatalf("expected 2 audio streams, got %d", len(audio))
	}
	if audio[0].Index != 1 || audio[0].Channels != 6 || audio[0].Tags.Language != "eng" {
		t.Fatalf("unexpected first audio stream: %+v", audio[0])
	}
	if audio[1].Index != 2 || audio[1].CodecName != "aac" {
		t.Fatalf("unexpected second audio stream: %+v", audio[1])
	}

	if !result.HasSubtitles() {
		t.Fatal("expected subtitles")
	}
	if result.DurationSeconds() != 5400.25 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 4294967296 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestParseHandlesMissingFields(t *testing.T) {
	result, err := Parse([]byte(`{"streams": [], "format": {"duration": "bad"}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := result.FirstVideoStream(); ok {
		t.Fatal("expected no video stream")
	}
	if _, ok := result.FirstAudioStream(); ok {
		t.Fatal("expected no audio stream")
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.HasSubtitles() {
		t.Fatal("expected no subtitles")
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}
