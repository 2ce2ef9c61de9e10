package config

const (
	defaultSourceDir            = "~/videos"
	defaultStateDir             = "~/.local/share/conform"
	defaultLogDir               = "~/.local/share/conform/logs"
	defaultMinSizeMB            = 50
	defaultHWAccel              = "cuda"
	defaultNvencPreset          = "p5"
	defaultCPUPreset            = "veryfast"
	defaultThreads              = 4
	defaultBitrate720           = "2500k"
	defaultBitrate1080          = "4500k"
	defaultBitrate2160          = "12000k"
	defaultAudioBitrate         = "160k"
	defaultScanIntervalSeconds  = 300
	defaultErrorCooldownSeconds = 10
	defaultLogLevel             = "info"
)

func defaultExtensions() []string {
	return []string{"mp4", "mkv", "avi", "mov", "wmv", "flv", "webm", "m4v", "ts", "mpg"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: defaultSourceDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		Scan: Scan{
			Extensions: defaultExtensions(),
			MinSizeMB:  defaultMinSizeMB,
		},
		Video: Video{
			HWAccel:     defaultHWAccel,
			NvencPreset: defaultNvencPreset,
			CPUPreset:   defaultCPUPreset,
			Threads:     defaultThreads,
			Bitrates: Bitrates{
				Tier720:  defaultBitrate720,
				Tier1080: defaultBitrate1080,
				Tier2160: defaultBitrate2160,
			},
		},
		Audio: Audio{
			Bitrate: defaultAudioBitrate,
		},
		Daemon: Daemon{
			ScanIntervalSeconds:  defaultScanIntervalSeconds,
			ErrorCooldownSeconds: defaultErrorCooldownSeconds,
		},
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
		KeepSubtitles: false,
		DeleteBackups: true,
		LogLevel:      defaultLogLevel,
	}
}
