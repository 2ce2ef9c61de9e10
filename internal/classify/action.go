package classify

// Action is the classification outcome for one file.
type Action int

const (
	// ActionPass means the file already matches the target profile.
	ActionPass Action = iota
	// ActionRemux means a container-only stream copy is sufficient.
	ActionRemux
	// ActionTranscode means video and/or audio must be re-encoded.
	ActionTranscode
	// ActionExternalAudio means the container is fine but one or more
	// multichannel streams need a sidecar stereo track generated.
	ActionExternalAudio
)

// String returns the stable lower-case name used in logs and the history
// store.
func (a Action) String() string {
	switch a {
	case ActionPass:
		return "pass"
	case ActionRemux:
		return "remux"
	case ActionTranscode:
		return "transcode"
	case ActionExternalAudio:
		return "external_audio"
	default:
		return "unknown"
	}
}

// Mutates reports whether the action replaces the library file itself.
// External audio extraction is additive and leaves the container untouched.
func (a Action) Mutates() bool {
	return a == ActionRemux || a == ActionTranscode
}
