package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Undetermined is the container metadata tag for streams without a declared
// language.
const Undetermined = "und"

// Normalize trims and lower-cases a raw stream tag, mapping empty input to
// Undetermined. The tag is otherwise preserved byte-for-byte: classification
// matches tags exactly, so "eng" and "en" are deliberately distinct.
func Normalize(tag string) string {
	cleaned := strings.ToLower(strings.TrimSpace(tag))
	if cleaned == "" {
		return Undetermined
	}
	return cleaned
}

// Display returns a human-readable English name for a stream tag, falling
// back to the upper-cased tag when it cannot be parsed.
func Display(tag string) string {
	normalized := Normalize(tag)
	if normalized == Undetermined {
		return "Undetermined"
	}
	parsed, err := language.Parse(normalized)
	if err != nil {
		return strings.ToUpper(normalized)
	}
	name := display.English.Languages().Name(parsed)
	if name == "" {
		return strings.ToUpper(normalized)
	}
	return name
}
