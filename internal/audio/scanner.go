package audio

import (
	"regexp"

	"codeberg.org/snonux/editaudio/internal/anki"
)

// soundPattern matches Anki audio references such as [sound:word.mp3]
var soundPattern = regexp.MustCompile(`\[sound:(.*?\.(?:mp3|m4a|wav))\]`)

// ScanText returns the filenames of all audio references in s, left to right
func ScanText(s string) []string {
	matches := soundPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// ScanFieldAudios maps each field that references audio to its filenames in
// order of appearance. Fields without audio are left out.
func ScanFieldAudios(fields []anki.Field) map[string][]string {
	fieldAudios := make(map[string][]string)
	for _, f := range fields {
		if names := ScanText(f.Value); len(names) > 0 {
			fieldAudios[f.Name] = names
		}
	}
	return fieldAudios
}

// FormatReference renders a filename as an Anki audio reference
func FormatReference(name string) string {
	return "[sound:" + name + "]"
}
