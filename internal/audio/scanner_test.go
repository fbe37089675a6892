package audio

import (
	"reflect"
	"testing"

	"codeberg.org/snonux/editaudio/internal/anki"
)

func TestScanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "no audio",
			input:    "no audio here",
			expected: nil,
		},
		{
			name:     "single mp3",
			input:    "perro [sound:perro.mp3]",
			expected: []string{"perro.mp3"},
		},
		{
			name:     "multiple in order",
			input:    "[sound:a.mp3] text [sound:b.wav][sound:c.m4a]",
			expected: []string{"a.mp3", "b.wav", "c.m4a"},
		},
		{
			name:     "unsupported extension",
			input:    "[sound:video.mp4][sound:clip.ogg]",
			expected: nil,
		},
		{
			name:     "extension is case sensitive",
			input:    "[sound:LOUD.MP3]",
			expected: nil,
		},
		{
			name:     "non-greedy name",
			input:    "[sound:a.mp3] and [sound:b.mp3]",
			expected: []string{"a.mp3", "b.mp3"},
		},
		{
			name:     "name with spaces and dots",
			input:    "[sound:my clip.v2.wav]",
			expected: []string{"my clip.v2.wav"},
		},
		{
			name:     "image tags ignored",
			input:    `<img src="a.jpg">[sound:a.mp3]`,
			expected: []string{"a.mp3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanText(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ScanText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestScanFieldAudios(t *testing.T) {
	fields := []anki.Field{
		{Name: "Front", Value: "[sound:a.mp3][sound:b.wav]"},
		{Name: "Back", Value: "no audio"},
		{Name: "Extra", Value: ""},
	}

	got := ScanFieldAudios(fields)
	expected := map[string][]string{
		"Front": {"a.mp3", "b.wav"},
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ScanFieldAudios() = %v, want %v", got, expected)
	}

	if _, ok := got["Back"]; ok {
		t.Error("Fields without audio should be omitted")
	}
}

func TestScanFieldAudiosEmptyNote(t *testing.T) {
	got := ScanFieldAudios(nil)
	if len(got) != 0 {
		t.Errorf("Expected empty map, got %v", got)
	}
}

func TestFormatReference(t *testing.T) {
	ref := FormatReference("perro.mp3")
	if ref != "[sound:perro.mp3]" {
		t.Errorf("FormatReference() = %q", ref)
	}

	if got := ScanText(ref); !reflect.DeepEqual(got, []string{"perro.mp3"}) {
		t.Errorf("ScanText(FormatReference()) = %q", got)
	}
}
