package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
)

func writeTaggedMP3(t *testing.T, path, title, artist string) {
	t.Helper()

	tag := id3v2.NewEmptyTag()
	tag.SetTitle(title)
	tag.SetArtist(artist)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create mp3: %v", err)
	}
	defer f.Close()

	if _, err := tag.WriteTo(f); err != nil {
		t.Fatalf("Failed to write tag: %v", err)
	}
	// a few bytes of MPEG frame header after the tag
	if _, err := f.Write([]byte{0xFF, 0xFB, 0x90, 0x00}); err != nil {
		t.Fatalf("Failed to write audio data: %v", err)
	}
}

func TestReadTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perro.mp3")
	writeTaggedMP3(t, path, "perro", "Forvo")

	tags, err := ReadTags(path)
	if err != nil {
		t.Fatalf("ReadTags() error = %v", err)
	}

	if tags.Title != "perro" {
		t.Errorf("Expected title 'perro', got '%s'", tags.Title)
	}
	if tags.Artist != "Forvo" {
		t.Errorf("Expected artist 'Forvo', got '%s'", tags.Artist)
	}
	if tags.Empty() {
		t.Error("Tags should not be empty")
	}
}

func TestReadTagsNonMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatalf("Failed to create wav: %v", err)
	}

	tags, err := ReadTags(path)
	if err != nil {
		t.Fatalf("ReadTags() error = %v", err)
	}
	if !tags.Empty() {
		t.Errorf("Expected empty tags for wav, got %+v", tags)
	}
}

func TestReadTagsMissingFile(t *testing.T) {
	if _, err := ReadTags(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestTagsString(t *testing.T) {
	tests := []struct {
		tags     Tags
		expected string
	}{
		{Tags{}, ""},
		{Tags{Title: "perro"}, "perro"},
		{Tags{Title: "perro", Artist: "Forvo"}, "perro - Forvo"},
		{Tags{Title: "perro", Artist: "Forvo", Album: "Spanish"}, "perro - Forvo (Spanish)"},
		{Tags{Album: "Spanish"}, "(Spanish)"},
	}

	for _, tt := range tests {
		if got := tt.tags.String(); got != tt.expected {
			t.Errorf("%+v.String() = %q, want %q", tt.tags, got, tt.expected)
		}
	}
}
