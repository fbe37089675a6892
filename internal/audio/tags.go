package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// Tags holds the ID3 frames shown when listing selected clips
type Tags struct {
	Title  string // TIT2
	Artist string // TPE1
	Album  string // TALB
}

// Empty reports whether no frame was set
func (t Tags) Empty() bool {
	return t.Title == "" && t.Artist == "" && t.Album == ""
}

// String joins the set frames as "title - artist (album)"
func (t Tags) String() string {
	var parts []string
	for _, v := range []string{t.Title, t.Artist} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	s := strings.Join(parts, " - ")
	if t.Album != "" {
		if s != "" {
			s += " "
		}
		s += "(" + t.Album + ")"
	}
	return s
}

// ReadTags reads the ID3v2 tag of an mp3 file. Other formats carry no ID3v2
// tag and return empty Tags.
func ReadTags(path string) (Tags, error) {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return Tags{}, nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{
		Parse:       true,
		ParseFrames: []string{"Title", "Artist", "Album"},
	})
	if err != nil {
		return Tags{}, fmt.Errorf("failed to read tags of %s: %w", filepath.Base(path), err)
	}
	defer tag.Close()

	return Tags{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Album:  tag.Album(),
	}, nil
}
