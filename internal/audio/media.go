package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafeMediaName is returned for references that would resolve outside
// the media folder. Anki keeps media files flat, without subdirectories.
var ErrUnsafeMediaName = errors.New("media name leaves the media folder")

// MissingMediaError reports an audio reference without a file in the media folder
type MissingMediaError struct {
	Name string // filename as referenced in the note
	Path string // path that was checked
}

func (e *MissingMediaError) Error() string {
	return fmt.Sprintf("file %s does not exist", e.Path)
}

// MediaPath joins name with mediaDir. Names with a path separator, a volume
// or a dot-only name are rejected.
func MediaPath(mediaDir, name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: %q", ErrUnsafeMediaName, name)
	}
	return filepath.Join(mediaDir, name), nil
}

// ResolvePaths joins every name with mediaDir. It fails on the first name
// without a regular file so that either every clip or none is opened.
func ResolvePaths(mediaDir string, names []string) ([]string, error) {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path, err := MediaPath(mediaDir, name)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return nil, &MissingMediaError{Name: name, Path: path}
		}
		paths = append(paths, path)
	}
	return paths, nil
}
