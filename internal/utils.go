package internal

import (
	"os"
	"path/filepath"
	"strings"
)

// Version is the application version shown by --version and the GUI title
const Version = "0.3.1"

// DefaultEditorPath returns the Audacity location for the given platform
func DefaultEditorPath(goos string) string {
	switch goos {
	case "darwin":
		return "/Applications/Audacity.app"
	case "windows":
		return `C:\Program Files (x86)\Audacity\audacity.exe`
	default:
		return "audacity"
	}
}

// DefaultCollectionPath returns where Anki keeps the collection of its first
// profile on the given platform
func DefaultCollectionPath(goos, home string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Anki2", "User 1", "collection.anki2")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Anki2", "User 1", "collection.anki2")
		}
		return filepath.Join(home, "AppData", "Roaming", "Anki2", "User 1", "collection.anki2")
	default:
		return filepath.Join(home, ".local", "share", "Anki2", "User 1", "collection.anki2")
	}
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// DefaultMediaDir returns the media folder Anki keeps next to a collection file
func DefaultMediaDir(collectionPath string) string {
	if collectionPath == "" {
		return ""
	}
	dir := filepath.Dir(collectionPath)
	base := strings.TrimSuffix(filepath.Base(collectionPath), filepath.Ext(collectionPath))
	return filepath.Join(dir, base+".media")
}
