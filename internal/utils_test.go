package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultEditorPath(t *testing.T) {
	tests := []struct {
		goos     string
		expected string
	}{
		{"darwin", "/Applications/Audacity.app"},
		{"windows", `C:\Program Files (x86)\Audacity\audacity.exe`},
		{"linux", "audacity"},
		{"freebsd", "audacity"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := DefaultEditorPath(tt.goos); got != tt.expected {
				t.Errorf("DefaultEditorPath(%q) = %q, want %q", tt.goos, got, tt.expected)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~", home},
		{"~/Anki2/collection.anki2", filepath.Join(home, "Anki2", "collection.anki2")},
		{"/abs/path", "/abs/path"},
		{"relative/~path", "relative/~path"},
		{"~other", "~other"},
	}

	for _, tt := range tests {
		if got := ExpandHome(tt.input); got != tt.expected {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDefaultMediaDir(t *testing.T) {
	got := DefaultMediaDir(filepath.Join("profile", "collection.anki2"))
	want := filepath.Join("profile", "collection.media")
	if got != want {
		t.Errorf("DefaultMediaDir() = %q, want %q", got, want)
	}

	if got := DefaultMediaDir(""); got != "" {
		t.Errorf("DefaultMediaDir(\"\") = %q, want empty", got)
	}
}

func TestDefaultCollectionPath(t *testing.T) {
	home := "/home/user"

	tests := []struct {
		goos     string
		expected string
	}{
		{"darwin", filepath.Join(home, "Library", "Application Support", "Anki2", "User 1", "collection.anki2")},
		{"linux", filepath.Join(home, ".local", "share", "Anki2", "User 1", "collection.anki2")},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := DefaultCollectionPath(tt.goos, home); got != tt.expected {
				t.Errorf("DefaultCollectionPath(%q) = %q, want %q", tt.goos, got, tt.expected)
			}
		})
	}

	t.Run("windows", func(t *testing.T) {
		t.Setenv("APPDATA", filepath.Join(home, "roaming"))
		want := filepath.Join(home, "roaming", "Anki2", "User 1", "collection.anki2")
		if got := DefaultCollectionPath("windows", home); got != want {
			t.Errorf("DefaultCollectionPath(windows) = %q, want %q", got, want)
		}
	})
}
