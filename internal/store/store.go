package store

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"codeberg.org/snonux/editaudio/internal/criteria"
)

// ErrNoEditor is returned when audio should be opened but no editor is set
var ErrNoEditor = errors.New("no editor configured")

// Store holds the criteria of every configured deck and the editor path.
// It is created once per run and passed to whatever needs it.
type Store struct {
	editorPath string
	decks      map[string]criteria.Criteria
}

// New creates an empty store using the given editor
func New(editorPath string) *Store {
	return &Store{
		editorPath: editorPath,
		decks:      make(map[string]criteria.Criteria),
	}
}

// Get returns the criteria configured for deck
func (s *Store) Get(deck string) (criteria.Criteria, bool) {
	c, ok := s.decks[deck]
	return c, ok
}

// CriteriaFor returns the criteria of deck, or the default when the deck has
// none configured
func (s *Store) CriteriaFor(deck string) criteria.Criteria {
	if c, ok := s.decks[deck]; ok {
		return c
	}
	return criteria.Default()
}

// Set replaces the criteria of deck
func (s *Store) Set(deck string, c criteria.Criteria) {
	s.decks[deck] = c
}

// Delete removes the criteria of deck, so the default applies again
func (s *Store) Delete(deck string) {
	delete(s.decks, deck)
}

// Decks returns the names of all configured decks, sorted
func (s *Store) Decks() []string {
	names := make([]string, 0, len(s.decks))
	for name := range s.decks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EditorPath returns the configured editor
func (s *Store) EditorPath() string {
	return s.editorPath
}

// SetEditorPath replaces the configured editor
func (s *Store) SetEditorPath(path string) {
	s.editorPath = path
}

// Replace takes over the editor and criteria of other, e.g. after the config
// file was changed on disk
func (s *Store) Replace(other *Store) {
	s.editorPath = other.editorPath
	s.decks = make(map[string]criteria.Criteria, len(other.decks))
	for deck, c := range other.decks {
		s.decks[deck] = c
	}
}

// Validate checks that an editor is configured
func (s *Store) Validate() error {
	if err := validation.Validate(s.editorPath, validation.Required); err != nil {
		return fmt.Errorf("%w: editor path %v", ErrNoEditor, err)
	}
	return nil
}
