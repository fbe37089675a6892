package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"codeberg.org/snonux/editaudio/internal/criteria"
)

// Config keys
const (
	KeyEditorPath = "editor.path"
	KeyDecks      = "decks"
)

// DeckEntry is one element of the decks list in the config file. Deck names
// are stored as values because viper lower-cases map keys.
type DeckEntry struct {
	Deck     string `mapstructure:"deck"`
	Mode     string `mapstructure:"mode"`
	Criteria string `mapstructure:"criteria"`
}

// Validate validates the entry
func (e DeckEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Deck, validation.Required),
		validation.Field(&e.Mode, validation.Required, validation.In(
			criteria.ModeFields.String(),
			criteria.ModeNumber.String(),
			criteria.ModeRegex.String(),
		)),
		validation.Field(&e.Criteria, validation.Required),
	)
}

// Load builds a store from the editor path and decks list in v. An invalid
// deck entry fails the whole load so that a broken config is not silently
// overwritten on the next save.
func Load(v *viper.Viper) (*Store, error) {
	s := New(v.GetString(KeyEditorPath))

	var entries []DeckEntry
	if err := v.UnmarshalKey(KeyDecks, &entries); err != nil {
		return nil, fmt.Errorf("failed to read decks: %w", err)
	}

	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("decks[%d]: %w", i, err)
		}
		c, err := criteria.FromConfig(e.Mode, e.Criteria)
		if err != nil {
			return nil, fmt.Errorf("decks[%d] (%s): %w", i, e.Deck, err)
		}
		s.Set(e.Deck, c)
	}

	return s, nil
}

// Entries returns the deck list in the form written to the config file
func (s *Store) Entries() []DeckEntry {
	entries := make([]DeckEntry, 0, len(s.decks))
	for _, deck := range s.Decks() {
		c := s.decks[deck]
		entries = append(entries, DeckEntry{Deck: deck, Mode: c.Mode.String(), Criteria: c.String()})
	}
	return entries
}

// Save puts the store into v and writes the config file at path
func Save(s *Store, v *viper.Viper, path string) error {
	entries := s.Entries()
	decks := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		decks = append(decks, map[string]any{
			"deck":     e.Deck,
			"mode":     e.Mode,
			"criteria": e.Criteria,
		})
	}

	v.Set(KeyEditorPath, s.EditorPath())
	v.Set(KeyDecks, decks)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// SaveFile writes the store into the config file at path. Settings already
// in the file that the store does not own are kept.
func SaveFile(s *Store, path string) error {
	v := viper.New()
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	return Save(s, v, path)
}
