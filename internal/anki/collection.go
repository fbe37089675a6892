package anki

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// fieldSeparator separates field values in the notes.flds column
const fieldSeparator = "\x1f"

// clozeNoteType is the models[].type value of cloze note types
const clozeNoteType = 1

var (
	// ErrCardNotFound is returned when no card has the requested ID
	ErrCardNotFound = errors.New("card not found")
	// ErrDeckNotFound is returned when no deck has the requested name
	ErrDeckNotFound = errors.New("deck not found")
	// ErrDeckEmpty is returned when a deck holds no cards
	ErrDeckEmpty = errors.New("deck has no cards")
)

type noteTypeField struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
}

type noteTypeTemplate struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
	Qfmt string `json:"qfmt"`
	Afmt string `json:"afmt"`
}

type noteType struct {
	Name  string             `json:"name"`
	Type  int                `json:"type"`
	Flds  []noteTypeField    `json:"flds"`
	Tmpls []noteTypeTemplate `json:"tmpls"`
}

type deck struct {
	Name string `json:"name"`
}

type collectionConf struct {
	CurDeck int64 `json:"curDeck"`
}

// Collection gives read-only access to an Anki collection.anki2 file
type Collection struct {
	db          *sql.DB
	path        string
	noteTypes   map[int64]noteType
	decks       map[int64]deck
	currentDeck int64
}

// OpenCollection opens the collection at path read-only and loads its note
// types and decks
func OpenCollection(ctx context.Context, path string) (*Collection, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve collection path: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", absPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}

	c := &Collection{db: db, path: absPath}
	if err := c.loadMetadata(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

// Close releases the database handle
func (c *Collection) Close() error {
	return c.db.Close()
}

// Path returns the absolute path of the collection file
func (c *Collection) Path() string {
	return c.path
}

// loadMetadata reads the col row which stores note types and decks as JSON
func (c *Collection) loadMetadata(ctx context.Context) error {
	var confJSON, modelsJSON, decksJSON string
	row := c.db.QueryRowContext(ctx, `SELECT conf, models, decks FROM col LIMIT 1`)
	if err := row.Scan(&confJSON, &modelsJSON, &decksJSON); err != nil {
		return fmt.Errorf("failed to read collection metadata: %w", err)
	}

	var conf collectionConf
	if err := json.Unmarshal([]byte(confJSON), &conf); err != nil {
		return fmt.Errorf("failed to parse collection config: %w", err)
	}
	c.currentDeck = conf.CurDeck

	var rawModels map[string]noteType
	if err := json.Unmarshal([]byte(modelsJSON), &rawModels); err != nil {
		return fmt.Errorf("failed to parse note types: %w", err)
	}
	c.noteTypes = make(map[int64]noteType, len(rawModels))
	for key, nt := range rawModels {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid note type id %q: %w", key, err)
		}
		sort.Slice(nt.Flds, func(i, j int) bool { return nt.Flds[i].Ord < nt.Flds[j].Ord })
		c.noteTypes[id] = nt
	}

	var rawDecks map[string]deck
	if err := json.Unmarshal([]byte(decksJSON), &rawDecks); err != nil {
		return fmt.Errorf("failed to parse decks: %w", err)
	}
	c.decks = make(map[int64]deck, len(rawDecks))
	for key, d := range rawDecks {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid deck id %q: %w", key, err)
		}
		c.decks[id] = d
	}

	return nil
}

// Card loads a card with its note content and the templates of its card type
func (c *Collection) Card(ctx context.Context, id int64) (*Card, error) {
	var (
		ord    int
		deckID int64
		noteID int64
		mid    int64
		flds   string
	)

	row := c.db.QueryRowContext(ctx, `
		SELECT c.ord, c.did, n.id, n.mid, n.flds
		FROM cards c JOIN notes n ON n.id = c.nid
		WHERE c.id = ?`, id)
	if err := row.Scan(&ord, &deckID, &noteID, &mid, &flds); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrCardNotFound, id)
		}
		return nil, fmt.Errorf("failed to load card %d: %w", id, err)
	}

	nt, ok := c.noteTypes[mid]
	if !ok {
		return nil, fmt.Errorf("card %d uses unknown note type %d", id, mid)
	}

	card := &Card{
		ID:   id,
		Deck: c.decks[deckID].Name,
		Ord:  ord,
		Note: Note{
			ID:       noteID,
			NoteType: nt.Name,
			Fields:   splitFields(nt, flds),
		},
	}

	if tmpl, ok := nt.template(ord); ok {
		card.QuestionTemplate = tmpl.Qfmt
		card.AnswerTemplate = tmpl.Afmt
	}

	return card, nil
}

// template returns the card type used for the given card ordinal. Cloze note
// types have a single template shared by every card.
func (nt noteType) template(ord int) (noteTypeTemplate, bool) {
	if nt.Type == clozeNoteType && len(nt.Tmpls) > 0 {
		return nt.Tmpls[0], true
	}
	for _, t := range nt.Tmpls {
		if t.Ord == ord {
			return t, true
		}
	}
	return noteTypeTemplate{}, false
}

// splitFields pairs the stored field values with the note type's field names
func splitFields(nt noteType, flds string) []Field {
	values := strings.Split(flds, fieldSeparator)
	fields := make([]Field, 0, len(nt.Flds))
	for i, f := range nt.Flds {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		fields = append(fields, Field{Name: f.Name, Value: value})
	}
	return fields
}

// DeckNames returns the names of all decks, sorted
func (c *Collection) DeckNames() []string {
	names := make([]string, 0, len(c.decks))
	for _, d := range c.decks {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

// CurrentDeck returns the name of the deck selected in Anki
func (c *Collection) CurrentDeck() string {
	return c.decks[c.currentDeck].Name
}

// DeckChoices returns the decks offered in the settings: the current deck
// first, then the remaining decks sorted, without the built-in Default deck
func (c *Collection) DeckChoices() []string {
	current := c.CurrentDeck()
	choices := make([]string, 0, len(c.decks))
	if current != "" && current != "Default" {
		choices = append(choices, current)
	}
	for _, name := range c.DeckNames() {
		if name == current || name == "Default" {
			continue
		}
		choices = append(choices, name)
	}
	return choices
}

// FieldNames returns the field names of the note type used by the first card
// of the deck (subdecks included)
func (c *Collection) FieldNames(ctx context.Context, deckName string) ([]string, error) {
	var ids []any
	for id, d := range c.decks {
		if d.Name == deckName || strings.HasPrefix(d.Name, deckName+"::") {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDeckNotFound, deckName)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`
		SELECT n.mid
		FROM cards c JOIN notes n ON n.id = c.nid
		WHERE c.did IN (%s)
		ORDER BY c.id LIMIT 1`, placeholders)

	var mid int64
	if err := c.db.QueryRowContext(ctx, query, ids...).Scan(&mid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrDeckEmpty, deckName)
		}
		return nil, fmt.Errorf("failed to look up deck %s: %w", deckName, err)
	}

	nt, ok := c.noteTypes[mid]
	if !ok {
		return nil, fmt.Errorf("deck %s uses unknown note type %d", deckName, mid)
	}

	names := make([]string, 0, len(nt.Flds))
	for _, f := range nt.Flds {
		names = append(names, f.Name)
	}
	return names, nil
}
