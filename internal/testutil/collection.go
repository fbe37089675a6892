package testutil

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDeckID is the id of the built-in Default deck in every collection
const DefaultDeckID = 1

// TemplateFixture is one card type of a note type
type TemplateFixture struct {
	Name string
	Qfmt string
	Afmt string
}

// NoteTypeFixture describes a note type stored in col.models
type NoteTypeFixture struct {
	ID        int64
	Name      string
	Cloze     bool
	Fields    []string
	Templates []TemplateFixture
}

// DeckFixture describes a deck stored in col.decks
type DeckFixture struct {
	ID   int64
	Name string
}

// CardFixture describes a row of the cards table
type CardFixture struct {
	ID     int64
	DeckID int64
	Ord    int
}

// NoteFixture describes a row of the notes table and its cards
type NoteFixture struct {
	ID         int64
	NoteTypeID int64
	Values     []string // field values in note type order
	Cards      []CardFixture
}

// CollectionFixture is the content written by CreateCollection
type CollectionFixture struct {
	CurrentDeck int64
	NoteTypes   []NoteTypeFixture
	Decks       []DeckFixture
	Notes       []NoteFixture
}

// CreateCollection writes a schema 11 collection.anki2 into dir and returns
// its path
func CreateCollection(t *testing.T, dir string, fx CollectionFixture) string {
	t.Helper()

	path := filepath.Join(dir, "collection.anki2")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to create collection: %v", err)
	}
	defer db.Close()

	if err := createTables(db); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}
	if err := insertCollection(db, fx); err != nil {
		t.Fatalf("Failed to insert collection: %v", err)
	}
	if err := insertNotesAndCards(db, fx.Notes); err != nil {
		t.Fatalf("Failed to insert notes and cards: %v", err)
	}

	return path
}

// createTables creates the Anki tables read by the collection reader
func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY,
			crt integer NOT NULL,
			mod integer NOT NULL,
			scm integer NOT NULL,
			ver integer NOT NULL,
			dty integer NOT NULL,
			usn integer NOT NULL,
			ls integer NOT NULL,
			conf text NOT NULL,
			models text NOT NULL,
			decks text NOT NULL,
			dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY,
			guid text NOT NULL,
			mid integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			tags text NOT NULL,
			flds text NOT NULL,
			sfld text NOT NULL,
			csum integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY,
			nid integer NOT NULL,
			did integer NOT NULL,
			ord integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			type integer NOT NULL,
			queue integer NOT NULL,
			due integer NOT NULL,
			ivl integer NOT NULL,
			factor integer NOT NULL,
			reps integer NOT NULL,
			lapses integer NOT NULL,
			left integer NOT NULL,
			odue integer NOT NULL,
			odid integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// insertCollection writes the col row with note types and decks as JSON
func insertCollection(db *sql.DB, fx CollectionFixture) error {
	now := time.Now().Unix()

	decks := map[string]interface{}{
		"1": map[string]interface{}{"id": DefaultDeckID, "name": "Default", "mod": now, "dyn": 0},
	}
	for _, d := range fx.Decks {
		decks[fmt.Sprintf("%d", d.ID)] = map[string]interface{}{
			"id":   d.ID,
			"name": d.Name,
			"mod":  now,
			"dyn":  0,
		}
	}
	decksJSON, err := json.Marshal(decks)
	if err != nil {
		return err
	}

	models := map[string]interface{}{}
	for _, nt := range fx.NoteTypes {
		models[fmt.Sprintf("%d", nt.ID)] = noteTypeConfig(nt)
	}
	modelsJSON, err := json.Marshal(models)
	if err != nil {
		return err
	}

	current := fx.CurrentDeck
	if current == 0 {
		current = DefaultDeckID
	}
	confJSON, err := json.Marshal(map[string]interface{}{
		"curDeck":  current,
		"sortType": "noteFld",
		"schedVer": 1,
	})
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1, now, now*1000, now*1000, 11, 0, 0, 0,
		string(confJSON), string(modelsJSON), string(decksJSON), "{}", "{}")
	return err
}

// noteTypeConfig builds the models JSON entry for a note type
func noteTypeConfig(nt NoteTypeFixture) map[string]interface{} {
	flds := make([]map[string]interface{}, 0, len(nt.Fields))
	for i, name := range nt.Fields {
		flds = append(flds, map[string]interface{}{
			"name": name,
			"ord":  i,
			"font": "Arial",
			"size": 20,
		})
	}

	tmpls := make([]map[string]interface{}, 0, len(nt.Templates))
	for i, tmpl := range nt.Templates {
		tmpls = append(tmpls, map[string]interface{}{
			"name": tmpl.Name,
			"ord":  i,
			"qfmt": tmpl.Qfmt,
			"afmt": tmpl.Afmt,
		})
	}

	typ := 0
	if nt.Cloze {
		typ = 1
	}

	return map[string]interface{}{
		"id":    nt.ID,
		"name":  nt.Name,
		"type":  typ,
		"sortf": 0,
		"flds":  flds,
		"tmpls": tmpls,
	}
}

// insertNotesAndCards writes every note and the cards generated from it
func insertNotesAndCards(db *sql.DB, notes []NoteFixture) error {
	now := time.Now().Unix()

	for _, n := range notes {
		sfld := ""
		if len(n.Values) > 0 {
			sfld = n.Values[0]
		}
		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			n.ID, fmt.Sprintf("guid%d", n.ID), n.NoteTypeID, now, -1, "",
			strings.Join(n.Values, "\x1f"), sfld, 0, 0, "")
		if err != nil {
			return fmt.Errorf("failed to insert note %d: %w", n.ID, err)
		}

		for _, c := range n.Cards {
			_, err := db.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				c.ID, n.ID, c.DeckID, c.Ord, now, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, "")
			if err != nil {
				return fmt.Errorf("failed to insert card %d: %w", c.ID, err)
			}
		}
	}

	return nil
}

// VocabularyCollection returns a fixture with a basic+reverse vocabulary note
// type, a cloze note type and two decks:
//
//   - card 1001: "Spanish" deck, forward card of note 100
//   - card 1002: "Spanish" deck, reverse card of note 100
//   - card 2001: "Spanish::Verbs" deck, cloze card of note 200
//   - "Empty" deck without cards
func VocabularyCollection() CollectionFixture {
	return CollectionFixture{
		CurrentDeck: 10,
		NoteTypes: []NoteTypeFixture{
			{
				ID:     500,
				Name:   "Vocabulary (Basic + Reverse)",
				Fields: []string{"Word", "Meaning", "Audio", "Example"},
				Templates: []TemplateFixture{
					{
						Name: "Forward",
						Qfmt: `<div class="front">{{Word}}</div>{{#Audio}}{{Audio}}{{/Audio}}`,
						Afmt: `{{FrontSide}}<hr id="answer">{{Meaning}}{{Example}}`,
					},
					{
						Name: "Reverse",
						Qfmt: `{{Meaning}}`,
						Afmt: `{{FrontSide}}<hr id="answer">{{Word}}{{Audio}}`,
					},
				},
			},
			{
				ID:     600,
				Name:   "Cloze",
				Cloze:  true,
				Fields: []string{"Text", "Extra"},
				Templates: []TemplateFixture{
					{Name: "Cloze", Qfmt: "{{cloze:Text}}", Afmt: "{{cloze:Text}}<br>{{Extra}}"},
				},
			},
		},
		Decks: []DeckFixture{
			{ID: 10, Name: "Spanish"},
			{ID: 11, Name: "Spanish::Verbs"},
			{ID: 12, Name: "Empty"},
		},
		Notes: []NoteFixture{
			{
				ID:         100,
				NoteTypeID: 500,
				Values: []string{
					"perro [sound:perro.mp3]",
					"dog",
					"[sound:perro_slow.mp3][sound:perro_fast.wav]",
					`<div id="editable">El perro [sound:example.m4a]</div>`,
				},
				Cards: []CardFixture{
					{ID: 1001, DeckID: 10, Ord: 0},
					{ID: 1002, DeckID: 10, Ord: 1},
				},
			},
			{
				ID:         200,
				NoteTypeID: 600,
				Values:     []string{"{{c1::correr}} [sound:correr.mp3]", "to run"},
				Cards: []CardFixture{
					{ID: 2001, DeckID: 11, Ord: 0},
				},
			},
		},
	}
}
