package anki

import (
	"fmt"
	"strings"
)

// Side is the side of a card currently displayed during review
type Side int

const (
	// Front is the question side
	Front Side = iota
	// Back is the answer side
	Back
)

// String returns the lower-case side name
func (s Side) String() string {
	switch s {
	case Front:
		return "front"
	case Back:
		return "back"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// ParseSide accepts front/back as well as Anki's question/answer wording
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front", "question", "q":
		return Front, nil
	case "back", "answer", "a":
		return Back, nil
	default:
		return Front, fmt.Errorf("unknown card side: %q (want front or back)", s)
	}
}

// Field is a single note field in note type order
type Field struct {
	Name  string
	Value string
}

// Note holds the content of an Anki note
type Note struct {
	ID       int64
	NoteType string
	Fields   []Field // ordered as defined by the note type
}

// Value returns the text of the named field
func (n Note) Value(name string) (string, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Card represents a single Anki card together with its note and templates
type Card struct {
	ID               int64
	Deck             string
	Ord              int    // template ordinal
	Note             Note   // note the card was generated from
	QuestionTemplate string // qfmt of the card's template
	AnswerTemplate   string // afmt of the card's template
}

// Fields returns the note fields in note type order
func (c *Card) Fields() []Field {
	return c.Note.Fields
}

// Template returns the raw template rendered on the given side
func (c *Card) Template(side Side) string {
	if side == Back {
		return c.AnswerTemplate
	}
	return c.QuestionTemplate
}
