package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/snonux/editaudio/internal/anki"
	"codeberg.org/snonux/editaudio/internal/audio"
	"codeberg.org/snonux/editaudio/internal/criteria"
	"codeberg.org/snonux/editaudio/internal/logging"
	"codeberg.org/snonux/editaudio/internal/selector"
	"codeberg.org/snonux/editaudio/internal/store"
)

// ErrNothingToOpen is returned when the criteria select no audio on a card
var ErrNothingToOpen = errors.New("no audio to open")

// LaunchError reports that the editor could not be started
type LaunchError struct {
	Editor string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Editor, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// CardSource loads cards by ID and names the deck selected in Anki
type CardSource interface {
	Card(ctx context.Context, id int64) (*anki.Card, error)
	CurrentDeck() string
}

// Selection is the result of applying a deck's criteria to one card side
type Selection struct {
	Card      *anki.Card
	Side      anki.Side
	Criteria  criteria.Criteria
	Deck      string   // deck the criteria are configured for, empty when defaulted
	Defaulted bool     // no deck on the lookup path has criteria configured
	Names     []string // audio filenames in open order
}

// Clip describes one selected audio file for a dry run
type Clip struct {
	Name    string
	Path    string
	Missing bool
	Tags    audio.Tags
}

// Processor opens the audio of cards in the configured editor
type Processor struct {
	cards    CardSource
	store    *store.Store
	launcher audio.Launcher
	mediaDir string
}

// NewProcessor creates a processor reading cards from cards and media files
// from mediaDir
func NewProcessor(cards CardSource, st *store.Store, launcher audio.Launcher, mediaDir string) *Processor {
	return &Processor{
		cards:    cards,
		store:    st,
		launcher: launcher,
		mediaDir: mediaDir,
	}
}

// Store returns the criteria store used by the processor
func (p *Processor) Store() *store.Store {
	return p.store
}

// MediaDir returns the directory audio files are resolved against
func (p *Processor) MediaDir() string {
	return p.mediaDir
}

// Select applies the criteria of the card's deck to one side of the card.
// See CriteriaFor for how the deck is found.
func (p *Processor) Select(ctx context.Context, cardID int64, side anki.Side) (*Selection, error) {
	card, err := p.cards.Card(ctx, cardID)
	if err != nil {
		return nil, err
	}

	deck, c, ok := p.CriteriaFor(card)

	names, err := selector.Select(c, side, card)
	if err != nil {
		return nil, fmt.Errorf("failed to select audio of card %d: %w", cardID, err)
	}

	logging.NewLogger(ctx).WithField("card", cardID).
		Debugf("deck %q side %s criteria %q selected %v", card.Deck, side, c.String(), names)

	return &Selection{
		Card:      card,
		Side:      side,
		Criteria:  c,
		Deck:      deck,
		Defaulted: !ok,
		Names:     names,
	}, nil
}

// CriteriaFor returns the criteria configured for the card's deck or its
// nearest parent deck ("Spanish" for "Spanish::Verbs"). Without one, the
// criteria of the deck currently selected in Anki apply, and then the
// default. The returned deck is empty when the default is used.
func (p *Processor) CriteriaFor(card *anki.Card) (string, criteria.Criteria, bool) {
	for deck := card.Deck; deck != ""; deck = parentDeck(deck) {
		if c, ok := p.store.Get(deck); ok {
			return deck, c, true
		}
	}

	if current := p.cards.CurrentDeck(); current != "" {
		if c, ok := p.store.Get(current); ok {
			return current, c, true
		}
	}

	return "", criteria.Default(), false
}

// parentDeck strips the last "::" component, "" for a top level deck
func parentDeck(deck string) string {
	i := strings.LastIndex(deck, "::")
	if i < 0 {
		return ""
	}
	return deck[:i]
}

// OpenAudios opens the selected audio of a card side in the editor. Every
// file must exist in the media folder, otherwise nothing is opened and a
// *audio.MissingMediaError names the first missing file.
func (p *Processor) OpenAudios(ctx context.Context, cardID int64, side anki.Side) (*Selection, error) {
	if err := p.store.Validate(); err != nil {
		return nil, err
	}

	sel, err := p.Select(ctx, cardID, side)
	if err != nil {
		return nil, err
	}
	if len(sel.Names) == 0 {
		return sel, fmt.Errorf("%w on the %s of card %d", ErrNothingToOpen, side, cardID)
	}

	paths, err := audio.ResolvePaths(p.mediaDir, sel.Names)
	if err != nil {
		return sel, err
	}

	editor := p.store.EditorPath()
	logging.NewLogger(ctx).WithField("editor", editor).
		Infof("opening %d file(s) with %s", len(paths), p.launcher.Name())

	if err := p.launcher.Launch(ctx, editor, paths); err != nil {
		return sel, &LaunchError{Editor: editor, Err: err}
	}

	return sel, nil
}

// ListAudios is a dry run of OpenAudios: it reports the selected files with
// their location and tags without launching anything. Missing files are
// flagged instead of failing the listing.
func (p *Processor) ListAudios(ctx context.Context, cardID int64, side anki.Side) (*Selection, []Clip, error) {
	sel, err := p.Select(ctx, cardID, side)
	if err != nil {
		return nil, nil, err
	}

	log := logging.NewLogger(ctx)
	clips := make([]Clip, 0, len(sel.Names))
	for _, name := range sel.Names {
		clip := Clip{Name: name}

		paths, err := audio.ResolvePaths(p.mediaDir, []string{name})
		var missing *audio.MissingMediaError
		switch {
		case errors.As(err, &missing):
			clip.Path = missing.Path
			clip.Missing = true
		case errors.Is(err, audio.ErrUnsafeMediaName):
			log.Warnf("skipping %s: %v", name, err)
			clip.Missing = true
		case err != nil:
			return nil, nil, err
		default:
			clip.Path = paths[0]
			tags, err := audio.ReadTags(clip.Path)
			if err != nil {
				log.Warnf("failed to read tags of %s: %v", name, err)
			}
			clip.Tags = tags
		}

		clips = append(clips, clip)
	}

	return sel, clips, nil
}

// SetCriteria parses text and stores the result for deck. Invalid text
// leaves the store unchanged.
func (p *Processor) SetCriteria(deck, text string, useRegex bool) (criteria.Criteria, error) {
	c, err := criteria.Parse(text, useRegex)
	if err != nil {
		return criteria.Criteria{}, err
	}
	p.store.Set(deck, c)
	return c, nil
}
