package selector

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"codeberg.org/snonux/editaudio/internal/anki"
	"codeberg.org/snonux/editaudio/internal/audio"
	"codeberg.org/snonux/editaudio/internal/criteria"
	"codeberg.org/snonux/editaudio/internal/template"
)

// MatchTimeout bounds a single regex match against one field value
const MatchTimeout = 2 * time.Second

// Card is the part of an Anki card the selector reads
type Card interface {
	// Fields returns the note fields in note type order
	Fields() []anki.Field

	// Template returns the raw template rendered on the given side
	Template(side anki.Side) string
}

// Select returns the audio filenames of card chosen by c, in the order they
// should be opened. Duplicates are kept.
func Select(c criteria.Criteria, side anki.Side, card Card) ([]string, error) {
	switch c.Mode {
	case criteria.ModeRegex:
		return byRegex(c.Pattern, card)
	case criteria.ModeNumber:
		keep := c.FrontKeep
		if side == anki.Back {
			keep = c.BackKeep
		}
		return byNumber(keep, side, card), nil
	case criteria.ModeFields:
		return byFields(c.Fields, card), nil
	default:
		return nil, fmt.Errorf("unsupported criteria mode: %s", c.Mode)
	}
}

// SideAudios returns every audio of the fields rendered on side, in template
// order. Positions used by number criteria index into this list.
func SideAudios(side anki.Side, card Card) []string {
	fieldAudios := audio.ScanFieldAudios(card.Fields())

	var audios []string
	for _, name := range template.ExtractFields(card.Template(side)) {
		audios = append(audios, fieldAudios[name]...)
	}
	return audios
}

func byNumber(keep []int, side anki.Side, card Card) []string {
	var selected []string
	for i, name := range SideAudios(side, card) {
		if criteria.Keeps(keep, i+1) {
			selected = append(selected, name)
		}
	}
	return selected
}

func byFields(fields []string, card Card) []string {
	fieldAudios := audio.ScanFieldAudios(card.Fields())

	var selected []string
	for _, name := range fields {
		selected = append(selected, fieldAudios[name]...)
	}
	return selected
}

// byRegex scans every match of pattern, field by field, for audio references
func byRegex(pattern string, card Card) ([]string, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
	}
	re.MatchTimeout = MatchTimeout

	var selected []string
	for _, f := range card.Fields() {
		m, err := re.FindStringMatch(f.Value)
		for m != nil && err == nil {
			selected = append(selected, audio.ScanText(m.String())...)
			m, err = re.FindNextMatch(m)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to match field %s: %w", f.Name, err)
		}
	}
	return selected, nil
}
