package selector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/editaudio/internal/anki"
	"codeberg.org/snonux/editaudio/internal/criteria"
	"codeberg.org/snonux/editaudio/internal/testutil"
)

type fakeCard struct {
	fields   []anki.Field
	question string
	answer   string
}

func (c fakeCard) Fields() []anki.Field { return c.fields }

func (c fakeCard) Template(side anki.Side) string {
	if side == anki.Back {
		return c.answer
	}
	return c.question
}

func threeClipCard() fakeCard {
	return fakeCard{
		fields: []anki.Field{
			{Name: "Front", Value: "[sound:a.mp3] hello [sound:b.mp3]"},
			{Name: "Back", Value: "[sound:c.mp3]"},
			{Name: "Notes", Value: "no audio here"},
		},
		question: "{{Front}}{{Back}}",
		answer:   "{{Back}}",
	}
}

func TestSelectByNumber(t *testing.T) {
	card := threeClipCard()

	tests := []struct {
		name     string
		c        criteria.Criteria
		side     anki.Side
		expected []string
	}{
		{"first and third on front", criteria.ByNumber([]int{1, 3}, nil), anki.Front, []string{"a.mp3", "c.mp3"}},
		{"all on front", criteria.ByNumber([]int{1, 2, 3}, nil), anki.Front, []string{"a.mp3", "b.mp3", "c.mp3"}},
		{"out of range position", criteria.ByNumber([]int{4}, nil), anki.Front, nil},
		{"empty keep set", criteria.ByNumber(nil, []int{1}), anki.Front, nil},
		{"back side uses back keep", criteria.ByNumber([]int{1}, []int{1}), anki.Back, []string{"c.mp3"}},
		{"default criteria front", criteria.Default(), anki.Front, []string{"a.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.c, tt.side, card)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSelectByNumberDuplicateTemplateFields(t *testing.T) {
	card := fakeCard{
		fields:   []anki.Field{{Name: "Front", Value: "[sound:a.mp3]"}, {Name: "Back", Value: "[sound:b.mp3]"}},
		question: "{{Front}}{{Back}}{{Front}}",
	}

	assert.Equal(t, []string{"a.mp3", "b.mp3", "a.mp3"}, SideAudios(anki.Front, card))

	got, err := Select(criteria.ByNumber([]int{3}, nil), anki.Front, card)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mp3"}, got)
}

func TestSelectByFields(t *testing.T) {
	card := threeClipCard()

	tests := []struct {
		name     string
		fields   []string
		expected []string
	}{
		{"given order", []string{"Back", "Front"}, []string{"c.mp3", "a.mp3", "b.mp3"}},
		{"unknown field", []string{"Missing", "Back"}, []string{"c.mp3"}},
		{"field without audio", []string{"Notes"}, nil},
		{"repeated field", []string{"Back", "Back"}, []string{"c.mp3", "c.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(criteria.ByFields(tt.fields...), anki.Front, card)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSelectByFieldsIgnoresSide(t *testing.T) {
	card := threeClipCard()
	c := criteria.ByFields("Front")

	front, err := Select(c, anki.Front, card)
	require.NoError(t, err)
	back, err := Select(c, anki.Back, card)
	require.NoError(t, err)
	assert.Equal(t, front, back)
}

func TestSelectByRegex(t *testing.T) {
	card := fakeCard{
		fields: []anki.Field{
			{Name: "Text", Value: `<div id="editable">[sound:x.mp3]</div>[sound:y.mp3]`},
			{Name: "Extra", Value: `<div id="editable">[sound:z.wav] [sound:x.mp3]</div>`},
		},
	}

	tests := []struct {
		name     string
		pattern  string
		expected []string
	}{
		{"div wrapper", `<div id="editable">.*?</div>`, []string{"x.mp3", "z.wav", "x.mp3"}},
		{"no match", `<span>.*?</span>`, nil},
		{"match without audio", `editable`, nil},
		{"lookahead", `\[sound:[^\]]+\](?!</div>)`, []string{"y.mp3", "z.wav"}},
		{"backreference", `<(div)[^>]*>.*?</\1>`, []string{"x.mp3", "z.wav", "x.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(criteria.ByRegex(tt.pattern), anki.Front, card)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSelectInvalidRegex(t *testing.T) {
	_, err := Select(criteria.ByRegex("(unclosed"), anki.Front, threeClipCard())
	assert.Error(t, err)
}

func TestSelectUnknownMode(t *testing.T) {
	_, err := Select(criteria.Criteria{}, anki.Front, threeClipCard())
	assert.Error(t, err)
}

func TestSelectCollectionCard(t *testing.T) {
	path := testutil.CreateCollection(t, t.TempDir(), testutil.VocabularyCollection())

	col, err := anki.OpenCollection(context.Background(), path)
	require.NoError(t, err)
	defer col.Close()

	forward, err := col.Card(context.Background(), 1001)
	require.NoError(t, err)

	assert.Equal(t, []string{"perro.mp3", "perro_slow.mp3", "perro_fast.wav"}, SideAudios(anki.Front, forward))
	assert.Equal(t, []string{"example.m4a"}, SideAudios(anki.Back, forward))

	got, err := Select(criteria.ByNumber([]int{2, 3}, []int{1}), anki.Front, forward)
	require.NoError(t, err)
	assert.Equal(t, []string{"perro_slow.mp3", "perro_fast.wav"}, got)

	got, err = Select(criteria.ByRegex(`<div id="editable">(.*?)</div>`), anki.Back, forward)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.m4a"}, got)

	reverse, err := col.Card(context.Background(), 1002)
	require.NoError(t, err)
	assert.Empty(t, SideAudios(anki.Front, reverse))

	got, err = Select(criteria.Default(), anki.Back, reverse)
	require.NoError(t, err)
	assert.Equal(t, []string{"perro.mp3"}, got)

	cloze, err := col.Card(context.Background(), 2001)
	require.NoError(t, err)
	assert.Empty(t, SideAudios(anki.Front, cloze), "cloze:Text is not a field name")

	got, err = Select(criteria.ByFields("Text"), anki.Front, cloze)
	require.NoError(t, err)
	assert.Equal(t, []string{"correr.mp3"}, got)
}
