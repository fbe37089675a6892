package criteria

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		useRegex bool
		expected Criteria
	}{
		{
			name:     "numbers on both sides",
			text:     "1,2:1",
			expected: ByNumber([]int{1, 2}, []int{1}),
		},
		{
			name:     "empty front side",
			text:     ":2",
			expected: Criteria{Mode: ModeNumber, BackKeep: []int{2}},
		},
		{
			name:     "empty back side",
			text:     "3,1:",
			expected: Criteria{Mode: ModeNumber, FrontKeep: []int{1, 3}},
		},
		{
			name:     "both sides empty",
			text:     ":",
			expected: Criteria{Mode: ModeNumber},
		},
		{
			name:     "trailing comma",
			text:     "1,:2",
			expected: ByNumber([]int{1}, []int{2}),
		},
		{
			name:     "multi digit positions",
			text:     "10,12:11",
			expected: ByNumber([]int{10, 12}, []int{11}),
		},
		{
			name:     "duplicates collapse",
			text:     "2,2,1:1,1",
			expected: ByNumber([]int{1, 2}, []int{1}),
		},
		{
			name:     "field list",
			text:     "Front,Back",
			expected: ByFields("Front", "Back"),
		},
		{
			name:     "single field",
			text:     "Audio",
			expected: ByFields("Audio"),
		},
		{
			name:     "numbers without colon are field names",
			text:     "1,2",
			expected: ByFields("1", "2"),
		},
		{
			name:     "malformed number text is a field list",
			text:     "1,2:x",
			expected: ByFields("1", "2:x"),
		},
		{
			name:     "zero position is a field list",
			text:     "0:1",
			expected: ByFields("0:1"),
		},
		{
			name:     "field names keep spaces",
			text:     "Front, Back Audio",
			expected: ByFields("Front", " Back Audio"),
		},
		{
			name:     "regex flag wins",
			text:     `<div id="editable">[sound: ]</div>`,
			useRegex: true,
			expected: ByRegex(`<div id="editable">[sound: ]</div>`),
		},
		{
			name:     "regex flag wins over number grammar",
			text:     "1:1",
			useRegex: true,
			expected: ByRegex("1:1"),
		},
		{
			name:     "invalid regex is accepted until used",
			text:     "(unclosed",
			useRegex: true,
			expected: ByRegex("(unclosed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text, tt.useRegex)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		useRegex bool
	}{
		{name: "empty", text: ""},
		{name: "empty with regex flag", text: "", useRegex: true},
		{name: "empty field segment", text: "Front,,Back"},
		{name: "leading comma", text: ",Front"},
		{name: "only commas", text: ",,,"},
		{name: "newline", text: "Front\nBack"},
		{name: "trailing newline", text: "Front\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, tt.useRegex)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCriteria), "error should wrap ErrInvalidCriteria")

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.text, parseErr.Input)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []struct {
		text     string
		useRegex bool
	}{
		{"1,2:1", false},
		{"2,1,2:", false},
		{":", false},
		{"1,:3", false},
		{"Front,Back", false},
		{"1,2:x", false},
		{"Word", false},
		{`<div id="editable">(.*?)</div>`, true},
		{"1:1", true},
	}

	for _, in := range inputs {
		t.Run(in.text, func(t *testing.T) {
			first, err := Parse(in.text, in.useRegex)
			require.NoError(t, err)

			second, err := Parse(first.String(), first.IsRegex())
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestCriteriaString(t *testing.T) {
	assert.Equal(t, "1,2:1", ByNumber([]int{2, 1}, []int{1}).String())
	assert.Equal(t, ":", ByNumber(nil, nil).String())
	assert.Equal(t, "Front,Back", ByFields("Front", "Back").String())
	assert.Equal(t, "<b>(.*)</b>", ByRegex("<b>(.*)</b>").String())
	assert.Equal(t, "", Criteria{}.String())
}

func TestDetect(t *testing.T) {
	mode, ok := Detect("1:1", false)
	assert.True(t, ok)
	assert.Equal(t, ModeNumber, mode)

	mode, ok = Detect("Front", false)
	assert.True(t, ok)
	assert.Equal(t, ModeFields, mode)

	mode, ok = Detect("anything", true)
	assert.True(t, ok)
	assert.Equal(t, ModeRegex, mode)

	_, ok = Detect("", false)
	assert.False(t, ok)

	_, ok = Detect("a\nb", false)
	assert.False(t, ok)
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, ModeNumber, c.Mode)
	assert.Equal(t, "1:1", c.String())
}

func TestKeeps(t *testing.T) {
	keep := []int{1, 3}
	assert.True(t, Keeps(keep, 1))
	assert.False(t, Keeps(keep, 2))
	assert.True(t, Keeps(keep, 3))
	assert.False(t, Keeps(nil, 1))
}

func TestModeRoundTrip(t *testing.T) {
	for _, m := range []Mode{ModeFields, ModeNumber, ModeRegex} {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMode("bogus")
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	c, err := FromConfig("number", "1,2:1")
	require.NoError(t, err)
	assert.Equal(t, ByNumber([]int{1, 2}, []int{1}), c)

	c, err = FromConfig("regex", "1:1")
	require.NoError(t, err)
	assert.Equal(t, ByRegex("1:1"), c)

	_, err = FromConfig("fields", "1:1")
	assert.Error(t, err, "mode mismatch should be rejected")

	_, err = FromConfig("number", "")
	assert.True(t, errors.Is(err, ErrInvalidCriteria))

	_, err = FromConfig("unknown", "Front")
	assert.Error(t, err)
}
