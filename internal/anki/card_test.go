package anki

import "testing"

func TestParseSide(t *testing.T) {
	tests := []struct {
		input    string
		expected Side
		wantErr  bool
	}{
		{"front", Front, false},
		{"Front", Front, false},
		{" question ", Front, false},
		{"back", Back, false},
		{"ANSWER", Back, false},
		{"a", Back, false},
		{"middle", Front, true},
		{"", Front, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSide(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSide(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("ParseSide(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSideString(t *testing.T) {
	if Front.String() != "front" {
		t.Errorf("Front.String() = %q", Front.String())
	}
	if Back.String() != "back" {
		t.Errorf("Back.String() = %q", Back.String())
	}
	if Side(7).String() != "side(7)" {
		t.Errorf("Side(7).String() = %q", Side(7).String())
	}
}

func TestCardTemplate(t *testing.T) {
	card := &Card{
		QuestionTemplate: "{{Front}}",
		AnswerTemplate:   "{{FrontSide}}<hr id=answer>{{Back}}",
	}

	if got := card.Template(Front); got != "{{Front}}" {
		t.Errorf("Template(Front) = %q", got)
	}
	if got := card.Template(Back); got != "{{FrontSide}}<hr id=answer>{{Back}}" {
		t.Errorf("Template(Back) = %q", got)
	}
}

func TestNoteValue(t *testing.T) {
	note := Note{Fields: []Field{
		{Name: "Front", Value: "hello"},
		{Name: "Back", Value: ""},
	}}

	if v, ok := note.Value("Front"); !ok || v != "hello" {
		t.Errorf("Value(Front) = %q, %v", v, ok)
	}
	if v, ok := note.Value("Back"); !ok || v != "" {
		t.Errorf("Value(Back) = %q, %v", v, ok)
	}
	if _, ok := note.Value("Missing"); ok {
		t.Error("Value(Missing) should not be found")
	}
}
