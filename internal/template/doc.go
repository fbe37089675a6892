// Package template reads Anki card templates. It extracts the field
// placeholders a question or answer template references so the audio
// selector knows which fields are shown on each side of a card.
package template
