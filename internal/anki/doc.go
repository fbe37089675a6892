// Package anki reads cards, notes, note types and decks from an Anki
// collection.anki2 file. It exposes the card content model used by the
// audio selector: ordered note fields and the question and answer
// templates of each card.
package anki
