// Package processor ties the pieces together: it loads a card, looks up the
// criteria of its deck, selects the audio, checks that every file is present
// in the media folder and hands the files to the editor launcher.
package processor
