// Package audio finds the audio clips referenced by Anki note fields,
// resolves them against the collection's media folder and hands them to an
// external sound editor.
package audio
