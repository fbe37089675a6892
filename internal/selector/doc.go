// Package selector applies selection criteria to a card and returns the
// audio filenames to open.
//
// Number criteria index into the audio list of one side: the fields named in
// that side's template are visited in template order (duplicates included)
// and their audio references are concatenated. Field criteria concatenate the
// audio of the named fields. Regex criteria look for audio references inside
// every match of the pattern in every field.
package selector
