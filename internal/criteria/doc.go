// Package criteria parses the per-deck text that chooses which audio clips
// of a card are opened. Three forms are recognised:
//
//	Word,Audio        audio of the listed fields, in that order
//	1,2:1             first and second clip of the front, first of the back
//	<div>(.*?)</div>  audio inside regex matches (only with the regex flag)
//
// The form is detected by trying an ordered list of rules; the first rule
// whose grammar accepts the text wins.
package criteria
