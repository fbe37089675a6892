// Package gui implements the settings window built with fyne. It edits the
// criteria of each deck and the editor path, and can preview or open the
// audio of a card by ID.
package gui
