package template

import "strings"

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// ExtractFields returns the text between every {{ and }} pair in tmpl, in
// order of appearance and including duplicates. The names are not trimmed or
// validated, so section markers such as "#Audio" are returned as written.
// An opening delimiter without a matching closing one ends the scan.
func ExtractFields(tmpl string) []string {
	fields := []string{}
	rest := tmpl

	for {
		start := strings.Index(rest, openDelim)
		if start == -1 {
			break
		}
		rest = rest[start+len(openDelim):]

		end := strings.Index(rest, closeDelim)
		if end == -1 {
			break
		}
		fields = append(fields, rest[:end])
		rest = rest[end+len(closeDelim):]
	}

	return fields
}
