package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/editaudio/internal/criteria"
	"codeberg.org/snonux/editaudio/internal/store"
)

const (
	separator      = " = "
	regexSeparator = " ~ "
)

// Entry is one deck line of a criteria file
type Entry struct {
	Line  int
	Deck  string
	Text  string
	Regex bool
}

// ReadCriteriaFile reads deck criteria from a file, one deck per line.
// Supports formats:
// - "Spanish = 1,2:1" number or field criteria
// - "HTML ~ <div id="editable">.*?</div>" regex criteria
// - blank lines and lines starting with # are skipped
//
// The first separator on a line ends the deck name, so regexes may contain
// separators themselves.
func ReadCriteriaFile(filename string) ([]Entry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read criteria file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(n, line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, n, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read criteria file: %w", err)
	}

	return entries, nil
}

func parseLine(n int, line string) (Entry, error) {
	eq := strings.Index(line, separator)
	re := strings.Index(line, regexSeparator)

	var idx int
	entry := Entry{Line: n}
	switch {
	case eq == -1 && re == -1:
		return Entry{}, fmt.Errorf("expected \"DECK = CRITERIA\" or \"DECK ~ REGEX\"")
	case re != -1 && (eq == -1 || re < eq):
		idx = re
		entry.Regex = true
	default:
		idx = eq
	}

	entry.Deck = strings.TrimSpace(line[:idx])
	entry.Text = strings.TrimSpace(line[idx+len(separator):])
	if entry.Deck == "" {
		return Entry{}, fmt.Errorf("missing deck name")
	}
	if entry.Text == "" {
		return Entry{}, fmt.Errorf("missing criteria for deck %s", entry.Deck)
	}
	return entry, nil
}

// Apply parses every entry and sets the criteria in st. If one entry is
// invalid the store is left unchanged.
func Apply(entries []Entry, st *store.Store) error {
	parsed := make([]criteria.Criteria, 0, len(entries))
	for _, e := range entries {
		c, err := criteria.Parse(e.Text, e.Regex)
		if err != nil {
			return fmt.Errorf("line %d (%s): %w", e.Line, e.Deck, err)
		}
		parsed = append(parsed, c)
	}

	for i, e := range entries {
		st.Set(e.Deck, parsed[i])
	}
	return nil
}
