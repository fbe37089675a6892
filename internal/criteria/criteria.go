package criteria

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Mode identifies which selection rule a Criteria holds
type Mode int

const (
	// ModeFields opens the audio of named fields
	ModeFields Mode = iota + 1
	// ModeNumber opens audio by position on the front and back side
	ModeNumber
	// ModeRegex opens audio found inside regex matches
	ModeRegex
)

// String returns the mode name used in the config file
func (m Mode) String() string {
	switch m {
	case ModeFields:
		return "fields"
	case ModeNumber:
		return "number"
	case ModeRegex:
		return "regex"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode is the inverse of Mode.String
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fields":
		return ModeFields, nil
	case "number":
		return ModeNumber, nil
	case "regex":
		return ModeRegex, nil
	default:
		return 0, fmt.Errorf("unknown criteria mode: %q", s)
	}
}

// Criteria selects which audio clips of a card are opened. Exactly one
// group of fields is populated, according to Mode.
type Criteria struct {
	Mode Mode

	// ModeFields
	Fields []string

	// ModeNumber: sorted, deduplicated 1-based positions
	FrontKeep []int
	BackKeep  []int

	// ModeRegex
	Pattern string
}

// ByFields selects the audio of the given fields, in that order
func ByFields(fields ...string) Criteria {
	return Criteria{Mode: ModeFields, Fields: fields}
}

// ByNumber selects audio positions on the front and back side
func ByNumber(front, back []int) Criteria {
	return Criteria{Mode: ModeNumber, FrontKeep: normalizeKeep(front), BackKeep: normalizeKeep(back)}
}

// ByRegex selects audio referenced inside matches of pattern
func ByRegex(pattern string) Criteria {
	return Criteria{Mode: ModeRegex, Pattern: pattern}
}

// Default is used for decks without configured criteria: the first audio
// of each side
func Default() Criteria {
	return ByNumber([]int{1}, []int{1})
}

// IsRegex reports whether the criteria must be parsed with the regex flag
func (c Criteria) IsRegex() bool {
	return c.Mode == ModeRegex
}

// String returns the canonical text form. Parse(c.String(), c.IsRegex())
// yields a value equal to c.
func (c Criteria) String() string {
	switch c.Mode {
	case ModeFields:
		return strings.Join(c.Fields, ",")
	case ModeNumber:
		return joinInts(c.FrontKeep) + ":" + joinInts(c.BackKeep)
	case ModeRegex:
		return c.Pattern
	default:
		return ""
	}
}

// Keeps reports whether the 1-based position is on the keep list
func Keeps(keep []int, position int) bool {
	return slices.Contains(keep, position)
}

// normalizeKeep sorts and deduplicates positions; an empty list becomes nil
func normalizeKeep(keep []int) []int {
	if len(keep) == 0 {
		return nil
	}
	out := slices.Clone(keep)
	slices.Sort(out)
	return slices.Compact(out)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
