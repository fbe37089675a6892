package criteria

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCriteria is wrapped by every ParseError
var ErrInvalidCriteria = errors.New("invalid criteria")

// ParseError is returned for text that matches none of the criteria forms
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid criteria %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidCriteria
}

// numberPattern accepts comma separated positive integers on both sides of
// a single colon; either side may be empty
var numberPattern = regexp.MustCompile(`^(?:[1-9][0-9]*,)*(?:[1-9][0-9]*)?:(?:[1-9][0-9]*,)*(?:[1-9][0-9]*)?$`)

// rule pairs a grammar check with the parser for that form
type rule struct {
	mode    Mode
	matches func(text string, useRegex bool) bool
	parse   func(text string) (Criteria, error)
}

// rules are evaluated in order; the first match decides the form. A text
// like "1,2:x" fails the number grammar and is taken as a field list.
var rules = []rule{
	{
		mode:    ModeRegex,
		matches: func(_ string, useRegex bool) bool { return useRegex },
		parse:   parseRegex,
	},
	{
		mode:    ModeNumber,
		matches: func(text string, _ bool) bool { return numberPattern.MatchString(text) },
		parse:   parseNumber,
	},
	{
		mode:    ModeFields,
		matches: func(text string, _ bool) bool { return text != "" && !strings.ContainsAny(text, "\r\n") },
		parse:   parseFields,
	},
}

// Parse detects the form of text and parses it. With useRegex the whole
// text is a regular expression, which is only compiled when it is used.
func Parse(text string, useRegex bool) (Criteria, error) {
	if text == "" {
		return Criteria{}, &ParseError{Input: text, Reason: "empty input"}
	}

	for _, r := range rules {
		if r.matches(text, useRegex) {
			return r.parse(text)
		}
	}

	return Criteria{}, &ParseError{Input: text, Reason: "expected a field list, front:back numbers or a regex"}
}

// Detect returns the mode Parse would choose for text without parsing it
func Detect(text string, useRegex bool) (Mode, bool) {
	if text == "" {
		return 0, false
	}
	for _, r := range rules {
		if r.matches(text, useRegex) {
			return r.mode, true
		}
	}
	return 0, false
}

func parseRegex(text string) (Criteria, error) {
	return ByRegex(text), nil
}

func parseNumber(text string) (Criteria, error) {
	front, back, _ := strings.Cut(text, ":")

	frontKeep, err := parsePositions(text, front)
	if err != nil {
		return Criteria{}, err
	}
	backKeep, err := parsePositions(text, back)
	if err != nil {
		return Criteria{}, err
	}

	return ByNumber(frontKeep, backKeep), nil
}

// parsePositions splits one side of a number criteria. An empty side yields
// no positions rather than a single empty entry.
func parsePositions(input, side string) ([]int, error) {
	if side == "" {
		return nil, nil
	}

	var positions []int
	for _, part := range strings.Split(side, ",") {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, &ParseError{Input: input, Reason: fmt.Sprintf("invalid position %q", part)}
		}
		positions = append(positions, n)
	}
	return positions, nil
}

func parseFields(text string) (Criteria, error) {
	fields := strings.Split(text, ",")
	for _, f := range fields {
		if f == "" {
			return Criteria{}, &ParseError{Input: text, Reason: "empty field name"}
		}
	}
	return ByFields(fields...), nil
}

// FromConfig rebuilds criteria from the mode and text stored in the config
// file. The stored mode must agree with the form the text parses as.
func FromConfig(mode, text string) (Criteria, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return Criteria{}, err
	}

	c, err := Parse(text, m == ModeRegex)
	if err != nil {
		return Criteria{}, err
	}
	if c.Mode != m {
		return Criteria{}, fmt.Errorf("criteria %q is stored as %s but parses as %s", text, m, c.Mode)
	}
	return c, nil
}
