package lead

import (
	"strings"
	"unicode"
)

const (
	DefaultInitialsFallback = "??"
	DefaultMaxInitials      = 3
)

// connectorWords are joining words dropped from names before initials are taken.
// "&" can never form a letter run but is listed so the set matches what users type.
var connectorWords = map[string]struct{}{
	"and": {}, "&": {}, "of": {}, "the": {},
	"ve": {}, "ile": {},
	"von": {}, "van": {}, "der": {}, "den": {}, "und": {},
	"de": {}, "da": {}, "di": {}, "du": {}, "del": {}, "la": {}, "le": {},
	"y": {}, "e": {}, "et": {},
	"bin": {}, "ibn": {}, "al": {},
}

type initialsOptions struct {
	fallback    string
	maxInitials int
}

// InitialsOption customises ComputeInitials
type InitialsOption func(*initialsOptions)

// WithFallback sets the string returned when no initials can be derived.
// An empty fallback keeps the default.
func WithFallback(fallback string) InitialsOption {
	return func(o *initialsOptions) {
		if fallback != "" {
			o.fallback = fallback
		}
	}
}

// WithMaxInitials sets the maximum number of letters returned
func WithMaxInitials(n int) InitialsOption {
	return func(o *initialsOptions) {
		o.maxInitials = n
	}
}

// ComputeInitials derives avatar initials from a display name.
// Letter runs of any script are treated as words, connector words are skipped
// unless nothing else remains, and the first letter of each word is upper-cased.
func ComputeInitials(name string, opts ...InitialsOption) string {
	o := initialsOptions{
		fallback:    DefaultInitialsFallback,
		maxInitials: DefaultMaxInitials,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.maxInitials <= 0 {
		return o.fallback
	}

	tokens := letterRuns(strings.TrimSpace(name))
	if len(tokens) == 0 {
		return o.fallback
	}

	candidates := make([][]rune, 0, len(tokens))
	for _, tok := range tokens {
		if _, skip := connectorWords[strings.ToLower(string(tok))]; !skip {
			candidates = append(candidates, tok)
		}
	}
	if len(candidates) == 0 {
		candidates = tokens
	}

	initials := make([]rune, 0, o.maxInitials)
	for _, tok := range candidates {
		if len(initials) == o.maxInitials {
			break
		}
		initials = append(initials, unicode.ToUpper(tok[0]))
	}

	if len(initials) == 0 {
		first := candidates[0]
		if len(first) > o.maxInitials {
			first = first[:o.maxInitials]
		}
		for _, r := range first {
			initials = append(initials, unicode.ToUpper(r))
		}
	}
	if len(initials) == 0 {
		return o.fallback
	}

	return string(initials)
}

// letterRuns splits s into maximal runs of letters
func letterRuns(s string) [][]rune {
	var (
		runs    [][]rune
		current []rune
	)
	for _, r := range s {
		if unicode.IsLetter(r) {
			current = append(current, r)
			continue
		}
		if len(current) > 0 {
			runs = append(runs, current)
			current = nil
		}
	}
	if len(current) > 0 {
		runs = append(runs, current)
	}
	return runs
}
