package textutil

import (
	"regexp"
	"sort"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize lowercases and collapses internal whitespace runs to single
// spaces, for case/whitespace-insensitive containment checks
func Normalize(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// ContainsNormalized reports whether needle appears in haystack after
// both are normalized
func ContainsNormalized(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// TokenExtractor extracts number-like tokens from free text using a
// fixed pattern set. Tokens are literal matched substrings, not
// normalized values: "5%" and "5.0%" are distinct.
type TokenExtractor struct {
	patterns []*regexp.Regexp
}

// NewTokenExtractor compiles the given patterns case-insensitively
func NewTokenExtractor(patterns []string) (*TokenExtractor, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return &TokenExtractor{patterns: compiled}, nil
}

// Extract returns the union of all pattern matches in text, trimmed and
// deduplicated, in sorted order. Pure and total: never fails on
// arbitrary input.
func (e *TokenExtractor) Extract(text string) []string {
	seen := make(map[string]bool)
	for _, re := range e.patterns {
		for _, m := range re.FindAllString(text, -1) {
			seen[strings.TrimSpace(m)] = true
		}
	}

	tokens := make([]string, 0, len(seen))
	for tok := range seen {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}

// ExtractSet returns the matches as a membership set
func (e *TokenExtractor) ExtractSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, re := range e.patterns {
		for _, m := range re.FindAllString(text, -1) {
			set[strings.TrimSpace(m)] = true
		}
	}
	return set
}
