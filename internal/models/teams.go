package models

import (
	"strings"
	"unicode"
)

var teamStopwords = map[string]bool{
	"fc": true, "cf": true, "sc": true, "afc": true, "the": true, "de": true, "club": true,
}

// TeamTokens splits a team name into its significant lowercase tokens
func TeamTokens(name string) []string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) < 3 || teamStopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// TeamsMatch is a fuzzy team name comparison: one name contains the other,
// or they share at least one significant token.
func TeamsMatch(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	if strings.Contains(la, lb) || strings.Contains(lb, la) {
		return true
	}
	tb := make(map[string]bool)
	for _, t := range TeamTokens(lb) {
		tb[t] = true
	}
	for _, t := range TeamTokens(la) {
		if tb[t] {
			return true
		}
	}
	return false
}
