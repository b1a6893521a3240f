// Package tokenizer converts chunk text into a flat, ordered token list.
package tokenizer

import (
	"regexp"
	"strings"
)

// wordRuns matches maximal runs of word characters (letters, digits,
// underscore); punctuation and whitespace act as separators.
var wordRuns = regexp.MustCompile(`\w+`)

// Tokenize lowercases text and extracts word-character runs in order of
// occurrence, keeping duplicates. Deterministic: the same input always
// yields the same token list.
func Tokenize(text string) []string {
	return wordRuns.FindAllString(strings.ToLower(text), -1)
}
