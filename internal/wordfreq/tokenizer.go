package wordfreq

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultPunctuation lists the characters stripped before splitting.
const DefaultPunctuation = ".,-!:"

// TokenizerOptions controls normalization.
type TokenizerOptions struct {
	// Punctuation holds every character replaced by a space. Duplicates are harmless.
	Punctuation string
	// CaseFold lowercases the text before splitting.
	CaseFold bool
}

// DefaultTokenizerOptions returns the stock punctuation set with case folding on.
func DefaultTokenizerOptions() TokenizerOptions {
	return TokenizerOptions{Punctuation: DefaultPunctuation, CaseFold: true}
}

// Tokenize normalizes text and returns its tokens in source order. The result
// is never nil and never contains empty strings.
func Tokenize(text string, opts TokenizerOptions) []string {
	if text == "" {
		return []string{}
	}
	normalized := stripPunctuation(text, opts.Punctuation)
	if opts.CaseFold {
		normalized = cases.Lower(language.Und).String(normalized)
	}
	fields := strings.FieldsFunc(normalized, unicode.IsSpace)
	if fields == nil {
		return []string{}
	}
	return fields
}

// stripPunctuation also rewrites every invalid UTF-8 byte to U+FFFD, so
// tokens are always valid UTF-8.
func stripPunctuation(text, punctuation string) string {
	set := make(map[rune]struct{}, len(punctuation))
	for _, r := range punctuation {
		set[r] = struct{}{}
	}
	return strings.Map(func(r rune) rune {
		if _, ok := set[r]; ok {
			return ' '
		}
		return r
	}, text)
}
