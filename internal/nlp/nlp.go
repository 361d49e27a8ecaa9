// Package nlp provides part-of-speech tagging and phrase matching used to
// enrich skill extraction. Providers are constructed once at startup and
// passed to the components that need them; they are safe for concurrent use.
package nlp

import (
	"strings"
	"unicode"
)

// Token is a single word with its Penn Treebank part-of-speech tag. Tag is
// empty when the provider cannot tag.
type Token struct {
	Text string `json:"text"`
	Tag  string `json:"tag,omitempty"`
}

// IsNoun reports whether the token is tagged as a common or proper noun.
func (t Token) IsNoun() bool {
	return strings.HasPrefix(t.Tag, "NN")
}

// IsTitle reports whether the token starts with an uppercase letter followed
// only by lowercase letters.
func (t Token) IsTitle() bool {
	runes := []rune(t.Text)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsLetter(r) && !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// IsUpper reports whether every letter in the token is uppercase and it has
// at least one letter.
func (t Token) IsUpper() bool {
	letters := 0
	for _, r := range t.Text {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters > 0
}

// LikeNum reports whether the token reads as a number.
func (t Token) LikeNum() bool {
	text := strings.NewReplacer(",", "", ".", "", "%", "").Replace(t.Text)
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Provider tokenizes and tags text.
type Provider interface {
	Tokens(text string) ([]Token, error)
	Name() string
}
