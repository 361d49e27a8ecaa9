package nlp

import "strings"

// Match is one phrase hit in a token sequence. Start and End are token
// indexes, End exclusive.
type Match struct {
	Label string
	Text  string
	Start int
	End   int
}

type phrase struct {
	label string
	words []string
}

// PhraseMatcher finds case-insensitive occurrences of labelled phrases in
// tokenized text. Phrases are tokenized with the same rules as the input.
type PhraseMatcher struct {
	phrases []phrase
}

// NewPhraseMatcher returns an empty matcher.
func NewPhraseMatcher() *PhraseMatcher {
	return &PhraseMatcher{}
}

// Add registers phrases under label.
func (m *PhraseMatcher) Add(label string, phrases ...string) {
	for _, p := range phrases {
		words := lowerAll(Tokenize(p))
		if len(words) == 0 {
			continue
		}
		m.phrases = append(m.phrases, phrase{label: label, words: words})
	}
}

// Match returns every phrase occurrence in tokens, ordered by position and
// then by registration order.
func (m *PhraseMatcher) Match(tokens []Token) []Match {
	lowered := make([]string, len(tokens))
	for i, t := range tokens {
		lowered[i] = strings.ToLower(t.Text)
	}

	var matches []Match
	for start := range lowered {
		for _, p := range m.phrases {
			end := start + len(p.words)
			if end > len(lowered) || !equalWords(lowered[start:end], p.words) {
				continue
			}
			texts := make([]string, 0, len(p.words))
			for _, t := range tokens[start:end] {
				texts = append(texts, t.Text)
			}
			matches = append(matches, Match{
				Label: p.label,
				Text:  strings.Join(texts, " "),
				Start: start,
				End:   end,
			})
		}
	}
	return matches
}

// MatchText tokenizes text with the built-in rules and matches it.
func (m *PhraseMatcher) MatchText(text string) []Match {
	tokens, _ := RuleProvider{}.Tokens(text)
	return m.Match(tokens)
}

func equalWords(a, b []string) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
