package nlp

import "regexp"

// wordRe keeps technology spellings like C++, C#, Node.js and scikit-learn
// intact while dropping trailing sentence punctuation.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}+#.\-]*[\p{L}\p{N}+#]|[\p{L}\p{N}]`)

// RuleProvider is a dependency-free tokenizer. Capitalized and all-caps
// words are tagged NNP; everything else is left untagged.
type RuleProvider struct{}

// Name identifies the provider in logs.
func (RuleProvider) Name() string { return "rules" }

// Tokens splits text into words.
func (RuleProvider) Tokens(text string) ([]Token, error) {
	words := wordRe.FindAllString(text, -1)
	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		tok := Token{Text: w}
		if tok.IsTitle() || tok.IsUpper() {
			tok.Tag = "NNP"
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Tokenize splits text the way RuleProvider does and returns only the words.
func Tokenize(text string) []string {
	return wordRe.FindAllString(text, -1)
}
