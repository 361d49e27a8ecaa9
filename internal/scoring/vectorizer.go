package scoring

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when no document contains a countable term.
var ErrEmptyVocabulary = errors.New("empty vocabulary")

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 5000

// Vectorizer turns documents into term count vectors over a shared
// vocabulary of unigrams and bigrams. Tokens are lowercased runs of two or
// more letters or digits; stop words are removed before bigrams are formed.
type Vectorizer struct {
	maxFeatures  int
	maxN         int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewVectorizer creates a vectorizer with English stop words, unigrams and
// bigrams, and DefaultMaxFeatures.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		maxFeatures:  DefaultMaxFeatures,
		maxN:         2,
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}_]{2,}`),
		stopwords:    englishStopwords(),
	}
}

// Vectors is the result of fitting a vectorizer to a set of documents.
// Features is sorted; Counts[i][j] is the count of Features[j] in document i.
type Vectors struct {
	Features []string
	Counts   [][]int
}

// FitTransform builds the vocabulary from docs and counts each document
// against it. When more terms than the feature cap exist, the most frequent
// terms across all documents are kept, ties broken alphabetically.
func (v *Vectorizer) FitTransform(docs ...string) (*Vectors, error) {
	perDoc := make([]map[string]int, len(docs))
	totals := make(map[string]int)
	for i, doc := range docs {
		counts := make(map[string]int)
		for _, term := range v.terms(doc) {
			counts[term]++
			totals[term]++
		}
		perDoc[i] = counts
	}
	if len(totals) == 0 {
		return nil, ErrEmptyVocabulary
	}

	features := make([]string, 0, len(totals))
	for term := range totals {
		features = append(features, term)
	}
	sort.Strings(features)
	if v.maxFeatures > 0 && len(features) > v.maxFeatures {
		sort.SliceStable(features, func(i, j int) bool {
			return totals[features[i]] > totals[features[j]]
		})
		features = features[:v.maxFeatures]
		sort.Strings(features)
	}

	out := &Vectors{Features: features, Counts: make([][]int, len(docs))}
	for i, counts := range perDoc {
		row := make([]int, len(features))
		for j, term := range features {
			row[j] = counts[term]
		}
		out.Counts[i] = row
	}
	return out, nil
}

// Tokens returns the lowercased, stop-word-filtered tokens of text in order.
func (v *Vectorizer) Tokens(text string) []string {
	return v.tokenize(text)
}

func (v *Vectorizer) tokenize(text string) []string {
	raw := v.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := v.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (v *Vectorizer) terms(text string) []string {
	tokens := v.tokenize(text)
	terms := make([]string, 0, len(tokens)*v.maxN)
	for n := 1; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func englishStopwords() map[string]struct{} {
	words := []string{
		"a", "about", "above", "across", "after", "afterwards", "again", "against", "all", "almost",
		"alone", "along", "already", "also", "although", "always", "am", "among", "an", "and",
		"another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are", "around", "as",
		"at", "be", "became", "because", "become", "becomes", "been", "before", "beforehand", "behind",
		"being", "below", "beside", "besides", "between", "beyond", "both", "but", "by", "can",
		"cannot", "could", "did", "do", "does", "doing", "done", "down", "due", "during",
		"each", "eg", "either", "else", "elsewhere", "enough", "etc", "even", "ever", "every",
		"everyone", "everything", "everywhere", "except", "few", "for", "from", "further", "had", "has",
		"have", "having", "he", "hence", "her", "here", "hereafter", "hereby", "herein", "hers",
		"herself", "him", "himself", "his", "how", "however", "ie", "if", "in", "indeed",
		"into", "is", "it", "its", "itself", "just", "last", "latter", "least", "less",
		"many", "may", "me", "meanwhile", "might", "more", "moreover", "most", "mostly", "much",
		"must", "my", "myself", "namely", "neither", "never", "nevertheless", "next", "no", "nobody",
		"none", "nor", "not", "nothing", "now", "nowhere", "of", "off", "often", "on",
		"once", "one", "only", "onto", "or", "other", "others", "otherwise", "our", "ours",
		"ourselves", "out", "over", "own", "per", "perhaps", "please", "rather", "re", "same",
		"seem", "seemed", "seeming", "seems", "several", "she", "should", "since", "so", "some",
		"somehow", "someone", "something", "sometime", "sometimes", "somewhere", "still", "such", "than", "that",
		"the", "their", "theirs", "them", "themselves", "then", "thence", "there", "thereafter", "thereby",
		"therefore", "therein", "these", "they", "this", "those", "though", "through", "throughout", "thru",
		"thus", "to", "together", "too", "toward", "towards", "under", "until", "up", "upon",
		"us", "very", "via", "was", "we", "well", "were", "what", "whatever", "when",
		"whence", "whenever", "where", "whereas", "whereby", "wherein", "whether", "which", "while", "who",
		"whoever", "whole", "whom", "whose", "why", "will", "with", "within", "without", "would",
		"yet", "you", "your", "yours", "yourself", "yourselves",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
