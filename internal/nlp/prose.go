package nlp

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseProvider tags text with the prose averaged-perceptron tagger. The
// model is loaded once by NewProseProvider and only read afterwards.
type ProseProvider struct {
	model *prose.Model
}

// NewProseProvider loads the prose model by tagging a warm-up sentence and
// keeps it for every later call. A broken model surfaces here rather than on
// the first request.
func NewProseProvider() (*ProseProvider, error) {
	doc, err := prose.NewDocument("Go engineer",
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prose tagger: %w", err)
	}
	if doc.Model == nil {
		return nil, fmt.Errorf("failed to initialize prose tagger: no model loaded")
	}
	return &ProseProvider{model: doc.Model}, nil
}

// Name identifies the provider in logs.
func (p *ProseProvider) Name() string { return "prose" }

// Tokens tokenizes and tags text with the loaded model. Segmentation and
// entity extraction are disabled since only tags are used.
func (p *ProseProvider) Tokens(text string) ([]Token, error) {
	if p.model == nil {
		return nil, fmt.Errorf("failed to tag text: prose provider has no model, use NewProseProvider")
	}
	doc, err := prose.NewDocument(text,
		prose.UsingModel(p.model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}
	raw := doc.Tokens()
	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		tokens = append(tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}
	return tokens, nil
}
