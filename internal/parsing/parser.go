// Package parsing segments resume text into sections and extracts bullet points.
package parsing

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Cache stores serialized parse results keyed by document content. Fetch
// returns the cached bytes for content or calls compute and stores its result.
type Cache interface {
	Fetch(ctx context.Context, content string, compute func() ([]byte, error)) ([]byte, error)
}

// Parser segments documents, optionally memoizing results in a Cache.
type Parser struct {
	cache     Cache
	extractor *BulletExtractor
	log       zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithCache memoizes parse results in c.
func WithCache(c Cache) Option {
	return func(p *Parser) { p.cache = c }
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// WithBulletExtractor replaces the default bullet extractor.
func WithBulletExtractor(e *BulletExtractor) Option {
	return func(p *Parser) {
		if e != nil {
			p.extractor = e
		}
	}
}

// NewParser creates a Parser. Without options it parses synchronously with
// no cache and discards logs.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		extractor: defaultExtractor,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Segment parses text without consulting the cache.
func (p *Parser) Segment(text string) *Document {
	return segmentWith(p.extractor, text)
}

// Parse segments text, consulting the cache first when one is configured.
// Cache failures are logged and never fail the parse; the only error returned
// is ctx's.
func (p *Parser) Parse(ctx context.Context, text string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.cache == nil {
		return p.Segment(text), nil
	}

	var fresh *Document
	data, err := p.cache.Fetch(ctx, text, func() ([]byte, error) {
		fresh = p.Segment(text)
		return json.Marshal(fresh)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		p.log.Warn().Err(&CacheError{Message: "fetch failed", Cause: err}).Msg("parsing without cache")
		if fresh != nil {
			return fresh, nil
		}
		return p.Segment(text), nil
	}
	if fresh != nil {
		return fresh, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		p.log.Warn().Err(&CacheError{Message: "corrupt entry", Cause: err}).Msg("parsing without cache")
		return p.Segment(text), nil
	}
	p.log.Debug().Int("sections", len(doc.Sections)).Msg("parse cache hit")
	return &doc, nil
}
