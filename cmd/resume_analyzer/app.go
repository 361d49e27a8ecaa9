package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/cache"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/nlp"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/parsing"
)

// app holds the components shared by the commands, built once from config.
type app struct {
	cfg      *config.Config
	cache    *cache.Cache
	parser   *parsing.Parser
	analyzer *analysis.Analyzer
	closers  []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	resultCache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if closeCache != nil {
		a.closers = append(a.closers, closeCache)
	}
	a.cache = resultCache

	parserOpts := []parsing.Option{parsing.WithLogger(logger.Logger)}
	if resultCache != nil {
		parserOpts = append(parserOpts, parsing.WithCache(resultCache))
	}
	a.parser = parsing.NewParser(parserOpts...)

	provider, err := newProvider(cfg.Analysis.NLP)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.analyzer = analysis.New(
		analysis.WithParser(a.parser),
		analysis.WithProvider(provider),
		analysis.WithLogger(logger.Logger),
		analysis.WithTopTerms(cfg.Analysis.TopTerms),
		analysis.WithMaxFeatures(cfg.Analysis.MaxFeatures),
	)
	return a, nil
}

// Close releases the cache backend.
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			logger.Warn().Err(err).Msg("failed to close resource")
		}
	}
}

// newCache builds the parse-result cache for the configured backend. The
// returned close function is nil when there is nothing to release.
func newCache(ctx context.Context, cfg *config.Config) (*cache.Cache, func() error, error) {
	opts := []cache.Option{cache.WithTTL(cfg.CacheTTL()), cache.WithLogger(logger.Logger)}

	switch cfg.Cache.Backend {
	case config.CacheNone:
		return nil, nil, nil
	case config.CacheRedis:
		store, err := cache.NewRedisStore(ctx, cfg.Cache.RedisURL, cfg.Cache.Prefix)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis cache: %w", err)
		}
		return cache.New(store, opts...), store.Close, nil
	default:
		return cache.New(cache.NewMemoryStore(), opts...), nil, nil
	}
}

// newProvider returns the configured NLP provider, or nil for "none".
func newProvider(name string) (nlp.Provider, error) {
	switch name {
	case config.NLPProse:
		p, err := nlp.NewProseProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to load prose tagger: %w", err)
		}
		return p, nil
	case config.NLPRules:
		return nlp.RuleProvider{}, nil
	default:
		return nil, nil
	}
}

// openHistory connects to the analysis history database.
func openHistory(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or database.url)")
	}
	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// readDocument reads a document's text. Formats whose text cannot be
// extracted are treated as empty, with a warning.
func readDocument(path string) (string, error) {
	text, err := ingestion.ReadText(path)
	var unsupported *ingestion.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		logger.Warn().Str("path", path).Str("extension", unsupported.Extension).
			Msg("text extraction not supported, treating document as empty")
		return "", nil
	}
	return text, err
}

// render writes v as indented JSON for --format json, otherwise calls text
// with a printer on the command's output.
func render(cmd *cobra.Command, v any, text func(p *observability.Printer)) error {
	if outputFormat == formatJSON {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	text(observability.NewPrinter(cmd.OutOrStdout()))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeJSONFile writes v as indented JSON to path.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
