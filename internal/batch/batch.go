// Package batch analyzes several resumes against one job description with
// bounded concurrency.
package batch

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultConcurrency is used when a Processor is built with a limit below one.
const DefaultConcurrency = 4

// Analyzer analyzes one resume against a job description.
type Analyzer interface {
	Analyze(ctx context.Context, in analysis.Input) (*analysis.Analysis, error)
}

// Result is the outcome for one resume. Exactly one of Analysis and Error
// is set.
type Result struct {
	Success  bool               `json:"success"`
	Filename string             `json:"filename"`
	Analysis *analysis.Analysis `json:"analysis,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Summary aggregates the similarity scores of the successful results.
// Scores are match percentages rounded to two decimals. BestCandidate is
// nil when nothing succeeded.
type Summary struct {
	TotalResumes  int     `json:"total_resumes"`
	Successful    int     `json:"successful"`
	Failed        int     `json:"failed"`
	AverageScore  float64 `json:"average_score"`
	MaxScore      float64 `json:"max_score"`
	MinScore      float64 `json:"min_score"`
	BestCandidate *string `json:"best_candidate"`
}

// Report is a completed batch.
type Report struct {
	ID      uuid.UUID `json:"id"`
	Results []Result  `json:"results"`
	Summary Summary   `json:"summary"`
}

// Processor runs batches.
type Processor struct {
	analyzer    Analyzer
	concurrency int
	log         zerolog.Logger
}

// NewProcessor creates a processor that analyzes at most concurrency
// resumes at once.
func NewProcessor(analyzer Analyzer, concurrency int, log zerolog.Logger) *Processor {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Processor{analyzer: analyzer, concurrency: concurrency, log: log}
}

// Process analyzes every resume against jobText. Results keep the input
// order. A failing resume is recorded as an unsuccessful Result and does not
// stop the others; only cancellation of ctx fails the batch.
func (p *Processor) Process(ctx context.Context, jobText string, resumes []types.BatchResume) (*Report, error) {
	results := make([]Result, len(resumes))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, r := range resumes {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			a, err := p.analyzer.Analyze(gCtx, analysis.Input{
				Resume:         r.Text,
				Job:            jobText,
				ResumeFilename: r.Name,
			})
			if err != nil {
				if ctxErr := gCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				p.log.Error().Err(err).Str("filename", r.Name).Msg("failed to process resume")
				results[i] = Result{Filename: r.Name, Error: err.Error()}
				return nil
			}
			results[i] = Result{Success: true, Filename: r.Name, Analysis: a}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		ID:      uuid.New(),
		Results: results,
		Summary: Summarize(results),
	}
	p.log.Info().
		Str("batch_id", report.ID.String()).
		Int("total", report.Summary.TotalResumes).
		Int("failed", report.Summary.Failed).
		Msg("batch complete")
	return report, nil
}

// Summarize computes the batch statistics. The best candidate is the first
// result with the highest similarity.
func Summarize(results []Result) Summary {
	s := Summary{TotalResumes: len(results)}

	var sum float64
	var best *Result
	for i := range results {
		r := &results[i]
		if !r.Success || r.Analysis == nil {
			continue
		}
		score := r.Analysis.Similarity
		if s.Successful == 0 {
			s.MaxScore, s.MinScore = score, score
		}
		s.Successful++
		sum += score
		s.MaxScore = math.Max(s.MaxScore, score)
		s.MinScore = math.Min(s.MinScore, score)
		if best == nil || score > best.Analysis.Similarity {
			best = r
		}
	}
	s.Failed = s.TotalResumes - s.Successful

	if s.Successful > 0 {
		s.AverageScore = round2(sum / float64(s.Successful))
		s.MaxScore = round2(s.MaxScore)
		s.MinScore = round2(s.MinScore)
		name := best.Filename
		s.BestCandidate = &name
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
