// Package analysis compares a resume with a job description. It parses both
// documents, extracts skills, scores their similarity and gathers the rule
// based advice from the suggest package into a single Analysis.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/education"
	"github.com/jonathan/resume-analyzer/internal/experience"
	"github.com/jonathan/resume-analyzer/internal/nlp"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/suggest"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultTopTerms is how many important terms are reported per document.
const DefaultTopTerms = 10

// Warning messages attached to an Analysis when a sub-analysis degrades.
const (
	WarnNLPUnavailable  = "NLP tagging failed; skills and action verbs were analyzed with pattern rules only"
	WarnNoJobSkills     = "No skills were found in the job description"
	WarnNoResumeBullets = "No bullet points were found in the resume"
	WarnNoCoverage      = "Skill coverage could not be computed"
)

// Input is one resume and job description pair. Filenames are carried into
// the result for display and storage only.
type Input struct {
	Resume         string
	Job            string
	ResumeFilename string
	JobFilename    string
}

// Analyzer runs the full comparison. It holds no per-request state and is
// safe for concurrent use.
type Analyzer struct {
	parser    *parsing.Parser
	provider  nlp.Provider
	extractor *skills.Extractor
	verbs     *suggest.VerbEnhancer
	sections  *suggest.SectionAdvisor
	scorerOpt []scoring.ScorerOption
	topTerms  int
	now       func() time.Time
	log       zerolog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithParser replaces the default uncached parser.
func WithParser(p *parsing.Parser) Option {
	return func(a *Analyzer) {
		if p != nil {
			a.parser = p
		}
	}
}

// WithProvider sets the NLP provider used for skill and verb tagging.
func WithProvider(p nlp.Provider) Option {
	return func(a *Analyzer) { a.provider = p }
}

// WithLogger sets the analyzer's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// WithTopTerms sets how many important terms are reported per document.
func WithTopTerms(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.topTerms = n
		}
	}
}

// WithMaxFeatures caps the similarity vocabulary.
func WithMaxFeatures(n int) Option {
	return func(a *Analyzer) {
		a.scorerOpt = append(a.scorerOpt, scoring.WithMaxFeatures(n))
	}
}

// WithClock sets the time source used for "Present" end dates and
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an Analyzer. Without options it parses without a cache, uses
// no NLP provider and discards logs.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		parser:   parsing.NewParser(),
		topTerms: DefaultTopTerms,
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.extractor = skills.NewExtractor(a.provider)
	a.verbs = suggest.NewVerbEnhancer(a.provider)
	a.sections = suggest.NewSectionAdvisor()
	return a
}

// Resume is the parsed resume side of an Analysis.
type Resume struct {
	Contact   parsing.ContactInfo                     `json:"contact"`
	Sections  map[parsing.SectionName]*parsing.Section `json:"sections"`
	Skills    skills.Skills                           `json:"skills"`
	Jobs      []experience.Job                        `json:"experience"`
	Education []education.Degree                      `json:"education"`
}

// JobDescription is the parsed job side of an Analysis.
type JobDescription struct {
	Sections       map[parsing.SectionName]*parsing.Section `json:"sections"`
	RequiredSkills skills.Skills                           `json:"required_skills"`
	Profile        *types.JobProfile                       `json:"profile"`
}

// Feedback is the overall match advice.
type Feedback struct {
	Overall     string           `json:"overall"`
	Suggestions []string         `json:"suggestions"`
	KeyTerms    scoring.KeyTerms `json:"key_terms"`
}

// EducationMatch compares resume degrees with the job's degree requirement.
type EducationMatch struct {
	Requirement *types.EducationRequirements `json:"requirement"`
	Meets       bool                         `json:"meets"`
}

// Analysis is the complete comparison of a resume with a job description.
// Similarity is the match percentage rounded to one decimal; Score is the
// raw cosine similarity in [0, 1].
type Analysis struct {
	ID                     string                          `json:"id,omitempty"`
	ResumeFilename         string                          `json:"resume_filename,omitempty"`
	JobFilename            string                          `json:"job_filename,omitempty"`
	Resume                 Resume                          `json:"resume"`
	JobDescription         JobDescription                  `json:"job_description"`
	MatchingSkills         []string                        `json:"matching_skills"`
	MissingSkills          []string                        `json:"missing_skills"`
	Similarity             float64                         `json:"similarity"`
	Score                  float64                         `json:"score"`
	Feedback               Feedback                        `json:"feedback"`
	ImportantTerms         scoring.ImportantTerms          `json:"important_terms"`
	SkillsGap              scoring.SkillsGap               `json:"skills_gap"`
	SkillCoverage          *types.SkillCoverage            `json:"skill_coverage"`
	VerbEnhancements       []suggest.Enhancement           `json:"verb_enhancements"`
	VerbSummary            suggest.EnhancementSummary      `json:"verb_summary"`
	FormatAnalysis         *suggest.FormatAnalysis         `json:"format_analysis"`
	TemplateRecommendation *suggest.TemplateRecommendation `json:"template_recommendation"`
	ATSTips                []string                        `json:"ats_tips"`
	KeywordAnalysis        suggest.KeywordAnalysis         `json:"keyword_analysis"`
	KeywordSuggestions     []string                        `json:"keyword_suggestions"`
	ExperienceMatch        experience.MatchResult          `json:"experience_match"`
	EducationMatch         EducationMatch                  `json:"education_match"`
	SectionSuggestions     map[string][]string             `json:"section_suggestions"`
	Warnings               []string                        `json:"warnings"`
	CreatedAt              time.Time                       `json:"created_at"`
}

func (a *Analysis) warn(msg string) {
	a.Warnings = append(a.Warnings, msg)
}

// Analyze parses both documents concurrently and builds the Analysis. Only
// empty input and context cancellation are errors; degraded sub-analyses
// are reported in Warnings.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*Analysis, error) {
	resumeText := strings.TrimSpace(in.Resume)
	jobText := strings.TrimSpace(in.Job)
	if resumeText == "" {
		return nil, &InputError{Field: "resume", Message: "no text could be extracted"}
	}
	if jobText == "" {
		return nil, &InputError{Field: "job_description", Message: "no text could be extracted"}
	}

	var resumeDoc, jobDoc *parsing.Document
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := a.parser.Parse(gCtx, resumeText)
		if err != nil {
			return fmt.Errorf("failed to parse resume: %w", err)
		}
		resumeDoc = doc
		return nil
	})
	g.Go(func() error {
		doc, err := a.parser.Parse(gCtx, jobText)
		if err != nil {
			return fmt.Errorf("failed to parse job description: %w", err)
		}
		jobDoc = doc
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log := a.log.With().Str("resume", in.ResumeFilename).Str("job", in.JobFilename).Logger()
	result := &Analysis{
		ResumeFilename: in.ResumeFilename,
		JobFilename:    in.JobFilename,
		Warnings:       []string{},
		CreatedAt:      a.now().UTC(),
	}

	if a.provider != nil {
		if _, err := a.provider.Tokens(resumeText); err != nil {
			log.Warn().Err(err).Str("provider", a.provider.Name()).Msg("nlp provider failed")
			result.warn(WarnNLPUnavailable)
		}
	}

	fields := a.Fields(resumeDoc, resumeText)
	result.Resume = Resume{
		Contact:   fields.Contact,
		Sections:  resumeDoc.SectionMap(),
		Skills:    fields.Skills,
		Jobs:      fields.Jobs,
		Education: fields.Education,
	}
	jobSkills := a.extractor.Extract(jobText)
	if len(jobSkills) == 0 {
		result.warn(WarnNoJobSkills)
	}

	resumeNames := fields.Skills.Names()
	jobNames := jobSkills.Names()
	result.MatchingSkills = matchingSkills(resumeNames, jobNames)

	comparison := scoring.NewCountScorer(a.scorerOpt...).Compare(resumeText, jobText)
	result.Score = comparison.Similarity
	result.ImportantTerms = comparison.ImportantTerms(a.topTerms)
	result.SkillsGap = comparison.SkillsGap(resumeText, jobText)

	fb := scoring.GenerateFeedback(comparison.Similarity, resumeNames, jobNames, result.ImportantTerms)
	result.Similarity = fb.MatchPercentage
	result.MissingSkills = fb.MissingSkills
	result.Feedback = Feedback{
		Overall:     fb.OverallFeedback,
		Suggestions: fb.Suggestions,
		KeyTerms:    fb.KeyTerms,
	}

	profile := BuildJobProfile(jobText, jobNames, result.ImportantTerms.Job)
	result.JobDescription = JobDescription{
		Sections:       jobDoc.SectionMap(),
		RequiredSkills: jobSkills,
		Profile:        profile,
	}
	if targets, err := skills.BuildSkillTargets(profile); err != nil {
		log.Debug().Err(err).Msg("skipping skill coverage")
		result.warn(WarnNoCoverage)
	} else {
		coverage := skills.Coverage(targets, resumeNames, resumeText)
		result.SkillCoverage = &coverage
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.VerbEnhancements = a.verbs.EnhanceAll(resumeText)
	result.VerbSummary = suggest.Summarize(result.VerbEnhancements)
	if len(result.VerbEnhancements) == 0 {
		result.warn(WarnNoResumeBullets)
	}

	format := suggest.AnalyzeFormat(resumeText, fields.Contact)
	result.FormatAnalysis = &format
	template := suggest.RecommendTemplate(result.Similarity, jobText)
	result.TemplateRecommendation = &template
	result.ATSTips = suggest.ATSTips()

	result.KeywordAnalysis = suggest.AnalyzeMatch(resumeText, jobText)
	result.KeywordSuggestions = suggest.SuggestImprovements(result.KeywordAnalysis)
	result.ExperienceMatch = experience.Match(resumeText, jobText)
	result.EducationMatch = EducationMatch{
		Requirement: profile.EducationRequirements,
		Meets:       education.Meets(fields.Education, profile.EducationRequirements),
	}
	result.SectionSuggestions = a.sections.GenerateSuggestions(resumeText, jobText)

	log.Debug().
		Float64("similarity", result.Similarity).
		Int("warnings", len(result.Warnings)).
		Msg("analysis complete")
	return result, nil
}

// matchingSkills returns the resume skills that the job also names,
// compared case-insensitively, in resume order.
func matchingSkills(resumeSkills, jobSkills []string) []string {
	want := make(map[string]bool, len(jobSkills))
	for _, s := range jobSkills {
		want[strings.ToLower(s)] = true
	}
	matched := []string{}
	for _, s := range resumeSkills {
		if want[strings.ToLower(s)] {
			matched = append(matched, s)
		}
	}
	return matched
}
