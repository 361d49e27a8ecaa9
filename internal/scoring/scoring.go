// Package scoring compares resume text with a job description: count-vector
// cosine similarity, the most important terms on each side, a skills gap
// split into critical and nice-to-have terms, and match feedback.
package scoring

import (
	"math"
	"sort"
	"strings"
)

// Scorer compares a resume with a job description.
type Scorer interface {
	Compare(resumeText, jobText string) *Comparison
}

// CountScorer scores with count vectors and cosine similarity.
type CountScorer struct {
	vectorizer *Vectorizer
}

// ScorerOption configures a CountScorer.
type ScorerOption func(*CountScorer)

// WithMaxFeatures caps the vocabulary size. Values below one keep
// DefaultMaxFeatures.
func WithMaxFeatures(n int) ScorerOption {
	return func(s *CountScorer) {
		if n > 0 {
			s.vectorizer.maxFeatures = n
		}
	}
}

// NewCountScorer creates a scorer using NewVectorizer.
func NewCountScorer(opts ...ScorerOption) *CountScorer {
	s := &CountScorer{vectorizer: NewVectorizer()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Comparison holds the fitted vectors of one resume/job pair.
type Comparison struct {
	Features   []string
	Resume     []int
	Job        []int
	Similarity float64
}

// Compare vectorizes both texts over a shared vocabulary and computes their
// cosine similarity. An empty vocabulary yields a zero comparison.
func (s *CountScorer) Compare(resumeText, jobText string) *Comparison {
	vectors, err := s.vectorizer.FitTransform(resumeText, jobText)
	if err != nil {
		return &Comparison{}
	}
	c := &Comparison{
		Features: vectors.Features,
		Resume:   vectors.Counts[0],
		Job:      vectors.Counts[1],
	}
	c.Similarity = cosine(c.Resume, c.Job)
	return c
}

// Similarity returns the cosine similarity of the two texts in [0, 1].
func Similarity(resumeText, jobText string) float64 {
	return NewCountScorer().Compare(resumeText, jobText).Similarity
}

func cosine(a, b []int) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i] * b[i])
		na += float64(a[i] * a[i])
		nb += float64(b[i] * b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// ImportantTerms lists the most frequent terms of each document.
type ImportantTerms struct {
	Resume []string `json:"resume_terms"`
	Job    []string `json:"job_terms"`
}

// ImportantTerms returns up to n terms per document ordered by descending
// count, ties alphabetical. Terms absent from a document are not listed.
func (c *Comparison) ImportantTerms(n int) ImportantTerms {
	return ImportantTerms{
		Resume: topTerms(c.Features, c.Resume, n),
		Job:    topTerms(c.Features, c.Job, n),
	}
}

func topTerms(features []string, counts []int, n int) []string {
	idx := make([]int, 0, len(counts))
	for i, count := range counts {
		if count > 0 {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(i, j int) bool { return counts[idx[i]] > counts[idx[j]] })
	if len(idx) > n {
		idx = idx[:n]
	}
	terms := make([]string, len(idx))
	for i, j := range idx {
		terms[i] = features[j]
	}
	return terms
}

var (
	criticalIndicators   = []string{"required", "must", "essential", "necessary"}
	niceToHaveIndicators = []string{"preferred", "nice", "plus", "helpful", "desirable"}
)

// contextRadius is how many bytes around a term are searched for indicators.
const contextRadius = 50

// Gaps are job terms missing from the resume.
type Gaps struct {
	CriticalMissing   []string `json:"critical_missing"`
	NiceToHaveMissing []string `json:"nice_to_have_missing"`
}

// Matches compares the resume's terms with the job's.
type Matches struct {
	MatchedSkills    []string `json:"matched_skills"`
	AdditionalSkills []string `json:"additional_skills"`
}

// SkillsGap is the term-level gap analysis of a resume against a job.
type SkillsGap struct {
	Gaps    Gaps    `json:"gaps"`
	Matches Matches `json:"matches"`
}

func emptySkillsGap() SkillsGap {
	return SkillsGap{
		Gaps:    Gaps{CriticalMissing: []string{}, NiceToHaveMissing: []string{}},
		Matches: Matches{MatchedSkills: []string{}, AdditionalSkills: []string{}},
	}
}

// SkillsGap classifies every job term as critical or nice to have and
// reports which are missing from the resume. A term is critical when a
// critical indicator appears within 50 characters of its first occurrence
// in jobText, nice to have when a nice-to-have indicator does, and otherwise
// critical only if it occurs more often than the average job term.
func (c *Comparison) SkillsGap(resumeText, jobText string) SkillsGap {
	gap := emptySkillsGap()
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" || len(c.Features) == 0 {
		return gap
	}

	var jobTotal, jobTerms int
	for _, count := range c.Job {
		if count > 0 {
			jobTotal += count
			jobTerms++
		}
	}
	mean := float64(jobTotal) / float64(jobTerms)
	lowerJob := strings.ToLower(jobText)

	for i, term := range c.Features {
		inResume, inJob := c.Resume[i] > 0, c.Job[i] > 0
		switch {
		case inResume && inJob:
			gap.Matches.MatchedSkills = append(gap.Matches.MatchedSkills, term)
		case inResume:
			gap.Matches.AdditionalSkills = append(gap.Matches.AdditionalSkills, term)
		}
		if !inJob || inResume {
			continue
		}

		at := strings.Index(lowerJob, term)
		if at < 0 {
			continue
		}
		context := lowerJob[max(0, at-contextRadius):min(len(lowerJob), at+contextRadius)]
		switch {
		case containsAny(context, criticalIndicators):
			gap.Gaps.CriticalMissing = append(gap.Gaps.CriticalMissing, term)
		case containsAny(context, niceToHaveIndicators):
			gap.Gaps.NiceToHaveMissing = append(gap.Gaps.NiceToHaveMissing, term)
		case float64(c.Job[i]) > mean:
			gap.Gaps.CriticalMissing = append(gap.Gaps.CriticalMissing, term)
		default:
			gap.Gaps.NiceToHaveMissing = append(gap.Gaps.NiceToHaveMissing, term)
		}
	}
	return gap
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// MissingSkills returns the job skills not in resumeSkills, compared
// case-insensitively, in job order.
func MissingSkills(resumeSkills, jobSkills []string) []string {
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[strings.ToLower(s)] = true
	}
	missing := []string{}
	for _, s := range jobSkills {
		if !have[strings.ToLower(s)] {
			missing = append(missing, s)
		}
	}
	return missing
}

// Feedback tier messages keyed by the lowest match percentage they apply to.
const (
	FeedbackExcellent = "Excellent match! Your resume aligns very well with the job requirements."
	FeedbackGood      = "Good match. Some adjustments could improve your alignment with the role."
	FeedbackModerate  = "Moderate match. Consider highlighting more relevant experience and skills."
	FeedbackLow       = "Low match. Your resume might need significant updates to target this role."
)

// KeyTerms mirrors ImportantTerms in feedback output.
type KeyTerms struct {
	Resume []string `json:"resume"`
	Job    []string `json:"job"`
}

// Feedback is the match summary shown to the user.
type Feedback struct {
	MatchPercentage float64  `json:"match_percentage"`
	OverallFeedback string   `json:"overall_feedback"`
	MissingSkills   []string `json:"missing_skills"`
	Suggestions     []string `json:"suggestions"`
	KeyTerms        KeyTerms `json:"key_terms"`
}

// GenerateFeedback turns a similarity score and skill lists into feedback.
// The match percentage is rounded to one decimal.
func GenerateFeedback(similarity float64, resumeSkills, jobSkills []string, terms ImportantTerms) Feedback {
	missing := MissingSkills(resumeSkills, jobSkills)
	pct := similarity * 100

	fb := Feedback{
		MatchPercentage: math.Round(pct*10) / 10,
		MissingSkills:   missing,
		Suggestions:     []string{},
		KeyTerms:        KeyTerms{Resume: nonNil(terms.Resume), Job: nonNil(terms.Job)},
	}

	switch {
	case pct >= 80:
		fb.OverallFeedback = FeedbackExcellent
	case pct >= 60:
		fb.OverallFeedback = FeedbackGood
	case pct >= 40:
		fb.OverallFeedback = FeedbackModerate
	default:
		fb.OverallFeedback = FeedbackLow
	}

	if len(missing) > 0 {
		fb.Suggestions = append(fb.Suggestions, "Add missing skills: "+strings.Join(missing, ", "))
	}
	if pct < 60 {
		jobTerms := terms.Job
		if len(jobTerms) > 5 {
			jobTerms = jobTerms[:5]
		}
		fb.Suggestions = append(fb.Suggestions,
			"Emphasize these key terms from the job description: "+strings.Join(jobTerms, ", "))
	}
	if pct < 80 {
		if shared := sharedSkills(resumeSkills, jobSkills); len(shared) > 0 {
			fb.Suggestions = append(fb.Suggestions,
				"Consider elaborating on your experience with: "+strings.Join(shared, ", "))
		}
	}
	return fb
}

func sharedSkills(resumeSkills, jobSkills []string) []string {
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[s] = true
	}
	var shared []string
	for _, s := range jobSkills {
		if have[s] {
			shared = append(shared, s)
		}
	}
	return shared
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
