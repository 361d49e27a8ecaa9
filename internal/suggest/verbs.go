// Package suggest produces rule-based resume improvement advice: stronger
// action verbs, industry keyword coverage, per-section checks and ATS
// formatting guidance.
package suggest

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/nlp"
)

// Strength grades an action verb.
type Strength string

const (
	StrengthStrong  Strength = "strong"
	StrengthWeak    Strength = "weak"
	StrengthUnknown Strength = "unknown"
)

// Enhancement summary statuses.
const (
	StatusGood             = "good"
	StatusNeedsImprovement = "needs_improvement"
	StatusNoBullets        = "No bullet points found"
)

// strongRatioThreshold is the share of strong verbs rated "good".
const strongRatioThreshold = 0.7

type verbCategory struct {
	name   string
	strong []string
	weak   []string
}

var verbCategories = []verbCategory{
	{
		name: "leadership",
		strong: []string{
			"led", "spearheaded", "directed", "orchestrated", "championed",
			"mentored", "managed", "guided", "initiated", "established",
		},
		weak: []string{
			"helped", "assisted", "participated", "supported", "worked on",
			"was responsible for", "handled", "dealt with",
		},
	},
	{
		name: "achievement",
		strong: []string{
			"achieved", "delivered", "exceeded", "outperformed", "generated",
			"increased", "improved", "reduced", "accelerated", "maximized",
		},
		weak: []string{
			"completed", "finished", "did", "made", "met goals",
			"worked toward", "tried to", "attempted",
		},
	},
	{
		name: "technical",
		strong: []string{
			"engineered", "architected", "designed", "developed", "implemented",
			"optimized", "refactored", "streamlined", "integrated", "automated",
		},
		weak: []string{
			"coded", "programmed", "wrote", "typed", "entered",
			"used", "utilized", "employed",
		},
	},
	{
		name: "communication",
		strong: []string{
			"presented", "negotiated", "influenced", "persuaded", "mediated",
			"collaborated", "partnered", "facilitated", "trained", "educated",
		},
		weak: []string{
			"talked", "spoke", "told", "said", "attended",
			"met with", "participated in", "was involved in",
		},
	},
	{
		name: "analytical",
		strong: []string{
			"analyzed", "assessed", "evaluated", "researched", "investigated",
			"identified", "formulated", "calculated", "measured", "forecasted",
		},
		weak: []string{
			"looked at", "reviewed", "thought about", "considered",
			"checked", "watched", "observed", "noticed",
		},
	},
}

// suggestionsPerVerb is how many strong verbs are offered for a weak one.
const suggestionsPerVerb = 3

var (
	glyphBulletRe    = regexp.MustCompile(`^\s*[•‣⁃·⸡\-*○▪◦→]\s+(.*)$`)
	numberedBulletRe = regexp.MustCompile(`^\s*\d+[.)]\s+(.*)$`)
	letterBulletRe   = regexp.MustCompile(`^\s*[a-zA-Z]\)\s+(.*)$`)
	anyGlyphRe       = regexp.MustCompile(`^\s*[^A-Za-z0-9\s]\s+(.*)$`)
)

// IdentifyBullets returns the distinct bullet texts in text. It accepts more
// marker shapes than the parser's extractor, including any lone symbol
// followed by a space, and it does not merge continuation lines.
func IdentifyBullets(text string) []string {
	bullets := []string{}
	seen := make(map[string]bool)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRightFunc(raw, unicode.IsSpace)
		if strings.TrimSpace(line) == "" {
			continue
		}

		var candidate string
		switch {
		case glyphBulletRe.MatchString(line):
			candidate = glyphBulletRe.FindStringSubmatch(line)[1]
		case numberedBulletRe.MatchString(line):
			candidate = numberedBulletRe.FindStringSubmatch(line)[1]
		case letterBulletRe.MatchString(line):
			candidate = letterBulletRe.FindStringSubmatch(line)[1]
		default:
			stripped := strings.TrimSpace(line)
			if strings.HasPrefix(stripped, "-") || strings.HasPrefix(stripped, "*") {
				candidate = strings.TrimLeft(stripped, "-*")
			} else if m := anyGlyphRe.FindStringSubmatch(line); m != nil {
				candidate = m[1]
			} else {
				continue
			}
		}

		candidate = strings.TrimSpace(candidate)
		if candidate != "" && !seen[candidate] {
			seen[candidate] = true
			bullets = append(bullets, candidate)
		}
	}
	return bullets
}

// VerbSpan is a verb found in a bullet and its byte offsets.
type VerbSpan struct {
	Text  string
	Start int
	End   int
}

// VerbCategory is one category a verb belongs to.
type VerbCategory struct {
	Category string
	Strength Strength
}

// VerbEnhancer grades the leading verb of bullets and proposes stronger
// ones. The NLP provider is optional.
type VerbEnhancer struct {
	provider     nlp.Provider
	improvements map[string][]string
	weakPhrases  []string
	knownVerbs   map[string]bool
}

// NewVerbEnhancer builds the weak-to-strong tables. provider may be nil.
func NewVerbEnhancer(provider nlp.Provider) *VerbEnhancer {
	e := &VerbEnhancer{
		provider:     provider,
		improvements: make(map[string][]string),
		knownVerbs:   make(map[string]bool),
	}
	for _, c := range verbCategories {
		for _, weak := range c.weak {
			e.improvements[weak] = c.strong[:suggestionsPerVerb]
			if strings.Contains(weak, " ") {
				e.weakPhrases = append(e.weakPhrases, weak)
			} else {
				e.knownVerbs[weak] = true
			}
		}
		for _, strong := range c.strong {
			e.knownVerbs[strong] = true
		}
	}
	return e
}

// LeadingVerb finds the verb a bullet leads with. Multi-word weak phrases
// such as "worked on" win wherever they appear. Otherwise the first token
// tagged as a verb by the provider is used, and without one the first word
// counts when it is a known action verb or looks like a past-tense verb.
func (e *VerbEnhancer) LeadingVerb(text string) (VerbSpan, bool) {
	lower := strings.ToLower(text)
	for _, phrase := range e.weakPhrases {
		if at := strings.Index(lower, phrase); at >= 0 {
			end := at + len(phrase)
			return VerbSpan{Text: text[at:end], Start: at, End: end}, true
		}
	}

	if e.provider != nil {
		if tokens, err := e.provider.Tokens(text); err == nil {
			cursor := 0
			for _, tok := range tokens {
				at := strings.Index(text[cursor:], tok.Text)
				if at < 0 {
					continue
				}
				start := cursor + at
				cursor = start + len(tok.Text)
				if strings.HasPrefix(tok.Tag, "VB") {
					return VerbSpan{Text: tok.Text, Start: start, End: cursor}, true
				}
			}
		}
	}

	return e.firstWordVerb(text)
}

func (e *VerbEnhancer) firstWordVerb(text string) (VerbSpan, bool) {
	start := strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) })
	if start < 0 {
		return VerbSpan{}, false
	}
	word := text[start:]
	if end := strings.IndexFunc(word, unicode.IsSpace); end >= 0 {
		word = word[:end]
	}
	word = strings.TrimRight(word, ".,!?;:")
	lower := strings.ToLower(word)
	if e.knownVerbs[lower] || (strings.HasSuffix(lower, "ed") && len(lower) > 3) {
		return VerbSpan{Text: word, Start: start, End: start + len(word)}, true
	}
	return VerbSpan{}, false
}

// Categorize lists the categories a verb belongs to. Exact table hits are
// checked first; otherwise a verb contained in, or containing, a table entry
// matches that category.
func Categorize(verb string) []VerbCategory {
	if verb == "" {
		return nil
	}
	lower := strings.ToLower(verb)
	var out []VerbCategory
	for _, c := range verbCategories {
		switch {
		case contains(c.strong, lower):
			out = append(out, VerbCategory{c.name, StrengthStrong})
		case contains(c.weak, lower):
			out = append(out, VerbCategory{c.name, StrengthWeak})
		default:
			if overlapsAny(c.strong, lower) {
				out = append(out, VerbCategory{c.name, StrengthStrong})
			}
			if overlapsAny(c.weak, lower) {
				out = append(out, VerbCategory{c.name, StrengthWeak})
			}
		}
	}
	return out
}

// Suggest returns stronger alternatives for a weak verb. Unknown verbs get
// the alternatives of every weak verb they overlap with.
func (e *VerbEnhancer) Suggest(verb string) []string {
	lower := strings.ToLower(verb)
	if s, ok := e.improvements[lower]; ok {
		return s
	}
	var out []string
	seen := make(map[string]bool)
	for _, c := range verbCategories {
		for _, weak := range c.weak {
			if !strings.Contains(weak, lower) && !strings.Contains(lower, weak) {
				continue
			}
			for _, s := range e.improvements[weak] {
				if !seen[s] {
					seen[s] = true
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// Enhancement is the verb analysis of one bullet.
type Enhancement struct {
	Original     string   `json:"original"`
	HasVerb      bool     `json:"has_verb"`
	Verb         string   `json:"verb,omitempty"`
	VerbPosition []int    `json:"verb_position,omitempty"`
	Strength     Strength `json:"strength,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
	Examples     []string `json:"examples,omitempty"`
	Suggestion   string   `json:"suggestion,omitempty"`
}

// examplesPerBullet is how many rewritten bullets are shown.
const examplesPerBullet = 2

// Enhance grades a bullet's leading verb. Weak verbs get suggestions and
// example rewrites with the verb replaced.
func (e *VerbEnhancer) Enhance(bullet string) Enhancement {
	span, ok := e.LeadingVerb(bullet)
	if !ok {
		return Enhancement{
			Original:   bullet,
			Suggestion: "Start with a strong action verb",
		}
	}

	result := Enhancement{
		Original: bullet,
		HasVerb:  true,
		Verb:     span.Text,
	}

	categories := Categorize(span.Text)
	if len(categories) == 0 {
		result.Strength = StrengthUnknown
		result.Categories = []string{}
		result.Suggestions = e.Suggest(span.Text)
		return result
	}

	result.VerbPosition = []int{span.Start, span.End}
	result.Strength = StrengthStrong
	for _, c := range categories {
		result.Categories = append(result.Categories, c.Category)
		if c.Strength == StrengthWeak {
			result.Strength = StrengthWeak
		}
	}
	if result.Strength != StrengthWeak {
		return result
	}

	result.Suggestions = e.Suggest(span.Text)
	for i, s := range result.Suggestions {
		if i == examplesPerBullet {
			break
		}
		result.Examples = append(result.Examples, bullet[:span.Start]+matchCase(s, span.Text)+bullet[span.End:])
	}
	return result
}

// EnhanceAll enhances every bullet IdentifyBullets finds in text.
func (e *VerbEnhancer) EnhanceAll(text string) []Enhancement {
	bullets := IdentifyBullets(text)
	out := make([]Enhancement, 0, len(bullets))
	for _, b := range bullets {
		out = append(out, e.Enhance(b))
	}
	return out
}

// VerbUsage counts bullets by verb strength.
type VerbUsage struct {
	Missing int `json:"missing"`
	Weak    int `json:"weak"`
	Strong  int `json:"strong"`
	Unknown int `json:"unknown"`
}

// EnhancementStats summarizes a set of enhancements.
type EnhancementStats struct {
	TotalPoints     int       `json:"total_points"`
	VerbUsage       VerbUsage `json:"verb_usage"`
	StrongVerbRatio float64   `json:"strong_verb_ratio"`
}

// EnhancementSummary is the overall verb advice for a resume.
type EnhancementSummary struct {
	Stats       *EnhancementStats `json:"stats,omitempty"`
	Status      string            `json:"status"`
	Suggestions []string          `json:"suggestions"`
}

// Summarize counts verb strengths and rates the resume "good" when at least
// 70% of bullets lead with a strong verb.
func Summarize(enhancements []Enhancement) EnhancementSummary {
	if len(enhancements) == 0 {
		return EnhancementSummary{
			Status:      StatusNoBullets,
			Suggestions: []string{"Add bullet points to describe your experience"},
		}
	}

	var usage VerbUsage
	for _, e := range enhancements {
		switch {
		case !e.HasVerb:
			usage.Missing++
		case e.Strength == StrengthWeak:
			usage.Weak++
		case e.Strength == StrengthStrong:
			usage.Strong++
		case e.Strength == StrengthUnknown:
			usage.Unknown++
		}
	}

	suggestions := []string{}
	if usage.Missing > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Add action verbs to %d bullet point(s)", usage.Missing))
	}
	if usage.Weak > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Replace weak verbs in %d bullet point(s) with stronger alternatives", usage.Weak))
	}
	if usage.Unknown > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Consider using recognized action verbs in %d bullet point(s)", usage.Unknown))
	}

	ratio := float64(usage.Strong) / float64(len(enhancements))
	status := StatusNeedsImprovement
	if ratio >= strongRatioThreshold {
		status = StatusGood
	}
	return EnhancementSummary{
		Stats: &EnhancementStats{
			TotalPoints:     len(enhancements),
			VerbUsage:       usage,
			StrongVerbRatio: ratio,
		},
		Status:      status,
		Suggestions: suggestions,
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func overlapsAny(list []string, s string) bool {
	for _, item := range list {
		if strings.Contains(item, s) || strings.Contains(s, item) {
			return true
		}
	}
	return false
}

// matchCase capitalizes replacement when original starts with an upper-case
// letter.
func matchCase(replacement, original string) string {
	r, _ := utf8.DecodeRuneInString(original)
	if !unicode.IsUpper(r) {
		return replacement
	}
	first, size := utf8.DecodeRuneInString(replacement)
	return string(unicode.ToUpper(first)) + replacement[size:]
}
