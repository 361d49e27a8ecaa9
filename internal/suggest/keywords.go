package suggest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// industryThreshold is the share of an industry's terms text must mention
// before the industry is reported.
const industryThreshold = 0.1

type termCategory struct {
	name  string
	terms []string
}

type industry struct {
	name       string
	categories []termCategory
}

var industries = []industry{
	{"software", []termCategory{
		{"languages", []string{
			"Python", "Java", "JavaScript", "C++", "C#", "Ruby", "Go",
			"Scala", "PHP", "Swift", "Kotlin", "TypeScript", "SQL",
		}},
		{"frameworks", []string{
			"React", "Angular", "Vue", "Django", "Flask", "Spring",
			"Node.js", "Express", "ASP.NET", "Rails", "Laravel",
		}},
		{"tools", []string{
			"Git", "Docker", "Kubernetes", "Jenkins", "JIRA", "AWS",
			"Azure", "GCP", "Linux", "REST", "GraphQL", "CI/CD",
		}},
		{"concepts", []string{
			"Agile", "Scrum", "TDD", "DevOps", "Microservices",
			"Cloud Computing", "Distributed Systems", "API Design",
		}},
	}},
	{"data_science", []termCategory{
		{"skills", []string{
			"Machine Learning", "Deep Learning", "NLP", "Neural Networks",
			"Statistical Analysis", "Data Mining", "Big Data",
		}},
		{"tools", []string{
			"TensorFlow", "PyTorch", "scikit-learn", "Pandas", "NumPy",
			"R", "Hadoop", "Spark", "Tableau", "Power BI",
		}},
		{"techniques", []string{
			"Regression", "Classification", "Clustering", "Time Series",
			"Feature Engineering", "A/B Testing", "Cross Validation",
		}},
	}},
	{"cloud", []termCategory{
		{"platforms", []string{
			"AWS", "Azure", "GCP", "OpenStack", "VMware",
			"Oracle Cloud", "IBM Cloud",
		}},
		{"services", []string{
			"EC2", "S3", "Lambda", "ECS", "EKS", "RDS", "DynamoDB",
			"Azure Functions", "Cosmos DB", "App Engine",
		}},
		{"concepts", []string{
			"IaaS", "PaaS", "SaaS", "Serverless", "Containers",
			"Microservices", "Auto Scaling", "Load Balancing",
		}},
	}},
	{"cybersecurity", []termCategory{
		{"domains", []string{
			"Network Security", "Application Security", "Cloud Security",
			"Identity Management", "Incident Response", "Forensics",
		}},
		{"tools", []string{
			"Wireshark", "Nmap", "Metasploit", "Burp Suite",
			"SIEM", "IDS/IPS", "Firewall", "Antivirus",
		}},
		{"concepts", []string{
			"Encryption", "Authentication", "Authorization", "Zero Trust",
			"Vulnerability Assessment", "Penetration Testing",
		}},
	}},
}

var buzzwords = []struct {
	term   string
	weight float64
}{
	{"innovative", 0.5},
	{"cutting-edge", 0.5},
	{"scalable", 0.7},
	{"robust", 0.6},
	{"enterprise", 0.8},
	{"mission-critical", 0.7},
	{"state-of-the-art", 0.5},
	{"next-generation", 0.4},
	{"world-class", 0.4},
	{"bleeding-edge", 0.3},
}

// termPatterns matches each industry term as a whole term, so "Go" does not
// match "good" and "Java" does not match "JavaScript".
var termPatterns = buildTermPatterns()

func buildTermPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, ind := range industries {
		for _, cat := range ind.categories {
			for _, term := range cat.terms {
				if _, ok := patterns[term]; ok {
					continue
				}
				patterns[term] = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(term) + `(?:$|[^\p{L}\p{N}+#])`)
			}
		}
	}
	return patterns
}

func mentions(text, term string) bool {
	return termPatterns[term].MatchString(text)
}

// IndustryMatch is an industry and the share of its terms found.
type IndustryMatch struct {
	Industry   string  `json:"industry"`
	Confidence float64 `json:"confidence"`
}

// DetectIndustry scores each industry by the fraction of its terms text
// mentions and returns those above 10%, most confident first.
func DetectIndustry(text string) []IndustryMatch {
	matches := []IndustryMatch{}
	for _, ind := range industries {
		total, found := 0, 0
		for _, cat := range ind.categories {
			for _, term := range cat.terms {
				total++
				if mentions(text, term) {
					found++
				}
			}
		}
		if score := float64(found) / float64(total); score > industryThreshold {
			matches = append(matches, IndustryMatch{Industry: ind.name, Confidence: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Confidence > matches[j].Confidence })
	return matches
}

// KeywordGroup is the terms of one industry category found in a text.
type KeywordGroup struct {
	Industry string   `json:"industry"`
	Category string   `json:"category"`
	Terms    []string `json:"terms"`
}

// Key is the group's "industry_category" name.
func (g KeywordGroup) Key() string {
	return g.Industry + "_" + g.Category
}

// ExtractKeywords returns the industry terms text mentions, grouped by
// industry category in table order. With no industries every industry is
// searched.
func ExtractKeywords(text string, only []string) []KeywordGroup {
	groups := []KeywordGroup{}
	for _, ind := range industries {
		if len(only) > 0 && !contains(only, ind.name) {
			continue
		}
		for _, cat := range ind.categories {
			var terms []string
			for _, term := range cat.terms {
				if mentions(text, term) {
					terms = append(terms, term)
				}
			}
			if len(terms) > 0 {
				groups = append(groups, KeywordGroup{Industry: ind.name, Category: cat.name, Terms: terms})
			}
		}
	}
	return groups
}

// CategoryMatch compares one job keyword group with the resume.
type CategoryMatch struct {
	Industry   string   `json:"industry"`
	Category   string   `json:"category"`
	Matching   []string `json:"matching"`
	Missing    []string `json:"missing"`
	Additional []string `json:"additional"`
	Score      float64  `json:"score"`
}

// Buzzword is an industry buzzword the job uses.
type Buzzword struct {
	Term     string  `json:"term"`
	Weight   float64 `json:"weight"`
	InResume bool    `json:"in_resume"`
}

// KeywordAnalysis is the industry keyword comparison of a resume and job.
type KeywordAnalysis struct {
	Industries   []string        `json:"industries"`
	Categories   []CategoryMatch `json:"categories"`
	OverallMatch float64         `json:"overall_match"`
	Buzzwords    []Buzzword      `json:"buzzwords"`
}

// AnalyzeMatch compares industry keywords for the industries detected in
// the job. Every job category is scored by the share of its terms the
// resume also mentions, including categories the resume lacks entirely.
// The overall match is the mean category score.
func AnalyzeMatch(resumeText, jobText string) KeywordAnalysis {
	analysis := KeywordAnalysis{
		Industries: []string{},
		Categories: []CategoryMatch{},
		Buzzwords:  []Buzzword{},
	}
	for _, m := range DetectIndustry(jobText) {
		analysis.Industries = append(analysis.Industries, m.Industry)
	}

	resumeGroups := make(map[string][]string)
	for _, g := range ExtractKeywords(resumeText, analysis.Industries) {
		resumeGroups[g.Key()] = g.Terms
	}

	var total float64
	if len(analysis.Industries) > 0 {
		for _, g := range ExtractKeywords(jobText, analysis.Industries) {
			resumeTerms := resumeGroups[g.Key()]
			cm := CategoryMatch{
				Industry:   g.Industry,
				Category:   g.Category,
				Matching:   []string{},
				Missing:    []string{},
				Additional: []string{},
			}
			for _, term := range g.Terms {
				if contains(resumeTerms, term) {
					cm.Matching = append(cm.Matching, term)
				} else {
					cm.Missing = append(cm.Missing, term)
				}
			}
			for _, term := range resumeTerms {
				if !contains(g.Terms, term) {
					cm.Additional = append(cm.Additional, term)
				}
			}
			cm.Score = float64(len(cm.Matching)) / float64(len(g.Terms))
			total += cm.Score
			analysis.Categories = append(analysis.Categories, cm)
		}
	}
	if len(analysis.Categories) > 0 {
		analysis.OverallMatch = total / float64(len(analysis.Categories))
	}

	lowerJob, lowerResume := strings.ToLower(jobText), strings.ToLower(resumeText)
	for _, b := range buzzwords {
		if strings.Contains(lowerJob, b.term) {
			analysis.Buzzwords = append(analysis.Buzzwords, Buzzword{
				Term:     b.term,
				Weight:   b.weight,
				InResume: strings.Contains(lowerResume, b.term),
			})
		}
	}
	return analysis
}

const (
	listedMissingTerms   = 3
	importantBuzzword    = 0.7
	optionalBuzzword     = 0.5
	lowCategoryScore     = 0.5
	lowOverallMatchScore = 0.3
)

// SuggestImprovements turns a keyword analysis into advice: missing terms
// per category, unused buzzwords, weak categories and a warning when the
// overall match is low.
func SuggestImprovements(analysis KeywordAnalysis) []string {
	suggestions := []string{}

	for _, cm := range analysis.Categories {
		if len(cm.Missing) == 0 {
			continue
		}
		terms := strings.Join(cm.Missing, ", ")
		if len(cm.Missing) > listedMissingTerms {
			terms = strings.Join(cm.Missing[:listedMissingTerms], ", ") + ", and others"
		}
		suggestions = append(suggestions, fmt.Sprintf(
			"Consider adding these %s %s keywords if you have experience with them: %s",
			industryLabel(cm.Industry), cm.Category, terms))
	}

	var important, optional []string
	for _, b := range analysis.Buzzwords {
		if b.InResume {
			continue
		}
		switch {
		case b.Weight >= importantBuzzword:
			important = append(important, b.Term)
		case b.Weight >= optionalBuzzword:
			optional = append(optional, b.Term)
		}
	}
	if len(important) > 0 {
		suggestions = append(suggestions,
			"Important: Your resume would be stronger with these key industry terms: "+strings.Join(important, ", "))
	}
	if len(optional) > 0 {
		suggestions = append(suggestions,
			"Optional: Consider these additional industry terms where relevant: "+strings.Join(optional, ", "))
	}

	for _, cm := range analysis.Categories {
		if cm.Score < lowCategoryScore {
			suggestions = append(suggestions, fmt.Sprintf(
				"Your %s %s keyword match needs improvement. Try to highlight more relevant experience in this area.",
				industryLabel(cm.Industry), cm.Category))
		}
	}

	if analysis.OverallMatch < lowOverallMatchScore {
		suggestions = append(suggestions,
			"Warning: Your resume's keyword match with this job is quite low. "+
				"Consider tailoring it more specifically to the role's requirements.")
	}
	return suggestions
}

func industryLabel(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
