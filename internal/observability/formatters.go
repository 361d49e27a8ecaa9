// Package observability provides formatted text output for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/batch"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted text output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		pad := boxWidth - 4 - len([]rune(line))
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", pad))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items as bullets with an overflow note.
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintDocument outputs each section of a parsed document with its bullets.
func (p *Printer) PrintDocument(doc *parsing.Document) {
	if doc.Empty() {
		p.printBox("PARSED RESUME", "No sections found")
		return
	}

	var sb strings.Builder
	for _, name := range doc.Names() {
		section := doc.Section(name)
		sb.WriteString(fmt.Sprintf("%s (%d lines, %d bullets)\n",
			strings.ToUpper(string(name)), len(strings.Split(section.Text, "\n")), len(section.BulletPoints)))
		writeList(&sb, section.BulletPoints, maxItemsToShow)
		sb.WriteString("\n")
	}
	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintFields outputs the contact details, skills, jobs and degrees
// extracted from a resume.
func (p *Printer) PrintFields(f analysis.Fields) {
	var sb strings.Builder
	c := f.Contact
	for _, kv := range [][2]string{
		{"Name", c.Name}, {"Email", c.Email}, {"Phone", c.Phone},
		{"Location", c.Location}, {"LinkedIn", c.LinkedIn}, {"GitHub", c.GitHub},
	} {
		if kv[1] != "" {
			sb.WriteString(fmt.Sprintf("%-9s %s\n", kv[0]+":", kv[1]))
		}
	}

	if len(f.Skills) > 0 {
		names := make([]string, 0, len(f.Skills))
		for name := range f.Skills {
			names = append(names, name)
		}
		sort.Strings(names)
		sb.WriteString(fmt.Sprintf("\nSkills (%d):\n", len(names)))
		writeList(&sb, names, maxItemsToShow*2)
	}

	if len(f.Jobs) > 0 {
		sb.WriteString("\nExperience:\n")
		for _, j := range f.Jobs {
			sb.WriteString(fmt.Sprintf("  • %s", j.Title))
			if j.Company != "" {
				sb.WriteString(" at " + j.Company)
			}
			if j.Duration != "" {
				sb.WriteString(" (" + j.Duration + ")")
			}
			sb.WriteString("\n")
		}
	}

	if len(f.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		for _, d := range f.Education {
			line := strings.TrimSpace(d.Degree + " " + d.Major)
			if d.School != "" {
				line += ", " + d.School
			}
			sb.WriteString("  • " + line + "\n")
		}
	}

	content := strings.Trim(sb.String(), "\n")
	if content == "" {
		content = "No fields found"
	}
	p.printBox("EXTRACTED FIELDS", content)
}

// PrintBullets outputs extracted bullet points in order.
func (p *Printer) PrintBullets(bullets []string) {
	if len(bullets) == 0 {
		p.printBox("BULLET POINTS", "No bullet points found")
		return
	}
	var sb strings.Builder
	for i, b := range bullets {
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, b))
	}
	p.printBox(fmt.Sprintf("BULLET POINTS (%d)", len(bullets)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobProfile outputs a human-readable summary of the derived job profile.
func (p *Printer) PrintJobProfile(profile *types.JobProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	if profile.Industry != "" {
		sb.WriteString(fmt.Sprintf("Industry: %s\n", profile.Industry))
	}
	sb.WriteString(fmt.Sprintf("Level:    %s\n", profile.Level))
	if profile.YearsRequired > 0 {
		sb.WriteString(fmt.Sprintf("Years:    %.0f+\n", profile.YearsRequired))
	}
	if edu := profile.EducationRequirements; edu != nil {
		req := "preferred"
		if edu.IsRequired {
			req = "required"
		}
		sb.WriteString(fmt.Sprintf("Degree:   %s (%s)\n", edu.MinDegree, req))
	}
	sb.WriteString("\n")

	if len(profile.HardRequirements) > 0 {
		sb.WriteString("Hard Requirements:\n")
		names := make([]string, len(profile.HardRequirements))
		for i, r := range profile.HardRequirements {
			names[i] = r.Skill
		}
		writeList(&sb, names, maxItemsToShow)
		sb.WriteString("\n")
	}

	if len(profile.NiceToHaves) > 0 {
		sb.WriteString("Nice-to-haves:\n")
		names := make([]string, len(profile.NiceToHaves))
		for i, r := range profile.NiceToHaves {
			names[i] = r.Skill
		}
		writeList(&sb, names, 3)
	}

	p.printBox("JOB PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the match score, skills, feedback and the most
// useful advice from an analysis.
func (p *Printer) PrintAnalysis(a *analysis.Analysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match:    %.1f%%\n", a.Similarity))
	sb.WriteString(fmt.Sprintf("Verdict:  %s\n", a.Feedback.Overall))
	if a.FormatAnalysis != nil {
		sb.WriteString(fmt.Sprintf("Format:   %d/100\n", a.FormatAnalysis.FormatScore))
	}
	if a.SkillCoverage != nil {
		sb.WriteString(fmt.Sprintf("Coverage: %.0f%%\n", a.SkillCoverage.Score*100))
	}
	sb.WriteString("\n")

	if len(a.MatchingSkills) > 0 {
		sb.WriteString("Matching skills:\n")
		writeList(&sb, a.MatchingSkills, maxItemsToShow)
	}
	if len(a.MissingSkills) > 0 {
		sb.WriteString("Missing skills:\n")
		writeList(&sb, a.MissingSkills, maxItemsToShow)
	}
	if len(a.Feedback.Suggestions) > 0 {
		sb.WriteString("Suggestions:\n")
		writeList(&sb, a.Feedback.Suggestions, maxItemsToShow)
	}
	if a.TemplateRecommendation != nil {
		sb.WriteString(fmt.Sprintf("Template: %s\n", a.TemplateRecommendation.Recommended.Name))
	}
	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))

	if len(a.VerbEnhancements) > 0 {
		p.printVerbs(a)
	}
	p.printWarnings(a.Warnings)
}

func (p *Printer) printVerbs(a *analysis.Analysis) {
	var sb strings.Builder
	if stats := a.VerbSummary.Stats; stats != nil {
		sb.WriteString(fmt.Sprintf("Status: %s (%.0f%% strong)\n", a.VerbSummary.Status, stats.StrongVerbRatio*100))
	}
	shown := 0
	for _, e := range a.VerbEnhancements {
		if len(e.Examples) == 0 || shown == maxItemsToShow {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s → %s\n", e.Verb, strings.Join(e.Suggestions, ", ")))
		shown++
	}
	p.printBox("ACTION VERBS", strings.TrimSuffix(sb.String(), "\n"))
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(p.out, "⚠️  %s\n", w)
	}
}

// PrintBatch outputs one line per resume and the batch summary.
func (p *Printer) PrintBatch(report *batch.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	for i, r := range report.Results {
		if r.Success {
			sb.WriteString(fmt.Sprintf("%2d. %-30s %6.1f%%\n", i+1, truncate(r.Filename, 30), r.Analysis.Similarity))
			continue
		}
		sb.WriteString(fmt.Sprintf("%2d. %-30s FAILED: %s\n", i+1, truncate(r.Filename, 30), r.Error))
	}
	sb.WriteString("\n")

	s := report.Summary
	sb.WriteString(fmt.Sprintf("Processed: %d (%d ok, %d failed)\n", s.TotalResumes, s.Successful, s.Failed))
	sb.WriteString(fmt.Sprintf("Scores:    avg %.2f  max %.2f  min %.2f\n", s.AverageScore, s.MaxScore, s.MinScore))
	if s.BestCandidate != nil {
		sb.WriteString(fmt.Sprintf("Best:      %s\n", *s.BestCandidate))
	}
	p.printBox("BATCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory outputs stored analyses, newest first.
func (p *Printer) PrintHistory(history []db.Analysis) {
	if len(history) == 0 {
		p.printBox("ANALYSIS HISTORY", "No analyses found")
		return
	}
	var sb strings.Builder
	for _, h := range history {
		sb.WriteString(fmt.Sprintf("%s  %5.1f%%  %s\n",
			h.CreatedAt.Format("2006-01-02 15:04"), h.SimilarityScore*100, h.ResumeFilename))
		sb.WriteString(fmt.Sprintf("  id %s\n", h.ID))
	}
	p.printBox("ANALYSIS HISTORY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTips outputs numbered ATS tips.
func (p *Printer) PrintTips(tips []string) {
	var sb strings.Builder
	for i, tip := range tips {
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, tip))
	}
	p.printBox("ATS TIPS", strings.TrimSuffix(sb.String(), "\n"))
}
