package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file> <job-description-file>",
	Short: "Analyze a resume against a job description",
	Long: "Score a resume against a job description and report matching and missing skills, " +
		"feedback, action verb suggestions, format analysis and keyword coverage.",
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

var (
	analyzeSession  string
	analyzeOutFile  string
	analyzeValidate bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSession, "session", "", "Session ID (UUID) to save the analysis under; requires a database")
	analyzeCmd.Flags().StringVarP(&analyzeOutFile, "out", "o", "", "Write the JSON result to this file")
	analyzeCmd.Flags().BoolVar(&analyzeValidate, "validate", false, "Validate the result against the analysis schema")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := checkSession(analyzeSession); err != nil {
		return err
	}

	resumeText, err := readDocument(args[0])
	if err != nil {
		return err
	}
	jobText, err := readDocument(args[1])
	if err != nil {
		return err
	}

	a, err := newApp(ctx, appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.analyzer.Analyze(ctx, analysis.Input{
		Resume:         resumeText,
		Job:            jobText,
		ResumeFilename: filepath.Base(args[0]),
		JobFilename:    filepath.Base(args[1]),
	})
	if err != nil {
		return err
	}

	if analyzeValidate {
		if err := schemas.ValidateAnalysis(result); err != nil {
			return fmt.Errorf("analysis failed schema validation: %w", err)
		}
	}

	if analyzeSession != "" {
		database, err := openHistory(ctx, appConfig)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := saveAnalysis(ctx, database, analyzeSession, result); err != nil {
			return err
		}
	}

	if analyzeOutFile != "" {
		if err := writeJSONFile(analyzeOutFile, result); err != nil {
			return err
		}
	}

	return render(cmd, result, func(p *observability.Printer) {
		p.PrintAnalysis(result)
	})
}

// checkSession rejects session IDs that are set but not UUIDs.
func checkSession(session string) error {
	if session == "" {
		return nil
	}
	if _, err := uuid.Parse(session); err != nil {
		return fmt.Errorf("invalid --session %q: must be a UUID", session)
	}
	return nil
}

// saveAnalysis stores result under session and sets its ID.
func saveAnalysis(ctx context.Context, database *db.DB, session string, result *analysis.Analysis) error {
	id := uuid.New()
	result.ID = id.String()
	if _, err := database.SaveAnalysis(ctx, &db.AnalysisInput{
		ID:              id,
		SessionID:       session,
		ResumeFilename:  result.ResumeFilename,
		JobDescFilename: result.JobFilename,
		SimilarityScore: result.Score,
		Data:            result,
	}); err != nil {
		result.ID = ""
		return err
	}
	return nil
}
