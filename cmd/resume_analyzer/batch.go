package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/batch"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <job-description-file> <resume-file>...",
	Short: "Analyze several resumes against one job description",
	Long:  "Analyze resumes concurrently against one job description and summarize the scores, naming the best candidate.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runBatch,
}

var (
	batchConcurrency int
	batchSession     string
)

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Resumes analyzed at once (default from config)")
	batchCmd.Flags().StringVar(&batchSession, "session", "", "Session ID (UUID) to save successful analyses under; requires a database")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := checkSession(batchSession); err != nil {
		return err
	}

	resumePaths := args[1:]
	if limit := appConfig.Analysis.MaxBatchSize; len(resumePaths) > limit {
		return fmt.Errorf("too many resumes: %d given, at most %d per batch", len(resumePaths), limit)
	}

	jobText, err := readDocument(args[0])
	if err != nil {
		return err
	}

	resumes := make([]types.BatchResume, 0, len(resumePaths))
	for _, path := range resumePaths {
		text, err := readDocument(path)
		if err != nil {
			return err
		}
		resumes = append(resumes, types.BatchResume{Name: filepath.Base(path), Text: text})
	}

	a, err := newApp(ctx, appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = appConfig.Analysis.BatchConcurrency
	}

	report, err := batch.NewProcessor(a.analyzer, concurrency, logger.Logger).Process(ctx, jobText, resumes)
	if err != nil {
		return err
	}

	if batchSession != "" {
		database, err := openHistory(ctx, appConfig)
		if err != nil {
			return err
		}
		defer database.Close()
		for _, r := range report.Results {
			if !r.Success {
				continue
			}
			if err := saveAnalysis(ctx, database, batchSession, r.Analysis); err != nil {
				return err
			}
		}
	}

	return render(cmd, report, func(p *observability.Printer) {
		p.PrintBatch(report)
	})
}
