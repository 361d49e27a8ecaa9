package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored analyses for a session",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Print one stored analysis as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete analyses older than the retention period",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

var (
	historySession string
	historyLimit   int
	pruneDays      int
)

func init() {
	historyCmd.Flags().StringVar(&historySession, "session", "", "Session ID to list (required)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", db.DefaultHistoryLimit, "Maximum number of analyses to list")
	_ = historyCmd.MarkFlagRequired("session")

	historyPruneCmd.Flags().IntVar(&pruneDays, "days", 0, "Retention in days (default from config)")

	historyCmd.AddCommand(historyShowCmd, historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	database, err := openHistory(ctx, appConfig)
	if err != nil {
		return err
	}
	defer database.Close()

	history, err := database.GetSessionHistory(ctx, historySession, historyLimit)
	if err != nil {
		return err
	}
	if history == nil {
		history = []db.Analysis{}
	}

	return render(cmd, history, func(p *observability.Printer) {
		p.PrintHistory(history)
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid analysis ID %q: %w", args[0], err)
	}

	database, err := openHistory(ctx, appConfig)
	if err != nil {
		return err
	}
	defer database.Close()

	stored, err := database.GetAnalysis(ctx, id)
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("analysis not found: %s", id)
	}
	return writeJSON(cmd.OutOrStdout(), stored)
}

func runHistoryPrune(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	days := pruneDays
	if days <= 0 {
		days = appConfig.Database.RetentionDays
	}
	if days <= 0 {
		return fmt.Errorf("retention must be positive: use --days or database.retention_days")
	}

	database, err := openHistory(ctx, appConfig)
	if err != nil {
		return err
	}
	defer database.Close()

	removed, err := database.CleanupOldAnalyses(ctx, days)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d analyses older than %d days\n", removed, days)
	return nil
}
