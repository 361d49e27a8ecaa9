package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parse-result cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached parse results",
	Long:  "Remove cached parse results. With --max-age only entries older than that are removed.",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cacheMaxAge time.Duration

func init() {
	cacheClearCmd.Flags().DurationVar(&cacheMaxAge, "max-age", 0, "Only remove entries older than this (0 removes all)")
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cache == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cache is disabled")
		return nil
	}

	removed, err := a.cache.Clear(ctx, cacheMaxAge)
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	if outputFormat == formatJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]int{"removed": removed})
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached entries\n", removed)
	return nil
}
