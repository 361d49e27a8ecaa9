package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/server"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for parsing and analyzing resumes.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config or PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := appConfig
	if servePort != "" {
		cfg.Server.Port = servePort
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := []server.Option{
		server.WithParser(a.parser),
		server.WithLogger(logger.Logger),
	}

	if cfg.Database.URL == "" {
		logger.Warn().Msg("no database configured, history endpoints are disabled")
	} else {
		database, err := openHistory(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		opts = append(opts, server.WithHistory(database))

		if days := cfg.Database.RetentionDays; days > 0 {
			removed, err := database.CleanupOldAnalyses(ctx, days)
			if err != nil {
				logger.Warn().Err(err).Msg("failed to prune old analyses")
			} else if removed > 0 {
				logger.Info().Int64("removed", removed).Int("retention_days", days).Msg("pruned old analyses")
			}
		}
	}

	rateLimit := ratelimit.NewConfig(cfg.Server.AnalyzePerMinute, cfg.Server.BatchPerMinute)
	rateLimit.ApplyEnv()

	srv := server.New(server.Config{
		Port:             cfg.Server.Port,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		MaxBodyBytes:     cfg.Server.MaxBodyBytes,
		MaxBatchSize:     cfg.Analysis.MaxBatchSize,
		BatchConcurrency: cfg.Analysis.BatchConcurrency,
		RateLimit:        rateLimit,
	}, a.analyzer, opts...)

	return srv.Start()
}
