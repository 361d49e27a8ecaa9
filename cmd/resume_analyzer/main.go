// Package main provides the entry point for the resume analyzer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/logger"
)

// Output formats for --format.
const (
	formatText = "text"
	formatJSON = "json"
)

var (
	configPath   string
	outputFormat string
	logLevel     string

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "resume_analyzer",
	Short: "Resume analysis CLI and HTTP API server",
	Long: "Resume analyzer segments resumes into sections, extracts bullet points and structured fields, " +
		"and scores resumes against job descriptions with actionable suggestions.",
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", formatText, "Output format: text or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides config and LOG_LEVEL)")
}

// loadAppConfig builds the configuration from defaults, the optional config
// file and the environment, then initializes logging.
func loadAppConfig(_ *cobra.Command, _ []string) error {
	if outputFormat != formatText && outputFormat != formatJSON {
		return fmt.Errorf("invalid --format %q: must be text or json", outputFormat)
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.Log)
	appConfig = cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
