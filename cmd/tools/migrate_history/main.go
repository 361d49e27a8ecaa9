// Command migrate_history brings an analysis history database up to date.
// It creates the analyses table and indexes when missing, copies each stored
// analysis score into the similarity_score column where they disagree, and
// with -days prunes analyses older than that.
//
// Usage:
//
//	go run ./cmd/tools/migrate_history [-days 30]
//
// Requires DATABASE_URL environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jonathan/resume-analyzer/internal/db"
)

func main() {
	days := flag.Int("days", 0, "Also delete analyses older than this many days (0 keeps everything)")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	if err := run(context.Background(), dsn, *days); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dsn string, days int) error {
	database, err := db.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer database.Close()

	fmt.Println("=== History Migration ===")

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	fmt.Println("  ✓ Schema up to date")

	synced, err := database.SyncScores(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("  ✓ Scores synced: %d\n", synced)

	if days > 0 {
		removed, err := database.CleanupOldAnalyses(ctx, days)
		if err != nil {
			return err
		}
		fmt.Printf("  ✓ Pruned %d analyses older than %d days\n", removed, days)
	}

	fmt.Println("=== Migration Complete ===")
	return nil
}
