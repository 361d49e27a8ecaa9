package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/parsing"
)

var bulletsCmd = &cobra.Command{
	Use:   "bullets <file>",
	Short: "Extract bullet points from a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runBullets,
}

func init() {
	rootCmd.AddCommand(bulletsCmd)
}

type bulletsOutput struct {
	Bullets []string `json:"bullets"`
	Count   int      `json:"count"`
}

func runBullets(cmd *cobra.Command, args []string) error {
	text, err := readDocument(args[0])
	if err != nil {
		return err
	}

	bullets := parsing.ExtractBullets(text)
	return render(cmd, bulletsOutput{Bullets: bullets, Count: len(bullets)}, func(p *observability.Printer) {
		p.PrintBullets(bullets)
	})
}
