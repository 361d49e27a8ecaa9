package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/suggest"
)

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Print tips for applicant tracking system friendly resumes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tips := suggest.ATSTips()
		return render(cmd, map[string][]string{"tips": tips}, func(p *observability.Printer) {
			p.PrintTips(tips)
		})
	},
}

func init() {
	rootCmd.AddCommand(tipsCmd)
}
