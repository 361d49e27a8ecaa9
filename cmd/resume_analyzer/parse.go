package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/schemas"
)

var parseCmd = &cobra.Command{
	Use:   "parse <resume-file>",
	Short: "Segment a resume into sections",
	Long:  "Segment a resume into sections with their bullet points, optionally extracting contact details, skills, experience and education.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var (
	parseValidate bool
	parseFields   bool
	parseOutFile  string
)

func init() {
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate the parsed document against the document schema")
	parseCmd.Flags().BoolVar(&parseFields, "fields", false, "Also extract structured fields")
	parseCmd.Flags().StringVarP(&parseOutFile, "out", "o", "", "Write the JSON result to this file")
	rootCmd.AddCommand(parseCmd)
}

type parseOutput struct {
	File     string            `json:"file"`
	Document *parsing.Document `json:"document"`
	Fields   *analysis.Fields  `json:"fields,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	text, err := readDocument(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(ctx, appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.parser.Parse(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	if parseValidate {
		if err := schemas.ValidateDocument(doc); err != nil {
			return fmt.Errorf("parsed document failed schema validation: %w", err)
		}
	}

	out := parseOutput{File: args[0], Document: doc}
	if parseFields {
		fields := a.analyzer.Fields(doc, text)
		out.Fields = &fields
	}

	if parseOutFile != "" {
		if err := writeJSONFile(parseOutFile, out); err != nil {
			return err
		}
	}

	return render(cmd, out, func(p *observability.Printer) {
		p.PrintDocument(doc)
		if out.Fields != nil {
			p.PrintFields(*out.Fields)
		}
	})
}
