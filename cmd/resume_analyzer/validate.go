package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema> <json-file>",
	Short: "Validate a JSON file against a schema",
	Long: fmt.Sprintf("Validate a JSON file against an embedded schema (%q or %q) or a schema file path.",
		schemas.SchemaDocument, schemas.SchemaAnalysis),
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	err := schemas.ValidateFile(args[0], args[1])
	if err == nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[1])
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		if outputFormat == formatJSON {
			if writeErr := writeJSON(cmd.OutOrStdout(), validationErr.Errors); writeErr != nil {
				return writeErr
			}
		} else {
			for _, fe := range validationErr.Errors {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", fe.Field, fe.Message)
			}
		}
		return fmt.Errorf("%s does not match schema %s", args[1], args[0])
	}
	return err
}
