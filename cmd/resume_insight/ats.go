package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-insight/internal/ats"
	"github.com/jonathan/resume-insight/internal/ingestion"
)

var atsCmd = &cobra.Command{
	Use:   "ats <resume-file>",
	Short: "Run the deterministic ATS analysis only",
	Long:  `Run the offline ATS compatibility check on a plain-text resume file. No API key needed; the result is fully deterministic.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runATS,
}

func init() {
	rootCmd.AddCommand(atsCmd)
}

func runATS(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	resumeText, err := ingestion.ExtractText(data)
	if err != nil {
		return err
	}

	report := ats.Analyze(resumeText)
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
