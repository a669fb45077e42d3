// Package main provides the entry point for the Resume Insight API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_insight",
	Short: "Resume Insight scoring service",
	Long:  "Resume Insight scores resumes with a deterministic ATS rule engine plus AI-generated qualitative feedback, and answers follow-up questions about the results.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
