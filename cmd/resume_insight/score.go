package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-insight/internal/config"
	"github.com/jonathan/resume-insight/internal/ingestion"
	"github.com/jonathan/resume-insight/internal/llm"
	"github.com/jonathan/resume-insight/internal/logger"
	"github.com/jonathan/resume-insight/internal/scoring"
)

var scoreJobFile string

var scoreCmd = &cobra.Command{
	Use:   "score <resume-file>",
	Short: "Score a resume file from the command line",
	Long:  `Score a plain-text resume file and print the assessment as JSON. Pass --job to score against a job description.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Path to a job description text file")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	resumeText, err := ingestion.ExtractText(data)
	if err != nil {
		return err
	}

	jobDescription := ""
	if scoreJobFile != "" {
		jobData, err := os.ReadFile(scoreJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
		jobDescription = ingestion.CleanText(string(jobData))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gemini, err := llm.NewGeminiClient(ctx, &llm.Config{
		ScoringModel: cfg.ScoringModel,
		ChatModel:    cfg.ChatModel,
	}, cfg.GoogleAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer gemini.Close() //nolint:errcheck

	scorer := scoring.NewScorer(llm.WithTimeout(gemini, cfg.LLMTimeout), log)
	assessment, err := scorer.Score(ctx, resumeText, jobDescription)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(assessment, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
