package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-insight/internal/chat"
	"github.com/jonathan/resume-insight/internal/config"
	"github.com/jonathan/resume-insight/internal/llm"
	"github.com/jonathan/resume-insight/internal/logger"
	"github.com/jonathan/resume-insight/internal/scoring"
	"github.com/jonathan/resume-insight/internal/server"
)

// serveStageDelay paces the progress events of the streaming analysis
// endpoint so clients see a moving bar instead of a burst.
const serveStageDelay = 150 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes resume analysis and chat endpoints.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

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

	client := llm.WithTimeout(gemini, cfg.LLMTimeout)
	scorer := scoring.NewScorer(client, log)
	chatStore := chat.NewStore(client, log, chat.DefaultChunkDelay)

	srv := server.New(server.Config{
		Addr:       cfg.Addr(),
		APIKey:     cfg.APIKey,
		StageDelay: serveStageDelay,
	}, scorer, chatStore, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx)
	})
	return g.Wait()
}
