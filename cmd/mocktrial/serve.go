package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/cobra"

	"github.com/courtcraft/mocktrial/internal/config"
	"github.com/courtcraft/mocktrial/internal/openai"
	"github.com/courtcraft/mocktrial/internal/server"
	"github.com/courtcraft/mocktrial/internal/transcribe"
	"github.com/courtcraft/mocktrial/internal/trial"
	"github.com/courtcraft/mocktrial/internal/trial/judge"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the trial session HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().String("bind", "", "Listen address (default :3000)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
		cfg.Bind = bind
	}

	client := openai.NewClient(cfg.APIKey)
	orchestrator := judge.NewOrchestrator(client, cfg.Model, cfg.VerdictTimeout())
	transcriber := transcribe.NewService(&recognizer{client: client, model: cfg.TranscribeModel})
	hints := trial.NewHintSource(cfg.HintSeed)

	registry := server.NewRegistry()
	handler := server.New(registry, orchestrator, transcriber, hints, cfg.Language, cfg.DefaultRounds)

	app := fiber.New()
	app.Use(logger.New())
	handler.Register(app)

	// Shut down cleanly on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	fmt.Printf("⚖️ mocktrial API listening on %s\n", cfg.Bind)
	return app.Listen(cfg.Bind)
}

// recognizer binds the configured transcription model onto the OpenAI client
// so it satisfies transcribe.Recognizer.
type recognizer struct {
	client *openai.Client
	model  string
}

func (r *recognizer) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	return r.client.Transcribe(ctx, r.model, audio, language)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")

	apiKey, _ := cmd.Root().PersistentFlags().GetString("api-key")
	if apiKey != "" {
		os.Setenv("OPENAI_API_KEY", apiKey)
	}
	model, _ := cmd.Root().PersistentFlags().GetString("model")
	if model != "" {
		os.Setenv("MOCKTRIAL_MODEL", model)
	}
	return config.Load(path)
}
