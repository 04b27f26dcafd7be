package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/completion"
	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/completion/anthropic"
	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/completion/ollama"
	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/completion/openai"
	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/config/file"
	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/extract"
	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/storage/sqlite"
	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/watch"
	"github.com/scholia-labs/scholia-cli/internal/adapters/driving/cli"
	"github.com/scholia-labs/scholia-cli/internal/chat"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
	"github.com/scholia-labs/scholia-cli/internal/core/services"
	"github.com/scholia-labs/scholia-cli/internal/knowledge"
	"github.com/scholia-labs/scholia-cli/internal/logger"
	"github.com/scholia-labs/scholia-cli/internal/understanding"
)

// version is set at build time via ldflags.
var version = "dev"

// pingTimeout bounds the startup reachability check.
const pingTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settings := cfg.Settings()

	store, err := sqlite.NewStore(settings.Storage.Dir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	completionSvc := buildCompletion(settings.Completion)
	if completionSvc != nil {
		defer completionSvc.Close()
	}

	graph := knowledge.NewGraph()
	knowledgeSvc := services.NewKnowledgeService(graph, store)
	if err := knowledgeSvc.Load(context.Background()); err != nil {
		return fmt.Errorf("loading knowledge graph: %w", err)
	}

	pipeline := understanding.New(completionSvc)
	ingestSvc := services.NewIngestService(graph, store, extract.Default(), pipeline)
	chatSvc := chat.New(graph, completionSvc)

	watcher, err := watch.New(settings.Watch.Extensions)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Ingest:     ingestSvc,
		Knowledge:  knowledgeSvc,
		Chat:       chatSvc,
		Watcher:    watcher,
		Completion: completionSvc,
		Config:     cfg,
	})

	return cli.Execute()
}

// buildCompletion assembles the configured completion backend, wrapped
// with rate limiting for hosted APIs. Returns nil when no backend is
// configured or the backend is unreachable; analysis then runs on
// heuristics alone.
func buildCompletion(cs driven.CompletionSettings) driven.CompletionService {
	var svc driven.CompletionService

	// Zero limits fall back to the built-in default inside NewRateLimited.
	limits := completion.RateLimitConfig{
		RequestsPerSecond: cs.RequestsPerSecond,
		BurstSize:         cs.Burst,
	}

	switch cs.Backend {
	case "", "none":
		return nil

	case "ollama":
		svc = ollama.New(ollama.Config{
			BaseURL: cs.BaseURL,
			Model:   cs.Model,
		})

	case "openai":
		inner, err := openai.New(openai.Config{
			APIKey:  os.Getenv("SCHOLIA_OPENAI_API_KEY"),
			BaseURL: cs.BaseURL,
			Model:   cs.Model,
		})
		if err != nil {
			logger.Error("completion disabled: %v", err)
			return nil
		}
		svc = completion.NewRateLimited(inner, limits)

	case "anthropic":
		inner, err := anthropic.New(anthropic.Config{
			APIKey:  os.Getenv("SCHOLIA_ANTHROPIC_API_KEY"),
			BaseURL: cs.BaseURL,
			Model:   cs.Model,
		})
		if err != nil {
			logger.Error("completion disabled: %v", err)
			return nil
		}
		svc = completion.NewRateLimited(inner, limits)

	default:
		logger.Error("unknown completion backend %q, running heuristics-only", cs.Backend)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		logger.Warn("completion backend unreachable, running heuristics-only: %v", err)
		svc.Close()
		return nil
	}

	return svc
}
