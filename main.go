package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jmt-genius/synapcity-hub/internal/ai"
	"github.com/jmt-genius/synapcity-hub/internal/aisearch"
	"github.com/jmt-genius/synapcity-hub/internal/api"
	"github.com/jmt-genius/synapcity-hub/internal/cache"
	"github.com/jmt-genius/synapcity-hub/internal/config"
	"github.com/jmt-genius/synapcity-hub/internal/fetcher"
	"github.com/jmt-genius/synapcity-hub/internal/logger"
	"github.com/jmt-genius/synapcity-hub/internal/metrics"
	"github.com/jmt-genius/synapcity-hub/internal/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting synapcity-hub",
		logger.String("name", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	return runServer(cfg, log)
}

// loadConfig loads configuration from config file.
func loadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	return config.Load(configPath)
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, err
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// runServer wires the enrichment pipeline and runs the HTTP server with
// graceful shutdown.
func runServer(cfg *config.Config, log logger.Logger) int {
	ctx := context.Background()

	gemini, err := ai.NewGeminiClient(ctx, cfg.Gemini, log)
	if err != nil {
		log.Error("Failed to create Gemini client", logger.Error(err))
		return 1
	}
	claude := ai.NewClaudeClient(cfg.Anthropic, log)
	contentFetcher := fetcher.NewFetcher(cfg.Fetch, log)

	var linkCache service.LinkCache
	if cfg.Cache.Enabled {
		redisCache, cacheErr := cache.New(cfg.Cache, log)
		if cacheErr != nil {
			log.Error("Failed to connect to Redis", logger.Error(cacheErr))
			return 1
		}
		defer func() { _ = redisCache.Close() }()
		linkCache = redisCache
		log.Info("Enrichment cache enabled",
			logger.String("address", cfg.Cache.Address),
			logger.Duration("ttl", cfg.Cache.TTL),
		)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	enricher := service.NewEnricher(contentFetcher, gemini, claude, linkCache, m, log)
	searcher := aisearch.NewSearcher(gemini, cfg.Search.BatchSize, m, log)
	log.Info("Enrichment pipeline initialized",
		logger.String("gemini_model", cfg.Gemini.Model),
		logger.String("claude_model", cfg.Anthropic.Model),
		logger.Int("search_batch_size", cfg.Search.BatchSize),
	)

	handler := api.NewHandler(enricher, searcher, m, log)
	server := api.NewServer(cfg, handler, m, log)

	if runErr := server.RunWithGracefulShutdown(ctx); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return 1
	}

	log.Info("Service exited cleanly")
	return 0
}
