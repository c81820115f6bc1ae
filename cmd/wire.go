package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	jsonfilerepo "github.com/bnema/weibo-supertopic-cli/internal/adapters/repo/jsonfile"
	tomlrepo "github.com/bnema/weibo-supertopic-cli/internal/adapters/repo/toml"
	"github.com/bnema/weibo-supertopic-cli/internal/adapters/weibo"
	"github.com/bnema/weibo-supertopic-cli/internal/application"
	"github.com/bnema/weibo-supertopic-cli/internal/logging"
	"github.com/bnema/weibo-supertopic-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	coordinator *application.Coordinator
	logger      *slog.Logger
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, ".wst")

	cfg := viper.New()
	cfg.SetDefault("topics.dir", filepath.Join(baseDir, "topics"))
	cfg.SetDefault("results.dir", filepath.Join(baseDir, "results"))
	cfg.SetDefault("logs.dir", filepath.Join(baseDir, "logs"))
	cfg.SetDefault("log.level", "info")
	cfg.SetDefault("api.base_url", weibo.DefaultBaseURL)

	// NewRepository reads the optional config file into cfg, so the
	// defaults above may be overridden there.
	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire account repository: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level: cfg.GetString("log.level"),
		Dir:   cfg.GetString("logs.dir"),
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	sessions := weibo.NewFactory(weibo.Config{
		BaseURL: envOrDefault("WST_BASE_URL", cfg.GetString("api.base_url")),
		Sleeper: ports.RandomSleeper{},
		Clock:   ports.SystemClock{},
		Logger:  logger,
	})

	catalogs := jsonfilerepo.NewCatalogStore(cfg.GetString("topics.dir"), logger)
	results := jsonfilerepo.NewResultStore(cfg.GetString("results.dir"))

	orchestrator := application.NewOrchestrator(sessions, catalogs, results, ports.SystemClock{}, logger)
	coordinator := application.NewCoordinator(repo, orchestrator, ports.RandomSleeper{}, logger)

	return &app{coordinator: coordinator, logger: logger}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
