package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/b3-extractor/internal/catalog"
	"github.com/rxtech-lab/b3-extractor/internal/config"
	"github.com/rxtech-lab/b3-extractor/internal/logger"
	"github.com/rxtech-lab/b3-extractor/internal/pipeline"
	"github.com/rxtech-lab/b3-extractor/pkg/errors"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata/provider"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	catalog  *catalog.Catalog
	pipeline *pipeline.Pipeline
}

// loadConfig reads the config named by --config, or the default one.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	return config.Load(cmd.String("config"))
}

// newLogger logs to the configured file in interactive mode so the terminal
// stays clean, and to stderr otherwise.
func newLogger(cfg *config.Config, interactive bool) (*logger.Logger, error) {
	outputs := []string{"stderr"}

	if interactive && cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		outputs = []string{cfg.Logging.File}
	}

	return logger.NewLoggerWithOptions(logger.Options{
		Level:       cfg.Logging.Level,
		OutputPaths: outputs,
	})
}

// bootstrap loads everything a fetch needs. A missing ticker map is fatal.
func bootstrap(cmd *cli.Command, interactive bool) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg, interactive)
	if err != nil {
		return nil, err
	}

	tickers, err := catalog.Load(cfg.CatalogCandidates(catalog.ExecutableDir()), log)
	if err != nil {
		log.Error("ticker map unavailable", zap.Error(err))
		return nil, err
	}

	providerType, providerConfig := cfg.ProviderSettings()

	marketProvider, err := provider.NewMarketDataProvider(providerType, providerConfig)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProvider, "failed to create market data provider", err)
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWriteFailure, "output directory unavailable", err)
	}

	log.Info("extractor ready",
		zap.String("provider", string(providerType)),
		zap.String("output_dir", cfg.OutputDir),
		zap.Int("tickers", tickers.Len()),
	)

	return &app{
		cfg:     cfg,
		log:     log,
		catalog: tickers,
		pipeline: pipeline.New(pipeline.Options{
			Catalog:   tickers,
			Provider:  marketProvider,
			OutputDir: cfg.OutputDir,
			Logger:    log,
		}),
	}, nil
}
