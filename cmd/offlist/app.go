package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/offlist/offlist/internal/aggregate"
	"github.com/offlist/offlist/internal/config"
	"github.com/offlist/offlist/internal/database"
	"github.com/offlist/offlist/internal/log"
	"github.com/offlist/offlist/internal/mail"
	"github.com/offlist/offlist/internal/match"
	"github.com/offlist/offlist/internal/model"
	"github.com/offlist/offlist/internal/optout"
	"github.com/offlist/offlist/internal/registry"
	"github.com/offlist/offlist/internal/removal"
	"github.com/offlist/offlist/internal/scanner"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a PII-redacting structured logger based on the
// verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// loadConfig populates a Config from the --config flag and the config
// file search path. If the user explicitly specified a config file
// path, a missing file is an error; otherwise the engine runs with
// defaults and an empty profile (commands that need one fail later
// with a clear message).
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.File, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// openStore opens the local database and seeds the broker catalog on
// first use.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*database.Store, error) {
	store, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.SeedSources(ctx, registry.SeedBrokers()); err != nil {
		store.Close() //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to seed broker catalog: %w", err)
	}

	logger.Debug("database opened", "dir", cfg.DBDir)
	return store, nil
}

// buildRegistry assembles the scan plan: catalog brokers from the
// store (the builtin seed when running without a database) plus any
// user-configured sources.
func buildRegistry(ctx context.Context, store *database.Store, cfg *config.Config) (*registry.Registry, error) {
	var brokers []model.Source
	if store != nil {
		var err error
		brokers, err = store.ListSources(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("failed to load broker catalog: %w", err)
		}
	} else {
		brokers = registry.SeedBrokers()
	}

	var custom []model.Source
	if cfg.File != nil {
		custom = cfg.File.Sources
	}

	reg, err := registry.New(brokers, custom)
	if err != nil {
		return nil, fmt.Errorf("invalid scan plan: %w", err)
	}
	return reg, nil
}

// buildDispatcher wires the fetcher, scorer, and dispatcher from
// configuration.
func buildDispatcher(cfg *config.Config, logger *slog.Logger) *scanner.Dispatcher {
	fetcher := scanner.NewFetcher(cfg.UserAgent, cfg.MaxBodySize)
	scorer := match.NewScorer(cfg.ConfidenceThreshold)
	return scanner.NewDispatcher(fetcher, scorer, logger,
		scanner.WithConcurrency(cfg.Concurrency),
		scanner.WithFetchTimeout(cfg.FetchTimeout),
		scanner.WithSearchQueries(config.DefaultSearchQueries),
	)
}

// buildAggregator creates the candidate aggregator from configuration.
func buildAggregator(cfg *config.Config) *aggregate.Aggregator {
	return aggregate.NewAggregator(cfg.ConfidenceThreshold, cfg.MaxCandidates)
}

// buildMailer selects the outbound mail transport. Without an API key
// sends are logged only, which routes removals to the manual path.
func buildMailer(cfg *config.Config, logger *slog.Logger) mail.Mailer {
	if cfg.File == nil || cfg.File.Mail.APIKey == "" {
		return mail.NewLogMailer(logger)
	}

	var opts []mail.HTTPMailerOption
	if cfg.File.Mail.Endpoint != "" {
		opts = append(opts, mail.WithEndpoint(cfg.File.Mail.Endpoint))
	}
	return mail.NewHTTPMailer(cfg.File.Mail.APIKey, cfg.File.Mail.From, opts...)
}

// buildManager wires the removal manager for one profile.
func buildManager(store *database.Store, cfg *config.Config, profile *model.Profile, logger *slog.Logger) *removal.Manager {
	resolver := optout.NewResolver()
	executor := optout.NewExecutor(buildMailer(cfg, logger), logger,
		optout.WithSendInterval(cfg.SendInterval),
	)
	return removal.NewManager(store, resolver, executor, profile, logger,
		removal.WithProcessingDays(config.DefaultProcessingDays),
		removal.WithManualProcessingDays(config.DefaultManualProcessingDays),
		removal.WithBatchSize(cfg.RequestBatchSize),
	)
}

// planSources flattens the registry groups into the list the monitor
// uses to map exposures back to probe targets.
func planSources(reg *registry.Registry) []model.Source {
	var out []model.Source
	out = append(out, reg.Brokers()...)
	out = append(out, reg.Sites()...)
	out = append(out, reg.Social()...)
	out = append(out, reg.BusinessDirs()...)
	return out
}
