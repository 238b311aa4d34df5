package commands

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"govledger/internal/budget"
	"govledger/internal/platform/config"
	"govledger/internal/platform/logger"
	platformmetrics "govledger/internal/platform/metrics"
	"govledger/internal/validation"
	"govledger/internal/validation/adapters/legacy"
	"govledger/internal/validation/metrics"
	"govledger/internal/validation/service"
	"govledger/pkg/platform/audit/publisher"
	"govledger/pkg/platform/audit/store/memory"
)

// app is the dependency graph shared by subcommands.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	catalog  *budget.Catalog
	decoder  *legacy.Decoder
	service  *service.Service
	registry *prometheus.Registry
	trail    *memory.InMemoryStore
	audit    *publisher.Publisher
}

type rootOptions struct {
	envFile     string
	catalogPath string
	logLevel    string
	logFormat   string
}

// Execute runs the CLI with ctx as the parent of every command context.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	root := &cobra.Command{
		Use:           "govledger",
		Short:         "Budgetary integrity and identifier validation for government accounting",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file to load (default .env)")
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog YAML file (overrides "+config.EnvCatalog+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides "+config.EnvLogLevel+")")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "text or json (overrides "+config.EnvLogFormat+")")

	root.AddCommand(validateCmd(a), checkCmd(a), momentsCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, opts *rootOptions) error {
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}
	cfg, err := config.FromEnv(envFiles...)
	if err != nil {
		return err
	}
	if opts.catalogPath != "" {
		cfg.CatalogPath = opts.catalogPath
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.LogFormat = opts.logFormat
	}
	a.cfg = cfg

	a.logger, err = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.catalog, err = budget.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	a.decoder = legacy.NewDecoder(a.catalog)

	a.registry = platformmetrics.NewRegistry()
	a.trail = memory.NewInMemoryStore()
	pubOpts := []publisher.Option{publisher.WithLogger(a.logger)}
	if cfg.AuditBuffer > 0 {
		pubOpts = append(pubOpts, publisher.WithAsyncBuffer(cfg.AuditBuffer))
	}
	a.audit = publisher.NewPublisher(a.trail, pubOpts...)

	a.service, err = service.New(validation.NewEngine(a.catalog),
		service.WithLogger(a.logger),
		service.WithMetrics(metrics.New(a.registry)),
		service.WithAuditPublisher(a.audit),
		service.WithDecoder(a.decoder),
		service.WithConcurrency(cfg.BatchConcurrency),
	)
	if err != nil {
		return err
	}

	a.logger.Debug("govledger ready",
		"catalog", cfg.CatalogPath,
		"batch_concurrency", cfg.BatchConcurrency,
		"audit_buffer", cfg.AuditBuffer,
	)
	return nil
}

// close flushes the audit trail. Safe to call more than once.
func (a *app) close() {
	if a.audit != nil {
		a.audit.Close()
	}
}
