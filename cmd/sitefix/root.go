package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/mamouns/sitefix/pkg/config"
	"github.com/mamouns/sitefix/pkg/operation"
	"github.com/mamouns/sitefix/pkg/report"
	"github.com/mamouns/sitefix/pkg/rewrite"
	"github.com/mamouns/sitefix/pkg/rules"
	"github.com/mamouns/sitefix/pkg/scan"
)

var (
	// Flags
	configFile string
	rootDir    string
	dryRun     bool
	async      bool
	debug      bool
)

// Config files probed when --config is not given.
var defaultConfigFiles = []string{".sitefix.hcl", ".sitefix.yaml", ".sitefix.yml"}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sitefix",
		Short:         "Rewrite the website tree for the NJ-only, Halal-branded site",
		Long:          "sitefix walks a directory of HTML files and applies the built-in\nreplacement rules: retires the nationwide-shipping campaign, collapses the\nold NY/NJ/GA/CT service area to NJ, and renames the Middle Eastern cuisine\ncategory to Halal. Files are only rewritten when their content changes.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context())
			return run(ctx, cmd)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path (default: probe .sitefix.hcl/.yaml)")
	cmd.Flags().StringVarP(&rootDir, "root", "r", "", "directory tree to rewrite (overrides config)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report changes without writing files")
	cmd.Flags().BoolVar(&async, "async", false, "run the batch on its own goroutine")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	return cmd
}

// setupLogging configures zerolog and attaches it to the context
func setupLogging(ctx context.Context) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// loadConfig resolves the run configuration: explicit file, probed default
// file, or compiled-in defaults.
func loadConfig(ctx context.Context) (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	for _, candidate := range defaultConfigFiles {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		cfg, err := config.Load(ctx, candidate)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	return config.Default(), nil
}

func run(ctx context.Context, cmd *cobra.Command) error {
	logger := zerolog.Ctx(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	// Flags win over config.
	if rootDir != "" {
		cfg.Root = rootDir
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return errors.Errorf("resolving scan root: %w", err)
	}
	cfg.Root = absRoot

	logger.Debug().Stringer("config", cfg).Msg("configured")

	rewriter, err := rewrite.New(rules.Default())
	if err != nil {
		return errors.Errorf("building rewriter: %w", err)
	}

	op, err := operation.NewRewriteOperation(operation.Options{
		Config:   cfg,
		Scanner:  scan.New(cfg.Root, cfg.Extensions, cfg.Excludes),
		Rewriter: rewriter,
		Reporter: report.NewReporter(cfg.Root, cfg.DryRun, report.NewDefaultFormatter()),
	})
	if err != nil {
		return errors.Errorf("building operation: %w", err)
	}

	runner := operation.NewRunner(logger, async)
	if err := runner.Run(ctx, op); err != nil {
		return errors.Errorf("running rewrite: %w", err)
	}

	return nil
}
