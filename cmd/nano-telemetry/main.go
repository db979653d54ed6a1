package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nanoncore/nano-telemetry/config"
	"github.com/nanoncore/nano-telemetry/logger"
	"github.com/nanoncore/nano-telemetry/store"
	"github.com/nanoncore/nano-telemetry/types"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type globalOptions struct {
	configPath string
	envOnly    bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "nano-telemetry",
		Short:         "Collect interface and optical telemetry from network devices over SSH",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "Path to the YAML configuration file")
	cmd.PersistentFlags().BoolVar(&opts.envOnly, "env-only", false, "Read configuration from NT_* environment variables only")

	cmd.AddCommand(newPollCommand(opts))
	cmd.AddCommand(newInventoryCommand(opts))
	cmd.AddCommand(newAlertsCommand(opts))
	cmd.AddCommand(newParseCommand())
	cmd.AddCommand(newMigrateCommand(opts))
	return cmd
}

// load reads and validates the configuration and builds the logger
func (o *globalOptions) load() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath, o.envOnly)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}

// openStore connects to the database and brings the schema up to date
func openStore(ctx context.Context, cfg config.DBConfig, log *zap.Logger) (*store.Store, error) {
	db, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug("store ready", zap.String("driver", cfg.Driver))
	return db, nil
}

// loadTargets lists the inventoried devices of vendor (all vendors when empty)
func loadTargets(ctx context.Context, db *store.Store, vendor types.Vendor) ([]types.Target, error) {
	devices, err := db.Devices(ctx, vendor)
	if err != nil {
		return nil, err
	}
	targets := make([]types.Target, 0, len(devices))
	for _, d := range devices {
		targets = append(targets, d.Target())
	}
	return targets, nil
}

func newMigrateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := openStore(cmd.Context(), cfg.DB, log)
			if err != nil {
				return err
			}
			defer db.Close()

			log.Info("schema migrated", zap.String("driver", cfg.DB.Driver))
			return nil
		},
	}
}
