package main

import (
	"github.com/spf13/cobra"

	telemetry "github.com/nanoncore/nano-telemetry"
	"github.com/nanoncore/nano-telemetry/inventory"
	"github.com/nanoncore/nano-telemetry/poller"
	"github.com/nanoncore/nano-telemetry/sink"
	"github.com/nanoncore/nano-telemetry/types"
)

func newInventoryCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Device and interface inventory operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newInventorySyncCommand(opts))
	return cmd
}

func newInventorySyncCommand(opts *globalOptions) *cobra.Command {
	var vendor string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Load devices from the inventory source and refresh their interfaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx := cmd.Context()
			db, err := openStore(ctx, cfg.DB, log)
			if err != nil {
				return err
			}
			defer db.Close()

			source, err := inventory.NewSource(cfg.Inventory)
			if err != nil {
				return err
			}

			descriptions := poller.New(
				poller.Config{
					Concurrency:  cfg.Inventory.Concurrency,
					Kind:         types.KindDescriptions,
					BriefTimeout: cfg.Poller.BriefTimeout,
				},
				poller.SSHDialer(cfg.SSH),
				telemetry.NewParser,
				sink.NewStore(db, log),
				log,
			)

			syncOpts := []inventory.Option{inventory.WithConcurrency(cfg.Inventory.Concurrency)}
			if cfg.Inventory.SNMP.Enabled {
				syncOpts = append(syncOpts, inventory.WithEnricher(inventory.NewSNMPEnricher(cfg.Inventory.SNMP)))
			}

			syncer := inventory.NewSyncer(source, db, descriptions, log, syncOpts...)
			_, err = syncer.Sync(ctx, types.Vendor(vendor))
			return err
		},
	}

	cmd.Flags().StringVar(&vendor, "vendor", "", "Only sync devices of this vendor")
	return cmd
}
