package main

import (
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nanoncore/nano-telemetry/alert"
	"github.com/nanoncore/nano-telemetry/config"
)

func newAlertsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Utilization alerting",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newAlertsCheckCommand(opts))
	return cmd
}

func newAlertsCheckCommand(opts *globalOptions) *cobra.Command {
	var (
		threshold float64
		notifier  string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Alert on interfaces whose latest utilization is above the threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cmd.Flags().Changed("threshold") {
				cfg.Alert.Threshold = threshold
			}
			if cmd.Flags().Changed("notifier") {
				if err := alert.Validate(notifier); err != nil {
					return err
				}
				cfg.Alert.Notifier = notifier
			}

			ctx := cmd.Context()
			db, err := openStore(ctx, cfg.DB, log)
			if err != nil {
				return err
			}
			defer db.Close()

			n, closeNotifier, err := newNotifier(cfg.Alert)
			if err != nil {
				return err
			}
			defer closeNotifier()

			report, err := alert.NewMonitor(db, n, cfg.Alert.Threshold, log).Check(ctx)
			if err != nil {
				return err
			}
			log.Info("alert check finished",
				zap.Int("checked", report.Checked),
				zap.Int("alerts", report.Alerts),
				zap.Int("failed", report.Failed),
				zap.Int("orphans", report.Orphans),
			)
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Utilization percent above which an alert is sent; overrides alert.threshold")
	cmd.Flags().StringVar(&notifier, "notifier", "", "Alert notifier (ntfy or nats); overrides alert.notifier")
	return cmd
}

func newNotifier(cfg config.AlertConfig) (alert.Notifier, func(), error) {
	if cfg.Notifier == alert.NotifierNATS {
		n, err := alert.NewNATS(cfg.NATS, nats.Name("nano-telemetry"))
		if err != nil {
			return nil, nil, err
		}
		return n, n.Close, nil
	}
	return alert.NewNtfy(cfg.Ntfy), func() {}, nil
}
