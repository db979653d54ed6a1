package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	telemetry "github.com/nanoncore/nano-telemetry"
	"github.com/nanoncore/nano-telemetry/config"
	"github.com/nanoncore/nano-telemetry/poller"
	"github.com/nanoncore/nano-telemetry/sink"
	"github.com/nanoncore/nano-telemetry/store"
	"github.com/nanoncore/nano-telemetry/types"
)

func newPollCommand(opts *globalOptions) *cobra.Command {
	var (
		kind     string
		vendor   string
		schedule string
		sinkName string
	)

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Poll the inventoried devices once, or on a cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cmd.Flags().Changed("sink") {
				if err := sink.Validate(sinkName); err != nil {
					return err
				}
				cfg.Poller.Sink = sinkName
			}
			if !cmd.Flags().Changed("schedule") {
				schedule = cfg.Poller.Schedule
			}

			ctx := cmd.Context()
			db, err := openStore(ctx, cfg.DB, log)
			if err != nil {
				return err
			}
			defer db.Close()

			metrics := poller.NewMetrics(prometheus.DefaultRegisterer)
			p := poller.New(
				poller.Config{
					Concurrency:    cfg.Poller.Concurrency,
					Kind:           types.Kind(kind),
					BriefTimeout:   cfg.Poller.BriefTimeout,
					VerboseTimeout: cfg.Poller.VerboseTimeout,
				},
				poller.SSHDialer(cfg.SSH),
				telemetry.NewParser,
				newSink(cfg.Poller.Sink, db, log),
				log,
				poller.WithInterfaceLister(db),
				poller.WithMetrics(metrics),
			)

			job := func(ctx context.Context) (*poller.Summary, error) {
				targets, err := loadTargets(ctx, db, types.Vendor(vendor))
				if err != nil {
					return nil, err
				}
				return p.Run(ctx, targets), nil
			}

			if schedule == "" {
				summary, err := job(ctx)
				if err != nil {
					return err
				}
				if summary.AllFailed() {
					return fmt.Errorf("all %d devices failed", summary.Devices)
				}
				return nil
			}
			return runScheduled(ctx, schedule, cfg.Metrics, log, job)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Poll kind (status, transceiver, extensive, optics, ...); empty uses each vendor's default")
	cmd.Flags().StringVar(&vendor, "vendor", "", "Only poll devices of this vendor")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron expression or descriptor (e.g. \"@every 5m\"); overrides poller.schedule")
	cmd.Flags().StringVar(&sinkName, "sink", "", "Result sink (console or store); overrides poller.sink")
	return cmd
}

func newSink(name string, db *store.Store, log *zap.Logger) sink.Sink {
	if name == sink.NameStore {
		return sink.NewStore(db, log)
	}
	return sink.NewConsole(os.Stdout)
}

// runScheduled runs job on schedule until ctx is cancelled. A run still in
// progress when the next one is due causes that tick to be skipped.
func runScheduled(ctx context.Context, schedule string, metricsCfg config.MetricsConfig, log *zap.Logger, job func(context.Context) (*poller.Summary, error)) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, func() {
		if _, err := job(ctx); err != nil {
			log.Warn("scheduled poll failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	var srv *http.Server
	if metricsCfg.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv = &http.Server{
			Addr:              metricsCfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("metrics listening", zap.String("addr", metricsCfg.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server", zap.Error(err))
			}
		}()
	}

	c.Start()
	log.Info("scheduler started", zap.String("schedule", schedule))

	<-ctx.Done()

	stopped := c.Stop()
	<-stopped.Done()
	log.Info("scheduler stopped")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("metrics server shutdown", zap.Error(err))
		}
	}
	return nil
}
