package inventory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"go.uber.org/zap"

	"github.com/nanoncore/nano-telemetry/model"
	"github.com/nanoncore/nano-telemetry/poller"
	"github.com/nanoncore/nano-telemetry/types"
)

const defaultConcurrency = 30

// DeviceStore persists inventory devices
type DeviceStore interface {
	UpsertDevice(ctx context.Context, d *model.Device) error
}

// Runner polls the interface descriptions of the synced devices
type Runner interface {
	Run(ctx context.Context, targets []types.Target) *poller.Summary
}

// Report is the outcome of one sync
type Report struct {
	Entries      int
	Enriched     int
	EnrichFailed int
	Upserted     int
	Failed       int

	// Interfaces is the descriptions poll summary, nil when no device was
	// upserted or no runner is configured
	Interfaces *poller.Summary
}

// Syncer upserts the inventory into the store and then refreshes the
// interface inventory of every device
type Syncer struct {
	source      Source
	store       DeviceStore
	runner      Runner
	enricher    Enricher
	concurrency int
	log         *zap.Logger
}

// Option configures a Syncer
type Option func(*Syncer)

// WithEnricher enriches every entry before it is stored
func WithEnricher(e Enricher) Option {
	return func(s *Syncer) {
		s.enricher = e
	}
}

// WithConcurrency caps the number of devices enriched at once
func WithConcurrency(n int) Option {
	return func(s *Syncer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewSyncer(source Source, store DeviceStore, runner Runner, log *zap.Logger, opts ...Option) *Syncer {
	s := &Syncer{
		source:      source,
		store:       store,
		runner:      runner,
		concurrency: defaultConcurrency,
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync loads the inventory, optionally restricted to one vendor. Only a
// failure to load the device list is returned as an error; per-device
// failures are logged and counted.
func (s *Syncer) Sync(ctx context.Context, vendor types.Vendor) (Report, error) {
	var report Report

	entries, err := s.source.Devices(ctx)
	if err != nil {
		return report, fmt.Errorf("load inventory: %w", err)
	}
	entries = Filter(entries, vendor)
	report.Entries = len(entries)
	s.log.Info("inventory loaded", zap.Int("devices", len(entries)), zap.String("vendor", string(vendor)))

	if s.enricher != nil {
		report.Enriched, report.EnrichFailed = s.enrich(ctx, entries)
	}

	targets := make([]types.Target, 0, len(entries))
	for _, entry := range entries {
		device := entry.Device()
		if err := s.store.UpsertDevice(ctx, device); err != nil {
			report.Failed++
			s.log.Warn("upsert device",
				zap.String("device", entry.Hostname),
				zap.String("category", string(types.Classify(err))),
				zap.Error(err),
			)
			continue
		}
		report.Upserted++
		targets = append(targets, device.Target())
	}

	if s.runner != nil && len(targets) > 0 {
		report.Interfaces = s.runner.Run(ctx, targets)
	}

	s.log.Info("inventory synced",
		zap.Int("devices", report.Entries),
		zap.Int("upserted", report.Upserted),
		zap.Int("failed", report.Failed),
		zap.Int("enriched", report.Enriched),
		zap.Int("enrich_failed", report.EnrichFailed),
	)
	return report, nil
}

// enrich runs the enricher over entries with bounded concurrency. A failed
// entry keeps the values from the source.
func (s *Syncer) enrich(ctx context.Context, entries []Entry) (ok, failed int) {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, s.concurrency)
	)

	for i := range entries {
		wg.Add(1)
		go func(e *Entry) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			enriched := *e
			enriched.Metadata = maps.Clone(e.Metadata)
			err := s.enricher.Enrich(ctx, &enriched)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				s.log.Debug("enrich device", zap.String("device", e.Hostname), zap.Error(err))
				return
			}
			*e = enriched
			ok++
		}(&entries[i])
	}
	wg.Wait()
	return ok, failed
}
