// Package poller runs one collect-parse-deliver pipeline per device with a
// cap on the number of devices polled at once.
//
// A device pipeline runs one command (or one per inventoried interface for
// per-interface kinds), parses the output and hands the records to a sink.
// Failures are classified and counted per device; one device never aborts
// another device or the run.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nanoncore/nano-telemetry/model"
	"github.com/nanoncore/nano-telemetry/sink"
	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

const defaultConcurrency = 20

// SpecFunc resolves the command spec of a vendor and poll kind
type SpecFunc func(vendor types.Vendor, kind types.Kind) (types.CommandSpec, error)

// InterfaceLister lists the inventoried interfaces of a device, for
// per-interface command kinds
type InterfaceLister interface {
	Interfaces(ctx context.Context, deviceID uint) ([]model.Interface, error)
}

// Config is fixed for the lifetime of a Poller
type Config struct {
	// Concurrency caps the number of in-flight device pipelines
	Concurrency int

	// Kind selects the command; empty uses each vendor's default
	Kind types.Kind

	// BriefTimeout and VerboseTimeout override the command spec budgets
	// when non-zero
	BriefTimeout   time.Duration
	VerboseTimeout time.Duration
}

// Poller fans device pipelines out over a bounded set of goroutines
type Poller struct {
	cfg     Config
	dial    DialFunc
	specs   SpecFunc
	sink    sink.Sink
	lister  InterfaceLister
	metrics *Metrics
	log     *zap.Logger
}

// Option configures optional poller collaborators
type Option func(*Poller)

// WithInterfaceLister enables per-interface command kinds
func WithInterfaceLister(lister InterfaceLister) Option {
	return func(p *Poller) {
		p.lister = lister
	}
}

// WithMetrics records pipeline outcomes in m
func WithMetrics(m *Metrics) Option {
	return func(p *Poller) {
		p.metrics = m
	}
}

func New(cfg Config, dial DialFunc, specs SpecFunc, out sink.Sink, log *zap.Logger, opts ...Option) *Poller {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = defaultConcurrency
	}
	p := &Poller{
		cfg:   cfg,
		dial:  dial,
		specs: specs,
		sink:  out,
		log:   log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls every target and returns the run summary once all pipelines
// have finished. Targets whose vendor has no spec for the kind are counted
// as unsupported and not dialed.
func (p *Poller) Run(ctx context.Context, targets []types.Target) *Summary {
	started := time.Now()
	summary := newSummary(uuid.NewString(), started)
	log := p.log.With(zap.String("run_id", summary.RunID))

	type job struct {
		target types.Target
		spec   types.CommandSpec
	}

	jobs := make([]job, 0, len(targets))
	for _, target := range targets {
		spec, err := p.specs(target.Vendor, p.cfg.Kind)
		if err != nil {
			summary.Unsupported++
			log.Warn("skipping device", zap.String("device", target.Label()), zap.Error(err))
			continue
		}
		jobs = append(jobs, job{target: target, spec: spec})
	}

	log.Info("poll started",
		zap.Int("devices", len(jobs)),
		zap.Int("concurrency", p.cfg.Concurrency),
		zap.String("kind", string(p.cfg.Kind)),
	)

	outcomes := make([]Outcome, len(jobs))
	sem := make(chan struct{}, p.cfg.Concurrency)
	var wg sync.WaitGroup

	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				outcomes[i] = Outcome{
					Target:   j.target,
					Kind:     j.spec.Kind,
					Category: types.CategoryTransport,
					Err:      fmt.Errorf("%w: %w", types.ErrTransport, ctx.Err()),
				}
				return
			}

			outcomes[i] = p.pollDevice(ctx, j.target, j.spec, log)
		}(i, j)
	}
	wg.Wait()

	for _, o := range outcomes {
		summary.add(o)
		p.metrics.observe(o)
	}
	summary.Duration = time.Since(started)
	p.metrics.finish(time.Now())

	log.Info("poll finished", summary.Fields()...)
	return summary
}

// timeout returns the per-command budget for spec on target. A "timeout"
// metadata entry on the device wins over the configured budgets.
func (p *Poller) timeout(target types.Target, spec types.CommandSpec) time.Duration {
	budget := spec.Timeout
	switch {
	case spec.Verbose && p.cfg.VerboseTimeout > 0:
		budget = p.cfg.VerboseTimeout
	case !spec.Verbose && p.cfg.BriefTimeout > 0:
		budget = p.cfg.BriefTimeout
	}
	return common.MetadataDurationOr(target.Metadata, budget, common.MetaTimeout)
}
