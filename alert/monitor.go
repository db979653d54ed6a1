package alert

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nanoncore/nano-telemetry/model"
)

const (
	priorityHigh   = "high"
	noDescription  = "no description"
	defaultPercent = 90.0
)

var utilizationTags = []string{"warning", "chart_up"}

// StatsSource returns the latest stats sample of every interface, with the
// interface and device loaded
type StatsSource interface {
	LatestStats(ctx context.Context) ([]model.InterfaceStatsSample, error)
}

// Report is the outcome of one check
type Report struct {
	Checked int
	Alerts  int
	Failed  int
	Orphans int
}

// Monitor compares the latest utilization samples against a threshold
type Monitor struct {
	source    StatsSource
	notifier  Notifier
	threshold float64
	log       *zap.Logger
}

func NewMonitor(source StatsSource, notifier Notifier, threshold float64, log *zap.Logger) *Monitor {
	if threshold <= 0 {
		threshold = defaultPercent
	}
	return &Monitor{
		source:    source,
		notifier:  notifier,
		threshold: threshold,
		log:       log,
	}
}

// Check sends one alert per interface whose latest input or output
// utilization is above the threshold. Missing utilization counts as 0.
// A failed notification is logged and counted; the check goes on.
func (m *Monitor) Check(ctx context.Context) (Report, error) {
	var report Report

	samples, err := m.source.LatestStats(ctx)
	if err != nil {
		return report, fmt.Errorf("load latest stats: %w", err)
	}

	for _, sample := range samples {
		if sample.Interface == nil || sample.Interface.Device == nil {
			report.Orphans++
			m.log.Debug("stats sample without interface or device", zap.Uint("sample_id", sample.ID))
			continue
		}
		report.Checked++

		alert, ok := m.evaluate(sample)
		if !ok {
			continue
		}

		if err := m.notifier.Notify(ctx, alert); err != nil {
			report.Failed++
			m.log.Warn("send alert",
				zap.String("device", alert.Device),
				zap.String("interface", alert.Interface),
				zap.Error(err),
			)
			continue
		}
		report.Alerts++
		m.log.Info("utilization alert sent",
			zap.String("device", alert.Device),
			zap.String("interface", alert.Interface),
			zap.Float64("in_uti", alert.InUti),
			zap.Float64("out_uti", alert.OutUti),
		)
	}

	return report, nil
}

// evaluate builds the alert for sample, if any direction is above threshold
func (m *Monitor) evaluate(sample model.InterfaceStatsSample) (Alert, bool) {
	in := valueOrZero(sample.InUti)
	out := valueOrZero(sample.OutUti)

	var details []string
	if in > m.threshold {
		details = append(details, fmt.Sprintf("In: %.2f%%", in))
	}
	if out > m.threshold {
		details = append(details, fmt.Sprintf("Out: %.2f%%", out))
	}
	if len(details) == 0 {
		return Alert{}, false
	}

	iface := sample.Interface
	description := noDescription
	if iface.Description != nil && strings.TrimSpace(*iface.Description) != "" {
		description = *iface.Description
	}

	return Alert{
		Title: fmt.Sprintf("Bandwidth usage above %.0f%%", m.threshold),
		Body: fmt.Sprintf("Device: %s\nInterface: %s (%s)\nDetails: %s",
			iface.Device.Hostname, iface.Name, description, strings.Join(details, " | ")),
		Priority:  priorityHigh,
		Tags:      utilizationTags,
		Device:    iface.Device.Hostname,
		Interface: iface.Name,
		InUti:     in,
		OutUti:    out,
	}, true
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0.0
	}
	return *v
}
