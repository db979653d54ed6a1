package sink

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"go.uber.org/zap"

	"github.com/nanoncore/nano-telemetry/model"
	"github.com/nanoncore/nano-telemetry/tracker"
	"github.com/nanoncore/nano-telemetry/types"
)

// Writer is the part of the persistence store the sink needs
type Writer interface {
	tracker.History

	Interfaces(ctx context.Context, deviceID uint) ([]model.Interface, error)
	UpsertInterface(ctx context.Context, iface *model.Interface) error
	UpdateInterface(ctx context.Context, id uint, updates map[string]any) error
	CreateStats(ctx context.Context, sample *model.InterfaceStatsSample) error
	CreateReading(ctx context.Context, sample *model.TransceiverReadingSample) error
}

// Store persists batches. Records are matched to the device's inventoried
// interfaces by normalized name; descriptions batches create the interfaces.
type Store struct {
	writer  Writer
	tracker *tracker.Tracker
	log     *zap.Logger
}

func NewStore(writer Writer, log *zap.Logger) *Store {
	return &Store{
		writer:  writer,
		tracker: tracker.New(writer),
		log:     log,
	}
}

// Deliver writes every record of the batch. A failed write is logged and
// counted; the remaining interfaces are still written and the failures are
// returned joined.
func (s *Store) Deliver(ctx context.Context, batch Batch) (Counts, error) {
	var counts Counts
	if batch.Result.Len() == 0 {
		return counts, nil
	}

	log := s.log.With(
		zap.String("device", batch.Target.Label()),
		zap.String("kind", string(batch.Kind)),
	)

	if batch.Kind == types.KindDescriptions {
		return s.upsertInventory(ctx, batch, log)
	}

	ifaces, err := s.writer.Interfaces(ctx, batch.Target.DeviceID)
	if err != nil {
		return counts, err
	}
	ids := make(map[string]uint, len(ifaces))
	for _, iface := range ifaces {
		ids[iface.Name] = iface.ID
	}

	var errs []error
	for _, name := range batch.Result.Names() {
		id, ok := ids[name]
		if !ok {
			counts.Unmatched++
			log.Debug("interface not in inventory", zap.String("interface", name))
			continue
		}

		counts.Interfaces++
		if err := s.write(ctx, id, batch.Result.Interfaces[name], batch.Identity, &counts); err != nil {
			counts.Failed++
			log.Warn("write interface record", zap.String("interface", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	return counts, errors.Join(errs...)
}

// write stores one record: in-place status and thresholds, then the
// append-only samples, then the module identity
func (s *Store) write(ctx context.Context, interfaceID uint, record *types.Record, identity bool, counts *Counts) error {
	updates := model.StatusUpdates(record.Status)
	if record.Module != nil {
		maps.Copy(updates, model.ThresholdUpdates(record.Module.Thresholds))
	}
	if len(updates) > 0 {
		if err := s.writer.UpdateInterface(ctx, interfaceID, updates); err != nil {
			return err
		}
		counts.Status++
	}

	if record.Stats != nil {
		if err := s.writer.CreateStats(ctx, model.NewStatsSample(interfaceID, record.Stats)); err != nil {
			return err
		}
		counts.Stats++
	}

	if record.Reading != nil && record.Reading.TransceiverStatus != "" {
		if err := s.writer.CreateReading(ctx, model.NewReadingSample(interfaceID, record.Reading)); err != nil {
			return err
		}
		counts.Readings++
	}

	if identity && record.Module != nil {
		changed, err := s.tracker.Observe(ctx, interfaceID, record.Module)
		if err != nil {
			return err
		}
		if changed {
			counts.Modules++
		}
	}

	return nil
}

func (s *Store) upsertInventory(ctx context.Context, batch Batch, log *zap.Logger) (Counts, error) {
	var counts Counts
	var errs []error

	for _, name := range batch.Result.Names() {
		record := batch.Result.Interfaces[name]
		iface := &model.Interface{
			DeviceID: batch.Target.DeviceID,
			Name:     name,
		}
		if record.Status != nil {
			iface.PhysicalStatus = record.Status.PhysicalStatus
			iface.ProtocolStatus = record.Status.ProtocolStatus
			iface.Description = record.Status.Description
		}

		if err := s.writer.UpsertInterface(ctx, iface); err != nil {
			counts.Failed++
			log.Warn("upsert interface", zap.String("interface", name), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		counts.Interfaces++
		counts.Status++
	}

	return counts, errors.Join(errs...)
}
