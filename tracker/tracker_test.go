package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/nanoncore/nano-telemetry/model"
	"github.com/nanoncore/nano-telemetry/types"
)

func TestChanged(t *testing.T) {
	tests := []struct {
		name string
		last *string
		next *string
		want bool
	}{
		{"same serial", types.StringPtr("ABC123"), types.StringPtr("ABC123"), false},
		{"module removed", types.StringPtr("ABC123"), nil, true},
		{"absent stays absent", nil, nil, false},
		{"module inserted", nil, types.StringPtr("ABC123"), true},
		{"module swapped", types.StringPtr("ABC123"), types.StringPtr("XYZ789"), true},
		{"empty serial is absent", types.StringPtr(""), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Changed(tt.last, tt.next); got != tt.want {
				t.Errorf("Changed() = %v, want %v", got, tt.want)
			}
		})
	}
}

// memoryHistory keeps module events per interface in insertion order
type memoryHistory struct {
	events    map[uint][]*model.TransceiverModuleEvent
	loadErr   error
	createErr error
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{events: make(map[uint][]*model.TransceiverModuleEvent)}
}

func (h *memoryHistory) LatestModuleEvent(_ context.Context, interfaceID uint) (*model.TransceiverModuleEvent, error) {
	if h.loadErr != nil {
		return nil, h.loadErr
	}
	events := h.events[interfaceID]
	if len(events) == 0 {
		return nil, nil
	}
	return events[len(events)-1], nil
}

func (h *memoryHistory) CreateModuleEvent(_ context.Context, event *model.TransceiverModuleEvent) error {
	if h.createErr != nil {
		return h.createErr
	}
	h.events[event.InterfaceID] = append(h.events[event.InterfaceID], event)
	return nil
}

func TestTrackerObserve(t *testing.T) {
	ctx := context.Background()
	history := newMemoryHistory()
	tr := New(history)

	steps := []struct {
		name    string
		iface   uint
		serial  *string
		written bool
	}{
		{"first absent poll", 1, nil, false},
		{"module inserted", 1, types.StringPtr("ABC123"), true},
		{"same module", 1, types.StringPtr("ABC123"), false},
		{"other interface is independent", 2, types.StringPtr("ABC123"), true},
		{"module removed", 1, nil, true},
		{"still absent", 1, nil, false},
		{"new module", 1, types.StringPtr("XYZ789"), true},
	}

	for _, step := range steps {
		module := &types.Module{
			SerialNumber: step.serial,
			Thresholds:   types.Thresholds{TempHigh: types.Float64Ptr(75)},
		}
		written, err := tr.Observe(ctx, step.iface, module)
		if err != nil {
			t.Fatalf("%s: Observe() error = %v", step.name, err)
		}
		if written != step.written {
			t.Errorf("%s: Observe() = %v, want %v", step.name, written, step.written)
		}
	}

	if got := len(history.events[1]); got != 3 {
		t.Errorf("interface 1 has %d events, want 3", got)
	}
	last := history.events[1][2]
	if last.SerialNumber == nil || *last.SerialNumber != "XYZ789" {
		t.Errorf("last event serial = %v, want XYZ789", last.SerialNumber)
	}
	if last.TempHigh == nil || *last.TempHigh != 75 {
		t.Errorf("module event should carry thresholds")
	}
}

func TestTrackerObserveErrors(t *testing.T) {
	ctx := context.Background()
	module := &types.Module{SerialNumber: types.StringPtr("ABC123")}

	history := newMemoryHistory()
	history.loadErr = errors.New("db down")
	if _, err := New(history).Observe(ctx, 1, module); err == nil {
		t.Errorf("Observe() with failing load = nil error")
	}

	history = newMemoryHistory()
	history.createErr = errors.New("disk full")
	written, err := New(history).Observe(ctx, 1, module)
	if err == nil || written {
		t.Errorf("Observe() with failing create = %v, %v", written, err)
	}

	if written, err := New(newMemoryHistory()).Observe(ctx, 1, nil); written || err != nil {
		t.Errorf("Observe(nil module) = %v, %v", written, err)
	}
}
