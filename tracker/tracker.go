// Package tracker decides when an optical module identity has changed.
//
// The last known serial number of every interface is the serial of its most
// recent module event, so the state survives restarts. A new event is written
// only when the observed serial differs from it; an absent module (nil or empty
// serial) is a distinct value, and absent to absent is not a change.
package tracker

import (
	"context"
	"fmt"

	"github.com/nanoncore/nano-telemetry/model"
	"github.com/nanoncore/nano-telemetry/types"
)

// History is the persisted module event stream
type History interface {
	LatestModuleEvent(ctx context.Context, interfaceID uint) (*model.TransceiverModuleEvent, error)
	CreateModuleEvent(ctx context.Context, event *model.TransceiverModuleEvent) error
}

// Changed reports whether next is a different module than last
func Changed(last, next *string) bool {
	return serial(last) != serial(next)
}

func serial(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type Tracker struct {
	history History
}

func New(history History) *Tracker {
	return &Tracker{history: history}
}

// Observe compares module against the latest event of interfaceID and appends
// a new event carrying the full module record when the serial changed.
// It reports whether an event was written.
func (t *Tracker) Observe(ctx context.Context, interfaceID uint, module *types.Module) (bool, error) {
	if module == nil {
		return false, nil
	}

	last, err := t.history.LatestModuleEvent(ctx, interfaceID)
	if err != nil {
		return false, fmt.Errorf("load last module event: %w", err)
	}

	var lastSerial *string
	if last != nil {
		lastSerial = last.SerialNumber
	}
	if !Changed(lastSerial, module.SerialNumber) {
		return false, nil
	}

	if err := t.history.CreateModuleEvent(ctx, model.NewModuleEvent(interfaceID, module)); err != nil {
		return false, fmt.Errorf("create module event: %w", err)
	}
	return true, nil
}
