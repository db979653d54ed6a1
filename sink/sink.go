// Package sink delivers parsed poll results to their destination.
//
// Two sinks exist: Console dumps results as JSON lines and Store writes them
// through the persistence store. Parsing and identity logic are the same for
// both.
package sink

import (
	"context"
	"fmt"

	"github.com/nanoncore/nano-telemetry/types"
)

// Names accepted in configuration
const (
	NameConsole = "console"
	NameStore   = "store"
)

// Batch is one device's parsed output for one command kind
type Batch struct {
	Target types.Target
	Kind   types.Kind

	// Identity is copied from the command spec: module records may drive
	// identity tracking
	Identity bool

	Result *types.Result
}

// Counts is what a sink did with a batch
type Counts struct {
	Interfaces int `json:"interfaces"`
	Status     int `json:"status"`
	Stats      int `json:"stats"`
	Readings   int `json:"readings"`
	Modules    int `json:"modules"`
	Unmatched  int `json:"unmatched"`
	Failed     int `json:"failed"`
}

// Add accumulates o into c
func (c *Counts) Add(o Counts) {
	c.Interfaces += o.Interfaces
	c.Status += o.Status
	c.Stats += o.Stats
	c.Readings += o.Readings
	c.Modules += o.Modules
	c.Unmatched += o.Unmatched
	c.Failed += o.Failed
}

// Sink receives parsed batches. Implementations must be safe for concurrent
// use by many device pipelines.
type Sink interface {
	Deliver(ctx context.Context, batch Batch) (Counts, error)
}

// Validate checks a sink name from configuration
func Validate(name string) error {
	switch name {
	case NameConsole, NameStore:
		return nil
	default:
		return fmt.Errorf("unknown sink %q", name)
	}
}
