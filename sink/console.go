package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/nanoncore/nano-telemetry/types"
)

// Console writes every batch as one JSON line
type Console struct {
	mu  sync.Mutex
	enc *json.Encoder
}

type consoleLine struct {
	Device     string                   `json:"device"`
	Address    string                   `json:"address,omitempty"`
	Vendor     types.Vendor             `json:"vendor"`
	Kind       types.Kind               `json:"kind"`
	Interfaces map[string]*types.Record `json:"interfaces"`
	Skipped    int                      `json:"skipped"`
}

func NewConsole(w io.Writer) *Console {
	return &Console{enc: json.NewEncoder(w)}
}

func (c *Console) Deliver(ctx context.Context, batch Batch) (Counts, error) {
	result := batch.Result
	if result == nil {
		result = types.NewResult()
	}

	line := consoleLine{
		Device:     batch.Target.Label(),
		Address:    batch.Target.Address,
		Vendor:     batch.Target.Vendor,
		Kind:       batch.Kind,
		Interfaces: result.Interfaces,
		Skipped:    result.Skipped,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enc.Encode(line); err != nil {
		return Counts{}, fmt.Errorf("write console batch: %w", err)
	}
	return tally(result), nil
}

// tally counts the record parts present in result
func tally(result *types.Result) Counts {
	var counts Counts
	for _, record := range result.Interfaces {
		counts.Interfaces++
		if !record.Status.IsEmpty() {
			counts.Status++
		}
		if record.Stats != nil {
			counts.Stats++
		}
		if record.Reading != nil && record.Reading.TransceiverStatus != "" {
			counts.Readings++
		}
	}
	return counts
}
