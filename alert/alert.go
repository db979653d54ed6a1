// Package alert raises notifications when interface utilization crosses a
// threshold.
package alert

import (
	"context"
	"fmt"
)

// Names accepted in configuration
const (
	NotifierNtfy = "ntfy"
	NotifierNATS = "nats"
)

// Alert is one notification
type Alert struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`

	Device    string  `json:"device"`
	Interface string  `json:"interface"`
	InUti     float64 `json:"in_uti"`
	OutUti    float64 `json:"out_uti"`
}

// Notifier delivers alerts
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// Validate checks a notifier name from configuration
func Validate(name string) error {
	switch name {
	case NotifierNtfy, NotifierNATS:
		return nil
	default:
		return fmt.Errorf("unknown notifier %q", name)
	}
}
