package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/nanoncore/nano-telemetry/config"
)

// NATS publishes alerts as JSON on a JetStream subject
type NATS struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	subject string
}

// NewNATS connects to cfg.URL and makes sure the alert stream exists
func NewNATS(cfg config.NATSConfig, opts ...nats.Option) (*NATS, error) {
	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if cfg.Stream != "" {
		if _, err := js.StreamInfo(cfg.Stream); errors.Is(err, nats.ErrStreamNotFound) {
			_, err = js.AddStream(&nats.StreamConfig{
				Name:     cfg.Stream,
				Subjects: []string{cfg.Subject},
			})
			if err != nil {
				nc.Close()
				return nil, fmt.Errorf("create stream %s: %w", cfg.Stream, err)
			}
		} else if err != nil {
			nc.Close()
			return nil, fmt.Errorf("stream %s: %w", cfg.Stream, err)
		}
	}

	return &NATS{conn: nc, js: js, subject: cfg.Subject}, nil
}

func (n *NATS) Notify(ctx context.Context, alert Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	if _, err := n.js.Publish(n.subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish %s: %w", n.subject, err)
	}
	return nil
}

// Close drains the connection
func (n *NATS) Close() {
	if n == nil {
		return
	}
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
	}
}
