// Package mock provides a scripted CLI session for pipeline tests and dry runs.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nanoncore/nano-telemetry/types"
)

// Driver simulates a network device CLI.
// Commands are answered from scripted responses matched by substring.
type Driver struct {
	config     *types.EquipmentConfig
	connected  bool
	mu         sync.RWMutex
	responses  []response
	failures   []response
	connectErr error
	delay      time.Duration
	cmdHistory []string
}

type response struct {
	match  string
	output string
	err    error
}

// Option configures a mock driver
type Option func(*Driver)

// WithResponse answers any command containing match with output
func WithResponse(match, output string) Option {
	return func(d *Driver) {
		d.responses = append(d.responses, response{match: match, output: output})
	}
}

// WithCommandError fails any command containing match with err
func WithCommandError(match string, err error) Option {
	return func(d *Driver) {
		d.failures = append(d.failures, response{match: match, err: err})
	}
}

// WithConnectError makes Connect fail
func WithConnectError(err error) Option {
	return func(d *Driver) {
		d.connectErr = err
	}
}

// WithDelay makes every command take d before answering
func WithDelay(delay time.Duration) Option {
	return func(d *Driver) {
		d.delay = delay
	}
}

// NewDriver creates a new mock driver
func NewDriver(config *types.EquipmentConfig, opts ...Option) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	d := &Driver{
		config:     config,
		cmdHistory: make([]string, 0),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Connect simulates connecting to equipment
func (d *Driver) Connect(ctx context.Context, config *types.EquipmentConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if config != nil {
		d.config = config
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", types.ErrTransport, err)
	}
	d.recordCommand("connect")
	if d.connectErr != nil {
		return fmt.Errorf("%w: %w", types.ErrTransport, d.connectErr)
	}

	d.connected = true
	return nil
}

// Disconnect closes the simulated connection
func (d *Driver) Disconnect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.connected = false
	d.recordCommand("disconnect")

	return nil
}

// IsConnected returns connection status
func (d *Driver) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// ExecCommand answers command from the scripted responses.
// Unknown commands return empty output.
func (d *Driver) ExecCommand(ctx context.Context, command string) (string, error) {
	d.mu.Lock()
	if !d.connected {
		d.mu.Unlock()
		return "", fmt.Errorf("%w: not connected to device", types.ErrTransport)
	}
	d.recordCommand(command)
	delay := d.delay
	d.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %s: %w", types.ErrTransport, command, ctx.Err())
		}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, f := range d.failures {
		if strings.Contains(command, f.match) {
			return "", fmt.Errorf("%w: %s: %w", types.ErrTransport, command, f.err)
		}
	}
	for _, r := range d.responses {
		if strings.Contains(command, r.match) {
			return r.output, nil
		}
	}
	return "", nil
}

// ExecCommands executes multiple commands sequentially
func (d *Driver) ExecCommands(ctx context.Context, commands []string) ([]string, error) {
	outputs := make([]string, len(commands))
	for i, cmd := range commands {
		output, err := d.ExecCommand(ctx, cmd)
		if err != nil {
			return outputs[:i], err
		}
		outputs[i] = output
	}
	return outputs, nil
}

// GetCommandHistory returns the command history (for testing)
func (d *Driver) GetCommandHistory() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	history := make([]string, len(d.cmdHistory))
	copy(history, d.cmdHistory)
	return history
}

func (d *Driver) recordCommand(cmd string) {
	d.cmdHistory = append(d.cmdHistory, cmd)
}

var _ types.Session = (*Driver)(nil)
