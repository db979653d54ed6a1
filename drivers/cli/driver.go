package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

// Mode selects how commands are run over SSH
type Mode string

const (
	// ModeShell drives an interactive shell: prompt detection, pager off
	ModeShell Mode = "shell"

	// ModeExec opens one exec channel per command
	ModeExec Mode = "exec"
)

// noMoreSuffix disables the Junos pager for a single exec command
const noMoreSuffix = " | no-more"

// ModeFor returns the CLI mode for a device: the cli_mode metadata entry if
// set, otherwise exec for Junos and shell for everything else.
func ModeFor(vendor types.Vendor, metadata map[string]string) Mode {
	switch Mode(common.MetadataStringOr(metadata, "", common.MetaCLIMode)) {
	case ModeShell:
		return ModeShell
	case ModeExec:
		return ModeExec
	}
	if vendor == types.VendorJuniper {
		return ModeExec
	}
	return ModeShell
}

// Driver implements types.Session over SSH
type Driver struct {
	config        *types.EquipmentConfig
	mode          Mode
	sshClient     *ssh.Client
	expectSession *ExpectSession
}

// NewDriver creates a new CLI driver
func NewDriver(config *types.EquipmentConfig) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	if config.Port == 0 {
		config.Port = common.MetadataIntOr(config.Metadata, 22, common.MetaSSHPort)
	}

	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Driver{
		config: config,
		mode:   ModeFor(config.Vendor, config.Metadata),
	}, nil
}

// Mode returns the CLI mode in use
func (d *Driver) Mode() Mode {
	return d.mode
}

// Connect establishes the SSH connection, and the interactive shell in shell mode
func (d *Driver) Connect(ctx context.Context, config *types.EquipmentConfig) error {
	if config != nil {
		d.config = config
		d.mode = ModeFor(config.Vendor, config.Metadata)
	}

	// Some devices require keyboard-interactive instead of password
	keyboardInteractive := ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range questions {
			answers[i] = d.config.Password
		}
		return answers, nil
	})

	sshConfig := &ssh.ClientConfig{
		User: d.config.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(d.config.Password),
			keyboardInteractive,
		},
		Timeout:         d.config.Timeout,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // fleet devices are not in a known_hosts file
	}

	target := net.JoinHostPort(d.config.Address, strconv.Itoa(d.config.Port))

	client, err := dialContext(ctx, target, sshConfig)
	if err != nil {
		return fmt.Errorf("%w: failed to dial SSH %s: %w", types.ErrTransport, target, err)
	}

	d.sshClient = client

	if d.mode == ModeExec {
		return nil
	}

	expectSession, err := NewExpectSession(ExpectSessionConfig{
		SSHClient:    client,
		Vendor:       string(d.config.Vendor),
		Timeout:      d.config.Timeout,
		DisablePager: true,
	})
	if err != nil {
		client.Close()
		d.sshClient = nil
		return fmt.Errorf("%w: failed to create expect session: %w", types.ErrTransport, err)
	}

	d.expectSession = expectSession

	return nil
}

// dialContext is ssh.Dial honouring ctx for the TCP connect and handshake
func dialContext(ctx context.Context, addr string, config *ssh.ClientConfig) (*ssh.Client, error) {
	dialer := net.Dialer{Timeout: config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})

	return ssh.NewClient(c, chans, reqs), nil
}

// Disconnect closes the SSH connection
func (d *Driver) Disconnect(ctx context.Context) error {
	if d.expectSession != nil {
		_ = d.expectSession.Close()
		d.expectSession = nil
	}
	if d.sshClient != nil {
		err := d.sshClient.Close()
		d.sshClient = nil
		return err
	}
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	if d.mode == ModeExec {
		return d.sshClient != nil
	}
	return d.sshClient != nil && d.expectSession != nil
}

func (d *Driver) execCommand(ctx context.Context, command string) (string, error) {
	if !d.IsConnected() {
		return "", fmt.Errorf("%w: not connected to device", types.ErrTransport)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrTransport, err)
	}

	if d.mode == ModeExec {
		return d.runExec(ctx, command)
	}

	output, err := d.expectSession.Execute(command, remaining(ctx))
	if err != nil {
		return "", fmt.Errorf("%w: command failed: %w", types.ErrTransport, err)
	}
	return output, nil
}

// remaining returns the time left before ctx expires, or zero without a deadline
func remaining(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	if d := time.Until(deadline); d > 0 {
		return d
	}
	return time.Millisecond
}

// runExec runs one command on its own exec channel
func (d *Driver) runExec(ctx context.Context, command string) (string, error) {
	session, err := d.sshClient.NewSession()
	if err != nil {
		return "", fmt.Errorf("%w: open session: %w", types.ErrTransport, err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	full := command
	if d.config.Vendor == types.VendorJuniper {
		full += noMoreSuffix
	}

	if err := session.Start(full); err != nil {
		return "", fmt.Errorf("%w: start %q: %w", types.ErrTransport, full, err)
	}

	done := make(chan error, 1)
	go func() { done <- session.Wait() }()

	select {
	case <-ctx.Done():
		_ = session.Close()
		return "", fmt.Errorf("%w: command %q: %w", types.ErrTransport, command, ctx.Err())
	case err := <-done:
		if rejected := stderrFailure(stderr.String()); rejected != "" {
			return "", fmt.Errorf("%w: command %q rejected: %s", types.ErrTransport, command, rejected)
		}
		var exitErr *ssh.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: command %q: %w", types.ErrTransport, command, err)
		}
	}

	return common.Sanitize(stdout.String()), nil
}

// stderrFailure returns the first stderr line when it reports a rejected command
func stderrFailure(stderr string) string {
	if !strings.Contains(stderr, "not found") && !strings.Contains(stderr, "error:") {
		return ""
	}
	for _, line := range strings.Split(stderr, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// ExecCommand implements types.CLIExecutor - executes a single CLI command
func (d *Driver) ExecCommand(ctx context.Context, command string) (string, error) {
	return d.execCommand(ctx, command)
}

// ExecCommands implements types.CLIExecutor - executes multiple CLI commands sequentially
func (d *Driver) ExecCommands(ctx context.Context, commands []string) ([]string, error) {
	results := make([]string, 0, len(commands))
	for _, cmd := range commands {
		output, err := d.execCommand(ctx, cmd)
		if err != nil {
			return results, fmt.Errorf("command %q failed: %w", cmd, err)
		}
		results = append(results, output)
	}
	return results, nil
}

var _ types.Session = (*Driver)(nil)
