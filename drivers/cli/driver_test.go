package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nanoncore/nano-telemetry/types"
)

func TestModeFor(t *testing.T) {
	tests := []struct {
		name     string
		vendor   types.Vendor
		metadata map[string]string
		want     Mode
	}{
		{"huawei default", types.VendorHuawei, nil, ModeShell},
		{"juniper default", types.VendorJuniper, nil, ModeExec},
		{"override to shell", types.VendorJuniper, map[string]string{"cli_mode": "shell"}, ModeShell},
		{"override to exec", types.VendorHuawei, map[string]string{"cli_mode": "exec"}, ModeExec},
		{"unknown override ignored", types.VendorHuawei, map[string]string{"cli_mode": "telnet"}, ModeShell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModeFor(tt.vendor, tt.metadata); got != tt.want {
				t.Errorf("ModeFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDriver(t *testing.T) {
	if _, err := NewDriver(nil); err == nil {
		t.Errorf("NewDriver(nil) = nil error")
	}
	if _, err := NewDriver(&types.EquipmentConfig{}); err == nil {
		t.Errorf("NewDriver() without address = nil error")
	}

	cfg := &types.EquipmentConfig{
		Address:  "10.0.0.1",
		Vendor:   types.VendorJuniper,
		Metadata: map[string]string{"ssh_port": "2222"},
	}
	d, err := NewDriver(cfg)
	if err != nil {
		t.Fatalf("NewDriver() error = %v", err)
	}
	if cfg.Port != 2222 {
		t.Errorf("Port = %d, want 2222 from metadata", cfg.Port)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if d.Mode() != ModeExec {
		t.Errorf("Mode() = %q, want exec", d.Mode())
	}
	if d.IsConnected() {
		t.Errorf("IsConnected() before Connect = true")
	}

	_, err = d.ExecCommand(context.Background(), "show interfaces extensive")
	if !errors.Is(err, types.ErrTransport) {
		t.Errorf("ExecCommand() while disconnected = %v, want ErrTransport", err)
	}
}

func TestFrameOutput(t *testing.T) {
	huawei := promptFor("huawei")
	juniper := promptFor("juniper")

	tests := []struct {
		name    string
		output  string
		command string
		want    string
	}{
		{
			name:    "echo and prompt removed",
			output:  "display interface brief\r\nInterface PHY\r\nGE0/0/1 up\r\n\r\n<core-r1>",
			command: "display interface brief",
			want:    "Interface PHY\nGE0/0/1 up",
		},
		{
			name:    "only echo and prompt",
			output:  "display interface brief\n<core-r1>",
			command: "display interface brief",
			want:    "",
		},
		{
			name:    "junos master banner",
			output:  "show interfaces descriptions\nInterface Admin Link Description\net-0/0/9 up up [100Gbps]\n\n{master:0}\nnetops@mx1> ",
			command: "show interfaces descriptions",
			want:    "Interface Admin Link Description\net-0/0/9 up up [100Gbps]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := huawei
			if tt.name == "junos master banner" {
				re = juniper
			}
			if got := frameOutput(tt.output, tt.command, re); got != tt.want {
				t.Errorf("frameOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStderrFailure(t *testing.T) {
	tests := []struct {
		stderr string
		want   string
	}{
		{"", ""},
		{"warning: interface statistics may be stale\n", ""},
		{"\nerror: syntax error, expecting <command>: extensiv\n", "error: syntax error, expecting <command>: extensiv"},
		{"sh: show: not found\n", "sh: show: not found"},
	}

	for _, tt := range tests {
		if got := stderrFailure(tt.stderr); got != tt.want {
			t.Errorf("stderrFailure(%q) = %q, want %q", tt.stderr, got, tt.want)
		}
	}
}

func TestRemaining(t *testing.T) {
	if got := remaining(context.Background()); got != 0 {
		t.Errorf("remaining() without deadline = %v, want 0", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if got := remaining(ctx); got <= 0 || got > time.Minute {
		t.Errorf("remaining() = %v, want within (0, 1m]", got)
	}
}
