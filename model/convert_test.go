package model

import (
	"testing"

	"github.com/nanoncore/nano-telemetry/types"
)

func TestStatusUpdates(t *testing.T) {
	tests := []struct {
		name   string
		status *types.Status
		want   map[string]any
	}{
		{"nil", nil, map[string]any{}},
		{
			"physical only",
			&types.Status{PhysicalStatus: types.StringPtr("up")},
			map[string]any{"physical_status": "up"},
		},
		{
			"all fields",
			&types.Status{
				PhysicalStatus: types.StringPtr("down"),
				ProtocolStatus: types.StringPtr("down"),
				Description:    types.StringPtr(""),
			},
			map[string]any{"physical_status": "down", "protocol_status": "down", "description": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusUpdates(tt.status)
			if len(got) != len(tt.want) {
				t.Fatalf("StatusUpdates() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("StatusUpdates()[%s] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestThresholdUpdatesSkipsMissing(t *testing.T) {
	got := ThresholdUpdates(types.Thresholds{
		TempHigh:          types.Float64Ptr(75),
		RxPowerLowWarning: types.Float64Ptr(-13.4),
	})
	if len(got) != 2 {
		t.Fatalf("ThresholdUpdates() = %v, want 2 columns", got)
	}
	if got["temp_high"] != 75.0 || got["rx_power_low_warning"] != -13.4 {
		t.Errorf("ThresholdUpdates() = %v", got)
	}
}

func TestDeviceTarget(t *testing.T) {
	d := Device{
		ID:          7,
		InventoryID: "42",
		Hostname:    "core-r1",
		Address:     "10.0.0.1",
		Vendor:      "juniper",
		Metadata:    map[string]any{"ssh_port": "2222", "rack": 4},
	}
	target := d.Target()
	if target.DeviceID != 7 || target.Vendor != types.VendorJuniper {
		t.Errorf("Target() = %+v", target)
	}
	if target.Metadata["ssh_port"] != "2222" {
		t.Errorf("Target().Metadata[ssh_port] = %q, want 2222", target.Metadata["ssh_port"])
	}
	if _, ok := target.Metadata["rack"]; ok {
		t.Errorf("non-string metadata should be dropped")
	}
}
