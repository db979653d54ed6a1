package juniper

import (
	"testing"

	"github.com/nanoncore/nano-telemetry/types"
)

const extensiveOutput = `Physical interface: et-0/0/9, Enabled, Physical link is Up
  Interface index: 159, SNMP ifIndex: 527, Generation: 162
  Link-level type: Ethernet, MTU: 9192, LAN-PHY mode, Speed: 100Gbps, BPDU Error: None, Loopback: Disabled
  Device flags   : Present Running
  Traffic statistics:
   Input  bytes  :       1203004005             5000000000 bps
   Output bytes  :        980071002             2500000000 bps
  Input errors:
    Errors: 3, Drops: 0, Framing errors: 0, Runts: 0, Policed discards: 0, L3 incompletes: 0
  Output errors:
    Carrier transitions: 1, Errors: 0, Drops: 0, Collisions: 0, Aged packets: 0
  Module:
    Vendor Name: FINISAR CORP.
    Vendor P/N: FTLC9551REPM
    Vendor S/N: XYZ1
    Connector: LC
    Wavelength: 1310 nm
  Transceiver diagnostic:
    Module temperature                        :  37 degrees C / 99 degrees F
    Module voltage                            :  3.2990 V
    Laser bias current                        :  6.80 mA (Lane0)
    Laser output power                        :  1.116 mW / 0.48 dBm
    Laser receiver power                      :  0.889 mW / -0.51 dBm
    Module temperature high alarm threshold   :  75 degrees C / 167 degrees F
    Module temperature low alarm threshold    :  -5 degrees C / 23 degrees F
    Module temperature high warning threshold :  70 degrees C / 158 degrees F
    Module temperature low warning threshold  :  0 degrees C / 32 degrees F
    Laser output power high alarm threshold   :  2.2387 mW / 3.50 dBm
    Laser rx power low warning threshold      :  0.0457 mW / -13.40 dBm

Physical interface: xe-0/0/1, Administratively down, Physical link is Down
  Link-level type: Ethernet, MTU: 1514, Speed: 10Gbps, Loopback: None
  Traffic statistics:
   Input  bytes  :                0                    0 bps
   Output bytes  :                0                    0 bps
  Input errors:
    Errors: 0, Drops: 0, Framing errors: 0
  Output errors:
    Carrier transitions: 0, Errors: 2, Drops: 0
  Module:
    Vendor Name: OEM
    Vendor P/N: SFP-10G-LR
    Vendor S/N: NODIAG7

Physical interface: xe-0/0/2, Enabled, Physical link is Down
  Link-level type: Ethernet, MTU: 1514, Speed: 10Gbps
  Input errors:
    Errors: 0, Drops: 0
  Output errors:
    Carrier transitions: 0, Errors: 0, Drops: 0

Physical interface: em0, Enabled, Physical link is Up
  Link-level type: Ethernet, MTU: 1514, Speed: 1000mbps
  The transceiver is not supported on this interface
`

func TestParseInterfacesExtensive(t *testing.T) {
	result := ParseInterfacesExtensive(extensiveOutput)

	if result.Len() != 3 {
		t.Fatalf("ParseInterfacesExtensive() parsed %v, want 3 interfaces", result.Names())
	}
	if _, ok := result.Interfaces["em0"]; ok {
		t.Errorf("interface without transceiver support should be ignored")
	}
}

func TestParseInterfacesExtensivePresent(t *testing.T) {
	rec := ParseInterfacesExtensive(extensiveOutput).Interfaces["et-0/0/9"]
	if rec == nil {
		t.Fatalf("et-0/0/9 missing")
	}

	if got := *rec.Status.PhysicalStatus; got != "up" {
		t.Errorf("physical_status = %q, want up", got)
	}
	if got := *rec.Status.ProtocolStatus; got != "up" {
		t.Errorf("protocol_status = %q, want up", got)
	}

	if got := *rec.Stats.InErrors; got != 3 {
		t.Errorf("in_errors = %d, want 3", got)
	}
	if got := *rec.Stats.OutErrors; got != 0 {
		t.Errorf("out_errors = %d, want 0", got)
	}
	if got := *rec.Stats.InCRCErrors; got != 0 {
		t.Errorf("in_crc_errors = %d, want 0", got)
	}
	if got := *rec.Stats.InUti; got != 5.0 {
		t.Errorf("in_uti = %v, want 5", got)
	}
	if got := *rec.Stats.OutUti; got != 2.5 {
		t.Errorf("out_uti = %v, want 2.5", got)
	}

	if rec.Reading.TransceiverStatus != types.TransceiverPresent {
		t.Errorf("transceiver_status = %q, want present", rec.Reading.TransceiverStatus)
	}

	floats := []struct {
		name string
		got  *float64
		want float64
	}{
		{"temperature", rec.Reading.Temperature, 37},
		{"voltage", rec.Reading.Voltage, 3.299},
		{"bias_current", rec.Reading.BiasCurrent, 6.80},
		{"tx_power prefers dBm", rec.Reading.TxPower, 0.48},
		{"rx_power prefers dBm", rec.Reading.RxPower, -0.51},
		{"temp_high", rec.Module.TempHigh, 75},
		{"temp_low", rec.Module.TempLow, -5},
		{"temp_high_warning", rec.Module.TempHighWarning, 70},
		{"temp_low_warning", rec.Module.TempLowWarning, 0},
		{"tx_power_high", rec.Module.TxPowerHigh, 3.5},
		{"rx_power_low_warning", rec.Module.RxPowerLowWarning, -13.4},
	}
	for _, tt := range floats {
		if tt.got == nil || *tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	strs := []struct {
		name string
		got  *string
		want string
	}{
		{"serial_number", rec.Module.SerialNumber, "XYZ1"},
		{"vendor_part_number", rec.Module.VendorPartNumber, "FTLC9551REPM"},
		{"vendor_name", rec.Module.VendorName, "FINISAR CORP."},
		{"transceiver_type", rec.Module.TransceiverType, "FTLC9551REPM"},
		{"connector_type", rec.Module.ConnectorType, "LC"},
		{"wavelength_nm", rec.Module.WavelengthNM, "1310 nm"},
	}
	for _, tt := range strs {
		if tt.got == nil || *tt.got != tt.want {
			t.Errorf("%s = %v, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestParseInterfacesExtensiveNoDiagnostics(t *testing.T) {
	rec := ParseInterfacesExtensive(extensiveOutput).Interfaces["xe-0/0/1"]
	if rec == nil {
		t.Fatalf("xe-0/0/1 missing")
	}
	if got := *rec.Status.ProtocolStatus; got != "down" {
		t.Errorf("protocol_status = %q, want down", got)
	}
	if got := *rec.Status.PhysicalStatus; got != "down" {
		t.Errorf("physical_status = %q, want down", got)
	}
	if got := *rec.Stats.OutErrors; got != 2 {
		t.Errorf("out_errors = %d, want 2", got)
	}
	if got := *rec.Stats.InUti; got != 0 {
		t.Errorf("in_uti = %v, want 0", got)
	}
	if rec.Reading.TransceiverStatus != types.TransceiverNoDiagnostics {
		t.Errorf("transceiver_status = %q, want no_diagnostics", rec.Reading.TransceiverStatus)
	}
	if rec.Module.SerialNumber == nil || *rec.Module.SerialNumber != "NODIAG7" {
		t.Errorf("serial_number = %v, want NODIAG7", rec.Module.SerialNumber)
	}
	if rec.Module.TransceiverType != nil || !rec.Module.Thresholds.IsEmpty() {
		t.Errorf("no_diagnostics modules carry identity only")
	}
	if rec.Reading.Temperature != nil {
		t.Errorf("no_diagnostics modules have no readings")
	}
}

func TestParseInterfacesExtensiveAbsent(t *testing.T) {
	rec := ParseInterfacesExtensive(extensiveOutput).Interfaces["xe-0/0/2"]
	if rec == nil {
		t.Fatalf("xe-0/0/2 missing")
	}
	if rec.Reading.TransceiverStatus != types.TransceiverAbsent {
		t.Errorf("transceiver_status = %q, want absent", rec.Reading.TransceiverStatus)
	}
	if rec.Module == nil || rec.Module.SerialNumber != nil {
		t.Errorf("absent port should carry a module with no serial")
	}
	if rec.Stats == nil || *rec.Stats.InUti != 0 || *rec.Stats.OutUti != 0 {
		t.Errorf("missing rates should yield zero utilization, got %+v", rec.Stats)
	}
}

func TestParseInterfacesExtensiveLaneZero(t *testing.T) {
	out := `Physical interface: et-0/0/1, Enabled, Physical link is Up
  Link-level type: Ethernet, MTU: 9192, Speed: 100Gbps
  Module:
    Vendor S/N: LANES1
  Transceiver diagnostic:
    Module temperature                        :  40 degrees C / 104 degrees F
    Lane 0
      Laser bias current                      :  7.10 mA
      Laser output power                      :  1.000 mW / 0.00 dBm
      Laser receiver power                    :  0.500 mW / -3.01 dBm
    Lane 1
      Laser bias current                      :  9.99 mA
      Laser output power                      :  2.000 mW / 3.01 dBm
      Laser receiver power                    :  0.250 mW / -6.02 dBm
`
	rec := ParseInterfacesExtensive(out).Interfaces["et-0/0/1"]
	if rec == nil {
		t.Fatalf("et-0/0/1 missing")
	}

	tests := []struct {
		name string
		got  *float64
		want float64
	}{
		{"bias", rec.Reading.BiasCurrent, 7.10},
		{"tx", rec.Reading.TxPower, 0},
		{"rx", rec.Reading.RxPower, -3.01},
	}
	for _, tt := range tests {
		if tt.got == nil || *tt.got != tt.want {
			t.Errorf("lane 0 %s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if *rec.Module.TransceiverType != unknownTransceiverType {
		t.Errorf("transceiver_type = %q, want %q", *rec.Module.TransceiverType, unknownTransceiverType)
	}
}

func TestParseInterfacesExtensiveEmpty(t *testing.T) {
	tests := []string{"", "error: syntax error, expecting <command>", "{master:0}"}
	for _, in := range tests {
		if got := ParseInterfacesExtensive(in); got.Len() != 0 {
			t.Errorf("ParseInterfacesExtensive(%q) = %v, want none", in, got.Names())
		}
	}
}

func TestParseInterfacesExtensiveSectionLayouts(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		inErrors  int64
		outErrors int64
		serial    string
	}{
		{
			name: "counters on the section line",
			output: `Physical interface: et-0/0/3, Enabled, Physical link is Up
  Link-level type: Ethernet, MTU: 9192, Speed: 100Gbps
  Input errors: Errors: 3, Drops: 0, Framing errors: 0
  Output errors: Carrier transitions: 1, Errors: 2, Drops: 0
  Module:
    Vendor S/N: INLINE1
  Transceiver diagnostic:
    Module temperature                        :  37 degrees C / 99 degrees F
`,
			inErrors:  3,
			outErrors: 2,
			serial:    "INLINE1",
		},
		{
			name: "flush-left sections",
			output: `Physical interface: et-0/0/9, Enabled, Physical link is Up
Link-level type: Ethernet, MTU: 9192, Speed: 100Gbps
Input errors:
Errors: 3, Drops: 0, Framing errors: 0
Output errors:
Carrier transitions: 1, Errors: 0, Drops: 0
Module:
Vendor S/N: XYZ1
Transceiver diagnostic:
Module temperature : 37 degrees C / 99 degrees F
Laser bias current : 6.80 mA (Lane0)
`,
			inErrors:  3,
			outErrors: 0,
			serial:    "XYZ1",
		},
		{
			name: "sections followed by queue statistics",
			output: `Physical interface: xe-0/0/4, Enabled, Physical link is Up
  Link-level type: Ethernet, MTU: 1514, Speed: 10Gbps
  Input errors:
    Errors: 0, Drops: 0
  Output errors:
    Carrier transitions: 0, Errors: 7, Drops: 0
  Egress queues: 8 supported, 4 in use
  Queue counters:       Queued packets  Transmitted packets      Dropped packets
    0                                0                    0                    0
  Module:
    Vendor S/N: QUEUE1
    Errors: 99
  Transceiver diagnostic:
    Module temperature                        :  30 degrees C / 86 degrees F
`,
			inErrors:  0,
			outErrors: 7,
			serial:    "QUEUE1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseInterfacesExtensive(tt.output)
			if result.Len() != 1 {
				t.Fatalf("ParseInterfacesExtensive() parsed %v, want 1 interface", result.Names())
			}
			var rec *types.Record
			for _, r := range result.Interfaces {
				rec = r
			}

			if got := *rec.Stats.InErrors; got != tt.inErrors {
				t.Errorf("in_errors = %d, want %d", got, tt.inErrors)
			}
			if got := *rec.Stats.OutErrors; got != tt.outErrors {
				t.Errorf("out_errors = %d, want %d", got, tt.outErrors)
			}
			if rec.Module == nil || rec.Module.SerialNumber == nil || *rec.Module.SerialNumber != tt.serial {
				t.Errorf("serial_number = %v, want %q", rec.Module.SerialNumber, tt.serial)
			}
			if rec.Reading.TransceiverStatus != types.TransceiverPresent {
				t.Errorf("transceiver_status = %q, want present", rec.Reading.TransceiverStatus)
			}
		})
	}
}
