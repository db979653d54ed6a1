package huawei

import (
	"testing"

	"github.com/nanoncore/nano-telemetry/types"
)

const verboseOutput = `GigabitEthernet0/0/1 transceiver information:
-------------------------------------------------------------
Common information:
  Transceiver Type                      :1000_BASE_LX_SFP
  Connector Type                        :LC
  Wavelength(nm)                        :1310
  Transfer Distance(m)                  :10000(9um)
  Digital Diagnostic Monitoring         :YES
  Vendor Name                           :HUAWEI
  Vendor Part Number                    :34060286
  Ordering Name                         :
-------------------------------------------------------------
Manufacture information:
  Manu. Serial Number                   :ABC123
  Manufacturing Date                    :2015-03-14
  Vendor Name                           :HUAWEI-MFG
-------------------------------------------------------------
Diagnostic information:
  Temperature(°C)                       :33.50
  Temp High Threshold(°C)               :95.00
  Temp Low  Threshold(°C)               :-50.00
  Voltage(V)                            :3.30
  Volt High Threshold(V)                :3.80
  Volt Low  Threshold(V)                :2.70
  Bias Current(mA)                      :7.10|7.22(Lane0|Lane1)
  Bias High Threshold(mA)               :15.00
  Bias Low  Threshold(mA)               :2.00
  RX Power(dBM)                         :-5.20
  RX Power High Warning(dBM)            :0.00
  RX Power Low  Warning(dBM)            :-19.00
  RX Power High Threshold(dBM)          :1.00
  RX Power Low  Threshold(dBM)          :-20.00
  TX Power(dBM)                         :-4.10
  TX Power High Warning(dBM)            :-3.00
  TX Power Low  Warning(dBM)            :-9.50
  TX Power High Threshold(dBM)          :-2.00
  TX Power Low  Threshold(dBM)          :-10.50
-------------------------------------------------------------
Info: Port GigabitEthernet0/0/2, transceiver is absent.
XGigabitEthernet0/0/1 transceiver information:
-------------------------------------------------------------
Common information:
  Transceiver Type                      :10GBASE_LR_SFP
  Connector Type                        :LC
  Vendor Name                           :OEM
  Vendor Part Number                    :SFP-10G-LR
-------------------------------------------------------------
Manufacture information:
  Manu. Serial Number                   :XG0001
  Manufacturing Date                    :-
-------------------------------------------------------------
Error: The transceiver does not support diagnostic information.
Eth-Trunk1 transceiver information:
Error: This interface does not support transceiver.
`

func TestParseTransceiverVerbose(t *testing.T) {
	result := ParseTransceiverVerbose(verboseOutput)

	if result.Len() != 3 {
		t.Fatalf("ParseTransceiverVerbose() parsed %d interfaces, want 3: %v", result.Len(), result.Names())
	}
	if _, ok := result.Interfaces["Eth-Trunk1"]; ok {
		t.Errorf("logical interface should be ignored")
	}

	present := result.Interfaces["GE0/0/1"]
	if present == nil {
		t.Fatalf("GE0/0/1 missing")
	}
	if present.Reading.TransceiverStatus != types.TransceiverPresent {
		t.Errorf("GE0/0/1 status = %q, want present", present.Reading.TransceiverStatus)
	}

	strs := []struct {
		name string
		got  *string
		want string
	}{
		{"serial", present.Module.SerialNumber, "ABC123"},
		{"type", present.Module.TransceiverType, "1000_BASE_LX_SFP"},
		{"connector", present.Module.ConnectorType, "LC"},
		{"wavelength", present.Module.WavelengthNM, "1310"},
		{"distance", present.Module.TransferDistanceM, "10000(9um)"},
		{"part number", present.Module.VendorPartNumber, "34060286"},
		{"vendor from common section", present.Module.VendorName, "HUAWEI"},
		{"date", present.Module.ManufacturingDate, "2015-03-14"},
	}
	for _, tt := range strs {
		if tt.got == nil || *tt.got != tt.want {
			t.Errorf("%s = %v, want %q", tt.name, tt.got, tt.want)
		}
	}

	floats := []struct {
		name string
		got  *float64
		want float64
	}{
		{"temperature", present.Reading.Temperature, 33.5},
		{"voltage", present.Reading.Voltage, 3.3},
		{"bias lane 0", present.Reading.BiasCurrent, 7.10},
		{"rx", present.Reading.RxPower, -5.2},
		{"tx", present.Reading.TxPower, -4.1},
		{"temp high", present.Module.TempHigh, 95},
		{"temp low", present.Module.TempLow, -50},
		{"volt high", present.Module.VoltHigh, 3.8},
		{"volt low", present.Module.VoltLow, 2.7},
		{"bias high", present.Module.BiasHigh, 15},
		{"bias low", present.Module.BiasLow, 2},
		{"rx high", present.Module.RxPowerHigh, 1},
		{"rx low", present.Module.RxPowerLow, -20},
		{"tx high", present.Module.TxPowerHigh, -2},
		{"tx low", present.Module.TxPowerLow, -10.5},
		{"rx high warning", present.Module.RxPowerHighWarning, 0},
		{"rx low warning", present.Module.RxPowerLowWarning, -19},
		{"tx high warning", present.Module.TxPowerHighWarning, -3},
		{"tx low warning", present.Module.TxPowerLowWarning, -9.5},
	}
	for _, tt := range floats {
		if tt.got == nil || *tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if present.Module.TempHighWarning != nil || present.Module.BiasLowWarning != nil {
		t.Errorf("VRP does not print temperature or bias warnings")
	}

	absent := result.Interfaces["GE0/0/2"]
	if absent == nil {
		t.Fatalf("GE0/0/2 missing")
	}
	if absent.Reading.TransceiverStatus != types.TransceiverAbsent {
		t.Errorf("GE0/0/2 status = %q, want absent", absent.Reading.TransceiverStatus)
	}
	if absent.Module == nil || absent.Module.SerialNumber != nil {
		t.Errorf("absent port should carry a module with no serial")
	}

	noDiag := result.Interfaces["XGE0/0/1"]
	if noDiag == nil {
		t.Fatalf("XGE0/0/1 missing")
	}
	if noDiag.Reading.TransceiverStatus != types.TransceiverNoDiagnostics {
		t.Errorf("XGE0/0/1 status = %q, want no_diagnostics", noDiag.Reading.TransceiverStatus)
	}
	if noDiag.Module.SerialNumber == nil || *noDiag.Module.SerialNumber != "XG0001" {
		t.Errorf("XGE0/0/1 serial = %v, want XG0001", noDiag.Module.SerialNumber)
	}
	if noDiag.Module.ManufacturingDate != nil {
		t.Errorf("placeholder date should be absent")
	}
	if noDiag.Reading.Temperature != nil || !noDiag.Module.Thresholds.IsEmpty() {
		t.Errorf("readings and thresholds are only extracted for present modules")
	}
}

func TestParseTransceiverVerboseAbsentNoticeDoesNotOverwrite(t *testing.T) {
	out := `GigabitEthernet0/0/5 transceiver information:
Manufacture information:
  Manu. Serial Number                   :KEEP01
Info: Port GigabitEthernet0/0/5, transceiver is absent.
`
	result := ParseTransceiverVerbose(out)
	rec := result.Interfaces["GE0/0/5"]
	if rec == nil {
		t.Fatalf("GE0/0/5 missing")
	}
	if rec.Reading.TransceiverStatus != types.TransceiverPresent {
		t.Errorf("status = %q, want present", rec.Reading.TransceiverStatus)
	}
	if rec.Module.SerialNumber == nil || *rec.Module.SerialNumber != "KEEP01" {
		t.Errorf("serial = %v, want KEEP01", rec.Module.SerialNumber)
	}
}

func TestParseTransceiverVerboseIdempotent(t *testing.T) {
	a := ParseTransceiverVerbose(verboseOutput)
	b := ParseTransceiverVerbose(verboseOutput)
	if *a.Interfaces["GE0/0/1"].Reading.BiasCurrent != *b.Interfaces["GE0/0/1"].Reading.BiasCurrent {
		t.Errorf("parsing identical text twice should yield identical readings")
	}
	if a.Interfaces["GE0/0/1"] == b.Interfaces["GE0/0/1"] {
		t.Errorf("each parse should return fresh records")
	}
}

func TestParseTransceiverVerboseEmpty(t *testing.T) {
	if got := ParseTransceiverVerbose("<core-r1>"); got.Len() != 0 {
		t.Errorf("ParseTransceiverVerbose() = %d interfaces, want 0", got.Len())
	}
}

func TestParseTransceiverVerboseAbsentNotices(t *testing.T) {
	out := `Info: Port 100GE0/0/1, transceiver is absent.
Info: Port 40GE0/0/2, transceiver is absent.
Info: Port XGigabitEthernet0/0/3, transceiver is absent.
`
	result := ParseTransceiverVerbose(out)

	for _, name := range []string{"100GE0/0/1", "40GE0/0/2", "XGE0/0/3"} {
		t.Run(name, func(t *testing.T) {
			rec := result.Interfaces[name]
			if rec == nil {
				t.Fatalf("ParseTransceiverVerbose() = %v, missing %s", result.Names(), name)
			}
			if rec.Reading.TransceiverStatus != types.TransceiverAbsent {
				t.Errorf("status = %q, want absent", rec.Reading.TransceiverStatus)
			}
		})
	}
}
