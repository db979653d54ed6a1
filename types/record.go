package types

import "sort"

// TransceiverStatus is the presence state of an optical module
type TransceiverStatus string

const (
	TransceiverPresent       TransceiverStatus = "present"
	TransceiverAbsent        TransceiverStatus = "absent"
	TransceiverNoDiagnostics TransceiverStatus = "no_diagnostics"
)

// Status is the mutable link state of an interface.
// Nil fields were not present in the command output.
type Status struct {
	PhysicalStatus *string `json:"physical_status,omitempty"`
	ProtocolStatus *string `json:"protocol_status,omitempty"`
	Description    *string `json:"description,omitempty"`
}

// IsEmpty reports whether no status field was extracted
func (s *Status) IsEmpty() bool {
	return s == nil || (s.PhysicalStatus == nil && s.ProtocolStatus == nil && s.Description == nil)
}

// Stats is a poll-time utilization and error counter snapshot
type Stats struct {
	InUti       *float64 `json:"in_uti,omitempty"`
	OutUti      *float64 `json:"out_uti,omitempty"`
	InErrors    *int64   `json:"in_errors,omitempty"`
	OutErrors   *int64   `json:"out_errors,omitempty"`
	InCRCErrors *int64   `json:"in_crc_errors,omitempty"`
}

// Thresholds holds the alarm and warning limits reported by a module
type Thresholds struct {
	TempHigh        *float64 `json:"temp_high,omitempty"`
	TempLow         *float64 `json:"temp_low,omitempty"`
	TempHighWarning *float64 `json:"temp_high_warning,omitempty"`
	TempLowWarning  *float64 `json:"temp_low_warning,omitempty"`

	VoltHigh        *float64 `json:"volt_high,omitempty"`
	VoltLow         *float64 `json:"volt_low,omitempty"`
	VoltHighWarning *float64 `json:"volt_high_warning,omitempty"`
	VoltLowWarning  *float64 `json:"volt_low_warning,omitempty"`

	BiasHigh        *float64 `json:"bias_high,omitempty"`
	BiasLow         *float64 `json:"bias_low,omitempty"`
	BiasHighWarning *float64 `json:"bias_high_warning,omitempty"`
	BiasLowWarning  *float64 `json:"bias_low_warning,omitempty"`

	TxPowerHigh        *float64 `json:"tx_power_high,omitempty"`
	TxPowerLow         *float64 `json:"tx_power_low,omitempty"`
	TxPowerHighWarning *float64 `json:"tx_power_high_warning,omitempty"`
	TxPowerLowWarning  *float64 `json:"tx_power_low_warning,omitempty"`

	RxPowerHigh        *float64 `json:"rx_power_high,omitempty"`
	RxPowerLow         *float64 `json:"rx_power_low,omitempty"`
	RxPowerHighWarning *float64 `json:"rx_power_high_warning,omitempty"`
	RxPowerLowWarning  *float64 `json:"rx_power_low_warning,omitempty"`
}

// IsEmpty reports whether no threshold was extracted
func (t Thresholds) IsEmpty() bool {
	for _, v := range t.values() {
		if v != nil {
			return false
		}
	}
	return true
}

func (t Thresholds) values() []*float64 {
	return []*float64{
		t.TempHigh, t.TempLow, t.TempHighWarning, t.TempLowWarning,
		t.VoltHigh, t.VoltLow, t.VoltHighWarning, t.VoltLowWarning,
		t.BiasHigh, t.BiasLow, t.BiasHighWarning, t.BiasLowWarning,
		t.TxPowerHigh, t.TxPowerLow, t.TxPowerHighWarning, t.TxPowerLowWarning,
		t.RxPowerHigh, t.RxPowerLow, t.RxPowerHighWarning, t.RxPowerLowWarning,
	}
}

// Module is the identity of an installed optical module.
// A nil SerialNumber means no module is installed (or none could be identified).
type Module struct {
	SerialNumber      *string `json:"serial_number"`
	VendorPartNumber  *string `json:"vendor_part_number,omitempty"`
	VendorName        *string `json:"vendor_name,omitempty"`
	TransceiverType   *string `json:"transceiver_type,omitempty"`
	ConnectorType     *string `json:"connector_type,omitempty"`
	WavelengthNM      *string `json:"wavelength_nm,omitempty"`
	TransferDistanceM *string `json:"transfer_distance_m,omitempty"`
	ManufacturingDate *string `json:"manufacturing_date,omitempty"`

	Thresholds
}

// Reading is a poll-time snapshot of dynamic optical values
type Reading struct {
	TransceiverStatus TransceiverStatus `json:"transceiver_status"`
	Temperature       *float64          `json:"temperature,omitempty"`
	Voltage           *float64          `json:"voltage,omitempty"`
	BiasCurrent       *float64          `json:"bias_current,omitempty"`
	TxPower           *float64          `json:"tx_power,omitempty"`
	RxPower           *float64          `json:"rx_power,omitempty"`
}

// Record is everything one parser extracted for one interface.
// Parts the command does not report are nil.
type Record struct {
	Status  *Status  `json:"status,omitempty"`
	Stats   *Stats   `json:"stats,omitempty"`
	Module  *Module  `json:"module,omitempty"`
	Reading *Reading `json:"reading,omitempty"`
}

// Result maps canonical interface names to parsed records
type Result struct {
	Interfaces map[string]*Record `json:"interfaces"`

	// Skipped counts blocks or lines that did not fit the grammar
	Skipped int `json:"skipped"`
}

// NewResult returns an empty result
func NewResult() *Result {
	return &Result{Interfaces: make(map[string]*Record)}
}

// Len returns the number of interfaces in the result
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Interfaces)
}

// Names returns the interface names in lexical order
func (r *Result) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.Interfaces))
	for name := range r.Interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string { return &s }

// Float64Ptr returns a pointer to f
func Float64Ptr(f float64) *float64 { return &f }

// Int64Ptr returns a pointer to i
func Int64Ptr(i int64) *int64 { return &i }
