package model

import "github.com/nanoncore/nano-telemetry/types"

// NewStatsSample builds a stats row for interfaceID
func NewStatsSample(interfaceID uint, stats *types.Stats) *InterfaceStatsSample {
	return &InterfaceStatsSample{
		InterfaceID: interfaceID,
		InUti:       stats.InUti,
		OutUti:      stats.OutUti,
		InErrors:    stats.InErrors,
		OutErrors:   stats.OutErrors,
		InCRCErrors: stats.InCRCErrors,
	}
}

// NewReadingSample builds a reading row for interfaceID
func NewReadingSample(interfaceID uint, reading *types.Reading) *TransceiverReadingSample {
	return &TransceiverReadingSample{
		InterfaceID:       interfaceID,
		TransceiverStatus: string(reading.TransceiverStatus),
		Temperature:       reading.Temperature,
		Voltage:           reading.Voltage,
		BiasCurrent:       reading.BiasCurrent,
		TxPower:           reading.TxPower,
		RxPower:           reading.RxPower,
	}
}

// NewModuleEvent builds a module identity row for interfaceID
func NewModuleEvent(interfaceID uint, module *types.Module) *TransceiverModuleEvent {
	return &TransceiverModuleEvent{
		InterfaceID:       interfaceID,
		SerialNumber:      module.SerialNumber,
		VendorPartNumber:  module.VendorPartNumber,
		VendorName:        module.VendorName,
		TransceiverType:   module.TransceiverType,
		ConnectorType:     module.ConnectorType,
		WavelengthNM:      module.WavelengthNM,
		TransferDistanceM: module.TransferDistanceM,
		ManufacturingDate: module.ManufacturingDate,
		Thresholds:        module.Thresholds,
	}
}

// StatusUpdates returns the columns to update for status. Fields the command
// did not report are left out so known values are not overwritten with NULL.
func StatusUpdates(status *types.Status) map[string]any {
	updates := make(map[string]any)
	if status == nil {
		return updates
	}
	if status.PhysicalStatus != nil {
		updates["physical_status"] = *status.PhysicalStatus
	}
	if status.ProtocolStatus != nil {
		updates["protocol_status"] = *status.ProtocolStatus
	}
	if status.Description != nil {
		updates["description"] = *status.Description
	}
	return updates
}

// ThresholdUpdates returns the threshold columns present in t
func ThresholdUpdates(t types.Thresholds) map[string]any {
	updates := make(map[string]any)
	set := func(column string, v *float64) {
		if v != nil {
			updates[column] = *v
		}
	}

	set("temp_high", t.TempHigh)
	set("temp_low", t.TempLow)
	set("temp_high_warning", t.TempHighWarning)
	set("temp_low_warning", t.TempLowWarning)
	set("volt_high", t.VoltHigh)
	set("volt_low", t.VoltLow)
	set("volt_high_warning", t.VoltHighWarning)
	set("volt_low_warning", t.VoltLowWarning)
	set("bias_high", t.BiasHigh)
	set("bias_low", t.BiasLow)
	set("bias_high_warning", t.BiasHighWarning)
	set("bias_low_warning", t.BiasLowWarning)
	set("tx_power_high", t.TxPowerHigh)
	set("tx_power_low", t.TxPowerLow)
	set("tx_power_high_warning", t.TxPowerHighWarning)
	set("tx_power_low_warning", t.TxPowerLowWarning)
	set("rx_power_high", t.RxPowerHigh)
	set("rx_power_low", t.RxPowerLow)
	set("rx_power_high_warning", t.RxPowerHighWarning)
	set("rx_power_low_warning", t.RxPowerLowWarning)

	return updates
}
