package huawei

import (
	"regexp"
	"strings"

	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

var (
	transceiverHeaderRegex = regexp.MustCompile(`(?m)^([A-Za-z0-9\-/.]+) transceiver information:`)
	transceiverAbsentRegex = regexp.MustCompile(`Info: Port ([A-Za-z0-9\-]+\d+[\d/.]+), transceiver is absent\.`)

	commonInfoStart = regexp.MustCompile(`Common information:`)
	commonInfoStop  = regexp.MustCompile(`(?m)Manufacture information:|-{3,}`)
)

// transceiverSegmenter splits "display transceiver verbose" into per-port blocks
var transceiverSegmenter = common.Segmenter{
	Header:     transceiverHeaderRegex,
	Notice:     transceiverAbsentRegex,
	Normalizer: Normalizer,
}

// Module identity fields
var (
	fieldTransceiverType   = common.NewField(`Transceiver Type`)
	fieldConnectorType     = common.NewField(`Connector Type`)
	fieldWavelength        = common.NewField(`Wavelength\(nm\)`)
	fieldTransferDistance  = common.NewField(`Transfer Distance\(m\)`)
	fieldVendorPartNumber  = common.NewField(`Vendor Part Number`)
	fieldSerialNumber      = common.NewField(`Manu\. Serial Number`)
	fieldManufacturingDate = common.NewField(`Manufacturing Date`)
	fieldVendorName        = common.NewField(`Vendor Name`)
)

// Diagnostic readings
var (
	fieldTemperature = common.NewField(`Temperature\(\S+\)`)
	fieldVoltage     = common.NewField(`Voltage\(V\)`)

	laneBias    = common.NewLane(`Bias Current\(mA\)`, `Bias High Threshold`)
	laneRxPower = common.NewLane(`RX Power\(dBM\)`, `RX Power High Warning`)
	laneTxPower = common.NewLane(`TX Power\(dBM\)`, `TX Power High Warning`)
)

// Alarm thresholds, plus the Rx/Tx power warning tier VRP prints
var (
	fieldTempHigh = common.NewField(`Temp High Threshold\(\S+\)`)
	fieldTempLow  = common.NewField(`Temp Low\s+Threshold\(\S+\)`)
	fieldVoltHigh = common.NewField(`Volt High Threshold\(V\)`)
	fieldVoltLow  = common.NewField(`Volt Low\s+Threshold\(V\)`)
	fieldBiasHigh = common.NewField(`Bias High Threshold\(mA\)`)
	fieldBiasLow  = common.NewField(`Bias Low\s+Threshold\(mA\)`)

	fieldRxPowerHigh = common.NewField(`RX Power High Threshold\(dBM\)`)
	fieldRxPowerLow  = common.NewField(`RX Power Low\s+Threshold\(dBM\)`)
	fieldTxPowerHigh = common.NewField(`TX Power High Threshold\(dBM\)`)
	fieldTxPowerLow  = common.NewField(`TX Power Low\s+Threshold\(dBM\)`)

	fieldRxPowerHighWarning = common.NewField(`RX Power High Warning\(dBM\)`)
	fieldRxPowerLowWarning  = common.NewField(`RX Power Low\s+Warning\(dBM\)`)
	fieldTxPowerHighWarning = common.NewField(`TX Power High Warning\(dBM\)`)
	fieldTxPowerLowWarning  = common.NewField(`TX Power Low\s+Warning\(dBM\)`)
)

// ParseTransceiverVerbose parses "display transceiver verbose" (and the
// per-interface "display transceiver interface X verbose").
//
// Huawei transceiver verbose output format:
//
//	GigabitEthernet0/0/1 transceiver information:
//	-------------------------------------------------------------
//	Common information:
//	  Transceiver Type                      :1000_BASE_LX_SFP
//	  Vendor Name                           :HUAWEI
//	-------------------------------------------------------------
//	Manufacture information:
//	  Manu. Serial Number                   :ABC123
//	-------------------------------------------------------------
//	Diagnostic information:
//	  Temperature(°C)                       :33.00
//	  Bias Current(mA)                      :7.10|7.10(Lane0|Lane1)
//	Info: Port GigabitEthernet0/0/2, transceiver is absent.
func ParseTransceiverVerbose(output string) *types.Result {
	result := types.NewResult()

	for _, block := range transceiverSegmenter.Split(common.Sanitize(output)) {
		if block.Key == "" {
			result.Skipped++
			continue
		}
		if block.Notice {
			result.Interfaces[block.Key] = &types.Record{
				Module:  &types.Module{},
				Reading: &types.Reading{TransceiverStatus: types.TransceiverAbsent},
			}
			continue
		}
		if record := parseTransceiverBlock(block.Text); record != nil {
			result.Interfaces[block.Key] = record
		}
	}

	return result
}

// parseTransceiverBlock returns nil for ports that cannot hold a transceiver
func parseTransceiverBlock(text string) *types.Record {
	var status types.TransceiverStatus
	switch {
	case strings.Contains(text, "transceiver is absent"):
		status = types.TransceiverAbsent
	case strings.Contains(text, "does not support diagnostic"):
		status = types.TransceiverNoDiagnostics
	case strings.Contains(text, "This interface does not support transceiver"):
		return nil
	default:
		status = types.TransceiverPresent
	}

	module := &types.Module{
		TransceiverType:   fieldTransceiverType.String(text),
		ConnectorType:     fieldConnectorType.String(text),
		WavelengthNM:      fieldWavelength.String(text),
		TransferDistanceM: fieldTransferDistance.String(text),
		VendorPartNumber:  fieldVendorPartNumber.String(text),
		SerialNumber:      fieldSerialNumber.String(text),
		ManufacturingDate: fieldManufacturingDate.String(text),
	}
	if commonInfo, ok := common.Section(text, commonInfoStart, commonInfoStop); ok {
		module.VendorName = fieldVendorName.String(commonInfo)
	}

	reading := &types.Reading{TransceiverStatus: status}

	if status == types.TransceiverPresent {
		reading.Temperature = fieldTemperature.Float(text, "")
		reading.Voltage = fieldVoltage.Float(text, "")
		reading.BiasCurrent = laneBias.Float(text)
		reading.RxPower = laneRxPower.Float(text)
		reading.TxPower = laneTxPower.Float(text)

		module.Thresholds = types.Thresholds{
			TempHigh:           fieldTempHigh.Float(text, ""),
			TempLow:            fieldTempLow.Float(text, ""),
			VoltHigh:           fieldVoltHigh.Float(text, ""),
			VoltLow:            fieldVoltLow.Float(text, ""),
			BiasHigh:           fieldBiasHigh.Float(text, ""),
			BiasLow:            fieldBiasLow.Float(text, ""),
			RxPowerHigh:        fieldRxPowerHigh.Float(text, ""),
			RxPowerLow:         fieldRxPowerLow.Float(text, ""),
			TxPowerHigh:        fieldTxPowerHigh.Float(text, ""),
			TxPowerLow:         fieldTxPowerLow.Float(text, ""),
			RxPowerHighWarning: fieldRxPowerHighWarning.Float(text, ""),
			RxPowerLowWarning:  fieldRxPowerLowWarning.Float(text, ""),
			TxPowerHighWarning: fieldTxPowerHighWarning.Float(text, ""),
			TxPowerLowWarning:  fieldTxPowerLowWarning.Float(text, ""),
		}
	}

	return &types.Record{Module: module, Reading: reading}
}
