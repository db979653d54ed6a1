package juniper

import (
	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

// ParseDiagnosticsOptics parses "show interfaces diagnostics optics".
//
// Junos optics output format:
//
//	Physical interface: et-0/0/0
//	    Module temperature                        :  38 degrees C / 100 degrees F
//	    Module voltage                            :  3.2990 V
//	    Module temperature high alarm threshold   :  75 degrees C / 167 degrees F
//	    ...
//	    Lane 0
//	      Laser bias current                      :  6.800 mA
//	      Laser output power                      :  1.116 mW / 0.48 dBm
//	      Laser receiver power                    :  0.889 mW / -0.51 dBm
//
// The dump carries no module identity: records hold readings and thresholds
// only. A port is present when a temperature or receiver power was printed.
func ParseDiagnosticsOptics(output string) *types.Result {
	result := types.NewResult()

	for _, block := range physicalSegmenter.Split(common.Sanitize(output)) {
		if block.Key == "" {
			result.Skipped++
			continue
		}

		reading := parseReading(block.Text, types.TransceiverNoDiagnostics)
		if reading.Temperature != nil || reading.RxPower != nil {
			reading.TransceiverStatus = types.TransceiverPresent
		}

		result.Interfaces[block.Key] = &types.Record{
			Module:  &types.Module{Thresholds: parseThresholds(block.Text)},
			Reading: reading,
		}
	}

	return result
}
