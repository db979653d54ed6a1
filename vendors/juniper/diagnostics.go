package juniper

import (
	"regexp"

	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

// Preferred units; Junos prints power in both mW and dBm on one line
const (
	unitCelsius = `degrees C`
	unitVolt    = `V`
	unitMilliA  = `mA`
	unitDBm     = `dBm`
)

var (
	lane0Start = regexp.MustCompile(`(?m)^[ \t]*Lane 0`)
	lane0Stop  = regexp.MustCompile(`(?m)^[ \t]*(?:Lane 1|$)`)
)

var (
	fieldModuleTemperature = common.NewField(`Module temperature`)
	fieldModuleVoltage     = common.NewField(`Module voltage`)
	fieldLaserBias         = common.NewField(`Laser bias current`)
	fieldLaserOutput       = common.NewField(`Laser output power`)
	fieldLaserReceiver     = common.NewField(`Laser receiver power`)
)

// threshold pairs a threshold label with the unit preferred for it
type threshold struct {
	field common.Field
	unit  string
}

func newThreshold(label, unit string) threshold {
	return threshold{field: common.NewField(label), unit: unit}
}

func (t threshold) value(text string) *float64 {
	return t.field.Float(text, t.unit)
}

var (
	tempHigh        = newThreshold(`Module temperature high alarm threshold`, unitCelsius)
	tempLow         = newThreshold(`Module temperature low alarm threshold`, unitCelsius)
	tempHighWarning = newThreshold(`Module temperature high warning threshold`, unitCelsius)
	tempLowWarning  = newThreshold(`Module temperature low warning threshold`, unitCelsius)

	voltHigh        = newThreshold(`Module voltage high alarm threshold`, unitVolt)
	voltLow         = newThreshold(`Module voltage low alarm threshold`, unitVolt)
	voltHighWarning = newThreshold(`Module voltage high warning threshold`, unitVolt)
	voltLowWarning  = newThreshold(`Module voltage low warning threshold`, unitVolt)

	biasHigh        = newThreshold(`Laser bias current high alarm threshold`, unitMilliA)
	biasLow         = newThreshold(`Laser bias current low alarm threshold`, unitMilliA)
	biasHighWarning = newThreshold(`Laser bias current high warning threshold`, unitMilliA)
	biasLowWarning  = newThreshold(`Laser bias current low warning threshold`, unitMilliA)

	txHigh        = newThreshold(`Laser output power high alarm threshold`, unitDBm)
	txLow         = newThreshold(`Laser output power low alarm threshold`, unitDBm)
	txHighWarning = newThreshold(`Laser output power high warning threshold`, unitDBm)
	txLowWarning  = newThreshold(`Laser output power low warning threshold`, unitDBm)

	rxHigh        = newThreshold(`Laser rx power high alarm threshold`, unitDBm)
	rxLow         = newThreshold(`Laser rx power low alarm threshold`, unitDBm)
	rxHighWarning = newThreshold(`Laser rx power high warning threshold`, unitDBm)
	rxLowWarning  = newThreshold(`Laser rx power low warning threshold`, unitDBm)
)

// parseReading extracts the live optical values of a diagnostics section.
// Per-lane values are read from the "Lane 0" sub-block when there is one.
func parseReading(diag string, status types.TransceiverStatus) *types.Reading {
	lane := diag
	if lane0, ok := common.Section(diag, lane0Start, lane0Stop); ok {
		lane = lane0
	}

	return &types.Reading{
		TransceiverStatus: status,
		Temperature:       fieldModuleTemperature.Float(diag, unitCelsius),
		Voltage:           fieldModuleVoltage.Float(diag, unitVolt),
		BiasCurrent:       fieldLaserBias.Float(lane, unitMilliA),
		TxPower:           fieldLaserOutput.Float(lane, unitDBm),
		RxPower:           fieldLaserReceiver.Float(lane, unitDBm),
	}
}

// parseThresholds extracts both the alarm and the warning tiers
func parseThresholds(diag string) types.Thresholds {
	return types.Thresholds{
		TempHigh:        tempHigh.value(diag),
		TempLow:         tempLow.value(diag),
		TempHighWarning: tempHighWarning.value(diag),
		TempLowWarning:  tempLowWarning.value(diag),

		VoltHigh:        voltHigh.value(diag),
		VoltLow:         voltLow.value(diag),
		VoltHighWarning: voltHighWarning.value(diag),
		VoltLowWarning:  voltLowWarning.value(diag),

		BiasHigh:        biasHigh.value(diag),
		BiasLow:         biasLow.value(diag),
		BiasHighWarning: biasHighWarning.value(diag),
		BiasLowWarning:  biasLowWarning.value(diag),

		TxPowerHigh:        txHigh.value(diag),
		TxPowerLow:         txLow.value(diag),
		TxPowerHighWarning: txHighWarning.value(diag),
		TxPowerLowWarning:  txLowWarning.value(diag),

		RxPowerHigh:        rxHigh.value(diag),
		RxPowerLow:         rxLow.value(diag),
		RxPowerHighWarning: rxHighWarning.value(diag),
		RxPowerLowWarning:  rxLowWarning.value(diag),
	}
}
