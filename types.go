// Package telemetry extracts interface and optical module telemetry from
// network device CLI output.
package telemetry

// Re-export types from the types sub-package
// This allows callers to use telemetry.Result, telemetry.CommandSpec, etc.

import (
	"github.com/nanoncore/nano-telemetry/types"
)

// Type aliases
type (
	Protocol          = types.Protocol
	Vendor            = types.Vendor
	Kind              = types.Kind
	EquipmentConfig   = types.EquipmentConfig
	Driver            = types.Driver
	CLIExecutor       = types.CLIExecutor
	SNMPExecutor      = types.SNMPExecutor
	Session           = types.Session
	Target            = types.Target
	CommandSpec       = types.CommandSpec
	ParseFunc         = types.ParseFunc
	Result            = types.Result
	Record            = types.Record
	Status            = types.Status
	Stats             = types.Stats
	Module            = types.Module
	Reading           = types.Reading
	Thresholds        = types.Thresholds
	TransceiverStatus = types.TransceiverStatus
	Category          = types.Category
)

// Re-export constants
const (
	ProtocolCLI  = types.ProtocolCLI
	ProtocolSNMP = types.ProtocolSNMP

	VendorHuawei  = types.VendorHuawei
	VendorJuniper = types.VendorJuniper
	VendorMock    = types.VendorMock

	KindStatus                  = types.KindStatus
	KindTransceiver             = types.KindTransceiver
	KindTransceiverPerInterface = types.KindTransceiverPerInterface
	KindExtensive               = types.KindExtensive
	KindOptics                  = types.KindOptics
	KindDescriptions            = types.KindDescriptions

	TransceiverPresent       = types.TransceiverPresent
	TransceiverAbsent        = types.TransceiverAbsent
	TransceiverNoDiagnostics = types.TransceiverNoDiagnostics
)
