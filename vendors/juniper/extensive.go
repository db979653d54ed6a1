package juniper

import (
	"regexp"
	"strings"

	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

var (
	physicalHeaderRegex = regexp.MustCompile(`(?m)^Physical interface:[ \t]*([A-Za-z0-9\-./]+)`)

	adminStateRegex = regexp.MustCompile(`Enabled|Administratively down`)
	linkStateRegex  = regexp.MustCompile(`Physical link is (Up|Down)`)

	inputErrorsHeader  = regexp.MustCompile(`(?m)^[ \t]*Input errors:`)
	outputErrorsHeader = regexp.MustCompile(`(?m)^[ \t]*Output errors:`)
	moduleHeader       = regexp.MustCompile(`(?m)^[ \t]*Module:`)
	diagnosticHeader   = regexp.MustCompile(`(?m)^[ \t]*Transceiver diagnostic:`)

	// sectionStop ends a labeled section at a blank line or at the next
	// section label of the extensive dump, whatever its indentation
	sectionStop = regexp.MustCompile(`(?m)^[ \t]*$|^[ \t]*(?:` + strings.Join([]string{
		`Input errors:`,
		`Output errors:`,
		`Module:`,
		`Transceiver diagnostic:`,
		`Traffic statistics:`,
		`Egress queues:`,
		`Ingress queues:`,
		`Queue counters:`,
		`Active alarms`,
		`Active defects`,
		`PCS statistics`,
		`MAC statistics:`,
		`Filter statistics:`,
		`Packet Forwarding Engine`,
		`Interface transmit statistics:`,
		`Logical interface`,
	}, "|") + `)`)
)

// physicalSegmenter splits Junos output on "Physical interface:" headers
var physicalSegmenter = common.Segmenter{
	Header:     physicalHeaderRegex,
	Normalizer: Normalizer,
}

var (
	fieldSpeed       = common.NewField(`Speed`)
	fieldInputBytes  = common.NewField(`Input[ \t]+bytes`)
	fieldOutputBytes = common.NewField(`Output[ \t]+bytes`)

	fieldErrors    = common.NewField(`Errors`)
	fieldCRCErrors = common.NewField(`CRC/Align errors`)

	fieldVendorSerial = common.NewField(`Vendor S/N`)
	fieldVendorPN     = common.NewField(`Vendor P/N`)
	fieldVendorName   = common.NewField(`Vendor Name`)
	fieldConnector    = common.NewField(`Connector`)
	fieldWavelength   = common.NewField(`Wavelength`)
)

// unknownTransceiverType is stored when a module reports no part number
const unknownTransceiverType = "Type Unknown"

// ParseInterfacesExtensive parses "show interfaces extensive".
//
// Junos extensive output format (abridged):
//
//	Physical interface: et-0/0/9, Enabled, Physical link is Up
//	  Link-level type: Ethernet, MTU: 9192, Speed: 100Gbps, ...
//	  Traffic statistics:
//	   Input  bytes  :       1203004005         5000000000 bps
//	   Output bytes  :        980071002         2500000000 bps
//	  Input errors:
//	    Errors: 3, Drops: 0, Framing errors: 0, Runts: 0, ...
//	  Output errors:
//	    Carrier transitions: 1, Errors: 0, Drops: 0, ...
//	  Module:
//	    Vendor Name: FINISAR CORP.
//	    Vendor S/N: XYZ1
//	  Transceiver diagnostic:
//	    Module temperature  :  37 degrees C / 99 degrees F
//	    Laser bias current  :  6.80 mA (Lane0)
//
// Every block yields status and stats. Module and reading follow the same
// presence rules as the Huawei verbose dump, keyed off the "Module:" and
// "Transceiver diagnostic:" sections.
func ParseInterfacesExtensive(output string) *types.Result {
	result := types.NewResult()

	for _, block := range physicalSegmenter.Split(common.Sanitize(output)) {
		if block.Key == "" {
			result.Skipped++
			continue
		}
		if record := parseExtensiveBlock(block.Text); record != nil {
			result.Interfaces[block.Key] = record
		}
	}

	return result
}

// parseExtensiveBlock returns nil for interfaces that cannot hold a transceiver
func parseExtensiveBlock(text string) *types.Record {
	diag, hasDiag := common.Section(text, diagnosticHeader, nil)
	moduleText, hasModule := common.Section(text, moduleHeader, sectionStop)

	if !hasDiag && strings.Contains(text, "transceiver is not supported") {
		return nil
	}

	record := &types.Record{
		Status: parseLinkState(text),
		Stats:  parseCounters(text),
	}

	switch {
	case hasDiag:
		module := parseModuleIdentity(moduleText, hasModule)
		module.Thresholds = parseThresholds(diag)
		record.Module = module
		record.Reading = parseReading(diag, types.TransceiverPresent)
	case hasModule:
		record.Module = &types.Module{
			SerialNumber:     fieldVendorSerial.String(moduleText),
			VendorPartNumber: fieldVendorPN.String(moduleText),
			VendorName:       fieldVendorName.String(moduleText),
		}
		record.Reading = &types.Reading{TransceiverStatus: types.TransceiverNoDiagnostics}
	default:
		record.Module = &types.Module{}
		record.Reading = &types.Reading{TransceiverStatus: types.TransceiverAbsent}
	}

	return record
}

func parseLinkState(text string) *types.Status {
	status := &types.Status{}
	if m := adminStateRegex.FindString(text); m != "" {
		state := "down"
		if m == "Enabled" {
			state = "up"
		}
		status.ProtocolStatus = &state
	}
	if m := linkStateRegex.FindStringSubmatch(text); m != nil {
		status.PhysicalStatus = types.StringPtr(strings.ToLower(m[1]))
	}
	if status.IsEmpty() {
		return nil
	}
	return status
}

// parseCounters reads the error sections and derives utilization from the
// traffic rates and the nominal port speed. Each error section runs from its
// label, header line included, to the next section label or blank line.
func parseCounters(text string) *types.Stats {
	unfolded := common.UnfoldFields(text)

	var inputErrors, outputErrors string
	if s, ok := common.Section(text, inputErrorsHeader, sectionStop); ok {
		inputErrors = common.UnfoldFields(s)
	}
	if s, ok := common.Section(text, outputErrorsHeader, sectionStop); ok {
		outputErrors = common.UnfoldFields(s)
	}

	inUti, outUti := common.Utilization(
		fieldSpeed.String(unfolded),
		fieldInputBytes.Float(unfolded, "bps"),
		fieldOutputBytes.Float(unfolded, "bps"),
	)

	return &types.Stats{
		InUti:       types.Float64Ptr(inUti),
		OutUti:      types.Float64Ptr(outUti),
		InErrors:    types.Int64Ptr(fieldErrors.Counter(inputErrors)),
		OutErrors:   types.Int64Ptr(fieldErrors.Counter(outputErrors)),
		InCRCErrors: types.Int64Ptr(fieldCRCErrors.Counter(inputErrors)),
	}
}

func parseModuleIdentity(moduleText string, found bool) *types.Module {
	module := &types.Module{}
	if !found {
		return module
	}

	module.SerialNumber = fieldVendorSerial.String(moduleText)
	module.VendorPartNumber = fieldVendorPN.String(moduleText)
	module.VendorName = fieldVendorName.String(moduleText)
	module.ConnectorType = fieldConnector.String(moduleText)
	module.WavelengthNM = fieldWavelength.String(moduleText)

	if module.VendorPartNumber != nil {
		module.TransceiverType = types.StringPtr(*module.VendorPartNumber)
	} else {
		module.TransceiverType = types.StringPtr(unknownTransceiverType)
	}
	return module
}
