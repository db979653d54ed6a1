// Package huawei parses Huawei VRP command output.
package huawei

import (
	"strings"
	"time"

	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

// VRP commands
const (
	CommandInterfaceBrief       = "display interface brief"
	CommandTransceiverVerbose   = "display transceiver verbose"
	CommandTransceiverInterface = "display transceiver interface %s verbose"
	CommandInterfaceDescription = "display interface description"
)

// ErrorMarker is printed by VRP when a command is rejected
const ErrorMarker = "Error:"

// Normalizer maps VRP long interface names to the short names used in
// "display interface brief" and "display interface description".
var Normalizer = common.NewNormalizer(
	common.Replacement{Long: "XGigabitEthernet", Short: "XGE"},
	common.Replacement{Long: "GigabitEthernet", Short: "GE"},
	common.Replacement{Long: "Ethernet", Short: "Eth"},
)

// NormalizeName returns the canonical name of a VRP interface
func NormalizeName(name string) string {
	return Normalizer.Normalize(name)
}

// Commands lists the command specs supported for Huawei devices
func Commands() []types.CommandSpec {
	return []types.CommandSpec{
		{
			Vendor:      types.VendorHuawei,
			Kind:        types.KindStatus,
			Command:     CommandInterfaceBrief,
			Timeout:     20 * time.Second,
			MinLines:    1,
			ErrorMarker: ErrorMarker,
			Parse:       ParseInterfaceBrief,
		},
		{
			Vendor:      types.VendorHuawei,
			Kind:        types.KindTransceiver,
			Command:     CommandTransceiverVerbose,
			Timeout:     180 * time.Second,
			Verbose:     true,
			MinLines:    1,
			ErrorMarker: ErrorMarker,
			Identity:    true,
			Parse:       ParseTransceiverVerbose,
		},
		{
			Vendor:          types.VendorHuawei,
			Kind:            types.KindTransceiverPerInterface,
			CommandTemplate: CommandTransceiverInterface,
			Timeout:         20 * time.Second,
			MinLines:        1,
			ErrorMarker:     ErrorMarker,
			Identity:        true,
			Parse:           ParseTransceiverVerbose,
		},
		{
			Vendor:      types.VendorHuawei,
			Kind:        types.KindDescriptions,
			Command:     CommandInterfaceDescription,
			Timeout:     20 * time.Second,
			MinLines:    1,
			ErrorMarker: ErrorMarker,
			Parse:       ParseInterfaceDescription,
		},
	}
}

// cleanState turns "*down" or "up(s)" into "down" / "up"
func cleanState(s string) string {
	s = strings.TrimPrefix(s, "*")
	if i := strings.IndexByte(s, '('); i > 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}
