// Package juniper parses Junos command output.
package juniper

import (
	"time"

	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

// Junos commands
const (
	CommandInterfacesExtensive    = "show interfaces extensive"
	CommandInterfacesOptics       = "show interfaces diagnostics optics"
	CommandInterfacesDescriptions = "show interfaces descriptions"
)

// Normalizer only cleans Junos names: they are already short (et-0/0/9, xe-1/0/2)
var Normalizer = common.NewNormalizer()

// NormalizeName returns the canonical name of a Junos interface
func NormalizeName(name string) string {
	return Normalizer.Normalize(name)
}

// Commands lists the command specs supported for Juniper devices
func Commands() []types.CommandSpec {
	return []types.CommandSpec{
		{
			Vendor:   types.VendorJuniper,
			Kind:     types.KindExtensive,
			Command:  CommandInterfacesExtensive,
			Timeout:  180 * time.Second,
			Verbose:  true,
			MinLines: 6,
			Identity: true,
			Parse:    ParseInterfacesExtensive,
		},
		{
			Vendor:   types.VendorJuniper,
			Kind:     types.KindOptics,
			Command:  CommandInterfacesOptics,
			Timeout:  180 * time.Second,
			Verbose:  true,
			MinLines: 6,
			Parse:    ParseDiagnosticsOptics,
		},
		{
			Vendor:   types.VendorJuniper,
			Kind:     types.KindDescriptions,
			Command:  CommandInterfacesDescriptions,
			Timeout:  20 * time.Second,
			MinLines: 1,
			Parse:    ParseInterfaceDescriptions,
		},
	}
}
