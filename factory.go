package telemetry

import (
	"context"
	"fmt"
	"sort"

	"github.com/nanoncore/nano-telemetry/drivers/cli"
	"github.com/nanoncore/nano-telemetry/drivers/mock"
	"github.com/nanoncore/nano-telemetry/drivers/snmp"
	"github.com/nanoncore/nano-telemetry/vendors/common"
	"github.com/nanoncore/nano-telemetry/vendors/huawei"
	"github.com/nanoncore/nano-telemetry/vendors/juniper"
)

// ParserMatrix defines which command kinds each vendor supports
var ParserMatrix = buildMatrix(huawei.Commands(), juniper.Commands())

// DefaultKinds is the poll kind used when none is requested
var DefaultKinds = map[Vendor]Kind{
	VendorHuawei:  KindStatus,
	VendorJuniper: KindExtensive,
}

func buildMatrix(specs ...[]CommandSpec) map[Vendor]map[Kind]CommandSpec {
	matrix := make(map[Vendor]map[Kind]CommandSpec)
	for _, group := range specs {
		for _, spec := range group {
			if matrix[spec.Vendor] == nil {
				matrix[spec.Vendor] = make(map[Kind]CommandSpec)
			}
			matrix[spec.Vendor][spec.Kind] = spec
		}
	}
	return matrix
}

// NewParser returns the command spec for a vendor and poll kind. An empty
// kind selects the vendor's default.
func NewParser(vendor Vendor, kind Kind) (CommandSpec, error) {
	kinds, ok := ParserMatrix[vendor]
	if !ok {
		return CommandSpec{}, fmt.Errorf("unsupported vendor: %s", vendor)
	}

	if kind == "" {
		kind = DefaultKinds[vendor]
	}

	spec, ok := kinds[kind]
	if !ok {
		return CommandSpec{}, fmt.Errorf("vendor %s does not support kind %s", vendor, kind)
	}
	return spec, nil
}

// NormalizeInterfaceName returns the canonical interface name for a vendor
func NormalizeInterfaceName(vendor Vendor, name string) string {
	switch vendor {
	case VendorHuawei:
		return huawei.NormalizeName(name)
	case VendorJuniper:
		return juniper.NormalizeName(name)
	default:
		return common.NewNormalizer().Normalize(name)
	}
}

// NewDriver creates a driver for the given protocol. The mock vendor always
// gets the scripted mock driver.
func NewDriver(vendor Vendor, protocol Protocol, config *EquipmentConfig) (Driver, error) {
	var (
		driver Driver
		err    error
	)

	if vendor == VendorMock {
		driver, err = mock.NewDriver(config)
		if err != nil {
			return nil, err
		}
		return driver, nil
	}

	if _, ok := ParserMatrix[vendor]; !ok {
		return nil, fmt.Errorf("unsupported vendor: %s", vendor)
	}

	if protocol == "" {
		protocol = ProtocolCLI
	}

	switch protocol {
	case ProtocolCLI:
		driver, err = cli.NewDriver(config)
	case ProtocolSNMP:
		driver, err = snmp.NewDriver(config)
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", protocol)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s driver: %w", protocol, err)
	}
	return driver, nil
}

// Dial opens a CLI session to config's device
func Dial(ctx context.Context, config *EquipmentConfig) (Session, error) {
	driver, err := NewDriver(config.Vendor, ProtocolCLI, config)
	if err != nil {
		return nil, err
	}
	session, ok := driver.(Session)
	if !ok {
		return nil, fmt.Errorf("%s driver cannot run CLI commands", config.Vendor)
	}
	if err := session.Connect(ctx, config); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSupportedVendors returns a list of all supported vendors
func GetSupportedVendors() []Vendor {
	vendors := make([]Vendor, 0, len(ParserMatrix))
	for v := range ParserMatrix {
		vendors = append(vendors, v)
	}
	sort.Slice(vendors, func(i, j int) bool { return vendors[i] < vendors[j] })
	return vendors
}

// GetSupportedKinds returns the poll kinds of a vendor
func GetSupportedKinds(vendor Vendor) []Kind {
	kinds := make([]Kind, 0, len(ParserMatrix[vendor]))
	for k := range ParserMatrix[vendor] {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
