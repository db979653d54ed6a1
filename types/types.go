package types

import (
	"context"
	"time"
)

// Protocol represents the management protocol used to reach a device
type Protocol string

const (
	ProtocolCLI  Protocol = "cli"
	ProtocolSNMP Protocol = "snmp"
)

// Vendor represents the network equipment vendor
type Vendor string

const (
	VendorHuawei  Vendor = "huawei"
	VendorJuniper Vendor = "juniper"
	VendorMock    Vendor = "mock" // For testing/simulation
)

// EquipmentConfig contains connection settings for a single device
type EquipmentConfig struct {
	// Name is a unique identifier for this equipment (usually the hostname)
	Name string

	// Vendor is the equipment vendor
	Vendor Vendor

	// Address is the management IP/hostname
	Address string

	// Port is the management port (if not default)
	Port int

	// Protocol is the management protocol
	Protocol Protocol

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Timeout bounds connection establishment
	Timeout time.Duration

	// Metadata contains vendor-specific configuration
	// (snmp_version, snmp_community, cli_mode, ...)
	Metadata map[string]string
}

// Driver is the connection lifecycle shared by the CLI and SNMP drivers
type Driver interface {
	// Connect establishes a connection to the equipment
	Connect(ctx context.Context, config *EquipmentConfig) error

	// Disconnect closes the connection
	Disconnect(ctx context.Context) error

	// IsConnected returns true if connected
	IsConnected() bool
}

// CLIExecutor is implemented by drivers that run CLI commands.
// A connection or authentication problem is returned as an error; a command
// that ran but printed nothing is returned as an empty string.
type CLIExecutor interface {
	// ExecCommand executes a CLI command and returns the output
	ExecCommand(ctx context.Context, command string) (string, error)

	// ExecCommands executes multiple CLI commands sequentially
	ExecCommands(ctx context.Context, commands []string) ([]string, error)
}

// SNMPExecutor is implemented by drivers that support SNMP queries
type SNMPExecutor interface {
	// GetSNMP retrieves a single SNMP value by OID
	GetSNMP(ctx context.Context, oid string) (interface{}, error)

	// BulkGetSNMP retrieves multiple OIDs in one request
	BulkGetSNMP(ctx context.Context, oids []string) (map[string]interface{}, error)
}

// Session is a connected CLI driver handed to a device pipeline
type Session interface {
	Driver
	CLIExecutor
}

// Target is one device selected for polling.
type Target struct {
	// DeviceID is the store identifier (0 when the device is not persisted)
	DeviceID uint

	// InventoryID is the stable identifier assigned by the inventory source
	InventoryID string

	Hostname string
	Address  string
	Vendor   Vendor
	Platform string

	// Metadata carries per-device overrides (ssh_port, cli_mode, ...)
	Metadata map[string]string
}

// Label returns the best human-readable name for the target
func (t Target) Label() string {
	if t.Hostname != "" {
		return t.Hostname
	}
	return t.Address
}
