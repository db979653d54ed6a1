// Package snmp queries the MIB-II system group of inventory devices.
package snmp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

const (
	defaultPort      = 161
	defaultTimeout   = 5 * time.Second
	defaultCommunity = "public"
	defaultRetries   = 1
)

var errNotConnected = errors.New("not connected")

// Driver is a read-only SNMP client for a single device
type Driver struct {
	config *types.EquipmentConfig
	snmp   *gosnmp.GoSNMP
}

// NewDriver creates a new SNMP driver
func NewDriver(config *types.EquipmentConfig) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	if config.Port <= 0 || config.Port > 65535 {
		config.Port = defaultPort
	}

	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	return &Driver{
		config: config,
	}, nil
}

// Version maps a metadata value ("1", "2c", "3") to a gosnmp version.
// Unknown values fall back to v2c.
func Version(v string) gosnmp.SnmpVersion {
	switch v {
	case "1":
		return gosnmp.Version1
	case "3":
		return gosnmp.Version3
	default:
		return gosnmp.Version2c
	}
}

// Connect opens the UDP socket used for queries
func (d *Driver) Connect(ctx context.Context, config *types.EquipmentConfig) error {
	if config != nil {
		d.config = config
	}

	version := Version(common.MetadataStringOr(d.config.Metadata, "2c", common.MetaSNMPVersion))
	community := common.MetadataStringOr(d.config.Metadata, defaultCommunity, common.MetaSNMPCommunity)

	client := &gosnmp.GoSNMP{
		Context:   ctx,
		Target:    d.config.Address,
		Port:      uint16(d.config.Port), //nolint:gosec // validated in NewDriver
		Community: community,
		Version:   version,
		Timeout:   d.config.Timeout,
		Retries:   defaultRetries,
	}

	if version == gosnmp.Version3 {
		client.SecurityModel = gosnmp.UserSecurityModel
		client.SecurityParameters = &gosnmp.UsmSecurityParameters{
			UserName:                 d.config.Username,
			AuthenticationProtocol:   gosnmp.SHA,
			AuthenticationPassphrase: d.config.Password,
			PrivacyProtocol:          gosnmp.AES,
			PrivacyPassphrase:        d.config.Password,
		}
		client.MsgFlags = gosnmp.AuthPriv
	}

	if err := client.Connect(); err != nil {
		return fmt.Errorf("%w: snmp connect %s: %w", types.ErrTransport, d.config.Address, err)
	}

	d.snmp = client
	return nil
}

// Disconnect closes the SNMP socket
func (d *Driver) Disconnect(ctx context.Context) error {
	if d.snmp != nil && d.snmp.Conn != nil {
		err := d.snmp.Conn.Close()
		d.snmp = nil
		return err
	}
	d.snmp = nil
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	return d.snmp != nil
}

// GetSNMP retrieves a single SNMP value
func (d *Driver) GetSNMP(ctx context.Context, oid string) (interface{}, error) {
	results, err := d.BulkGetSNMP(ctx, []string{oid})
	if err != nil {
		return nil, err
	}
	value, ok := common.GetSNMPResult(results, oid)
	if !ok {
		return nil, fmt.Errorf("no result for OID %s", oid)
	}
	return value, nil
}

// BulkGetSNMP retrieves multiple OIDs in one request
func (d *Driver) BulkGetSNMP(ctx context.Context, oids []string) (map[string]interface{}, error) {
	if !d.IsConnected() {
		return nil, fmt.Errorf("%w: %w", types.ErrTransport, errNotConnected)
	}

	result, err := d.snmp.Get(oids)
	if err != nil {
		return nil, fmt.Errorf("%w: snmp get: %w", types.ErrTransport, err)
	}

	results := make(map[string]interface{}, len(result.Variables))
	for _, variable := range result.Variables {
		if value, ok := convertPDU(variable); ok {
			results[variable.Name] = value
		}
	}

	return results, nil
}

// convertPDU normalizes gosnmp value types; missing objects are dropped
func convertPDU(pdu gosnmp.SnmpPDU) (interface{}, bool) {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return nil, false
	case gosnmp.OctetString:
		if b, ok := pdu.Value.([]byte); ok {
			return string(b), true
		}
		return pdu.Value, true
	case gosnmp.Integer:
		if v, ok := pdu.Value.(int); ok {
			return int64(v), true
		}
		return pdu.Value, true
	case gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks, gosnmp.Counter64:
		return gosnmp.ToBigInt(pdu.Value).Uint64(), true
	default:
		return pdu.Value, true
	}
}

var _ types.Driver = (*Driver)(nil)
var _ types.SNMPExecutor = (*Driver)(nil)
