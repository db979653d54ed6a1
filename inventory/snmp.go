package inventory

import (
	"context"
	"fmt"

	telemetry "github.com/nanoncore/nano-telemetry"
	"github.com/nanoncore/nano-telemetry/config"
	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

// Metadata keys filled by SNMP enrichment
const (
	MetaSysDescr    = "sys_descr"
	MetaSysLocation = "sys_location"
	MetaSysUpTime   = "sys_uptime"
)

// Enricher adds details to an inventory entry before it is stored
type Enricher interface {
	Enrich(ctx context.Context, entry *Entry) error
}

// QueryFunc fetches OIDs from a device
type QueryFunc func(ctx context.Context, entry Entry, oids []string) (map[string]interface{}, error)

// SNMPEnricher replaces the hostname with sysName and records the system
// description, location and uptime
type SNMPEnricher struct {
	query QueryFunc
}

func NewSNMPEnricher(cfg config.SNMPConfig) *SNMPEnricher {
	return &SNMPEnricher{query: snmpQuery(cfg)}
}

// NewSNMPEnricherWithQuery uses query instead of a live SNMP session
func NewSNMPEnricherWithQuery(query QueryFunc) *SNMPEnricher {
	return &SNMPEnricher{query: query}
}

func (s *SNMPEnricher) Enrich(ctx context.Context, entry *Entry) error {
	results, err := s.query(ctx, *entry, common.SystemOIDs)
	if err != nil {
		return err
	}
	applySystem(entry, results)
	return nil
}

func applySystem(entry *Entry, results map[string]interface{}) {
	if v, ok := common.GetSNMPResult(results, common.OIDSysName); ok {
		if name, ok := common.ParseStringSNMPValue(v); ok {
			entry.Hostname = name
		}
	}
	if v, ok := common.GetSNMPResult(results, common.OIDSysDescr); ok {
		if descr, ok := common.ParseStringSNMPValue(v); ok {
			entry.setMeta(MetaSysDescr, descr)
		}
	}
	if v, ok := common.GetSNMPResult(results, common.OIDSysLocation); ok {
		if location, ok := common.ParseStringSNMPValue(v); ok {
			entry.setMeta(MetaSysLocation, location)
		}
	}
	if v, ok := common.GetSNMPResult(results, common.OIDSysUpTime); ok {
		if uptime, ok := common.ParseTimeTicks(v); ok {
			entry.setMeta(MetaSysUpTime, uptime.String())
		}
	}
}

func snmpQuery(cfg config.SNMPConfig) QueryFunc {
	return func(ctx context.Context, entry Entry, oids []string) (map[string]interface{}, error) {
		meta := map[string]string{
			common.MetaSNMPVersion:   common.MetadataStringOr(entry.Metadata, cfg.Version, common.MetaSNMPVersion),
			common.MetaSNMPCommunity: common.MetadataStringOr(entry.Metadata, cfg.Community, common.MetaSNMPCommunity),
		}
		equipment := &types.EquipmentConfig{
			Name:     entry.Hostname,
			Vendor:   entry.Vendor,
			Address:  entry.Address,
			Port:     cfg.Port,
			Protocol: types.ProtocolSNMP,
			Timeout:  cfg.Timeout,
			Metadata: meta,
		}

		d, err := telemetry.NewDriver(entry.Vendor, types.ProtocolSNMP, equipment)
		if err != nil {
			return nil, err
		}
		querier, ok := d.(types.SNMPExecutor)
		if !ok {
			return nil, fmt.Errorf("%s driver cannot run SNMP queries", entry.Vendor)
		}
		if err := d.Connect(ctx, nil); err != nil {
			return nil, err
		}
		defer func() { _ = d.Disconnect(ctx) }()

		results, err := querier.BulkGetSNMP(ctx, oids)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", entry.Address, err)
		}
		return results, nil
	}
}
