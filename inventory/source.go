// Package inventory loads the device fleet and syncs it into the store.
package inventory

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/nanoncore/nano-telemetry/config"
	"github.com/nanoncore/nano-telemetry/model"
	"github.com/nanoncore/nano-telemetry/types"
)

// Source names accepted in configuration
const (
	SourceLibreNMS = "librenms"
	SourceFile     = "file"
)

// Entry is one device as reported by an inventory source
type Entry struct {
	InventoryID string            `yaml:"id"`
	Hostname    string            `yaml:"hostname"`
	Address     string            `yaml:"address"`
	Vendor      types.Vendor      `yaml:"vendor"`
	Platform    string            `yaml:"platform"`
	Metadata    map[string]string `yaml:"metadata"`
}

// Device converts the entry into a store row
func (e Entry) Device() *model.Device {
	meta := make(datatypes.JSONMap, len(e.Metadata))
	for k, v := range e.Metadata {
		meta[k] = v
	}
	return &model.Device{
		InventoryID: e.InventoryID,
		Hostname:    e.Hostname,
		Address:     e.Address,
		Vendor:      string(e.Vendor),
		Platform:    e.Platform,
		Metadata:    meta,
	}
}

func (e *Entry) setMeta(key, value string) {
	if value == "" {
		return
	}
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
}

// Source returns the candidate device set
type Source interface {
	Devices(ctx context.Context) ([]Entry, error)
}

// NewSource builds the source selected in cfg
func NewSource(cfg config.InventoryConfig) (Source, error) {
	switch cfg.Source {
	case SourceLibreNMS:
		return NewLibreNMS(cfg.LibreNMS, cfg.Icons), nil
	case SourceFile:
		return NewFile(cfg.File), nil
	default:
		return nil, fmt.Errorf("unknown inventory source %q", cfg.Source)
	}
}

// Filter keeps the entries of one vendor. An empty vendor keeps everything.
func Filter(entries []Entry, vendor types.Vendor) []Entry {
	if vendor == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Vendor == vendor {
			out = append(out, e)
		}
	}
	return out
}
