// Package model contains the persisted entities of nano-telemetry.
package model

import (
	"time"

	"gorm.io/datatypes"

	"github.com/nanoncore/nano-telemetry/types"
)

// Device is a polled network element. Rows are written by the inventory sync
// and read by every poll.
type Device struct {
	ID          uint   `gorm:"primaryKey"`
	InventoryID string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Hostname    string `gorm:"type:varchar(255);not null"`
	Address     string `gorm:"type:varchar(64);not null"`
	Vendor      string `gorm:"type:varchar(32);index;not null"`
	Platform    string `gorm:"type:varchar(64)"`
	Metadata    datatypes.JSONMap
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Device) TableName() string {
	return "devices"
}

// MetadataStrings returns the string-valued metadata entries
func (d Device) MetadataStrings() map[string]string {
	out := make(map[string]string, len(d.Metadata))
	for k, v := range d.Metadata {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Target converts the row into a poll target
func (d Device) Target() types.Target {
	return types.Target{
		DeviceID:    d.ID,
		InventoryID: d.InventoryID,
		Hostname:    d.Hostname,
		Address:     d.Address,
		Vendor:      types.Vendor(d.Vendor),
		Platform:    d.Platform,
		Metadata:    d.MetadataStrings(),
	}
}

// Interface is identified by (DeviceID, Name), Name being the normalized
// interface name. Status and thresholds are updated in place.
type Interface struct {
	ID             uint    `gorm:"primaryKey"`
	DeviceID       uint    `gorm:"not null;uniqueIndex:idx_device_interface"`
	Device         *Device `gorm:"constraint:OnDelete:CASCADE"`
	Name           string  `gorm:"type:varchar(128);not null;uniqueIndex:idx_device_interface"`
	PhysicalStatus *string `gorm:"type:varchar(16)"`
	ProtocolStatus *string `gorm:"type:varchar(16)"`
	Description    *string `gorm:"type:text"`

	types.Thresholds

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Interface) TableName() string {
	return "network_interfaces"
}

// InterfaceStatsSample is an append-only utilization and error snapshot
type InterfaceStatsSample struct {
	ID          uint       `gorm:"primaryKey"`
	InterfaceID uint       `gorm:"not null;index"`
	Interface   *Interface `gorm:"constraint:OnDelete:CASCADE"`
	InUti       *float64
	OutUti      *float64
	InErrors    *int64
	OutErrors   *int64
	InCRCErrors *int64    `gorm:"column:in_crc_errors"`
	CreatedAt   time.Time `gorm:"index"`
}

func (InterfaceStatsSample) TableName() string {
	return "interface_stats"
}

// TransceiverModuleEvent records the identity of an installed module.
// A row is appended only when the serial number changes.
type TransceiverModuleEvent struct {
	ID                uint       `gorm:"primaryKey"`
	InterfaceID       uint       `gorm:"not null;index"`
	Interface         *Interface `gorm:"constraint:OnDelete:CASCADE"`
	SerialNumber      *string    `gorm:"type:varchar(64)"`
	VendorPartNumber  *string    `gorm:"type:varchar(64)"`
	VendorName        *string    `gorm:"type:varchar(64)"`
	TransceiverType   *string    `gorm:"type:varchar(64)"`
	ConnectorType     *string    `gorm:"type:varchar(32)"`
	WavelengthNM      *string    `gorm:"column:wavelength_nm;type:varchar(32)"`
	TransferDistanceM *string    `gorm:"column:transfer_distance_m;type:varchar(32)"`
	ManufacturingDate *string    `gorm:"type:varchar(32)"`

	types.Thresholds

	CreatedAt time.Time `gorm:"index"`
}

func (TransceiverModuleEvent) TableName() string {
	return "transceiver_modules"
}

// TransceiverReadingSample is an append-only optical readings snapshot
type TransceiverReadingSample struct {
	ID                uint       `gorm:"primaryKey"`
	InterfaceID       uint       `gorm:"not null;index"`
	Interface         *Interface `gorm:"constraint:OnDelete:CASCADE"`
	TransceiverStatus string     `gorm:"type:varchar(16);not null"`
	Temperature       *float64
	Voltage           *float64
	BiasCurrent       *float64
	TxPower           *float64
	RxPower           *float64
	CreatedAt         time.Time `gorm:"index"`
}

func (TransceiverReadingSample) TableName() string {
	return "transceiver_readings"
}

// All lists every entity for migration
func All() []any {
	return []any{
		&Device{},
		&Interface{},
		&InterfaceStatsSample{},
		&TransceiverModuleEvent{},
		&TransceiverReadingSample{},
	}
}
