// Package store persists devices, interfaces and telemetry samples with gorm.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/nanoncore/nano-telemetry/config"
	"github.com/nanoncore/nano-telemetry/model"
	"github.com/nanoncore/nano-telemetry/types"
)

// Store is safe for concurrent use by many device pipelines
type Store struct {
	db *gorm.DB
}

// Open connects to the database described by cfg
func Open(cfg config.DBConfig) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqldb, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "postgres" {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	} else {
		// SQLite allows a single writer
		sqldb.SetMaxOpenConns(1)
	}

	return &Store{db: gdb}, nil
}

// New wraps an existing gorm handle
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the schema
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqldb, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqldb.Close()
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", types.ErrPersistence, op, err)
}

// UpsertDevice inserts d or updates the row with the same inventory id.
// On return d carries the stored ID.
func (s *Store) UpsertDevice(ctx context.Context, d *model.Device) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "inventory_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"hostname", "address", "vendor", "platform", "metadata", "updated_at"}),
	}).Create(d).Error
	if err != nil {
		return persistenceError("upsert device "+d.InventoryID, err)
	}

	var stored model.Device
	if err := s.db.WithContext(ctx).Where("inventory_id = ?", d.InventoryID).First(&stored).Error; err != nil {
		return persistenceError("reload device "+d.InventoryID, err)
	}
	d.ID = stored.ID
	d.CreatedAt = stored.CreatedAt
	return nil
}

// Devices lists devices, optionally restricted to one vendor
func (s *Store) Devices(ctx context.Context, vendor types.Vendor) ([]model.Device, error) {
	query := s.db.WithContext(ctx).Model(&model.Device{})
	if vendor != "" {
		query = query.Where("vendor = ?", string(vendor))
	}

	var devices []model.Device
	if err := query.Order("id asc").Find(&devices).Error; err != nil {
		return nil, persistenceError("list devices", err)
	}
	return devices, nil
}

// Interfaces lists the inventoried interfaces of a device
func (s *Store) Interfaces(ctx context.Context, deviceID uint) ([]model.Interface, error) {
	var ifaces []model.Interface
	err := s.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("name asc").
		Find(&ifaces).Error
	if err != nil {
		return nil, persistenceError("list interfaces", err)
	}
	return ifaces, nil
}

// UpsertInterface inserts iface or updates status and description of the row
// with the same (device, name). On return iface carries the stored ID.
func (s *Store) UpsertInterface(ctx context.Context, iface *model.Interface) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"physical_status", "protocol_status", "description", "updated_at"}),
	}).Create(iface).Error
	if err != nil {
		return persistenceError("upsert interface "+iface.Name, err)
	}

	var stored model.Interface
	err = s.db.WithContext(ctx).
		Where("device_id = ? AND name = ?", iface.DeviceID, iface.Name).
		First(&stored).Error
	if err != nil {
		return persistenceError("reload interface "+iface.Name, err)
	}
	iface.ID = stored.ID
	iface.CreatedAt = stored.CreatedAt
	return nil
}

// UpdateInterface sets the given columns of one interface. Empty updates are
// a no-op.
func (s *Store) UpdateInterface(ctx context.Context, id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()
	err := s.db.WithContext(ctx).
		Model(&model.Interface{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return persistenceError(fmt.Sprintf("update interface %d", id), err)
	}
	return nil
}

func (s *Store) CreateStats(ctx context.Context, sample *model.InterfaceStatsSample) error {
	if err := s.db.WithContext(ctx).Create(sample).Error; err != nil {
		return persistenceError("create stats", err)
	}
	return nil
}

func (s *Store) CreateReading(ctx context.Context, sample *model.TransceiverReadingSample) error {
	if err := s.db.WithContext(ctx).Create(sample).Error; err != nil {
		return persistenceError("create reading", err)
	}
	return nil
}

func (s *Store) CreateModuleEvent(ctx context.Context, event *model.TransceiverModuleEvent) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return persistenceError("create module event", err)
	}
	return nil
}

// LatestModuleEvent returns the most recent module event of an interface, or
// nil when it never had one.
func (s *Store) LatestModuleEvent(ctx context.Context, interfaceID uint) (*model.TransceiverModuleEvent, error) {
	var event model.TransceiverModuleEvent
	err := s.db.WithContext(ctx).
		Where("interface_id = ?", interfaceID).
		Order("created_at desc").
		Order("id desc").
		Limit(1).
		Take(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistenceError("load module event", err)
	}
	return &event, nil
}

// LatestStats returns the most recent stats sample of every interface, with
// the interface and its device loaded.
func (s *Store) LatestStats(ctx context.Context) ([]model.InterfaceStatsSample, error) {
	db := s.db.WithContext(ctx)
	latest := db.Model(&model.InterfaceStatsSample{}).
		Select("MAX(id)").
		Group("interface_id")

	var samples []model.InterfaceStatsSample
	err := db.
		Preload("Interface.Device").
		Where("id IN (?)", latest).
		Order("interface_id asc").
		Find(&samples).Error
	if err != nil {
		return nil, persistenceError("load latest stats", err)
	}
	return samples, nil
}
