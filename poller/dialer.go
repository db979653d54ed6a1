package poller

import (
	"context"

	telemetry "github.com/nanoncore/nano-telemetry"
	"github.com/nanoncore/nano-telemetry/config"
	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

// DialFunc opens a connected CLI session to a target
type DialFunc func(ctx context.Context, target types.Target) (types.Session, error)

// EquipmentConfig builds the connection settings for target. Per-device
// metadata (ssh_port, ssh_username) overrides the global SSH settings.
func EquipmentConfig(target types.Target, cfg config.SSHConfig) *types.EquipmentConfig {
	return &types.EquipmentConfig{
		Name:     target.Label(),
		Vendor:   target.Vendor,
		Address:  target.Address,
		Port:     common.MetadataIntOr(target.Metadata, cfg.Port, common.MetaSSHPort),
		Protocol: types.ProtocolCLI,
		Username: common.MetadataStringOr(target.Metadata, cfg.Username, common.MetaSSHUsername),
		Password: cfg.Password,
		Timeout:  cfg.ConnectTimeout,
		Metadata: target.Metadata,
	}
}

// SSHDialer dials targets with the shared SSH credentials
func SSHDialer(cfg config.SSHConfig) DialFunc {
	return func(ctx context.Context, target types.Target) (types.Session, error) {
		return telemetry.Dial(ctx, EquipmentConfig(target, cfg))
	}
}
