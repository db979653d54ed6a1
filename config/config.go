// Package config loads nano-telemetry settings from a YAML file and NT_*
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	SSH       SSHConfig       `mapstructure:"ssh"`
	Poller    PollerConfig    `mapstructure:"poller"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	Alert     AlertConfig     `mapstructure:"alert"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	// Driver is "postgres" or "sqlite"
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type SSHConfig struct {
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Port           int           `mapstructure:"port"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type PollerConfig struct {
	Concurrency    int           `mapstructure:"concurrency"`
	BriefTimeout   time.Duration `mapstructure:"brief_timeout"`
	VerboseTimeout time.Duration `mapstructure:"verbose_timeout"`

	// Sink is "console" or "store"
	Sink string `mapstructure:"sink"`

	// Schedule is a cron expression; empty runs once
	Schedule string `mapstructure:"schedule"`
}

type InventoryConfig struct {
	// Source is "librenms" or "file"
	Source      string            `mapstructure:"source"`
	Concurrency int               `mapstructure:"concurrency"`
	File        string            `mapstructure:"file"`
	LibreNMS    LibreNMSConfig    `mapstructure:"librenms"`
	SNMP        SNMPConfig        `mapstructure:"snmp"`
	Icons       map[string]string `mapstructure:"icons"`
}

type LibreNMSConfig struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Limit   int           `mapstructure:"limit"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SNMPConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Community string        `mapstructure:"community"`
	Version   string        `mapstructure:"version"`
	Port      int           `mapstructure:"port"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type AlertConfig struct {
	Threshold float64 `mapstructure:"threshold"`

	// Notifier is "ntfy" or "nats"
	Notifier string     `mapstructure:"notifier"`
	Ntfy     NtfyConfig `mapstructure:"ntfy"`
	NATS     NATSConfig `mapstructure:"nats"`
}

type NtfyConfig struct {
	URL     string        `mapstructure:"url"`
	Topic   string        `mapstructure:"topic"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Stream  string `mapstructure:"stream"`
	Subject string `mapstructure:"subject"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads path (unless envOnly) and applies NT_* environment overrides
func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	setDefaults(v)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", true)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "nano-telemetry.db")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")

	v.SetDefault("ssh.username", "")
	v.SetDefault("ssh.password", "")
	v.SetDefault("ssh.port", 22)
	v.SetDefault("ssh.connect_timeout", "10s")

	v.SetDefault("poller.concurrency", 20)
	v.SetDefault("poller.brief_timeout", "20s")
	v.SetDefault("poller.verbose_timeout", "180s")
	v.SetDefault("poller.sink", "console")
	v.SetDefault("poller.schedule", "")

	v.SetDefault("inventory.source", "librenms")
	v.SetDefault("inventory.concurrency", 30)
	v.SetDefault("inventory.file", "inventory.yaml")
	v.SetDefault("inventory.librenms.url", "")
	v.SetDefault("inventory.librenms.token", "")
	v.SetDefault("inventory.librenms.limit", 0)
	v.SetDefault("inventory.librenms.timeout", "30s")
	v.SetDefault("inventory.icons", map[string]string{
		"junos.png":  "juniper",
		"huawei.svg": "huawei",
	})
	v.SetDefault("inventory.snmp.enabled", false)
	v.SetDefault("inventory.snmp.community", "public")
	v.SetDefault("inventory.snmp.version", "2c")
	v.SetDefault("inventory.snmp.port", 161)
	v.SetDefault("inventory.snmp.timeout", "5s")

	v.SetDefault("alert.threshold", 90.0)
	v.SetDefault("alert.notifier", "ntfy")
	v.SetDefault("alert.ntfy.url", "https://ntfy.sh")
	v.SetDefault("alert.ntfy.topic", "nano-telemetry")
	v.SetDefault("alert.ntfy.timeout", "10s")
	v.SetDefault("alert.nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("alert.nats.stream", "TELEMETRY_ALERTS")
	v.SetDefault("alert.nats.subject", "telemetry.alerts.utilization")

	v.SetDefault("metrics.addr", "")
}

// Validate rejects settings the poller cannot run with
func (c Config) Validate() error {
	if c.Poller.Concurrency < 1 {
		return fmt.Errorf("poller.concurrency must be at least 1, got %d", c.Poller.Concurrency)
	}
	if c.Inventory.Concurrency < 1 {
		return fmt.Errorf("inventory.concurrency must be at least 1, got %d", c.Inventory.Concurrency)
	}
	switch c.Poller.Sink {
	case "console", "store":
	default:
		return fmt.Errorf("unknown poller.sink %q", c.Poller.Sink)
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown db.driver %q", c.DB.Driver)
	}
	switch c.Inventory.Source {
	case "librenms", "file":
	default:
		return fmt.Errorf("unknown inventory.source %q", c.Inventory.Source)
	}
	switch c.Alert.Notifier {
	case "ntfy", "nats":
	default:
		return fmt.Errorf("unknown alert.notifier %q", c.Alert.Notifier)
	}
	return nil
}
