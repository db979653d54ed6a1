package common

import (
	"strconv"
	"strings"
	"time"
)

// Per-device metadata keys understood by the drivers and the poller
const (
	MetaSSHPort       = "ssh_port"
	MetaSSHUsername   = "ssh_username"
	MetaCLIMode       = "cli_mode"
	MetaSNMPVersion   = "snmp_version"
	MetaSNMPCommunity = "snmp_community"
	MetaTimeout       = "timeout"
)

// MetadataString returns the first non-blank value among keys.
// Keys are checked in order - first match wins.
func MetadataString(meta map[string]string, keys ...string) (string, bool) {
	for _, key := range keys {
		if value := strings.TrimSpace(meta[key]); value != "" {
			return value, true
		}
	}
	return "", false
}

// MetadataInt returns the first value among keys that parses as an integer.
func MetadataInt(meta map[string]string, keys ...string) (int, bool) {
	for _, key := range keys {
		if value, err := strconv.Atoi(strings.TrimSpace(meta[key])); err == nil {
			return value, true
		}
	}
	return 0, false
}

// MetadataStringOr returns the value for keys, or def.
func MetadataStringOr(meta map[string]string, def string, keys ...string) string {
	if value, ok := MetadataString(meta, keys...); ok {
		return value
	}
	return def
}

// MetadataIntOr returns the integer value for keys, or def.
func MetadataIntOr(meta map[string]string, def int, keys ...string) int {
	if value, ok := MetadataInt(meta, keys...); ok {
		return value
	}
	return def
}

// MetadataDurationOr parses a Go duration ("45s", "3m") for keys, or returns def.
func MetadataDurationOr(meta map[string]string, def time.Duration, keys ...string) time.Duration {
	for _, key := range keys {
		if d, err := time.ParseDuration(strings.TrimSpace(meta[key])); err == nil && d > 0 {
			return d
		}
	}
	return def
}
