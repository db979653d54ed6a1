package common

import (
	"strings"
	"time"
)

// MIB-II system group OIDs (RFC 1213)
const (
	OIDSysDescr    = "1.3.6.1.2.1.1.1.0"
	OIDSysObjectID = "1.3.6.1.2.1.1.2.0"
	OIDSysUpTime   = "1.3.6.1.2.1.1.3.0"
	OIDSysName     = "1.3.6.1.2.1.1.5.0"
	OIDSysLocation = "1.3.6.1.2.1.1.6.0"
)

// SystemOIDs is the set queried when enriching an inventory entry
var SystemOIDs = []string{OIDSysName, OIDSysDescr, OIDSysUpTime, OIDSysLocation}

// GetSNMPResult looks up an OID in SNMP results, handling the leading dot issue.
// gosnmp returns OIDs with a leading dot (e.g., ".1.3.6.1..."), but OID constants
// typically don't have the leading dot. This function tries both formats.
func GetSNMPResult(results map[string]interface{}, oid string) (interface{}, bool) {
	if results == nil {
		return nil, false
	}

	if !strings.HasPrefix(oid, ".") {
		if val, ok := results["."+oid]; ok {
			return val, true
		}
	}

	if val, ok := results[oid]; ok {
		return val, true
	}

	if strings.HasPrefix(oid, ".") {
		if val, ok := results[strings.TrimPrefix(oid, ".")]; ok {
			return val, true
		}
	}

	return nil, false
}

// ParseStringSNMPValue extracts a string from an SNMP OctetString result.
// Trailing NUL bytes and surrounding whitespace are removed.
func ParseStringSNMPValue(value interface{}) (string, bool) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return "", false
	}
	s = strings.TrimSpace(strings.TrimRight(s, "\x00"))
	return s, s != ""
}

// ParseUint64SNMPValue extracts a uint64 from SNMP counter and gauge values.
func ParseUint64SNMPValue(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// ParseTimeTicks converts a sysUpTime value (hundredths of a second) to a duration
func ParseTimeTicks(value interface{}) (time.Duration, bool) {
	ticks, ok := ParseUint64SNMPValue(value)
	if !ok {
		return 0, false
	}
	return time.Duration(ticks) * 10 * time.Millisecond, true
}
