package common

import (
	"testing"
	"time"
)

func TestGetSNMPResult(t *testing.T) {
	tests := []struct {
		name      string
		results   map[string]interface{}
		oid       string
		wantValue interface{}
		wantFound bool
	}{
		{"nil results", nil, OIDSysName, nil, false},
		{"empty results", map[string]interface{}{}, OIDSysName, nil, false},
		{"gosnmp leading dot", map[string]interface{}{"." + OIDSysName: "core-r1"}, OIDSysName, "core-r1", true},
		{"exact match", map[string]interface{}{OIDSysDescr: "VRP"}, OIDSysDescr, "VRP", true},
		{"query with dot, result without", map[string]interface{}{OIDSysName: "core-r1"}, "." + OIDSysName, "core-r1", true},
		{"not found", map[string]interface{}{OIDSysName: "core-r1"}, OIDSysDescr, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotValue, gotFound := GetSNMPResult(tt.results, tt.oid)
			if gotValue != tt.wantValue {
				t.Errorf("GetSNMPResult() value = %v, want %v", gotValue, tt.wantValue)
			}
			if gotFound != tt.wantFound {
				t.Errorf("GetSNMPResult() found = %v, want %v", gotFound, tt.wantFound)
			}
		})
	}
}

func TestParseStringSNMPValue(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		want   string
		wantOK bool
	}{
		{"string", "mx960-edge", "mx960-edge", true},
		{"bytes", []byte("ne40e-core"), "ne40e-core", true},
		{"trailing nul", []byte("ne40e\x00\x00"), "ne40e", true},
		{"blank", []byte("  "), "", false},
		{"nil", nil, "", false},
		{"wrong type", 42, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStringSNMPValue(tt.value)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseStringSNMPValue() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseUint64SNMPValue(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		want   uint64
		wantOK bool
	}{
		{"uint32 timeticks", uint32(12345), 12345, true},
		{"uint64 counter", uint64(1 << 40), 1 << 40, true},
		{"int", 7, 7, true},
		{"negative int", -1, 0, false},
		{"string", "7", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseUint64SNMPValue(tt.value)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseUint64SNMPValue() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseTimeTicks(t *testing.T) {
	got, ok := ParseTimeTicks(uint32(360000))
	if !ok || got != time.Hour {
		t.Errorf("ParseTimeTicks() = (%v, %v), want (1h, true)", got, ok)
	}
}
