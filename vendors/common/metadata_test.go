package common

import (
	"testing"
	"time"
)

func TestMetadataString(t *testing.T) {
	meta := map[string]string{
		MetaCLIMode:     "exec",
		MetaSSHUsername: "   ",
	}

	tests := []struct {
		name   string
		meta   map[string]string
		keys   []string
		want   string
		wantOK bool
	}{
		{"nil map", nil, []string{MetaCLIMode}, "", false},
		{"found", meta, []string{MetaCLIMode}, "exec", true},
		{"blank value skipped", meta, []string{MetaSSHUsername}, "", false},
		{"fallback key", meta, []string{"missing", MetaCLIMode}, "exec", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MetadataString(tt.meta, tt.keys...)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("MetadataString() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMetadataIntOr(t *testing.T) {
	meta := map[string]string{MetaSSHPort: "2222", "bad": "twenty"}

	tests := []struct {
		name string
		keys []string
		def  int
		want int
	}{
		{"parsed", []string{MetaSSHPort}, 22, 2222},
		{"unparsable uses default", []string{"bad"}, 22, 22},
		{"missing uses default", []string{"missing"}, 22, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MetadataIntOr(meta, tt.def, tt.keys...); got != tt.want {
				t.Errorf("MetadataIntOr() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMetadataDurationOr(t *testing.T) {
	meta := map[string]string{MetaTimeout: "45s", "zero": "0s"}

	if got := MetadataDurationOr(meta, time.Minute, MetaTimeout); got != 45*time.Second {
		t.Errorf("MetadataDurationOr() = %v, want 45s", got)
	}
	if got := MetadataDurationOr(meta, time.Minute, "zero"); got != time.Minute {
		t.Errorf("MetadataDurationOr() = %v, want 1m", got)
	}
	if got := MetadataStringOr(nil, "shell", MetaCLIMode); got != "shell" {
		t.Errorf("MetadataStringOr() = %q, want shell", got)
	}
}
