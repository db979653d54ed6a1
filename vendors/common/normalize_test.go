package common

import "testing"

var testNormalizer = NewNormalizer(
	Replacement{Long: "XGigabitEthernet", Short: "XGE"},
	Replacement{Long: "GigabitEthernet", Short: "GE"},
	Replacement{Long: "Ethernet", Short: "Eth"},
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"long gigabit", "GigabitEthernet0/0/1", "GE0/0/1"},
		{"long ten gigabit", "XGigabitEthernet0/0/2", "XGE0/0/2"},
		{"ethernet", "Ethernet0/0/0", "Eth0/0/0"},
		{"already short", "GE0/0/1", "GE0/0/1"},
		{"no prefix", "100GE0/0/1", "100GE0/0/1"},
		{"trunk untouched", "Eth-Trunk1", "Eth-Trunk1"},
		{"trailing comma", "et-0/0/9,", "et-0/0/9"},
		{"whitespace", "  GigabitEthernet0/0/3 \t", "GE0/0/3"},
		{"prefix only replaced once", "GigabitEthernetGigabitEthernet", "GEGigabitEthernet"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testNormalizer.Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"GigabitEthernet0/0/1",
		"XGigabitEthernet0/0/2",
		"Ethernet0/0/0",
		"40GE0/0/1",
		"et-0/0/9,",
		"MEth0/0/1",
	}

	for _, in := range inputs {
		once := testNormalizer.Normalize(in)
		twice := testNormalizer.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNilNormalizer(t *testing.T) {
	var n *Normalizer
	if got := n.Normalize(" et-0/0/1, "); got != "et-0/0/1" {
		t.Errorf("nil Normalize() = %q, want %q", got, "et-0/0/1")
	}
}
