package common

import (
	"regexp"
	"strings"
	"testing"
)

var (
	testHeader = regexp.MustCompile(`(?m)^([A-Za-z0-9\-/.]+) transceiver information:`)
	testNotice = regexp.MustCompile(`Info: Port ([A-Za-z\-]+\d+[\d/.]+), transceiver is absent\.`)
)

func TestSplitBoundaries(t *testing.T) {
	h1 := "GigabitEthernet0/0/1 transceiver information:\n  a : 1\n"
	h2 := "GigabitEthernet0/0/2 transceiver information:\n  b : 2\n"
	h3 := "XGigabitEthernet0/0/3 transceiver information:\n  c : 3\n"
	output := "<core-r1>\n" + h1 + h2 + h3

	seg := Segmenter{Header: testHeader, Normalizer: testNormalizer}
	blocks := seg.Split(output)
	if len(blocks) != 3 {
		t.Fatalf("Split() returned %d blocks, want 3", len(blocks))
	}

	p1 := strings.Index(output, h1)
	p2 := strings.Index(output, h2)
	p3 := strings.Index(output, h3)
	want := []string{output[p1:p2], output[p2:p3], output[p3:]}
	keys := []string{"GE0/0/1", "GE0/0/2", "XGE0/0/3"}

	for i, b := range blocks {
		if b.Text != want[i] {
			t.Errorf("block %d text = %q, want %q", i, b.Text, want[i])
		}
		if b.Key != keys[i] {
			t.Errorf("block %d key = %q, want %q", i, b.Key, keys[i])
		}
		if b.Notice {
			t.Errorf("block %d marked as notice", i)
		}
	}
}

func TestSplitNoHeaders(t *testing.T) {
	seg := Segmenter{Header: testHeader, Notice: testNotice}
	if blocks := seg.Split("Error: Unrecognized command found at '^' position."); len(blocks) != 0 {
		t.Errorf("Split() = %d blocks, want 0", len(blocks))
	}
}

func TestSplitNotices(t *testing.T) {
	output := `GigabitEthernet0/0/1 transceiver information:
  Manu. Serial Number : ABC
Info: Port GigabitEthernet0/0/2, transceiver is absent.
Info: Port GigabitEthernet0/0/1, transceiver is absent.
GigabitEthernet0/0/3 transceiver information:
  Manu. Serial Number : DEF
`
	seg := Segmenter{Header: testHeader, Notice: testNotice, Normalizer: testNormalizer}
	blocks := seg.Split(output)
	if len(blocks) != 3 {
		t.Fatalf("Split() returned %d blocks, want 3", len(blocks))
	}

	if blocks[0].Key != "GE0/0/1" || strings.Contains(blocks[0].Text, "absent") {
		t.Errorf("full block should end before the notice, got %q", blocks[0].Text)
	}
	if blocks[1].Key != "GE0/0/3" {
		t.Errorf("second block key = %q, want GE0/0/3", blocks[1].Key)
	}
	if !blocks[2].Notice || blocks[2].Key != "GE0/0/2" {
		t.Errorf("notice block = %+v, want GE0/0/2 notice", blocks[2])
	}
}
