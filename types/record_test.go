package types

import (
	"reflect"
	"testing"
)

func TestResultNames(t *testing.T) {
	r := NewResult()
	r.Interfaces["GE0/0/2"] = &Record{}
	r.Interfaces["GE0/0/10"] = &Record{}
	r.Interfaces["100GE0/0/1"] = &Record{}

	want := []string{"100GE0/0/1", "GE0/0/10", "GE0/0/2"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}

	var nilResult *Result
	if nilResult.Len() != 0 || nilResult.Names() != nil {
		t.Errorf("nil result should be empty")
	}
}

func TestThresholdsIsEmpty(t *testing.T) {
	if !(Thresholds{}).IsEmpty() {
		t.Errorf("zero Thresholds should be empty")
	}
	if (Thresholds{RxPowerLowWarning: Float64Ptr(-14)}).IsEmpty() {
		t.Errorf("Thresholds with a value should not be empty")
	}
}

func TestStatusIsEmpty(t *testing.T) {
	var s *Status
	if !s.IsEmpty() {
		t.Errorf("nil Status should be empty")
	}
	if (&Status{PhysicalStatus: StringPtr("up")}).IsEmpty() {
		t.Errorf("Status with physical state should not be empty")
	}
}
