package types

import "time"

// Kind selects which command a poll runs
type Kind string

const (
	// KindStatus is the one-line-per-interface status and utilization listing
	KindStatus Kind = "status"

	// KindTransceiver is the verbose optical module dump
	KindTransceiver Kind = "transceiver"

	// KindTransceiverPerInterface runs the verbose dump once per known interface
	KindTransceiverPerInterface Kind = "transceiver-per-interface"

	// KindExtensive is the combined status, counters and optics dump
	KindExtensive Kind = "extensive"

	// KindOptics is the optics-only diagnostics dump
	KindOptics Kind = "optics"

	// KindDescriptions is the interface inventory listing
	KindDescriptions Kind = "descriptions"
)

// ParseFunc turns raw command output into per-interface records.
// It never fails: unusable blocks are skipped and counted in Result.Skipped.
type ParseFunc func(output string) *Result

// CommandSpec binds a vendor command to the parser that understands its output
type CommandSpec struct {
	Vendor Vendor
	Kind   Kind

	// Command is the CLI command sent to the device
	Command string

	// CommandTemplate, when set, is formatted once per interface name
	// instead of running Command once
	CommandTemplate string

	// Timeout is the default per-command budget
	Timeout time.Duration

	// Verbose marks long-running diagnostic dumps
	Verbose bool

	// MinLines is the minimum number of non-blank output lines;
	// anything shorter is treated as empty output
	MinLines int

	// ErrorMarker, when found in the output, means the device rejected the command
	ErrorMarker string

	// Identity is set when the output carries module serial numbers, so
	// module records can drive identity tracking
	Identity bool

	Parse ParseFunc
}
