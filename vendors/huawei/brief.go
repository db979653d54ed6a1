package huawei

import (
	"strconv"
	"strings"

	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

// briefColumns is the number of fixed columns after the interface name
const briefColumns = 6

// ParseInterfaceBrief parses "display interface brief".
//
// Huawei interface brief output format:
//
//	PHY: Physical
//	*down: administratively down
//	InUti/OutUti: input utility rate/output utility rate
//	Interface                   PHY   Protocol  InUti OutUti   inErrors  outErrors
//	Eth-Trunk1                  up    up        0.01%  0.02%          0          0
//	  GigabitEthernet0/0/1      up    up        0.01%  0.02%          0          0
//	GigabitEthernet0/0/3        *down down         0%     0%          0          0
//
// The last six columns are fixed; everything before them is the interface name.
func ParseInterfaceBrief(output string) *types.Result {
	result := types.NewResult()

	for _, line := range strings.Split(common.Sanitize(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isBriefLegend(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < briefColumns+1 {
			continue
		}

		n := len(fields)
		name := NormalizeName(strings.Join(fields[:n-briefColumns], " "))

		inUti, okIn := parsePercent(fields[n-4])
		outUti, okOut := parsePercent(fields[n-3])
		if name == "" || !okIn || !okOut {
			result.Skipped++
			continue
		}

		result.Interfaces[name] = &types.Record{
			Status: &types.Status{
				PhysicalStatus: types.StringPtr(cleanState(fields[n-6])),
				ProtocolStatus: types.StringPtr(cleanState(fields[n-5])),
			},
			Stats: &types.Stats{
				InUti:     types.Float64Ptr(inUti),
				OutUti:    types.Float64Ptr(outUti),
				InErrors:  types.Int64Ptr(parseCounter(fields[n-2])),
				OutErrors: types.Int64Ptr(parseCounter(fields[n-1])),
			},
		}
	}

	return result
}

// isBriefLegend reports header and legend lines
func isBriefLegend(line string) bool {
	return strings.Contains(line, "Interface") ||
		strings.Contains(line, "PHY") ||
		strings.Contains(line, "InUti")
}

func parsePercent(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseCounter treats unparsable counters as zero
func parseCounter(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
