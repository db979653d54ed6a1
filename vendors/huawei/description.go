package huawei

import (
	"regexp"
	"strings"

	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

var (
	descriptionLineRegex = regexp.MustCompile(`^(\S+)\s+(\*?down|up)\S*\s+(\*?down|up)\S*(.*)$`)

	// physicalPortRegex limits the inventory to physical ports
	physicalPortRegex = regexp.MustCompile(`^(?:XGED|XGE|GE|25GE|40GE|100GE|MEth|Meth)\d+/\d+/\d+$`)
)

// ParseInterfaceDescription parses "display interface description".
//
// Huawei interface description output format:
//
//	PHY: Physical
//	*down: administratively down
//	Interface                     PHY     Protocol Description
//	GE0/0/1                       up      up       To-Core-01 LACP
//	GE0/0/2                       *down   down
//	Vlanif100                     up      up       MGMT
//
// Only physical ports are returned; logical interfaces are ignored.
func ParseInterfaceDescription(output string) *types.Result {
	result := types.NewResult()

	for _, line := range strings.Split(common.Sanitize(output), "\n") {
		m := descriptionLineRegex.FindStringSubmatch(strings.TrimRight(line, " \t"))
		if m == nil {
			continue
		}

		name := NormalizeName(m[1])
		if !physicalPortRegex.MatchString(name) {
			continue
		}

		description := strings.Join(strings.Fields(m[4]), " ")
		result.Interfaces[name] = &types.Record{
			Status: &types.Status{
				PhysicalStatus: types.StringPtr(cleanState(m[2])),
				ProtocolStatus: types.StringPtr(cleanState(m[3])),
				Description:    types.StringPtr(description),
			},
		}
	}

	return result
}
