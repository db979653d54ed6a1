package juniper

import (
	"regexp"
	"strings"

	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

var (
	descriptionStartRegex        = regexp.MustCompile(`^(\S+)\s+(up|down)\s+(up|down)\s*(.*)$`)
	descriptionContinuationRegex = regexp.MustCompile(`^\s+(.+)$`)
)

// descriptionEntry is an interface whose description may still be continued
type descriptionEntry struct {
	name        string
	admin       string
	link        string
	description []string
}

// ParseInterfaceDescriptions parses "show interfaces descriptions".
//
// Junos descriptions output format:
//
//	Interface       Admin Link Description
//	et-0/0/9        up    up   LACP: core-01
//	                           [100Gbps]
//	xe-0/0/1        up    down spare
//	{master:0}
//
// Long descriptions wrap onto indented continuation lines; a blank or
// unrecognized line ends the current interface.
func ParseInterfaceDescriptions(output string) *types.Result {
	result := types.NewResult()
	var current *descriptionEntry

	flush := func() {
		if current == nil {
			return
		}
		name := NormalizeName(current.name)
		if name == "" {
			result.Skipped++
		} else {
			description := strings.Join(strings.Fields(strings.Join(current.description, " ")), " ")
			result.Interfaces[name] = &types.Record{
				Status: &types.Status{
					PhysicalStatus: types.StringPtr(current.link),
					ProtocolStatus: types.StringPtr(current.admin),
					Description:    types.StringPtr(description),
				},
			}
		}
		current = nil
	}

	for _, line := range strings.Split(common.Sanitize(output), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), "interface") || strings.HasPrefix(trimmed, "{master") {
			continue
		}

		if m := descriptionStartRegex.FindStringSubmatch(line); m != nil {
			flush()
			current = &descriptionEntry{
				name:        m[1],
				admin:       m[2],
				link:        m[3],
				description: []string{m[4]},
			}
			continue
		}

		if m := descriptionContinuationRegex.FindStringSubmatch(line); m != nil && current != nil {
			current.description = append(current.description, m[1])
			continue
		}

		flush()
	}
	flush()

	return result
}
