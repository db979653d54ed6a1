package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	telemetry "github.com/nanoncore/nano-telemetry"
	"github.com/nanoncore/nano-telemetry/sink"
	"github.com/nanoncore/nano-telemetry/types"
	"github.com/nanoncore/nano-telemetry/vendors/common"
)

func newParseCommand() *cobra.Command {
	var (
		vendor string
		kind   string
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a captured command output and print the records as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := telemetry.NewParser(types.Vendor(vendor), types.Kind(kind))
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read capture: %w", err)
			}

			result := spec.Parse(common.Sanitize(string(data)))
			if result == nil {
				result = types.NewResult()
			}

			console := sink.NewConsole(os.Stdout)
			_, err = console.Deliver(cmd.Context(), sink.Batch{
				Target: types.Target{
					Hostname: filepath.Base(args[0]),
					Vendor:   spec.Vendor,
				},
				Kind:     spec.Kind,
				Identity: spec.Identity,
				Result:   result,
			})
			return err
		},
	}

	cmd.Flags().StringVar(&vendor, "vendor", "", "Device vendor (huawei or juniper)")
	cmd.Flags().StringVar(&kind, "kind", "", "Poll kind; empty uses the vendor's default")
	_ = cmd.MarkFlagRequired("vendor")
	return cmd
}
