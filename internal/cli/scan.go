package cli

import (
	"github.com/aegis-sec/aegis/internal/module/portscan"
	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/spf13/cobra"
)

var portsFlag string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a TCP port scan against the target",
	Long:  "Performs a TCP connect scan with banner grabbing to discover open ports on the target.",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&portsFlag, "ports", "p", "common", "ports to scan: single, range (1-1024), comma-separated, or 'common'")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	fw, err := newFramework()
	if err != nil {
		return err
	}

	ctx, cancel := runContext()
	defer cancel()

	opts := baseOptions()
	opts.Extra = extrasFor(portscan.Name)
	result := fw.RunModule(ctx, portscan.Name, opts)
	return printResults(cmd, []types.ModuleResult{result})
}
