package cli

import (
	"github.com/aegis-sec/aegis/internal/module/osint"
	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/spf13/cobra"
)

var (
	sourcesFlag   string
	shodanKeyFlag string
)

var osintCmd = &cobra.Command{
	Use:   "osint",
	Short: "Gather open-source intelligence about the target",
	Long: `Queries passive sources (whois, DNS records, certificate
transparency, Shodan) without probing the target directly.`,
	RunE: runOsint,
}

func init() {
	osintCmd.Flags().StringVar(&sourcesFlag, "sources", "", "comma-separated source names: whois, dns_records, crtsh, shodan")
	osintCmd.Flags().StringVar(&shodanKeyFlag, "shodan-key", "", "Shodan API key (or shodan_api_key in the config file)")
	rootCmd.AddCommand(osintCmd)
}

func runOsint(cmd *cobra.Command, args []string) error {
	fw, err := newFramework()
	if err != nil {
		return err
	}

	ctx, cancel := runContext()
	defer cancel()

	opts := baseOptions()
	opts.Extra = extrasFor(osint.Name)
	result := fw.RunModule(ctx, osint.Name, opts)
	return printResults(cmd, []types.ModuleResult{result})
}
