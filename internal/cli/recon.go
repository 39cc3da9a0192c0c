package cli

import (
	"fmt"
	"strings"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/spf13/cobra"
)

var (
	reconModulesFlag string
	profileFlag      string
	wordlistFlag     string
)

var reconCmd = &cobra.Command{
	Use:   "recon",
	Short: "Run reconnaissance modules against the target",
	Long: `Runs the selected modules concurrently against the target.
Without --modules or --profile every registered module runs.`,
	RunE: runRecon,
}

func init() {
	reconCmd.Flags().StringVarP(&reconModulesFlag, "modules", "m", "", "comma-separated module names (default: all)")
	reconCmd.Flags().StringVar(&profileFlag, "profile", "", "named recon profile from the config file")
	reconCmd.Flags().StringVarP(&portsFlag, "ports", "p", "common", "ports for the port scan module")
	reconCmd.Flags().StringVarP(&wordlistFlag, "wordlist", "w", "", "wordlist for subdomain enumeration")
	reconCmd.Flags().StringVar(&sourcesFlag, "sources", "", "OSINT sources to query")
	reconCmd.Flags().StringVar(&shodanKeyFlag, "shodan-key", "", "Shodan API key")
	rootCmd.AddCommand(reconCmd)
}

func runRecon(cmd *cobra.Command, args []string) error {
	fw, err := newFramework()
	if err != nil {
		return err
	}

	names := fw.Registry().Names()
	if profileFlag != "" {
		profile := appConfig.GetProfile(profileFlag)
		if profile == nil {
			return fmt.Errorf("unknown profile: %s", profileFlag)
		}
		names = profile.Modules
	}
	if reconModulesFlag != "" {
		names = nil
		for _, name := range strings.Split(reconModulesFlag, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no modules selected")
	}

	runs := make([]module.Run, 0, len(names))
	for _, name := range names {
		runs = append(runs, module.Run{Name: name, Extra: extrasFor(name)})
	}

	ctx, cancel := runContext()
	defer cancel()

	results := fw.RunModules(ctx, runs, baseOptions())
	return printResults(cmd, results)
}
