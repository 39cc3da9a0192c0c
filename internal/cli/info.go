package cli

import (
	"fmt"
	"strings"

	"github.com/aegis-sec/aegis/internal/config"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show toolkit and configuration summary",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "aegis %s\n", version)
	fmt.Fprintf(w, "config file: %s\n", config.ConfigFilePath())
	fmt.Fprintf(w, "modules: %s\n", strings.Join(newRegistry().Names(), ", "))

	if appConfig != nil {
		fmt.Fprintf(w, "output format: %s\n", appConfig.OutputFormat)
		fmt.Fprintf(w, "max threads: %d\n", appConfig.MaxThreads)
		fmt.Fprintf(w, "default timeout: %s\n", appConfig.DefaultTimeout)
		fmt.Fprintf(w, "safe mode: %t\n", appConfig.SafeMode)
		if appConfig.DefaultTarget != "" {
			fmt.Fprintf(w, "default target: %s\n", appConfig.DefaultTarget)
		}
		for _, profile := range appConfig.ReconProfiles {
			fmt.Fprintf(w, "profile %s: %s\n", profile.Name, strings.Join(profile.Modules, ", "))
		}
	}

	return nil
}
