package cli

import (
	"fmt"
	"time"

	"github.com/aegis-sec/aegis/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	targetFlag      string
	outputFlag      string
	concurrencyFlag int
	timeoutFlag     time.Duration
	safeFlag        bool
)

// appConfig holds the loaded configuration, available after PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "aegis",
	Short: "Aegis - modular reconnaissance toolkit",
	Long: `Aegis runs reconnaissance modules (port scanning, subdomain
enumeration, OSINT collection) against a target concurrently and
reports the findings as text, JSON, or CSV.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		config.ApplyFlags(cfg, cmd)

		// Sync config values back to flag variables so all commands
		// pick up config-file and env-var defaults transparently.
		targetFlag = cfg.DefaultTarget
		outputFlag = cfg.OutputFormat
		concurrencyFlag = cfg.MaxThreads
		timeoutFlag = cfg.DefaultTimeout
		safeFlag = cfg.SafeMode

		appConfig = cfg
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&targetFlag, "target", "t", "", "target host, IP, or URL")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "text", "output format: text, json, csv")
	rootCmd.PersistentFlags().IntVarP(&concurrencyFlag, "concurrency", "c", 10, "max concurrent probes")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 5*time.Second, "per-probe timeout")
	rootCmd.PersistentFlags().BoolVar(&safeFlag, "safe", true, "refuse unsafe modules and local targets")
}
