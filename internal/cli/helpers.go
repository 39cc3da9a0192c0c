package cli

import (
	"context"
	"fmt"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/internal/module/osint"
	"github.com/aegis-sec/aegis/internal/module/portscan"
	"github.com/aegis-sec/aegis/internal/module/subenum"
	"github.com/aegis-sec/aegis/internal/output"
	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/spf13/cobra"
)

// newRegistry wires every built-in module.
func newRegistry() *module.Registry {
	reg := module.NewRegistry()
	reg.MustRegister(portscan.Describe(), portscan.New)
	reg.MustRegister(subenum.Describe(), subenum.New)
	reg.MustRegister(osint.Describe(), osint.New)
	return reg
}

// newFramework builds a framework pointed at the target from the flags.
func newFramework() (*module.Framework, error) {
	if targetFlag == "" {
		return nil, fmt.Errorf("--target (-t) is required")
	}

	target, err := types.ParseTarget(targetFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}

	fw := module.NewFramework(newRegistry())
	fw.SetTarget(target)
	return fw, nil
}

func baseOptions() module.Options {
	return module.Options{
		Concurrency: concurrencyFlag,
		Timeout:     timeoutFlag,
		SafeMode:    safeFlag,
	}
}

// probeBatchBudget caps a command run at this many sequential probe
// batches, where one batch is up to Concurrency probes of at most Timeout
// each. A full common-port scan at the default concurrency needs three.
const probeBatchBudget = 100

// runContext bounds a whole command run well above the per-probe timeout.
func runContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeoutFlag*probeBatchBudget)
}

// extrasFor maps command-line flags and config values onto the options a
// given module understands. Only options the module declares are set, so
// one recon run can carry different extras per module.
func extrasFor(name string) map[string]any {
	extra := map[string]any{}

	switch name {
	case portscan.Name:
		if portsFlag != "" {
			extra["ports"] = portsFlag
		}
	case subenum.Name:
		wordlist := wordlistFlag
		if wordlist == "" && appConfig != nil {
			wordlist = appConfig.WordlistPath
		}
		if wordlist != "" {
			extra["wordlist"] = wordlist
		}
	case osint.Name:
		key := shodanKeyFlag
		if key == "" && appConfig != nil {
			key = appConfig.ShodanAPIKey
		}
		if key != "" {
			extra["shodan_key"] = key
		}
		if sourcesFlag != "" {
			extra["sources"] = sourcesFlag
		}
	}

	if len(extra) == 0 {
		return nil
	}
	return extra
}

func printResults(cmd *cobra.Command, results []types.ModuleResult) error {
	formatter, err := output.GetFormatter(outputFlag)
	if err != nil {
		return err
	}
	return formatter.Format(cmd.OutOrStdout(), results)
}
