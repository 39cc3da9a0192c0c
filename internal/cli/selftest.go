package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aegis-sec/aegis/internal/module/osint"
	"github.com/aegis-sec/aegis/internal/module/portscan"
	"github.com/aegis-sec/aegis/internal/module/subenum"
	"github.com/aegis-sec/aegis/internal/probe"
	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run built-in self checks",
	Long: `Exercises the module registry, the port specification parser, the
probe pool, and the target parser without touching the network.`,
	RunE: runSelfTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runSelfTest(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	checks := []struct {
		name string
		fn   func() error
	}{
		{"module registry", checkRegistry},
		{"port specification parser", checkPortSpec},
		{"probe pool", checkProbePool},
		{"target parser", checkTargetParser},
	}

	failed := 0
	for _, check := range checks {
		if err := check.fn(); err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %s\n", color.RedString("FAIL"), check.name, err)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", color.GreenString("PASS"), check.name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d self checks failed", failed, len(checks))
	}
	fmt.Fprintf(w, "all %d self checks passed\n", len(checks))
	return nil
}

func checkRegistry() error {
	reg := newRegistry()
	for _, name := range []string{portscan.Name, subenum.Name, osint.Name} {
		if _, _, err := reg.Get(name); err != nil {
			return err
		}
	}
	return nil
}

func checkPortSpec() error {
	ports, err := portscan.ParsePortSpec("22,80,8000-8002")
	if err != nil {
		return err
	}
	if len(ports) != 5 {
		return fmt.Errorf("expected 5 ports, got %d", len(ports))
	}
	if _, err := portscan.ParsePortSpec("common"); err != nil {
		return err
	}
	return nil
}

func checkProbePool() error {
	pool, err := probe.NewPool(4, time.Second)
	if err != nil {
		return err
	}

	units := []string{"a", "b", "c", "d", "e"}
	outcomes := pool.Run(context.Background(), units, func(ctx context.Context, unit string) types.ProbeOutcome {
		return types.ProbeOutcome{Unit: unit, Status: types.StatusResolved}
	})
	if len(outcomes) != len(units) {
		return fmt.Errorf("expected %d outcomes, got %d", len(units), len(outcomes))
	}
	return nil
}

func checkTargetParser() error {
	target, err := types.ParseTarget("https://Example.COM:8443/path")
	if err != nil {
		return err
	}
	if target.Host != "example.com" {
		return fmt.Errorf("unexpected host %q", target.Host)
	}
	return nil
}
