package cli

import (
	"fmt"

	"github.com/aegis-sec/aegis/internal/web"
	"github.com/spf13/cobra"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Aegis web API",
	Long:  "Launches the HTTP API for submitting recon scans and polling their results.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":3000", "listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s := web.NewServer(addrFlag, newRegistry())
	fmt.Fprintf(cmd.OutOrStdout(), "aegis web server listening on %s\n", addrFlag)
	return s.Start()
}
