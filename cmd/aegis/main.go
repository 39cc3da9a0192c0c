package main

import (
	"os"

	"github.com/aegis-sec/aegis/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
