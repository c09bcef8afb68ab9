package main

import (
	"fmt"
	"os"

	"github.com/QubeSwap/sgn-v2-contracts/internal/cli"
	"github.com/QubeSwap/sgn-v2-contracts/internal/cli/render"
	"github.com/QubeSwap/sgn-v2-contracts/internal/config"
)

// Set via -ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.FormatError(err.Error()))
		os.Exit(1)
	}
}
