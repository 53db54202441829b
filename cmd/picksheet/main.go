// Package main provides the CLI entry point for picksheet.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// rootCmd is the root command for picksheet.
var rootCmd = &cobra.Command{
	Use:     "picksheet",
	Version: version,
	Short:   "Picking sheets, template conversion, and tracking registration for Korean mall exports",
	Long: `picksheet turns Korean e-commerce order exports into warehouse-ready
artifacts: address-grouped picking sheets (Excel and Word), order files
converted onto the 3PL fulfillment template, and courier tracking numbers
registered back into each marketplace's dispatch format.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	if err := rootCmd.Execute(); err != nil {
		PrintError(err.Error())
		os.Exit(1)
	}
}
