package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "optioncli",
	Short: "Price options and inspect their Greeks from the command line",
	Long: `optioncli is a thin command-line front end over the option pricing
and Greeks packages: it parses contract parameters from flags, calls the
library, and prints the result.`,
}

// Execute runs the root command, exiting non-zero on any error returned
// by a subcommand.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(greeksCmd)
}
