// Package cmd implements the bix command-line interface.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bix",
	Short: "Compress bitmap indexes with WAH or BBC",
	Long: `bix compresses long bit sequences, such as bitmap index columns, with
lossless run-length codecs: word-aligned hybrid (WAH, configurable word size)
or byte-aligned bitmap code (BBC, fixed 8-bit units).`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
