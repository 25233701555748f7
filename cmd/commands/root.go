// SPDX-License-Identifier: MIT

// Package commands wires the ldblocks stages into a cobra command tree.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ldblocks",
	Short: "Partition LD (r²) matrices into blocks by determinant",
	Long: `ldblocks splits a square matrix of pairwise linkage disequilibrium into
contiguous diagonal blocks whose determinant stays above a density threshold.

Typical pipeline:
  ldblocks convert   -i chr22.ld -o chr22.ldm
  ldblocks clean     -p chr22
  ldblocks partition -i chr22.cleaned.ldm -o chr22.labels.txt -b chr22.bim
  ldblocks features  -i chr22.labels.txt -m chr22.cleaned.ldm -o chr22.features.txt`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String(flagConfig, "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Bool(flagDebug, false, "Enable debug logging")
	rootCmd.AddCommand(NewPartitionCommand())
	rootCmd.AddCommand(NewFeaturesCommand())
	rootCmd.AddCommand(NewCleanCommand())
	rootCmd.AddCommand(NewConvertCommand())
}

// Execute runs the command tree and exits with status 1 on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
