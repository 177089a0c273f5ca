// Package cli implements the readright command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "readright",
	Short: "Readability and risk analysis for contracts, leases, and medical forms",
	Long: `readright scores a document for readability and surfaces the sentences
most likely to be dense, legally loaded, or hard to understand, so a
tenant, patient, or consumer knows which clauses deserve extra scrutiny.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(versionCmd)
}
