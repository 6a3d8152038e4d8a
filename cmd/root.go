package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sistemah2",
	Short: "Work-order API server for medical equipment maintenance",
	Long: `SistemaH2 is a REST API server that tracks medical-equipment
service work orders through a justified, audited lifecycle: urgency
scoring, guarded status transitions and due-date postponements.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
