package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "agencyportal",
	Short: "Agency project management and CRM backend",
	Long:  `Serve the admin and client portal API of the agency: clients, prospects, projects, tickets, documents and notifications.`,
	// errors are already logged by the command
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
