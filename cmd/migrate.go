package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agency-portal/database"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  "Create or update every table of the portal schema",
	RunE:  migrate,
}

func migrate(_ *cobra.Command, _ []string) error {
	cfg, closeLog, err := loadConfig()
	if err != nil {
		return err
	}
	defer closeLog()

	conn, err := database.NewDBConnection("primary", cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	return conn.Migrate()
}
