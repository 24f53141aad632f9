package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/agency-portal/database"
)

var (
	sourceURL, sourceDriver string
	targetURL, targetDriver string
)

func init() {
	copyDataCmd.Flags().StringVar(&sourceURL, "source", "", "Source database URL or sqlite path")
	copyDataCmd.Flags().StringVar(&sourceDriver, "source-driver", "sqlite", "Source driver (postgres or sqlite)")
	copyDataCmd.Flags().StringVar(&targetURL, "target", "", "Target database URL or sqlite path")
	copyDataCmd.Flags().StringVar(&targetDriver, "target-driver", "postgres", "Target driver (postgres or sqlite)")
	_ = copyDataCmd.MarkFlagRequired("source")
	_ = copyDataCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(copyDataCmd)
}

var copyDataCmd = &cobra.Command{
	Use:   "copy-data",
	Short: "Copy every table from one database into another",
	Long:  "Migrate the target schema, then copy all rows from source to target, e.g. a sqlite trial into postgres.",
	RunE:  copyData,
}

func copyData(_ *cobra.Command, _ []string) error {
	_, closeLog, err := loadConfig()
	if err != nil {
		return err
	}
	defer closeLog()

	source, err := database.NewDBConnection("source", sourceDriver, sourceURL)
	if err != nil {
		return err
	}
	target, err := database.NewDBConnection("target", targetDriver, targetURL)
	if err != nil {
		return err
	}

	// Ensure target database schema is migrated
	if err := target.Migrate(); err != nil {
		return err
	}
	if err := database.MigrateDataBetweenDatabases(source, target); err != nil {
		return fmt.Errorf("data migration failed: %w", err)
	}
	slog.Info("Database copy completed")
	return nil
}
