package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/agency-portal/database"
	"github.com/agency-portal/services"
)

var adminEmail, adminPassword, adminName string

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email of the admin")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password, at least 8 characters")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Display name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an agency admin account",
	RunE:  createAdmin,
}

func createAdmin(cmd *cobra.Command, _ []string) error {
	cfg, closeLog, err := loadConfig()
	if err != nil {
		return err
	}
	defer closeLog()

	if err := database.Initialize(cfg.DBDriver, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	user, err := services.NewAuthService(cfg.JWTSecret).CreateAdmin(cmd.Context(), adminEmail, adminPassword, adminName)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	slog.Info("Admin created", slog.String("id", user.ID), slog.String("email", user.Email))
	return nil
}
