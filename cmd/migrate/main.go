package main

import (
	"fmt"
	"os"

	"notekeeper-be/internal/config"
	"notekeeper-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the notekeeper database schema",
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update the users and notes tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect()
		if err != nil {
			return err
		}

		color.Cyan("Running AutoMigrate for %d tables...", len(database.Models()))
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}

		color.Green("Success: database migration completed")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report which tables exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect()
		if err != nil {
			return err
		}

		statuses, err := database.Status(db)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			if s.Exists {
				color.Green("  %-10s present", s.Table)
			} else {
				color.Yellow("  %-10s missing", s.Table)
			}
		}
		return nil
	},
}

func connect() (*gorm.DB, error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, err
	}
	db, err := database.NewGormDBFromDSN(cfg.Connection, verbose || cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every SQL statement")
	rootCmd.AddCommand(upCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
