package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AVKharkova/foodgram/config"
	"github.com/AVKharkova/foodgram/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := database.New(cfg)
		if err != nil {
			return err
		}
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("All migrations applied successfully.")
		return nil
	},
}
