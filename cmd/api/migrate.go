// AngelaMos | 2026
// migrate.go

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/school-opinions/internal/config"
	"github.com/carterperez-dev/school-opinions/internal/migrations"
)

var downSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back the database schema.",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadForMigrate()
		if err != nil {
			return err
		}
		return migrations.Up(cfg.Database.DSN())
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the given number of migrations.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadForMigrate()
		if err != nil {
			return err
		}
		return migrations.Down(cfg.Database.DSN(), downSteps)
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func loadForMigrate() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(setupLogger(cfg.Log))
	return cfg, nil
}
