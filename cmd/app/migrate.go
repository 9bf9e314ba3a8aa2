package main

import (
	"courier/cmd"
	"courier/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := cmd.LoadDBConfig()
		if err != nil {
			return err
		}
		return postgres.MigrateUp(cfg.Connection().DSN())
	},
}

var migrateDownSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := cmd.LoadDBConfig()
		if err != nil {
			return err
		}
		return postgres.MigrateDown(cfg.Connection().DSN(), migrateDownSteps)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)

	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back")
}
