package main

import (
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/babyshop/pkg/database"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.Open(cmd.Context(), a.cfg.Database(), a.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			return database.NewMigrationService(a.logger, a.cfg.Migration()).Run(db)
		},
	}
}
