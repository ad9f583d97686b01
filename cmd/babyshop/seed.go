package main

import (
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/babyshop/internal/seed"
	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/server"
)

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate the database and insert the sample data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := database.Open(ctx, a.cfg.Database(), a.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.NewMigrationService(a.logger, a.cfg.Migration()).Run(db); err != nil {
				return err
			}

			_, err = seed.Run(ctx, server.NewRepositories(db, a.logger), a.logger)
			return err
		},
	}
}
