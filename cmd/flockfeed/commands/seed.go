package commands

import (
	"github.com/pageza/flockfeed/backend/internal/database"
	"github.com/spf13/cobra"
)

// seedCmd loads reference data. It is safe to run repeatedly.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference growth stages, feeding templates and food types",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		db, err := database.Open(cfg.Database, log.Named("database"))
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := database.RunMigrations(db, log.Named("migrate")); err != nil {
			return err
		}
		if err := database.SeedReferenceData(db, log.Named("seed")); err != nil {
			return err
		}
		cmd.Println("Reference data loaded")
		return nil
	},
}
