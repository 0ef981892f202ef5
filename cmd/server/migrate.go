package main

import (
	"github.com/spf13/cobra"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		database, err := db.ConnectWithRetry(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close(database) }()

		return db.Migrate(database)
	},
}
