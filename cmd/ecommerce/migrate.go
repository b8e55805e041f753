package main

import (
	"ecommerce_service/config"
	"ecommerce_service/pkg/db"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMigrateCommand(logger *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(logger)
			if err != nil {
				return err
			}
			configureLogger(logger, cfg.LogLevel, cfg.LogFormat)

			conn, err := db.Connect(cmd.Context(), cfg.DatabaseURL, cfg.DBConnectTimeout, logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			return db.Migrate(cmd.Context(), conn, logger)
		},
	}
}
