package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	logger := setupLogger("info", "json")

	rootCmd := &cobra.Command{
		Use:           "ecommerce",
		Short:         "E-commerce catalog and user service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCommand(logger), newMigrateCommand(logger))

	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("Command failed: %v", err)
		os.Exit(1)
	}
}

func setupLogger(level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	configureLogger(logger, level, format)
	return logger
}

// configureLogger applies level and format. Unknown values fall back to info and JSON.
func configureLogger(logger *logrus.Logger, level, format string) {
	if format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
}
