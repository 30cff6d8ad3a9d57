package main

import (
	"notemaker-server/internal/config"
	"notemaker-server/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "notemaker-server"

var (
	cfg *config.Config
	log *zap.SugaredLogger

	rootCmd = &cobra.Command{
		Use:   "notemaker-server",
		Short: "NoteMaker API server",
		Long: `notemaker-server serves the NoteMaker REST API: accounts, notes with
version history, and note summaries, backed by CouchDB.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}

	initDBCmd = &cobra.Command{
		Use:   "init-db",
		Short: "Create the CouchDB database and its Mango indexes",
		RunE:  runInitDB,
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initDBCmd)
}

// setup loads configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load()
	if err != nil {
		return err
	}

	log, err = logger.New(serviceName, cfg.Logging.Level)
	return err
}
