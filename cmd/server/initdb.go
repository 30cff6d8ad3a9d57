package main

import (
	"context"
	"time"

	"notemaker-server/internal/repository"

	"github.com/spf13/cobra"
)

func runInitDB(cmd *cobra.Command, args []string) error {
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := repository.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer client.Close()

	created, err := repository.EnsureDatabase(ctx, client, cfg.Database.Name)
	if err != nil {
		return err
	}

	if err := repository.EnsureIndexes(ctx, client, cfg.Database.Name); err != nil {
		return err
	}

	log.Infow("database ready", "name", cfg.Database.Name, "created", created, "indexes", len(repository.Indexes))
	return nil
}
