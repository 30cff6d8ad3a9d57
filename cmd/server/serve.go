package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notemaker-server/internal/handler"
	"notemaker-server/internal/repository"
	"notemaker-server/internal/service"

	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, args []string) error {
	defer log.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := repository.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer client.Close()

	created, err := repository.EnsureDatabase(ctx, client, cfg.Database.Name)
	if err != nil {
		return err
	}
	if created {
		log.Infow("created database", "name", cfg.Database.Name)
	}
	if err := repository.EnsureIndexes(ctx, client, cfg.Database.Name); err != nil {
		log.Warnw("could not create indexes, queries will scan", "error", err)
	}

	var cache repository.SummaryCache
	if cfg.Cache.Enabled {
		rdb, err := repository.ConnectRedis(ctx, cfg.Cache)
		if err != nil {
			log.Warnw("summary cache disabled", "addr", cfg.Cache.Addr, "error", err)
		} else {
			defer rdb.Close()
			cache = repository.NewRedisSummaryCache(rdb, cfg.Cache.TTL)
			log.Infow("summary cache enabled", "addr", cfg.Cache.Addr, "ttl", cfg.Cache.TTL)
		}
	}

	userRepo := repository.NewUserRepository(client, cfg.Database.Name)
	noteRepo := repository.NewNoteRepository(client, cfg.Database.Name)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, log)
	userService := service.NewUserService(userRepo)
	noteService := service.NewNoteService(noteRepo, cache, log)

	router := handler.NewRouter(handler.RouterOptions{
		Auth:      handler.NewAuthHandler(authService, log),
		Users:     handler.NewUserHandler(userService, log),
		Notes:     handler.NewNoteHandler(noteService, log),
		Verifier:  authService,
		CORS:      cfg.CORS,
		StaticDir: cfg.Server.StaticDir,
		Log:       log,
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("starting server", "addr", addr, "env", cfg.Server.Env, "couchdb", cfg.Database.Host+":"+cfg.Database.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
