package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/memorygame-go/internal/api"
	"github.com/mcoot/memorygame-go/internal/config"
	"github.com/mcoot/memorygame-go/internal/factory"
	"github.com/mcoot/memorygame-go/internal/services/game"
	"github.com/mcoot/memorygame-go/internal/services/session"
	redisstorage "github.com/mcoot/memorygame-go/internal/storage/redis"
	"github.com/mcoot/memorygame-go/internal/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "memgame-server",
		Short:        "Serve the memory game over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:        logger,
		StorageType:   cfg.Storage,
		SessionConfig: session.Config{TableTTL: cfg.TableTTL},
		GameConfig: game.Config{
			RevertDelay:    cfg.RevertDelay,
			BannerDuration: cfg.BannerDuration,
			Catalog:        cfg.Catalog,
		},
	}
	if cfg.Storage == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.TableTTL = cfg.TableTTL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Clock:          app.Clock,
		Storage:        app.Storage,
		SessionService: app.SessionService,
		GameController: app.GameController,
		HubManager:     app.HubManager,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		Clock:          app.Clock,
		SessionService: app.SessionService,
		GameController: app.GameController,
		HubManager:     app.HubManager,
		StaticDir:      cfg.StaticDir,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := api.NewServer(mux, api.NewServerConfig(cfg), logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage),
	)

	select {
	case err := <-errCh:
		app.Close()
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	// Open event streams would otherwise hold up the shutdown
	app.Close()
	if err := server.Shutdown(context.Background()); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
