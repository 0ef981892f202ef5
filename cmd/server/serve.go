package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/docs"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/logger"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/metrics"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.ConnectWithRetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(database) }()

	if err := db.Migrate(database); err != nil {
		return err
	}

	engine, err := newRouter(cfg, database, startTime)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// newRouter wires middleware, operational endpoints and the /api routes.
func newRouter(cfg *config.Config, database *gorm.DB, startTime time.Time) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)
	validation.RegisterJSONFieldNames()
	metrics.Register()

	e := gin.New()
	if err := e.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	// Recovery stays innermost: Logger and Metrics must see the 500 it writes.
	e.Use(
		middleware.RequestID(),
		middleware.Logger(middleware.LoggerConfig{AccessLog: cfg.AccessLog}),
		middleware.Metrics(),
		middleware.Recovery(),
	)

	ping := func(ctx context.Context) error { return db.Ping(ctx, database) }
	handler.NewHealthHandler(ping, startTime, Version).RegisterRoutes(e)

	e.GET("/metrics", gin.WrapH(metrics.Handler()))

	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Version = Version
	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handler.RegisterAPI(e.Group("/api"), handler.NewGormRepositories(database))

	return e, nil
}
