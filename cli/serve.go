package cli

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"polyglot-blog-be/config"
	"polyglot-blog-be/metrics"
	"polyglot-blog-be/routes"
)

const shutdownTimeout = 10 * time.Second

var uploadFolders = []string{"posts"}

func serve(ctx context.Context) error {
	cfg := config.Get()
	if err := withDatabase(ctx, migrate); err != nil {
		return err
	}

	// Cache is optional, the server runs without Redis
	config.ConnectRedis(ctx, cfg)
	createUploadDirectories(cfg.UploadDir)

	if cfg.Metrics {
		metrics.Register(metricsDB(config.GetDB()))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// metricsDB returns the pool behind db, or nil when its stats cannot be
// exported.
func metricsDB(db *gorm.DB) *sql.DB {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Warn("Database pool stats not exported", slog.Any("error", err))
		return nil
	}
	return sqlDB
}

func createUploadDirectories(root string) {
	for _, dir := range uploadFolders {
		path := filepath.Join(root, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			slog.Warn("Failed to create upload directory",
				slog.String("path", path), slog.Any("error", err))
		}
	}
}
