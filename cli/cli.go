// Package cli implements the blog command line: the HTTP server and the
// maintenance commands around it.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"polyglot-blog-be/config"
	"polyglot-blog-be/logger"
	"polyglot-blog-be/models"
)

var flagDebugMode bool

var Cmd = cobra.Command{
	Use:   "blog",
	Short: "Multilingual blog backend",

	PersistentPreRunE: persistentPreRunE,

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := serve(cmd.Context()); err != nil {
			slog.Error("server exited with error", slog.Any("error", err))
			return err
		}
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		config.CloseRedis()
		config.CloseDB()
	},
}

var migrateCmd = cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	Args:  cobra.ExactArgs(0),

	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context) error {
			return migrate(ctx)
		})
	},
}

func init() {
	Cmd.PersistentFlags().BoolVarP(&flagDebugMode, "debug", "d", false,
		"Show debug logs")

	Cmd.AddCommand(&createAdminCmd)
	Cmd.AddCommand(&migrateCmd)
	Cmd.AddCommand(&sanitizeCmd)
}

func persistentPreRunE(cmd *cobra.Command, args []string) error {
	// Don't show usage on app errors.
	cmd.SilenceUsage = true

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagDebugMode {
		cfg.LogLevel = "debug"
	}
	return logger.Setup(cfg.LogLevel, cfg.LogFormat)
}

func withDatabase(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := config.ConnectDB(config.Get()); err != nil {
		return err
	}
	if err := config.PingDB(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return fn(ctx)
}

func migrate(ctx context.Context) error {
	if err := config.GetDB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	slog.Info("Database migrated")
	return nil
}

func Execute() {
	if err := Cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
