package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/infrastructure/app"
	"github.com/teamboard/core/internal/infrastructure/config"
	"github.com/teamboard/core/internal/infrastructure/database"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/infrastructure/server"
)

// Version is overridden at build time with -ldflags
var Version = "dev"

// runtime is what every board command needs: config, logger and services
type runtime struct {
	cfg *config.Config
	log *logger.Logger
	svc *app.Services
}

func (r *runtime) Close() {
	if err := r.svc.Close(); err != nil {
		r.log.WithError(err).Warnw("Failed to close stores")
	}
	_ = r.log.Close()
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc, err := app.Build(cfg, appLogger)
	if err != nil {
		_ = appLogger.Close()
		return nil, fmt.Errorf("failed to open stores: %w", err)
	}

	return &runtime{cfg: cfg, log: appLogger, svc: svc}, nil
}

// quietRuntime is loadRuntime for terminal commands; logs go to the configured file or
// nowhere so they do not interleave with command output.
func quietRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.NewNop()
	if cfg.Logger.Output == "file" {
		if appLogger, err = logger.New(cfg.Logger); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	svc, err := app.Build(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open stores: %w", err)
	}

	return &runtime{cfg: cfg, log: appLogger, svc: svc}, nil
}

func clientFlag(cmd *cobra.Command) string {
	id, _ := cmd.Flags().GetString("client")
	if id == "" {
		return services.DefaultClientID
	}
	return id
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the TeamBoard API server",
		Long:  "Start the TeamBoard API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.cfg.Database.Driver == database.DriverPostgres {
		if err := database.Migrate(rt.cfg.Database, database.Up); err != nil {
			return err
		}
	}

	srv, err := server.New(rt.cfg, rt.svc, rt.log)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	rt.log.Infow("Starting TeamBoard API server",
		"port", rt.cfg.Server.Port,
		"environment", rt.cfg.App.Environment,
		"database", rt.cfg.Database.Driver,
	)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%d", rt.cfg.Server.Host, rt.cfg.Server.Port)
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		rt.log.Infow("Received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	rt.log.Infow("Server stopped")
	return nil
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage the record store schema (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Create or upgrade the records schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, database.Up)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Drop the records schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, database.Down)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			version, dirty, err := database.Version(cfg.Database)
			if err != nil {
				return err
			}

			cmd.Printf("Current migration version: %d\n", version)
			cmd.Printf("Dirty: %t\n", dirty)
			return nil
		},
	})

	return migrateCmd
}

func runMigration(cmd *cobra.Command, dir database.Direction) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := database.Migrate(cfg.Database, dir); err != nil {
		return err
	}

	cmd.Printf("Migration %s completed successfully\n", dir)
	return nil
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print TeamBoard version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("TeamBoard %s\n", Version)
		},
	}
}
