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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/charm-studio-api/auth"
	"github.com/junaidrashid-git/charm-studio-api/config"
	"github.com/junaidrashid-git/charm-studio-api/database"
	"github.com/junaidrashid-git/charm-studio-api/logging"
	"github.com/junaidrashid-git/charm-studio-api/models"
	"github.com/junaidrashid-git/charm-studio-api/routes"
)

var (
	// Global flags
	verbose bool
	seed    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "charmd",
	Short: "Charm bracelet studio API",
	Long: `charmd serves the bracelet composer: catalog, design editor state,
cart and order placement, plus the admin order feed.

Run without a subcommand to start the HTTP server.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if logger, err = logging.New(cfg.DevMode, verbose); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("auto-migrate failed: %w", err)
		}
		logger.Info("database migrated", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the starter catalog into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("auto-migrate failed: %w", err)
		}
		if err := models.Seed(db); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		logger.Info("catalog seeded")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().BoolVar(&seed, "seed", false, "Seed the starter catalog when the database is empty")
	}
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDatabase() (*gorm.DB, error) {
	return database.Open(cfg.Database, logger, verbose)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Info("starting application", zap.String("driver", cfg.Database.Driver), zap.Bool("dev_mode", cfg.DevMode))

	db, err := openDatabase()
	if err != nil {
		return err
	}
	if err := models.Migrate(db); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	if seed || cfg.DevMode {
		if err := models.Seed(db); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
	}

	server, err := routes.NewServer(db, cfg, logger)
	if err != nil {
		return err
	}
	defer server.Hub.Close()

	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.NewRouter(server, cfg.AllowedOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Purge expired guests and their carts at 3 AM daily
	go startDailyGuestPurge(ctx, db, 3, 0)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startDailyGuestPurge deletes expired guest users at a fixed hour each day
// until ctx is done.
func startDailyGuestPurge(ctx context.Context, db *gorm.DB, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		logger.Debug("next guest purge scheduled", zap.Time("at", next))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		n, err := auth.PurgeExpiredGuests(db.WithContext(ctx), time.Now())
		if err != nil {
			logger.Error("guest purge failed", zap.Error(err))
			continue
		}
		logger.Info("expired guests purged", zap.Int64("count", n))
	}
}
