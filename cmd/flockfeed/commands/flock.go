package commands

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/pageza/flockfeed/backend/config"
	"github.com/pageza/flockfeed/backend/internal/api"
	"github.com/pageza/flockfeed/backend/internal/database"
	"github.com/pageza/flockfeed/backend/internal/server"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flock flags
	flockPort   string
	autoMigrate bool
	seedOnStart bool
)

// flockCmd serves the flock management API
var flockCmd = &cobra.Command{
	Use:   "flock",
	Short: "Run the flock management API",
	RunE:  runFlock,
}

func init() {
	flockCmd.Flags().StringVar(&flockPort, "port", "", "Listen port (defaults to FLOCK_PORT)")
	flockCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Run schema migrations before serving")
	flockCmd.Flags().BoolVar(&seedOnStart, "seed", false, "Load reference data before serving")
}

func runFlock(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database, log.Named("database"))
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if autoMigrate {
		if err := database.RunMigrations(db, log.Named("migrate")); err != nil {
			return err
		}
	}
	if seedOnStart {
		if err := database.SeedReferenceData(db, log.Named("seed")); err != nil {
			return err
		}
	}

	store, err := reportStore(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}

	svc := api.NewFlockServices(db, store, cfg.Storage, log)
	router := api.NewFlockRouter(db, svc, cfg.Server.CORSOrigins, log.Named("http"))

	port := cfg.Server.FlockPort
	if flockPort != "" {
		port = flockPort
	}
	srv := server.NewServer("flock", net.JoinHostPort(cfg.Server.Host, port), router, cfg.Server.ShutdownTimeout, log)
	return srv.Run(ctx)
}

// reportStore returns the S3 store when a bucket is configured, or nil to
// leave report export disabled.
func reportStore(ctx context.Context, st config.StorageConfig, log *zap.Logger) (service.ObjectStore, error) {
	if !st.Enabled() {
		log.Info("report storage disabled, S3_BUCKET_NAME not set")
		return nil, nil
	}
	s3cfg, err := config.NewS3Config(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("failed to configure report storage: %w", err)
	}
	log.Info("report storage enabled", zap.String("bucket", st.Bucket))
	return s3cfg, nil
}
