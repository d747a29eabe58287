package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/chapaquente-api/config"
	"github.com/Kariqs/chapaquente-api/initializers"
	"github.com/Kariqs/chapaquente-api/routes"
	"github.com/Kariqs/chapaquente-api/services"
	"github.com/Kariqs/chapaquente-api/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openDatabase(cfg, log)
	if err != nil {
		log.Error("Could not prepare database", zap.Error(err))
		return err
	}
	reportDB, err := initializers.NewReportDB(db, cfg.Database.Driver)
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		log.Warn("Unknown STORE_TIMEZONE, using UTC", zap.String("timezone", cfg.Server.Timezone))
		loc = time.UTC
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := routes.Dependencies{
		Config:   cfg,
		Log:      log,
		Orders:   services.NewOrderService(db, log, cfg.Database.OrderIsolation),
		Reports:  services.NewReportService(reportDB, loc),
		Products: services.NewProductService(db, log),
		Stock:    services.NewStockLedger(db, log),
		Users:    services.NewUserService(db, log),
		Delivery: services.NewDeliveryService(cfg.Delivery, log),
	}
	if images, err := newImageStore(ctx, cfg.Storage); err != nil {
		log.Warn("Image uploads disabled", zap.Error(err))
	} else if images != nil {
		deps.Images = images
	}
	if mailer := utils.NewMailer(cfg.SMTP); mailer.Enabled() {
		deps.Mailer = mailer
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}

// newImageStore returns nil without error when no bucket is configured.
func newImageStore(ctx context.Context, cfg config.StorageConfig) (*utils.S3ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}
	return utils.NewS3ImageStore(ctx, cfg.Bucket, cfg.Prefix)
}
