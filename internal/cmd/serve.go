package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/ev-dashboard-go/internal/api"
	"github.com/jengzang/ev-dashboard-go/internal/config"
	"github.com/jengzang/ev-dashboard-go/internal/dataset"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(v *viper.Viper) *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long:  "Loads the dataset once and serves the dashboard page, its JSON API, chart images and exports.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	fs := serve.Flags()
	fs.String("port", "", "listen address, e.g. :8080")
	fs.String("gin-mode", "", "gin mode: debug, release or test")
	fs.Int("export-rate-limit", 0, "export downloads allowed per client and window (0 disables)")
	fs.Duration("export-rate-window", 0, "export rate limit window")
	_ = v.BindPFlag(config.KeyPort, fs.Lookup("port"))
	_ = v.BindPFlag(config.KeyGinMode, fs.Lookup("gin-mode"))
	_ = v.BindPFlag(config.KeyExportRateLimit, fs.Lookup("export-rate-limit"))
	_ = v.BindPFlag(config.KeyExportRateWindow, fs.Lookup("export-rate-window"))
	return serve
}

func runServer(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	// Load up front so a broken file halts startup
	source := dataset.NewSource(cfg.DataPath)
	table, err := source.Table()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	log.Printf("Loaded %d vehicles from %s (geo: %t)", table.Len(), cfg.DataPath, table.HasGeo())

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           api.SetupRouter(cfg, source),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
