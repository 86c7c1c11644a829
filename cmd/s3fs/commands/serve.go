package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/mwantia/s3fs"
	"github.com/mwantia/s3fs/log"
	"github.com/mwantia/s3fs/metrics"
)

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Expose storage metrics over HTTP",
	Long: `Opens the storage root and serves Prometheus metrics on /metrics until
interrupted. With --prune-interval the sidecar pruner runs periodically and
its results are recorded in the same metrics.`,
	Args: cobra.NoArgs,
	RunE: runServeMetrics,
}

func init() {
	flags := serveMetricsCmd.Flags()
	flags.String("metrics-addr", ":9090", "Listen address of the metrics endpoint")
	flags.Duration("prune-interval", 0, "Run the sidecar pruner at this interval (0 disables it)")

	bindFlags(flags)
}

func runServeMetrics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	interval := v.GetDuration("prune-interval")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	fsys, logger, err := openFileSystem(cfg, s3fs.WithObserver(metrics.NewStorageMetrics(reg)))
	if err != nil {
		return err
	}
	defer logger.Close()
	defer fsys.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:         cfg.MetricsAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics on '%s'", cfg.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if interval > 0 {
		go prunePeriodically(ctx, fsys, logger.Named("prune"), interval)
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server shutdown failed: %v", err)
	}

	logger.Info("Stopped metrics server")
	return nil
}

func prunePeriodically(ctx context.Context, fsys *s3fs.FileSystem, logger *log.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := fsys.PruneSidecars(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("Prune failed: %v", err)
				}
				continue
			}
			if removed > 0 {
				logger.Info("Removed %d orphaned sidecars", removed)
			}
		}
	}
}
