package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Jacobbrewer1/porter/cmd/bot/config"
	storeMonitoring "github.com/Jacobbrewer1/porter/pkg/dataaccess/monitoring"
	"github.com/alexliesenfeld/health"
	"github.com/prometheus/client_golang/prometheus"
)

func (a *App) healthCheck() Controller {
	checker := health.NewChecker(
		// Set a TTL of 1 second for the results of the checks.
		health.WithCacheDuration(1*time.Second),

		// Set a timeout of 2 seconds for the checks.
		health.WithTimeout(2*time.Second),

		// Monitor the health of the data directory.
		health.WithCheck(health.Check{
			Name: "Data_Store",
			Check: func(ctx context.Context) error {
				// Create a new timer to measure the latency of the check.
				t := prometheus.NewTimer(storeMonitoring.StoreLatency.WithLabelValues("health_check", "probe", "-"))
				defer t.ObserveDuration()
				storeMonitoring.StoreTotalRequests.WithLabelValues("health_check", "probe", "-").Inc()

				f, err := os.CreateTemp(config.DataDir, ".health-*")
				if err != nil {
					return fmt.Errorf("data directory is not writable: %w", err)
				}
				name := f.Name()
				if err := f.Close(); err != nil {
					return fmt.Errorf("failed to close probe file: %w", err)
				}
				if err := os.Remove(name); err != nil {
					return fmt.Errorf("failed to remove probe file: %w", err)
				}
				return nil
			},
			Timeout:            2 * time.Second,
			MaxTimeInError:     0,
			MaxContiguousFails: 0,
			StatusListener: func(ctx context.Context, name string, state health.CheckState) {
				a.Log().Info("Data store health check status changed",
					slog.String("name", name),
					slog.String("state", string(state.Status)),
				)
			},
			Interceptors:         nil,
			DisablePanicRecovery: false,
		}),

		// Monitor the health of the Discord API.
		health.WithPeriodicCheck(15*time.Second, 5*time.Second, health.Check{
			Name: "Discord_API",
			Check: func(ctx context.Context) error {
				if _, err := a.Session().GatewayBot(); err != nil {
					return fmt.Errorf("failed to ping Discord API: %w", err)
				}
				return nil
			},
			Timeout:            3 * time.Second,
			MaxTimeInError:     0,
			MaxContiguousFails: 0,
			StatusListener: func(ctx context.Context, name string, state health.CheckState) {
				a.Log().Info("Discord API health check status changed",
					slog.String("name", name),
					slog.String("state", string(state.Status)),
				)
			},
			Interceptors:         nil,
			DisablePanicRecovery: false,
		}),
	)

	return Controller(health.NewHandler(checker))
}
