// Package http assembles the admin panel's HTTP surface: module routes,
// middleware chain, health report and Prometheus metrics.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docpanel/internal/platform/metrics"
	"docpanel/internal/platform/middleware"
	"docpanel/pkg/platform/httputil"
)

// Registrar mounts a module's routes on the router.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes one injected dependency. A nil Check marks the
// dependency as not configured rather than broken.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Config carries everything the router needs. Dependencies are injected
// explicitly; nothing reaches for process-wide state.
type Config struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Modules []Registrar
	Health  []HealthCheck
}

// New builds the panel router with the full middleware chain.
func New(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Latency(cfg.Metrics))

	for _, module := range cfg.Modules {
		module.Register(r)
	}

	r.Get("/status", handleStatus(cfg.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

type serviceStatus struct {
	Configured bool   `json:"configurado"`
	Connected  bool   `json:"conectado"`
	Error      string `json:"error,omitempty"`
}

type statusResponse struct {
	Success  bool                     `json:"success"`
	Services map[string]serviceStatus `json:"servicios"`
}

const healthTimeout = 2 * time.Second

func handleStatus(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := statusResponse{Success: true, Services: make(map[string]serviceStatus, len(checks))}
		for _, check := range checks {
			if check.Check == nil {
				resp.Services[check.Name] = serviceStatus{}
				continue
			}
			status := serviceStatus{Configured: true, Connected: true}
			if err := check.Check(ctx); err != nil {
				status.Connected = false
				status.Error = err.Error()
			}
			resp.Services[check.Name] = status
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
