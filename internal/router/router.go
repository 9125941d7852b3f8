package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"medpulse/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	GRPCWeb        http.Handler
	MetricsHandler http.Handler
	// Health reports the number of sessions whose booking counter
	// disagrees with their appointments. Nil skips the check.
	Health func() int
}

// New mounts health and metrics next to the grpc-web bridge, which takes
// every other path.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		drift := 0
		if cfg.Health != nil {
			drift = cfg.Health()
		}
		body := map[string]any{"status": "ok", "counterDrift": drift}
		if drift > 0 {
			body["status"] = "degraded"
			if cfg.Logger != nil {
				cfg.Logger.Warn("session counters out of step", "sessions", drift)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	if cfg.GRPCWeb != nil {
		r.Handle("/*", cfg.GRPCWeb)
	}
	return r
}
