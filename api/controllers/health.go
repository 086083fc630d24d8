package controllers

import (
	"net/http"
	"time"

	"github.com/doxacleaning/doxa-backend/api/responses"
	"github.com/doxacleaning/doxa-backend/pkg/config"
)

// Home describes the API surface for anyone poking the root path.
func Home(cfg *config.Config) http.HandlerFunc {
	endpoints := map[string]string{
		"auth":      "/api/auth",
		"jobs":      "/api/jobs",
		"customers": "/api/customers",
		"health":    "/api/health",
		"metrics":   "/metrics",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Doxa-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]any{
			"message":   "Doxa Cleaning API",
			"endpoints": endpoints,
		})
	}
}

// Health reports process liveness with uptime measured from boot.
func Health(cfg *config.Config, startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Doxa-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]any{
			"status":         "ok",
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
		})
	}
}
