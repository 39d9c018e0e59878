package handlers

import (
	"context"
	"net/http"
	"time"

	"polyglot-blog-be/config"
	"polyglot-blog-be/utils"
)

// Healthz reports that the process is serving
func Healthz(w http.ResponseWriter, r *http.Request) {
	utils.RespondSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, nil)
}

// Readyz reports whether the database answers. Redis is optional and only
// reported.
func Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := config.PingDB(ctx); err != nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "NOT_READY", "Database unavailable", nil)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, map[string]any{
		"status": "ready",
		"cache":  utils.IsRedisAvailable(),
	}, nil)
}
