package httpx

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/jobdeck/jobdeck-api/internal/core"
)

const healthResponse = `{"status":"ok"}`

// healthHandler returns a simple 200 OK status for liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// readyHandler checks the backing stores before reporting ready.
func readyHandler(db Pinger, cache core.CacheRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"database": "ok", "cache": "ok"}
		healthy := true

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				status["database"] = err.Error()
				healthy = false
			}
		}
		if cache != nil {
			if err := cache.Health(ctx); err != nil {
				status["cache"] = err.Error()
				healthy = false
			}
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		WriteJSON(w, code, status)
	}
}
