package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/visitlog/core/handler"
	"github.com/dmitrymomot/visitlog/core/logger"
)

// Checks maps a dependency name to its probe.
type Checks map[string]func(context.Context) error

// Status values reported per check.
const (
	StatusOK   = "ok"
	StatusDown = "down"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK.
func Liveness[C handler.Context](C) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("ALIVE"))
		return err
	}
}

// Readiness runs every check and reports each one by name as JSON.
// Any failure turns the status into 503 Service Unavailable. Failure
// details are logged, not exposed.
func Readiness[C handler.Context](log *slog.Logger, checks Checks) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx C) handler.Response {
		status := http.StatusOK
		report := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"),
					slog.String("check", name),
					logger.Error(err),
				)
				status = http.StatusServiceUnavailable
				report[name] = StatusDown
				continue
			}
			report[name] = StatusOK
		}
		return func(w http.ResponseWriter, r *http.Request) error {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			return json.NewEncoder(w).Encode(report)
		}
	}
}
