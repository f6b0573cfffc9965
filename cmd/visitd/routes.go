package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/dmitrymomot/visitlog/core/handler"
	"github.com/dmitrymomot/visitlog/core/health"
	"github.com/dmitrymomot/visitlog/core/logger"
	"github.com/dmitrymomot/visitlog/core/visit"
	"github.com/dmitrymomot/visitlog/middleware"
)

// Identity headers stand in for the host's auth and session layers.
const (
	headerUserID     = "X-User-ID"
	headerSessionKey = "X-Session-Key"
)

func identify(ctx *handler.BaseContext) (string, string) {
	r := ctx.Request()
	return r.Header.Get(headerUserID), r.Header.Get(headerSessionKey)
}

func routes(rec *visit.Recorder, b *backends, log *slog.Logger) http.Handler {
	base := []handler.Middleware[*handler.BaseContext]{
		middleware.RequestIDWithConfig[*handler.BaseContext](middleware.RequestIDConfig{TrustIncoming: true}),
		middleware.Logging[*handler.BaseContext](log),
	}
	tracked := base
	if rec != nil {
		tracked = append(slices.Clone(base), middleware.Visit[*handler.BaseContext](rec, identify))
	}

	onErr := func(ctx *handler.BaseContext, err error) {
		log.ErrorContext(ctx, "request failed", logger.Error(err))
		http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", handler.Handle(handler.Chain(home, tracked...), onErr))
	mux.Handle("GET /visits", handler.Handle(handler.Chain(listVisits(b.store), tracked...), onErr))
	mux.Handle("GET /livez", handler.Handle(health.Liveness[*handler.BaseContext], onErr))
	mux.Handle("GET /healthz", handler.Handle(handler.Chain(health.Readiness[*handler.BaseContext](log, b.checks), base...), onErr))
	return mux
}

func home(ctx *handler.BaseContext) handler.Response {
	res, ok := middleware.GetVisitResult(ctx)
	return writeJSON(http.StatusOK, map[string]any{
		"recorded": ok && res.Recorded(),
		"outcome":  outcomeName(res, ok),
	})
}

func outcomeName(res visit.Result, ok bool) string {
	if !ok {
		return "skipped"
	}
	return res.Outcome.String()
}

type visitView struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	Timestamp  time.Time      `json:"timestamp"`
	SessionKey string         `json:"session_key"`
	RemoteAddr string         `json:"remote_addr"`
	UserAgent  string         `json:"ua_string"`
	Context    map[string]any `json:"context,omitempty"`
}

func listVisits(finder visit.Finder) handler.HandlerFunc[*handler.BaseContext] {
	return func(ctx *handler.BaseContext) handler.Response {
		q := ctx.Request().URL.Query()
		f := visit.Filter{
			UserID:     q.Get("user_id"),
			SessionKey: q.Get("session_key"),
			Limit:      100,
		}
		if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
			f.Limit = min(n, 1000)
		}
		if day := q.Get("date"); day != "" {
			t, err := time.ParseInLocation(visit.DateLayout, day, time.Local)
			if err != nil {
				return writeJSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
			}
			df := visit.Day(f.UserID, t)
			f.From, f.To = df.From, df.To
		}

		recs, err := finder.List(ctx, f)
		if err != nil {
			return func(http.ResponseWriter, *http.Request) error { return err }
		}
		out := make([]visitView, 0, len(recs))
		for _, r := range recs {
			out = append(out, visitView{
				ID:         r.ID.String(),
				UserID:     r.UserID,
				Timestamp:  r.Timestamp,
				SessionKey: r.SessionKey,
				RemoteAddr: r.RemoteAddr,
				UserAgent:  r.UserAgent,
				Context:    r.Context,
			})
		}
		return writeJSON(http.StatusOK, out)
	}
}

func writeJSON(status int, v any) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		return json.NewEncoder(w).Encode(v)
	}
}
