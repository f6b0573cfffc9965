package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/visitlog/core/handler"
	"github.com/dmitrymomot/visitlog/core/logger"
)

// LoggingConfig configures the access log middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Logger receives one record per request (default: discard)
	Logger *slog.Logger
	// Level for successful requests (default: info). 4xx is logged at warn, 5xx at error.
	Level slog.Level
	// SlowRequestThreshold raises successful requests to warn (default: 5s)
	SlowRequestThreshold time.Duration
}

// Logging creates an access log middleware writing to log.
func Logging[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig logs method, path, status and duration once the response
// has been rendered. Request ids set by RequestID are attached when present.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			requestID, _ := GetRequestID(ctx)
			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
				var err error
				if resp != nil {
					err = resp(sw, r)
				}

				elapsed := time.Since(start)
				level := cfg.Level
				switch {
				case err != nil || sw.status >= http.StatusInternalServerError:
					level = slog.LevelError
				case sw.status >= http.StatusBadRequest:
					level = slog.LevelWarn
				case elapsed > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
				}

				cfg.Logger.LogAttrs(r.Context(), level, "http request",
					logger.Component("http"),
					logger.RequestID(requestID),
					logger.HTTPRequest(r.Method, r.URL.Path),
					logger.StatusCode(sw.status),
					logger.Duration(elapsed),
					logger.Error(err),
				)
				return err
			}
		}
	}
}

// statusWriter remembers the status code written by the response.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
