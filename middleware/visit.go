package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/visitlog/core/handler"
	"github.com/dmitrymomot/visitlog/core/visit"
)

// visitResultContextKey is used as a key for storing the visit result in request context.
type visitResultContextKey struct{}

// IdentifyFunc resolves the authenticated user and session of a request.
// An empty user id marks the request as anonymous.
type IdentifyFunc[C handler.Context] func(ctx C) (userID, sessionKey string)

// VisitConfig configures the visit recording middleware.
type VisitConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Recorder performs the visit decision. Required.
	Recorder *visit.Recorder
	// Identify resolves user and session, usually from values set by auth and
	// session middleware. Required.
	Identify IdentifyFunc[C]
	// Async records in the background instead of before the handler runs.
	// The result is then not available through GetVisitResult; call
	// Recorder.Flush on shutdown to wait for pending writes.
	Async bool
}

// Visit creates a middleware that records a visit before calling the handler.
func Visit[C handler.Context](rec *visit.Recorder, identify IdentifyFunc[C]) handler.Middleware[C] {
	return VisitWithConfig(VisitConfig[C]{
		Recorder: rec,
		Identify: identify,
	})
}

// VisitWithConfig creates a visit recording middleware with custom configuration.
// The response is never altered, whatever the recording outcome.
func VisitWithConfig[C handler.Context](cfg VisitConfig[C]) handler.Middleware[C] {
	if cfg.Recorder == nil {
		panic("visit middleware: recorder is required")
	}
	if cfg.Identify == nil {
		panic("visit middleware: identify function is required")
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			userID, sessionKey := cfg.Identify(ctx)
			if userID == "" {
				return next(ctx)
			}

			req := visit.NewRequest(ctx.Request(), userID, sessionKey)
			if cfg.Async {
				// The handler context is rewritten by SetValue further down the
				// chain; the background work gets the request context as of now.
				cfg.Recorder.RecordAsync(ctx.Request().Context(), req)
				return next(ctx)
			}

			res := cfg.Recorder.Record(ctx, req)
			ctx.SetValue(visitResultContextKey{}, res)
			return next(ctx)
		}
	}
}

// GetVisitResult returns the result stored by a synchronous visit middleware.
func GetVisitResult(ctx context.Context) (visit.Result, bool) {
	res, ok := ctx.Value(visitResultContextKey{}).(visit.Result)
	return res, ok
}

// VisitHTTP adapts the recorder to plain net/http middleware.
func VisitHTTP(rec *visit.Recorder, identify func(r *http.Request) (userID, sessionKey string), async bool) func(http.Handler) http.Handler {
	if rec == nil {
		panic("visit middleware: recorder is required")
	}
	if identify == nil {
		panic("visit middleware: identify function is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, sessionKey := identify(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			req := visit.NewRequest(r, userID, sessionKey)
			if async {
				rec.RecordAsync(r.Context(), req)
				next.ServeHTTP(w, r)
				return
			}

			res := rec.Record(r.Context(), req)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitResultContextKey{}, res)))
		})
	}
}
