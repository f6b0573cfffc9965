// Package middleware wires visit recording, request ids and access logging into
// request pipelines.
//
// Visit and VisitWithConfig follow the handler.Middleware[C] pattern: a generic
// constructor, a configuration struct with a Skip hook, and a context helper
// for reading what the middleware stored. VisitHTTP serves hosts built on plain
// net/http.
//
//	import "github.com/dmitrymomot/visitlog/middleware"
//
//	identify := func(ctx *handler.BaseContext) (string, string) {
//		user, _ := auth.UserID(ctx)
//		session, _ := sessions.Key(ctx)
//		return user, session
//	}
//
//	h := handler.Chain(dashboard, middleware.Visit[*handler.BaseContext](recorder, identify))
//
//	// Background recording for latency-sensitive routes
//	mw := middleware.VisitWithConfig[*handler.BaseContext](middleware.VisitConfig[*handler.BaseContext]{
//		Recorder: recorder,
//		Identify: identify,
//		Async:    true,
//		Skip: func(ctx handler.Context) bool {
//			return strings.HasPrefix(ctx.Request().URL.Path, "/static/")
//		},
//	})
//
//	// net/http
//	mux.Handle("/", middleware.VisitHTTP(recorder, identifyHTTP, false)(appHandler))
//
// RequestID and Logging provide request correlation and access logs in the
// same style; place RequestID first so log records carry the id:
//
//	h := handler.Chain(dashboard,
//		middleware.RequestID[*handler.BaseContext](),
//		middleware.Logging[*handler.BaseContext](log),
//		middleware.Visit[*handler.BaseContext](recorder, identify),
//	)
//
// Recording never changes the response. Anonymous requests pass straight through,
// and store failures are logged by the recorder. In synchronous mode handlers can
// read the outcome with GetVisitResult.
package middleware
