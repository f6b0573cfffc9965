// Package handler provides type-safe HTTP handler and middleware types built around
// a custom request Context.
//
//	import "github.com/dmitrymomot/visitlog/core/handler"
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//	type HandlerFunc[C Context] func(ctx C) Response
//	type ErrorHandler[C Context] func(ctx C, err error)
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// # Context
//
// Context extends context.Context with access to the request, the response writer,
// path parameters and request-scoped values. NewContext returns the default
// implementation, which routers and tests can use directly:
//
//	ctx := handler.NewContext(w, r)
//	ctx.SetValue(userKey{}, "42")
//
// # Composition
//
// Chain composes middleware with the first one outermost, and Handle exposes a
// handler over the default context as an http.Handler:
//
//	h := handler.Chain(home, middleware.Visit[*handler.BaseContext](recorder, identify))
//	mux.Handle("/", handler.Handle(h, nil))
package handler
