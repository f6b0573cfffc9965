// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: process is running, no dependency checks
//   - Readiness: every named dependency check passes
//
// Usage:
//
//	mux.Handle("GET /livez", handler.Handle(health.Liveness[*handler.BaseContext], nil))
//	mux.Handle("GET /healthz", handler.Handle(health.Readiness[*handler.BaseContext](log, health.Checks{
//		"postgres": pg.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}), nil))
//
// Checks follow the func(context.Context) error signature used by the
// integration packages and by the visit stores and caches.
package health
