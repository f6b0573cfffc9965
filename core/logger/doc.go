// Package logger builds slog loggers and provides attribute helpers used across the
// visit log packages.
//
//	import "github.com/dmitrymomot/visitlog/core/logger"
//
//	log := logger.New(logger.WithProduction("visitd"))
//	log.Info("user visit recorded",
//		logger.UserID(rec.UserID),
//		logger.Hash(rec.Hash),
//	)
//
// Components that accept a *slog.Logger default to Discard() so libraries stay
// quiet until the host wires a real logger in.
//
// Attribute helpers return an empty slog.Attr for zero values, which slog drops,
// so calls like log.Error("persist failed", logger.Error(err)) need no nil checks.
package logger
