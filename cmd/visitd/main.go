package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/visitlog/core/config"
	"github.com/dmitrymomot/visitlog/core/logger"
	"github.com/dmitrymomot/visitlog/core/server"
	"github.com/dmitrymomot/visitlog/core/visit"
)

type appConfig struct {
	StoreDriver   string `env:"STORE_DRIVER" envDefault:"memory"`
	CacheDriver   string `env:"CACHE_DRIVER" envDefault:"memory"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"visitlog"`
	Debug         bool   `env:"APP_DEBUG"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	config.MustLoad(&cfg)

	var srvCfg server.Config
	config.MustLoad(&srvCfg)

	opt := logger.WithProduction("visitd")
	if cfg.Debug {
		opt = logger.WithDevelopment("visitd")
	}
	log := logger.New(opt)

	visitCfg, err := visit.LoadConfig(visit.DefaultConfig())
	if err != nil {
		return fmt.Errorf("load visit config: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	backends, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backends.close()

	if mc, ok := backends.cache.(*visit.MemoryCache); ok {
		g.Go(mc.Run(ctx))
	}

	rec, err := visit.NewRecorder(visitCfg, backends.store,
		visit.WithCache(backends.cache),
		visit.WithLogger(log.With(logger.Component("visit"))),
	)
	switch {
	case errors.Is(err, visit.ErrRecordingDisabled):
		log.InfoContext(ctx, "user visit recording disabled")
	case err != nil:
		return err
	}

	srv, err := server.New(srvCfg, server.WithLogger(log))
	if err != nil {
		return err
	}
	g.Go(srv.Run(ctx, routes(rec, backends, log)))

	log.InfoContext(ctx, "visitd started",
		slog.String("store", cfg.StoreDriver),
		slog.String("cache", cfg.CacheDriver),
	)
	err = g.Wait()

	if rec != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
		defer cancel()
		if ferr := rec.Flush(flushCtx); ferr != nil {
			log.Warn("pending user visits not flushed", logger.Error(ferr))
		}
	}
	return err
}
