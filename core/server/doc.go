// Package server runs an http.Server with graceful shutdown, configured from the
// environment and shaped for errgroup:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//
//	srv, err := server.New(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, mux))
//	return g.Wait()
//
// Environment: SERVER_ADDR (:8080), SERVER_READ_TIMEOUT (15s), SERVER_WRITE_TIMEOUT
// (15s), SERVER_IDLE_TIMEOUT (60s), SERVER_SHUTDOWN_TIMEOUT (30s) and
// SERVER_MAX_HEADER_BYTES (1 MiB).
package server
