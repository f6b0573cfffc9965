// Package config loads configuration structs from environment variables using
// caarlos0/env struct tags. A .env file in the working directory is loaded once,
// without overriding variables already set in the environment.
//
//	import "github.com/dmitrymomot/visitlog/core/config"
//
//	type DatabaseConfig struct {
//		URL     string `env:"PG_CONN_URL,required"`
//		MaxConn int32  `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//	}
//
//	var db DatabaseConfig
//	if err := config.Load(&db); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful for startup)
//	config.MustLoad(&db)
//
// # Caching Behavior
//
// Load caches one value per type for the lifetime of the process:
//
//	var cfg1, cfg2 DatabaseConfig
//	config.Load(&cfg1) // reads the environment
//	config.Load(&cfg2) // cached, cfg1 == cfg2
//
// # Overlaying host settings
//
// Parse is uncached and leaves fields untouched when their variable is unset, which
// lets the environment override values the host already filled in:
//
//	cfg := HostSettings()
//	err := config.Parse(&cfg, env.Options{Prefix: "USER_VISIT_"})
package config
