// Package redis creates go-redis clients and verifies them before use.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	cache := rediscache.New(client)
//
// # Configuration
//
//	REDIS_URL              redis:// or rediss:// URL (default redis://localhost:6379/0)
//	REDIS_RETRY_ATTEMPTS   ping attempts (3)
//	REDIS_RETRY_INTERVAL   base backoff interval (5s)
//	REDIS_CONNECT_TIMEOUT  overall deadline for Connect (30s)
//
// Connect retries the ping with exponential backoff and gives up with
// ErrRedisNotReady. A malformed URL fails immediately with
// ErrFailedToParseRedisConnString. Healthcheck returns a ping function for
// readiness probes.
package redis
