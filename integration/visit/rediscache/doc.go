// Package rediscache implements visit.Cache on Redis.
//
//	client, err := redis.Connect(ctx, redisCfg)
//	if err != nil {
//		return err
//	}
//	recorder, err := visit.NewRecorder(cfg, store,
//		visit.WithCache(rediscache.New(client, rediscache.WithKeyPrefix("prod:"))),
//	)
//
// Entries are written with SET ... EX and expire at the next local midnight, as
// computed by the recorder. Redis errors are returned so the recorder can log
// them and fall back to the store.
package rediscache
